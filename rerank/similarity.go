package rerank

import (
	"math"

	"github.com/rushteam/placekit/core"
)

// 相似度各分项权重；只有双方都具备的属性才参与计算，
// 权重按实际参与的分项归一化。
const (
	simWeightPrice      = 0.20
	simWeightAtmosphere = 0.25
	simWeightCuisine    = 0.15
	simWeightDistance   = 0.10
	simWeightRating     = 0.15
	simWeightAmenities  = 0.15

	// 距离分项的饱和范围（公里）：相差 20km 以上视为完全不同
	simDistanceRangeKm = 20.0
)

// Similarity 计算两个场所的相似度，0 完全不同、1 完全相同。
// 双方都缺失某属性时该分项不参与；所有分项都缺失时返回 0。
func Similarity(a, b *core.Place) float64 {
	if a == nil || b == nil {
		return 0
	}

	var sum, weight float64
	add := func(w, term float64) {
		sum += w * term
		weight += w
	}

	if a.PriceLevel != nil && b.PriceLevel != nil {
		diff := math.Abs(float64(*a.PriceLevel - *b.PriceLevel))
		add(simWeightPrice, 1-diff/4)
	}
	if a.Atmosphere != "" && b.Atmosphere != "" {
		if a.Atmosphere == b.Atmosphere {
			add(simWeightAtmosphere, 1)
		} else {
			add(simWeightAtmosphere, 0.5)
		}
	}
	if a.CuisineType != "" && b.CuisineType != "" {
		if a.CuisineType == b.CuisineType {
			add(simWeightCuisine, 1)
		} else {
			add(simWeightCuisine, 0)
		}
	}
	if a.Distance != nil && b.Distance != nil {
		diff := math.Abs(*a.Distance - *b.Distance)
		add(simWeightDistance, 1-math.Min(1, diff/simDistanceRangeKm))
	}
	if a.Rating != nil && b.Rating != nil {
		diff := math.Abs(*a.Rating - *b.Rating)
		add(simWeightRating, 1-diff/5)
	}
	if term, ok := amenityAgreement(a, b); ok {
		add(simWeightAmenities, term)
	}

	if weight == 0 {
		return 0
	}
	return sum / weight
}

// amenityAgreement 统计固定设施集合中双方都显式给出的 key 的一致比例。
func amenityAgreement(a, b *core.Place) (float64, bool) {
	var shared, agree int
	for _, key := range core.AmenityKeys() {
		av, aok := a.Amenities[key]
		bv, bok := b.Amenities[key]
		if !aok || !bok {
			continue
		}
		shared++
		if av == bv {
			agree++
		}
	}
	if shared == 0 {
		return 0, false
	}
	return float64(agree) / float64(shared), true
}
