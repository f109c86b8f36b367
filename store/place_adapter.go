package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rushteam/placekit/core"
)

// 默认 key 约定。
const (
	DefaultPlaceKeyPrefix  = "place:"
	DefaultReviewKeyPrefix = "place:reviews:"
)

// PlaceAdapter 把通用 KV 存储适配成 core.PlaceStore：
// 场所记录以 JSON 存在 {KeyPrefix}{id} 下。
type PlaceAdapter struct {
	Store     core.Store
	KeyPrefix string // 默认 "place:"
}

var _ core.PlaceStore = (*PlaceAdapter)(nil)

func (a *PlaceAdapter) Name() string { return "store.place" }

func (a *PlaceAdapter) GetPlace(ctx context.Context, id string) (*core.Place, error) {
	data, err := a.Store.Get(ctx, a.key(id))
	if err != nil {
		return nil, err
	}
	return decodePlace(id, data)
}

func (a *PlaceAdapter) BatchGetPlaces(ctx context.Context, ids []string) ([]*core.Place, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, a.key(id))
	}
	kvs, err := a.Store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	// 缺席的 ID 直接跳过，保持输入顺序
	out := make([]*core.Place, 0, len(ids))
	for i, id := range ids {
		data, ok := kvs[keys[i]]
		if !ok {
			continue
		}
		p, err := decodePlace(id, data)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// PutPlace 写入场所记录（数据装配/测试用）。
func (a *PlaceAdapter) PutPlace(ctx context.Context, p *core.Place, ttl ...int) error {
	data, err := json.Marshal(encodePlace(p))
	if err != nil {
		return err
	}
	return a.Store.Set(ctx, a.key(p.ID), data, ttl...)
}

func (a *PlaceAdapter) key(id string) string {
	prefix := a.KeyPrefix
	if prefix == "" {
		prefix = DefaultPlaceKeyPrefix
	}
	return prefix + id
}

// ReviewAdapter 把通用 KV 存储适配成 core.ReviewStore：
// 评论列表以 JSON 数组存在 {KeyPrefix}{placeID} 下。
type ReviewAdapter struct {
	Store     core.Store
	KeyPrefix string // 默认 "place:reviews:"
}

var _ core.ReviewStore = (*ReviewAdapter)(nil)

func (a *ReviewAdapter) Name() string { return "store.review" }

func (a *ReviewAdapter) GetReviews(ctx context.Context, placeID string, limit int) ([]core.Review, error) {
	data, err := a.Store.Get(ctx, a.key(placeID))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	var records []reviewRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	out := make([]core.Review, 0, len(records))
	for _, r := range records {
		out = append(out, r.toReview())
	}
	return out, nil
}

// PutReviews 写入评论列表（数据装配/测试用）。
func (a *ReviewAdapter) PutReviews(ctx context.Context, placeID string, reviews []core.Review, ttl ...int) error {
	records := make([]reviewRecord, 0, len(reviews))
	for _, r := range reviews {
		records = append(records, toReviewRecord(r))
	}
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return a.Store.Set(ctx, a.key(placeID), data, ttl...)
}

func (a *ReviewAdapter) key(placeID string) string {
	prefix := a.KeyPrefix
	if prefix == "" {
		prefix = DefaultReviewKeyPrefix
	}
	return prefix + placeID
}

// placeRecord 是场所记录的存储形状；与 core.Place 解耦，
// 存量数据结构演进不影响领域类型。
type placeRecord struct {
	Name            string          `json:"name"`
	Address         string          `json:"address,omitempty"`
	Lat             float64         `json:"lat"`
	Lng             float64         `json:"lng"`
	Rating          *float64        `json:"rating,omitempty"`
	ReviewCount     *int            `json:"review_count,omitempty"`
	PriceLevel      *int            `json:"price_level,omitempty"`
	CuisineType     string          `json:"cuisine_type,omitempty"`
	Atmosphere      string          `json:"atmosphere,omitempty"`
	OutdoorSeating  bool            `json:"outdoor_seating,omitempty"`
	IndoorSeating   bool            `json:"indoor_seating,omitempty"`
	ServesBreakfast bool            `json:"serves_breakfast,omitempty"`
	ServesLunch     bool            `json:"serves_lunch,omitempty"`
	ServesDinner    bool            `json:"serves_dinner,omitempty"`
	Amenities       map[string]bool `json:"amenities,omitempty"`
	Hours           []hourRecord    `json:"hours,omitempty"`
}

type hourRecord struct {
	Day   int `json:"day"` // 0=Sunday .. 6=Saturday
	Open  int `json:"open"`
	Close int `json:"close"`
}

type reviewRecord struct {
	Text   string  `json:"text"`
	Rating float64 `json:"rating,omitempty"`
	Date   string  `json:"date,omitempty"` // RFC3339
	Author string  `json:"author,omitempty"`
}

func decodePlace(id string, data []byte) (*core.Place, error) {
	var rec placeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	p := core.NewPlace(id)
	p.Name = rec.Name
	p.Address = rec.Address
	p.Lat = rec.Lat
	p.Lng = rec.Lng
	p.Rating = rec.Rating
	p.ReviewCount = rec.ReviewCount
	p.PriceLevel = rec.PriceLevel
	p.CuisineType = rec.CuisineType
	p.Atmosphere = rec.Atmosphere
	p.OutdoorSeating = rec.OutdoorSeating
	p.IndoorSeating = rec.IndoorSeating
	p.ServesBreakfast = rec.ServesBreakfast
	p.ServesLunch = rec.ServesLunch
	p.ServesDinner = rec.ServesDinner
	for k, v := range rec.Amenities {
		p.Amenities[k] = v
	}
	if len(rec.Hours) > 0 {
		hours := &core.OpeningHours{}
		for _, h := range rec.Hours {
			hours.Periods = append(hours.Periods, core.OpenPeriod{
				Day:   time.Weekday(h.Day),
				Open:  h.Open,
				Close: h.Close,
			})
		}
		p.Hours = hours
	}
	return p, nil
}

func encodePlace(p *core.Place) placeRecord {
	rec := placeRecord{
		Name:            p.Name,
		Address:         p.Address,
		Lat:             p.Lat,
		Lng:             p.Lng,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		PriceLevel:      p.PriceLevel,
		CuisineType:     p.CuisineType,
		Atmosphere:      p.Atmosphere,
		OutdoorSeating:  p.OutdoorSeating,
		IndoorSeating:   p.IndoorSeating,
		ServesBreakfast: p.ServesBreakfast,
		ServesLunch:     p.ServesLunch,
		ServesDinner:    p.ServesDinner,
		Amenities:       p.Amenities,
	}
	if p.Hours != nil {
		for _, period := range p.Hours.Periods {
			rec.Hours = append(rec.Hours, hourRecord{
				Day:   int(period.Day),
				Open:  period.Open,
				Close: period.Close,
			})
		}
	}
	return rec
}

func (r reviewRecord) toReview() core.Review {
	review := core.Review{
		Text:   r.Text,
		Rating: r.Rating,
		Author: r.Author,
	}
	if r.Date != "" {
		if t, err := time.Parse(time.RFC3339, r.Date); err == nil {
			review.Date = t
		}
	}
	return review
}

func toReviewRecord(r core.Review) reviewRecord {
	rec := reviewRecord{
		Text:   r.Text,
		Rating: r.Rating,
		Author: r.Author,
	}
	if !r.Date.IsZero() {
		rec.Date = r.Date.Format(time.RFC3339)
	}
	return rec
}
