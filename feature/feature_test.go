package feature

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/placekit/core"
	"github.com/rushteam/placekit/store"
)

// fakeFeatureService 内存特征服务，可注入失败。
type fakeFeatureService struct {
	features map[string]map[string]float64
	err      error
}

func (f *fakeFeatureService) Name() string { return "fake" }

func (f *fakeFeatureService) GetPlaceFeatures(ctx context.Context, placeID string) (map[string]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.features[placeID], nil
}

func (f *fakeFeatureService) BatchGetPlaceFeatures(ctx context.Context, placeIDs []string) (map[string]map[string]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]map[string]float64)
	for _, id := range placeIDs {
		if features, ok := f.features[id]; ok {
			out[id] = features
		}
	}
	return out, nil
}

func (f *fakeFeatureService) Close(ctx context.Context) error { return nil }

var _ core.FeatureService = (*fakeFeatureService)(nil)

func TestStoreServiceRoundTrip(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemoryStore()
	defer m.Close()
	svc := NewStoreService(m, "")

	want := map[string]float64{
		FeatureRating:            4.3,
		FeatureReviewCount:       120,
		"venue_stats:popularity": 0.8,
	}
	if err := svc.SetPlaceFeatures(ctx, "p1", want); err != nil {
		t.Fatalf("SetPlaceFeatures() error = %v", err)
	}

	got, err := svc.GetPlaceFeatures(ctx, "p1")
	if err != nil {
		t.Fatalf("GetPlaceFeatures() error = %v", err)
	}
	if len(got) != len(want) || got[FeatureRating] != 4.3 {
		t.Errorf("GetPlaceFeatures() = %v, want %v", got, want)
	}

	// 不存在的 ID：空 map 不报错
	missing, err := svc.GetPlaceFeatures(ctx, "unknown")
	if err != nil {
		t.Fatalf("GetPlaceFeatures(missing) error = %v", err)
	}
	if len(missing) != 0 {
		t.Errorf("missing features = %v, want empty", missing)
	}
}

func TestStoreServiceBatchSkipsCorrupt(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemoryStore()
	defer m.Close()
	svc := NewStoreService(m, "")

	svc.SetPlaceFeatures(ctx, "good", map[string]float64{FeatureRating: 4})
	m.Set(ctx, "place:features:bad", []byte("not json"))

	got, err := svc.BatchGetPlaceFeatures(ctx, []string{"good", "bad", "missing"})
	if err != nil {
		t.Fatalf("BatchGetPlaceFeatures() error = %v", err)
	}
	if len(got) != 1 {
		t.Errorf("batch returned %d entries, want only the decodable one", len(got))
	}
	if got["good"][FeatureRating] != 4 {
		t.Errorf("good features = %v", got["good"])
	}
}

func TestFallbackUsesBackup(t *testing.T) {
	ctx := context.Background()
	primary := &fakeFeatureService{err: errors.New("feast down")}
	backup := &fakeFeatureService{features: map[string]map[string]float64{
		"p1": {FeatureRating: 3.9},
	}}
	fb := NewFallback(primary, backup)

	got, err := fb.GetPlaceFeatures(ctx, "p1")
	if err != nil {
		t.Fatalf("GetPlaceFeatures() error = %v", err)
	}
	if got[FeatureRating] != 3.9 {
		t.Errorf("features = %v, want backup's", got)
	}

	batch, err := fb.BatchGetPlaceFeatures(ctx, []string{"p1"})
	if err != nil {
		t.Fatalf("BatchGetPlaceFeatures() error = %v", err)
	}
	if batch["p1"][FeatureRating] != 3.9 {
		t.Errorf("batch features = %v", batch)
	}
}

func TestFallbackPrefersPrimary(t *testing.T) {
	primary := &fakeFeatureService{features: map[string]map[string]float64{
		"p1": {FeatureRating: 4.5},
	}}
	backup := &fakeFeatureService{features: map[string]map[string]float64{
		"p1": {FeatureRating: 1.0},
	}}
	fb := NewFallback(primary, backup)

	got, err := fb.GetPlaceFeatures(context.Background(), "p1")
	if err != nil {
		t.Fatalf("GetPlaceFeatures() error = %v", err)
	}
	if got[FeatureRating] != 4.5 {
		t.Errorf("features = %v, want primary's", got)
	}
}

func TestFallbackBothMissing(t *testing.T) {
	fb := &Fallback{}
	if _, err := fb.GetPlaceFeatures(context.Background(), "p1"); !errors.Is(err, ErrFeatureUnavailable) {
		t.Errorf("error = %v, want ErrFeatureUnavailable", err)
	}
}

func TestEnrichNodeFillsMissingStats(t *testing.T) {
	svc := &fakeFeatureService{features: map[string]map[string]float64{
		"p1": {
			FeatureRating:            6.2, // 超出评分量程，回填时截断
			FeatureReviewCount:       87.4,
			"venue_stats:popularity": 0.9,
		},
	}}
	n := NewEnrichNode(svc)

	in := core.NewPlace("p1")
	got, err := n.Process(context.Background(), nil, []*core.Place{in})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	p := got[0]
	if p.Rating == nil || *p.Rating != 5 {
		t.Errorf("Rating = %v, want clamped 5", p.Rating)
	}
	if p.ReviewCount == nil || *p.ReviewCount != 87 {
		t.Errorf("ReviewCount = %v, want rounded 87", p.ReviewCount)
	}
	if v, ok := p.Meta["feature:venue_stats:popularity"]; !ok || v != 0.9 {
		t.Errorf("popularity meta = %v", v)
	}
	if lbl := p.Labels["enriched_by"]; lbl.Value != "fake" {
		t.Errorf("enriched_by = %q, want fake", lbl.Value)
	}
	// 输入候选不被改写
	if in.Rating != nil {
		t.Error("input place was mutated")
	}
}

func TestEnrichNodeRespectsExistingStats(t *testing.T) {
	svc := &fakeFeatureService{features: map[string]map[string]float64{
		"p1": {FeatureRating: 3.0, FeatureReviewCount: 10},
	}}

	base := core.NewPlace("p1")
	base.Rating = core.Float64Ptr(4.8)
	base.ReviewCount = core.IntPtr(500)

	t.Run("default keeps existing", func(t *testing.T) {
		n := NewEnrichNode(svc)
		got, err := n.Process(context.Background(), nil, []*core.Place{base.Clone()})
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if *got[0].Rating != 4.8 || *got[0].ReviewCount != 500 {
			t.Errorf("stats overwritten: rating %v count %v", *got[0].Rating, *got[0].ReviewCount)
		}
	})

	t.Run("overwrite replaces", func(t *testing.T) {
		n := &EnrichNode{FeatureService: svc, Overwrite: true}
		got, err := n.Process(context.Background(), nil, []*core.Place{base.Clone()})
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if *got[0].Rating != 3.0 || *got[0].ReviewCount != 10 {
			t.Errorf("stats not overwritten: rating %v count %v", *got[0].Rating, *got[0].ReviewCount)
		}
	})
}

func TestEnrichNodeServiceFailurePassesThrough(t *testing.T) {
	n := NewEnrichNode(&fakeFeatureService{err: errors.New("unavailable")})
	in := []*core.Place{core.NewPlace("p1")}

	got, err := n.Process(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("Process() error = %v, want degradation without error", err)
	}
	if len(got) != 1 || got[0] != in[0] {
		t.Error("failed enrichment should pass candidates through unchanged")
	}
}

func TestEnrichNodeNilService(t *testing.T) {
	n := &EnrichNode{}
	in := []*core.Place{core.NewPlace("p1")}
	got, err := n.Process(context.Background(), nil, in)
	if err != nil || len(got) != 1 || got[0] != in[0] {
		t.Errorf("Process() = %v, %v, want passthrough", got, err)
	}
}
