package rank

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/placekit/core"
)

// fakeReviewStore 是内存评论源，支持按 ID 注入评论或错误。
type fakeReviewStore struct {
	reviews map[string][]core.Review
	errs    map[string]error
}

func (s *fakeReviewStore) Name() string { return "fake" }

func (s *fakeReviewStore) GetReviews(_ context.Context, placeID string, limit int) ([]core.Review, error) {
	if err, ok := s.errs[placeID]; ok {
		return nil, err
	}
	reviews := s.reviews[placeID]
	if limit > 0 && len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews, nil
}

func TestQualityNodeProcess(t *testing.T) {
	store := &fakeReviewStore{
		reviews: map[string][]core.Review{
			"good": {
				{Text: "zzz", Rating: 5},
				{Text: "yyy", Rating: 5},
			},
			"empty": nil,
		},
		errs: map[string]error{
			"broken": errors.New("backend down"),
		},
	}
	node := &QualityNode{Reviews: store}

	places := []*core.Place{
		core.NewPlace("good"),
		core.NewPlace("empty"),
		core.NewPlace("broken"),
	}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, places)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("got %d places, want 3", len(out))
	}

	// 顺序不变
	for i, id := range []string{"good", "empty", "broken"} {
		if out[i].ID != id {
			t.Errorf("out[%d].ID = %s, want %s", i, out[i].ID, id)
		}
	}

	good := out[0]
	if good.MatchScore != 100 {
		t.Errorf("good MatchScore = %v, want 100", good.MatchScore)
	}
	if good.ReviewCount == nil || *good.ReviewCount != 2 {
		t.Errorf("good ReviewCount = %v, want 2", good.ReviewCount)
	}
	if _, ok := good.Labels["why"]; !ok {
		t.Error("good place missing why label")
	}
	if got := good.MatchDetails["quality"]; got != 100 {
		t.Errorf("good quality detail = %v, want 100", got)
	}

	// 无评论与评论源失败：都退化为中性 50
	for _, id := range []string{"empty", "broken"} {
		for _, p := range out {
			if p.ID != id {
				continue
			}
			if p.MatchScore != 50 {
				t.Errorf("%s MatchScore = %v, want 50", id, p.MatchScore)
			}
		}
	}

	// 原始输入不被改写
	if places[0].MatchScore != 0 {
		t.Errorf("input place mutated: MatchScore = %v", places[0].MatchScore)
	}
}

func TestQualityNodeKeepsExistingReviewCount(t *testing.T) {
	store := &fakeReviewStore{
		reviews: map[string][]core.Review{
			"a": {{Text: "zzz", Rating: 4}},
		},
	}
	node := &QualityNode{Reviews: store}

	p := core.NewPlace("a")
	p.ReviewCount = core.IntPtr(340) // 候选记录自带的总量优先于本次拉取数

	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Place{p})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if *out[0].ReviewCount != 340 {
		t.Errorf("ReviewCount = %d, want 340", *out[0].ReviewCount)
	}
}

func TestQualityNodeCompanionFromProfile(t *testing.T) {
	store := &fakeReviewStore{
		reviews: map[string][]core.Review{
			"a": {
				{Text: "zzz", Rating: 3},
				{Text: "yyy", Rating: 3},
			},
		},
	}
	node := &QualityNode{Reviews: store}
	rctx := &core.RecommendContext{
		User: &core.UserProfile{UserID: "u1", Companion: core.CompanionFamily},
	}

	out, err := node.Process(context.Background(), rctx, []*core.Place{core.NewPlace("a")})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	// 基础 60 + family 10
	if out[0].MatchScore != 70 {
		t.Errorf("MatchScore = %v, want 70", out[0].MatchScore)
	}
}

func TestQualityNodeNilContext(t *testing.T) {
	store := &fakeReviewStore{
		reviews: map[string][]core.Review{
			"a": {
				{Text: "zzz", Rating: 5},
				{Text: "yyy", Rating: 5},
			},
		},
	}
	node := &QualityNode{Reviews: store}

	// rctx 是可选协作方：为 nil 时按空画像打分，不得 panic
	out, err := node.Process(context.Background(), nil, []*core.Place{core.NewPlace("a")})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out[0].MatchScore != 100 {
		t.Errorf("MatchScore = %v, want 100", out[0].MatchScore)
	}
}

func TestQualityNodeNoReviewStore(t *testing.T) {
	node := &QualityNode{}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, []*core.Place{core.NewPlace("a")})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if out[0].MatchScore != 50 {
		t.Errorf("MatchScore = %v, want 50", out[0].MatchScore)
	}
}
