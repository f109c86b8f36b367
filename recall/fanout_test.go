package recall

import (
	"context"
	"errors"
	"testing"

	"github.com/rushteam/placekit/core"
)

type stubSource struct {
	name   string
	places []string
	score  float64
	err    error
}

func (s *stubSource) Name() string { return s.name }

func (s *stubSource) Recall(_ context.Context, _ *core.RecommendContext) ([]*core.Place, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*core.Place, 0, len(s.places))
	for _, id := range s.places {
		p := core.NewPlace(id)
		p.FinalScore = s.score
		out = append(out, p)
	}
	return out, nil
}

var _ Source = (*stubSource)(nil)

func TestFanoutMergeFirst(t *testing.T) {
	n := &Fanout{
		Sources: []Source{
			&stubSource{name: "s1", places: []string{"a", "b"}, score: 60},
			&stubSource{name: "s2", places: []string{"b", "c"}, score: 80},
		},
		Dedup: true,
	}

	got, err := n.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Process() = %d places, want 3", len(got))
	}
	// 按源声明顺序拼接；重复 ID 保留先到的版本
	wantIDs := []string{"a", "b", "c"}
	for i, id := range wantIDs {
		if got[i].ID != id {
			t.Errorf("place[%d].ID = %s, want %s", i, got[i].ID, id)
		}
	}
	if got[1].FinalScore != 60 {
		t.Errorf("duplicate kept score %v, want first source's 60", got[1].FinalScore)
	}
	if lbl := got[0].Labels["recall_source"]; lbl.Value != "s1" {
		t.Errorf("recall_source = %q, want s1", lbl.Value)
	}
}

func TestFanoutMergeUnion(t *testing.T) {
	n := &Fanout{
		Sources: []Source{
			&stubSource{name: "s1", places: []string{"a"}, score: 60},
			&stubSource{name: "s2", places: []string{"a"}, score: 80},
		},
		Dedup:         true,
		MergeStrategy: MergeUnion,
	}

	got, err := n.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Process() = %d places, want 1", len(got))
	}
	if got[0].FinalScore != 80 {
		t.Errorf("union kept score %v, want higher-scored 80", got[0].FinalScore)
	}
}

func TestFanoutMergePriority(t *testing.T) {
	n := &Fanout{
		Sources: []Source{
			&stubSource{name: "low", places: []string{"b"}, score: 50},
			&stubSource{name: "high", places: []string{"a", "b"}, score: 90},
		},
		Dedup:         true,
		MergeStrategy: MergePriority,
	}

	got, err := n.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Process() = %d places, want 2", len(got))
	}
	// 优先级排序后保首个：下标 0 的源先出
	if got[0].ID != "b" || got[0].FinalScore != 50 {
		t.Errorf("first place = %s score %v, want b from priority-0 source", got[0].ID, got[0].FinalScore)
	}
}

func TestFanoutSourceFailureIsEmpty(t *testing.T) {
	n := &Fanout{
		Sources: []Source{
			&stubSource{name: "broken", err: errors.New("backend down")},
			&stubSource{name: "ok", places: []string{"a"}},
		},
		Dedup: true,
	}

	got, err := n.Process(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Process() error = %v, want nil (failed source degrades to empty)", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Errorf("Process() = %d places, want just a", len(got))
	}
}

func TestFanoutNoSources(t *testing.T) {
	n := &Fanout{}
	got, err := n.Process(context.Background(), nil, nil)
	if err != nil || got != nil {
		t.Errorf("Process() = %v, %v, want nil, nil", got, err)
	}
}
