package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/placekit/core"
)

type stubNode struct {
	name string
	kind Kind
	fn   func(rctx *core.RecommendContext, places []*core.Place) ([]*core.Place, error)
}

func (n *stubNode) Name() string { return n.name }
func (n *stubNode) Kind() Kind   { return n.kind }

func (n *stubNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	places []*core.Place,
) ([]*core.Place, error) {
	return n.fn(rctx, places)
}

var _ Node = (*stubNode)(nil)

func TestPipelineRunChainsNodes(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "gen", kind: KindRecall, fn: func(_ *core.RecommendContext, _ []*core.Place) ([]*core.Place, error) {
			return []*core.Place{core.NewPlace("a"), core.NewPlace("b"), core.NewPlace("c")}, nil
		}},
		&stubNode{name: "drop", kind: KindFilter, fn: func(_ *core.RecommendContext, places []*core.Place) ([]*core.Place, error) {
			return places[:2], nil
		}},
		&stubNode{name: "score", kind: KindRank, fn: func(_ *core.RecommendContext, places []*core.Place) ([]*core.Place, error) {
			for _, p := range places {
				p.FinalScore = 70
			}
			return places, nil
		}},
	}}

	got, err := p.Run(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Run() = %d places, want 2", len(got))
	}
	if got[0].ID != "a" || got[0].FinalScore != 70 {
		t.Errorf("first place = %s score %v", got[0].ID, got[0].FinalScore)
	}
}

func TestPipelineRunStopsOnError(t *testing.T) {
	wantErr := errors.New("node failed")
	ran := false
	p := &Pipeline{Nodes: []Node{
		&stubNode{name: "broken", kind: KindRecall, fn: func(_ *core.RecommendContext, _ []*core.Place) ([]*core.Place, error) {
			return nil, wantErr
		}},
		&stubNode{name: "after", kind: KindRank, fn: func(_ *core.RecommendContext, places []*core.Place) ([]*core.Place, error) {
			ran = true
			return places, nil
		}},
	}}

	if _, err := p.Run(context.Background(), nil, nil); !errors.Is(err, wantErr) {
		t.Errorf("Run() error = %v, want %v", err, wantErr)
	}
	if ran {
		t.Error("node after the failing one still ran")
	}
}

func TestNodeFactory(t *testing.T) {
	f := NewNodeFactory()
	f.Register("stub", func(cfg map[string]interface{}) (Node, error) {
		name, _ := cfg["name"].(string)
		return &stubNode{name: name, kind: KindRank, fn: func(_ *core.RecommendContext, places []*core.Place) ([]*core.Place, error) {
			return places, nil
		}}, nil
	})

	node, err := f.Build("stub", map[string]interface{}{"name": "configured"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if node.Name() != "configured" {
		t.Errorf("Name() = %q, want configured", node.Name())
	}

	if _, err := f.Build("missing", nil); err == nil {
		t.Error("Build() accepted an unregistered type")
	}
}

func TestLoadFromYAML(t *testing.T) {
	yaml := `
pipeline:
  name: nearby
  nodes:
    - type: recall.hot
      config:
        top_k: 10
    - type: rerank.topn
      config:
        n: 5
`
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML() error = %v", err)
	}
	if cfg.Pipeline.Name != "nearby" || len(cfg.Pipeline.Nodes) != 2 {
		t.Fatalf("config = %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.Nodes[0].Type != "recall.hot" {
		t.Errorf("node[0].Type = %s", cfg.Pipeline.Nodes[0].Type)
	}
	if got, ok := cfg.Pipeline.Nodes[1].Config["n"].(int); !ok || got != 5 {
		t.Errorf("node[1].Config[n] = %v", cfg.Pipeline.Nodes[1].Config["n"])
	}
}

func TestLoadFromJSON(t *testing.T) {
	jsonCfg := `{"pipeline": {"name": "feed", "nodes": [{"type": "filter", "config": {"open_now": true}}]}}`
	path := filepath.Join(t.TempDir(), "pipeline.json")
	if err := os.WriteFile(path, []byte(jsonCfg), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromJSON(path)
	if err != nil {
		t.Fatalf("LoadFromJSON() error = %v", err)
	}
	if cfg.Pipeline.Name != "feed" || len(cfg.Pipeline.Nodes) != 1 {
		t.Fatalf("config = %+v", cfg.Pipeline)
	}
}

func TestBuildPipeline(t *testing.T) {
	f := NewNodeFactory()
	f.Register("stub", func(cfg map[string]interface{}) (Node, error) {
		return &stubNode{name: "stub", kind: KindRank, fn: func(_ *core.RecommendContext, places []*core.Place) ([]*core.Place, error) {
			return places, nil
		}}, nil
	})

	cfg := &Config{}
	cfg.Pipeline.Nodes = []NodeConfig{{Type: "stub"}}
	p, err := cfg.BuildPipeline(f)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(p.Nodes) != 1 {
		t.Errorf("pipeline has %d nodes, want 1", len(p.Nodes))
	}

	cfg.Pipeline.Nodes = append(cfg.Pipeline.Nodes, NodeConfig{Type: "unknown"})
	if _, err := cfg.BuildPipeline(f); err == nil {
		t.Error("BuildPipeline() accepted an unknown node type")
	}
}
