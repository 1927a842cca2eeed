package rope

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/ropesim/internal/vec"
)

func TestGenerateLayout(t *testing.T) {
	nodes, err := Generate(vec.New(0, 0), vec.New(40, 0), 10, 2, 0.9)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(nodes) != 5 {
		t.Fatalf("expected 5 nodes, got %d", len(nodes))
	}

	for i, n := range nodes {
		want := vec.New(float64(i)*10, 0)
		if n.Pos != want {
			t.Errorf("node %d: expected %v, got %v", i, want, n.Pos)
		}
		if n.PrevPos != n.Pos {
			t.Errorf("node %d: expected zero initial velocity", i)
		}
		if n.RestLength != 10 || n.Mass != 2 || n.Damping != 0.9 {
			t.Errorf("node %d: unexpected parameters %+v", i, n)
		}
		if n.Fixed != (i == 0 || i == 4) {
			t.Errorf("node %d: fixed=%v", i, n.Fixed)
		}
	}
}

func TestGenerateLinks(t *testing.T) {
	nodes, err := Generate(vec.New(0, 0), vec.New(0, 30), 10, 1, 1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if nodes[0].Prev != NoLink {
		t.Errorf("first node should have no prev, got %d", nodes[0].Prev)
	}
	if nodes[len(nodes)-1].Next != NoLink {
		t.Errorf("last node should have no next, got %d", nodes[len(nodes)-1].Next)
	}
	for i := 1; i < len(nodes)-1; i++ {
		if nodes[i].Prev != i-1 || nodes[i].Next != i+1 {
			t.Errorf("node %d: links %d/%d", i, nodes[i].Prev, nodes[i].Next)
		}
	}
}

func TestGenerateKeepsConfiguredRestLength(t *testing.T) {
	nodes, err := Generate(vec.New(0, 0), vec.New(45, 0), 10, 1, 1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(nodes) != 5 {
		t.Fatalf("expected 5 nodes, got %d", len(nodes))
	}
	gap := vec.Dist(nodes[0].Pos, nodes[1].Pos)
	if math.Abs(gap-11.25) > 1e-12 {
		t.Errorf("expected gap 11.25, got %f", gap)
	}
	for i, n := range nodes {
		if n.RestLength != 10 {
			t.Errorf("node %d: expected rest length 10, got %f", i, n.RestLength)
		}
	}
}

func TestGenerateShortSpan(t *testing.T) {
	nodes, err := Generate(vec.New(0, 0), vec.New(3, 4), 10, 1, 1)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if len(nodes) != 2 {
		t.Fatalf("expected the two anchors, got %d nodes", len(nodes))
	}
	if nodes[1].Pos != vec.New(3, 4) {
		t.Errorf("expected end at (3,4), got %v", nodes[1].Pos)
	}
}

func TestGenerateRejects(t *testing.T) {
	tests := []struct {
		name       string
		start, end vec.Vec2
		spacing    float64
		damping    float64
		want       error
	}{
		{"zero spacing", vec.New(0, 0), vec.New(10, 0), 0, 1, ErrInvalidSpacing},
		{"negative spacing", vec.New(0, 0), vec.New(10, 0), -1, 1, ErrInvalidSpacing},
		{"same endpoints", vec.New(5, 5), vec.New(5, 5), 1, 1, ErrDegenerateSpan},
		{"zero damping", vec.New(0, 0), vec.New(10, 0), 1, 0, ErrInvalidDamping},
		{"damping above one", vec.New(0, 0), vec.New(10, 0), 1, 1.5, ErrInvalidDamping},
		{"nan spacing", vec.New(0, 0), vec.New(10, 0), math.NaN(), 1, ErrNonFinite},
		{"inf endpoint", vec.New(0, 0), vec.New(math.Inf(1), 0), 1, 1, ErrNonFinite},
		{"tiny spacing", vec.New(0, 0), vec.New(1e6, 0), 1e-3, 1, ErrTooManyNodes},
		{"subnormal spacing", vec.New(0, 0), vec.New(600, 0), 1e-300, 1, ErrTooManyNodes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.start, tt.end, tt.spacing, 1, tt.damping)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestNodeCount(t *testing.T) {
	tests := []struct {
		name    string
		spacing float64
		want    int
		wantErr error
	}{
		{"exact multiple", 10, 61, nil},
		{"longer than span", 1000, 2, nil},
		{"overflowing ratio", 1e-300, 0, ErrTooManyNodes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := NodeCount(vec.New(100, 300), vec.New(700, 300), tt.spacing)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if n != tt.want {
				t.Errorf("expected %d nodes, got %d", tt.want, n)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg := DefaultConfig()
	cfg.Iterations = -1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidIterations) {
		t.Errorf("expected ErrInvalidIterations, got %v", err)
	}

	cfg = DefaultConfig()
	cfg.Gravity = vec.New(math.NaN(), 0)
	if err := cfg.Validate(); !errors.Is(err, ErrNonFinite) {
		t.Errorf("expected ErrNonFinite, got %v", err)
	}
}

func TestFromNodes(t *testing.T) {
	if _, err := FromNodes([]Node{{}}, 1); !errors.Is(err, ErrEmptyChain) {
		t.Errorf("expected ErrEmptyChain, got %v", err)
	}

	r, err := FromNodes(make([]Node, 3), 4)
	if err != nil {
		t.Fatalf("from nodes failed: %v", err)
	}
	if r.nodes[0].Prev != NoLink || r.nodes[2].Next != NoLink || r.nodes[1].Next != 2 {
		t.Error("links not rewired")
	}
	if _, err := r.Node(3); !errors.Is(err, ErrNodeIndex) {
		t.Errorf("expected ErrNodeIndex, got %v", err)
	}
	if err := r.MoveNode(-1, vec.Zero()); !errors.Is(err, ErrNodeIndex) {
		t.Errorf("expected ErrNodeIndex, got %v", err)
	}
}

func TestFlatten(t *testing.T) {
	r, err := New(Config{Start: vec.New(0, 1), End: vec.New(20, 1), Spacing: 10, Damping: 1, Iterations: 1})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	got := r.Flatten()
	want := []float64{0, 1, 10, 1, 20, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %f, got %f", i, want[i], got[i])
		}
	}
	if r.Length() != 20 {
		t.Errorf("expected length 20, got %f", r.Length())
	}
}
