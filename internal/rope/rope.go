package rope

import (
	"fmt"
	"math"

	"github.com/san-kum/ropesim/internal/vec"
)

// relaxFactor is the share of a link's length error each endpoint closes per
// visit. Convergence is asymptotic over many passes.
const relaxFactor = 0.25

// Config holds everything needed to build and step a rope.
type Config struct {
	Start      vec.Vec2 `yaml:"start" json:"start"`
	End        vec.Vec2 `yaml:"end" json:"end"`
	Spacing    float64  `yaml:"spacing" json:"spacing"`
	Mass       float64  `yaml:"mass" json:"mass"`
	Damping    float64  `yaml:"damping" json:"damping"`
	Gravity    vec.Vec2 `yaml:"gravity" json:"gravity"`
	Iterations int      `yaml:"iterations" json:"iterations"`
}

// DefaultConfig is an 800x600 scene with the rope strung across the middle.
func DefaultConfig() Config {
	return Config{
		Start:      vec.New(100, 300),
		End:        vec.New(700, 300),
		Spacing:    10,
		Mass:       1,
		Damping:    0.99,
		Gravity:    vec.New(0, 3000),
		Iterations: 600,
	}
}

// Validate reports the first construction error in c.
func (c Config) Validate() error {
	if err := checkGeometry(c.Start, c.End, c.Spacing, c.Mass, c.Damping); err != nil {
		return err
	}
	if !vec.IsFinite(c.Gravity) {
		return fmt.Errorf("gravity %v: %w", c.Gravity, ErrNonFinite)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("iterations %d: %w", c.Iterations, ErrInvalidIterations)
	}
	return nil
}

// PassFunc is called after each relaxation pass of an Update.
type PassFunc func(pass int, r *Rope)

// Rope owns the node sequence and the time step of the previous Update.
type Rope struct {
	nodes      []Node
	iterations int
	prevDt     float64
	onPass     PassFunc
}

// New generates a chain from cfg.
func New(cfg Config) (*Rope, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	nodes, err := Generate(cfg.Start, cfg.End, cfg.Spacing, cfg.Mass, cfg.Damping)
	if err != nil {
		return nil, err
	}
	return &Rope{nodes: nodes, iterations: cfg.Iterations}, nil
}

// FromNodes takes ownership of a prepared node slice. Links are rewired to
// the slice order; Fixed flags and rest lengths are kept as given.
func FromNodes(nodes []Node, iterations int) (*Rope, error) {
	if len(nodes) < 2 {
		return nil, ErrEmptyChain
	}
	if iterations < 0 {
		return nil, fmt.Errorf("iterations %d: %w", iterations, ErrInvalidIterations)
	}
	for i := range nodes {
		nodes[i].Prev = i - 1
		nodes[i].Next = i + 1
	}
	nodes[len(nodes)-1].Next = NoLink
	return &Rope{nodes: nodes, iterations: iterations}, nil
}

func (r *Rope) Len() int { return len(r.nodes) }

func (r *Rope) Iterations() int { return r.iterations }

// SetIterations changes the number of relaxation passes per Update. Negative
// values are clamped to zero.
func (r *Rope) SetIterations(n int) {
	if n < 0 {
		n = 0
	}
	r.iterations = n
}

// PrevDt is the dt of the last Update, zero before the first.
func (r *Rope) PrevDt() float64 { return r.prevDt }

// OnPass installs fn to run after every relaxation pass. nil removes it.
func (r *Rope) OnPass(fn PassFunc) { r.onPass = fn }

// Node returns a copy of node i.
func (r *Rope) Node(i int) (Node, error) {
	if i < 0 || i >= len(r.nodes) {
		return Node{}, fmt.Errorf("node %d of %d: %w", i, len(r.nodes), ErrNodeIndex)
	}
	return r.nodes[i], nil
}

// Positions appends every node position to dst in chain order.
func (r *Rope) Positions(dst []vec.Vec2) []vec.Vec2 {
	for i := range r.nodes {
		dst = append(dst, r.nodes[i].Pos)
	}
	return dst
}

// Flatten returns positions as [x0, y0, x1, y1, ...].
func (r *Rope) Flatten() []float64 {
	out := make([]float64, 0, 2*len(r.nodes))
	for i := range r.nodes {
		out = append(out, r.nodes[i].Pos.X, r.nodes[i].Pos.Y)
	}
	return out
}

// MoveNode places node i at p without touching its history. Dragging a fixed
// anchor is how pointer input reaches the rope.
func (r *Rope) MoveNode(i int, p vec.Vec2) error {
	if i < 0 || i >= len(r.nodes) {
		return fmt.Errorf("node %d of %d: %w", i, len(r.nodes), ErrNodeIndex)
	}
	r.nodes[i].Pos = p
	return nil
}

// SetFixed pins or releases node i.
func (r *Rope) SetFixed(i int, fixed bool) error {
	if i < 0 || i >= len(r.nodes) {
		return fmt.Errorf("node %d of %d: %w", i, len(r.nodes), ErrNodeIndex)
	}
	r.nodes[i].Fixed = fixed
	return nil
}

// Update advances the rope by dt: Verlet integration of every node, then
// Iterations relaxation passes over the whole chain.
func (r *Rope) Update(gravity vec.Vec2, dt float64) {
	for i := range r.nodes {
		Integrate(&r.nodes[i], gravity, dt, r.prevDt)
	}

	for pass := 0; pass < r.iterations; pass++ {
		r.Relax()
		if r.onPass != nil {
			r.onPass(pass, r)
		}
	}

	r.prevDt = dt
}

// Relax runs one relaxation pass over all nodes in index order.
func (r *Rope) Relax() {
	for i := range r.nodes {
		r.Constrain(i)
	}
}

// Constrain corrects node i against its next neighbour, then its previous
// one. Fixed nodes never move but still pull their free neighbours.
func (r *Rope) Constrain(i int) {
	if i < 0 || i >= len(r.nodes) {
		return
	}
	n := &r.nodes[i]
	if n.Next != NoLink {
		r.relaxLink(n, &r.nodes[n.Next])
	}
	if n.Prev != NoLink {
		r.relaxLink(n, &r.nodes[n.Prev])
	}
}

// relaxLink uses self's rest length for both directions.
func (r *Rope) relaxLink(self, other *Node) {
	delta := vec.Sub(other.Pos, self.Pos)
	diff := vec.Mag(delta) - self.RestLength
	normal := vec.Normalized(delta)
	correction := vec.Scale(normal, diff*relaxFactor)

	if !self.Fixed {
		self.Pos = vec.Add(self.Pos, correction)
	}
	if !other.Fixed {
		other.Pos = vec.Sub(other.Pos, correction)
	}
}

// Stretch sums |distance - rest length| over every link and also returns the
// largest single link error.
func (r *Rope) Stretch() (total, worst float64) {
	for i := 0; i+1 < len(r.nodes); i++ {
		d := math.Abs(vec.Dist(r.nodes[i].Pos, r.nodes[i+1].Pos) - r.nodes[i].RestLength)
		total += d
		worst = math.Max(worst, d)
	}
	return total, worst
}

// Length is the current arc length of the chain.
func (r *Rope) Length() float64 {
	total := 0.0
	for i := 0; i+1 < len(r.nodes); i++ {
		total += vec.Dist(r.nodes[i].Pos, r.nodes[i+1].Pos)
	}
	return total
}

// Finite reports whether every node position is finite.
func (r *Rope) Finite() bool {
	for i := range r.nodes {
		if !vec.IsFinite(r.nodes[i].Pos) {
			return false
		}
	}
	return true
}
