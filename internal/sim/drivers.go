package sim

import (
	"math"

	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/vec"
)

// Hold leaves every node where the rope put it.
type Hold struct{}

func (Hold) Drive(*rope.Rope, float64) error { return nil }

// Oscillate drags one node sinusoidally around Origin.
type Oscillate struct {
	Node      int
	Origin    vec.Vec2
	Amplitude vec.Vec2
	Frequency float64
}

// NewOscillate centres the motion on the node's current position.
func NewOscillate(r *rope.Rope, node int, amplitude vec.Vec2, frequency float64) (*Oscillate, error) {
	n, err := r.Node(node)
	if err != nil {
		return nil, err
	}
	return &Oscillate{Node: node, Origin: n.Pos, Amplitude: amplitude, Frequency: frequency}, nil
}

func (o *Oscillate) Drive(r *rope.Rope, t float64) error {
	s := math.Sin(2 * math.Pi * o.Frequency * t)
	return r.MoveNode(o.Node, vec.Add(o.Origin, vec.Scale(o.Amplitude, s)))
}
