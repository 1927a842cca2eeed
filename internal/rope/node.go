package rope

import "github.com/san-kum/ropesim/internal/vec"

// NoLink marks a missing neighbour.
const NoLink = -1

// Node is one point mass of the chain.
type Node struct {
	Pos     vec.Vec2
	PrevPos vec.Vec2

	// RestLength is the target distance to the next node.
	RestLength float64
	Fixed      bool

	// Mass is added to gravity as extra downward acceleration. Heavier nodes
	// fall faster; it is not an inertial divisor.
	Mass    float64
	Damping float64

	Prev, Next int
}

// Velocity is the displacement over the last step.
func (n *Node) Velocity() vec.Vec2 {
	return vec.Sub(n.Pos, n.PrevPos)
}

// Integrate advances one node by a position Verlet step. prevDt is the dt of
// the previous step; when it is zero the carried velocity is dropped.
func Integrate(n *Node, gravity vec.Vec2, dt, prevDt float64) {
	if n.Fixed {
		n.PrevPos = n.Pos
		return
	}

	velocity := vec.Sub(n.Pos, n.PrevPos)
	n.PrevPos = n.Pos

	timeCorrection := 0.0
	if prevDt != 0 {
		timeCorrection = dt / prevDt
	}

	accel := vec.Add(gravity, vec.New(0, n.Mass))

	step := vec.Add(vec.Scale(velocity, timeCorrection*n.Damping), vec.Scale(accel, dt*dt))
	n.Pos = vec.Add(n.Pos, step)
}
