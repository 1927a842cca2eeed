package metrics

import (
	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/vec"
)

// Kinetic averages, over frames, the unit-mass kinetic energy of the free
// nodes, with each velocity taken as the frame's displacement over dt.
type Kinetic struct {
	name    string
	total   float64
	samples int
}

func NewKinetic() *Kinetic {
	return &Kinetic{name: "kinetic"}
}

func (k *Kinetic) Name() string { return k.name }

func (k *Kinetic) Observe(r *rope.Rope, t, dt float64) {
	if dt <= 0 {
		return
	}
	e := 0.0
	for i := 0; i < r.Len(); i++ {
		n, _ := r.Node(i)
		if n.Fixed {
			continue
		}
		v := vec.Mag(n.Velocity()) / dt
		e += 0.5 * v * v
	}
	k.total += e
	k.samples++
}

func (k *Kinetic) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *Kinetic) Reset() {
	k.total = 0
	k.samples = 0
}
