package rope_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ropesim/internal/rope"
	"github.com/san-kum/ropesim/internal/vec"
)

func straightChain(start, end vec.Vec2, spacing, mass float64, iterations int) *rope.Rope {
	nodes, err := rope.Generate(start, end, spacing, mass, 1)
	Expect(err).NotTo(HaveOccurred())
	r, err := rope.FromNodes(nodes, iterations)
	Expect(err).NotTo(HaveOccurred())
	return r
}

func positions(r *rope.Rope) []vec.Vec2 {
	return r.Positions(nil)
}

var _ = Describe("Rope", func() {
	Describe("anchors", func() {
		It("never moves fixed nodes under gravity or neighbour pull", func() {
			r := straightChain(vec.New(0, 0), vec.New(100, 0), 10, 1, 30)
			Expect(r.SetFixed(5, true)).To(Succeed())

			pinned := []int{0, 5, r.Len() - 1}
			before := positions(r)

			for step := 0; step < 200; step++ {
				r.Update(vec.New(50, 980), 1.0/60)
				after := positions(r)
				for _, i := range pinned {
					Expect(after[i]).To(Equal(before[i]), "node %d moved at step %d", i, step)
				}
			}
		})

		It("lets a dragged anchor pull the chain along", func() {
			r := straightChain(vec.New(0, 0), vec.New(50, 0), 10, 0, 40)
			Expect(r.MoveNode(0, vec.New(-20, 0))).To(Succeed())

			for step := 0; step < 10; step++ {
				r.Update(vec.Zero(), 1.0/60)
			}

			n1, err := r.Node(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(n1.Pos.X).To(BeNumerically("<", 10))
		})
	})

	Describe("equilibrium", func() {
		It("stays put with no gravity and exact rest spacing", func() {
			r := straightChain(vec.New(0, 0), vec.New(40, 0), 10, 0, 20)
			before := positions(r)

			for step := 0; step < 500; step++ {
				r.Update(vec.Zero(), 0.016)
			}

			Expect(positions(r)).To(Equal(before))
		})
	})

	Describe("relaxation", func() {
		It("never increases the total link error from one pass to the next", func() {
			nodes := make([]rope.Node, 8)
			for i := range nodes {
				y := 0.0
				if i%2 == 1 {
					y = 7
				}
				p := vec.New(float64(i)*10, y)
				nodes[i] = rope.Node{Pos: p, PrevPos: p, RestLength: 6, Damping: 1}
			}
			nodes[0].Fixed = true

			r, err := rope.FromNodes(nodes, 30)
			Expect(err).NotTo(HaveOccurred())

			initial, _ := r.Stretch()
			history := []float64{initial}
			r.OnPass(func(pass int, r *rope.Rope) {
				total, _ := r.Stretch()
				history = append(history, total)
			})

			r.Update(vec.Zero(), 0.016)

			Expect(history).To(HaveLen(31))
			for i := 1; i < len(history); i++ {
				Expect(history[i]).To(BeNumerically("<=", history[i-1]+1e-9), "pass %d", i)
			}
			Expect(history[len(history)-1]).To(BeNumerically("<", history[0]))
		})

		It("leaves coincident neighbours untouched", func() {
			p := vec.New(3, 4)
			nodes := []rope.Node{
				{Pos: p, PrevPos: p, RestLength: 5, Damping: 1},
				{Pos: p, PrevPos: p, RestLength: 5, Damping: 1},
			}
			r, err := rope.FromNodes(nodes, 1)
			Expect(err).NotTo(HaveOccurred())

			Expect(func() { r.Constrain(0) }).NotTo(Panic())
			r.Constrain(1)

			after := positions(r)
			Expect(after[0]).To(Equal(p))
			Expect(after[1]).To(Equal(p))
			Expect(vec.IsFinite(after[0])).To(BeTrue())
		})
	})

	Describe("integration", func() {
		It("discards carried velocity on the first step", func() {
			gravity := vec.New(3, 100)
			dt := 0.05
			mass := 2.0

			nodes := make([]rope.Node, 4)
			for i := range nodes {
				p := vec.New(float64(i)*10, 0)
				nodes[i] = rope.Node{
					Pos:        p,
					PrevPos:    vec.New(p.X-4, p.Y+9),
					RestLength: 10,
					Mass:       mass,
					Damping:    0.9,
				}
			}
			nodes[0].Fixed = true
			nodes[3].Fixed = true

			r, err := rope.FromNodes(nodes, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.PrevDt()).To(Equal(0.0))

			before := positions(r)
			r.Update(gravity, dt)
			after := positions(r)

			for _, i := range []int{1, 2} {
				Expect(after[i].X).To(BeNumerically("~", before[i].X+gravity.X*dt*dt, 1e-12))
				Expect(after[i].Y).To(BeNumerically("~", before[i].Y+(gravity.Y+mass)*dt*dt, 1e-12))
			}
			Expect(r.PrevDt()).To(Equal(dt))
		})

		It("rescales carried velocity by dt over the previous dt", func() {
			n := rope.Node{Pos: vec.New(0, 10), PrevPos: vec.New(0, 8), Damping: 0.5}
			rope.Integrate(&n, vec.Zero(), 0.02, 0.01)

			Expect(n.PrevPos).To(Equal(vec.New(0, 10)))
			Expect(n.Pos.Y).To(BeNumerically("~", 10+2*2*0.5, 1e-12))
		})

		It("treats mass as extra downward acceleration", func() {
			light := rope.Node{Mass: 0, Damping: 1}
			heavy := rope.Node{Mass: 50, Damping: 1}
			rope.Integrate(&light, vec.New(0, 10), 0.1, 0)
			rope.Integrate(&heavy, vec.New(0, 10), 0.1, 0)

			Expect(heavy.Pos.Y).To(BeNumerically(">", light.Pos.Y))
		})

		It("refreshes history on fixed nodes", func() {
			n := rope.Node{Pos: vec.New(1, 1), PrevPos: vec.New(9, 9), Fixed: true, Damping: 1}
			rope.Integrate(&n, vec.New(0, 100), 0.1, 0.1)

			Expect(n.Pos).To(Equal(vec.New(1, 1)))
			Expect(n.PrevPos).To(Equal(n.Pos))
			Expect(n.Velocity()).To(Equal(vec.Zero()))
		})
	})

	Describe("hanging scenario", func() {
		It("sags the interior while the ends hold", func() {
			cfg := rope.Config{
				Start:      vec.New(0, 0),
				End:        vec.New(40, 0),
				Spacing:    10,
				Mass:       0,
				Damping:    1,
				Gravity:    vec.New(0, 100),
				Iterations: 20,
			}
			r, err := rope.New(cfg)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Len()).To(Equal(5))

			before := positions(r)
			r.Update(cfg.Gravity, 0.1)
			after := positions(r)

			Expect(after[0]).To(Equal(vec.New(0, 0)))
			Expect(after[4]).To(Equal(vec.New(40, 0)))
			for i := 1; i <= 3; i++ {
				Expect(after[i].Y).To(BeNumerically(">", before[i].Y), "node %d", i)
			}
		})
	})
})
