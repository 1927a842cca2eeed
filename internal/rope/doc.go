// Package rope simulates a chain of point masses joined by distance
// constraints.
//
// Each step has two phases:
//
//   - integration: every free node moves under gravity using position Verlet,
//     where velocity is never stored but derived from the last two positions
//   - relaxation: Iterations passes walk the chain in index order, each node
//     closing a quarter of the length error to each neighbour
//
// More relaxation passes make the rope stiffer. Nodes live in one slice owned
// by [Rope]; neighbour links are indices with -1 meaning "no neighbour".
//
// # Example
//
//	r, err := rope.New(rope.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	r.MoveNode(0, cursor)
//	r.Update(gravity, dt)
//	for _, p := range r.Positions() {
//	    draw(p)
//	}
//
// # Thread Safety
//
// A Rope is NOT safe for concurrent use. Independent ropes may be stepped
// from different goroutines.
package rope
