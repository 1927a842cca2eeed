// Package metrics holds run metrics computed from the rope after every frame.
package metrics

import "github.com/san-kum/ropesim/internal/sim"

// Standard returns the metric set recorded by every stored run.
func Standard() []sim.Metric {
	return []sim.Metric{NewStretch(), NewMaxStretch(), NewSag(), NewKinetic()}
}
