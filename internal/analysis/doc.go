// Package analysis extracts swing characteristics from recorded runs.
//
//   - [PowerSpectrum]: magnitude spectrum of a node trajectory
//   - [DominantFrequency]: strongest non-DC frequency, the swing frequency of
//     a hanging rope
//   - [NewPhasePortrait]: position against velocity for one node coordinate
//
// # Swing Period
//
// The y track of the middle node of a released rope oscillates at the
// rope's fundamental mode:
//
//	f, err := analysis.DominantFrequency(result.Track(mid, 1), result.SampleDt())
//	if err == nil {
//	    period := 1 / f
//	}
package analysis
