// Package analysis provides measurement tools for spring responses.
//
// The package characterizes a response independently of the closed form
// that produced it:
//
//   - [PowerSpectrum] and [DominantFrequency]: FFT-based frequency content
//     of a sampled response
//   - [PhasePortrait]: displacement/velocity trajectories, with an ASCII
//     rendering for terminals
//   - [DecayRate] and [EnvelopeRate]: measured versus analytic envelope
//     decay, which exposes integrator dissipation
//
// # Frequency Check
//
// An underdamped run should ring at the damped natural frequency:
//
//	f := analysis.DominantFrequency(displacement, 1.0/fps)
//	want := model.DampedNaturalFrequency() / (2 * math.Pi)
package analysis
