// Package rope implements a one-dimensional chain of point masses connected
// by distance and bending constraints, solved with position-based dynamics.
//
// The package defines the core simulation object and its tuning surface:
//
//   - [Rope]: owns all per-particle and per-constraint state
//   - [Def]: construction parameters consumed once by [New]
//   - [Tuning]: runtime-adjustable solver parameters
//   - [BendingModel]: selects the bending constraint formulation
//
// # Stepping
//
// The host drives the rope with a fixed timestep and a moving anchor offset:
//
//	r, _ := rope.New(def)
//	for range ticks {
//	    r.Step(1.0/60.0, 8, anchorOffset)
//	}
//
// Particles with non-positive mass are kinematic: each step they are driven
// to their bind position plus the anchor offset instead of being integrated
// under gravity.
//
// # Thread Safety
//
// A Rope is NOT safe for concurrent use. Step calls on independent Rope
// instances may run in parallel; see the runner package's Ensemble.
package rope
