package rope

import "fmt"

// BendingModel selects which bending constraint formulation Step runs.
type BendingModel int

const (
	// BendNone disables bending resistance entirely.
	BendNone BendingModel = iota

	// BendSpring applies a continuous spring-damper force on velocities
	// before integration, outside the iterative solver.
	BendSpring

	// BendPBD projects the bend angle as a rigid position-based constraint,
	// relaxed by Tuning.BendStiffness.
	BendPBD

	// BendXPBD projects the bend angle as a compliant constraint with a
	// per-constraint multiplier, tuned by BendHertz and BendDamping
	// independently of the iteration count.
	BendXPBD
)

func (m BendingModel) String() string {
	switch m {
	case BendNone:
		return "none"
	case BendSpring:
		return "spring"
	case BendPBD:
		return "pbd"
	case BendXPBD:
		return "xpbd"
	}
	return fmt.Sprintf("BendingModel(%d)", int(m))
}

// ParseBendingModel maps a config/CLI name to a BendingModel.
func ParseBendingModel(name string) (BendingModel, error) {
	switch name {
	case "none":
		return BendNone, nil
	case "spring":
		return BendSpring, nil
	case "pbd":
		return BendPBD, nil
	case "xpbd":
		return BendXPBD, nil
	}
	return BendNone, fmt.Errorf("%w: %q", ErrUnknownBendingModel, name)
}

// Tuning holds the solver parameters. It may be swapped at runtime with
// SetTuning and takes effect on the next Step.
type Tuning struct {
	// Damping is the exponential velocity decay rate for dynamic particles.
	Damping float64

	// StretchStiffness relaxes the distance constraint, in [0, 1].
	// 1 enforces an isolated constraint exactly in one pass.
	StretchStiffness float64

	// BendStiffness relaxes the rigid PBD bend constraint, in [0, 1].
	BendStiffness float64

	// BendHertz is the resonant frequency for the spring and xpbd models.
	BendHertz float64

	// BendDamping is the damping ratio for the spring and xpbd models.
	BendDamping float64

	// BendingModel selects the bending formulation.
	BendingModel BendingModel
}

// DefaultTuning returns a moderately stiff rope.
func DefaultTuning() Tuning {
	return Tuning{
		Damping:          0.0,
		StretchStiffness: 1.0,
		BendStiffness:    0.5,
		BendHertz:        1.0,
		BendDamping:      0.0,
		BendingModel:     BendPBD,
	}
}
