package pathfind

import "github.com/justmytwospence/firsttracks-terrain/geo"

// Default tunables for a find-path call. RunoutThreshold's value is this
// engine's own choice (the runout BFS's output midpoint), recorded in
// DESIGN.md.
const (
	DefaultAspectGradientThreshold = 0.05
	DefaultRunoutThreshold         = 0.5
	DefaultSnapRadius              = 8
	DefaultExplorationBatchSize    = 125

	// alpha and gentleRatio parameterize the slope penalty in the step
	// cost function.
	alpha       = 4.0
	gentleRatio = 0.1

	// heuristicScale guards admissibility: great-circle Haversine distance
	// is admissible for this cost function in the general case, but a
	// 0.999 safety margin is kept so a pathological projection-distortion
	// case never makes h(n) overestimate the true minimum remaining cost.
	heuristicScale = 0.999
)

// Constraints parameterizes one find-path call.
type Constraints struct {
	// MaxGradient is a required input with no engine-chosen default: the
	// zero value admits only perfectly flat cells (|gradient| <= 0), so a
	// caller must set it to whatever ceiling the host's terrain and risk
	// tolerance demand.
	MaxGradient             float32
	ExcludedAspects         map[geo.Aspect]bool
	AspectGradientThreshold float32 // 0 => DefaultAspectGradientThreshold
	AvoidRunouts            bool
	RunoutThreshold         float32 // 0 => DefaultRunoutThreshold
	ExplorationBatchSize    int     // 0 => DefaultExplorationBatchSize
	SnapRadius              int     // 0 => DefaultSnapRadius
	MaxNodes                int     // 0 => unbounded
}

func (c Constraints) withDefaults() Constraints {
	// MaxGradient has no default here, deliberately: unlike the other
	// tunables, a wrong guess at a ceiling could silently let a host onto
	// terrain it meant to exclude, so a caller must always set it.
	if c.AspectGradientThreshold == 0 {
		c.AspectGradientThreshold = DefaultAspectGradientThreshold
	}
	if c.RunoutThreshold == 0 {
		c.RunoutThreshold = DefaultRunoutThreshold
	}
	if c.ExplorationBatchSize <= 0 {
		c.ExplorationBatchSize = DefaultExplorationBatchSize
	}
	if c.SnapRadius <= 0 {
		c.SnapRadius = DefaultSnapRadius
	}
	return c
}
