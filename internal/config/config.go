// Package config centralizes all tunable scene parameters.
package config

const (
	WindowWidth  = 800
	WindowHeight = 800

	TPS = 60

	// Orbit geometry. The nominal orbit radius is min(width, height)/4,
	// computed where the engine is constructed.
	CenterOrbRadius  = 85
	OrbitalOrbSize   = 6
	SelectionOrbSize = 6

	// Physics
	BaseSpeed          = 0.001
	SpringConstant     = 0.01
	Damping            = 0.98
	AttractionStrength = 0.5
	CenterEpsilon      = 1e-6

	// Glow and animation accumulators
	GlowBoost = 0.5
	GlowDecay = 0.95
	TimeStep  = 0.016
	PulseStep = 0.05

	// Trail retention: points per orb, oldest evicted first.
	// ~68 seconds of history at 60 TPS.
	TrailCap = 4096

	// Back button hit rectangle
	BackButtonX = 20
	BackButtonY = 20
	BackButtonW = 40
	BackButtonH = 40

	// Audio analysis
	AnalysisWindow  = 2048
	SmoothingFactor = 0.6
	PeakThreshold   = 0.6
)
