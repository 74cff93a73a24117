package constants

import "time"

// Grid Geometry
const (
	// CellSize is the side length of one grid cell interior in logical pixels
	CellSize = 10

	// BorderWidth is the thickness of the grid lines separating cells
	BorderWidth = 2

	// Pitch is the distance between adjacent grid intersections
	// (one cell interior plus one border)
	Pitch = CellSize + BorderWidth

	// ElectronRadius is the radius of an electron's solid core,
	// fixed at half the border width so it fits on a grid line
	ElectronRadius = BorderWidth / 2.0

	// ElectronGlow is the width of the additive falloff halo painted
	// around an electron's core
	ElectronGlow = 4.0
)

// Motion & Lifecycle
const (
	// StepLength is how far an electron advances along each axis per frame
	StepLength = 1.0

	// ElectronLifeTime is the default life span of a spawned electron
	ElectronLifeTime = 3 * time.Second

	// DestinationTries is the total number of candidates an electron
	// examines when picking a destination; the last one is accepted
	// even if it was already visited
	DestinationTries = 5

	// MaxElectrons is the soft cap on concurrently live electrons,
	// enforced as headroom at spawn time only
	MaxElectrons = 150

	// MaxElectronsPerCell is the number of corners a cell can spawn
	// electrons from; each corner is used at most once per cell
	MaxElectronsPerCell = 4
)

// Scheduling
const (
	// FrameInterval is the target frame period (~60 FPS)
	FrameInterval = 16 * time.Millisecond

	// CellUpdateMin is the lower bound of a cell's randomized repaint interval
	CellUpdateMin = 300 * time.Millisecond

	// CellUpdateMax is the upper bound of a cell's randomized repaint interval
	CellUpdateMax = 500 * time.Millisecond

	// SpawnIntervalMin is the lower bound between random cell activations
	SpawnIntervalMin = 300 * time.Millisecond

	// SpawnIntervalMax is the upper bound between random cell activations
	SpawnIntervalMax = 1000 * time.Millisecond

	// ResizeDebounce is how long a resize must settle before it is applied
	ResizeDebounce = 100 * time.Millisecond
)

// Compositing
const (
	// BackgroundBlendOpacity is the per-frame blend of the grid layer
	// into the main layer; repeated low-opacity blends fade trails
	BackgroundBlendOpacity = 0.05

	// ResizeFlashBlendOpacity is the strong grid blend applied right
	// after the full-paint highlight flash
	ResizeFlashBlendOpacity = 0.9
)

// Startup Seeding
const (
	// InitialPinnedCells is how many staggered cells a full paint pins
	// so the animation opens with activity
	InitialPinnedCells = 6

	// InitialDelayMin bounds the shortest stagger before a seeded
	// cell's first repaint
	InitialDelayMin = 200 * time.Millisecond

	// InitialDelayMax bounds the longest stagger before a seeded
	// cell's first repaint
	InitialDelayMax = 1500 * time.Millisecond
)
