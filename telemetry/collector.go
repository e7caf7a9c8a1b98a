package telemetry

// Collector accumulates emission counts over windows of simulated time and
// produces WindowStats. Frames are measured in the dt the scene was actually
// stepped with, so speed changes and pauses are reflected.
type Collector struct {
	windowSec float64

	// Simulated seconds since the collector was created
	simTime float64

	// Current window tracking
	windowStartTick int32
	windowElapsed   float64

	// Counters for current window
	respawns       int
	systemsAdded   int
	systemsRemoved int
	frames         int
}

// windowSlack absorbs float32 rounding in summed frame times.
const windowSlack = 1e-6

// NewCollector creates a collector flushing every windowDurationSec
// simulated seconds.
func NewCollector(windowDurationSec float64) *Collector {
	return &Collector{windowSec: windowDurationSec}
}

// RecordFrame adds one stepped frame of dt simulated seconds and the slots
// refreshed by its emission pass.
func (c *Collector) RecordFrame(dt float32, respawns int) {
	c.simTime += float64(dt)
	c.windowElapsed += float64(dt)
	c.respawns += respawns
	c.frames++
}

// RecordSystemAdded records a particle system being created.
func (c *Collector) RecordSystemAdded() {
	c.systemsAdded++
}

// RecordSystemRemoved records a particle system being removed.
func (c *Collector) RecordSystemRemoved() {
	c.systemsRemoved++
}

// ShouldFlush reports whether the window has covered its simulated duration.
// A paused scene never fills a window.
func (c *Collector) ShouldFlush() bool {
	return c.windowSec > 0 && c.windowElapsed >= c.windowSec-windowSlack
}

// Sample is the scene state observed at the end of a window.
type Sample struct {
	Systems  int
	Capacity int
	Alive    int
	InView   int       // live particles inside the world extent
	Lives    []float64 // remaining life of every live particle
	Speeds   []float64 // speed of every live particle
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, sample Sample) WindowStats {
	var aliveFrac, inViewFrac float64
	if sample.Capacity > 0 {
		aliveFrac = float64(sample.Alive) / float64(sample.Capacity)
	}
	if sample.Alive > 0 {
		inViewFrac = float64(sample.InView) / float64(sample.Alive)
	}

	var respawnRate float64
	if c.windowElapsed > 0 {
		respawnRate = float64(c.respawns) / c.windowElapsed
	}

	lifeMean, lifeP10, lifeP50, lifeP90 := ComputeDistribution(sample.Lives)
	speedMean, speedStd, speedP50, speedP90 := ComputeSpreadStats(sample.Speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      c.simTime,

		Systems:  sample.Systems,
		Capacity: sample.Capacity,
		Alive:    sample.Alive,

		AliveFrac:  aliveFrac,
		InViewFrac: inViewFrac,

		Respawns:       c.respawns,
		RespawnRate:    respawnRate,
		EmitFrames:     c.frames,
		SystemsAdded:   c.systemsAdded,
		SystemsRemoved: c.systemsRemoved,

		LifeMean: lifeMean,
		LifeP10:  lifeP10,
		LifeP50:  lifeP50,
		LifeP90:  lifeP90,

		SpeedMean: speedMean,
		SpeedStd:  speedStd,
		SpeedP50:  speedP50,
		SpeedP90:  speedP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.windowElapsed = 0
	c.respawns = 0
	c.systemsAdded = 0
	c.systemsRemoved = 0
	c.frames = 0

	return stats
}
