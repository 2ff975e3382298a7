package game

// FrameClock decides on which rendered frames the simulation advances. The
// frame counter only moves while not paused.
type FrameClock struct {
	framesPerTick int
	frameCount    int
	paused        bool
}

// NewFrameClock expects a validated fps/tps pair (tps <= fps).
func NewFrameClock(framesPerSecond, ticksPerSecond int) *FrameClock {
	framesPerTick := framesPerSecond / ticksPerSecond
	if framesPerTick < 1 {
		framesPerTick = 1
	}
	return &FrameClock{framesPerTick: framesPerTick}
}

// Frame registers one rendered frame and reports whether a simulation tick is due.
func (c *FrameClock) Frame() bool {
	if c.paused {
		return false
	}
	c.frameCount++
	return c.frameCount%c.framesPerTick == 0
}

func (c *FrameClock) TogglePause() bool {
	c.paused = !c.paused
	return c.paused
}

func (c *FrameClock) Paused() bool {
	return c.paused
}

func (c *FrameClock) FramesPerTick() int {
	return c.framesPerTick
}

func (c *FrameClock) FrameCount() int {
	return c.frameCount
}
