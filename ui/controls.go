package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particles/systems"
)

// Slider ranges.
const (
	OriginMin = -1
	OriginMax = 1
)

// PanelState is what the control panel shows this frame.
type PanelState struct {
	Speed, MinSpeed, MaxSpeed float32
	Capacity, MaxCapacity     int
	Names                     []string     // one per system, creation order
	Origins                   []mgl32.Vec2 // one per system, creation order
	Gravity, Wind, Paused     bool
}

// OriginMove is a slider edit of one system's emission origin.
type OriginMove struct {
	Index  int
	Origin mgl32.Vec2
}

// Actions are the edits the user made this frame. Zero value means nothing
// changed.
type Actions struct {
	Speed        float32
	SpeedChanged bool

	Capacity        int
	CapacityChanged bool

	Moves []OriginMove

	Spawn     bool
	SpawnKind systems.EmitterKind

	Gravity        bool
	GravityChanged bool
	Wind           bool
	WindChanged    bool
	Paused         bool
	PauseChanged   bool

	Close bool
}

// ControlsPanel renders the raygui control panel on the left edge.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point lies over the panel, so the
// caller can ignore camera input there.
func (c *ControlsPanel) Contains(px, py float32, state PanelState) bool {
	if !c.visible {
		return false
	}
	h := c.height(state)
	return px >= float32(c.x) && px <= float32(c.x+c.width) &&
		py >= float32(c.y) && py <= float32(c.y+h)
}

const (
	rowHeight   = 20
	rowGap      = 6
	labelOffset = 14
)

func (c *ControlsPanel) height(state PanelState) int32 {
	pad := c.renderer.Theme.Padding
	// title, speed, capacity, 3 buttons, 3 checkboxes, close
	rows := int32(10)
	h := pad*2 + rows*(rowHeight+rowGap) + 2*labelOffset
	h += int32(len(state.Origins)) * (labelOffset + 2*(rowHeight+rowGap))
	return h
}

// Draw renders the panel and returns the edits made this frame.
func (c *ControlsPanel) Draw(state PanelState) Actions {
	var act Actions
	if !c.visible {
		return act
	}

	r := c.renderer
	pad := r.Theme.Padding
	c.renderer.DrawPanel(c.x, c.y, c.width, c.height(state))

	x := float32(c.x + pad)
	y := float32(c.y + pad)
	w := float32(c.width - 2*pad)
	sliderW := w - 60

	rl.DrawText("Particle Systems", int32(x), int32(y), 16, rl.White)
	y += rowHeight + rowGap

	// Speed
	rl.DrawText("Speed", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += labelOffset
	speed := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: sliderW, Height: rowHeight},
		"", fmt.Sprintf("%.3f", state.Speed),
		state.Speed, state.MinSpeed, state.MaxSpeed)
	if speed != state.Speed {
		act.Speed, act.SpeedChanged = speed, true
	}
	y += rowHeight + rowGap

	// Capacity, shared by every system
	rl.DrawText("Particles per system", int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += labelOffset
	capacity := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: sliderW, Height: rowHeight},
		"", fmt.Sprintf("%d", state.Capacity),
		float32(state.Capacity), 0, float32(state.MaxCapacity))
	if int(capacity) != state.Capacity {
		act.Capacity, act.CapacityChanged = int(capacity), true
	}
	y += rowHeight + rowGap

	// One pair of origin sliders per system
	for i, origin := range state.Origins {
		name := fmt.Sprintf("Emitter %d", i+1)
		if i < len(state.Names) {
			name = state.Names[i]
		}
		rl.DrawText("Move "+name, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += labelOffset

		ox := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: sliderW, Height: rowHeight},
			"", fmt.Sprintf("x %.2f", origin.X()), origin.X(), OriginMin, OriginMax)
		y += rowHeight + rowGap
		oy := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: sliderW, Height: rowHeight},
			"", fmt.Sprintf("y %.2f", origin.Y()), origin.Y(), OriginMin, OriginMax)
		y += rowHeight + rowGap

		if ox != origin.X() || oy != origin.Y() {
			act.Moves = append(act.Moves, OriginMove{Index: i, Origin: mgl32.Vec2{ox, oy}})
		}
	}

	// Emitter buttons
	for _, kind := range systems.EmitterKinds() {
		if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight}, kind.String()) {
			act.Spawn, act.SpawnKind = true, kind
		}
		y += rowHeight + rowGap
	}

	// Toggles
	gravity := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: rowHeight, Height: rowHeight}, "Gravity", state.Gravity)
	if gravity != state.Gravity {
		act.Gravity, act.GravityChanged = gravity, true
	}
	y += rowHeight + rowGap
	wind := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: rowHeight, Height: rowHeight}, "Wind", state.Wind)
	if wind != state.Wind {
		act.Wind, act.WindChanged = wind, true
	}
	y += rowHeight + rowGap
	paused := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: rowHeight, Height: rowHeight}, "Pause", state.Paused)
	if paused != state.Paused {
		act.Paused, act.PauseChanged = paused, true
	}
	y += rowHeight + rowGap

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: rowHeight}, "Close") {
		act.Close = true
	}

	return act
}
