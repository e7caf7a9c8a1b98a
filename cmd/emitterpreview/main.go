// Emitter preview tool - one particle system with sliders for the emitter
// tunables and effect toggles.
//
// Usage: go run ./cmd/emitterpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/particles/camera"
	"github.com/pthm-cable/particles/config"
	"github.com/pthm-cable/particles/renderer"
	"github.com/pthm-cable/particles/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 600
	panelWidth   = windowWidth - previewSize - 30
)

// EmitterParams holds the slider values.
type EmitterParams struct {
	Kind      systems.EmitterKind
	Mass      float32
	Life      float32
	VelocityX float32
	VelocityY float32
	Capacity  int
	Gravity   bool
	Wind      bool
}

func defaultParams(cfg *config.Config) EmitterParams {
	kind, err := systems.ParseEmitterKind(cfg.Simulation.InitialEmitter)
	if err != nil {
		kind = systems.EmitterUniform
	}
	return EmitterParams{
		Kind:      kind,
		Mass:      float32(cfg.Emitter.Mass),
		Life:      float32(cfg.Emitter.Life),
		VelocityX: float32(cfg.Emitter.VelocityX),
		VelocityY: float32(cfg.Emitter.VelocityY),
		Capacity:  cfg.Simulation.Capacity,
	}
}

// preview owns the previewed system and rebuilds it when the kind changes.
type preview struct {
	rng     *rand.Rand
	system  *systems.ParticleSystem
	emitter systems.Emitter
}

func newPreview(p EmitterParams) (*preview, error) {
	pv := &preview{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
	ps, err := systems.NewParticleSystem(p.Capacity)
	if err != nil {
		return nil, err
	}
	pv.system = ps
	if err := pv.setKind(p.Kind); err != nil {
		return nil, err
	}
	return pv, pv.apply(p)
}

func (pv *preview) setKind(kind systems.EmitterKind) error {
	e, err := systems.NewEmitter(kind, pv.rng)
	if err != nil {
		return err
	}
	if pv.emitter != nil {
		pv.system.RemoveEmitter(pv.emitter)
	}
	e.SetRespawnThreshold(float32(config.Cfg().Emitter.RespawnThreshold))
	pv.emitter = e
	pv.system.AddEmitter(e, mgl32.Vec2{})
	return nil
}

// apply pushes slider values into the emitter, buffer and effects.
func (pv *preview) apply(p EmitterParams) error {
	if err := pv.emitter.SetMass(p.Mass); err != nil {
		return err
	}
	if err := pv.emitter.SetLife(p.Life); err != nil {
		return err
	}
	pv.emitter.SetVelocityX(p.VelocityX)
	pv.emitter.SetVelocityY(p.VelocityY)
	if p.Capacity != pv.system.Capacity() {
		if err := pv.system.SetCapacity(p.Capacity); err != nil {
			return err
		}
	}

	cfg := config.Cfg()
	if p.Gravity != pv.system.HasEffect(systems.EffectGravityWell) {
		w := systems.NewGravityWell(vec2(cfg.Gravity.Position), float32(cfg.Gravity.Mass), float32(cfg.Gravity.G))
		w.Softening = float32(cfg.Gravity.Softening)
		if err := w.Validate(); err != nil {
			return err
		}
		toggleEffect(pv.system, w, p.Gravity)
	}
	if p.Wind != pv.system.HasEffect(systems.EffectWind) {
		w := systems.NewWind(vec2(cfg.Wind.Position), vec2(cfg.Wind.Strength))
		w.Radius = float32(cfg.Wind.Radius)
		toggleEffect(pv.system, w, p.Wind)
	}
	return nil
}

func toggleEffect(ps *systems.ParticleSystem, e systems.Effect, on bool) {
	if on {
		ps.AddEffect(e)
		return
	}
	ps.RemoveEffect(e)
}

func vec2(v [2]float64) mgl32.Vec2 {
	return mgl32.Vec2{float32(v[0]), float32(v[1])}
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	rl.InitWindow(windowWidth, windowHeight, "Emitter Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := defaultParams(cfg)
	pv, err := newPreview(params)
	if err != nil {
		log.Fatalf("failed to create preview: %v", err)
	}

	// The preview is drawn into its own texture so the camera maps onto it alone.
	target := rl.LoadRenderTexture(previewSize, previewSize)
	defer rl.UnloadRenderTexture(target)

	cam := camera.New(previewSize, previewSize, float32(cfg.Render.WorldExtent))
	points := renderer.NewPointRenderer(cam, float32(cfg.Render.PointScale))
	background := renderer.NewBackgroundRenderer(0, 0, 0, float32(cfg.Render.WorldExtent))

	for !rl.WindowShouldClose() {
		pv.system.Update(rl.GetFrameTime())

		rl.BeginTextureMode(target)
		background.Draw(cam)
		pv.system.Draw(points)
		rl.EndTextureMode()

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// Render textures are stored upside down
		rl.DrawTextureRec(target.Texture,
			rl.Rectangle{X: 0, Y: 0, Width: previewSize, Height: -previewSize},
			rl.Vector2{X: 10, Y: 10}, rl.White)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Alive: %d / %d  Respawns/frame: %d  (max %d)",
			pv.system.AliveCount(), pv.system.Capacity(), pv.system.LastRespawns(),
			systems.RespawnCount(pv.system.Capacity(), params.Life)), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("FPS: %d", rl.GetFPS()), 15, statsY+20, 16, rl.DarkGray)

		next := drawPanel(params)
		if next.Kind != params.Kind {
			if err := pv.setKind(next.Kind); err != nil {
				log.Printf("failed to switch emitter: %v", err)
			}
			// A new emitter starts from defaults; push every slider again.
			params = EmitterParams{Kind: next.Kind}
		}
		if next != params {
			if err := pv.apply(next); err != nil {
				log.Printf("rejected parameters: %v", err)
			} else {
				params = next
			}
		}

		rl.EndDrawing()
	}
}

// drawPanel draws the controls and returns the edited parameters.
func drawPanel(params EmitterParams) EmitterParams {
	panelX := float32(previewSize + 20)
	panelY := float32(10)

	rl.DrawText("Emitter Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
	panelY += 35

	for i, kind := range systems.EmitterKinds() {
		label := kind.String()
		if kind == params.Kind {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: panelX + float32(i)*120, Y: panelY, Width: 110, Height: 30}, label) {
			params.Kind = kind
		}
	}
	panelY += 45

	params.Mass = slider(&panelY, panelX, "Mass", params.Mass, 1, 50, "%.1f")
	params.Life = slider(&panelY, panelX, "Life (mean seconds)", params.Life, 0.25, 12, "%.2f")
	params.VelocityX = slider(&panelY, panelX, "Velocity X", params.VelocityX, 0, 3, "%.2f")
	params.VelocityY = slider(&panelY, panelX, "Velocity Y", params.VelocityY, 0, 3, "%.2f")
	params.Capacity = int(slider(&panelY, panelX, "Capacity", float32(params.Capacity), 0, float32(config.Cfg().Simulation.MaxCapacity), "%.0f"))

	params.Gravity = gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20}, "Gravity", params.Gravity)
	params.Wind = gui.CheckBox(rl.Rectangle{X: panelX + 120, Y: panelY, Width: 20, Height: 20}, "Wind", params.Wind)
	panelY += 45

	rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
	panelY += 25
	yaml := emitterYAML(params)
	rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

	rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
	if rl.IsKeyPressed(rl.KeyC) {
		rl.SetClipboardText(yaml)
	}

	return params
}

// slider draws a labelled slider bar and advances y.
func slider(y *float32, x float32, label string, value, lo, hi float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v
}

func emitterYAML(p EmitterParams) string {
	return fmt.Sprintf(`simulation:
  initial_emitter: %s
  capacity: %d
emitter:
  mass: %.2f
  life: %.2f
  velocity_x: %.2f
  velocity_y: %.2f`,
		strings.ToLower(p.Kind.String()), p.Capacity, p.Mass, p.Life, p.VelocityX, p.VelocityY)
}
