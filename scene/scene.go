// Package scene holds the set of particle systems the application drives:
// one ECS entity per system, the emitter and effect toggles the UI exposes
// and the per-frame update and render passes.
package scene

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/particles/components"
	"github.com/pthm-cable/particles/systems"
)

// Scene owns every particle system entity.
// It is driven from a single goroutine; Step may fan out internally but
// returns only after every system has been updated.
type Scene struct {
	world *ecs.World
	rng   *rand.Rand

	mapper *ecs.Map3[components.Emission, components.Field, components.Label]
	filter *ecs.Filter3[components.Emission, components.Field, components.Label]

	emissionMap *ecs.Map1[components.Emission]
	fieldMap    *ecs.Map1[components.Field]
	labelMap    *ecs.Map1[components.Label]

	// Entities in creation order
	order     []ecs.Entity
	nextOrder uint32

	settings Settings
	capacity int
	enabled  map[systems.EffectKind]bool

	pool *updatePool
}

// New creates an empty scene.
func New(settings Settings) (*Scene, error) {
	if settings.Capacity < 0 {
		return nil, fmt.Errorf("%w: got %d", systems.ErrNegativeCapacity, settings.Capacity)
	}
	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	world := ecs.NewWorld()
	return &Scene{
		world:       world,
		rng:         rand.New(rand.NewSource(seed)),
		mapper:      ecs.NewMap3[components.Emission, components.Field, components.Label](world),
		filter:      ecs.NewFilter3[components.Emission, components.Field, components.Label](world),
		emissionMap: ecs.NewMap1[components.Emission](world),
		fieldMap:    ecs.NewMap1[components.Field](world),
		labelMap:    ecs.NewMap1[components.Label](world),
		settings:    settings,
		capacity:    settings.Capacity,
		enabled:     make(map[systems.EffectKind]bool),
		pool:        newUpdatePool(),
	}, nil
}

// Spawn creates a system with an emitter of kind at origin. The new system
// gets the current capacity and every effect that is switched on.
func (s *Scene) Spawn(kind systems.EmitterKind, origin mgl32.Vec2) (ecs.Entity, error) {
	emitter, err := s.settings.newEmitter(kind, s.rng)
	if err != nil {
		return ecs.Entity{}, err
	}
	ps, err := systems.NewParticleSystemWithEmitter(emitter, s.capacity, origin)
	if err != nil {
		return ecs.Entity{}, err
	}
	for _, effectKind := range []systems.EffectKind{systems.EffectGravityWell, systems.EffectWind} {
		if !s.enabled[effectKind] {
			continue
		}
		effect, err := s.settings.newEffect(effectKind)
		if err != nil {
			return ecs.Entity{}, err
		}
		ps.AddEffect(effect)
	}

	s.nextOrder++
	emission := components.Emission{Origin: origin}
	field := components.Field{System: ps}
	label := components.Label{
		Name:    fmt.Sprintf("Emitter %d", s.nextOrder),
		Emitter: kind,
		Order:   s.nextOrder,
	}
	entity := s.mapper.NewEntity(&emission, &field, &label)
	s.order = append(s.order, entity)

	slog.Info("particle system created",
		"name", label.Name,
		"emitter", kind.String(),
		"capacity", s.capacity,
		"systems", len(s.order),
	)
	return entity, nil
}

// Remove deletes a system entity. It reports whether the entity existed.
func (s *Scene) Remove(e ecs.Entity) bool {
	i := slices.Index(s.order, e)
	if i < 0 || !s.world.Alive(e) {
		return false
	}
	name := s.labelMap.Get(e).Name
	s.world.RemoveEntity(e)
	s.order = slices.Delete(s.order, i, i+1)
	slog.Info("particle system removed", "name", name, "systems", len(s.order))
	return true
}

// RemoveLast deletes the most recently created system.
func (s *Scene) RemoveLast() bool {
	if len(s.order) == 0 {
		return false
	}
	return s.Remove(s.order[len(s.order)-1])
}

// Len returns the number of systems.
func (s *Scene) Len() int {
	return len(s.order)
}

// Entities returns the system entities in creation order.
func (s *Scene) Entities() []ecs.Entity {
	return slices.Clone(s.order)
}

// System returns the particle system owned by e, or nil.
func (s *Scene) System(e ecs.Entity) *systems.ParticleSystem {
	if !s.world.Alive(e) {
		return nil
	}
	return s.fieldMap.Get(e).System
}

// Label returns the display data of e.
func (s *Scene) Label(e ecs.Entity) (components.Label, bool) {
	if !s.world.Alive(e) {
		return components.Label{}, false
	}
	return *s.labelMap.Get(e), true
}

// Origin returns the emission origin of e.
func (s *Scene) Origin(e ecs.Entity) mgl32.Vec2 {
	if !s.world.Alive(e) {
		return mgl32.Vec2{}
	}
	return s.emissionMap.Get(e).Origin
}

// SetOrigin moves the emission origin of e. The system picks it up on the
// next Step.
func (s *Scene) SetOrigin(e ecs.Entity, origin mgl32.Vec2) {
	if !s.world.Alive(e) {
		return
	}
	s.emissionMap.Get(e).Origin = origin
}

// Capacity returns the buffer size used for every system.
func (s *Scene) Capacity() int {
	return s.capacity
}

// SetCapacity resizes every system and sets the size for new ones.
func (s *Scene) SetCapacity(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: got %d", systems.ErrNegativeCapacity, n)
	}
	if n == s.capacity {
		return nil
	}
	for _, e := range s.order {
		if err := s.fieldMap.Get(e).System.SetCapacity(n); err != nil {
			return err
		}
	}
	s.capacity = n
	return nil
}

// EffectEnabled reports whether kind is switched on.
func (s *Scene) EffectEnabled(kind systems.EffectKind) bool {
	return s.enabled[kind]
}

// SetEffect switches kind on or off for every system. Switching on attaches
// a fresh effect to each system; switching off removes one of that kind.
func (s *Scene) SetEffect(kind systems.EffectKind, on bool) error {
	if s.enabled[kind] == on {
		return nil
	}
	for _, e := range s.order {
		ps := s.fieldMap.Get(e).System
		if !on {
			ps.RemoveEffect(kindProbe(kind))
			continue
		}
		effect, err := s.settings.newEffect(kind)
		if err != nil {
			return err
		}
		ps.AddEffect(effect)
	}
	s.enabled[kind] = on
	slog.Info("effect toggled", "effect", kind.String(), "on", on, "systems", len(s.order))
	return nil
}

// kindProbe returns an effect used only to match attached effects by kind.
func kindProbe(kind systems.EffectKind) systems.Effect {
	if kind == systems.EffectWind {
		return &systems.Wind{}
	}
	return &systems.GravityWell{}
}

// Step copies each emission origin into its system and advances every
// system by dt. Once the total buffer size reaches the parallel threshold
// the systems are split into contiguous chunks across the worker pool.
func (s *Scene) Step(dt float32) {
	targets := s.pool.targets[:0]
	total := 0
	for _, e := range s.order {
		ps := s.fieldMap.Get(e).System
		ps.SetOrigin(s.emissionMap.Get(e).Origin)
		targets = append(targets, ps)
		total += ps.Capacity()
	}
	s.pool.targets = targets

	if len(targets) > 1 && s.settings.ParallelThreshold > 0 && total >= s.settings.ParallelThreshold {
		s.pool.run(dt)
		return
	}
	updateRange(targets, dt)
}

// Render draws every system onto surface in creation order. Call Emit
// first so respawned particles show in the same frame.
func (s *Scene) Render(surface systems.Surface) {
	for _, e := range s.order {
		s.fieldMap.Get(e).System.Render(surface)
	}
}

// Emit runs the respawn pass of every system.
func (s *Scene) Emit() {
	for _, e := range s.order {
		s.fieldMap.Get(e).System.Emit()
	}
}

// Each calls fn for every system. Iteration order is unspecified and fn
// must not add or remove systems.
func (s *Scene) Each(fn func(label components.Label, ps *systems.ParticleSystem)) {
	query := s.filter.Query()
	for query.Next() {
		_, field, label := query.Get()
		fn(*label, field.System)
	}
}

// Counts returns the total buffer size, live particles and respawns of the
// latest emission pass across all systems.
func (s *Scene) Counts() (capacity, alive, respawns int) {
	s.Each(func(_ components.Label, ps *systems.ParticleSystem) {
		capacity += ps.Capacity()
		alive += ps.AliveCount()
		respawns += ps.LastRespawns()
	})
	return capacity, alive, respawns
}

// Close stops the worker pool.
func (s *Scene) Close() {
	s.pool.stop()
}
