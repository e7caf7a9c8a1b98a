package systems

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestEmitters(seed int64) []Emitter {
	return []Emitter{
		NewUniform(rand.New(rand.NewSource(seed))),
		NewDirectional(rand.New(rand.NewSource(seed))),
		NewExplosion(rand.New(rand.NewSource(seed))),
	}
}

func TestEmitterSpawnInvariants(t *testing.T) {
	origin := mgl32.Vec2{0.25, -0.5}

	for _, e := range newTestEmitters(7) {
		t.Run(e.Kind().String(), func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				var p Particle
				if !e.Spawn(&p, origin) {
					t.Fatalf("spawn %d: dead particle was not respawned", i)
				}
				if p.Life <= 0 {
					t.Fatalf("spawn %d: life = %v, want > 0", i, p.Life)
				}
				if p.Mass <= 0 {
					t.Fatalf("spawn %d: mass = %v, want > 0", i, p.Mass)
				}
				if want := min(p.Life, 1); p.Color[3] != want {
					t.Fatalf("spawn %d: alpha = %v, want %v", i, p.Color[3], want)
				}
				if p.Position != origin {
					t.Fatalf("spawn %d: position = %v, want %v", i, p.Position, origin)
				}
				for c := 0; c < 3; c++ {
					if p.Color[c] < 0 || p.Color[c] >= 1 {
						t.Fatalf("spawn %d: colour channel %d = %v out of [0,1)", i, c, p.Color[c])
					}
				}
			}
		})
	}
}

func TestEmitterSkipsLiveParticles(t *testing.T) {
	for _, e := range newTestEmitters(1) {
		t.Run(e.Kind().String(), func(t *testing.T) {
			p := Particle{Life: 0.5, Mass: 3, Position: mgl32.Vec2{1, 1}}
			before := p
			if e.Spawn(&p, mgl32.Vec2{}) {
				t.Error("live particle was respawned")
			}
			if p != before {
				t.Errorf("particle changed: %+v, want %+v", p, before)
			}
		})
	}
}

func TestEmitterRespawnThreshold(t *testing.T) {
	e := NewUniform(rand.New(rand.NewSource(1)))

	tests := []struct {
		life float32
		want bool
	}{
		{-1, true},
		{0, true},
		{DefaultRespawnThreshold, true},
		{0.004, true},
		{0.006, false},
		{1, false},
	}

	for _, tt := range tests {
		p := Particle{Life: tt.life}
		if got := e.Spawn(&p, mgl32.Vec2{}); got != tt.want {
			t.Errorf("Spawn(life=%v) = %v, want %v", tt.life, got, tt.want)
		}
	}

	e.SetRespawnThreshold(0.5)
	p := Particle{Life: 0.4}
	if !e.Spawn(&p, mgl32.Vec2{}) {
		t.Error("particle below raised threshold was not respawned")
	}
}

func TestUniformVelocityBounds(t *testing.T) {
	e := NewUniform(rand.New(rand.NewSource(3)))
	e.SetVelocityX(2)
	e.SetVelocityY(0.5)

	var sawNegX, sawPosX bool
	for i := 0; i < 1000; i++ {
		var p Particle
		e.Spawn(&p, mgl32.Vec2{})
		if p.Velocity.X() < -2 || p.Velocity.X() > 2 {
			t.Fatalf("vx = %v outside [-2, 2]", p.Velocity.X())
		}
		if p.Velocity.Y() < -0.5 || p.Velocity.Y() > 0.5 {
			t.Fatalf("vy = %v outside [-0.5, 0.5]", p.Velocity.Y())
		}
		if p.Life > e.Life()+1 {
			t.Fatalf("life = %v above %v", p.Life, e.Life()+1)
		}
		sawNegX = sawNegX || p.Velocity.X() < 0
		sawPosX = sawPosX || p.Velocity.X() > 0
	}
	if !sawNegX || !sawPosX {
		t.Error("uniform velocity is not symmetric around zero")
	}
}

func TestDirectionalVelocity(t *testing.T) {
	e := NewDirectional(rand.New(rand.NewSource(5)))
	e.SetVelocityX(1.5)
	e.SetVelocityY(2)

	for i := 0; i < 500; i++ {
		var p Particle
		e.Spawn(&p, mgl32.Vec2{})
		if p.Velocity.X() != 1 {
			t.Fatalf("vx = %v, want 1", p.Velocity.X())
		}
		if p.Velocity.Y() < 0 || p.Velocity.Y() > 2 {
			t.Fatalf("vy = %v outside [0, 2]", p.Velocity.Y())
		}
		if p.Mass < 1 || p.Life < 1 {
			t.Fatalf("mass = %v, life = %v, want both >= 1", p.Mass, p.Life)
		}
	}
}

func TestExplosionIsSlowAndLongLived(t *testing.T) {
	e := NewExplosion(rand.New(rand.NewSource(9)))

	var maxLife float32
	for i := 0; i < 1000; i++ {
		var p Particle
		e.Spawn(&p, mgl32.Vec2{})
		if speed := p.Velocity.Len(); speed > explosionSpeed+1e-6 {
			t.Fatalf("speed = %v above %v", speed, explosionSpeed)
		}
		maxLife = max(maxLife, p.Life)
	}
	if maxLife <= e.Life()+1 {
		t.Errorf("max life = %v, want bursts to outlive %v", maxLife, e.Life()+1)
	}
}

func TestEmitterSetters(t *testing.T) {
	e := NewUniform(nil)

	if err := e.SetMass(0); !errors.Is(err, ErrNonPositiveMass) {
		t.Errorf("SetMass(0) error = %v, want ErrNonPositiveMass", err)
	}
	if err := e.SetMass(-3); !errors.Is(err, ErrNonPositiveMass) {
		t.Errorf("SetMass(-3) error = %v, want ErrNonPositiveMass", err)
	}
	if err := e.SetLife(0); !errors.Is(err, ErrNonPositiveLife) {
		t.Errorf("SetLife(0) error = %v, want ErrNonPositiveLife", err)
	}
	if e.Mass() != DefaultEmitterMass || e.Life() != DefaultEmitterLife {
		t.Errorf("rejected values were stored: mass %v life %v", e.Mass(), e.Life())
	}

	if err := e.SetMass(2.5); err != nil {
		t.Fatalf("SetMass(2.5): %v", err)
	}
	if err := e.SetLife(8); err != nil {
		t.Fatalf("SetLife(8): %v", err)
	}
	e.SetVelocityX(3)
	e.SetVelocityY(-4)
	if e.Mass() != 2.5 || e.Life() != 8 || e.VelocityX() != 3 || e.VelocityY() != -4 {
		t.Errorf("got mass %v life %v vx %v vy %v", e.Mass(), e.Life(), e.VelocityX(), e.VelocityY())
	}
}

func TestEmitterGeneratorSeededOnce(t *testing.T) {
	a := NewUniform(rand.New(rand.NewSource(42)))
	b := NewUniform(rand.New(rand.NewSource(42)))

	var prev Particle
	for i := 0; i < 10; i++ {
		var pa, pb Particle
		a.Spawn(&pa, mgl32.Vec2{})
		b.Spawn(&pb, mgl32.Vec2{})
		if pa != pb {
			t.Fatalf("spawn %d differs for equal seeds: %+v vs %+v", i, pa, pb)
		}
		if i > 0 && pa == prev {
			t.Fatalf("spawn %d repeated the previous draw", i)
		}
		prev = pa
	}
}

func TestNewEmitterAndParse(t *testing.T) {
	for _, kind := range EmitterKinds() {
		e, err := NewEmitter(kind, nil)
		if err != nil {
			t.Fatalf("NewEmitter(%v): %v", kind, err)
		}
		if e.Kind() != kind {
			t.Errorf("NewEmitter(%v).Kind() = %v", kind, e.Kind())
		}
	}

	tests := []struct {
		name    string
		want    EmitterKind
		wantErr bool
	}{
		{"uniform", EmitterUniform, false},
		{"directional", EmitterDirectional, false},
		{"explosion", EmitterExplosion, false},
		{"Uniform", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseEmitterKind(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseEmitterKind(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseEmitterKind(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
