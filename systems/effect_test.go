package systems

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGravityWellPointsTowardWell(t *testing.T) {
	well := NewGravityWell(mgl32.Vec2{0.5, -0.25}, 100, 0.1)

	positions := []mgl32.Vec2{
		{1, 0},
		{-1, -1},
		{0.5, 3},
		{0.51, -0.25},
	}

	for _, pos := range positions {
		p := Particle{Position: pos, Mass: 1, Life: 1}
		f := well.Force(&p)

		want := well.Position.Sub(pos).Normalize()
		got := f.Normalize()
		if !got.ApproxEqualThreshold(want, 1e-5) {
			t.Errorf("force direction at %v = %v, want %v", pos, got, want)
		}
	}
}

func TestGravityWellMagnitudeDecreasesWithDistance(t *testing.T) {
	well := NewGravityWell(mgl32.Vec2{0, 0}, 100, 0.1)

	prev := float32(math.MaxFloat32)
	for _, d := range []float32{0.001, 0.01, 0.1, 0.5, 1, 2, 10} {
		p := Particle{Position: mgl32.Vec2{d, 0}, Mass: 1, Life: 1}
		mag := well.Force(&p).Len()
		if mag >= prev {
			t.Errorf("magnitude at distance %v = %v, not below %v", d, mag, prev)
		}
		prev = mag
	}
}

func TestGravityWellInverseSquare(t *testing.T) {
	well := NewGravityWell(mgl32.Vec2{0, 0}, 100, 0.1)
	well.Softening = 0

	p := Particle{Position: mgl32.Vec2{2, 0}, Mass: 1, Life: 1}
	got := well.Force(&p)
	want := mgl32.Vec2{-0.1 * 100 / 4, 0}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("force = %v, want %v", got, want)
	}
}

func TestGravityWellAtWellPosition(t *testing.T) {
	well := DefaultGravityWell()
	p := Particle{Position: well.Position, Mass: 1, Life: 1}

	f := well.Force(&p)
	if f != (mgl32.Vec2{}) {
		t.Errorf("force on coincident particle = %v, want zero", f)
	}
}

func TestGravityWellNearWellIsFinite(t *testing.T) {
	well := DefaultGravityWell()
	p := Particle{Position: well.Position.Add(mgl32.Vec2{1e-20, 0}), Mass: 1, Life: 1}

	f := well.Force(&p)
	for _, c := range f {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			t.Fatalf("force near well is not finite: %v", f)
		}
	}
}

func TestGravityWellUnsoftenedStaysFinite(t *testing.T) {
	well := &GravityWell{Position: mgl32.Vec2{0, 0}, Mass: 100, G: 0.1}
	// d^2 = 1e-40 is subnormal in float32; dividing by it would overflow.
	p := Particle{Position: mgl32.Vec2{-1e-20, 0}, Mass: 1, Life: 1}

	f := well.Force(&p)
	for _, c := range f {
		if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
			t.Fatalf("force = %v, want finite", f)
		}
	}
	if f.X() <= 0 || f.Y() != 0 {
		t.Errorf("force = %v, want +x toward the well", f)
	}
	want := well.G * well.Mass / minWellDenominator
	if math.Abs(float64(f.X()-want)) > 1e-5*float64(want) {
		t.Errorf("force magnitude = %v, want the clamped %v", f.X(), want)
	}
}

func TestGravityWellValidate(t *testing.T) {
	tests := []struct {
		name string
		well GravityWell
		want []error
	}{
		{name: "default", well: *DefaultGravityWell()},
		{name: "zero mass", well: GravityWell{Mass: 0, G: 0.1, Softening: 0.01}, want: []error{ErrNonPositiveWellMass}},
		{name: "negative mass", well: GravityWell{Mass: -1, G: 0.1, Softening: 0.01}, want: []error{ErrNonPositiveWellMass}},
		{name: "no softening", well: GravityWell{Mass: 1, G: 0.1}, want: []error{ErrNonPositiveSoftening}},
		{name: "both", well: GravityWell{}, want: []error{ErrNonPositiveWellMass, ErrNonPositiveSoftening}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.well.Validate()
			if len(tt.want) == 0 {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			for _, want := range tt.want {
				if !errors.Is(err, want) {
					t.Errorf("Validate() = %v, want %v", err, want)
				}
			}
		})
	}
}

func TestWind(t *testing.T) {
	wind := NewWind(mgl32.Vec2{0, 0}, mgl32.Vec2{0.05, 0})

	tests := []struct {
		name      string
		pos       mgl32.Vec2
		wantVel   mgl32.Vec2
		wantForce mgl32.Vec2
	}{
		{"at center", mgl32.Vec2{0, 0}, mgl32.Vec2{1.05, 1}, mgl32.Vec2{0.05, 0}},
		{"inside radius", mgl32.Vec2{0.05, 0.05}, mgl32.Vec2{1.05, 1}, mgl32.Vec2{0.05, 0}},
		{"on radius", mgl32.Vec2{0.1, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{}},
		{"outside radius", mgl32.Vec2{0.5, 0.5}, mgl32.Vec2{1, 1}, mgl32.Vec2{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Particle{Position: tt.pos, Velocity: mgl32.Vec2{1, 1}, Mass: 1, Life: 1}
			f := wind.Force(&p)
			if !p.Velocity.ApproxEqualThreshold(tt.wantVel, 1e-6) {
				t.Errorf("velocity = %v, want %v", p.Velocity, tt.wantVel)
			}
			if f != tt.wantForce {
				t.Errorf("force = %v, want %v", f, tt.wantForce)
			}
		})
	}
}

func TestEffectKindString(t *testing.T) {
	if got := DefaultGravityWell().Kind().String(); got != "Gravity" {
		t.Errorf("gravity kind = %q", got)
	}
	if got := DefaultWind().Kind().String(); got != "Wind" {
		t.Errorf("wind kind = %q", got)
	}
}
