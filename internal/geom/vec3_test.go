package geom

import (
	"math"
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{X: 1}
	y := Vec3{Y: 1}
	z := x.Cross(y)
	if z != (Vec3{Z: 1}) {
		t.Errorf("expected +Z, got %+v", z)
	}
	if y.Cross(x) != (Vec3{Z: -1}) {
		t.Error("cross product should be anticommutative")
	}
}

func TestVec3Normalized(t *testing.T) {
	v := Vec3{3, 4, 0}.Normalized()
	if math.Abs(v.Mag()-1) > 1e-12 {
		t.Errorf("expected unit magnitude, got %f", v.Mag())
	}
	if (Vec3{}).Normalized() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3IsFinite(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		want bool
	}{
		{"finite", Vec3{1, -2, 3}, true},
		{"nan x", Vec3{math.NaN(), 0, 0}, false},
		{"inf y", Vec3{0, math.Inf(1), 0}, false},
		{"neg inf z", Vec3{0, 0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.want {
				t.Errorf("IsFinite(%+v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestQuatRotate(t *testing.T) {
	// Quarter turn around Z maps +X onto +Y.
	q := AxisAngle(Vec3{Z: 1}, math.Pi/2)
	got := q.Rotate(Vec3{X: 1})
	if math.Abs(got.X) > 1e-12 || math.Abs(got.Y-1) > 1e-12 || math.Abs(got.Z) > 1e-12 {
		t.Errorf("expected ~(0,1,0), got %+v", got)
	}
}

func TestQuatAxes(t *testing.T) {
	q := IdentityQuat()
	if q.Forward() != (Vec3{Y: 1}) || q.Up() != (Vec3{Z: 1}) || q.Right() != (Vec3{X: 1}) {
		t.Error("identity quaternion should yield the canonical axes")
	}
}

func checkOrthonormal(t *testing.T, b Basis) {
	t.Helper()
	for _, tc := range []struct {
		name string
		v    float64
		want float64
	}{
		{"forward mag", b.Forward.Mag(), 1},
		{"right mag", b.Right.Mag(), 1},
		{"up mag", b.Up.Mag(), 1},
		{"forward.right", b.Forward.Dot(b.Right), 0},
		{"forward.up", b.Forward.Dot(b.Up), 0},
		{"right.up", b.Right.Dot(b.Up), 0},
	} {
		if math.Abs(tc.v-tc.want) > 1e-9 {
			t.Errorf("%s = %f, want %f", tc.name, tc.v, tc.want)
		}
	}
}

func TestVelocityBasis(t *testing.T) {
	b := VelocityBasis(Vec3{X: 100}, Vec3{Z: 1}, Vec3{Z: 1}, Vec3{Y: -1})
	checkOrthonormal(t, b)
	if math.Abs(b.Forward.X-1) > 1e-12 {
		t.Errorf("forward should follow velocity, got %+v", b.Forward)
	}
}

func TestVelocityBasisFallbacks(t *testing.T) {
	// Velocity parallel to the reference up: the vehicle up must seed
	// the right axis instead.
	b := VelocityBasis(Vec3{Z: 50}, Vec3{Z: 1}, Vec3{X: 1}, Vec3{Y: -1})
	checkOrthonormal(t, b)

	// Vehicle up parallel too: the vehicle backward axis is the last
	// resort.
	b = VelocityBasis(Vec3{Z: 50}, Vec3{Z: 1}, Vec3{Z: 1}, Vec3{Y: -1})
	checkOrthonormal(t, b)
}

func TestAttitudeBasisZeroAoA(t *testing.T) {
	base := VelocityBasis(Vec3{X: 100}, Vec3{Z: 1}, Vec3{Z: 1}, Vec3{Y: -1})
	got := AttitudeBasis(base, 0)
	if got.Forward.Sub(base.Forward).Mag() > 1e-12 {
		t.Errorf("zero AoA must not tilt the frame, got %+v", got.Forward)
	}
}

func TestAttitudeBasisPitch(t *testing.T) {
	base := VelocityBasis(Vec3{X: 100}, Vec3{Z: 1}, Vec3{Z: 1}, Vec3{Y: -1})
	got := AttitudeBasis(base, math.Pi/4)
	checkOrthonormal(t, got)
	want := base.Forward.Add(base.Up).Normalized()
	if got.Forward.Sub(want).Mag() > 1e-9 {
		t.Errorf("45 degree pitch should bisect forward and up, got %+v", got.Forward)
	}
}
