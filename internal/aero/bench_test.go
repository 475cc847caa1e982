package aero

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/rainsdm/atmotraj/internal/geom"
	"github.com/rainsdm/atmotraj/internal/snapshot"
)

func benchModel(b *testing.B, cached bool) *Model {
	v := &testVehicle{parts: []snapshot.Part{testPart{}, testPart{}, testPart{}}}
	src := &testSource{vehicle: v}
	snap := snapshot.New(src, zerolog.Nop())
	if !snap.Refresh() {
		b.Fatal("snapshot refresh failed")
	}

	cfg := DefaultConfig()
	cfg.CacheEnabled = cached
	cfg.Cooldown = 0
	return New(snap, &dragModel{coeff: 5}, cfg, zerolog.Nop())
}

func BenchmarkGetForcesUncached(b *testing.B) {
	m := benchModel(b, false)
	pos := geom.Vec3{X: 610000}
	vel := geom.Vec3{Y: 1800}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.GetForces(m.Body(), pos, vel, 0); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetForcesCached(b *testing.B) {
	m := benchModel(b, true)
	pos := geom.Vec3{X: 610000}
	vel := geom.Vec3{Y: 1800}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.GetForces(m.Body(), pos, vel, 0); err != nil {
			b.Fatal(err)
		}
	}
}
