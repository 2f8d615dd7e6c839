package scene

import (
	"testing"

	"github.com/arcline-robotics/raysim/internal/geom"
)

func TestSceneSnapshots(t *testing.T) {
	sc := New("test")
	sc.CreateBox("a")
	visuals := sc.Visuals()
	sc.CreateBox("b")

	if len(visuals) != 1 {
		t.Fatalf("snapshot grew to %d visuals", len(visuals))
	}
	if len(sc.Visuals()) != 2 {
		t.Fatalf("scene has %d visuals, want 2", len(sc.Visuals()))
	}
}

func TestVisualBox(t *testing.T) {
	sc := New("test")
	v := sc.CreateBox("box")
	v.SetWorldPose(geom.Pose{Pos: geom.Vec{X: 3}, Rot: geom.IdentityRotation()})
	v.SetSize(geom.Vec{X: 2, Y: 2, Z: 2})

	b := v.Box()
	if b.Pose.Pos.X != 3 || b.Size.X != 2 {
		t.Errorf("box = %+v", b)
	}
}

func TestEmitterDefaults(t *testing.T) {
	sc := New("test")
	e := sc.CreateParticleEmitter("smoke")

	if e.Emitting() {
		t.Error("new emitters must start disabled")
	}
	if e.ParticleScatterRatio() != DefaultScatterRatio {
		t.Errorf("scatter ratio %v, want default %v", e.ParticleScatterRatio(), DefaultScatterRatio)
	}
}

func TestScatterRatioClamped(t *testing.T) {
	sc := New("test")
	e := sc.CreateParticleEmitter("smoke")

	e.SetParticleScatterRatio(1.5)
	if e.ParticleScatterRatio() != 1 {
		t.Errorf("scatter ratio %v, want clamped to 1", e.ParticleScatterRatio())
	}
	e.SetParticleScatterRatio(-0.5)
	if e.ParticleScatterRatio() != 0 {
		t.Errorf("scatter ratio %v, want clamped to 0", e.ParticleScatterRatio())
	}
}

func TestEmitterVolume(t *testing.T) {
	sc := New("test")
	e := sc.CreateParticleEmitter("smoke")
	e.SetLocalPose(geom.Pose{Pos: geom.Vec{X: 1, Z: 0.5}, Rot: geom.IdentityRotation()})
	e.SetParticleSize(geom.Vec{X: 0.2, Y: 0.4, Z: 0.6})

	v := e.Volume()
	if v.Pose.Pos != (geom.Vec{X: 1, Z: 0.5}) || v.Size != (geom.Vec{X: 0.2, Y: 0.4, Z: 0.6}) {
		t.Errorf("volume = %+v", v)
	}
}
