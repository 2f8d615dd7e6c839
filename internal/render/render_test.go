package render

import (
	"math"
	"testing"

	"github.com/arcline-robotics/raysim/internal/geom"
	"github.com/arcline-robotics/raysim/internal/scene"
)

func TestDepthParams(t *testing.T) {
	t.Run("finite far", func(t *testing.T) {
		p := Projection{Near: 1, Far: 10}
		offset, product := p.DepthParams()
		for _, z := range []float64{1, 2.5, 5, 9.99, 10} {
			d := offset + product/z
			back := product / (d - offset)
			if math.Abs(back-z) > 1e-9 {
				t.Errorf("round trip of z=%v gave %v", z, back)
			}
		}
		if d := offset + product/p.Near; math.Abs(d) > 1e-12 {
			t.Errorf("near plane depth = %v, want 0", d)
		}
		if d := offset + product/p.Far; math.Abs(d-1) > 1e-12 {
			t.Errorf("far plane depth = %v, want 1", d)
		}
	})

	t.Run("infinite far", func(t *testing.T) {
		p := Projection{Near: 2, Far: math.Inf(1)}
		offset, product := p.DepthParams()
		if offset != 1 || product != -2 {
			t.Fatalf("params = (%v, %v), want (1, -2)", offset, product)
		}
		// Depth approaches 1 from below as z grows; near still maps to 0.
		if d := offset + product/p.Near; d != 0 {
			t.Errorf("near plane depth = %v, want 0", d)
		}
		if d := offset + product/1e9; d >= 1 {
			t.Errorf("large z depth = %v, want < 1", d)
		}
	})
}

// passthrough emits the raw depth in channel 0 and the packed color in
// channel 3 so tests can inspect what the engine sampled.
func passthrough(u, v float64, depth float32, color geom.Color) [4]float32 {
	return [4]float32{depth, float32(u), float32(v), geom.PackColor(color)}
}

func TestSoftwareRenderDepth(t *testing.T) {
	sc := scene.New("test")
	box := sc.CreateBox("wall")
	box.SetWorldPose(geom.Pose{Pos: geom.Vec{X: 3}, Rot: geom.IdentityRotation()})
	box.SetRetro(1000)

	e := NewSoftwareEngine()
	defer e.Destroy()
	tgt, err := e.CreateTarget(1, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	proj := Projection{Near: 1, Far: 10}
	if err := e.Render(sc, geom.IdentityPose(), proj, passthrough, tgt); err != nil {
		t.Fatal(err)
	}

	offset, product := proj.DepthParams()
	px := tgt.At(0, 0)
	z := product / (float64(px[0]) - offset)
	if math.Abs(z-2.5) > 1e-4 {
		t.Errorf("linearized depth = %v, want 2.5", z)
	}
	c := geom.UnpackColor(px[3])
	if math.Abs(c.R*MaxRetro-1000) > 5 {
		t.Errorf("decoded retro = %v, want 1000", c.R*MaxRetro)
	}
	if c.A == 0 {
		t.Error("surface hit must carry full alpha")
	}
}

func TestSoftwareRenderSentinel(t *testing.T) {
	e := NewSoftwareEngine()
	defer e.Destroy()
	tgt, _ := e.CreateTarget(1, 1, 4)
	err := e.Render(scene.New("empty"), geom.IdentityPose(), Projection{Near: 1, Far: 10}, passthrough, tgt)
	if err != nil {
		t.Fatal(err)
	}
	px := tgt.At(0, 0)
	if px[0] != SentinelDepth {
		t.Errorf("empty scene depth = %v, want sentinel %v", px[0], SentinelDepth)
	}
	if geom.PackedBits(px[3]) != 0 {
		t.Errorf("empty scene color bits = %#x, want 0", geom.PackedBits(px[3]))
	}
}

func TestSoftwareRenderNearClippedFrontFace(t *testing.T) {
	// The box straddles the near plane: the front face is clipped away and
	// the depth pass sees the interior back face.
	sc := scene.New("test")
	box := sc.CreateBox("close")
	box.SetWorldPose(geom.Pose{Pos: geom.Vec{X: 1}, Rot: geom.IdentityRotation()})

	e := NewSoftwareEngine()
	defer e.Destroy()
	tgt, _ := e.CreateTarget(1, 1, 4)
	proj := Projection{Near: 1, Far: 10}
	if err := e.Render(sc, geom.IdentityPose(), proj, passthrough, tgt); err != nil {
		t.Fatal(err)
	}
	offset, product := proj.DepthParams()
	z := product / (float64(tgt.At(0, 0)[0]) - offset)
	if math.Abs(z-1.5) > 1e-4 {
		t.Errorf("back face depth = %v, want 1.5", z)
	}
}

func TestSoftwareRenderExplicitSamples(t *testing.T) {
	sc := scene.New("test")
	box := sc.CreateBox("wall")
	box.SetWorldPose(geom.Pose{Pos: geom.Vec{X: 3}, Rot: geom.IdentityRotation()})

	e := NewSoftwareEngine()
	defer e.Destroy()
	tgt, err := e.CreateTarget(2, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Pixel 0 looks straight ahead at the wall; pixel 1 looks 45 degrees
	// left past its edge.
	proj := Projection{Near: 1, Far: 10, Samples: [][2]float64{{0, 0}, {1, 0}}}
	if err := e.Render(sc, geom.IdentityPose(), proj, passthrough, tgt); err != nil {
		t.Fatal(err)
	}

	offset, product := proj.DepthParams()
	z := product / (float64(tgt.At(0, 0)[0]) - offset)
	if math.Abs(z-2.5) > 1e-4 {
		t.Errorf("sampled depth = %v, want 2.5", z)
	}
	if tgt.At(1, 0)[0] != SentinelDepth {
		t.Errorf("off-target sample depth = %v, want sentinel", tgt.At(1, 0)[0])
	}
	if u := tgt.At(1, 0)[1]; u != 1 {
		t.Errorf("program saw u = %v, want the sample's tangent coordinate 1", u)
	}

	t.Run("sample count must match target", func(t *testing.T) {
		bad := Projection{Near: 1, Far: 10, Samples: [][2]float64{{0, 0}}}
		if err := e.Render(sc, geom.IdentityPose(), bad, passthrough, tgt); err == nil {
			t.Error("expected error for short sample table")
		}
	})
}

func TestSoftwareRenderValidation(t *testing.T) {
	e := NewSoftwareEngine()
	defer e.Destroy()
	sc := scene.New("test")
	tgt, _ := e.CreateTarget(1, 1, 4)
	bad, _ := e.CreateTarget(1, 1, 3)

	cases := []struct {
		name string
		proj Projection
		prog Program
		tgt  *Target
	}{
		{"nil target", Projection{Near: 1, Far: 10}, passthrough, nil},
		{"wrong channels", Projection{Near: 1, Far: 10}, passthrough, bad},
		{"nil program", Projection{Near: 1, Far: 10}, nil, tgt},
		{"zero near", Projection{Near: 0, Far: 10}, passthrough, tgt},
		{"inverted planes", Projection{Near: 10, Far: 1}, passthrough, tgt},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := e.Render(sc, geom.IdentityPose(), tc.proj, tc.prog, tc.tgt); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCreateTargetLimits(t *testing.T) {
	e := NewSoftwareEngine()
	defer e.Destroy()
	if _, err := e.CreateTarget(0, 1, 4); err == nil {
		t.Error("zero width accepted")
	}
	if _, err := e.CreateTarget(1, 1, 0); err == nil {
		t.Error("zero channels accepted")
	}
	if _, err := e.CreateTarget(1<<14, 1<<14, 4); err == nil {
		t.Error("oversized target accepted")
	}
	tgt, err := e.CreateTarget(4, 2, 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(tgt.Data) != 4*2*4 {
		t.Errorf("target data length %d, want 32", len(tgt.Data))
	}
}
