// Command raysim runs the reference sensing scenario: a GPU-ray sensor in a
// scene of unit boxes, optionally behind a particle emitter, scanning with
// the software render backend. Completed scans are printed and may be
// recorded to a scan database for later plotting.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/arcline-robotics/raysim/internal/geom"
	"github.com/arcline-robotics/raysim/internal/gpurays"
	"github.com/arcline-robotics/raysim/internal/monitoring"
	"github.com/arcline-robotics/raysim/internal/render"
	"github.com/arcline-robotics/raysim/internal/scanstore"
	"github.com/arcline-robotics/raysim/internal/scene"
)

var (
	updates   = flag.Int("updates", 10, "Number of scan updates to run")
	rayCount  = flag.Int("rays", 320, "Horizontal ray count")
	nearClip  = flag.Float64("near", 0.1, "Near clip distance in metres")
	farClip   = flag.Float64("far", 10.0, "Far clip distance in metres")
	clamp     = flag.Bool("clamp", false, "Clamp out-of-range rays to the clip distances instead of +Inf")
	particles = flag.Bool("particles", false, "Add a particle emitter between the sensor and the centre box")
	scatter   = flag.Float64("scatter", scene.DefaultScatterRatio, "Particle scatter ratio in [0,1]")
	dbFile    = flag.String("db", "", "Record scans to this SQLite database (optional)")
	debug     = flag.Bool("debug", false, "Log per-scan timing diagnostics to stderr")
)

func main() {
	flag.Parse()
	if *debug {
		monitoring.SetDebugWriter(os.Stderr)
	}

	registry := render.NewRegistry()
	defer registry.Shutdown()
	if err := registry.Register(render.SoftwareEngineName, func() (render.Engine, error) {
		return render.NewSoftwareEngine(), nil
	}); err != nil {
		log.Fatalf("registering render engine: %v", err)
	}
	engine, err := registry.Engine(render.SoftwareEngineName)
	if err != nil {
		log.Fatalf("selecting render engine: %v", err)
	}

	sc := buildScene()
	sensor, err := gpurays.New(engine, sc, gpurays.Options{Name: "gpu_rays_demo"})
	if err != nil {
		log.Fatalf("creating sensor: %v", err)
	}

	sensor.SetWorldPosition(geom.Vec{Z: 0.1})
	must(sensor.SetNearClipPlane(*nearClip))
	must(sensor.SetFarClipPlane(*farClip))
	must(sensor.SetAngleMin(-math.Pi / 2))
	must(sensor.SetAngleMax(math.Pi / 2))
	must(sensor.SetRayCount(*rayCount))
	sensor.SetClamp(*clamp)

	var store *scanstore.Store
	if *dbFile != "" {
		store, err = scanstore.Open(*dbFile)
		if err != nil {
			log.Fatalf("opening scan database: %v", err)
		}
		defer store.Close()
	}

	conn := sensor.Connect(func(scan []float32, w, h, channels int, format string) {
		mid := (w / 2) * channels
		last := (w - 1) * channels
		fmt.Printf("scan %dx%d (%s): first=%.4f mid=%.4f last=%.4f mid-retro=%.0f\n",
			w, h, format, scan[0], scan[mid], scan[last], scan[mid+1])
		if store != nil {
			_, err := store.SaveScan(&scanstore.ScanRecord{
				SensorID:   "gpu_rays_demo",
				CapturedAt: time.Now(),
				Width:      w,
				Height:     h,
				Channels:   channels,
				Format:     format,
				AngleMin:   sensor.AngleMin(),
				AngleMax:   sensor.AngleMax(),
				Samples:    scan,
			})
			if err != nil {
				log.Printf("recording scan: %v", err)
			}
		}
	})
	defer conn.Close()

	for i := 0; i < *updates; i++ {
		if err := sensor.Update(); err != nil {
			log.Fatalf("update %d: %v", i, err)
		}
	}
}

// buildScene places the reference boxes: one ahead of the sensor, one to its
// right, one beyond the far clip plane.
func buildScene() *scene.Scene {
	sc := scene.New("demo")

	center := sc.CreateBox("box_center")
	center.SetWorldPose(geom.Pose{Pos: geom.Vec{X: 3, Z: 0.5}, Rot: geom.IdentityRotation()})
	center.SetRetro(1500)

	right := sc.CreateBox("box_right")
	right.SetWorldPose(geom.Pose{Pos: geom.Vec{Y: -5, Z: 0.5}, Rot: geom.IdentityRotation()})
	right.SetRetro(1000)

	far := sc.CreateBox("box_out_of_range")
	far.SetWorldPose(geom.Pose{Pos: geom.Vec{Y: *farClip + 1, Z: 0.5}, Rot: geom.IdentityRotation()})

	if *particles {
		em := sc.CreateParticleEmitter("smoke")
		em.SetLocalPose(geom.Pose{Pos: geom.Vec{X: 1, Z: 0.1}, Rot: geom.IdentityRotation()})
		em.SetParticleSize(geom.Vec{X: 0.2, Y: 0.2, Z: 0.2})
		em.SetRate(100)
		em.SetLifetime(2)
		em.SetVelocityRange(0.1, 0.1)
		em.SetParticleScatterRatio(*scatter)
		em.SetEmitting(true)
	}
	return sc
}

func must(err error) {
	if err != nil {
		log.Fatalf("configuring sensor: %v", err)
	}
}
