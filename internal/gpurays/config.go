package gpurays

import (
	"fmt"
	"math"
)

// config holds the sensor configuration. It is copied wholesale at the start
// of each Update, so setter changes only ever take effect on the next scan.
type config struct {
	angleMin, angleMax   float64
	vAngleMin, vAngleMax float64
	near, far            float64
	hRayCount, vRayCount int
	hResolution          float64
	vResolution          float64
	clamp                bool
	isHorizontal         bool
}

func defaultConfig() config {
	return config{
		angleMin:     -math.Pi / 2,
		angleMax:     math.Pi / 2,
		near:         0.01,
		far:          1000,
		hRayCount:    1,
		vRayCount:    1,
		hResolution:  1,
		vResolution:  1,
		isHorizontal: true,
	}
}

// AngleMin returns the horizontal scan start angle in radians.
func (s *raySensor) AngleMin() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.angleMin
}

// SetAngleMin sets the horizontal scan start angle.
func (s *raySensor) SetAngleMin(a float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a > s.cfg.angleMax {
		return fmt.Errorf("%w: angle min %v above angle max %v", ErrInvalidConfig, a, s.cfg.angleMax)
	}
	s.cfg.angleMin = a
	s.plan = nil
	return nil
}

// AngleMax returns the horizontal scan end angle in radians.
func (s *raySensor) AngleMax() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.angleMax
}

// SetAngleMax sets the horizontal scan end angle.
func (s *raySensor) SetAngleMax(a float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a < s.cfg.angleMin {
		return fmt.Errorf("%w: angle max %v below angle min %v", ErrInvalidConfig, a, s.cfg.angleMin)
	}
	s.cfg.angleMax = a
	s.plan = nil
	return nil
}

// VerticalAngleMin returns the vertical scan start angle in radians.
func (s *raySensor) VerticalAngleMin() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.vAngleMin
}

// SetVerticalAngleMin sets the vertical scan start angle.
func (s *raySensor) SetVerticalAngleMin(a float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a > s.cfg.vAngleMax {
		return fmt.Errorf("%w: vertical angle min %v above vertical angle max %v", ErrInvalidConfig, a, s.cfg.vAngleMax)
	}
	s.cfg.vAngleMin = a
	s.plan = nil
	return nil
}

// VerticalAngleMax returns the vertical scan end angle in radians.
func (s *raySensor) VerticalAngleMax() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.vAngleMax
}

// SetVerticalAngleMax sets the vertical scan end angle.
func (s *raySensor) SetVerticalAngleMax(a float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a < s.cfg.vAngleMin {
		return fmt.Errorf("%w: vertical angle max %v below vertical angle min %v", ErrInvalidConfig, a, s.cfg.vAngleMin)
	}
	s.cfg.vAngleMax = a
	s.plan = nil
	return nil
}

// NearClipPlane returns the near clip distance in metres.
func (s *raySensor) NearClipPlane() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.near
}

// SetNearClipPlane sets the near clip distance. It must be positive and
// below the far clip plane.
func (s *raySensor) SetNearClipPlane(near float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if near <= 0 || near >= s.cfg.far {
		return fmt.Errorf("%w: near clip %v outside (0, %v)", ErrInvalidConfig, near, s.cfg.far)
	}
	s.cfg.near = near
	return nil
}

// FarClipPlane returns the far clip distance in metres.
func (s *raySensor) FarClipPlane() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.far
}

// SetFarClipPlane sets the far clip distance. It must exceed the near clip
// plane and may be +Inf.
func (s *raySensor) SetFarClipPlane(far float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if far <= s.cfg.near {
		return fmt.Errorf("%w: far clip %v not above near clip %v", ErrInvalidConfig, far, s.cfg.near)
	}
	s.cfg.far = far
	return nil
}

// RayCount returns the number of horizontal rays per scan row.
func (s *raySensor) RayCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.hRayCount
}

// SetRayCount sets the number of horizontal rays. It must be at least 1.
func (s *raySensor) SetRayCount(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		return fmt.Errorf("%w: ray count %d below 1", ErrInvalidConfig, n)
	}
	s.cfg.hRayCount = n
	s.plan = nil
	return nil
}

// VerticalRayCount returns the number of scan rows.
func (s *raySensor) VerticalRayCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.vRayCount
}

// SetVerticalRayCount sets the number of scan rows. It must be at least 1.
func (s *raySensor) SetVerticalRayCount(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 {
		return fmt.Errorf("%w: vertical ray count %d below 1", ErrInvalidConfig, n)
	}
	s.cfg.vRayCount = n
	s.plan = nil
	return nil
}

// HorizontalResolution returns the horizontal render resolution multiplier.
func (s *raySensor) HorizontalResolution() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.hResolution
}

// SetHorizontalResolution sets the horizontal render resolution multiplier.
// Negative values are normalized to their absolute value.
func (s *raySensor) SetHorizontalResolution(r float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r == 0 {
		return fmt.Errorf("%w: horizontal resolution must be non-zero", ErrInvalidConfig)
	}
	s.cfg.hResolution = math.Abs(r)
	s.plan = nil
	return nil
}

// VerticalResolution returns the vertical render resolution multiplier.
func (s *raySensor) VerticalResolution() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.vResolution
}

// SetVerticalResolution sets the vertical render resolution multiplier.
// Negative values are normalized to their absolute value.
func (s *raySensor) SetVerticalResolution(r float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r == 0 {
		return fmt.Errorf("%w: vertical resolution must be non-zero", ErrInvalidConfig)
	}
	s.cfg.vResolution = math.Abs(r)
	s.plan = nil
	return nil
}

// Clamp reports whether out-of-range rays are clamped to the clip distances
// instead of reported as infinite. The default is false.
func (s *raySensor) Clamp() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.clamp
}

// SetClamp selects between "infinity means no return" (false) and
// "clamp to bound" (true) semantics for out-of-range rays.
func (s *raySensor) SetClamp(c bool) {
	s.mu.Lock()
	s.cfg.clamp = c
	s.mu.Unlock()
}

// IsHorizontal reports the scan orientation.
func (s *raySensor) IsHorizontal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.isHorizontal
}

// SetIsHorizontal sets the scan orientation.
func (s *raySensor) SetIsHorizontal(h bool) {
	s.mu.Lock()
	s.cfg.isHorizontal = h
	s.mu.Unlock()
}
