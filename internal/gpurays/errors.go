package gpurays

import "errors"

var (
	// ErrInvalidConfig wraps configuration setter rejections. The prior
	// valid configuration stays in effect.
	ErrInvalidConfig = errors.New("invalid sensor configuration")

	// ErrUpdateInFlight is returned when Update is called while another
	// Update on the same sensor has not completed. Exactly one update may
	// be in flight per sensor.
	ErrUpdateInFlight = errors.New("sensor update already in flight")

	// ErrNoScan is returned by Copy before the first completed Update.
	ErrNoScan = errors.New("no completed scan available")
)
