// Package checkin generates the rotating codes that back event
// attendance verification.
//
// A code is 13 ASCII digits: the 10-digit unix-seconds timestamp of
// its generation followed by a 3-digit random suffix. Codes rotate
// every 30 seconds while displayed at the venue. The scheme is
// tamper-evident, not tamper-proof: nothing verifies a submitted nonce
// against an issued one, and a determined forger can fabricate a
// plausible code. Attendance is a social proximity signal, not a
// cryptographic proof, and the validators check shape only.
package checkin

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// RotationInterval is how long one code stays current.
const RotationInterval = 30 * time.Second

// Generate builds one code from a timestamp and a random source.
// Timestamps before the year 2001 would yield fewer than 10 digits and
// break the fixed 13-digit shape, so the prefix is zero-padded.
func Generate(now time.Time, rng *rand.Rand) string {
	return fmt.Sprintf("%010d%03d", now.Unix(), rng.Intn(1000))
}

// Rotator produces a fresh code on a fixed interval, for display at a
// venue. Clock and randomness are injected so tests control both.
type Rotator struct {
	interval time.Duration
	now      func() time.Time
	rng      *rand.Rand

	mu      sync.Mutex
	current string
}

// NewRotator builds a rotator with wall-clock time and a time-seeded
// random source.
func NewRotator() *Rotator {
	return NewRotatorWith(RotationInterval, time.Now, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewRotatorWith injects interval, clock and randomness.
func NewRotatorWith(interval time.Duration, now func() time.Time, rng *rand.Rand) *Rotator {
	r := &Rotator{interval: interval, now: now, rng: rng}
	r.rotate()
	return r
}

// Current returns the code currently on display.
func (r *Rotator) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Rotator) rotate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = Generate(r.now(), r.rng)
}

// Run rotates the code until the context ends, delivering each new
// code to onRotate (nil is fine). The initial code is delivered first.
func (r *Rotator) Run(ctx context.Context, onRotate func(code string)) {
	if onRotate != nil {
		onRotate(r.Current())
	}
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.rotate()
			if onRotate != nil {
				onRotate(r.Current())
			}
		}
	}
}
