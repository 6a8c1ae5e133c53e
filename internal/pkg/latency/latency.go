// Package latency simulates the network round trip of the mocked backend calls.
package latency

import "time"

// Simulator blocks the calling goroutine for a fixed delay
type Simulator struct {
	delay time.Duration
	sleep func(time.Duration)
}

// New creates a simulator. A zero delay makes Wait return immediately.
func New(delay time.Duration) *Simulator {
	return &Simulator{delay: delay, sleep: time.Sleep}
}

// NewWithSleep creates a simulator that blocks through sleep instead of
// time.Sleep
func NewWithSleep(delay time.Duration, sleep func(time.Duration)) *Simulator {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Simulator{delay: delay, sleep: sleep}
}

// Delay returns the configured delay
func (s *Simulator) Delay() time.Duration {
	if s == nil {
		return 0
	}
	return s.delay
}

// Wait blocks for the configured delay. It cannot be cancelled: the
// operation it guards always runs to completion.
func (s *Simulator) Wait() {
	if s == nil || s.delay <= 0 {
		return
	}
	s.sleep(s.delay)
}
