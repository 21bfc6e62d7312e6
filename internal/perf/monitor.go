// Package perf tracks frame timing for the stats overlay.
package perf

import (
	"sync/atomic"
	"time"
)

// Monitor tracks render phase timings. All fields are atomics so the
// overlay can read while a frame is being timed.
type Monitor struct {
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds, last frame
	totalTime  atomic.Uint64 // nanoseconds, all frames
}

// NewMonitor creates a new frame monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// FrameTimer measures one frame.
type FrameTimer struct {
	monitor *Monitor
	start   time.Time
}

// StartFrame begins frame timing
func (m *Monitor) StartFrame() *FrameTimer {
	return &FrameTimer{monitor: m, start: time.Now()}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	elapsed := uint64(time.Since(ft.start).Nanoseconds())
	ft.monitor.frameTime.Store(elapsed)
	ft.monitor.totalTime.Add(elapsed)
	ft.monitor.frameCount.Add(1)
}

// LastFrame returns the duration of the most recent frame.
func (m *Monitor) LastFrame() time.Duration {
	return time.Duration(m.frameTime.Load())
}

// AvgFrame returns the mean frame duration since startup.
func (m *Monitor) AvgFrame() time.Duration {
	count := m.frameCount.Load()
	if count == 0 {
		return 0
	}
	return time.Duration(m.totalTime.Load() / count)
}

// Frames returns the number of completed frames.
func (m *Monitor) Frames() uint64 {
	return m.frameCount.Load()
}
