package perf

import (
	"testing"
	"time"
)

func TestMonitorCountsFrames(t *testing.T) {
	m := NewMonitor()
	for i := 0; i < 3; i++ {
		ft := m.StartFrame()
		time.Sleep(time.Millisecond)
		ft.EndFrame()
	}

	if m.Frames() != 3 {
		t.Errorf("frames = %d, want 3", m.Frames())
	}
	if m.LastFrame() <= 0 {
		t.Errorf("last frame duration not recorded")
	}
	if m.AvgFrame() <= 0 {
		t.Errorf("average frame duration not recorded")
	}
}
