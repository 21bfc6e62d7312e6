package render

import "testing"

func TestShadeDeterministic(t *testing.T) {
	a := Shade(160, 300)
	b := Shade(160, 300)
	if a != b {
		t.Errorf("Shade not deterministic: %v vs %v", a, b)
	}
}

func TestShadeNeverIncreasesWithDistance(t *testing.T) {
	prev := Shade(200, 0)
	for d := 0.0; d < 10000; d += 50 {
		f := Shade(200, d)
		if f > prev {
			t.Fatalf("Shade(200, %v) = %v, brighter than closer distance %v", d, f, prev)
		}
		prev = f
	}
}

func TestShadeOrderedByLightLevel(t *testing.T) {
	for d := 0.0; d < 5000; d += 250 {
		if Shade(240, d) < Shade(120, d) {
			t.Errorf("at distance %v brighter sector shades darker", d)
		}
	}
}

func TestShadeBounds(t *testing.T) {
	if f := Shade(255, 0); f != 1.0 {
		t.Errorf("full light at zero distance = %v, want 1", f)
	}
	if f := Shade(0, 100000); f < MinLightFactor {
		t.Errorf("factor %v below minimum", f)
	}
	if f := Shade(-50, 10); f != Shade(0, 10) {
		t.Errorf("negative light level not clamped: %v", f)
	}
	if f := Shade(400, 10); f != Shade(255, 10) {
		t.Errorf("overrange light level not clamped: %v", f)
	}
}
