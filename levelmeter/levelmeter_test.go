package levelmeter

import (
	"math"
	"testing"
	"time"
)

func TestOfferFirstSampleAlwaysAccepted(t *testing.T) {
	m := New(30 * time.Millisecond)
	if !m.Offer(time.Now()) {
		t.Error("very first sample must be accepted")
	}
}

func TestOfferThrottles(t *testing.T) {
	m := New(30 * time.Millisecond)
	base := time.Now()

	if !m.Offer(base) {
		t.Fatal("first sample rejected")
	}
	if m.Offer(base.Add(10 * time.Millisecond)) {
		t.Error("sample inside interval accepted")
	}
	if m.Offer(base.Add(29 * time.Millisecond)) {
		t.Error("sample just inside interval accepted")
	}
	if !m.Offer(base.Add(30 * time.Millisecond)) {
		t.Error("sample at interval boundary rejected")
	}
}

// A discarded sample must not defer acceptance: the window is measured from
// the last accepted sample, so no two accepted samples are ever closer than
// the interval.
func TestOfferNeverTwoWithinInterval(t *testing.T) {
	interval := 30 * time.Millisecond
	m := New(interval)
	base := time.Now()

	var accepted []time.Time
	for i := 0; i < 200; i++ {
		ts := base.Add(time.Duration(i) * 7 * time.Millisecond)
		if m.Offer(ts) {
			accepted = append(accepted, ts)
		}
	}
	if len(accepted) < 2 {
		t.Fatalf("expected multiple accepted samples, got %d", len(accepted))
	}
	for i := 1; i < len(accepted); i++ {
		if gap := accepted[i].Sub(accepted[i-1]); gap < interval {
			t.Errorf("accepted samples %d and %d only %v apart", i-1, i, gap)
		}
	}
}

func TestOfferAfterQuietPeriod(t *testing.T) {
	m := New(30 * time.Millisecond)
	base := time.Now()
	m.Offer(base)

	// Long silence, then a burst: the first sample of the burst must render.
	if !m.Offer(base.Add(5 * time.Second)) {
		t.Error("first sample after a quiet period rejected")
	}
}

func TestNewDefaultInterval(t *testing.T) {
	m := New(0)
	if m.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", m.interval, DefaultInterval)
	}
}

func TestPeakPercent(t *testing.T) {
	for _, tt := range []struct {
		peak float64
		want int
	}{
		{0, 0},
		{0.5, 50},
		{1, 100},
		{1.7, 100},
		{-0.3, 0},
		{math.NaN(), 0},
	} {
		if got := PeakPercent(tt.peak); got != tt.want {
			t.Errorf("PeakPercent(%v) = %d, want %d", tt.peak, got, tt.want)
		}
	}
}

func TestFormatDB(t *testing.T) {
	for _, tt := range []struct {
		db   float64
		want string
	}{
		{-42.25, "-42.2 dB"},
		{0, "0.0 dB"},
		{math.Inf(-1), "-- dB"},
		{math.NaN(), "-- dB"},
	} {
		if got := FormatDB(tt.db); got != tt.want {
			t.Errorf("FormatDB(%v) = %q, want %q", tt.db, got, tt.want)
		}
	}
}
