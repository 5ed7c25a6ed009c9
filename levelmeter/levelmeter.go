// Package levelmeter bounds the audio-level render rate. The backend emits
// level samples far faster than a display usefully refreshes; the meter
// accepts at most one sample per interval and drops the rest outright.
// A rejected sample is lost, not deferred.
package levelmeter

import (
	"fmt"
	"math"
	"time"
)

// DefaultInterval is the minimum spacing between accepted samples.
const DefaultInterval = 30 * time.Millisecond

// Sample is one instantaneous level reading. DB may be non-finite when the
// input was pure silence.
type Sample struct {
	Peak float64 `json:"peak"`
	DB   float64 `json:"db"`
}

// Meter throttles a sample stream. Not safe for concurrent use; it is owned
// by the single event loop.
type Meter struct {
	interval time.Duration
	last     time.Time
}

func New(interval time.Duration) *Meter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Meter{interval: interval}
}

// Offer reports whether the sample should be rendered. The first sample
// after a quiet period is always accepted.
func (m *Meter) Offer(now time.Time) bool {
	if !m.last.IsZero() && now.Sub(m.last) < m.interval {
		return false
	}
	m.last = now
	return true
}

// PeakPercent maps peak in [0,1] linearly to [0,100], clamped.
func PeakPercent(peak float64) int {
	p := peak * 100
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	if p > 100 {
		return 100
	}
	return int(p)
}

// FormatDB renders db with one decimal, or a sentinel when non-finite.
func FormatDB(db float64) string {
	if math.IsNaN(db) || math.IsInf(db, 0) {
		return "-- dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}
