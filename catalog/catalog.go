// Package catalog reconciles the backend's model list and download
// progress into a re-renderable selection state. Refresh is a full snapshot
// replace; the catalog is small enough that diffing buys nothing.
package catalog

import (
	"context"
	"fmt"

	"commander/log"
)

// Entry mirrors one selectable model as reported by the backend.
type Entry struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Filename     string `json:"filename"`
	Installed    bool   `json:"installed"`
	SizeBytes    *int64 `json:"size_bytes"`
	ApproxSizeMB int64  `json:"approx_size_mb"`
}

// Snapshot is the backend's full catalog answer.
type Snapshot struct {
	Available  []Entry `json:"available"`
	SelectedID string  `json:"selected_id"`
}

// Progress is the transient byte count of the single modeled in-flight
// download. TotalBytes is nil when the server did not report a length.
type Progress struct {
	ID            string
	ReceivedBytes int64
	TotalBytes    *int64
}

// Line renders the progress for display.
func (p Progress) Line() string {
	if p.TotalBytes != nil && *p.TotalBytes > 0 {
		pct := float64(p.ReceivedBytes) / float64(*p.TotalBytes) * 100
		return fmt.Sprintf("%s / %s (%.0f%%)", humanBytes(p.ReceivedBytes), humanBytes(*p.TotalBytes), pct)
	}
	return humanBytes(p.ReceivedBytes)
}

func humanBytes(n int64) string {
	switch {
	case n >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// State is the render-facing catalog state. Download and DownloadErr are
// mutually exclusive; both empty means no download activity to show.
type State struct {
	SelectedID  string
	Entries     []Entry
	Download    *Progress
	DownloadErr string
}

// Fetcher pulls the catalog snapshot (implemented by the command gateway).
type Fetcher interface {
	ModelsStatus(ctx context.Context) (Snapshot, error)
}

// Synchronizer owns the catalog state; mutated only from the event loop.
type Synchronizer struct {
	fetch Fetcher
	state State
}

func New(f Fetcher) *Synchronizer {
	return &Synchronizer{fetch: f}
}

func (s *Synchronizer) State() State {
	return s.state
}

// Refresh replaces the entries and selection wholesale. A selected id that
// matches no entry violates the snapshot invariant: the selection is
// cleared and logged rather than rendered dangling.
func (s *Synchronizer) Refresh(ctx context.Context) (State, error) {
	snap, err := s.fetch.ModelsStatus(ctx)
	if err != nil {
		return s.state, err
	}
	return s.ApplySnapshot(snap), nil
}

// ApplySnapshot folds an already-fetched snapshot, for callers that fetch
// off the event loop and fold on it.
func (s *Synchronizer) ApplySnapshot(snap Snapshot) State {
	selected := snap.SelectedID
	if selected != "" {
		found := false
		for _, e := range snap.Available {
			if e.ID == selected {
				found = true
				break
			}
		}
		if !found {
			log.Warnf("catalog: selected model %q not in catalog, clearing", selected)
			selected = ""
		}
	}
	s.state.SelectedID = selected
	s.state.Entries = snap.Available
	return s.state
}

// DownloadStart begins tracking a download. A second start while one is
// displayed simply overwrites it; this layer models at most one in-flight
// download.
func (s *Synchronizer) DownloadStart(id string, totalBytes *int64) State {
	s.state.Download = &Progress{ID: id, TotalBytes: totalBytes}
	s.state.DownloadErr = ""
	return s.state
}

func (s *Synchronizer) DownloadProgress(id string, received int64, totalBytes *int64) State {
	s.state.Download = &Progress{ID: id, ReceivedBytes: received, TotalBytes: totalBytes}
	s.state.DownloadErr = ""
	return s.state
}

// DownloadComplete clears the progress line. The caller follows up with
// Refresh to pick up the newly installed entry.
func (s *Synchronizer) DownloadComplete() State {
	s.state.Download = nil
	s.state.DownloadErr = ""
	return s.state
}

// DownloadError replaces the progress line with the backend's message
// verbatim.
func (s *Synchronizer) DownloadError(message string) State {
	s.state.Download = nil
	s.state.DownloadErr = message
	return s.state
}
