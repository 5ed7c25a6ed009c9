// Package status folds backend lifecycle events into the single current
// recording status shown in the UI. Transitions are driven exclusively by
// events as they arrive; no cross-topic ordering is validated.
package status

import "time"

// Status is the reconciled recording state. Exactly one value is active.
type Status int

const (
	Idle Status = iota
	Recording
	Transcribing
	Ready
	Error
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Transcribing:
		return "transcribing"
	case Ready:
		return "ready"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Accent is the visual cue tied to a status.
type Accent int

const (
	AccentNone Accent = iota
	AccentRed
	AccentAmber
	AccentGreen
)

// Event is a lifecycle topic consumed by the reconciler.
type Event string

const (
	EventRecordingStart        Event = "recording-start"
	EventRecordingStop         Event = "recording-stop"
	EventTranscriptionStart    Event = "transcription-start"
	EventTranscriptionComplete Event = "transcription-complete"
	EventTranscriptionFailed   Event = "transcription-failed"
	EventNoModelSelected       Event = "no-model-selected"
)

// NoModelMessage matches the backend's blocking error verbatim.
const NoModelMessage = "No model selected. Please select and download a model first."

const (
	// How long the green "ready" state stays up before clearing to idle.
	readyInterval = 1500 * time.Millisecond
	// Errors stay visible longer before clearing.
	errorInterval = 3 * time.Second
)

// View is the render-facing snapshot of reconciled state.
type View struct {
	Status Status
	Label  string
	Accent Accent
	Button string // record-button label: "start" or "stop"
}

// Revert is a timed follow-up transition. The host schedules it and calls
// Expire(Gen) when the delay elapses; a newer event supersedes it.
type Revert struct {
	After time.Duration
	Gen   uint64
}

// Reconciler owns the current status. Not safe for concurrent use; it is
// mutated only from the event loop.
type Reconciler struct {
	view   View
	gen    uint64
	revert View // state to adopt when the pending revert expires
}

func New() *Reconciler {
	return &Reconciler{view: View{Status: Idle, Label: "Idle", Button: "start"}}
}

func (r *Reconciler) View() View {
	return r.view
}

// Apply folds one event into the current state. Applying the same event
// twice produces the same observable state. The returned Revert, when
// non-nil, asks the host to call Expire after the delay.
func (r *Reconciler) Apply(ev Event) (View, *Revert) {
	r.gen++
	switch ev {
	case EventRecordingStart:
		r.view = View{Status: Recording, Label: "Recording", Accent: AccentRed, Button: "stop"}
	case EventRecordingStop:
		r.view = View{Status: Transcribing, Label: "Processing…", Accent: AccentAmber, Button: "start"}
	case EventTranscriptionStart:
		// Status text only; accent and button carry over.
		r.view.Status = Transcribing
		r.view.Label = "Transcribing…"
	case EventTranscriptionComplete:
		r.view = View{Status: Ready, Label: "Done", Accent: AccentGreen, Button: "start"}
		r.revert = View{Status: Idle, Label: "Idle", Button: "start"}
		return r.view, &Revert{After: readyInterval, Gen: r.gen}
	case EventTranscriptionFailed:
		r.view = View{Status: Error, Label: "Transcription failed", Accent: AccentRed, Button: "start"}
		r.revert = View{Status: Ready, Label: "Ready", Button: "start"}
		return r.view, &Revert{After: errorInterval, Gen: r.gen}
	case EventNoModelSelected:
		// Blocking message; applies regardless of current status.
		r.view = View{Status: Error, Label: NoModelMessage, Button: "start"}
	}
	return r.view, nil
}

// Expire applies the pending revert if no event arrived since it was armed.
func (r *Reconciler) Expire(gen uint64) (View, bool) {
	if gen != r.gen {
		return r.view, false
	}
	r.gen++
	r.view = r.revert
	return r.view, true
}
