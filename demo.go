package main

import (
	"math"
	"runtime"
	"time"

	"commander/bridge"
	"commander/catalog"
	"commander/shortcut"
)

// seedFakeBackend cans the command responses the UI pulls at startup so
// -fake mode renders a fully populated screen without a backend process.
func seedFakeBackend(f *bridge.Fake) {
	f.Respond("ping", "pong")
	f.Respond("toggle-recording", "ok")
	f.Respond("query-accessibility-trust", true)
	f.Respond("get-current-shortcut", shortcut.Default(runtime.GOOS))
	f.Respond("get-default-language", "en")
	f.Respond("get-default-prompt", "")
	f.Respond("get-auto-paste-enabled", true)
	f.Respond("get-hold-to-record-enabled", false)
	f.Respond("list-audio-input-devices", []string{"Built-in Microphone", "USB Microphone"})
	f.Respond("get-selected-audio-input-device", "Built-in Microphone")

	turboBytes := int64(1624 << 20)
	f.Respond("get-models-status", catalog.Snapshot{
		SelectedID: "large-v3-turbo",
		Available: []catalog.Entry{
			{ID: "large-v3-turbo", Name: "Large v3 Turbo", Filename: "ggml-large-v3-turbo.bin", Installed: true, SizeBytes: &turboBytes, ApproxSizeMB: 1624},
			{ID: "large-v3-turbo-q5_0", Name: "Large v3 Turbo (q5_0)", Filename: "ggml-large-v3-turbo-q5_0.bin", ApproxSizeMB: 574},
		},
	})
}

// runFakeScript plays a scripted dictation session on repeat.
func runFakeScript(f *bridge.Fake) {
	time.Sleep(500 * time.Millisecond)
	f.Emit("accessibility-status", map[string]bool{"trusted": true})
	f.Emit("backend-status", map[string]any{
		"os":                 runtime.GOOS,
		"metallib_present":   runtime.GOOS == "darwin",
		"likely_using_metal": runtime.GOOS == "darwin",
	})
	f.Emit("transcription-profile", map[string]string{"server": "120ms", "whisper": "850ms"})

	lines := []string{
		"The quick brown fox jumps over the lazy dog.",
		"Meeting notes: ship the release candidate on Friday.",
		"Remember to water the plants before leaving.",
	}

	for i := 0; ; i++ {
		time.Sleep(4 * time.Second)

		f.Emit("recording-start", nil)
		for t := 0; t < 100; t++ {
			peak := 0.3 + 0.25*math.Sin(float64(t)/6)
			db := 20 * math.Log10(peak)
			f.Emit("audio-level", map[string]any{
				"rms":       peak * 0.7,
				"peak":      peak,
				"db":        db,
				"recording": true,
			})
			time.Sleep(20 * time.Millisecond)
		}
		f.Emit("recording-stop", nil)

		f.Emit("transcription-start", nil)
		time.Sleep(900 * time.Millisecond)
		f.Emit("transcription", map[string]string{"text": lines[i%len(lines)]})
		f.Emit("transcription-complete", nil)

		// One scripted download to exercise the progress line.
		if i == 0 {
			time.Sleep(3 * time.Second)
			total := int64(574 << 20)
			f.Emit("model-download-start", map[string]any{"id": "large-v3-turbo-q5_0", "total_bytes": total})
			for pct := 10; pct <= 100; pct += 10 {
				time.Sleep(400 * time.Millisecond)
				f.Emit("model-download-progress", map[string]any{
					"id":             "large-v3-turbo-q5_0",
					"received_bytes": total * int64(pct) / 100,
					"total_bytes":    total,
				})
			}
			f.Emit("model-download-complete", map[string]any{"id": "large-v3-turbo-q5_0", "selected": false})
		}
	}
}
