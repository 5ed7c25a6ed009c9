package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"commander/bridge"
	"commander/catalog"
	"commander/config"
	"commander/doctor"
	"commander/gateway"
	"commander/levelmeter"
	"commander/log"
	"commander/status"
	"commander/tray"
)

var version = "dev"

var (
	tuiProgram *tea.Program
	tuiMu      sync.Mutex
)

func tuiSend(msg tea.Msg) {
	tuiMu.Lock()
	p := tuiProgram
	tuiMu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}

func main() {
	run()
}

func run() {
	configFlag := flag.String("config", "", "Config file path (default: OS-specific location)")
	socketFlag := flag.String("socket", "", "Backend socket path (overrides config)")
	logPathFlag := flag.String("logpath", "", "Log directory path (default: OS-specific location, use ./ for current dir)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	doctorFlag := flag.Bool("doctor", false, "Run connection diagnostics and exit")
	fakeFlag := flag.Bool("fake", false, "Run against an in-process fake backend (demo mode, no socket needed)")
	crashFlag := flag.Bool("crash", false, "Trigger synthetic panic for testing crash logging")
	flag.Parse()

	cfgPath := *configFlag
	if cfgPath == "" {
		if p, err := config.Path(); err == nil {
			cfgPath = p
		}
	}
	cfg := config.Default()
	if cfgPath != "" {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	cfg = cfg.ApplyEnv()
	if *socketFlag != "" {
		cfg.Socket = *socketFlag
	}

	// Resolve log directory early
	logFlag := *logPathFlag
	if logFlag == "" {
		logFlag = cfg.LogPath
	}
	logPath, err := log.ResolveDir(logFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)

	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}

	if *crashFlag {
		panic("TEST CRASH: synthetic panic to verify crash logging")
	}

	if *versionFlag {
		fmt.Printf("commander %s\n", version)
		os.Exit(0)
	}

	if *doctorFlag {
		os.Exit(doctor.Run(cfg.Socket))
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	} else {
		log.SessionStart(cfg.Socket)
		defer log.Close()
	}

	var inv bridge.Invoker
	var events <-chan bridge.Event
	if *fakeFlag {
		fake := bridge.NewFake()
		seedFakeBackend(fake)
		go runFakeScript(fake)
		inv, events = fake, fake.Events()
	} else {
		cli, err := bridge.Dial(cfg.Socket)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot connect to backend at %s: %v\n", cfg.Socket, err)
			fmt.Fprintln(os.Stderr, "Is the Commander backend running? Try: commander -doctor")
			os.Exit(1)
		}
		defer cli.Close()
		inv, events = cli, cli.Events()
	}

	gw := gateway.New(inv)
	sync := catalog.New(gw)
	meter := levelmeter.New(cfg.MeterInterval())

	reg := bridge.NewRegistry()
	if err := registerTopics(reg, meter); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tuiMu.Lock()
	tuiProgram = NewTUIProgram(gw, sync)
	tuiMu.Unlock()

	var dispatched atomic.Int64
	go func() {
		for ev := range events {
			dispatched.Add(1)
			reg.Dispatch(ev)
		}
	}()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case <-sig:
		case <-tray.QuitChan():
		}
		tuiSend(tea.Quit())
	}()

	toggle := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := gw.ToggleRecording(ctx); err != nil {
			tuiSend(cmdResult("toggle recording", err))
		}
	}
	tray.OnRecord(func() { go toggle() }, func() { go toggle() })

	go func() {
		for _, msg := range primeState(gw) {
			tuiSend(msg)
		}
	}()

	if _, err := tuiProgram.Run(); err != nil {
		log.Errorf("TUI error: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log.SessionEnd(int(dispatched.Load()))
}

// registerTopics attaches every backend topic exactly once. Handlers run on
// the event pump goroutine: decode, throttle, post to the TUI.
func registerTopics(reg *bridge.Registry, meter *levelmeter.Meter) error {
	var firstErr error
	sub := func(topic string, handler func(json.RawMessage)) {
		if err := reg.Subscribe(topic, handler); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	lifecycle := []struct {
		topic string
		ev    status.Event
	}{
		{"recording-start", status.EventRecordingStart},
		{"recording-stop", status.EventRecordingStop},
		{"transcription-start", status.EventTranscriptionStart},
		{"transcription-complete", status.EventTranscriptionComplete},
		{"transcription-failed", status.EventTranscriptionFailed},
		{"no-model-selected", status.EventNoModelSelected},
	}
	for _, lc := range lifecycle {
		ev := lc.ev
		sub(lc.topic, func(json.RawMessage) {
			tuiSend(LifecycleMsg{Ev: ev})
		})
	}

	sub("audio-level", func(p json.RawMessage) {
		var lv struct {
			RMS       float64 `json:"rms"`
			Peak      float64 `json:"peak"`
			DB        float64 `json:"db"`
			Recording bool    `json:"recording"`
		}
		if err := json.Unmarshal(p, &lv); err != nil {
			log.EventDropped("audio-level", "bad payload")
			return
		}
		if !meter.Offer(time.Now()) {
			return
		}
		tuiSend(AudioLevelMsg{Peak: lv.Peak, DB: lv.DB, Recording: lv.Recording})
	})

	sub("transcription", func(p json.RawMessage) {
		var t struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(p, &t); err != nil {
			log.EventDropped("transcription", "bad payload")
			return
		}
		log.TranscriptionText(t.Text)
		tuiSend(TranscriptionMsg{Text: t.Text})
	})

	sub("transcription-profile", func(p json.RawMessage) {
		var pr struct {
			Server  string `json:"server"`
			Whisper string `json:"whisper"`
		}
		if err := json.Unmarshal(p, &pr); err != nil {
			log.EventDropped("transcription-profile", "bad payload")
			return
		}
		tuiSend(ProfileMsg{Server: pr.Server, Whisper: pr.Whisper})
	})

	sub("backend-status", func(p json.RawMessage) {
		var bs struct {
			OS               string `json:"os"`
			MetallibPresent  bool   `json:"metallib_present"`
			LikelyUsingMetal bool   `json:"likely_using_metal"`
		}
		if err := json.Unmarshal(p, &bs); err != nil {
			log.EventDropped("backend-status", "bad payload")
			return
		}
		line := "backend " + bs.OS
		if bs.LikelyUsingMetal {
			line += " · metal"
		} else if bs.MetallibPresent {
			line += " · metallib present"
		}
		tuiSend(BackendStatusMsg{Line: line})
	})

	sub("accessibility-status", func(p json.RawMessage) {
		var as struct {
			Trusted bool `json:"trusted"`
		}
		if err := json.Unmarshal(p, &as); err != nil {
			log.EventDropped("accessibility-status", "bad payload")
			return
		}
		tuiSend(AccessibilityMsg{Trusted: as.Trusted})
	})

	sub("model-download-start", func(p json.RawMessage) {
		var d struct {
			ID         string `json:"id"`
			TotalBytes *int64 `json:"total_bytes"`
		}
		if err := json.Unmarshal(p, &d); err != nil {
			log.EventDropped("model-download-start", "bad payload")
			return
		}
		tuiSend(DownloadStartMsg{ID: d.ID, TotalBytes: d.TotalBytes})
	})

	sub("model-download-progress", func(p json.RawMessage) {
		var d struct {
			ID            string `json:"id"`
			ReceivedBytes int64  `json:"received_bytes"`
			TotalBytes    *int64 `json:"total_bytes"`
		}
		if err := json.Unmarshal(p, &d); err != nil {
			log.EventDropped("model-download-progress", "bad payload")
			return
		}
		tuiSend(DownloadProgressMsg{ID: d.ID, ReceivedBytes: d.ReceivedBytes, TotalBytes: d.TotalBytes})
	})

	sub("model-download-complete", func(p json.RawMessage) {
		tuiSend(DownloadCompleteMsg{})
	})

	sub("model-download-error", func(p json.RawMessage) {
		// Payload is the bare message string.
		var msg string
		if err := json.Unmarshal(p, &msg); err != nil {
			log.EventDropped("model-download-error", "bad payload")
			return
		}
		tuiSend(DownloadErrorMsg{Message: msg})
	})

	return firstErr
}

// primeState pulls the initial snapshots the backend does not push. Each
// fetch stands on its own: one failing call is logged and the rest still
// land, so the settings screen gets whatever the backend could answer.
func primeState(gw *gateway.Client) []tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var msgs []tea.Msg

	if spec, err := gw.CurrentShortcut(ctx); err == nil {
		msgs = append(msgs, ShortcutMsg{Spec: spec})
	} else {
		log.Warnf("could not read current shortcut: %v", err)
	}

	if trusted, err := gw.QueryAccessibilityTrust(ctx); err == nil {
		msgs = append(msgs, AccessibilityMsg{Trusted: trusted})
	}

	snap, err := gw.ModelsStatus(ctx)
	msgs = append(msgs, ModelsMsg{Snap: snap, Err: err})

	var s SettingsMsg
	warn := func(what string, err error) {
		if err != nil {
			log.Warnf("could not read %s: %v", what, err)
		}
	}
	s.Language, err = gw.DefaultLanguage(ctx)
	warn("default language", err)
	s.Prompt, err = gw.DefaultPrompt(ctx)
	warn("default prompt", err)
	s.AutoPaste, err = gw.AutoPasteEnabled(ctx)
	warn("auto-paste flag", err)
	s.HoldToRecord, err = gw.HoldToRecordEnabled(ctx)
	warn("hold-to-record flag", err)
	s.Devices, err = gw.ListAudioInputDevices(ctx)
	warn("audio input devices", err)
	s.Selected, err = gw.SelectedAudioInputDevice(ctx)
	warn("selected audio input device", err)
	msgs = append(msgs, s)
	return msgs
}
