package doctor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	"golang.org/x/term"

	"commander/bridge"
	"commander/config"
	"commander/gateway"
	"commander/log"
)

// Run executes diagnostic checks against the local setup and the backend
// socket. Returns an exit code (0=all pass, 1=any fail).
func Run(socketPath string) int {
	resetTerminal()
	setupInterruptHandler()

	fmt.Println("commander doctor - connection and environment diagnostics")
	fmt.Println("=========================================================")

	allPass := true

	cfg, ok := checkConfig()
	if !ok {
		allPass = false
	}
	if socketPath == "" {
		socketPath = cfg.Socket
	}
	if !checkTerminal() {
		allPass = false
	}
	if !checkLogDir() {
		allPass = false
	}
	if !checkClipboardRoundTrip() {
		allPass = false
	}
	if !checkBackend(socketPath) {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkConfig() (config.Config, bool) {
	fmt.Println()
	fmt.Println("[1/5] Configuration")

	path, err := config.Path()
	if err != nil {
		fmt.Printf("  FAIL: cannot resolve config path: %v\n", err)
		return config.Default(), false
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Printf("  FAIL: %s: %v\n", path, err)
		return config.Default(), false
	}
	cfg = cfg.ApplyEnv()

	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		fmt.Printf("  PASS: no config file at %s, using defaults\n", path)
	} else {
		fmt.Printf("  PASS: loaded %s\n", path)
	}
	fmt.Printf("        socket: %s\n", cfg.Socket)
	return cfg, true
}

func checkTerminal() bool {
	fmt.Println()
	fmt.Println("[2/5] Terminal")

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fmt.Println("  FAIL: stdout is not a terminal (interactive UI needs one)")
		return false
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		fmt.Printf("  FAIL: cannot query terminal size: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: interactive terminal %dx%d\n", w, h)
	return true
}

func checkLogDir() bool {
	fmt.Println()
	fmt.Println("[3/5] Log directory")

	dir, err := log.ResolveDir("")
	if err != nil {
		fmt.Printf("  FAIL: cannot resolve log directory: %v\n", err)
		return false
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Printf("  FAIL: cannot create %s: %v\n", dir, err)
		return false
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		fmt.Printf("  FAIL: %s not writable: %v\n", dir, err)
		return false
	}
	os.Remove(probe)
	fmt.Printf("  PASS: %s writable\n", dir)
	return true
}

func checkClipboardRoundTrip() bool {
	fmt.Println()
	fmt.Println("[4/5] Clipboard")

	testStr := fmt.Sprintf("commander-doctor-%d", time.Now().UnixNano())

	type cbResult struct {
		readback string
		err      error
		phase    string
	}
	ch := make(chan cbResult, 1)
	go func() {
		prev, _ := clipboard.ReadAll()
		if err := clipboard.WriteAll(testStr); err != nil {
			ch <- cbResult{err: err, phase: "write"}
			return
		}
		got, err := clipboard.ReadAll()
		// Put back whatever was there before the probe.
		clipboard.WriteAll(prev)
		if err != nil {
			ch <- cbResult{err: err, phase: "read"}
			return
		}
		ch <- cbResult{readback: got}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			fmt.Printf("  FAIL: clipboard %s failed: %v\n", res.phase, res.err)
			return false
		}
		if res.readback != testStr {
			fmt.Printf("  FAIL: clipboard mismatch: wrote %q, got %q\n", testStr, res.readback)
			return false
		}
		fmt.Println("  PASS: clipboard write/read verified")
		return true
	case <-time.After(3 * time.Second):
		fmt.Println("  FAIL: clipboard timed out (clipboard tool hung - compositor not accessible?)")
		return false
	}
}

func checkBackend(socketPath string) bool {
	fmt.Println()
	fmt.Println("[5/5] Backend socket")

	cli, err := bridge.Dial(socketPath)
	if err != nil {
		fmt.Printf("  FAIL: cannot connect to %s: %v\n", socketPath, err)
		fmt.Println("  Is the Commander backend running?")
		return false
	}
	defer cli.Close()

	gw := gateway.New(cli)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	if err := gw.Ping(ctx); err != nil {
		fmt.Printf("  FAIL: ping failed: %v\n", err)
		return false
	}
	fmt.Printf("  PASS: backend responded in %s\n", time.Since(start).Round(time.Millisecond))

	spec, err := gw.CurrentShortcut(ctx)
	if err != nil {
		fmt.Printf("  Warning: could not read current shortcut: %v\n", err)
		return true
	}
	fmt.Printf("        shortcut: %s\n", spec.Display(runtime.GOOS))
	return true
}
