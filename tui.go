package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"commander/catalog"
	"commander/gateway"
	"commander/levelmeter"
	"commander/log"
	"commander/login"
	"commander/shortcut"
	"commander/status"
	"commander/tray"
)

// TUI message types. Backend events are decoded on the bridge pump and
// arrive here as one of these; all state folds happen in Update.
type LifecycleMsg struct{ Ev status.Event }
type RevertMsg struct{ Gen uint64 }
type AudioLevelMsg struct {
	Peak      float64
	DB        float64
	Recording bool
}
type TranscriptionMsg struct{ Text string }
type ProfileMsg struct{ Server, Whisper string }
type BackendStatusMsg struct{ Line string }
type AccessibilityMsg struct{ Trusted bool }
type ShortcutMsg struct{ Spec shortcut.Spec }
type ShortcutSavedMsg struct{ Spec shortcut.Spec }
type ShortcutSaveErrMsg struct{ Err error }
type DownloadStartMsg struct {
	ID         string
	TotalBytes *int64
}
type DownloadProgressMsg struct {
	ID            string
	ReceivedBytes int64
	TotalBytes    *int64
}
type DownloadCompleteMsg struct{}
type DownloadErrorMsg struct{ Message string }
type ModelsMsg struct {
	Snap catalog.Snapshot
	Err  error
}
type SettingsMsg struct {
	Language     string
	Prompt       string
	AutoPaste    bool
	HoldToRecord bool
	Devices      []string
	Selected     string
}
type NoticeMsg struct{ Text string }
type CmdErrMsg struct{ Err error }
type LoginMsg struct{ Enabled bool }

type uiScreen int

const (
	screenMain uiScreen = iota
	screenModels
	screenSettings
)

// Settings rows, top to bottom.
const (
	rowLanguage = iota
	rowPrompt
	rowAutoPaste
	rowHoldToRecord
	rowDevice
	rowLaunchAtLogin
	rowCount
)

type tuiModel struct {
	gw      *gateway.Client
	sync    *catalog.Synchronizer
	recon   *status.Reconciler
	capture *shortcut.Capture

	width, height int
	screen        uiScreen

	view      status.View
	level     levelmeter.Sample
	levelLive bool

	lastText    string
	copied      bool
	profileLine string
	backendLine string
	trusted     bool
	trustKnown  bool

	spec        shortcut.Spec
	editingSpec bool

	cat         catalog.State
	modelCursor int

	lang      textinput.Model
	prompt    textinput.Model
	autoPaste bool
	holdToRec bool
	loginOn   bool
	devices   []string
	deviceIdx int
	row       int

	notice string
}

var (
	accentStyles = map[status.Accent]lipgloss.Style{
		status.AccentNone:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		status.AccentRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		status.AccentAmber: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		status.AccentGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	textStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func NewTUIProgram(gw *gateway.Client, sync *catalog.Synchronizer) *tea.Program {
	return tea.NewProgram(newTUIModel(gw, sync), tea.WithAltScreen())
}

func newTUIModel(gw *gateway.Client, sync *catalog.Synchronizer) tuiModel {
	lang := textinput.New()
	lang.Placeholder = "en"
	lang.CharLimit = 8
	lang.Width = 12

	prompt := textinput.New()
	prompt.Placeholder = "transcription prompt"
	prompt.CharLimit = 256
	prompt.Width = 48

	m := tuiModel{
		gw:      gw,
		sync:    sync,
		recon:   status.New(),
		capture: shortcut.NewCapture(),
		lang:    lang,
		prompt:  prompt,
		loginOn: login.Enabled(),
	}
	m.view = m.recon.View()
	return m
}

func (m tuiModel) Init() tea.Cmd {
	return tea.SetWindowTitle(tray.Tooltip())
}

// cmdResult maps a gateway call into a message, downgrading the cooldown
// guard to a quiet notice.
func cmdResult(action string, err error) tea.Msg {
	if err == nil {
		return NoticeMsg{}
	}
	if errors.Is(err, gateway.ErrCooldown) {
		return NoticeMsg{Text: action + ": easy there, still working on the last one"}
	}
	return CmdErrMsg{Err: fmt.Errorf("%s: %w", action, err)}
}

// recordCmd goes through the tray so the keyboard and the tray icon share
// one start/stop dispatch.
func (m tuiModel) recordCmd() tea.Cmd {
	return func() tea.Msg {
		tray.Record()
		return nil
	}
}

func (m tuiModel) saveShortcutCmd(spec shortcut.Spec) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := gw.SaveCustomShortcut(ctx, spec); err != nil {
			return ShortcutSaveErrMsg{Err: err}
		}
		return ShortcutSavedMsg{Spec: spec}
	}
}

func (m tuiModel) refreshModelsCmd() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		snap, err := gw.ModelsStatus(ctx)
		return ModelsMsg{Snap: snap, Err: err}
	}
}

func (m tuiModel) selectModelCmd(id string) tea.Cmd {
	gw := m.gw
	refresh := m.refreshModelsCmd()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := gw.SelectModel(ctx, id); err != nil {
			return CmdErrMsg{Err: fmt.Errorf("select model: %w", err)}
		}
		return refresh()
	}
}

func (m tuiModel) downloadModelCmd(id string) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return cmdResult("download model", gw.DownloadModel(ctx, id))
	}
}

func (m tuiModel) openAccessibilityCmd() tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return cmdResult("open accessibility settings", gw.OpenAccessibilitySettings(ctx))
	}
}

func (m tuiModel) toggleLoginCmd() tea.Cmd {
	enable := !m.loginOn
	return func() tea.Msg {
		var err error
		if enable {
			err = login.Enable()
		} else {
			err = login.Disable()
		}
		if err != nil {
			return CmdErrMsg{Err: fmt.Errorf("launch at login: %w", err)}
		}
		return LoginMsg{Enabled: enable}
	}
}

func (m tuiModel) saveSettingsCmd() tea.Cmd {
	gw := m.gw
	lang := m.lang.Value()
	prompt := m.prompt.Value()
	autoPaste := m.autoPaste
	holdToRec := m.holdToRec
	device := ""
	if len(m.devices) > 0 {
		device = m.devices[m.deviceIdx]
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := gw.SaveDefaultLanguage(ctx, lang); err != nil {
			return CmdErrMsg{Err: fmt.Errorf("save language: %w", err)}
		}
		if err := gw.SaveDefaultPrompt(ctx, prompt); err != nil {
			return CmdErrMsg{Err: fmt.Errorf("save prompt: %w", err)}
		}
		if err := gw.SaveAutoPasteEnabled(ctx, autoPaste); err != nil {
			return CmdErrMsg{Err: fmt.Errorf("save auto-paste: %w", err)}
		}
		if err := gw.SaveHoldToRecordEnabled(ctx, holdToRec); err != nil {
			return CmdErrMsg{Err: fmt.Errorf("save hold-to-record: %w", err)}
		}
		if device != "" {
			if err := gw.SaveSelectedAudioInputDevice(ctx, device); err != nil {
				return CmdErrMsg{Err: fmt.Errorf("save device: %w", err)}
			}
			if err := gw.ApplySelectedAudioInputDevice(ctx); err != nil {
				return CmdErrMsg{Err: fmt.Errorf("apply device: %w", err)}
			}
		}
		return NoticeMsg{Text: "settings saved"}
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case LifecycleMsg:
		view, revert := m.recon.Apply(msg.Ev)
		m.view = view
		if view.Status != status.Recording {
			m.levelLive = false
		}
		tray.SetStatus(view)
		cmds := []tea.Cmd{tea.SetWindowTitle(tray.Tooltip())}
		if revert != nil {
			gen := revert.Gen
			cmds = append(cmds, tea.Tick(revert.After, func(time.Time) tea.Msg {
				return RevertMsg{Gen: gen}
			}))
		}
		return m, tea.Batch(cmds...)

	case RevertMsg:
		if view, ok := m.recon.Expire(msg.Gen); ok {
			m.view = view
			tray.SetStatus(view)
			return m, tea.SetWindowTitle(tray.Tooltip())
		}

	case AudioLevelMsg:
		m.level = levelmeter.Sample{Peak: msg.Peak, DB: msg.DB}
		m.levelLive = msg.Recording

	case TranscriptionMsg:
		m.lastText = msg.Text
		m.copied = false

	case ProfileMsg:
		m.profileLine = fmt.Sprintf("server %s · whisper %s", msg.Server, msg.Whisper)

	case BackendStatusMsg:
		m.backendLine = msg.Line

	case AccessibilityMsg:
		m.trusted = msg.Trusted
		m.trustKnown = true

	case ShortcutMsg:
		if !m.editingSpec {
			m.spec = msg.Spec
		}

	case ShortcutSavedMsg:
		m.spec = msg.Spec
		m.editingSpec = false
		m.capture.Blur()
		m.notice = ""

	case ShortcutSaveErrMsg:
		// keep the editor open, the staged combination stays valid for a retry
		m.notice = fmt.Sprintf("save shortcut: %v (enter retries)", msg.Err)

	case DownloadStartMsg:
		m.cat = m.sync.DownloadStart(msg.ID, msg.TotalBytes)

	case DownloadProgressMsg:
		m.cat = m.sync.DownloadProgress(msg.ID, msg.ReceivedBytes, msg.TotalBytes)

	case DownloadCompleteMsg:
		m.cat = m.sync.DownloadComplete()
		return m, m.refreshModelsCmd()

	case DownloadErrorMsg:
		m.cat = m.sync.DownloadError(msg.Message)
		tray.SetError("Download failed: " + msg.Message)

	case ModelsMsg:
		if msg.Err != nil {
			m.notice = fmt.Sprintf("models: %v", msg.Err)
			break
		}
		m.cat = m.sync.ApplySnapshot(msg.Snap)
		if m.modelCursor >= len(m.cat.Entries) {
			m.modelCursor = 0
		}

	case SettingsMsg:
		m.lang.SetValue(msg.Language)
		m.prompt.SetValue(msg.Prompt)
		m.autoPaste = msg.AutoPaste
		m.holdToRec = msg.HoldToRecord
		m.devices = msg.Devices
		m.deviceIdx = 0
		for i, d := range msg.Devices {
			if d == msg.Selected {
				m.deviceIdx = i
				break
			}
		}

	case LoginMsg:
		m.loginOn = msg.Enabled

	case NoticeMsg:
		m.notice = msg.Text

	case CmdErrMsg:
		m.notice = msg.Err.Error()
	}
	return m, nil
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		tray.Quit()
		return m, tea.Quit
	}

	if m.editingSpec {
		return m.handleShortcutKey(msg)
	}

	switch m.screen {
	case screenModels:
		return m.handleModelsKey(msg)
	case screenSettings:
		return m.handleSettingsKey(msg)
	}

	switch msg.String() {
	case "q":
		tray.Quit()
		return m, tea.Quit
	case "r":
		return m, m.recordCmd()
	case "c":
		if m.lastText != "" {
			if err := clipboard.WriteAll(m.lastText); err != nil {
				log.Warnf("clipboard copy failed: %v", err)
				m.notice = fmt.Sprintf("copy: %v", err)
			} else {
				m.copied = true
			}
		}
	case "k":
		m.editingSpec = true
		m.capture.Focus()
		m.notice = ""
	case "m":
		m.screen = screenModels
		return m, m.refreshModelsCmd()
	case "s":
		m.screen = screenSettings
		m.row = rowLanguage
		m.lang.Focus()
		return m, nil
	case "a":
		if m.trustKnown && !m.trusted {
			return m, m.openAccessibilityCmd()
		}
	}
	return m, nil
}

// handleShortcutKey drives the editor. Enter and esc are editor controls and
// cannot be captured here; specs using those keys only arrive from a
// backend-persisted config, which is why the keymap still knows them. The
// editor closes on save success, not on enter, so a failed save leaves the
// staged combination in place.
func (m tuiModel) handleShortcutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if spec, ok := m.capture.Staged(); ok {
			return m, m.saveShortcutCmd(spec)
		}
		return m, nil
	case "esc":
		m.editingSpec = false
		m.capture.Blur()
		return m, nil
	}
	m.capture.Keydown(keyEventFromTea(msg.String()))
	return m, nil
}

func (m tuiModel) handleModelsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.screen = screenMain
	case "up", "k":
		if m.modelCursor > 0 {
			m.modelCursor--
		}
	case "down", "j":
		if m.modelCursor < len(m.cat.Entries)-1 {
			m.modelCursor++
		}
	case "enter":
		if m.modelCursor < len(m.cat.Entries) {
			return m, m.selectModelCmd(m.cat.Entries[m.modelCursor].ID)
		}
	case "d":
		if m.modelCursor < len(m.cat.Entries) {
			return m, m.downloadModelCmd(m.cat.Entries[m.modelCursor].ID)
		}
	case "r":
		return m, m.refreshModelsCmd()
	}
	return m, nil
}

func (m tuiModel) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.lang.Blur()
		m.prompt.Blur()
		m.screen = screenMain
		return m, nil
	case "ctrl+s":
		m.notice = "saving…"
		return m, m.saveSettingsCmd()
	case "tab", "down":
		m.row = (m.row + 1) % rowCount
		m.syncFocus()
		return m, nil
	case "shift+tab", "up":
		m.row = (m.row + rowCount - 1) % rowCount
		m.syncFocus()
		return m, nil
	}

	switch m.row {
	case rowLanguage:
		var cmd tea.Cmd
		m.lang, cmd = m.lang.Update(msg)
		return m, cmd
	case rowPrompt:
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	case rowAutoPaste:
		if msg.String() == " " || msg.String() == "enter" {
			m.autoPaste = !m.autoPaste
		}
	case rowHoldToRecord:
		if msg.String() == " " || msg.String() == "enter" {
			m.holdToRec = !m.holdToRec
		}
	case rowDevice:
		switch msg.String() {
		case "left", "h":
			if m.deviceIdx > 0 {
				m.deviceIdx--
			}
		case "right", "l":
			if m.deviceIdx < len(m.devices)-1 {
				m.deviceIdx++
			}
		}
	case rowLaunchAtLogin:
		if msg.String() == " " || msg.String() == "enter" {
			return m, m.toggleLoginCmd()
		}
	}
	return m, nil
}

func (m *tuiModel) syncFocus() {
	m.lang.Blur()
	m.prompt.Blur()
	switch m.row {
	case rowLanguage:
		m.lang.Focus()
	case rowPrompt:
		m.prompt.Focus()
	}
}

// keyEventFromTea maps a terminal keypress string onto the capture state
// machine's raw event shape. Terminals cannot report the meta key, so the
// primary accelerator arrives as ctrl here.
func keyEventFromTea(s string) shortcut.KeyEvent {
	var ev shortcut.KeyEvent
	for {
		switch {
		case strings.HasPrefix(s, "ctrl+"):
			ev.Ctrl = true
			s = s[len("ctrl+"):]
		case strings.HasPrefix(s, "alt+"):
			ev.Alt = true
			s = s[len("alt+"):]
		case strings.HasPrefix(s, "shift+"):
			ev.Shift = true
			s = s[len("shift+"):]
		default:
			ev.Key = s
			return ev
		}
	}
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	switch m.screen {
	case screenModels:
		return m.viewModels()
	case screenSettings:
		return m.viewSettings()
	}
	return m.viewMain()
}

func (m tuiModel) viewMain() string {
	var b strings.Builder

	accent := accentStyles[m.view.Accent]
	marker := "○"
	if m.view.Status == status.Recording {
		marker = "●"
	}
	b.WriteString(accent.Render(fmt.Sprintf("%s %s", marker, m.view.Label)))
	b.WriteString("\n")

	// Level meter, live only while the backend reports recording.
	if m.levelLive {
		pct := levelmeter.PeakPercent(m.level.Peak)
		b.WriteString(renderLevelBar(pct, 30))
		b.WriteString(dimStyle.Render("  " + levelmeter.FormatDB(m.level.DB)))
		b.WriteString("\n")
	} else {
		b.WriteString(faintStyle.Render(strings.Repeat("░", 30)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Shortcut line, or the live capture when editing.
	if m.editingSpec {
		staged := m.capture.Display()
		if staged == "" {
			staged = "press keys…"
		}
		b.WriteString(titleStyle.Render("Shortcut: ") + cursorStyle.Render(staged))
		b.WriteString(faintStyle.Render("   enter save · esc cancel"))
	} else {
		b.WriteString(titleStyle.Render("Shortcut: ") + dimStyle.Render(m.spec.Display(runtime.GOOS)))
	}
	b.WriteString("\n")

	if m.trustKnown && !m.trusted {
		b.WriteString(warnStyle.Render("⚠ accessibility permission missing, press 'a' to open settings"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.lastText != "" {
		b.WriteString(titleStyle.Render("Last transcription"))
		b.WriteString("\n")
		wrapWidth := m.width - 2
		if wrapWidth < 10 {
			wrapWidth = 10
		}
		lines := wrapText(m.lastText, wrapWidth)
		for i, line := range lines {
			b.WriteString(textStyle.Render(line))
			if i == len(lines)-1 && m.copied {
				b.WriteString(" " + okStyle.Render("[✓ copied]"))
			}
			b.WriteString("\n")
		}
	} else {
		b.WriteString(dimStyle.Render("No transcriptions yet"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.cat.Download != nil {
		b.WriteString(dimStyle.Render("Downloading "+m.cat.Download.ID+": ") + m.cat.Download.Line())
		b.WriteString("\n")
	}
	if m.cat.DownloadErr != "" {
		b.WriteString(warnStyle.Render(m.cat.DownloadErr))
		b.WriteString("\n")
	}
	if m.profileLine != "" {
		b.WriteString(faintStyle.Render(m.profileLine))
		b.WriteString("\n")
	}
	if m.backendLine != "" {
		b.WriteString(faintStyle.Render(m.backendLine))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(warnStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render("r record · c copy · k shortcut · m models · s settings · q quit"))
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("commander " + version))
	return b.String()
}

func (m tuiModel) viewModels() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Models"))
	b.WriteString("\n\n")

	if len(m.cat.Entries) == 0 {
		b.WriteString(dimStyle.Render("No models reported"))
		b.WriteString("\n")
	}
	for i, e := range m.cat.Entries {
		prefix := "  "
		style := dimStyle
		if i == m.modelCursor {
			prefix = "> "
			style = cursorStyle
		}
		line := e.Name
		if e.Installed {
			line += " (installed)"
		} else if e.SizeBytes == nil {
			line += fmt.Sprintf(" (~%d MB)", e.ApproxSizeMB)
		}
		if e.ID == m.cat.SelectedID {
			line += " " + okStyle.Render("✓ selected")
		}
		b.WriteString(prefix + style.Render(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.cat.Download != nil {
		b.WriteString(dimStyle.Render("Downloading "+m.cat.Download.ID+": ") + m.cat.Download.Line())
		b.WriteString("\n")
	}
	if m.cat.DownloadErr != "" {
		b.WriteString(warnStyle.Render(m.cat.DownloadErr))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(warnStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render("enter select · d download · r refresh · esc back"))
	return b.String()
}

func (m tuiModel) viewSettings() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n\n")

	rows := []struct {
		label string
		value string
	}{
		{"Language", m.lang.View()},
		{"Prompt", m.prompt.View()},
		{"Auto-paste", onOff(m.autoPaste)},
		{"Hold to record", onOff(m.holdToRec)},
		{"Input device", m.deviceLabel()},
		{"Launch at login", onOff(m.loginOn)},
	}
	for i, r := range rows {
		prefix := "  "
		label := dimStyle.Render(r.label)
		if i == m.row {
			prefix = "> "
			label = cursorStyle.Render(r.label)
		}
		b.WriteString(fmt.Sprintf("%s%-24s %s\n", prefix, label, r.value))
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render("tab next · space toggle · ←/→ device · ctrl+s save · esc back"))
	return b.String()
}

func (m tuiModel) deviceLabel() string {
	if len(m.devices) == 0 {
		return dimStyle.Render("system default")
	}
	return m.devices[m.deviceIdx]
}

func onOff(v bool) string {
	if v {
		return okStyle.Render("on")
	}
	return dimStyle.Render("off")
}

func renderLevelBar(pct, width int) string {
	filled := pct * width / 100
	if filled > width {
		filled = width
	}
	bar := accentStyles[status.AccentGreen].Render(strings.Repeat("█", filled))
	bar += faintStyle.Render(strings.Repeat("░", width-filled))
	return bar
}

func wrapText(text string, width int) []string {
	if len(text) == 0 {
		return []string{""}
	}
	if width <= 0 {
		width = 1
	}

	var lines []string
	for len(text) > width {
		splitAt := width
		for i := width; i > 0; i-- {
			if text[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, text[:splitAt])
		text = strings.TrimLeft(text[splitAt:], " ")
	}
	if len(text) > 0 {
		lines = append(lines, text)
	}
	return lines
}
