//go:build darwin

package login

import (
	"fmt"
	"html"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"
)

const agentLabel = "com.commander.client"

// passthroughEnv lists the overrides a login session must inherit for the
// relaunched client to find the same backend and log directory.
var passthroughEnv = []string{"COMMANDER_SOCKET", "COMMANDER_LOG_PATH"}

var plistTmpl = template.Must(template.New("agent").Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>{{.Label}}</string>
	<key>ProgramArguments</key>
	<array>
		<string>{{.Program}}</string>
	</array>
	<key>RunAtLoad</key>
	<true/>
	<key>LimitLoadToSessionType</key>
	<string>Aqua</string>
	<key>EnvironmentVariables</key>
	<dict>
{{- range .Env}}
		<key>{{.Key}}</key>
		<string>{{.Value}}</string>
{{- end}}
	</dict>
</dict>
</plist>
`))

type envPair struct{ Key, Value string }

type agentPlist struct {
	Label   string
	Program string
	Env     []envPair
}

// renderAgentPlist builds the launchd agent definition. Values are escaped
// here rather than in the template so the template stays a plain skeleton.
func renderAgentPlist(program string, env []envPair) (string, error) {
	data := agentPlist{Label: agentLabel, Program: html.EscapeString(program)}
	for _, p := range env {
		data.Env = append(data.Env, envPair{Key: p.Key, Value: html.EscapeString(p.Value)})
	}
	var b strings.Builder
	if err := plistTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render agent plist: %w", err)
	}
	return b.String(), nil
}

func agentPath() string {
	return filepath.Join(os.Getenv("HOME"), "Library", "LaunchAgents", agentLabel+".plist")
}

func launchctl(args ...string) error {
	out, err := exec.Command("launchctl", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("launchctl %s: %w (%s)", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

func guiDomain() string {
	return fmt.Sprintf("gui/%d", os.Getuid())
}

func Enabled() bool {
	_, err := os.Stat(agentPath())
	return err == nil
}

func Enable() error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	var env []envPair
	for _, key := range passthroughEnv {
		if v := os.Getenv(key); v != "" {
			env = append(env, envPair{Key: key, Value: v})
		}
	}

	plist, err := renderAgentPlist(exe, env)
	if err != nil {
		return err
	}

	path := agentPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create LaunchAgents dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(plist), 0600); err != nil {
		return fmt.Errorf("write agent plist: %w", err)
	}

	// Unload any previous registration so re-enabling picks up the fresh
	// plist; a bootout failure just means nothing was loaded.
	_ = launchctl("bootout", guiDomain(), path)
	return launchctl("bootstrap", guiDomain(), path)
}

func Disable() error {
	path := agentPath()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	_ = launchctl("bootout", guiDomain(), path)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove agent plist: %w", err)
	}
	return nil
}
