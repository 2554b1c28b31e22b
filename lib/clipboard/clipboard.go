// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clipboard hands resolved system names to the host clipboard.
//
// The only contract is [Sink]. Which implementation backs it depends on
// where edgalmap runs: a desktop session has a clipboard command
// (wl-copy, xclip, pbcopy), a remote shell can usually still reach the
// local clipboard through the terminal's OSC 52 escape, and pipes and
// tests get [Nop] or [Memory].
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Sink receives the text to place on the clipboard.
type Sink interface {
	SetText(text []byte) error
}

// Mode selects a Sink implementation.
type Mode string

const (
	ModeAuto    Mode = "auto"
	ModeOSC52   Mode = "osc52"
	ModeCommand Mode = "command"
	ModeNone    Mode = "none"
)

// ParseMode validates a mode name.
func ParseMode(text string) (Mode, error) {
	switch mode := Mode(strings.ToLower(strings.TrimSpace(text))); mode {
	case ModeAuto, ModeOSC52, ModeCommand, ModeNone:
		return mode, nil
	case "":
		return ModeAuto, nil
	default:
		return "", fmt.Errorf("unknown clipboard mode %q (want auto, osc52, command or none)", text)
	}
}

// Host is what [New] needs to know about the environment.
type Host struct {
	// Terminal is where OSC 52 sequences are written.
	Terminal io.Writer

	// IsTerminal reports whether Terminal is an interactive terminal.
	IsTerminal bool

	// Getenv and LookPath default to the process environment and PATH.
	Getenv   func(string) string
	LookPath func(string) (string, error)
}

// New returns the Sink for mode. ModeAuto prefers a clipboard command,
// falls back to OSC 52 on a terminal, and otherwise copies nothing.
func New(mode Mode, host Host) (Sink, error) {
	switch mode {
	case ModeNone:
		return Nop{}, nil
	case ModeOSC52:
		if host.Terminal == nil {
			return nil, errors.New("osc52 clipboard needs a terminal")
		}
		return NewOSC52(host.Terminal), nil
	case ModeCommand:
		return DetectCommand(host)
	case ModeAuto, "":
		if command, err := DetectCommand(host); err == nil {
			return command, nil
		}
		if host.IsTerminal && host.Terminal != nil {
			return NewOSC52(host.Terminal), nil
		}
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard mode %q", mode)
	}
}

// prepare strips styling and surrounding whitespace. Names are copied
// exactly as they would be typed into the game.
func prepare(text []byte) string {
	return strings.TrimSpace(ansi.Strip(string(text)))
}

// OSC52 copies through the terminal's OSC 52 escape sequence, which
// reaches the local clipboard even over SSH.
type OSC52 struct {
	output *termenv.Output
}

// NewOSC52 returns a Sink writing escape sequences to terminal.
func NewOSC52(terminal io.Writer) *OSC52 {
	return &OSC52{output: termenv.NewOutput(terminal)}
}

func (s *OSC52) SetText(text []byte) error {
	s.output.Copy(prepare(text))
	return nil
}

// Command copies by piping the text into a clipboard program.
type Command struct {
	Name string
	Args []string

	// Timeout bounds the program's run time. Zero means five seconds.
	Timeout time.Duration
}

// commandCandidates lists clipboard programs in preference order, each
// gated on the environment variable that shows its display server is
// present ("" means always eligible on that platform).
var commandCandidates = []struct {
	goos    string
	env     string
	command Command
}{
	{"darwin", "", Command{Name: "pbcopy"}},
	{"windows", "", Command{Name: "clip.exe"}},
	{"linux", "WAYLAND_DISPLAY", Command{Name: "wl-copy"}},
	{"linux", "DISPLAY", Command{Name: "xclip", Args: []string{"-selection", "clipboard"}}},
	{"linux", "DISPLAY", Command{Name: "xsel", Args: []string{"--clipboard", "--input"}}},
	{"linux", "WSL_DISTRO_NAME", Command{Name: "clip.exe"}},
}

// ErrNoCommand is returned by [DetectCommand] when no clipboard program
// is usable.
var ErrNoCommand = errors.New("no clipboard command found")

// DetectCommand picks the first clipboard program that fits the host.
func DetectCommand(host Host) (*Command, error) {
	return detectCommand(runtime.GOOS, host)
}

func detectCommand(goos string, host Host) (*Command, error) {
	getenv, lookPath := host.Getenv, host.LookPath
	if getenv == nil {
		getenv = os.Getenv
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	for _, candidate := range commandCandidates {
		if candidate.goos != goos {
			continue
		}
		if candidate.env != "" && getenv(candidate.env) == "" {
			continue
		}
		if _, err := lookPath(candidate.command.Name); err != nil {
			continue
		}
		command := candidate.command
		return &command, nil
	}
	return nil, ErrNoCommand
}

func (c *Command) SetText(text []byte) error {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stderr bytes.Buffer
	command := exec.CommandContext(ctx, c.Name, c.Args...)
	command.Stdin = strings.NewReader(prepare(text))
	command.Stderr = &stderr
	if err := command.Run(); err != nil {
		return fmt.Errorf("%s: %w (stderr: %s)", c.Name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// Nop discards.
type Nop struct{}

func (Nop) SetText([]byte) error { return nil }

// Memory records copied text. Safe for concurrent use.
type Memory struct {
	mu    sync.Mutex
	texts []string
}

func (m *Memory) SetText(text []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.texts = append(m.texts, prepare(text))
	return nil
}

// Last returns the most recently copied text, or "" if none.
func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.texts) == 0 {
		return ""
	}
	return m.texts[len(m.texts)-1]
}

// All returns every copied text in order.
func (m *Memory) All() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.texts...)
}
