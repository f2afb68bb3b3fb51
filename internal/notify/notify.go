// Package notify delivers desktop notifications through whichever
// notification tool is installed.
package notify

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/1broseidon/hyprgrid/internal/logging"
)

// AppName is passed to tools that accept an application name.
const AppName = "Hypr Grid Manager"

// DefaultAttemptTimeout bounds each notification tool invocation.
const DefaultAttemptTimeout = time.Second

// ErrNoTool is returned when no notification tool accepted the message.
var ErrNoTool = errors.New("no notification tool available")

// Runner executes one notification command.
type Runner func(ctx context.Context, name string, args ...string) error

// Service sends notifications, trying a custom command first and then each
// known tool in order.
type Service struct {
	log            *logging.Logger
	notifyCommand  string
	attemptTimeout time.Duration
	lookPath       func(string) (string, error)
	run            Runner
}

// Option customises a Service.
type Option func(*Service)

// WithCommand sets a shell command that receives the title and body as $1 and $2.
func WithCommand(command string) Option {
	return func(s *Service) { s.notifyCommand = command }
}

// WithRunner replaces command execution and tool lookup, mainly for tests.
func WithRunner(lookPath func(string) (string, error), run Runner) Option {
	return func(s *Service) {
		s.lookPath = lookPath
		s.run = run
	}
}

// WithAttemptTimeout bounds each tool invocation.
func WithAttemptTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.attemptTimeout = d
		}
	}
}

// NewService creates a notification service.
func NewService(log *logging.Logger, opts ...Option) *Service {
	s := &Service{
		log:            log,
		attemptTimeout: DefaultAttemptTimeout,
		lookPath:       exec.LookPath,
		run:            execRun,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func execRun(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// Notify shows title and body for roughly timeout. It is best effort: the
// returned error is for logging only.
func (s *Service) Notify(ctx context.Context, title, body string, timeout time.Duration) error {
	if s.notifyCommand != "" {
		err := s.attempt(ctx, "sh", "-c", s.notifyCommand+` "$1" "$2"`, "hyprgrid-notify", title, body)
		if err == nil {
			return nil
		}
		s.log.Warn("Custom notification command failed", "command", s.notifyCommand, "error", err)
	}

	for _, tool := range notificationTools {
		if _, err := s.lookPath(tool.name); err != nil {
			continue
		}
		args := tool.buildArgs(title, body, timeout)
		if err := s.attempt(ctx, tool.name, args...); err != nil {
			s.log.Debug("Notification tool failed", "tool", tool.name, "error", err)
			continue
		}
		s.log.Debug("Notification sent", "tool", tool.name)
		return nil
	}
	return ErrNoTool
}

func (s *Service) attempt(ctx context.Context, name string, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
	defer cancel()
	if err := s.run(ctx, name, args...); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

type notificationTool struct {
	name      string
	buildArgs func(title, body string, timeout time.Duration) []string
}

var notificationTools = []notificationTool{
	{
		name: "notify-send",
		buildArgs: func(title, body string, timeout time.Duration) []string {
			return []string{"-a", AppName, "-t", millis(timeout), title, body}
		},
	},
	{
		name: "dunstify",
		buildArgs: func(title, body string, timeout time.Duration) []string {
			return []string{"-a", AppName, "-t", millis(timeout), title, body}
		},
	},
	{
		name: "hyprctl",
		buildArgs: func(title, body string, timeout time.Duration) []string {
			// icon -1 (none), colour 0 (default)
			return []string{"notify", "-1", millis(timeout), "0", title + ": " + body}
		},
	},
	{
		name: "zenity",
		buildArgs: func(title, body string, timeout time.Duration) []string {
			return []string{"--notification", "--text", title + "\n" + body}
		},
	},
}

func millis(d time.Duration) string {
	return strconv.FormatInt(d.Milliseconds(), 10)
}
