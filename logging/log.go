package logging

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"ai_text_improver/revision"
)

// New builds the process logger. Pretty output is meant for a terminal;
// plain JSON lines for log files.
func New(w io.Writer, level zerolog.Level, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(level)
}

// Level maps the --debug flag.
func Level(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

// NewContext attaches l to ctx for commands further down the tree.
func NewContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}

// FromContext returns the logger stored by NewContext, or a disabled one.
func FromContext(ctx context.Context) zerolog.Logger {
	return *zerolog.Ctx(ctx)
}

// Observer forwards Reviser diagnostics to zerolog.
type Observer struct {
	Log zerolog.Logger
}

var _ revision.Observer = Observer{}

func (o Observer) Revised(cfg revision.Config, elapsed time.Duration) {
	o.Log.Debug().
		Str("tone", string(cfg.Tone)).
		Bool("improve_readability", cfg.ImproveReadability).
		Dur("elapsed", elapsed).
		Msg("text revised")
}

func (o Observer) Failed(cfg revision.Config, err error) {
	ev := o.Log.Error().
		Err(err).
		Str("tone", string(cfg.Tone)).
		Bool("improve_readability", cfg.ImproveReadability)
	var up *revision.UpstreamError
	if errors.As(err, &up) {
		ev = ev.Int("status", up.StatusCode)
	}
	ev.Msg(revision.ErrorImprovingText)
}

// Console prints short, colored status lines for the CLI.
type Console struct {
	mu  sync.Mutex
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Success(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "✓ %s\n", color.New(color.FgGreen).Sprint(msg))
}

func (c *Console) Error(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "✗ %s\n", color.New(color.FgRed).Sprint(msg))
}

func (c *Console) Info(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, "• %s\n", color.New(color.FgCyan).Sprint(msg))
}
