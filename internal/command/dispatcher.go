package command

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"FinPeek/internal/app"
)

const (
	Search          = "search"
	ToggleStock     = "toggle-stock"
	ToggleBenchmark = "toggle-benchmark"
	ToggleInput     = "toggle-input"
	Refresh         = "refresh"
)

// ErrUnknownCommand is returned by Dispatch for a name with no handler.
var ErrUnknownCommand = errors.New("unknown command")

// Controller is the part of app.Controller that user events drive.
type Controller interface {
	Search(ctx context.Context, input string) error
	Refresh(ctx context.Context)
	ToggleStockTimeframe(ctx context.Context)
	ToggleBenchmarkTimeframe(ctx context.Context)
	ToggleInput()
}

// Handler runs one command. arg is only used by search.
type Handler func(ctx context.Context, arg string) error

// Dispatcher maps command names onto controller methods. It is shared by the
// HTTP and stdin inputs.
type Dispatcher struct {
	handlers map[string]Handler
}

// NewDispatcher builds the command table for c.
func NewDispatcher(c Controller) *Dispatcher {
	return &Dispatcher{handlers: map[string]Handler{
		Search: c.Search,
		Refresh: func(ctx context.Context, _ string) error {
			c.Refresh(ctx)
			return nil
		},
		ToggleStock: func(ctx context.Context, _ string) error {
			c.ToggleStockTimeframe(ctx)
			return nil
		},
		ToggleBenchmark: func(ctx context.Context, _ string) error {
			c.ToggleBenchmarkTimeframe(ctx)
			return nil
		},
		ToggleInput: func(context.Context, string) error {
			c.ToggleInput()
			return nil
		},
	}}
}

// Dispatch runs the named command. An empty search is not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, name, arg string) error {
	h, ok := d.handlers[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if err := h(ctx, arg); err != nil && !errors.Is(err, app.ErrEmptyInput) {
		return err
	}
	return nil
}

// Names lists the registered commands in sorted order.
func (d *Dispatcher) Names() []string {
	names := make([]string, 0, len(d.handlers))
	for n := range d.handlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// HandleLine processes one line of text input and returns a reply, "" on
// success. "/name arg" and "name arg" run a command; any other text is
// searched as a ticker.
func (d *Dispatcher) HandleLine(ctx context.Context, line string) string {
	line = strings.TrimSpace(line)
	name, arg, _ := strings.Cut(line, " ")
	slash := strings.HasPrefix(name, "/")
	name = strings.TrimPrefix(name, "/")

	switch {
	case name == "help":
		return d.usage()
	case d.handlers[name] != nil:
	case slash:
		return d.usage()
	default:
		name, arg = Search, line
	}

	if err := d.Dispatch(ctx, name, strings.TrimSpace(arg)); err != nil {
		return "error: " + err.Error()
	}
	return ""
}

func (d *Dispatcher) usage() string {
	var b strings.Builder
	b.WriteString("commands:\n")
	for _, n := range d.Names() {
		b.WriteString("  " + n + "\n")
	}
	b.WriteString("or type a ticker symbol to search")
	return b.String()
}
