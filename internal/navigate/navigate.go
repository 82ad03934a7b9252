// Package navigate performs the click-through for activated carousel items.
package navigate

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/jask/showcase/internal/carousel"
)

// ErrNoLink is returned for items that have nowhere to go.
var ErrNoLink = errors.New("navigate: item has no link")

// Navigator opens an activated item.
type Navigator interface {
	Open(ctx context.Context, item carousel.Item) error
}

// Recorder remembers activations instead of opening anything.
type Recorder struct {
	Log *zap.Logger

	mu     sync.Mutex
	opened []carousel.Item
}

func (r *Recorder) Open(_ context.Context, item carousel.Item) error {
	if item.Link == "" {
		return ErrNoLink
	}
	r.mu.Lock()
	r.opened = append(r.opened, item)
	r.mu.Unlock()
	if r.Log != nil {
		r.Log.Info("item opened", zap.String("link", item.Link), zap.String("title", item.Title))
	}
	return nil
}

// Opened returns the items opened so far.
func (r *Recorder) Opened() []carousel.Item {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]carousel.Item(nil), r.opened...)
}

// Opener hands links to the platform URL opener.
type Opener struct {
	Log *zap.Logger
	// Command overrides the opener binary; empty picks one for the OS.
	Command string
}

// Open starts the opener and returns without waiting for it. The child is
// not tied to ctx so quitting right after a click still hands the link off.
func (o Opener) Open(_ context.Context, item carousel.Item) error {
	if item.Link == "" {
		return ErrNoLink
	}
	name, args := o.command(item.Link)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", item.Link, err)
	}
	if o.Log != nil {
		o.Log.Info("item opened", zap.String("link", item.Link), zap.String("opener", name))
	}
	// reap the child without blocking the UI
	go func() { _ = cmd.Wait() }()
	return nil
}

func (o Opener) command(link string) (string, []string) {
	if o.Command != "" {
		return o.Command, []string{link}
	}
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{link}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}
	default:
		return "xdg-open", []string{link}
	}
}
