package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/Tiliavir/trivial-meal-tracker/internal/model"
)

// Mirror persists ledger patches in the background. Patches are saved one
// at a time in the order they were observed; the last write wins.
type Mirror struct {
	ctx    context.Context
	p      Provider
	key    string
	logger *log.Logger

	mu      sync.Mutex
	pending []model.Patch
	closed  bool
	errs    []error

	wake chan struct{}
	done chan struct{}
}

// NewMirror starts the background writer. A nil logger discards failures;
// they are still returned by Close.
func NewMirror(ctx context.Context, p Provider, key string, logger *log.Logger) *Mirror {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := &Mirror{
		ctx:    ctx,
		p:      p,
		key:    key,
		logger: logger,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go m.run()
	return m
}

// Observe queues p for saving. It never blocks on I/O and is a no-op
// after Close.
func (m *Mirror) Observe(p model.Patch) {
	if p.Empty() {
		return
	}
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.pending = append(m.pending, p)
	m.mu.Unlock()
	m.signal()
}

// Close saves every queued patch and returns the failures joined.
func (m *Mirror) Close() error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.signal()
	<-m.done

	m.mu.Lock()
	defer m.mu.Unlock()
	return errors.Join(m.errs...)
}

func (m *Mirror) signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *Mirror) run() {
	defer close(m.done)
	for {
		m.mu.Lock()
		batch, closed := m.pending, m.closed
		m.pending = nil
		m.mu.Unlock()

		for _, p := range batch {
			m.save(p)
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-m.wake
	}
}

func (m *Mirror) save(p model.Patch) {
	if err := m.p.Save(m.ctx, m.key, p); err != nil {
		err = fmt.Errorf("saving %s: %w", strings.Join(p.Fields(), ", "), err)
		m.logger.Print(err)
		m.mu.Lock()
		m.errs = append(m.errs, err)
		m.mu.Unlock()
	}
}
