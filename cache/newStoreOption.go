package cache

import (
	"time"

	"github.com/drivedash/drivedash/options"
)

const (
	optionNameWindow = "window"
	optionNameClock  = "clock"
)

// WithWindow overrides the staleness window for one operation.
func WithWindow(op string, window time.Duration) options.Option[Store] {
	return &windowOpt{op: op, window: window}
}

type windowOpt struct {
	op     string
	window time.Duration
}

func (o *windowOpt) Apply(s *Store) {
	if o.window > 0 {
		s.windows[o.op] = o.window
	}
}

func (o *windowOpt) OptionName() string {
	return optionNameWindow
}

// WithClock replaces the time source, for staleness tests.
func WithClock(now func() time.Time) options.Option[Store] {
	return &clockOpt{now: now}
}

type clockOpt struct {
	now func() time.Time
}

func (o *clockOpt) Apply(s *Store) {
	if o.now != nil {
		s.now = o.now
	}
}

func (o *clockOpt) OptionName() string {
	return optionNameClock
}
