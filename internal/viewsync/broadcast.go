// Package viewsync keeps view models in step with the tool-mode axes. Every
// accepted transition is pushed to all sinks bound to the axis and then
// announced once as an Update, so a redraw sees either none or all of the
// sinks changed.
package viewsync

import (
	"fmt"
	"log/slog"

	"github.com/example/penmode/internal/logging"
)

// Source is an observable value, typically a toolmode axis.
type Source[T any] interface {
	Name() string
	Current() T
	Observe(func(T))
}

// Sink receives the value of a source.
type Sink[T any] interface {
	Sync(T)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc[T any] func(T)

// Sync calls f.
func (f SinkFunc[T]) Sync(v T) { f(v) }

// Map returns a sink that converts values with f before passing them on.
func Map[T, U any](f func(T) U, s Sink[U]) Sink[T] {
	return SinkFunc[T](func(v T) { s.Sync(f(v)) })
}

// Named returns a sink that passes on the String form of a value.
func Named[T fmt.Stringer](s Sink[string]) Sink[T] {
	return Map(func(v T) string { return v.String() }, s)
}

// Update describes one completed fan-out.
type Update struct {
	Axis  string
	Value string
	Seq   uint64
}

// Broadcaster fans transitions out to sinks and announces each one once.
type Broadcaster struct {
	listeners []func(Update)
	seq       uint64
	log       *slog.Logger
}

// Option modifies a Broadcaster during creation.
type Option func(*Broadcaster)

// WithLogger sets the broadcaster logger.
func WithLogger(l *slog.Logger) Option { return func(b *Broadcaster) { b.log = l } }

// NewBroadcaster creates a broadcaster without listeners.
func NewBroadcaster(opts ...Option) *Broadcaster {
	b := &Broadcaster{}
	for _, o := range opts {
		o(b)
	}
	if b.log == nil {
		b.log = logging.Logger()
	}
	return b
}

// Listen subscribes fn to every completed fan-out.
func (b *Broadcaster) Listen(fn func(Update)) { b.listeners = append(b.listeners, fn) }

// Seq returns the number of fan-outs so far.
func (b *Broadcaster) Seq() uint64 { return b.seq }

// Bind subscribes sinks to src and syncs them with its current value. On
// every transition the sinks run in the given order before listeners hear
// about it.
func Bind[T any](b *Broadcaster, src Source[T], sinks ...Sink[T]) {
	push := func(v T) {
		for _, s := range sinks {
			s.Sync(v)
		}
	}
	push(src.Current())
	src.Observe(func(v T) {
		push(v)
		b.announce(src.Name(), fmt.Sprint(v))
	})
}

func (b *Broadcaster) announce(axis, value string) {
	b.seq++
	u := Update{Axis: axis, Value: value, Seq: b.seq}
	b.log.Debug("view sync", "axis", axis, "value", value, "seq", u.Seq)
	for _, fn := range b.listeners {
		fn(u)
	}
}
