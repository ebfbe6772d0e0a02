//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"image"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce sync.Once
	initErr  error
	owner    *selectionOwner
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = errNoDisplay
			return
		}
		owner, initErr = newSelectionOwner()
	})
	return initErr
}

// WriteImage encodes img as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	data, err := encodePNG(img)
	if err != nil {
		return err
	}
	return owner.offer(map[string][]byte{"image/png": data})
}

// WriteText publishes text to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	b := []byte(text)
	return owner.offer(map[string][]byte{
		"UTF8_STRING":              b,
		"STRING":                   b,
		"text/plain;charset=utf-8": b,
	})
}

// selectionOwner holds the CLIPBOARD selection on a hidden window and answers
// conversion requests from other clients.
type selectionOwner struct {
	conn      *xgb.Conn
	window    xproto.Window
	clipboard xproto.Atom
	targets   xproto.Atom

	mu      sync.RWMutex
	offered map[xproto.Atom][]byte
	atoms   map[string]xproto.Atom
}

func newSelectionOwner() (*selectionOwner, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root,
		0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check()
	if err != nil {
		conn.Close()
		return nil, err
	}
	o := &selectionOwner{conn: conn, window: window, atoms: map[string]xproto.Atom{}}
	if o.clipboard, err = o.atom("CLIPBOARD"); err != nil {
		conn.Close()
		return nil, err
	}
	if o.targets, err = o.atom("TARGETS"); err != nil {
		conn.Close()
		return nil, err
	}
	go o.serve()
	return o, nil
}

func (o *selectionOwner) atom(name string) (xproto.Atom, error) {
	o.mu.RLock()
	a, ok := o.atoms[name]
	o.mu.RUnlock()
	if ok {
		return a, nil
	}
	reply, err := xproto.InternAtom(o.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	o.mu.Lock()
	o.atoms[name] = reply.Atom
	o.mu.Unlock()
	return reply.Atom, nil
}

// offer replaces the clipboard contents with data keyed by target name and
// claims the selection.
func (o *selectionOwner) offer(data map[string][]byte) error {
	offered := make(map[xproto.Atom][]byte, len(data))
	for name, payload := range data {
		a, err := o.atom(name)
		if err != nil {
			return err
		}
		offered[a] = append([]byte(nil), payload...)
	}
	o.mu.Lock()
	o.offered = offered
	o.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(o.conn, o.window, o.clipboard, xproto.TimeCurrentTime).Check()
}

func (o *selectionOwner) serve() {
	for {
		ev, xerr := o.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			continue
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.offered = nil
			o.mu.Unlock()
		}
	}
}

func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	o.mu.RLock()
	payload, ok := o.offered[e.Target]
	var list []xproto.Atom
	if e.Target == o.targets {
		list = append(list, o.targets)
		for a := range o.offered {
			list = append(list, a)
		}
	}
	o.mu.RUnlock()

	switch {
	case e.Target == o.targets:
		buf := make([]byte, len(list)*4)
		for i, a := range list {
			xgb.Put32(buf[i*4:], uint32(a))
		}
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property,
			xproto.AtomAtom, 32, uint32(len(list)), buf)
	case ok:
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property,
			e.Target, 8, uint32(len(payload)), payload)
	default:
		property = xproto.AtomNone
	}

	reply := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(reply.Bytes()))
}
