package layout

import "testing"

func TestLefthandedMatchesWindowLayout(t *testing.T) {
	l := Lefthanded()
	want := Grid{
		Sidebar:   Cell{Column: 2, Row: 1, Width: 1, Height: 2},
		Separator: Cell{Column: 1, Row: 1, Width: 1, Height: 2},
		Devel:     Cell{Column: 0, Row: 1, Width: 1, Height: 1},
		Canvas:    Cell{Column: 0, Row: 2, Width: 1, Height: 1},
	}
	if l.Grid != want {
		t.Fatalf("grid = %+v, want %+v", l.Grid, want)
	}
	if l.Header.Pens != PackEnd || l.Header.QuickActions != PackStart {
		t.Fatalf("header = %+v", l.Header)
	}
	if l.Arrows.ShaperRoughConfig != ArrowLeft || l.Pickers.ShaperFill != PositionRight {
		t.Fatalf("popovers not mirrored: %+v %+v", l.Arrows, l.Pickers)
	}
	if l.Flap != PackEnd || l.Righthanded {
		t.Fatalf("flap=%v righthanded=%v", l.Flap, l.Righthanded)
	}
}

func TestMirroredIsInvolution(t *testing.T) {
	for _, a := range []Arrangement{Righthanded(), Lefthanded()} {
		if got := a.Mirrored().Mirrored(); got != a {
			t.Fatalf("mirror twice = %+v, want %+v", got, a)
		}
	}
}

func TestApplyRoundTrip(t *testing.T) {
	m := NewMirror(true)
	start := m.Current()
	m.Apply(true)
	m.Apply(false)
	m.Apply(true)
	if m.Current() != start {
		t.Fatalf("apply(false) then apply(true) did not restore every slot")
	}
}

func TestApplyNotifiesOnceAndSetsIndicators(t *testing.T) {
	m := NewMirror(true)
	var got []Arrangement
	m.Listen(func(a Arrangement) { got = append(got, a) })

	if !m.Apply(false) {
		t.Fatalf("apply(false) should move slots")
	}
	if m.Apply(false) {
		t.Fatalf("repeated apply should be a no-op")
	}
	if len(got) != 1 || got[0] != Lefthanded() {
		t.Fatalf("listeners saw %d arrangements", len(got))
	}
	if m.Indicators().Active() != IndicatorLefthanded {
		t.Fatalf("indicator = %q", m.Indicators().Active())
	}
	m.Sync(true)
	if m.Indicators().Active() != IndicatorRighthanded || !m.Current().Righthanded {
		t.Fatalf("sync(true) did not restore righthanded layout")
	}
}
