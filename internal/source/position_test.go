package source

import "testing"

func TestPositionBefore(t *testing.T) {
	cases := []struct {
		name string
		a, b Position
		want bool
	}{
		{"earlier line", Position{Line: 1, Column: 5}, Position{Line: 2, Column: 0}, true},
		{"same line earlier column", Position{Line: 1, Column: 2}, Position{Line: 1, Column: 5}, true},
		{"equal", Position{Line: 1, Column: 2}, Position{Line: 1, Column: 2}, false},
		{"later line", Position{Line: 3, Column: 0}, Position{Line: 2, Column: 9}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Before(tc.b); got != tc.want {
				t.Errorf("Before() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := NewRange(2, 4, 2, 10)

	if !r.Contains(Position{Line: 2, Column: 4}) {
		t.Error("expected range to contain its own start")
	}
	if !r.Contains(Position{Line: 2, Column: 10}) {
		t.Error("expected range to contain its own (exclusive) end position")
	}
	if r.Contains(Position{Line: 2, Column: 11}) {
		t.Error("expected range not to contain a position past its end")
	}
	if r.Contains(Position{Line: 1, Column: 9}) {
		t.Error("expected range not to contain a position on an earlier line")
	}
}

func TestRangeSubsumes(t *testing.T) {
	outer := NewRange(1, 0, 1, 20)
	inner := NewRange(1, 4, 1, 9)
	tooWide := NewRange(1, 0, 1, 21)

	if !outer.Subsumes(inner) {
		t.Error("expected outer to subsume inner")
	}
	if outer.Subsumes(tooWide) {
		t.Error("expected outer not to subsume a range extending past its own end")
	}
}

func TestNewLocationEqualRanges(t *testing.T) {
	r := NewRange(3, 0, 3, 4)
	loc := NewLocation(r)
	if loc.SymbolRange != loc.IdentifierRange {
		t.Error("expected NewLocation to produce equal symbol and identifier ranges")
	}
}
