package culling

import (
	"errors"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	tests := []struct {
		in   string
		want Strategy
	}{
		{"world", WorldSpace},
		{"Local", LocalSpace},
		{" VIEW ", ViewSpace},
	}
	for _, tt := range tests {
		got, err := ParseStrategy(tt.in)
		if err != nil {
			t.Errorf("ParseStrategy(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStrategy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseStrategy("octree"); !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestStrategyString(t *testing.T) {
	for _, s := range Strategies() {
		back, err := ParseStrategy(s.String())
		if err != nil || back != s {
			t.Errorf("%v does not parse back: %v, %v", s, back, err)
		}
	}
	if got := Strategy(7).String(); got != "Strategy(7)" {
		t.Errorf("String() = %q", got)
	}
}

func TestStrategies(t *testing.T) {
	got := Strategies()
	if len(got) != 3 || got[0] != WorldSpace || got[1] != LocalSpace || got[2] != ViewSpace {
		t.Errorf("Strategies() = %v", got)
	}
}
