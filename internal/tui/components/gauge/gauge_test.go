package gauge

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hansajasandeepabadalge/naiterm/internal/tui/theme"
)

func TestOrBraille(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     rune
		expected rune
	}{
		{
			name:     "disjoint dots combine",
			a:        '⠁', // dot 1
			b:        '⠈', // dot 4
			expected: '⠉',
		},
		{
			name:     "identical dots unchanged",
			a:        '⣿',
			b:        '⣿',
			expected: '⣿',
		},
		{
			name:     "empty cell is identity",
			a:        emptyBraille,
			b:        '⡄',
			expected: '⡄',
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := orBraille(tt.a, tt.b); got != tt.expected {
				t.Errorf("orBraille(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestHasDots(t *testing.T) {
	t.Parallel()

	if hasDots(emptyBraille) {
		t.Error("blank braille cell should not count as dots")
	}
	if !hasDots('⠁') {
		t.Error("braille cell with a dot should count")
	}
	if hasDots('A') {
		t.Error("non-braille rune should not count")
	}
}

func TestStampCenter(t *testing.T) {
	t.Parallel()

	f := make(frame, 3)
	for i := range f {
		row := make([]cell, 10)
		for j := range row {
			row[j] = cell{r: '⣿', c: theme.ColorBgLight}
		}
		f[i] = row
	}

	f.stampCenter("73", theme.ColorWhite)

	middle := make([]rune, 10)
	for j, c := range f[1] {
		middle[j] = c.r
	}

	// value lands centered with one blank guard cell on each side
	expected := []rune{'⣿', '⣿', '⣿', ' ', '7', '3', ' ', '⣿', '⣿', '⣿'}
	if diff := cmp.Diff(string(expected), string(middle)); diff != "" {
		t.Errorf("middle row mismatch (-want +got):\n%s", diff)
	}

	// other rows untouched
	for _, c := range f[0] {
		if c.r != '⣿' {
			t.Fatalf("top row modified: %q", c.r)
		}
	}
}

func TestRenderShowsValueAndLabel(t *testing.T) {
	t.Parallel()

	score := 73.0
	g := New(&score, "HEALTH", theme.ColorHealthy)

	out := g.Render()

	if !strings.Contains(out, "73") {
		t.Error("rendered gauge missing value text")
	}
	if !strings.Contains(out, "HEALTH") {
		t.Error("rendered gauge missing label")
	}
	if !strings.ContainsFunc(out, isBraille) {
		t.Error("rendered gauge has no braille dial")
	}
}

func TestRenderNoData(t *testing.T) {
	t.Parallel()

	g := New(nil, "HEALTH", theme.ColorHealthy)

	if out := g.Render(); !strings.Contains(out, "--") {
		t.Error("gauge without data should render a placeholder value")
	}
}
