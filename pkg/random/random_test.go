package random

import (
	"testing"
)

func TestBetween(t *testing.T) {
	tests := []struct {
		name    string
		min     int
		max     int
		wantMin int
		wantMax int
	}{
		{"0 to 60 minutes", 0, 60, 0, 60},
		{"10 to 15 minutes", 10, 15, 10, 15},
		{"equal bounds", 30, 30, 30, 30},
		{"inverted bounds", 30, 10, 30, 30},
	}

	src := NewSource()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Run multiple times to check range
			for i := 0; i < 500; i++ {
				result := Between(src, tt.min, tt.max)

				if result < tt.wantMin || result > tt.wantMax {
					t.Errorf("Between(%v, %v) = %v, want range [%v, %v]",
						tt.min, tt.max, result, tt.wantMin, tt.wantMax)
				}
			}
		})
	}
}

func TestBetweenReachesBothBounds(t *testing.T) {
	// Statistical check: with 2000 draws over 61 values both ends show up
	src := NewSource()
	seen := make(map[int]bool)
	for i := 0; i < 2000; i++ {
		seen[Between(src, 0, 60)] = true
	}

	if !seen[0] {
		t.Logf("lower bound 0 not drawn in 2000 iterations")
	}
	if !seen[60] {
		t.Logf("upper bound 60 not drawn in 2000 iterations")
	}
	if len(seen) < 50 {
		t.Errorf("Between(0, 60) drew only %d distinct values, want at least 50", len(seen))
	}
}

func TestFixed(t *testing.T) {
	tests := []struct {
		name  string
		fixed Fixed
		n     int
		want  int
	}{
		{"within range", 17, 61, 17},
		{"zero", 0, 61, 0},
		{"upper bound clamps", 61, 61, 60},
		{"negative clamps to zero", -5, 61, 0},
		{"empty range", 3, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fixed.Intn(tt.n); got != tt.want {
				t.Errorf("Fixed(%d).Intn(%d) = %d, want %d", tt.fixed, tt.n, got, tt.want)
			}
		})
	}
}

func TestBetweenWithFixedSource(t *testing.T) {
	if got := Between(Fixed(0), 0, 60); got != 0 {
		t.Errorf("Between(Fixed(0), 0, 60) = %d, want 0", got)
	}
	if got := Between(Fixed(60), 0, 60); got != 60 {
		t.Errorf("Between(Fixed(60), 0, 60) = %d, want 60", got)
	}
	if got := Between(Fixed(5), 10, 20); got != 15 {
		t.Errorf("Between(Fixed(5), 10, 20) = %d, want 15", got)
	}
}
