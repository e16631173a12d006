package utils

import "testing"

func TestPointerDirection(t *testing.T) {
	tests := []struct {
		name   string
		x, y   int
		dx, dy float64
	}{
		{"中心", 480, 270, 0, 0},
		{"死区内", 490, 260, 0, 0},
		{"右上", 600, 100, 120, 170},
		{"左下", 100, 500, -380, -230},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dx, dy := PointerDirection(tt.x, tt.y, 960, 540, 40)
			if dx != tt.dx || dy != tt.dy {
				t.Errorf("PointerDirection(%d, %d) = (%v, %v), 期望 (%v, %v)", tt.x, tt.y, dx, dy, tt.dx, tt.dy)
			}
		})
	}
}
