package components

import "testing"

func TestSphereHit(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want bool
	}{
		{"重合", Vec3{}, Vec3{}, true},
		{"刚好接触", Vec3{}, Vec3{X: 0.2}, true},
		{"分离", Vec3{}, Vec3{X: 0.21}, false},
		{"斜向", Vec3{}, Vec3{X: 0.1, Y: 0.1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SphereHit(tt.a, 0.1, tt.b, 0.1); got != tt.want {
				t.Errorf("SphereHit(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestBandHits(t *testing.T) {
	b := Band{MinX: 0, MaxX: 2, Center: Vec3{Y: 0.5}, HalfHeight: 0.05, HalfDepth: 0.05}

	tests := []struct {
		name string
		p    Vec3
		want bool
	}{
		{"带内", Vec3{X: 1, Y: 0.5}, true},
		{"上方边缘", Vec3{X: 1, Y: 0.6}, true},
		{"上方远离", Vec3{X: 1, Y: 0.8}, false},
		{"后方", Vec3{X: -0.2, Y: 0.5}, false},
		{"前方超出", Vec3{X: 2.2, Y: 0.5}, false},
		{"横向偏离", Vec3{X: 1, Y: 0.5, Z: 0.3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Hits(tt.p, 0.05); got != tt.want {
				t.Errorf("Hits(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestLifetimeStep(t *testing.T) {
	l := LifetimeComponent{MaxTicks: 3}
	for i := 1; i <= 2; i++ {
		if l.Step() {
			t.Fatalf("expired too early at tick %d", i)
		}
	}
	if !l.Step() {
		t.Error("should expire at MaxTicks")
	}
}

func TestCameraReset(t *testing.T) {
	c := NewCamera()
	c.Position.Z = 3
	c.Rotation.Y = 1
	c.Reset()
	if c.Position != CameraInitialPosition || c.Rotation != (Vec3{}) {
		t.Errorf("camera not reset: %+v", *c)
	}
}
