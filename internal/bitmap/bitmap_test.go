package bitmap

import "testing"

func TestBitmap_NewIsClear(t *testing.T) {
	m := New(13, 7)
	for y := range 7 {
		for x := range 13 {
			if m.Test(x, y) {
				t.Fatalf("fresh bitmap has bit (%d,%d) set", x, y)
			}
		}
	}
	if m.Count() != 0 {
		t.Errorf("Count() = %d, want 0", m.Count())
	}
}

func TestBitmap_SetTest(t *testing.T) {
	m := New(100, 3)
	points := [][2]int{{0, 0}, {63, 0}, {64, 0}, {99, 2}, {27, 1}}
	for _, p := range points {
		m.Set(p[0], p[1])
	}
	for _, p := range points {
		if !m.Test(p[0], p[1]) {
			t.Errorf("Test(%d,%d) = false after Set", p[0], p[1])
		}
	}
	if m.Test(1, 0) || m.Test(63, 1) {
		t.Error("unrelated bit reported set")
	}
	if m.Count() != len(points) {
		t.Errorf("Count() = %d, want %d", m.Count(), len(points))
	}
}

func TestBitmap_SetRun(t *testing.T) {
	tests := []struct {
		name   string
		width  int
		y      int
		x0, x1 int
	}{
		{"single bit", 10, 0, 3, 3},
		{"inside word", 50, 0, 2, 40},
		{"across words", 50, 1, 10, 49},
		{"whole row", 200, 2, 0, 199},
		{"word aligned", 64, 1, 0, 63},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.width, 3)
			m.SetRun(tt.y, tt.x0, tt.x1)
			for y := range 3 {
				for x := range tt.width {
					want := y == tt.y && x >= tt.x0 && x <= tt.x1
					if got := m.Test(x, y); got != want {
						t.Fatalf("Test(%d,%d) = %v, want %v", x, y, got, want)
					}
				}
			}
			if got, want := m.Count(), tt.x1-tt.x0+1; got != want {
				t.Errorf("Count() = %d, want %d", got, want)
			}
		})
	}
}

func TestBitmap_Clear(t *testing.T) {
	m := New(8, 8)
	m.SetRun(4, 0, 7)
	m.Clear()
	if m.Count() != 0 {
		t.Errorf("Count() after Clear = %d", m.Count())
	}
}

func TestBytes(t *testing.T) {
	if got := Bytes(8, 8); got != 8 {
		t.Errorf("Bytes(8,8) = %d, want 8", got)
	}
	if got := Bytes(65, 1); got != 16 {
		t.Errorf("Bytes(65,1) = %d, want 16", got)
	}
}

func TestPool_Reuse(t *testing.T) {
	p := NewPool(2)
	m := p.Get(16, 16)
	m.Set(3, 3)
	p.Put(m)
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}

	got := p.Get(16, 16)
	if got != m {
		t.Error("Get did not reuse pooled bitmap")
	}
	if got.Count() != 0 {
		t.Error("reused bitmap was not cleared")
	}

	other := p.Get(8, 8)
	if other == m {
		t.Error("bitmaps of different sizes must not be shared")
	}
}

func TestPool_MaxPerBucket(t *testing.T) {
	p := NewPool(1)
	p.Put(New(4, 4))
	p.Put(New(4, 4))
	p.Put(nil)
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func BenchmarkBitmap_SetRun(b *testing.B) {
	m := New(640, 480)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		y := i % 480
		m.SetRun(y, 10, 600)
	}
}
