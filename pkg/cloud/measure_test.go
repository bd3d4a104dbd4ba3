package cloud

import (
	"sync"
	"testing"
)

func TestEstimateMeasurer(t *testing.T) {
	m := DefaultEstimateMeasurer()

	w, h := m.Measure("hello", 20)
	if w != 60 || h != 20 {
		t.Errorf("Measure(hello, 20) = %v×%v, want 60×20", w, h)
	}
	// Runes, not bytes.
	if w, _ := m.Measure("效能", 10); w != 12 {
		t.Errorf("Measure(效能, 10) width = %v, want 12", w)
	}
}

func TestFontMeasurer(t *testing.T) {
	m, err := NewGoRegularMeasurer()
	if err != nil {
		t.Fatalf("NewGoRegularMeasurer: %v", err)
	}
	defer m.Close()

	w1, h1 := m.Measure("word", 20)
	w2, _ := m.Measure("wordword", 20)
	if w1 <= 0 || h1 <= 0 {
		t.Fatalf("Measure = %v×%v, want positive", w1, h1)
	}
	if w2 <= w1 {
		t.Errorf("longer text width %v <= %v", w2, w1)
	}
	if w3, _ := m.Measure("word", 40); w3 <= w1 {
		t.Errorf("larger size width %v <= %v", w3, w1)
	}
	if w, _ := m.Measure("", 20); w != 0 {
		t.Errorf("empty width = %v, want 0", w)
	}
}

func TestFontMeasurerConcurrent(t *testing.T) {
	m, err := NewGoRegularMeasurer()
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	want, _ := m.Measure("concurrent", 18)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got, _ := m.Measure("concurrent", 18); got != want {
				t.Errorf("goroutine %d width = %v, want %v", i, got, want)
			}
			m.Measure("other", float64(10+i))
		}()
	}
	wg.Wait()
}

func TestNewFontMeasurerInvalid(t *testing.T) {
	if _, err := NewFontMeasurer([]byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
}
