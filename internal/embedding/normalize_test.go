package embedding

import (
	"math"
	"testing"
)

func magnitude(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func TestNormalize_ExactLength(t *testing.T) {
	for _, n := range []int{1, 4, 16, 384} {
		got := Normalize([]float32{1, 2, 3}, n)
		if len(got) != n {
			t.Errorf("dim %d: got length %d", n, len(got))
		}
	}
}

func TestNormalize_TruncatesBeforeNormalizing(t *testing.T) {
	// Only the first two raw values survive; the dropped third element must
	// not affect the norm.
	got := Normalize([]float32{3, 4, 100}, 2)
	if len(got) != 2 {
		t.Fatalf("got length %d", len(got))
	}
	if math.Abs(float64(got[0])-0.6) > 1e-6 || math.Abs(float64(got[1])-0.8) > 1e-6 {
		t.Errorf("got %v, want [0.6 0.8]", got)
	}
}

func TestNormalize_PadsWithZeros(t *testing.T) {
	got := Normalize([]float32{5}, 4)
	if len(got) != 4 {
		t.Fatalf("got length %d", len(got))
	}
	if got[0] != 1 {
		t.Errorf("got[0] = %f, want 1", got[0])
	}
	for i := 1; i < 4; i++ {
		if got[i] != 0 {
			t.Errorf("got[%d] = %f, want 0", i, got[i])
		}
	}
}

func TestNormalize_UnitMagnitude(t *testing.T) {
	got := Normalize([]float32{0.1, -2.5, 7, 0.003, 42}, 5)
	if m := magnitude(got); math.Abs(m-1.0) > 1e-5 {
		t.Errorf("magnitude = %f, want 1.0", m)
	}
}

func TestNormalize_ZeroVectorStaysZero(t *testing.T) {
	got := Normalize([]float32{0, 0, 0}, 4)
	for i, v := range got {
		if v != 0 {
			t.Errorf("got[%d] = %f, want 0", i, v)
		}
	}
}

func TestNormalize_EmptyInput(t *testing.T) {
	got := Normalize(nil, 3)
	if len(got) != 3 {
		t.Fatalf("got length %d", len(got))
	}
	if m := magnitude(got); m != 0 {
		t.Errorf("magnitude = %f, want 0", m)
	}
}
