package tracer

import "testing"

func TestRandomRange(t *testing.T) {
	rng := NewRandom(42)
	for i := 0; i < 100000; i++ {
		v := rng.Next()
		if v < 0 || v >= 1 {
			t.Fatalf("expected value in [0, 1); got %f", v)
		}
	}
}

func TestRandomDeterminism(t *testing.T) {
	r1 := NewRandom(7)
	r2 := NewRandom(7)
	for i := 0; i < 1000; i++ {
		if r1.Next() != r2.Next() {
			t.Fatalf("expected identical streams for identical seeds at step %d", i)
		}
	}
}

func TestRandomSeedSeparation(t *testing.T) {
	r1 := NewRandom(1)
	r2 := NewRandom(2)

	same := 0
	for i := 0; i < 1000; i++ {
		if r1.Next() == r2.Next() {
			same++
		}
	}
	if same > 10 {
		t.Fatalf("expected different seeds to decorrelate; %d of 1000 values matched", same)
	}
}

func TestRandomMean(t *testing.T) {
	rng := NewRandom(1234)

	var sum float64
	const n = 200000
	for i := 0; i < n; i++ {
		sum += float64(rng.Next())
	}

	mean := sum / n
	if mean < 0.49 || mean > 0.51 {
		t.Fatalf("expected mean near 0.5; got %f", mean)
	}
}
