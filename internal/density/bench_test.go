package density

import "testing"

func BenchmarkAccumulateBilinear(b *testing.B) {
	orbit := testOrbit(b, 200000)
	opts := DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Accumulate(orbit, 500, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAccumulateNearest(b *testing.B) {
	orbit := testOrbit(b, 200000)
	opts := DefaultOptions()
	opts.Policy = Nearest

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Accumulate(orbit, 500, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAccumulateParallel(b *testing.B) {
	orbit := testOrbit(b, 200000)
	opts := DefaultOptions()
	opts.Workers = 4

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Accumulate(orbit, 500, opts); err != nil {
			b.Fatal(err)
		}
	}
}
