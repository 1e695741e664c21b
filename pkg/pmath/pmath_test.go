package pmath

import "testing"

func TestCeilToPowerOf2(t *testing.T) {
	cases := map[int]int{
		0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8, 17: 32, 1023: 1024, 1024: 1024,
	}
	for in, want := range cases {
		if got := CeilToPowerOf2(in); got != want {
			t.Fatalf("CeilToPowerOf2(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestIsPowerOf2(t *testing.T) {
	for _, n := range []int{1, 2, 4, 1024} {
		if !IsPowerOf2(n) {
			t.Fatalf("IsPowerOf2(%d) = false, want true", n)
		}
	}
	for _, n := range []int{0, 3, 5, 1023} {
		if IsPowerOf2(n) {
			t.Fatalf("IsPowerOf2(%d) = true, want false", n)
		}
	}
}
