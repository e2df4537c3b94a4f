package grading

import (
	"reflect"
	"testing"
)

func TestIdentityPermutation(t *testing.T) {
	if got := IdentityPermutation(4); !reflect.DeepEqual(got, []int{0, 1, 2, 3}) {
		t.Fatalf("IdentityPermutation(4) = %v", got)
	}
}

func TestRandomPermutationIsValid(t *testing.T) {
	for i := 0; i < 500; i++ {
		p := RandomPermutation(OptionCount)
		if !IsPermutation(p, OptionCount) {
			t.Fatalf("draw %d produced invalid permutation %v", i, p)
		}
	}
}

func TestIsPermutation(t *testing.T) {
	tests := []struct {
		p    []int
		want bool
	}{
		{[]int{0, 1, 2, 3}, true},
		{[]int{3, 2, 1, 0}, true},
		{[]int{0, 1, 2}, false},
		{[]int{0, 1, 2, 2}, false},
		{[]int{0, 1, 2, 4}, false},
		{[]int{-1, 1, 2, 3}, false},
		{nil, false},
	}
	for _, tc := range tests {
		if got := IsPermutation(tc.p, OptionCount); got != tc.want {
			t.Errorf("IsPermutation(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestInvertPermutationRoundTrip(t *testing.T) {
	for i := 0; i < 100; i++ {
		p := RandomPermutation(OptionCount)
		inv, err := InvertPermutation(p)
		if err != nil {
			t.Fatalf("InvertPermutation(%v) error = %v", p, err)
		}
		for c := 0; c < OptionCount; c++ {
			if inv[p[c]] != c {
				t.Fatalf("inverse of %v is %v: inv[p[%d]] = %d", p, inv, c, inv[p[c]])
			}
		}
	}

	if _, err := InvertPermutation([]int{0, 0, 1, 2}); err == nil {
		t.Error("expected error for non-permutation input")
	}
}

func TestApplyPermutation(t *testing.T) {
	options := []string{"red", "green", "blue", "yellow"}

	// Canonical option c lands at displayed position p[c].
	displayed, err := ApplyPermutation(options, []int{2, 3, 0, 1})
	if err != nil {
		t.Fatalf("ApplyPermutation error = %v", err)
	}
	if !reflect.DeepEqual(displayed, []string{"blue", "yellow", "red", "green"}) {
		t.Fatalf("ApplyPermutation = %v", displayed)
	}

	identity, _ := ApplyPermutation(options, IdentityPermutation(4))
	if !reflect.DeepEqual(identity, options) {
		t.Fatalf("identity permutation changed order: %v", identity)
	}

	if _, err := ApplyPermutation(options[:3], []int{0, 1, 2, 3}); err == nil {
		t.Error("expected error for size mismatch")
	}
}

// A student's displayed choice must always resolve to the option they saw.
func TestDisplayAndScoreAgree(t *testing.T) {
	options := []string{"a", "b", "c", "d"}
	for i := 0; i < 100; i++ {
		p := RandomPermutation(OptionCount)
		displayed, err := ApplyPermutation(options, p)
		if err != nil {
			t.Fatal(err)
		}
		inv, err := InvertPermutation(p)
		if err != nil {
			t.Fatal(err)
		}
		for d := 0; d < OptionCount; d++ {
			if displayed[d] != options[inv[d]] {
				t.Fatalf("perm %v: displayed[%d]=%q but canonical option is %q", p, d, displayed[d], options[inv[d]])
			}
		}
	}
}
