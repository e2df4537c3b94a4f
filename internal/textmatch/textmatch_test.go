package textmatch

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Main Campus", "maincampus"},
		{"  MAIN-CAMPUS  ", "maincampus"},
		{"KPK Medical Faculty", "kpkmedicalfaculty"},
		{"1st Semester", "1stsemester"},
		{"Dip-Anesthesia", "dipanesthesia"},
		{"", ""},
		{"--- ---", ""},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Main Campus", "main campus", true},
		{"Main Campus", "MAIN-CAMPUS", true},
		{"KPK Medical Faculty", "kpk medical faculty", true},
		{"1st Semester", "1st semester", true},
		{"Dip-Anesthesia", "Dip Anesthesia", true},
		// One character off in a long label still clears the 0.9 ratio.
		{"KPK Medical Faculty", "KPK Medical Facultyy", true},
		// Genuinely different values must not match.
		{"Main Campus", "Girl Campus", false},
		{"1st Semester", "2nd Semester", false},
		{"BS Nursing", "BS-MLT", false},
		{"Dip-Cardiology", "Dip-Radiology", false},
	}
	for _, tc := range tests {
		if got := Match(tc.a, tc.b); got != tc.want {
			t.Errorf("Match(%q, %q) = %v, want %v (similarity %v)", tc.a, tc.b, got, tc.want, Similarity(tc.a, tc.b))
		}
	}
}

func TestSimilarityBounds(t *testing.T) {
	if s := Similarity("anything", "anything"); s != 1 {
		t.Errorf("identical strings similarity = %v", s)
	}
	if s := Similarity("", ""); s != 1 {
		t.Errorf("empty strings similarity = %v", s)
	}
	if s := Similarity("abcd", "wxyz"); s != 0 {
		t.Errorf("disjoint strings similarity = %v", s)
	}
}
