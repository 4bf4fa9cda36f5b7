package provision

import "testing"

func TestUnadorned(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"(a)", "a"},
		{"(1)", "1"},
		{"(iv)", "iv"},
		{"§ 922.", "922"},
		{"  (z)  ", "z"},
	}
	for _, c := range cases {
		if got := Unadorned(c.in); got != c.want {
			t.Errorf("Unadorned(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSectionBase(t *testing.T) {
	if got, want := SectionBase(18, "922"), "/us/usc/t18/s922"; got != want {
		t.Errorf("SectionBase() = %q, want %q", got, want)
	}
}

func TestChildID(t *testing.T) {
	if got, want := ChildID("/us/usc/t18/s922", "(a)"), "/us/usc/t18/s922/a"; got != want {
		t.Errorf("ChildID() = %q, want %q", got, want)
	}
}
