package layout

import (
	"strings"
	"testing"
)

func TestIsTooSmall(t *testing.T) {
	if !IsTooSmall(79, 30) {
		t.Error("expected 79 columns to be too small")
	}
	if IsTooSmall(80, 24) {
		t.Error("expected 80x24 to fit")
	}
}

func TestRenderHeader_ShowsStudent(t *testing.T) {
	h := RenderHeader("Dashboard", "Aman", 120)
	if !strings.Contains(h, "Quantum Rishi") {
		t.Error("expected brand in header")
	}
	if !strings.Contains(h, "Aman") {
		t.Error("expected student name in header")
	}
}

func TestRenderHeader_TaglineBeforeIntake(t *testing.T) {
	h := RenderHeader("", "", 140)
	if !strings.Contains(h, "Mind ko sambhalo") {
		t.Error("expected tagline when no student is known")
	}
}

func TestTailLines(t *testing.T) {
	s := "a\nb\nc\nd"
	if got := TailLines(s, 2); got != "c\nd" {
		t.Errorf("TailLines = %q", got)
	}
	if got := TailLines(s, 10); got != s {
		t.Errorf("TailLines = %q", got)
	}
	if got := TailLines(s, 0); got != "" {
		t.Errorf("TailLines = %q", got)
	}
}
