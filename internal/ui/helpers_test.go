package ui

import (
	"errors"
	"testing"

	"github.com/five82/reel/internal/auth"
)

func TestWrapIndex(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{0, 3, 0}, {3, 3, 0}, {-1, 3, 2}, {7, 3, 1}, {5, 0, 0},
	}
	for _, tc := range cases {
		if got := wrapIndex(tc.i, tc.n); got != tc.want {
			t.Fatalf("wrapIndex(%d, %d) = %d, want %d", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestVisibleWindow(t *testing.T) {
	if start, end := visibleWindow(3, 5, 10); start != 0 || end != 5 {
		t.Fatalf("short list window = [%d,%d), want [0,5)", start, end)
	}
	if start, end := visibleWindow(0, 100, 10); start != 0 || end != 10 {
		t.Fatalf("top window = [%d,%d), want [0,10)", start, end)
	}
	if start, end := visibleWindow(50, 100, 10); start != 45 || end != 55 {
		t.Fatalf("middle window = [%d,%d), want [45,55)", start, end)
	}
	if start, end := visibleWindow(99, 100, 10); start != 90 || end != 100 {
		t.Fatalf("bottom window = [%d,%d), want [90,100)", start, end)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Alien", 10); got != "Alien" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("The Lord of the Rings", 8); got != "The Lor…" {
		t.Fatalf("truncate long = %q, want %q", got, "The Lor…")
	}
	if got := truncate("abc", 0); got != "" {
		t.Fatalf("truncate zero = %q, want empty", got)
	}
}

func TestFormatHelpers(t *testing.T) {
	if got := formatScore(7.25); got != "★7.2" && got != "★7.3" {
		t.Fatalf("formatScore = %q", got)
	}
	if got := formatScore(0); got != " -- " {
		t.Fatalf("formatScore(0) = %q", got)
	}
	if got := formatRuntime(136); got != "2h 16m" {
		t.Fatalf("formatRuntime(136) = %q", got)
	}
	if got := formatRuntime(45); got != "45m" {
		t.Fatalf("formatRuntime(45) = %q", got)
	}
	if got := formatRuntime(0); got != "" {
		t.Fatalf("formatRuntime(0) = %q", got)
	}
}

func TestFieldErrorsAndFirstInvalid(t *testing.T) {
	errs := auth.FieldErrors{auth.FieldSecret: "required"}
	if got := fieldErrors(errs); got == nil {
		t.Fatalf("fieldErrors lost the map")
	}
	if got := fieldErrors(errors.New("x")); got != nil {
		t.Fatalf("fieldErrors(plain) = %v, want nil", got)
	}
	if got := firstInvalid(errs, signInFields[:]); got != 1 {
		t.Fatalf("firstInvalid = %d, want 1", got)
	}
	if got := firstInvalid(auth.FieldErrors{auth.FieldTerms: "x"}, signUpFields[:]); got != 3 {
		t.Fatalf("firstInvalid terms = %d, want 3", got)
	}
}
