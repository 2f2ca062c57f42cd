package envutil

import (
	"testing"
	"time"
)

func TestDurationAcceptsSecondsAndGoSyntax(t *testing.T) {
	t.Setenv("PACTIFY_TEST_TTL", "90")
	if got := Duration("PACTIFY_TEST_TTL", time.Minute, nil); got != 90*time.Second {
		t.Fatalf("seconds: got %v", got)
	}
	t.Setenv("PACTIFY_TEST_TTL", "2h")
	if got := Duration("PACTIFY_TEST_TTL", time.Minute, nil); got != 2*time.Hour {
		t.Fatalf("go duration: got %v", got)
	}
	t.Setenv("PACTIFY_TEST_TTL", "soon")
	if got := Duration("PACTIFY_TEST_TTL", time.Minute, nil); got != time.Minute {
		t.Fatalf("fallback: got %v", got)
	}
}

func TestStringBlankUsesDefault(t *testing.T) {
	t.Setenv("PACTIFY_TEST_STR", "   ")
	if got := String("PACTIFY_TEST_STR", "fallback", nil); got != "fallback" {
		t.Fatalf("got %q", got)
	}
}

func TestBoolAndInt(t *testing.T) {
	t.Setenv("PACTIFY_TEST_BOOL", "on")
	if !Bool("PACTIFY_TEST_BOOL", false, nil) {
		t.Fatalf("expected true")
	}
	t.Setenv("PACTIFY_TEST_INT", "x")
	if got := Int("PACTIFY_TEST_INT", 7, nil); got != 7 {
		t.Fatalf("got %d", got)
	}
}

func TestFloat(t *testing.T) {
	t.Setenv("PACTIFY_TEST_RATIO", "0.25")
	if got := Float("PACTIFY_TEST_RATIO", 1, nil); got != 0.25 {
		t.Fatalf("got %v", got)
	}
	t.Setenv("PACTIFY_TEST_RATIO", "most")
	if got := Float("PACTIFY_TEST_RATIO", 1, nil); got != 1 {
		t.Fatalf("fallback: got %v", got)
	}
}
