package utils

import (
	"strings"
	"testing"
)

// TestRandomTokenLength honors the requested length.
func TestRandomTokenLength(t *testing.T) {
	for _, n := range []int{32, 40, 64} {
		if got := len(RandomToken(n)); got != n {
			t.Errorf("RandomToken(%d) length = %d", n, got)
		}
	}
	if got := len(RandomToken(0)); got != 32 {
		t.Errorf("RandomToken(0) length = %d, want default 32", got)
	}
}

// TestRandomTokenAlphabet stays inside the URL-safe alphabet.
func TestRandomTokenAlphabet(t *testing.T) {
	token := RandomToken(256)
	for _, r := range token {
		if !strings.ContainsRune(tokenAlphabet, r) {
			t.Fatalf("token contains %q outside the alphabet", r)
		}
	}
}

// TestRandomTokenUnique never repeats across many draws.
func TestRandomTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		tok := RandomToken(32)
		if seen[tok] {
			t.Fatal("token repeated")
		}
		seen[tok] = true
	}
}
