package service

import (
	"strings"
	"testing"
)

func TestNewReferralCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := newReferralCode(8)
		if err != nil {
			t.Fatalf("newReferralCode: %v", err)
		}
		if len(code) != 8 {
			t.Fatalf("len(%q) = %d, want 8", code, len(code))
		}
		for _, ch := range code {
			if !strings.ContainsRune(codeAlphabet, ch) {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}
		if seen[code] {
			t.Fatalf("duplicate code %q within 100 draws", code)
		}
		seen[code] = true
	}
}

// Every alphabet character must be reachable; with 62 symbols and 3000 draws
// a missing one means the mapping is broken, not bad luck.
func TestNewReferralCodeCoversAlphabet(t *testing.T) {
	counts := make(map[rune]int)
	for i := 0; i < 500; i++ {
		code, err := newReferralCode(6)
		if err != nil {
			t.Fatalf("newReferralCode: %v", err)
		}
		for _, ch := range code {
			counts[ch]++
		}
	}
	for _, ch := range codeAlphabet {
		if counts[ch] == 0 {
			t.Errorf("character %q never drawn", ch)
		}
	}
}
