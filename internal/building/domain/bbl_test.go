package domain

import (
	"strings"
	"testing"
)

func TestNormalizeBBL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1000110001", "1000110001"},
		{"1-000-10001", "1000100001"},
		{"123", "0000000123"},
		{"3 01234 0056 trailing 99", "3012340056"},
		{"", ""},
		{"abc", "0000000000"},
		{"-", "0000000000"},
		{"bbl=?", "0000000000"},
	}
	for _, tt := range tests {
		if got := NormalizeBBL(tt.in); got != tt.want {
			t.Errorf("NormalizeBBL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeBBLLengthProperty(t *testing.T) {
	for n := 1; n <= 15; n++ {
		in := strings.Repeat("7", n)
		got := NormalizeBBL("x" + in + "-")
		if len(got) != 10 {
			t.Fatalf("len(NormalizeBBL(%d digits)) = %d", n, len(got))
		}
		if n >= 10 && got != in[:10] {
			t.Fatalf("expected first 10 digits, got %s", got)
		}
		if n < 10 && got != strings.Repeat("0", 10-n)+in {
			t.Fatalf("expected left padding, got %s", got)
		}
	}
}

func TestParseBBLSegments(t *testing.T) {
	b, err := ParseBBL("3-00120-0045")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if b.Borough() != "3" || b.Block() != "120" || b.Lot() != "45" {
		t.Fatalf("unexpected segments %s %s %s", b.Borough(), b.Block(), b.Lot())
	}
	if b.BlockNumber() != 120 || b.LotNumber() != 45 {
		t.Fatalf("unexpected numbers %d %d", b.BlockNumber(), b.LotNumber())
	}

	if b, err := ParseBBL("no digits"); err != nil || b != "0000000000" {
		t.Fatalf("expected zero-padded BBL, got %q %v", b, err)
	}
	if _, err := ParseBBL(""); err != ErrInvalidBBL {
		t.Fatalf("expected ErrInvalidBBL for empty input, got %v", err)
	}
}
