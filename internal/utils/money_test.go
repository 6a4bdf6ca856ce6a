package utils

import "testing"

func TestFormatMinor(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{150, "1.50"},
		{123456, "1,234.56"},
		{100000000, "1,000,000.00"},
		{-2500, "-25.00"},
	}
	for _, tc := range cases {
		if got := FormatMinor(tc.in); got != tc.want {
			t.Fatalf("FormatMinor(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSpace(t *testing.T) {
	if got := NormalizeSpace("  Burger   Hub  "); got != "Burger Hub" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeCode(t *testing.T) {
	if got := NormalizeCode("  summer10 "); got != "SUMMER10" {
		t.Fatalf("got %q", got)
	}
}
