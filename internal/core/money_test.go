package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in    string
		paise int64
		ok    bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"0.01", 1, true},
		{"12,500", 1250000, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"0.001", 0, false}, // rounds to zero
		{"+5", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"10000000000000", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.Paise != tc.paise {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.paise, got.Paise, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		paise int64
		want  string
	}{
		{0, "Rs 0.00"},
		{5, "Rs 0.05"},
		{123, "Rs 1.23"},
		{7500000, "Rs 75,000.00"},
		{123456789, "Rs 1,234,567.89"},
		{-6300000, "-Rs 63,000.00"},
	}
	for _, tc := range cases {
		if got := (Money{Paise: tc.paise}).String(); got != tc.want {
			t.Fatalf("%d: expected %q, got %q", tc.paise, tc.want, got)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Paise: 5000000}
	b := Money{Paise: 1200000}
	if got := a.Add(b).Paise; got != 6200000 {
		t.Fatalf("Add: got %d", got)
	}
	if got := b.Sub(a).Paise; got != -3800000 {
		t.Fatalf("Sub: got %d", got)
	}
	if got := (Money{Paise: 12345}).Rupees().String(); got != "123.45" {
		t.Fatalf("Rupees: got %s", got)
	}
}
