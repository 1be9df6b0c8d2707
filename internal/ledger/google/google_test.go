package google

import "testing"

func TestYearPrefixedName(t *testing.T) {
	cases := []struct {
		base string
		year int
		want string
	}{
		{"Income", 2024, "2024 Income"},
		{"Expenses", 2025, "2025 Expenses"},
		{"2023 Income", 2024, "2023 Income"},
		{"", 2024, ""},
		{"  Income  ", 2024, "2024 Income"},
	}
	for _, tc := range cases {
		if got := yearPrefixedName(tc.base, tc.year); got != tc.want {
			t.Errorf("yearPrefixedName(%q, %d) = %q, want %q", tc.base, tc.year, got, tc.want)
		}
	}
}
