package i18n

import "testing"

func TestLookup(t *testing.T) {
	if got := Lookup("balance", English); got != "Balance" {
		t.Fatalf("en balance: %q", got)
	}
	if got := Lookup("balance", Urdu); got != "بیلنس" {
		t.Fatalf("ur balance: %q", got)
	}
	if got := Lookup("no-such-key", English); got != "no-such-key" {
		t.Fatalf("missing key must fall back to key, got %q", got)
	}
}

func TestToggleAndDir(t *testing.T) {
	Set(English)
	if Dir() != "ltr" {
		t.Fatal("english is ltr")
	}
	if Toggle() != Urdu {
		t.Fatal("toggle should reach urdu")
	}
	if Dir() != "rtl" {
		t.Fatal("urdu is rtl")
	}
	if T("deficit") != "خسارہ" {
		t.Fatalf("T should follow current locale, got %q", T("deficit"))
	}
	Set("fr") // ignored
	if Current() != Urdu {
		t.Fatal("unknown locale must not stick")
	}
	Set(English)
}
