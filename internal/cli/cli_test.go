package cli

import (
	"testing"

	"tisa/internal/jalali"
)

func TestParseJalaliDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string // Gregorian yyyy-mm-dd, empty means error
	}{
		{"slashes", "1403/04/15", "2024-07-05"},
		{"dashes", "1403-01-01", "2024-03-20"},
		{"day clamped to month length", "1402/12/30", "2024-03-19"}, // 1402 is not leap
		{"leap esfand 30 kept", "1403/12/30", "2025-03-20"},
		{"bad month", "1403/13/01", ""},
		{"zero day", "1403/01/00", ""},
		{"garbage", "next tuesday", ""},
		{"two parts", "1403/04", ""},
		{"year out of range", "403/04/15", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseJalaliDate(tt.in)
			if tt.want == "" {
				if err == nil {
					t.Fatalf("expected error for %q, got %s", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseJalaliDate(%q) failed: %v", tt.in, err)
			}
			if s := got.Format("2006-01-02"); s != tt.want {
				t.Fatalf("parseJalaliDate(%q) = %s, want %s", tt.in, s, tt.want)
			}
		})
	}
}

func TestParseJalaliDateRoundTripsConverter(t *testing.T) {
	got, err := parseJalaliDate("1403/07/01")
	if err != nil {
		t.Fatal(err)
	}
	y, m, d := jalali.ToJalali(got)
	if y != 1403 || m != 7 || d != 1 {
		t.Fatalf("round trip = %d/%d/%d", y, m, d)
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("abcd"); got != "abcd" {
		t.Errorf("shortID short input = %q", got)
	}
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID long input = %q", got)
	}
}

func TestMaskToken(t *testing.T) {
	if got := maskToken(""); got != "(not set)" {
		t.Errorf("empty token = %q", got)
	}
	if got := maskToken("12345678"); got != "********" {
		t.Errorf("short token = %q", got)
	}
	if got := maskToken("123456789:AAHdqTcvCH1vGWJxfSeofSAs0K5PALDsaw"); got[:4] != "1234" {
		t.Errorf("long token = %q", got)
	}
}
