package format

import (
	"errors"
	"testing"
	"time"
)

func TestList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []string
		lang   string
		want   string
	}{
		{name: "empty", values: nil, lang: "en", want: ""},
		{name: "single", values: []string{"HI"}, lang: "en", want: "HI"},
		{name: "pair en", values: []string{"NY", "TX"}, lang: "en", want: "NY and TX"},
		{name: "three en oxford comma", values: []string{"NY", "TX", "VT"}, lang: "en", want: "NY, TX, and VT"},
		{name: "regional tag", values: []string{"NY", "TX"}, lang: "en-GB", want: "NY and TX"},
		{name: "three es", values: []string{"NY", "TX", "VT"}, lang: "es", want: "NY, TX y VT"},
		{name: "ja", values: []string{"NY", "TX"}, lang: "ja", want: "NY、TX"},
		{name: "unknown falls back", values: []string{"NY", "TX"}, lang: "xx-invalid-tag!", want: "NY and TX"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := List(tc.values, tc.lang); got != tc.want {
				t.Errorf("List(%v, %q) = %q, want %q", tc.values, tc.lang, got, tc.want)
			}
		})
	}
}

func TestValueOrPlaceholder(t *testing.T) {
	t.Parallel()
	if got := ValueOrPlaceholder("1,234", nil, "—"); got != "1,234" {
		t.Fatalf("expected value, got %q", got)
	}
	if got := ValueOrPlaceholder("1,234", errors.New("boom"), "—"); got != "—" {
		t.Fatalf("expected placeholder on error, got %q", got)
	}
	if got := ValueOrPlaceholder("", nil, "n/a"); got != "n/a" {
		t.Fatalf("expected placeholder on empty, got %q", got)
	}
}

func TestCount(t *testing.T) {
	t.Parallel()
	if got := Count(1234567, "en"); got != "1,234,567" {
		t.Fatalf("en: got %q", got)
	}
	if got := Count(-1234, "de"); got != "-1.234" {
		t.Fatalf("de: got %q", got)
	}
	if got := Count(12, "en"); got != "12" {
		t.Fatalf("small: got %q", got)
	}
}

func TestFmtDate(t *testing.T) {
	t.Parallel()
	d := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	if got := FmtDate(d, "en"); got != "Mar 7, 2024" {
		t.Fatalf("en: got %q", got)
	}
	if got := FmtDate(d, "ja"); got != "2024-03-07" {
		t.Fatalf("ja: got %q", got)
	}
	if got := FmtDate(time.Time{}, "en"); got != "" {
		t.Fatalf("zero: got %q", got)
	}
}
