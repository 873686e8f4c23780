package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

type listPattern struct {
	pair   string // between exactly two items
	middle string // between leading items of three or more
	end    string // before the last of three or more
}

var listPatterns = map[string]listPattern{
	"en": {pair: " and ", middle: ", ", end: ", and "},
	"es": {pair: " y ", middle: ", ", end: " y "},
	"de": {pair: " und ", middle: ", ", end: " und "},
	"fr": {pair: " et ", middle: ", ", end: " et "},
	"ja": {pair: "、", middle: "、", end: "、"},
	"zh": {pair: "和", middle: "、", end: "和"},
}

// List joins values as a long-style conjunction for lang, e.g.
// List([]string{"NY", "TX", "VT"}, "en") => "NY, TX, and VT".
// Unknown languages use the English pattern.
func List(values []string, lang string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	}
	p, ok := listPatterns[baseLanguage(lang)]
	if !ok {
		p = listPatterns["en"]
	}
	if len(values) == 2 {
		return values[0] + p.pair + values[1]
	}
	var b strings.Builder
	for i, v := range values {
		switch {
		case i == 0:
		case i == len(values)-1:
			b.WriteString(p.end)
		default:
			b.WriteString(p.middle)
		}
		b.WriteString(v)
	}
	return b.String()
}

// Lister returns a List closure bound to lang.
func Lister(lang string) func([]string) string {
	return func(values []string) string { return List(values, lang) }
}

func baseLanguage(lang string) string {
	tag, err := language.Parse(strings.TrimSpace(lang))
	if err != nil {
		return "en"
	}
	base, _ := tag.Base()
	return base.String()
}

// ValueOrPlaceholder renders a value fetched from an external source, or the
// placeholder when the fetch failed.
func ValueOrPlaceholder(value string, err error, placeholder string) string {
	if err != nil || strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}

// Count formats n with thousands separators for lang.
func Count(n int64, lang string) string {
	sep := ","
	switch baseLanguage(lang) {
	case "de", "es":
		sep = "."
	case "fr":
		sep = " "
	}
	return thousandSep(n, sep)
}

func thousandSep(n int64, sep string) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// FmtDate formats time in a locale-friendly short form.
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch baseLanguage(lang) {
	case "ja", "zh":
		return t.Format("2006-01-02")
	case "de":
		return t.Format("2.1.2006")
	case "es", "fr":
		return t.Format("2/1/2006")
	default:
		return t.Format("Jan 2, 2006")
	}
}
