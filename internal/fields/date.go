package fields

import (
	"strings"
	"time"
)

// Month-first layouts are tried before day-first, matching how US medical
// forms write dates.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1-2-2006",
	"2006/01/02",
	"01/02/06",
	"1/2/06",
	"Jan 2 2006",
	"January 2 2006",
	"2 Jan 2006",
	"2 January 2006",
}

// NormalizeDate parses a date-like token and returns it in ISO (YYYY-MM-DD)
// form. ok is false when no known layout matches.
func NormalizeDate(token string) (iso string, ok bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, token); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	return "", false
}
