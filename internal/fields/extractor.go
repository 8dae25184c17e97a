package fields

import (
	"log/slog"
	"regexp"
	"strings"
)

// Extractor applies a rule table to a document's text blob.
type Extractor struct {
	rules    []Rule
	compiled []*regexp.Regexp
	logger   *slog.Logger
}

func NewExtractor(rules []Rule, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if len(rules) == 0 {
		rules = DefaultRules
	}
	x := &Extractor{rules: rules, logger: logger}
	for _, r := range rules {
		x.compiled = append(x.compiled, r.compile())
	}
	return x
}

// Extract runs every rule against the text. Rules are independent: the first
// match per field wins, and an unmatched label simply leaves the field absent.
func (x *Extractor) Extract(text string) Set {
	out := Set{}
	for i, r := range x.rules {
		m := x.compiled[i].FindStringSubmatch(text)
		if m == nil {
			continue
		}
		val := strings.TrimSpace(m[1])
		if val == "" {
			continue
		}
		if r.Capture == CaptureDate {
			// best-effort normalization: an unparseable token is kept verbatim
			if iso, ok := NormalizeDate(val); ok {
				val = iso
			} else {
				x.logger.Debug("date token kept verbatim", "field", r.Field, "token", val)
			}
		}
		out[r.Field] = val
	}
	return out
}
