package fields

import "math"

// Validate returns one error message per missing or empty required field.
// An empty slice means the document is valid.
func Validate(s Set) []string {
	var errs []string
	for _, name := range Required {
		if !s.Present(name) {
			errs = append(errs, "Missing required field: "+name)
		}
	}
	return errs
}

// Confidence is the percentage of required fields present, rounded to two
// decimals. It is computed regardless of validation outcome so partial
// results can still be labeled.
func Confidence(s Set) float64 {
	filled := 0
	for _, name := range Required {
		if s.Present(name) {
			filled++
		}
	}
	pct := float64(filled) / float64(len(Required)) * 100
	return math.Round(pct*100) / 100
}
