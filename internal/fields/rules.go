package fields

import (
	"regexp"
	"strings"
)

// CaptureKind selects the capture shape of a rule.
type CaptureKind int

const (
	// CaptureLine captures free text to end of line.
	CaptureLine CaptureKind = iota
	// CaptureDate captures a date-like token, normalized to ISO form when it parses.
	CaptureDate
	// CaptureID captures an alphanumeric/hyphen token.
	CaptureID
)

// Rule declares how one field is located in document text: any of the label
// phrases, an optional ':' or '-' separator, then the capture shape.
type Rule struct {
	Field   string
	Labels  []string
	Capture CaptureKind
}

// DefaultRules is the label/pattern table for the four required form fields.
var DefaultRules = []Rule{
	{Field: FieldPatientName, Labels: []string{"Patient Name"}, Capture: CaptureLine},
	{Field: FieldDateOfBirth, Labels: []string{"DOB", "Date of Birth"}, Capture: CaptureDate},
	{Field: FieldPolicyNumber, Labels: []string{"Policy Number", "Member ID"}, Capture: CaptureID},
	{Field: FieldProviderName, Labels: []string{"Provider Name", "Physician Name"}, Capture: CaptureLine},
}

func (r Rule) compile() *regexp.Regexp {
	alts := make([]string, len(r.Labels))
	for i, l := range r.Labels {
		alts[i] = regexp.QuoteMeta(l)
	}
	var capture string
	switch r.Capture {
	case CaptureDate:
		capture = `([\w/\-]+)`
	case CaptureID:
		capture = `([A-Za-z0-9\-]+)`
	default:
		capture = `(.+)`
	}
	return regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)[:\-]?\s*` + capture)
}
