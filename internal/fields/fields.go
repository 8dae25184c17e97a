package fields

import "strings"

// Canonical field names for the form fields this pipeline extracts.
const (
	FieldPatientName  = "patient_name"
	FieldDateOfBirth  = "date_of_birth"
	FieldPolicyNumber = "policy_number"
	FieldProviderName = "provider_name"
)

// Required lists the fields a form must provide, in output column order.
var Required = []string{
	FieldPatientName,
	FieldDateOfBirth,
	FieldPolicyNumber,
	FieldProviderName,
}

// Set maps field names to extracted values. A missing key means the field's
// label was not found in the document text.
type Set map[string]string

// Present reports whether the named field was extracted with a non-empty value.
func (s Set) Present(name string) bool {
	return strings.TrimSpace(s[name]) != ""
}
