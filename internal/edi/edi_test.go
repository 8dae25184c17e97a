package edi

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baltadar/edi-app/internal/common"
	"github.com/baltadar/edi-app/internal/fields"
)

func testRenderer() *Renderer {
	r := NewRenderer(common.EDIConfig{
		SenderID:      "SENDERID123",
		ReceiverID:    "RECEIVERID456",
		SubmitterName: "Demo Health Org",
	}, nil)
	r.now = func() time.Time {
		return time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)
	}
	return r
}

func TestRenderCompleteFields(t *testing.T) {
	r := testRenderer()

	out := r.Render(fields.Set{
		fields.FieldPatientName:  "Jane Doe",
		fields.FieldDateOfBirth:  "1990-01-02",
		fields.FieldPolicyNumber: "POL-12345",
		fields.FieldProviderName: "Dr. House",
	}, "claim_form_001")

	assert.Contains(t, out, "NM1*IL*1*Jane Doe****MI*POL-12345~")
	assert.Contains(t, out, "NM1*85*2*Dr. House*****XX*1234567893~")
	// hyphens stripped from the date segment
	assert.Contains(t, out, "DMG*D8*19900102~")
	assert.Contains(t, out, "GS*HC*SENDERID123*RECEIVERID456*20260315*1430*1*X*005010X222A1~")
	assert.NotContains(t, out, "UNKNOWN")
}

func TestRenderMissingFieldsUsePlaceholder(t *testing.T) {
	r := testRenderer()

	out := r.Render(fields.Set{}, "empty")

	assert.Contains(t, out, "NM1*IL*1*UNKNOWN****MI*UNKNOWN~")
	assert.Contains(t, out, "NM1*85*2*UNKNOWN*****XX*1234567893~")
	// a missing date renders empty, not as the placeholder
	assert.Contains(t, out, "DMG*D8*~")
}

func TestRenderControlNumber(t *testing.T) {
	r := testRenderer()

	tests := []struct {
		base string
		want string
	}{
		{"abc", "abc000000"},
		{"exactnine", "exactnine"},
		{"longerthannine", "longertha"},
		{"résumé", "résumé000"},
		{"überweisung_scan", "überweisu"},
	}
	for _, tt := range tests {
		out := r.Render(fields.Set{}, tt.base)
		assert.Contains(t, out, "IEA*1*"+tt.want+"~")
		assert.Contains(t, out, "*00501*"+tt.want+"*0*T*:~")
	}
}

func TestRenderSenderReceiverPadding(t *testing.T) {
	r := testRenderer()

	out := r.Render(fields.Set{}, "pad")
	lines := strings.Split(out, "\n")
	require.NotEmpty(t, lines)
	// ISA sender/receiver elements are space-padded to 15 characters
	assert.Contains(t, lines[0], "*ZZ*SENDERID123    *ZZ*RECEIVERID456  *")
}
