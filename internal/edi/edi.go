package edi

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/baltadar/edi-app/internal/common"
	"github.com/baltadar/edi-app/internal/fields"
)

// placeholder stands in for any field the extractor could not find.
const placeholder = "UNKNOWN"

// Renderer substitutes extracted fields into a fixed, simplified X12 837
// professional claim skeleton. The output is an illustrative rendering only:
// segment counts and checksums are not enforced and no standards conformance
// is attempted.
type Renderer struct {
	cfg    common.EDIConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewRenderer(cfg common.EDIConfig, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{cfg: cfg, logger: logger, now: time.Now}
}

// Render builds the claim file contents for one document. Missing name,
// policy, and provider values render as the literal placeholder; a missing
// date of birth renders empty. Never fails on missing fields.
func (r *Renderer) Render(fs fields.Set, baseFilename string) string {
	now := r.now().UTC()
	today := now.Format("20060102")
	hhmm := now.Format("1504")
	control := controlNumber(baseFilename)

	get := func(name string) string {
		if v := strings.TrimSpace(fs[name]); v != "" {
			return v
		}
		return placeholder
	}
	dob := strings.ReplaceAll(fs[fields.FieldDateOfBirth], "-", "")

	var b strings.Builder
	fmt.Fprintf(&b, "ISA*00*          *00*          *ZZ*%-15s*ZZ*%-15s*%s*%s*^*00501*%s*0*T*:~\n",
		r.cfg.SenderID, r.cfg.ReceiverID, today, hhmm, control)
	fmt.Fprintf(&b, "GS*HC*%s*%s*%s*%s*1*X*005010X222A1~\n", r.cfg.SenderID, r.cfg.ReceiverID, today, hhmm)
	b.WriteString("ST*837*0001~\n")
	fmt.Fprintf(&b, "BHT*0019*00*0123*%s*%s*CH~\n", today, hhmm)
	fmt.Fprintf(&b, "NM1*41*2*%s*****46*12345~\n", r.cfg.SubmitterName)
	b.WriteString("PER*IC*Support*TE*8005551212~\n")
	b.WriteString("NM1*40*2*RECEIVER*****46*98765~\n")
	b.WriteString("HL*1**20*1~\n")
	fmt.Fprintf(&b, "NM1*85*2*%s*****XX*1234567893~\n", get(fields.FieldProviderName))
	b.WriteString("HL*2*1*22*0~\n")
	fmt.Fprintf(&b, "NM1*IL*1*%s****MI*%s~\n", get(fields.FieldPatientName), get(fields.FieldPolicyNumber))
	fmt.Fprintf(&b, "DMG*D8*%s~\n", dob)
	b.WriteString("SE*13*0001~\n")
	b.WriteString("GE*1*1~\n")
	fmt.Fprintf(&b, "IEA*1*%s~\n", control)
	return b.String()
}

// controlNumber derives a 9-character interchange control number from the
// document's base filename, right-padded with zeros. Counted in runes so a
// multibyte filename is never split mid-character.
func controlNumber(base string) string {
	r := []rune(base)
	if len(r) > 9 {
		r = r[:9]
	}
	return string(r) + strings.Repeat("0", 9-len(r))
}
