package output

import (
	"time"

	"github.com/google/uuid"

	"github.com/baltadar/edi-app/constants"
	"github.com/baltadar/edi-app/internal/fields"
)

// ProcessingRecord is the per-document result written once on validation
// success. Records are immutable after write.
type ProcessingRecord struct {
	ID              uuid.UUID               `json:"id"`
	ExtractedFields fields.Set              `json:"extracted_fields"`
	ConfidenceScore float64                 `json:"confidence_score"`
	ProcessedAt     time.Time               `json:"processed_at"`
	Status          constants.ProcessStatus `json:"status"`
}
