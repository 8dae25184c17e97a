package constants

// ProcessStatus is the canonical outcome label for a processed document.
type ProcessStatus string

// Stable values (these exact strings appear in records and the ledger).
const (
	StatusSuccess   ProcessStatus = "success"   // all required fields present
	StatusPartial   ProcessStatus = "partial"   // outputs written with incomplete fields
	StatusException ProcessStatus = "exception" // routed to the exceptions directory
)
