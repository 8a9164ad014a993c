package domain

// ExtractionStatus represents the lifecycle of an invoice document's
// extraction run.
type ExtractionStatus string

const (
	ExtractionStatusQueued     ExtractionStatus = "queued"
	ExtractionStatusProcessing ExtractionStatus = "processing"
	ExtractionStatusCompleted  ExtractionStatus = "completed"
	ExtractionStatusFailed     ExtractionStatus = "failed"
)

// ValidExtractionStatuses is the set of statuses accepted in list filters.
var ValidExtractionStatuses = map[ExtractionStatus]bool{
	ExtractionStatusQueued:     true,
	ExtractionStatusProcessing: true,
	ExtractionStatusCompleted:  true,
	ExtractionStatusFailed:     true,
}

// MatchStatus classifies a catalog match by confidence.
type MatchStatus string

const (
	MatchStatusAccepted    MatchStatus = "accepted"
	MatchStatusNeedsReview MatchStatus = "needs_review"
	MatchStatusNoMatch     MatchStatus = "no_match"
)

// DescriptionSource records where an alternative product description came from.
type DescriptionSource string

const (
	DescriptionSourceCatalog  DescriptionSource = "catalog"
	DescriptionSourceFeedback DescriptionSource = "feedback"
)
