package review

import "errors"

const (
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"
)

var (
	// ErrNotFound is returned when the application does not exist.
	ErrNotFound = errors.New("application not found")
	// ErrAlreadyReviewed is returned when the application has already been
	// decided; the decision endpoint maps it to a conflict response.
	ErrAlreadyReviewed = errors.New("application already reviewed")
	// ErrInvalidDecision is returned for decisions other than APPROVED/REJECTED.
	ErrInvalidDecision = errors.New("invalid decision")
)

// DecisionInput carries an admin's verdict on an application.
type DecisionInput struct {
	Decision   string
	AdminNotes string
	ReviewerID uint
}

// DecisionResult reports what an approval provisioned. TempPassword is only
// set for approvals and is expected to be delivered to the business owner
// out-of-band.
type DecisionResult struct {
	ApplicationID  uint
	Approved       bool
	OrganizationID uint
	UserID         uint
	TempPassword   string
}
