package trade

// DocumentStatus represents the lifecycle state of a trade document
type DocumentStatus string

const (
	StatusDraft    DocumentStatus = "DRAFT"
	StatusOngoing  DocumentStatus = "ONGOING"
	StatusFinished DocumentStatus = "FINISHED"
	StatusCanceled DocumentStatus = "CANCELED"
)

// IsValid checks if the status is a valid DocumentStatus
func (s DocumentStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusOngoing, StatusFinished, StatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of DocumentStatus
func (s DocumentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s DocumentStatus) CanTransitionTo(target DocumentStatus) bool {
	switch s {
	case StatusDraft:
		return target == StatusOngoing || target == StatusCanceled
	case StatusOngoing:
		return target == StatusFinished || target == StatusCanceled
	case StatusFinished, StatusCanceled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for FINISHED and CANCELED
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusCanceled
}
