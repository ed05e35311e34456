package enums

import "fmt"

// ComplaintStatus tracks a support complaint through triage.
type ComplaintStatus string

const (
	ComplaintStatusOpen       ComplaintStatus = "open"
	ComplaintStatusInProgress ComplaintStatus = "in_progress"
	ComplaintStatusResolved   ComplaintStatus = "resolved"
	ComplaintStatusClosed     ComplaintStatus = "closed"
)

var validComplaintStatuses = []ComplaintStatus{
	ComplaintStatusOpen,
	ComplaintStatusInProgress,
	ComplaintStatusResolved,
	ComplaintStatusClosed,
}

// String implements fmt.Stringer.
func (c ComplaintStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ComplaintStatus.
func (c ComplaintStatus) IsValid() bool {
	for _, candidate := range validComplaintStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseComplaintStatus converts raw input into a ComplaintStatus.
func ParseComplaintStatus(value string) (ComplaintStatus, error) {
	for _, candidate := range validComplaintStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid complaint status %q", value)
}
