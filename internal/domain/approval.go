package domain

// Approval is a queued punishment awaiting admin sign-off
type Approval struct {
	ApprovalID string    `json:"approvalId"`
	PlayerName string    `json:"playerName"`
	Rule       string    `json:"rule"`
	Type       string    `json:"type"`
	Duration   string    `json:"duration"`
	StaffName  string    `json:"staffName"`
	QueuedDate Timestamp `json:"queuedDate"`
}

// DisplayDuration returns the duration the way the panel renders it
func (a Approval) DisplayDuration() string {
	if a.Duration == "0" {
		return "Permanent"
	}
	return a.Duration
}
