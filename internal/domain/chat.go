package domain

// ChatMessage is one entry in the staff chat log. Append-only from the
// client's perspective.
type ChatMessage struct {
	StaffName string    `json:"staff_name"`
	Message   string    `json:"message"`
	Timestamp Timestamp `json:"timestamp"`
}
