package scheduling

import "time"

// RequestStatus tracks the lifecycle of a meeting request. Pending transitions
// exactly once to accepted or declined; both are terminal.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
)

// AvailabilitySlot is an owner-declared open time window offered for meetings.
// Start and End are ISO-8601 instants kept as strings: slot retraction on
// acceptance matches them by exact string equality.
type AvailabilitySlot struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// MeetingRequest is a proposal for a specific time window awaiting a response.
type MeetingRequest struct {
	ID          string        `json:"id"`
	FromUserID  string        `json:"from_user_id"`
	ToUserID    string        `json:"to_user_id"`
	Title       string        `json:"title"`
	Message     string        `json:"message,omitempty"`
	Start       string        `json:"start"`
	End         string        `json:"end"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	RespondedAt *time.Time    `json:"responded_at,omitempty"`
}

// Meeting is created only by accepting a request and is never mutated after.
// RequestID is a non-owning back-reference to the request that spawned it.
type Meeting struct {
	ID          string    `json:"id"`
	OrganizerID string    `json:"organizer_id"`
	AttendeeID  string    `json:"attendee_id"`
	Title       string    `json:"title"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	CreatedAt   time.Time `json:"created_at"`
	RequestID   string    `json:"request_id,omitempty"`
}

// startTime parses an ISO instant for ordering. Unparseable values sort first.
func startTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
