package documents

import "time"

// Status tracks a deal document through its lifecycle. The chamber does not
// force an ordering between draft, in_review and signed; signing is the one
// operation with its own semantics.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusInReview Status = "in_review"
	StatusSigned   Status = "signed"
)

// DealDocument is an uploaded file tracked through the signing lifecycle. The
// content travels as a data URL; Signature holds the captured signature image,
// also as a data URL.
type DealDocument struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Size         string     `json:"size"`
	LastModified string     `json:"last_modified"`
	Shared       bool       `json:"shared"`
	URL          string     `json:"url"`
	OwnerID      string     `json:"owner_id"`
	Status       Status     `json:"status"`
	DataURL      string     `json:"data_url,omitempty"`
	Signature    string     `json:"signature,omitempty"`
	SignedAt     *time.Time `json:"signed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
