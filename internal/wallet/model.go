package wallet

import "time"

// TransactionType names the balance-affecting operation that produced a
// transaction record.
type TransactionType string

const (
	TypeDeposit     TransactionType = "deposit"
	TypeWithdraw    TransactionType = "withdraw"
	TypeTransfer    TransactionType = "transfer"
	TypeDealFunding TransactionType = "deal_funding"
)

// TransactionStatus is the outcome recorded for an operation. Failed attempts
// are kept in the log as an audit trail of rejected operations.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction is one immutable entry of the append-only wallet log. Amount is
// always positive; direction is implied by the type and whichever of SenderID
// and ReceiverID is populated. Amounts are currency-major floating point.
type Transaction struct {
	ID         string            `json:"id"`
	Type       TransactionType   `json:"type"`
	Amount     float64           `json:"amount"`
	Currency   string            `json:"currency"`
	SenderID   string            `json:"sender_id,omitempty"`
	ReceiverID string            `json:"receiver_id,omitempty"`
	Status     TransactionStatus `json:"status"`
	Note       string            `json:"note,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Failed reports whether the operation that produced this record was rejected.
func (t Transaction) Failed() bool {
	return t.Status == StatusFailed
}
