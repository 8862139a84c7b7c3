package wallet

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes wallet HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type moveRequest struct {
	UserID     string  `json:"user_id"`
	SenderID   string  `json:"sender_id"`
	ReceiverID string  `json:"receiver_id"`
	Amount     float64 `json:"amount"`
	Note       string  `json:"note"`
}

type transactionResponse struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency"`
	SenderID   string  `json:"sender_id,omitempty"`
	ReceiverID string  `json:"receiver_id,omitempty"`
	Status     string  `json:"status"`
	Note       string  `json:"note,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func toTransactionResponse(tx Transaction) transactionResponse {
	return transactionResponse{
		ID:         tx.ID,
		Type:       string(tx.Type),
		Amount:     tx.Amount,
		Currency:   tx.Currency,
		SenderID:   tx.SenderID,
		ReceiverID: tx.ReceiverID,
		Status:     string(tx.Status),
		Note:       tx.Note,
		CreatedAt:  tx.CreatedAt.Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

// Balance returns the user's current balance.
func (h *Handler) Balance(c *fiber.Ctx) error {
	userID := c.Params("userId")
	amount, err := h.service.Balance(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"user_id": userID,
		"balance": amount,
	})
}

// Transactions returns the user's transaction history, newest first.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	userID := c.Params("userId")
	txs, err := h.service.TransactionsForUser(c.UserContext(), userID)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Deposit credits the caller's wallet.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	tx, err := h.service.Deposit(c.UserContext(), req.UserID, req.Amount, req.Note)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return respondTransaction(c, tx)
}

// Withdraw debits the caller's wallet.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	tx, err := h.service.Withdraw(c.UserContext(), req.UserID, req.Amount, req.Note)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return respondTransaction(c, tx)
}

// Transfer moves funds between two users.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	tx, err := h.service.Transfer(c.UserContext(), req.SenderID, req.ReceiverID, req.Amount, req.Note)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return respondTransaction(c, tx)
}

type fundDealRequest struct {
	InvestorID     string  `json:"investor_id"`
	EntrepreneurID string  `json:"entrepreneur_id"`
	Amount         float64 `json:"amount"`
	Note           string  `json:"note"`
}

// FundDeal records a deal funding transfer from investor to entrepreneur.
func (h *Handler) FundDeal(c *fiber.Ctx) error {
	var req fundDealRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	tx, err := h.service.FundDeal(c.UserContext(), req.InvestorID, req.EntrepreneurID, req.Amount, req.Note)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return respondTransaction(c, tx)
}

// respondTransaction maps the record's status to an HTTP status: rejected
// operations are reported with 422 but still carry the failed record, which is
// the caller's only failure channel.
func respondTransaction(c *fiber.Ctx, tx Transaction) error {
	status := http.StatusCreated
	if tx.Failed() {
		status = http.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(toTransactionResponse(tx))
}
