package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/business-nexus/nexus/internal/directory"
	"github.com/business-nexus/nexus/internal/middleware"
	"github.com/business-nexus/nexus/internal/wallet"
)

// RegisterWalletRoutes wires ledger endpoints. Deal funding sits behind the
// investor role gate; the ledger itself enforces no roles.
func RegisterWalletRoutes(r fiber.Router, h *wallet.Handler) {
	r.Get("/wallet/:userId/balance", h.Balance)
	r.Get("/wallet/:userId/transactions", h.Transactions)
	r.Post("/wallet/deposit", h.Deposit)
	r.Post("/wallet/withdraw", h.Withdraw)
	r.Post("/wallet/transfer", h.Transfer)
	r.Post("/deals/fund", middleware.RequireRole(directory.RoleInvestor), h.FundDeal)
}
