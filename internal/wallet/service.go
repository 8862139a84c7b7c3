package wallet

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/business-nexus/nexus/internal/identifier"
	"github.com/business-nexus/nexus/internal/notification"
	"github.com/business-nexus/nexus/internal/store"
)

const (
	balancesKey     = "wallet:balances"
	transactionsKey = "wallet:transactions"

	defaultCurrency = "USD"

	noteInsufficientFunds = "Insufficient funds"
	noteInvalidParties    = "Invalid sender/receiver"
	noteDealFunding       = "Deal funding"
)

// Service owns the wallet balances and the append-only transaction log.
//
// Business failures (invalid amount, insufficient funds, sender equals
// receiver) are not errors: every attempt appends a transaction and the caller
// inspects its Status. The error return carries storage failures only.
type Service struct {
	store    store.Store
	notifier notification.Notifier
}

// NewService builds a wallet service instance.
func NewService(st store.Store, notifier notification.Notifier) *Service {
	return &Service{store: st, notifier: notifier}
}

// Balance returns the user's balance, lazily initializing it to zero on first
// access.
func (s *Service) Balance(ctx context.Context, userID string) (float64, error) {
	balances, err := s.readBalances(ctx)
	if err != nil {
		return 0, err
	}
	amount, ok := balances[userID]
	if !ok {
		balances[userID] = 0
		if err := s.store.Write(ctx, balancesKey, balances); err != nil {
			return 0, err
		}
	}
	return amount, nil
}

// AllBalances returns the balance map for every known user.
func (s *Service) AllBalances(ctx context.Context) (map[string]float64, error) {
	return s.readBalances(ctx)
}

// Transactions returns the full log, newest first.
func (s *Service) Transactions(ctx context.Context) ([]Transaction, error) {
	txs, err := s.readTransactions(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(txs, func(i, j int) bool {
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})
	return txs, nil
}

// TransactionsForUser returns the log entries where the user is sender or
// receiver, newest first.
func (s *Service) TransactionsForUser(ctx context.Context, userID string) ([]Transaction, error) {
	txs, err := s.Transactions(ctx)
	if err != nil {
		return nil, err
	}
	out := txs[:0:0]
	for _, tx := range txs {
		if tx.SenderID == userID || tx.ReceiverID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// Deposit credits the user's balance. Invalid amounts are recorded as a failed
// deposit without touching the balance.
func (s *Service) Deposit(ctx context.Context, userID string, amount float64, note string) (Transaction, error) {
	if !validAmount(amount) {
		return s.append(ctx, s.newTransaction(TypeDeposit, amount, txFields{
			SenderID: userID,
			Status:   StatusFailed,
			Note:     note,
		}))
	}

	balances, err := s.readBalances(ctx)
	if err != nil {
		return Transaction{}, err
	}
	balances[userID] += amount

	tx := s.newTransaction(TypeDeposit, amount, txFields{
		ReceiverID: userID,
		Status:     StatusCompleted,
		Note:       note,
	})
	return s.commit(ctx, balances, tx)
}

// Withdraw debits the user's balance. Invalid amounts and overdrafts are
// recorded as failed withdrawals without touching the balance.
func (s *Service) Withdraw(ctx context.Context, userID string, amount float64, note string) (Transaction, error) {
	if !validAmount(amount) {
		return s.append(ctx, s.newTransaction(TypeWithdraw, amount, txFields{
			SenderID: userID,
			Status:   StatusFailed,
			Note:     note,
		}))
	}

	balances, err := s.readBalances(ctx)
	if err != nil {
		return Transaction{}, err
	}
	if balances[userID] < amount {
		return s.append(ctx, s.newTransaction(TypeWithdraw, amount, txFields{
			SenderID: userID,
			Status:   StatusFailed,
			Note:     defaultNote(note, noteInsufficientFunds),
		}))
	}
	balances[userID] -= amount

	tx := s.newTransaction(TypeWithdraw, amount, txFields{
		SenderID: userID,
		Status:   StatusCompleted,
		Note:     note,
	})
	return s.commit(ctx, balances, tx)
}

// Transfer moves funds between two users. Both balance updates and the
// completed record land in one batch write, so no intermediate state is
// observable by other calls.
func (s *Service) Transfer(ctx context.Context, senderID, receiverID string, amount float64, note string) (Transaction, error) {
	return s.transfer(ctx, TypeTransfer, senderID, receiverID, amount, note)
}

// FundDeal is a transfer from an investor to an entrepreneur recorded as deal
// funding. Role enforcement is the caller's policy, not a ledger invariant.
func (s *Service) FundDeal(ctx context.Context, investorID, entrepreneurID string, amount float64, note string) (Transaction, error) {
	tx, err := s.transfer(ctx, TypeDealFunding, investorID, entrepreneurID, amount, defaultNote(note, noteDealFunding))
	if err != nil {
		return tx, err
	}
	if !tx.Failed() && s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindDealFunded,
			Destination: entrepreneurID,
			Body:        fmt.Sprintf("You received %.2f %s from %s", tx.Amount, tx.Currency, investorID),
		})
	}
	return tx, nil
}

func (s *Service) transfer(ctx context.Context, kind TransactionType, senderID, receiverID string, amount float64, note string) (Transaction, error) {
	if senderID == "" || receiverID == "" || senderID == receiverID {
		return s.append(ctx, s.newTransaction(kind, amount, txFields{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Status:     StatusFailed,
			Note:       defaultNote(note, noteInvalidParties),
		}))
	}
	if !validAmount(amount) {
		return s.append(ctx, s.newTransaction(kind, amount, txFields{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Status:     StatusFailed,
			Note:       note,
		}))
	}

	balances, err := s.readBalances(ctx)
	if err != nil {
		return Transaction{}, err
	}
	if balances[senderID] < amount {
		return s.append(ctx, s.newTransaction(kind, amount, txFields{
			SenderID:   senderID,
			ReceiverID: receiverID,
			Status:     StatusFailed,
			Note:       defaultNote(note, noteInsufficientFunds),
		}))
	}

	balances[senderID] -= amount
	balances[receiverID] += amount

	tx := s.newTransaction(kind, amount, txFields{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     StatusCompleted,
		Note:       note,
	})
	return s.commit(ctx, balances, tx)
}

type txFields struct {
	SenderID   string
	ReceiverID string
	Status     TransactionStatus
	Note       string
}

func (s *Service) newTransaction(kind TransactionType, amount float64, f txFields) Transaction {
	return Transaction{
		ID:         identifier.New("tx"),
		Type:       kind,
		Amount:     amount,
		Currency:   defaultCurrency,
		SenderID:   f.SenderID,
		ReceiverID: f.ReceiverID,
		Status:     f.Status,
		Note:       f.Note,
		CreatedAt:  time.Now().UTC(),
	}
}

// append adds the record to the log without touching balances. Used for
// rejected operations.
func (s *Service) append(ctx context.Context, tx Transaction) (Transaction, error) {
	txs, err := s.readTransactions(ctx)
	if err != nil {
		return Transaction{}, err
	}
	txs = append(txs, tx)
	if err := s.store.Write(ctx, transactionsKey, txs); err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

// commit writes the updated balance map and the appended record as one batch.
func (s *Service) commit(ctx context.Context, balances map[string]float64, tx Transaction) (Transaction, error) {
	txs, err := s.readTransactions(ctx)
	if err != nil {
		return Transaction{}, err
	}
	txs = append(txs, tx)
	err = s.store.WriteAll(ctx,
		store.Entry{Key: balancesKey, Value: balances},
		store.Entry{Key: transactionsKey, Value: txs},
	)
	if err != nil {
		return Transaction{}, err
	}
	return tx, nil
}

func (s *Service) readBalances(ctx context.Context) (map[string]float64, error) {
	balances := map[string]float64{}
	if err := s.store.Read(ctx, balancesKey, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

func (s *Service) readTransactions(ctx context.Context) ([]Transaction, error) {
	var txs []Transaction
	if err := s.store.Read(ctx, transactionsKey, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func validAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 0) && !math.IsNaN(amount)
}

func defaultNote(note, fallback string) string {
	if note == "" {
		return fallback
	}
	return note
}
