package wallet

import (
	"context"
	"math"
	"testing"

	"github.com/business-nexus/nexus/internal/store"
)

func newTestService() *Service {
	return NewService(store.NewMemory(), nil)
}

func TestDepositWithdrawTransferScenario(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	tx, err := svc.Deposit(ctx, "u1", 100, "")
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if tx.Failed() {
		t.Fatalf("deposit rejected: %+v", tx)
	}
	if tx.ReceiverID != "u1" || tx.Type != TypeDeposit {
		t.Fatalf("unexpected deposit record: %+v", tx)
	}
	if got := mustBalance(t, svc, "u1"); got != 100 {
		t.Fatalf("expected balance 100, got %v", got)
	}

	tx, err = svc.Withdraw(ctx, "u1", 150, "")
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if !tx.Failed() {
		t.Fatalf("overdraft accepted: %+v", tx)
	}
	if tx.Note != "Insufficient funds" {
		t.Fatalf("expected default overdraft note, got %q", tx.Note)
	}
	if got := mustBalance(t, svc, "u1"); got != 100 {
		t.Fatalf("failed withdraw moved balance: %v", got)
	}

	tx, err = svc.Transfer(ctx, "u1", "u2", 40, "")
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if tx.Failed() {
		t.Fatalf("transfer rejected: %+v", tx)
	}
	if got := mustBalance(t, svc, "u1"); got != 60 {
		t.Fatalf("expected sender balance 60, got %v", got)
	}
	if got := mustBalance(t, svc, "u2"); got != 40 {
		t.Fatalf("expected receiver balance 40, got %v", got)
	}

	txs, err := svc.Transactions(ctx)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("expected 3 records including the failed one, got %d", len(txs))
	}
	failed := 0
	for _, rec := range txs {
		if rec.Failed() {
			failed++
		}
	}
	if failed != 1 {
		t.Fatalf("expected exactly one failed record, got %d", failed)
	}
}

func TestBalanceLazyInit(t *testing.T) {
	svc := newTestService()

	amount, err := svc.Balance(context.Background(), "fresh")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if amount != 0 {
		t.Fatalf("expected zero initial balance, got %v", amount)
	}

	balances, err := svc.AllBalances(context.Background())
	if err != nil {
		t.Fatalf("all balances: %v", err)
	}
	if _, ok := balances["fresh"]; !ok {
		t.Fatal("first access did not initialize the balance entry")
	}
}

func TestInvalidAmountsAreRecordedAsFailed(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for _, amount := range []float64{0, -5, math.NaN(), math.Inf(1)} {
		tx, err := svc.Deposit(ctx, "u1", amount, "")
		if err != nil {
			t.Fatalf("deposit(%v): %v", amount, err)
		}
		if !tx.Failed() {
			t.Fatalf("deposit(%v) accepted", amount)
		}
	}

	if got := mustBalance(t, svc, "u1"); got != 0 {
		t.Fatalf("failed deposits moved balance: %v", got)
	}

	txs, err := svc.Transactions(ctx)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	if len(txs) != 4 {
		t.Fatalf("rejected operations must still be logged, got %d records", len(txs))
	}
}

func TestTransferToSelfAlwaysFails(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, "u1", 500, ""); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	tx, err := svc.Transfer(ctx, "u1", "u1", 10, "")
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !tx.Failed() {
		t.Fatal("self transfer accepted")
	}
	if tx.Note != "Invalid sender/receiver" {
		t.Fatalf("expected default note, got %q", tx.Note)
	}
	if got := mustBalance(t, svc, "u1"); got != 500 {
		t.Fatalf("self transfer moved balance: %v", got)
	}
}

func TestTransferEmptyPartyFails(t *testing.T) {
	svc := newTestService()

	tx, err := svc.Transfer(context.Background(), "", "u2", 10, "")
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !tx.Failed() {
		t.Fatal("transfer with empty sender accepted")
	}
}

func TestFundDealRecordsDealFunding(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, "investor", 1000, ""); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	tx, err := svc.FundDeal(ctx, "investor", "founder", 250, "")
	if err != nil {
		t.Fatalf("fund deal: %v", err)
	}
	if tx.Failed() {
		t.Fatalf("funding rejected: %+v", tx)
	}
	if tx.Type != TypeDealFunding {
		t.Fatalf("expected deal_funding type, got %s", tx.Type)
	}
	if tx.Note != "Deal funding" {
		t.Fatalf("expected default funding note, got %q", tx.Note)
	}
	if got := mustBalance(t, svc, "founder"); got != 250 {
		t.Fatalf("expected founder balance 250, got %v", got)
	}
}

func TestTransactionsForUserFiltersAndSorts(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Deposit(ctx, "u1", 10, ""); err != nil {
		t.Fatalf("deposit u1: %v", err)
	}
	if _, err := svc.Deposit(ctx, "u2", 20, ""); err != nil {
		t.Fatalf("deposit u2: %v", err)
	}
	if _, err := svc.Transfer(ctx, "u2", "u1", 5, ""); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	txs, err := svc.TransactionsForUser(ctx, "u1")
	if err != nil {
		t.Fatalf("transactions for user: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 records for u1, got %d", len(txs))
	}
	for i := 1; i < len(txs); i++ {
		if txs[i].CreatedAt.After(txs[i-1].CreatedAt) {
			t.Fatal("transactions not sorted newest first")
		}
	}
}

// The ledger invariant: every balance equals completed credits minus completed
// debits for that user, regardless of how many attempts were rejected.
func TestBalancesMatchCompletedRecords(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	steps := []func() (Transaction, error){
		func() (Transaction, error) { return svc.Deposit(ctx, "a", 300, "") },
		func() (Transaction, error) { return svc.Deposit(ctx, "b", 50, "") },
		func() (Transaction, error) { return svc.Withdraw(ctx, "a", 1000, "") },
		func() (Transaction, error) { return svc.Transfer(ctx, "a", "b", 120, "") },
		func() (Transaction, error) { return svc.Transfer(ctx, "b", "b", 10, "") },
		func() (Transaction, error) { return svc.Withdraw(ctx, "b", 60, "") },
		func() (Transaction, error) { return svc.FundDeal(ctx, "a", "b", 30, "") },
	}
	for i, step := range steps {
		if _, err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	txs, err := svc.Transactions(ctx)
	if err != nil {
		t.Fatalf("transactions: %v", err)
	}
	derived := map[string]float64{}
	for _, tx := range txs {
		if tx.Failed() {
			continue
		}
		if tx.SenderID != "" {
			derived[tx.SenderID] -= tx.Amount
		}
		if tx.ReceiverID != "" {
			derived[tx.ReceiverID] += tx.Amount
		}
	}

	for _, user := range []string{"a", "b"} {
		if got := mustBalance(t, svc, user); got != derived[user] {
			t.Fatalf("balance of %s is %v, completed records say %v", user, got, derived[user])
		}
	}
}

func mustBalance(t *testing.T, svc *Service, userID string) float64 {
	t.Helper()
	amount, err := svc.Balance(context.Background(), userID)
	if err != nil {
		t.Fatalf("balance %s: %v", userID, err)
	}
	return amount
}
