package controller

import (
	"context"
	"slices"
	"strings"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

var (
	loadTransactionsMessages = fallback("Failed to load transactions. Please try again.")
	loadPendingMessages      = fallback("Failed to load pending transactions. Please try again.")
	verifyMessages           = serverFirst("Failed to verify transaction. Please try again.", nil)
)

type TransactionsState struct {
	List         Load                  `json:"list"`
	Transactions []domain.Transaction  `json:"transactions"`
	Pending      []domain.Transaction  `json:"pending"`
	Stats        view.TransactionStats `json:"stats"`
	// Selected is the transaction the verification dialog is open for.
	Selected string `json:"selected,omitempty"`
	Verify   Action `json:"verify"`
}

// Transactions lets an agent review and verify client transactions.
type Transactions struct {
	screen
	agent ports.AgentGateway
	state TransactionsState

	closeVerify func()
}

func NewTransactions(agent ports.AgentGateway, env Env) *Transactions {
	return &Transactions{screen: newScreen("transactions", env), agent: agent}
}

// Load fetches every transaction and then the pending ones. The pending
// fetch only starts once the first one succeeded.
func (t *Transactions) Load(ctx context.Context) error {
	if err := t.update(ctx, t.state.List.begin); err != nil {
		return err
	}

	all, err := t.agent.Transactions(ctx)
	if err != nil {
		t.failed("load transactions", err)
		return t.update(ctx, func() { t.state.List.fail(loadTransactionsMessages.For(err)) })
	}
	if err := t.update(ctx, func() {
		t.state.Transactions = all
		t.state.Stats = view.SummarizeTransactions(all, t.state.Pending)
	}); err != nil {
		return err
	}

	pending, err := t.agent.PendingTransactions(ctx)
	if err != nil {
		t.failed("load pending transactions", err)
	}
	return t.update(ctx, func() {
		if err != nil {
			t.state.List.fail(loadPendingMessages.For(err))
			return
		}
		t.state.Pending = pending
		t.state.Stats = view.SummarizeTransactions(t.state.Transactions, pending)
		t.state.List.ready()
	})
}

// Select opens the verification dialog for a transaction.
func (t *Transactions) Select(ctx context.Context, transactionID string) error {
	return t.update(ctx, func() {
		t.cancelVerifyClose()
		t.state.Selected = transactionID
		t.state.Verify.reset()
	})
}

// CloseVerification closes the dialog.
func (t *Transactions) CloseVerification(ctx context.Context) error {
	return t.update(ctx, t.closeDialog)
}

func (t *Transactions) closeDialog() {
	t.cancelVerifyClose()
	t.state.Selected = ""
	t.state.Verify.reset()
}

func (t *Transactions) cancelVerifyClose() {
	if t.closeVerify != nil {
		t.closeVerify()
		t.closeVerify = nil
	}
}

// Verify marks the selected transaction VERIFIED or REJECTED. On success the
// dialog closes after the short toast delay and the lists reload.
func (t *Transactions) Verify(ctx context.Context, status, notes string) error {
	var selected string
	if err := t.read(ctx, func() { selected = t.state.Selected }); err != nil {
		return err
	}
	if selected == "" {
		return domain.ErrNotFound
	}
	if err := t.begin(ctx, &t.state.Verify); err != nil {
		return err
	}

	req := domain.VerifyTransactionRequest{
		Status:      strings.ToUpper(strings.TrimSpace(status)),
		Description: strings.TrimSpace(notes),
	}
	var resp *domain.Transaction
	err := form.Validate(req)
	if err == nil {
		resp, err = t.agent.VerifyTransaction(ctx, selected, req)
	}
	if err != nil {
		t.failed("verify transaction", err)
	}
	return t.update(ctx, func() {
		if err != nil {
			t.state.Verify.fail(verifyMessages.For(err))
			return
		}
		msg := resp.Message
		if msg == "" {
			msg = "Transaction " + strings.ToLower(req.Status) + " successfully!"
		}
		t.state.Verify.succeed(msg)
		t.cancelVerifyClose()
		t.closeVerify = t.sched.After(t.timing.ShortToast, func() {
			t.closeVerify = nil
			t.closeDialog()
			t.background(func(ctx context.Context) {
				if err := t.Load(ctx); err != nil {
					t.log.Debug().Err(err).Msg("reload after verification skipped")
				}
			})
		})
	})
}

func (t *Transactions) Snapshot(ctx context.Context) (TransactionsState, error) {
	var out TransactionsState
	err := t.read(ctx, func() {
		out = t.state
		out.Transactions = slices.Clone(t.state.Transactions)
		out.Pending = slices.Clone(t.state.Pending)
	})
	return out, err
}
