package controller

import (
	"context"
	"strings"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
	"github.com/99minutos/ebanking-console/internal/core/ports"
	"github.com/99minutos/ebanking-console/internal/core/view"
)

var rechargeMessages = serverFirst("Mobile recharge failed. Please try again later.", map[domain.FailureKind]string{
	domain.KindValidation:    "Invalid recharge details. Please check your input.",
	domain.KindAuthorization: "Insufficient funds or account restrictions.",
})

type MobileRechargeState struct {
	Load      Load                   `json:"load"`
	Account   *domain.AccountDetails `json:"account,omitempty"`
	Operators []view.Operator        `json:"operators"`
	Amounts   []float64              `json:"quickAmounts"`
	Submit    Action                 `json:"submit"`
	Last      *domain.Transaction    `json:"last,omitempty"`
}

// MobileRecharge tops up a phone line from the client's account.
type MobileRecharge struct {
	screen
	client ports.ClientGateway
	state  MobileRechargeState
}

func NewMobileRecharge(client ports.ClientGateway, env Env) *MobileRecharge {
	return &MobileRecharge{screen: newScreen("mobile_recharge", env), client: client}
}

func (r *MobileRecharge) Load(ctx context.Context) error {
	if err := r.update(ctx, r.state.Load.begin); err != nil {
		return err
	}
	account, err := r.client.Account(ctx)
	if err != nil {
		r.failed("load account", err)
	}
	return r.update(ctx, func() {
		if err != nil {
			r.state.Load.fail(loadAccountMessages.For(err))
			return
		}
		r.state.Account = account
		r.state.Load.ready()
	})
}

// Submit recharges req.PhoneNumber. The operator may be given by code or by
// display name.
func (r *MobileRecharge) Submit(ctx context.Context, req domain.MobileRechargeRequest) error {
	if err := r.begin(ctx, &r.state.Submit); err != nil {
		return err
	}
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	req.Description = strings.TrimSpace(req.Description)
	if op, ok := view.FindOperator(req.Operator); ok {
		req.Operator = op.Code
	}
	if req.RechargeType == "" {
		req.RechargeType = domain.RechargePrepaid
	}

	var resp *domain.TransactionResponse
	err := form.Validate(req)
	if err == nil {
		resp, err = r.client.MobileRecharge(ctx, req)
	}
	if err != nil {
		r.failed("mobile recharge", err)
	}
	return r.update(ctx, func() {
		if err != nil {
			r.state.Submit.fail(rechargeMessages.For(err))
			return
		}
		msg := resp.Message
		if msg == "" {
			msg = "Mobile recharge successful! Transaction ID: " + resp.TransactionID
		}
		r.state.Last = resp
		r.state.Submit.succeed(msg)
	})
}

func (r *MobileRecharge) Snapshot(ctx context.Context) (MobileRechargeState, error) {
	var out MobileRechargeState
	err := r.read(ctx, func() {
		out = r.state
		out.Operators = view.Operators
		out.Amounts = view.QuickAmounts
	})
	return out, err
}
