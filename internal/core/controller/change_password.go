package controller

import (
	"context"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/guard"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

var changePasswordMessages = serverFirst("An error occurred while changing password. Please try again.", nil)

// PasswordChanger changes the password of the signed-in user.
type PasswordChanger interface {
	Change(ctx context.Context, req domain.ChangePasswordRequest) (*domain.ChangePasswordResponse, error)
}

type ChangePasswordState struct {
	Submit Action `json:"submit"`
	// Redirect is set once the success toast has been shown.
	Redirect string `json:"redirect,omitempty"`
}

// ChangePassword is the password form available to every role.
type ChangePassword struct {
	screen
	passwords PasswordChanger
	sessions  ports.SessionReader
	state     ChangePasswordState
}

func NewChangePassword(passwords PasswordChanger, sessions ports.SessionReader, env Env) *ChangePassword {
	return &ChangePassword{screen: newScreen("change_password", env), passwords: passwords, sessions: sessions}
}

// Submit changes the password. On success the user is sent to their home
// after the short toast delay.
func (c *ChangePassword) Submit(ctx context.Context, req domain.ChangePasswordRequest) error {
	if err := c.begin(ctx, &c.state.Submit); err != nil {
		return err
	}
	resp, err := c.passwords.Change(ctx, req)
	if err != nil {
		c.failed("change password", err)
	}
	return c.update(ctx, func() {
		if err != nil {
			c.state.Submit.fail(changePasswordMessages.For(err))
			return
		}
		c.state.Redirect = ""
		c.state.Submit.succeed(orDefault(resp.Message, "Password changed successfully!"))
		c.sched.After(c.timing.ShortToast, func() {
			c.state.Redirect = guard.Home(c.sessions.Current())
		})
	})
}

// Reset clears the form result and any pending redirect.
func (c *ChangePassword) Reset(ctx context.Context) error {
	return c.update(ctx, func() {
		c.state.Redirect = ""
		c.state.Submit.reset()
	})
}

func (c *ChangePassword) Snapshot(ctx context.Context) (ChangePasswordState, error) {
	var out ChangePasswordState
	err := c.read(ctx, func() { out = c.state })
	return out, err
}
