package controller

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/form"
)

func TestMessagesFor(t *testing.T) {
	table := Messages{
		Fallback: "generic",
		ByKind: map[domain.FailureKind]string{
			domain.KindConflict: "already exists",
		},
	}

	tests := []struct {
		name     string
		messages Messages
		err      error
		want     string
	}{
		{name: "nil error", messages: table, err: nil, want: ""},
		{
			name:     "form errors show the first field",
			messages: table,
			err:      form.Errors{{Field: "amount", Message: "amount is too small"}, {Field: "x", Message: "second"}},
			want:     "amount is too small",
		},
		{name: "not authenticated", messages: table, err: domain.ErrNotAuthenticated, want: NotAuthenticatedMessage},
		{name: "unclassified error is transport", messages: table, err: errors.New("dial tcp: refused"), want: TransportMessage},
		{
			name:     "transport ignores server first",
			messages: serverFirst("generic", nil),
			err:      &domain.Failure{Kind: domain.KindTransport, Message: "ignored"},
			want:     TransportMessage,
		},
		{name: "validation shows the server text", messages: table, err: failure(domain.KindValidation, "Amount too high"), want: "Amount too high"},
		{name: "validation without text uses fallback", messages: table, err: failure(domain.KindValidation, ""), want: "generic"},
		{name: "kind override", messages: table, err: failure(domain.KindConflict, "dup"), want: "already exists"},
		{name: "server text hidden for other kinds", messages: table, err: failure(domain.KindServer, "NullPointerException"), want: "generic"},
		{name: "server first shows the server text", messages: serverFirst("generic", nil), err: failure(domain.KindServer, "Insufficient balance"), want: "Insufficient balance"},
		{
			name:     "server first falls back to kind",
			messages: serverFirst("generic", map[domain.FailureKind]string{domain.KindNotFound: "missing"}),
			err:      failure(domain.KindNotFound, ""),
			want:     "missing",
		},
		{name: "wrapped failure", messages: table, err: fmt.Errorf("load: %w", failure(domain.KindConflict, "")), want: "already exists"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.messages.For(tc.err))
		})
	}
}
