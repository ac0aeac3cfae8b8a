package domain

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindForStatus(t *testing.T) {
	cases := map[int]FailureKind{
		http.StatusBadRequest:          KindValidation,
		http.StatusUnauthorized:        KindAuthorization,
		http.StatusForbidden:           KindAuthorization,
		http.StatusNotFound:            KindNotFound,
		http.StatusConflict:            KindConflict,
		http.StatusInternalServerError: KindServer,
		http.StatusBadGateway:          KindServer,
	}
	for status, want := range cases {
		assert.Equal(t, want, KindForStatus(status), "status %d", status)
	}
}

func TestFailureIs(t *testing.T) {
	err := fmt.Errorf("delete client: %w", &Failure{Op: "agent.DeleteClient", Kind: KindConflict, Status: 409})

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))

	f := Classify(context.DeadlineExceeded)
	require.NotNil(t, f)
	assert.Equal(t, KindTransport, f.Kind)
	assert.ErrorIs(t, f, context.DeadlineExceeded)

	inner := &Failure{Op: "client.Transfer", Kind: KindAuthorization, Status: 403, Message: "Insufficient funds"}
	assert.Same(t, inner, Classify(fmt.Errorf("wrapped: %w", inner)))
}

func TestFailureError(t *testing.T) {
	f := &Failure{Op: "auth.Login", Kind: KindAuthorization, Status: 401, Message: "Bad credentials"}
	assert.Equal(t, "auth.Login: authorization (HTTP 401): Bad credentials", f.Error())

	f = &Failure{Op: "auth.Login", Kind: KindTransport, Err: errors.New("connection refused")}
	assert.Equal(t, "auth.Login: transport: connection refused", f.Error())
}

func TestTimestampJSON(t *testing.T) {
	var got struct {
		A Timestamp `json:"a"`
		B Timestamp `json:"b"`
		C Timestamp `json:"c"`
	}
	err := jsonUnmarshal(`{"a":"2024-03-01T10:15:30","b":"2024-03-01T10:15:30.123+01:00","c":null}`, &got)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC), got.A.Time)
	assert.Equal(t, 123*time.Millisecond, time.Duration(got.B.Nanosecond()))
	assert.True(t, got.C.IsZero())

	assert.Error(t, jsonUnmarshal(`{"a":"yesterday"}`, &got))
}
