package gateway

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeAttachesBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://bank.test/api/client/profile", nil)

	out := Authorize(req, "abc")

	assert.Equal(t, "Bearer abc", out.Header.Get("Authorization"))
	assert.NotSame(t, req, out)
	_, present := req.Header["Authorization"]
	assert.False(t, present, "original request must not be modified")
}

func TestAuthorizeWithoutToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "http://bank.test/api/v1/auth/login", nil)

	out := Authorize(req, "")

	assert.Same(t, req, out)
	_, present := out.Header["Authorization"]
	assert.False(t, present)
}

type recordingTransport struct {
	seen []*http.Request
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.seen = append(r.seen, req)
	return &http.Response{StatusCode: http.StatusNoContent, Body: http.NoBody, Request: req}, nil
}

func TestAuthorizerReadsTokenPerRequest(t *testing.T) {
	token := ""
	rec := &recordingTransport{}
	a := &Authorizer{Token: func() string { return token }, Next: rec}

	for _, tok := range []string{"", "abc", ""} {
		token = tok
		req := httptest.NewRequest(http.MethodGet, "http://bank.test/api/agent/clients", nil)
		resp, err := a.RoundTrip(req)
		require.NoError(t, err)
		resp.Body.Close()
	}

	require.Len(t, rec.seen, 3)
	assert.Empty(t, rec.seen[0].Header.Get("Authorization"))
	assert.Equal(t, "Bearer abc", rec.seen[1].Header.Get("Authorization"))
	assert.Empty(t, rec.seen[2].Header.Get("Authorization"))
}
