package gateway

import "net/http"

// Authorize returns req carrying "Authorization: Bearer <token>". Without a
// token req is returned as is. req itself is never modified.
func Authorize(req *http.Request, token string) *http.Request {
	if token == "" {
		return req
	}
	out := req.Clone(req.Context())
	out.Header.Set("Authorization", "Bearer "+token)
	return out
}

// Authorizer attaches the current session token to every outbound request.
type Authorizer struct {
	Token func() string
	Next  http.RoundTripper
}

func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	next := a.Next
	if next == nil {
		next = http.DefaultTransport
	}
	token := ""
	if a.Token != nil {
		token = a.Token()
	}
	return next.RoundTrip(Authorize(req, token))
}
