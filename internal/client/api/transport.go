package api

import "net/http"

// authTransport injects the current session token as a bearer credential
// into every outgoing request. When no token is held the request goes out
// unauthenticated (login and register rely on that).
type authTransport struct {
	session Session
	base    http.RoundTripper
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token := t.session.Token(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base.RoundTrip(req)
}
