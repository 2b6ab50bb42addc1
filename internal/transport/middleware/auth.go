package middleware

import (
	"net/http"

	"github.com/mudithakuruppu/employeemanagement-ui/internal"
)

// BearerToken adds "Authorization: Bearer <token>" when a token is available.
// A token pinned on the request context wins over source.
func BearerToken(source func() string) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			token := internal.TokenFromContext(r.Context())
			if token == "" && source != nil {
				token = source()
			}
			if token == "" || r.Header.Get("Authorization") != "" {
				return next.RoundTrip(r)
			}

			out := r.Clone(r.Context())
			out.Header.Set("Authorization", "Bearer "+token)
			return next.RoundTrip(out)
		})
	}
}
