package web

import (
	"net"
	"net/http"

	"github.com/JonMunkholm/alcheck/internal/core"
)

// withClientIP stores the caller's address for rate limiting and lookup
// logs. RemoteAddr has already been rewritten by TrustedRealIP.
func withClientIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}
		next.ServeHTTP(w, r.WithContext(core.ContextWithClientIP(r.Context(), ip)))
	})
}
