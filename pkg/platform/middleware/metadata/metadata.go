package metadata

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"carebase/pkg/requestcontext"
)

// ClientMetadata extracts the client IP, raw User-Agent, and a parsed browser
// description from the request and adds them to the context for audit
// enrichment. Apply early in the chain.
func ClientMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = requestcontext.WithClientIP(ctx, ClientIPFromRequest(r))

		ua := r.Header.Get("User-Agent")
		ctx = requestcontext.WithUserAgent(ctx, ua)
		ctx = requestcontext.WithBrowser(ctx, browserOf(ua))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// browserOf condenses a User-Agent string into "Name Version" for audit rows.
func browserOf(ua string) string {
	if ua == "" {
		return ""
	}
	parsed := useragent.New(ua)
	name, version := parsed.Browser()
	if name == "" {
		return ""
	}
	if version == "" {
		return name
	}
	return name + " " + version
}

// ClientIPFromRequest extracts the real client IP, handling proxies and load
// balancers.
func ClientIPFromRequest(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs; the first is the client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "ip:port" (or "[::1]:port" for IPv6); strip the port.
	if addr := r.RemoteAddr; addr != "" {
		if idx := strings.LastIndex(addr, ":"); idx != -1 {
			return addr[:idx]
		}
		return addr
	}

	return "unknown"
}
