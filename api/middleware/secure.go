package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureHeaders sets the standard hardening headers. HSTS and the HTTPS
// redirect are only enabled in production, behind the TLS-terminating proxy.
func SecureHeaders(production bool) func(http.Handler) http.Handler {
	return secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		SSLRedirect:           production,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:            stsSeconds(production),
		IsDevelopment:         !production,
	}).Handler
}

func stsSeconds(production bool) int64 {
	if production {
		return 31536000
	}
	return 0
}
