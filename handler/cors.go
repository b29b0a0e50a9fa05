package handler

import (
	"net/http"

	"github.com/go-chi/cors"
)

const corsRejectedMessage = "CORS not allowed for this origin"

// OriginPolicy reports whether a request carrying the given Origin header is
// admitted. An empty origin means the header was absent.
type OriginPolicy func(origin string) bool

// NewOriginPolicy admits requests without an Origin header and requests whose
// origin is an exact member of allowed.
func NewOriginPolicy(allowed []string) OriginPolicy {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(origin string) bool {
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// admitOrigins rejects requests from origins outside the policy before any route
// runs. Admitted requests get their CORS headers, and preflights their answer,
// from go-chi/cors.
func admitOrigins(policy OriginPolicy) func(http.Handler) http.Handler {
	withHeaders := cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return policy(origin)
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})

	return func(next http.Handler) http.Handler {
		h := withHeaders(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if !policy(origin) {
				log.Warnf("%s -- %s -- rejected origin %q", r.RemoteAddr, r.Method, origin)
				writeJSON(w, http.StatusForbidden, ErrorResponse{Error: corsRejectedMessage})
				return
			}
			h.ServeHTTP(w, r)
		})
	}
}
