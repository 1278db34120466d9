package middleware

import (
	"net/http"

	"github.com/corkboard-dev/corkboard/internal/middleware/ratelimiter"
	"github.com/corkboard-dev/corkboard/internal/utils"
)

// RateLimit throttles requests per identity. Admins are exempt.
func RateLimit(rl *ratelimiter.KeyedLimiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := GetUserFromContext(r); user != nil && user.Admin {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, err)
				return
			}
			if !rl.Allow(identity) {
				http.Error(w, "Rate limit exceeded, try again later", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GlobalRateLimit throttles all requests through a single bucket.
func GlobalRateLimit(rl *ratelimiter.KeyedLimiter) func(http.Handler) http.Handler {
	return RateLimit(rl, func(r *http.Request) (string, error) { return "global", nil })
}

// GetIP is the identity function for unauthenticated endpoints.
func GetIP(r *http.Request) (string, error) {
	return utils.GetIP(r)
}

// GetUserIdFromContext keys the limiter by the authenticated user.
func GetUserIdFromContext(r *http.Request) (string, error) {
	user := GetUserFromContext(r)
	if user == nil {
		// Fall back to IP for requests that slipped past auth
		return utils.GetIP(r)
	}
	return "user_" + user.Id.String(), nil
}
