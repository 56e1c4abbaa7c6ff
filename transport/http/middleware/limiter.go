package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"trek/shared"
	"trek/shared/cache"
	"trek/shared/constant"
	"trek/transport/http/response"
)

const cacheKeyRateLimit = "limiter"

// RateLimit throttles per client and per route. The verification endpoints
// get their own windows so hammering resend does not eat the draft budget.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds
			cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, r.URL.Path, a.getClientIP(r), a.getUA(r))

			count, ok := a.requestCount(r, cacheKey)
			if !ok {
				// Cache down, let the request through
				next.ServeHTTP(w, r)

				return
			}

			if count > maxReqs {
				response.WithRequestLimitExceeded(w)

				return
			}

			if err := a.cache.Save(r.Context(), cacheKey, count, windowSecs); err != nil {
				next.ServeHTTP(w, r)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(w, r)
		})
	}
}

// requestCount returns the incremented request count for the window, or
// ok=false when the cache is unreachable.
func (a *appMiddleware) requestCount(r *http.Request, cacheKey string) (int, bool) {
	var count int

	err := a.cache.Get(r.Context(), cacheKey, &count)
	if err != nil {
		if errors.Is(err, cache.Nil) {
			return 1, true
		}

		return 0, false
	}

	return count + 1, true
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		// First hop in the X-Forwarded-For chain is the client
		first, _, _ := strings.Cut(xff, ",")

		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	return r.RemoteAddr
}
