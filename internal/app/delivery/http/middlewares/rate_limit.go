package middlewares

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"clinicdesk-service/internal/app/models"
	"clinicdesk-service/internal/pkg/constvars"
	"clinicdesk-service/internal/pkg/exceptions"
	"clinicdesk-service/internal/pkg/utils"

	"golang.org/x/time/rate"
)

const (
	uploadCounterKeyPrefix = "ratelimit:upload:count:"
	uploadBlockKeyPrefix   = "ratelimit:upload:block:"
)

type uploadLimiters struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perSec   rate.Limit
	burst    int
}

func (l *uploadLimiters) get(subject string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	limiter, ok := l.limiters[subject]
	if !ok {
		limiter = rate.NewLimiter(l.perSec, l.burst)
		l.limiters[subject] = limiter
	}
	return limiter
}

// UploadRateLimitMiddleware throttles uploads per principal with a
// fixed window in redis, shared across instances. A caller that blows the
// window is blocked for the configured cool-off. A per-subject x/time
// limiter in front absorbs same-instance bursts without a redis round
// trip per request; one caller's burst never charges another's budget.
func (m *Middlewares) UploadRateLimitMiddleware() func(http.Handler) http.Handler {
	burst := m.InternalConfig.App.UploadMaxRequestsPerMinute
	if burst < 1 {
		burst = 1
	}
	limiters := &uploadLimiters{
		limiters: make(map[string]*rate.Limiter),
		perSec:   rate.Limit(float64(m.InternalConfig.App.UploadMaxRequestsPerMinute) / 60.0),
		burst:    burst,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, _ := r.Context().Value(constvars.CONTEXT_RESOLVED_IDENTITY_KEY).(*models.ResolvedIdentity)
			subject := r.RemoteAddr
			if identity != nil && identity.Principal != nil {
				subject = identity.Principal.ID
			}

			if !limiters.get(subject).Allow() {
				m.rejectThrottled(w, r, m.InternalConfig.App.UploadBlockTimeInMinute)
				return
			}

			blocked, err := m.RedisRepository.Get(r.Context(), uploadBlockKeyPrefix+subject)
			if err != nil {
				utils.BuildErrorResponse(m.Log, w, err)
				return
			}
			if blocked != "" {
				m.rejectThrottled(w, r, m.InternalConfig.App.UploadBlockTimeInMinute)
				return
			}

			count, err := m.RedisRepository.IncrementWithTTL(r.Context(), uploadCounterKeyPrefix+subject, time.Minute)
			if err != nil {
				utils.BuildErrorResponse(m.Log, w, err)
				return
			}
			if count > m.InternalConfig.App.UploadMaxRequestsPerMinute {
				blockFor := time.Duration(m.InternalConfig.App.UploadBlockTimeInMinute) * time.Minute
				if err := m.RedisRepository.Set(r.Context(), uploadBlockKeyPrefix+subject, "1", blockFor); err != nil {
					utils.BuildErrorResponse(m.Log, w, err)
					return
				}
				m.rejectThrottled(w, r, m.InternalConfig.App.UploadBlockTimeInMinute)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (m *Middlewares) rejectThrottled(w http.ResponseWriter, r *http.Request, blockMinutes int) {
	w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(blockMinutes*60))
	utils.BuildErrorResponse(m.Log, w, exceptions.ErrTooManyRequests(
		fmt.Errorf("upload window exceeded, blocked for %d minutes", blockMinutes)))
}
