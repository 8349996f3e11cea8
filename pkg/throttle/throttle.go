// Package throttle bounds the rate of requests served by the HTTP
// surface. The limit can be changed at runtime without restarting.
package throttle

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

type Limiter struct {
	limiter *rate.Limiter
	updates chan rateParams
}

type rateParams struct {
	interval time.Duration
	burst    int
}

func New(interval time.Duration, burst int) *Limiter {
	limiter := rate.NewLimiter(rate.Every(interval), burst)
	updates := make(chan rateParams)
	go func() {
		for params := range updates {
			limiter.SetLimit(rate.Every(params.interval))
			limiter.SetBurst(params.burst)
		}
	}()
	return &Limiter{limiter: limiter, updates: updates}
}

func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}

// Update replaces the current rate parameters.
func (l *Limiter) Update(interval time.Duration, burst int) {
	l.updates <- rateParams{interval: interval, burst: burst}
}

// Middleware rejects requests over the configured rate with 429.
func (l *Limiter) Middleware(next http.Handler) http.Handler {
	f := func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow() {
			http.Error(w, http.StatusText(http.StatusTooManyRequests),
				http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(f)
}
