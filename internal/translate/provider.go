package translate

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/jhemmerl/lingopulse/internal/domain"
)

const (
	breakerFailureThreshold = 5
	breakerOpenDuration     = 30 * time.Second
)

type breakerTranslator struct {
	inner domain.Translator
	cb    *gobreaker.CircuitBreaker
}

// WithBreaker wraps a translator in a circuit breaker. After five consecutive
// failures the breaker opens for 30 seconds; calls during that window fail
// fast, which the dispatcher treats like any other per-target failure.
func WithBreaker(inner domain.Translator) domain.Translator {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "translator",
		MaxRequests: 1,
		Timeout:     breakerOpenDuration,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
	})
	return &breakerTranslator{inner: inner, cb: cb}
}

func (t *breakerTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	out, err := t.cb.Execute(func() (interface{}, error) {
		return t.inner.Translate(ctx, text, sourceLang, targetLang)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

type limitedTranslator struct {
	inner   domain.Translator
	limiter *rate.Limiter
}

// WithRateLimit bounds outbound request rate across all targets.
func WithRateLimit(inner domain.Translator, rps float64, burst int) domain.Translator {
	return &limitedTranslator{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (t *limitedTranslator) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("translation rate limit: %w", err)
	}
	return t.inner.Translate(ctx, text, sourceLang, targetLang)
}
