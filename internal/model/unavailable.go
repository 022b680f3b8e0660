package model

import (
	"errors"

	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
)

// Unavailable is the classifier the service falls back to when no artifact
// could be loaded: the process keeps serving, readiness fails, and every
// inference request returns the load error. There is no automatic reload.
type Unavailable struct {
	err error
}

// NewUnavailable wraps the artifact load failure.
func NewUnavailable(err error) Unavailable {
	return Unavailable{err: err}
}

// Ready returns the load failure as a *domain.ModelUnavailableError.
func (u Unavailable) Ready() error {
	return u.modelErr()
}

// Classify always fails with the load error.
func (u Unavailable) Classify(domain.FeatureVector) (int, domain.Distribution, error) {
	return 0, domain.Distribution{}, u.modelErr()
}

func (u Unavailable) modelErr() error {
	var modelErr *domain.ModelUnavailableError
	if errors.As(u.err, &modelErr) {
		return modelErr
	}
	return &domain.ModelUnavailableError{Err: u.err}
}
