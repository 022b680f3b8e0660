package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
)

// SoftmaxClassifier evaluates a standardized multinomial logistic regression.
type SoftmaxClassifier struct {
	artifact Artifact
}

// New builds a classifier from an in-memory artifact.
func New(artifact Artifact) (*SoftmaxClassifier, error) {
	if err := artifact.Validate(); err != nil {
		return nil, err
	}
	return &SoftmaxClassifier{artifact: artifact}, nil
}

// Load reads and validates a classifier artifact from disk. Any failure is
// returned as a *domain.ModelUnavailableError so callers can degrade into the
// serve-but-fail mode instead of crashing.
func Load(path string) (*SoftmaxClassifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ModelUnavailableError{Err: fmt.Errorf("read artifact: %w", err)}
	}

	var artifact Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, &domain.ModelUnavailableError{Err: fmt.Errorf("parse artifact %s: %w", path, err)}
	}

	clf, err := New(artifact)
	if err != nil {
		return nil, &domain.ModelUnavailableError{Err: fmt.Errorf("invalid artifact %s: %w", path, err)}
	}
	return clf, nil
}

// Ready reports whether the classifier can serve predictions. Always nil for
// a loaded artifact.
func (c *SoftmaxClassifier) Ready() error { return nil }

// Classify evaluates the model on a feature vector and returns the predicted
// class code together with the full class distribution. The code is always
// the argmax of the distribution and the distribution sums to 1 up to
// floating-point error.
func (c *SoftmaxClassifier) Classify(features domain.FeatureVector) (int, domain.Distribution, error) {
	var logits [domain.ClassCount]float64
	for class := 0; class < domain.ClassCount; class++ {
		z := c.artifact.Intercepts[class]
		for i := 0; i < domain.FeatureCount; i++ {
			standardized := (features[i] - c.artifact.Mean[i]) / c.artifact.Scale[i]
			z += c.artifact.Coefficients[class][i] * standardized
		}
		logits[class] = z
	}

	dist := softmax(logits)
	return dist.ArgMax(), dist, nil
}

// softmax converts logits to probabilities. The max logit is subtracted first
// so the exponentials cannot overflow.
func softmax(logits [domain.ClassCount]float64) domain.Distribution {
	maxLogit := logits[0]
	for _, z := range logits[1:] {
		if z > maxLogit {
			maxLogit = z
		}
	}

	var dist domain.Distribution
	var sum float64
	for i, z := range logits {
		e := math.Exp(z - maxLogit)
		dist[i] = e
		sum += e
	}
	for i := range dist {
		dist[i] /= sum
	}
	return dist
}
