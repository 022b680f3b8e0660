// Package model loads and evaluates the pre-trained heatwave risk classifier.
//
// The serialized artifact is a standardized multinomial logistic regression
// exported from the offline training pipeline as JSON. Any implementation of
// the inference Classifier contract (5 numeric inputs → 3-class distribution)
// is substitutable; this package provides the one the service ships with.
package model

import (
	"fmt"

	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
)

// ArtifactFormat identifies the serialization this package understands.
const ArtifactFormat = "softmax-linear/v1"

// Artifact is the on-disk representation of a trained classifier.
// Coefficients are indexed [class][feature]; Mean and Scale are the
// per-feature standardization parameters fitted during training.
type Artifact struct {
	Format       string      `json:"format"`
	TrainedAt    string      `json:"trained_at,omitempty"`
	Classes      []string    `json:"classes"`
	Features     []string    `json:"features"`
	Mean         []float64   `json:"mean"`
	Scale        []float64   `json:"scale"`
	Coefficients [][]float64 `json:"coefficients"`
	Intercepts   []float64   `json:"intercepts"`
}

// Validate checks the artifact's shape against the model contract: class
// order Low/Medium/High, feature columns in training order, and consistent
// dimensions. A reordered feature list is rejected here because nothing at
// inference time could detect it.
func (a *Artifact) Validate() error {
	if a.Format != ArtifactFormat {
		return fmt.Errorf("unsupported artifact format %q (want %q)", a.Format, ArtifactFormat)
	}

	if len(a.Classes) != domain.ClassCount {
		return fmt.Errorf("artifact has %d classes, want %d", len(a.Classes), domain.ClassCount)
	}
	for i, class := range a.Classes {
		level, _ := domain.RiskFromCode(i)
		if class != string(level) {
			return fmt.Errorf("artifact class %d is %q, want %q", i, class, level)
		}
	}

	if len(a.Features) != domain.FeatureCount {
		return fmt.Errorf("artifact has %d features, want %d", len(a.Features), domain.FeatureCount)
	}
	for i, name := range a.Features {
		if name != domain.FeatureNames[i] {
			return fmt.Errorf("artifact feature %d is %q, want %q: feature order must match training order", i, name, domain.FeatureNames[i])
		}
	}

	if len(a.Mean) != domain.FeatureCount || len(a.Scale) != domain.FeatureCount {
		return fmt.Errorf("standardization parameters must have %d entries", domain.FeatureCount)
	}
	for i, s := range a.Scale {
		if s == 0 {
			return fmt.Errorf("scale[%d] is zero", i)
		}
	}

	if len(a.Coefficients) != domain.ClassCount {
		return fmt.Errorf("artifact has %d coefficient rows, want %d", len(a.Coefficients), domain.ClassCount)
	}
	for i, row := range a.Coefficients {
		if len(row) != domain.FeatureCount {
			return fmt.Errorf("coefficient row %d has %d entries, want %d", i, len(row), domain.FeatureCount)
		}
	}

	if len(a.Intercepts) != domain.ClassCount {
		return fmt.Errorf("artifact has %d intercepts, want %d", len(a.Intercepts), domain.ClassCount)
	}

	return nil
}
