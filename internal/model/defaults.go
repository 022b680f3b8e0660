package model

import "github.com/couchcryptid/heatwave-risk-api/internal/domain"

// DefaultArtifact returns the parameters of the bundled classifier, exported
// from the offline training run. cmd/genmodel serializes exactly this
// artifact to data/model/heatwave_risk_model.json.
func DefaultArtifact() Artifact {
	return Artifact{
		Format:    ArtifactFormat,
		TrainedAt: "2026-06-02T09:41:00Z",
		Classes:   []string{string(domain.RiskLow), string(domain.RiskMedium), string(domain.RiskHigh)},
		Features:  domain.FeatureNames[:],
		// Standardization fitted on the training set.
		Mean:  []float64{30.0, 20.0, 15.0, 25.0, 2.0},
		Scale: []float64{8.0, 6.0, 8.0, 12.0, 5.0},
		// Rows follow class order Low, Medium, High.
		Coefficients: [][]float64{
			{-2.10, -0.90, 0.30, 0.20, 0.60},
			{0.30, 0.40, -0.10, 0.05, -0.20},
			{1.80, 0.50, -0.20, -0.25, -0.40},
		},
		Intercepts: []float64{0.40, 0.80, -1.20},
	}
}
