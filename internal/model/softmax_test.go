package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
)

// testArtifact builds a minimal valid artifact whose only signal is the max
// temperature: positive values push toward High, negative toward Low.
func testArtifact() Artifact {
	return Artifact{
		Format:   ArtifactFormat,
		Classes:  []string{"Low", "Medium", "High"},
		Features: domain.FeatureNames[:],
		Mean:     []float64{0, 0, 0, 0, 0},
		Scale:    []float64{1, 1, 1, 1, 1},
		Coefficients: [][]float64{
			{-1, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
			{1, 0, 0, 0, 0},
		},
		Intercepts: []float64{0, 0, 0},
	}
}

func writeArtifact(t *testing.T, artifact Artifact) string {
	t.Helper()
	data, err := json.Marshal(artifact)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestSoftmaxClassifier_Classify(t *testing.T) {
	clf, err := New(testArtifact())
	require.NoError(t, err)

	cases := []struct {
		name     string
		features domain.FeatureVector
		want     domain.RiskLevel
	}{
		{name: "hot day", features: domain.NewFeatureVector(5, 0, 0, 0, 0), want: domain.RiskHigh},
		{name: "cold day", features: domain.NewFeatureVector(-5, 0, 0, 0, 0), want: domain.RiskLow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, dist, err := clf.Classify(tc.features)
			require.NoError(t, err)

			level, ok := domain.RiskFromCode(code)
			require.True(t, ok)
			assert.Equal(t, tc.want, level)
			assert.Equal(t, code, dist.ArgMax())
			assert.InDelta(t, 1.0, dist.Sum(), 1e-6)
		})
	}
}

func TestSoftmaxClassifier_DistributionContract(t *testing.T) {
	clf, err := New(DefaultArtifact())
	require.NoError(t, err)

	inputs := []domain.FeatureVector{
		domain.NewFeatureVector(22, 12, 18, 30, 4),
		domain.NewFeatureVector(35, 24, 10, 15, 0),
		domain.NewFeatureVector(44, 31, 6, 9, 0),
		domain.NewFeatureVector(0, 0, 0, 0, 0),
	}

	for _, features := range inputs {
		code, dist, err := clf.Classify(features)
		require.NoError(t, err)

		assert.InDelta(t, 1.0, dist.Sum(), 1e-6)
		assert.Equal(t, dist.ArgMax(), code)
		for class, p := range dist {
			assert.GreaterOrEqual(t, p, 0.0, "class %d", class)
			assert.LessOrEqual(t, p, 1.0, "class %d", class)
		}

		_, ok := domain.RiskFromCode(code)
		assert.True(t, ok)
	}
}

func TestSoftmaxClassifier_RiskOrdering(t *testing.T) {
	clf, err := New(DefaultArtifact())
	require.NoError(t, err)

	// A scorching day must not classify below a mild one.
	mildCode, _, err := clf.Classify(domain.NewFeatureVector(21, 11, 14, 22, 6))
	require.NoError(t, err)
	hotCode, _, err := clf.Classify(domain.NewFeatureVector(46, 33, 5, 8, 0))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, hotCode, mildCode)
	assert.Equal(t, domain.RiskHigh.Code(), hotCode)
}

func TestLoad_RoundTrip(t *testing.T) {
	path := writeArtifact(t, DefaultArtifact())

	clf, err := Load(path)
	require.NoError(t, err)
	assert.NoError(t, clf.Ready())

	code, dist, err := clf.Classify(domain.NewFeatureVector(35, 24, 10, 15, 0))
	require.NoError(t, err)
	assert.Equal(t, dist.ArgMax(), code)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)

	var modelErr *domain.ModelUnavailableError
	require.ErrorAs(t, err, &modelErr)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("not-json{{{"), 0o644))

	_, err := Load(path)
	var modelErr *domain.ModelUnavailableError
	require.ErrorAs(t, err, &modelErr)
}

func TestLoad_RejectsReorderedFeatures(t *testing.T) {
	artifact := testArtifact()
	artifact.Features = []string{
		"temperature_2m_min", // swapped with max
		"temperature_2m_max",
		"wind_speed_10m_max",
		"wind_gusts_10m_max",
		"precipitation_sum",
	}

	_, err := Load(writeArtifact(t, artifact))
	var modelErr *domain.ModelUnavailableError
	require.ErrorAs(t, err, &modelErr)
	assert.Contains(t, err.Error(), "feature order")
}

func TestArtifact_Validate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Artifact)
		want   string
	}{
		{
			name:   "wrong format",
			mutate: func(a *Artifact) { a.Format = "pickle/v1" },
			want:   "unsupported artifact format",
		},
		{
			name:   "wrong class order",
			mutate: func(a *Artifact) { a.Classes = []string{"High", "Medium", "Low"} },
			want:   "class 0",
		},
		{
			name:   "missing class",
			mutate: func(a *Artifact) { a.Classes = a.Classes[:2] },
			want:   "classes",
		},
		{
			name:   "short coefficient row",
			mutate: func(a *Artifact) { a.Coefficients[1] = []float64{1, 2} },
			want:   "coefficient row 1",
		},
		{
			name:   "zero scale",
			mutate: func(a *Artifact) { a.Scale[3] = 0 },
			want:   "scale[3]",
		},
		{
			name:   "missing intercept",
			mutate: func(a *Artifact) { a.Intercepts = a.Intercepts[:1] },
			want:   "intercepts",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			artifact := testArtifact()
			tc.mutate(&artifact)

			err := artifact.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestUnavailable_AlwaysFails(t *testing.T) {
	clf := NewUnavailable(&domain.ModelUnavailableError{Err: os.ErrNotExist})

	require.Error(t, clf.Ready())

	_, _, err := clf.Classify(domain.NewFeatureVector(35, 24, 10, 15, 0))
	var modelErr *domain.ModelUnavailableError
	require.ErrorAs(t, err, &modelErr)
}
