// Command modelcheck sanity-checks a model artifact before deployment. It
// loads the artifact through the same path the API uses, classifies a grid of
// representative weather days, and verifies the probability contract plus a
// few common-sense risk orderings.
//
// Usage:
//
//	go run ./cmd/modelcheck -model data/model/heatwave_risk_model.json
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/couchcryptid/heatwave-risk-api/internal/domain"
	"github.com/couchcryptid/heatwave-risk-api/internal/model"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func (p *phase) report() {
	if p.passed() {
		fmt.Printf("PASS  %s\n", p.name)
		return
	}
	fmt.Printf("FAIL  %s\n", p.name)
	for _, e := range p.errors {
		fmt.Printf("      %s\n", e)
	}
}

// sampleDay pairs a feature vector with a human-readable description.
type sampleDay struct {
	desc     string
	features domain.FeatureVector
}

var samples = []sampleDay{
	{desc: "mild spring day", features: domain.NewFeatureVector(21, 11, 14, 22, 6)},
	{desc: "warm summer day", features: domain.NewFeatureVector(31, 20, 12, 20, 1)},
	{desc: "hot dry day", features: domain.NewFeatureVector(38, 26, 8, 12, 0)},
	{desc: "extreme heat day", features: domain.NewFeatureVector(46, 33, 5, 8, 0)},
	{desc: "all-zero input", features: domain.NewFeatureVector(0, 0, 0, 0, 0)},
}

func main() {
	modelPath := flag.String("model", "data/model/heatwave_risk_model.json", "path to the model artifact")
	flag.Parse()

	if code := run(*modelPath); code != 0 {
		os.Exit(code)
	}
}

func run(modelPath string) int {
	clf, err := model.Load(modelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load model: %v\n", err)
		return 1
	}
	fmt.Printf("loaded %s\n\n", modelPath)

	phases := []*phase{
		checkDistributions(clf),
		checkOrdering(clf),
	}

	exitCode := 0
	for _, p := range phases {
		p.report()
		if !p.passed() {
			exitCode = 1
		}
	}
	return exitCode
}

// checkDistributions verifies every sample yields a proper probability
// distribution whose argmax matches the returned class code.
func checkDistributions(clf *model.SoftmaxClassifier) *phase {
	p := &phase{name: "probability contract"}

	for _, s := range samples {
		code, dist, err := clf.Classify(s.features)
		if err != nil {
			p.errorf("%s: classify: %v", s.desc, err)
			continue
		}
		if math.Abs(dist.Sum()-1.0) > 1e-6 {
			p.errorf("%s: probabilities sum to %.9f", s.desc, dist.Sum())
		}
		if dist.ArgMax() != code {
			p.errorf("%s: argmax %d does not match code %d", s.desc, dist.ArgMax(), code)
		}
		level, ok := domain.RiskFromCode(code)
		if !ok {
			p.errorf("%s: out-of-range class code %d", s.desc, code)
			continue
		}
		fmt.Printf("  %-18s -> %-6s (low=%.3f medium=%.3f high=%.3f)\n",
			s.desc, level, dist[0], dist[1], dist[2])
	}
	return p
}

// checkOrdering verifies hotter days never classify below cooler ones.
func checkOrdering(clf *model.SoftmaxClassifier) *phase {
	p := &phase{name: "risk ordering"}

	mildCode, _, err := clf.Classify(samples[0].features)
	if err != nil {
		p.errorf("classify mild day: %v", err)
		return p
	}
	extremeCode, _, err := clf.Classify(samples[3].features)
	if err != nil {
		p.errorf("classify extreme day: %v", err)
		return p
	}

	if extremeCode < mildCode {
		p.errorf("extreme heat day classified below mild day (%d < %d)", extremeCode, mildCode)
	}
	if extremeCode != domain.RiskHigh.Code() {
		p.errorf("extreme heat day classified as code %d, want %d", extremeCode, domain.RiskHigh.Code())
	}
	return p
}
