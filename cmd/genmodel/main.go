// Command genmodel writes the bundled heatwave risk model artifact to disk.
// The coefficients come from an offline training run; regenerating the file
// keeps the committed artifact in sync with the loader's expected format.
//
// Usage:
//
//	go run ./cmd/genmodel -out data/model/heatwave_risk_model.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/couchcryptid/heatwave-risk-api/internal/model"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "data/model/heatwave_risk_model.json", "output path for the model artifact")
	flag.Parse()

	artifact := model.DefaultArtifact()
	if err := artifact.Validate(); err != nil {
		return fmt.Errorf("default artifact invalid: %w", err)
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}

	fmt.Printf("wrote %s (%d classes, %d features)\n", *out, len(artifact.Classes), len(artifact.Features))
	return nil
}
