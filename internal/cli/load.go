package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kjorgen/schedcore/pkg/model"
)

// loadInstance reads an instance file. JSON is a syntactic subset of YAML,
// so a single yaml.Unmarshal handles both formats; neither the file's
// extension nor its content is inspected to pick a format.
func loadInstance(path string) (model.Instance, error) {
	var inst model.Instance

	data, err := os.ReadFile(path)
	if err != nil {
		return inst, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &inst); err != nil {
		return inst, fmt.Errorf("parse %s: %w", path, err)
	}

	return inst, nil
}
