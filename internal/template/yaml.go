package template

import (
	"fmt"
	"os"

	"github.com/kmadrilejo/atelier/internal/domain"
	"gopkg.in/yaml.v3"
)

// TemplateFile is the on-disk YAML form of a template registration.
type TemplateFile struct {
	ID       string          `yaml:"id"`
	Template ProjectTemplate `yaml:",inline"`
}

// LoadFile reads and validates a template definition from a YAML file.
func LoadFile(path string) (*TemplateFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template file: %w", err)
	}

	var file TemplateFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing template file %s: %w", path, err)
	}
	if file.ID == "" {
		return nil, fmt.Errorf("template file %s: id is required: %w", path, domain.ErrValidation)
	}
	if err := Validate(&file.Template); err != nil {
		return nil, fmt.Errorf("template file %s: %w", path, err)
	}
	return &file, nil
}
