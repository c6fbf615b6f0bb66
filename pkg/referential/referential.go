// Package referential resolves registry nomenclature codes (legal forms,
// director roles) to human-readable labels from a YAML referential file.
package referential

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CodeLabel is one code-to-label entry of the referential.
type CodeLabel struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

// ReferentialConfig is the referential file layout.
type ReferentialConfig struct {
	LegalForms []CodeLabel `yaml:"legal_forms"`
	Roles      []CodeLabel `yaml:"roles"`
}

// Resolver resolves nomenclature codes to labels.
type Resolver struct {
	config     ReferentialConfig
	legalForms map[string]string
	roles      map[string]string
}

// NewResolver creates a Resolver from a YAML referential file.
func NewResolver(configPath string) (*Resolver, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read referential file: %w", err)
	}

	var config ReferentialConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return newFromConfig(config), nil
}

func newFromConfig(config ReferentialConfig) *Resolver {
	resolver := &Resolver{
		config:     config,
		legalForms: make(map[string]string, len(config.LegalForms)),
		roles:      make(map[string]string, len(config.Roles)),
	}
	for _, entry := range config.LegalForms {
		resolver.legalForms[entry.Code] = entry.Label
	}
	for _, entry := range config.Roles {
		resolver.roles[entry.Code] = entry.Label
	}
	return resolver
}

// LegalFormLabel returns the label of a legal form code. Unknown codes are
// returned as-is so callers can always print something.
func (r *Resolver) LegalFormLabel(code string) string {
	if label, ok := r.legalForms[code]; ok {
		return label
	}
	return code
}

// RoleLabel returns the label of a director role code, or the code itself
// when unknown.
func (r *Resolver) RoleLabel(code string) string {
	if label, ok := r.roles[code]; ok {
		return label
	}
	return code
}

// HasLegalForm checks whether a legal form code is known.
func (r *Resolver) HasLegalForm(code string) bool {
	_, ok := r.legalForms[code]
	return ok
}

// HasRole checks whether a role code is known.
func (r *Resolver) HasRole(code string) bool {
	_, ok := r.roles[code]
	return ok
}
