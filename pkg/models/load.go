package models

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs the struct validation rules declared on the models.
func Validate(v any) error {
	return validate.Struct(v)
}

// Parse decodes a YAML (or JSON) document into out and validates it.
func Parse[T any](contents []byte, out *T) error {
	if err := yaml.Unmarshal(contents, out); err != nil {
		return err
	}
	return Validate(out)
}

func LoadTemplate(path string) (PipelineTemplate, error) {
	var t PipelineTemplate
	if err := load(path, &t); err != nil {
		return t, err
	}
	return t, nil
}

func LoadConfiguration(path string) (TemplateConfiguration, error) {
	var c TemplateConfiguration
	if err := load(path, &c); err != nil {
		return c, err
	}
	return c, nil
}

// LoadExecutionRequest reads a request document on top of base. Fields missing
// from the file keep the values of base.
func LoadExecutionRequest(path string, base ExecutionRequest) (ExecutionRequest, error) {
	r := base
	if err := load(path, &r); err != nil {
		return r, err
	}
	return r, nil
}

func LoadStageDefinition(path string) (CIStageDefinition, error) {
	var s CIStageDefinition
	if err := load(path, &s); err != nil {
		return s, err
	}
	return s, nil
}

func load[T any](path string, out *T) error {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := Parse(contents, out); err != nil {
		return fmt.Errorf("could not parse %s: %w", path, err)
	}
	return nil
}
