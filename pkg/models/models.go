package models

import (
	"slices"

	"github.com/sadanandam5592/orca/pkg/document"
)

// Field names shared by templates, configurations and generated definitions.
const (
	FieldNotifications   = "notifications"
	FieldParameters      = "parameters"
	FieldParameterConfig = "parameterConfig"
	FieldTriggers        = "triggers"
)

type PipelineTemplate struct {
	Schema    string               `yaml:"schema" json:"schema"`
	ID        string               `yaml:"id" json:"id"`
	Metadata  TemplateMetadata     `yaml:"metadata" json:"metadata"`
	Variables []VariableDefinition `yaml:"variables" json:"variables" validate:"dive"`
	Pipeline  document.Map         `yaml:"pipeline" json:"pipeline" validate:"required"`
}

type TemplateMetadata struct {
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Owner       string   `yaml:"owner" json:"owner"`
	Scopes      []string `yaml:"scopes" json:"scopes"`
}

// VariableDefinition declares a template variable. A null DefaultValue means the
// variable has no default.
type VariableDefinition struct {
	Name         string         `yaml:"name" json:"name" validate:"required"`
	Description  string         `yaml:"description" json:"description"`
	Type         string         `yaml:"type" json:"type" validate:"omitempty,oneof=string int float boolean list object"`
	DefaultValue document.Value `yaml:"defaultValue" json:"defaultValue"`
}

func (v VariableDefinition) HasDefault() bool {
	return !v.DefaultValue.IsNull()
}

type TemplateConfiguration struct {
	Schema           string            `yaml:"schema" json:"schema"`
	Application      string            `yaml:"application" json:"application" validate:"required"`
	Name             string            `yaml:"name" json:"name"`
	PipelineConfigID string            `yaml:"pipelineConfigId" json:"pipelineConfigId"`
	Template         TemplateReference `yaml:"template" json:"template"`
	Exclude          []string          `yaml:"exclude" json:"exclude"`
	Notifications    []document.Map    `yaml:"notifications" json:"notifications"`
	Parameters       []document.Map    `yaml:"parameters" json:"parameters"`
	Triggers         []document.Map    `yaml:"triggers" json:"triggers"`
	Variables        document.Map      `yaml:"variables" json:"variables"`
}

type TemplateReference struct {
	Reference string `yaml:"reference" json:"reference"`
}

// Excludes reports whether the template values of field are suppressed.
func (c *TemplateConfiguration) Excludes(field string) bool {
	return slices.Contains(c.Exclude, field)
}

type ExecutionRequest struct {
	ID                      string       `yaml:"id" json:"id"`
	ExecutionID             string       `yaml:"executionId" json:"executionId"`
	LimitConcurrent         bool         `yaml:"limitConcurrent" json:"limitConcurrent"`
	MaxConcurrentExecutions int          `yaml:"maxConcurrentExecutions" json:"maxConcurrentExecutions" validate:"gte=0"`
	KeepWaitingPipelines    bool         `yaml:"keepWaitingPipelines" json:"keepWaitingPipelines"`
	Trigger                 document.Map `yaml:"trigger" json:"trigger"`
}

// NewExecutionRequest returns a request carrying the engine defaults.
func NewExecutionRequest() ExecutionRequest {
	return ExecutionRequest{LimitConcurrent: true}
}

type Artifact struct {
	Type            string         `yaml:"type" json:"type"`
	CustomKind      bool           `yaml:"customKind" json:"customKind"`
	Name            string         `yaml:"name" json:"name"`
	Version         string         `yaml:"version" json:"version"`
	Location        string         `yaml:"location" json:"location"`
	Reference       string         `yaml:"reference" json:"reference"`
	ArtifactAccount string         `yaml:"artifactAccount" json:"artifactAccount"`
	Provenance      string         `yaml:"provenance" json:"provenance"`
	UUID            string         `yaml:"uuid" json:"uuid"`
	Metadata        map[string]any `yaml:"metadata" json:"metadata"`
}

type BuildInfo struct {
	Artifacts []Artifact `yaml:"artifacts" json:"artifacts"`
}

// CIStageDefinition is the part of a CI stage context the build-artifact task reads.
type CIStageDefinition struct {
	Master       string    `yaml:"master" json:"master" validate:"required"`
	Job          string    `yaml:"job" json:"job" validate:"required"`
	BuildNumber  int       `yaml:"buildNumber" json:"buildNumber" validate:"gt=0"`
	PropertyFile string    `yaml:"propertyFile" json:"propertyFile"`
	BuildInfo    BuildInfo `yaml:"buildInfo" json:"buildInfo"`
}
