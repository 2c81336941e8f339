// Package pipeline generates executable pipeline definitions from a template,
// a configuration and an execution request.
package pipeline

import (
	"github.com/sadanandam5592/orca/pkg/document"
	"github.com/sadanandam5592/orca/pkg/logger"
	"github.com/sadanandam5592/orca/pkg/models"
	"github.com/sadanandam5592/orca/pkg/variables"
)

// Keys of the generated definition read by the execution engine.
const (
	KeyID                      = "id"
	KeyApplication             = "application"
	KeyExecutionID             = "executionId"
	KeyName                    = "name"
	KeyLimitConcurrent         = "limitConcurrent"
	KeyMaxConcurrentExecutions = "maxConcurrentExecutions"
	KeyKeepWaitingPipelines    = "keepWaitingPipelines"
	KeyNotifications           = models.FieldNotifications
	KeyParameterConfig         = models.FieldParameterConfig
	KeyTriggers                = models.FieldTriggers
	KeyTemplateVariables       = "templateVariables"
	KeyTrigger                 = "trigger"

	UnknownID        = "unknown"
	UnnamedExecution = "Unnamed Execution"

	inheritedKey = "inherited"
)

// mergeable lists the list-of-maps fields that combine template defaults with
// configuration values. key is used in the template and the output, exclude is
// the name a configuration uses to opt out of the template values.
var mergeable = []struct {
	key     string
	exclude string
	values  func(*models.TemplateConfiguration) []document.Map
}{
	{KeyNotifications, models.FieldNotifications, func(c *models.TemplateConfiguration) []document.Map { return c.Notifications }},
	{KeyParameterConfig, models.FieldParameters, func(c *models.TemplateConfiguration) []document.Map { return c.Parameters }},
	{KeyTriggers, models.FieldTriggers, func(c *models.TemplateConfiguration) []document.Map { return c.Triggers }},
}

// VariableAssigner computes the template variables of a definition from the
// template declarations and the configured values.
type VariableAssigner func(declared []models.VariableDefinition, configured document.Map) []variables.Binding

type Generator struct {
	assign VariableAssigner
	log    logger.Logger
}

type Option func(*Generator)

func WithVariableAssigner(assign VariableAssigner) Option {
	return func(g *Generator) {
		g.assign = assign
	}
}

func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		assign: variables.Resolve,
		log:    logger.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a definition with a default generator.
func Generate(template *models.PipelineTemplate, configuration *models.TemplateConfiguration, request *models.ExecutionRequest) (document.Map, error) {
	return NewGenerator().Generate(template, configuration, request)
}

// Generate returns a new definition. None of the inputs are modified. A nil
// request behaves like NewExecutionRequest.
func (g *Generator) Generate(template *models.PipelineTemplate, configuration *models.TemplateConfiguration, request *models.ExecutionRequest) (document.Map, error) {
	if template == nil {
		template = &models.PipelineTemplate{}
	}
	if configuration == nil {
		configuration = &models.TemplateConfiguration{}
	}
	if request == nil {
		r := models.NewExecutionRequest()
		request = &r
	}

	definition := template.Pipeline.Clone()
	if definition == nil {
		definition = make(document.Map)
	}

	definition[KeyID] = document.String(firstNonEmpty(request.ID, configuration.PipelineConfigID, UnknownID))
	if configuration.Application != "" {
		definition[KeyApplication] = document.String(configuration.Application)
	} else {
		definition[KeyApplication] = document.Null()
	}
	if request.ExecutionID != "" {
		definition[KeyExecutionID] = document.String(request.ExecutionID)
	}
	definition[KeyName] = document.String(firstNonEmpty(configuration.Name, UnnamedExecution))

	if !template.Pipeline.Has(KeyLimitConcurrent) {
		definition[KeyLimitConcurrent] = document.Bool(request.LimitConcurrent)
	}
	if !template.Pipeline.Has(KeyMaxConcurrentExecutions) {
		definition[KeyMaxConcurrentExecutions] = document.Int(int64(request.MaxConcurrentExecutions))
	}
	if !template.Pipeline.Has(KeyKeepWaitingPipelines) {
		definition[KeyKeepWaitingPipelines] = document.Bool(request.KeepWaitingPipelines)
	}

	for _, field := range mergeable {
		configured := field.values(configuration)
		if configuration.Excludes(field.exclude) {
			definition[field.key] = document.Maps(cloneMaps(configured))
			continue
		}

		inherited, err := templateCollection(template.Pipeline, field.key)
		if err != nil {
			return nil, err
		}
		definition[field.key] = document.Maps(MergeDistinctMaps(MarkAsInherited(inherited), cloneMaps(configured)))
	}

	definition[KeyTemplateVariables] = document.Object(variables.AsMap(g.assign(template.Variables, configuration.Variables)))

	if len(request.Trigger) > 0 {
		definition[KeyTrigger] = document.Object(request.Trigger.Clone())
	}

	g.log.Debug("generated pipeline definition",
		"id", definition[KeyID].ToAny(),
		"application", configuration.Application,
		"template", template.ID)
	return definition, nil
}

// templateCollection returns the list-of-maps stored under key. A missing or
// null field is an empty collection.
func templateCollection(pipeline document.Map, key string) ([]document.Map, error) {
	v, ok := pipeline[key]
	if !ok || v.IsNull() {
		return nil, nil
	}

	items, ok := v.AsList()
	if !ok {
		return nil, &TemplateShapeError{Field: key, Kind: v.Kind(), Index: -1}
	}
	collection := make([]document.Map, len(items))
	for i, item := range items {
		m, ok := item.AsMap()
		if !ok {
			return nil, &TemplateShapeError{Field: key, Kind: item.Kind(), Index: i}
		}
		collection[i] = m
	}
	return collection, nil
}

func cloneMaps(ms []document.Map) []document.Map {
	c := make([]document.Map, len(ms))
	for i, m := range ms {
		c[i] = m.Clone()
	}
	return c
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
