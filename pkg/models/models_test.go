package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const templateDoc = `
schema: v2
id: deploy-template
metadata:
  name: Deploy
  owner: team@x.com
variables:
  - name: region
    type: string
    defaultValue: us-east-1
  - name: replicas
    type: int
pipeline:
  keepWaitingPipelines: true
  notifications:
    - type: email
      address: a@x.com
  stages:
    - type: wait
      waitTime: 30
`

const configurationDoc = `
schema: v2
application: shop
name: Deploy shop
pipelineConfigId: 0f9c
template:
  reference: spinnaker://deploy-template
exclude:
  - triggers
triggers:
  - type: cron
    cronExpression: "0 0 * * *"
variables:
  replicas: 3
`

func TestParseTemplate(t *testing.T) {
	var tmpl PipelineTemplate
	require.NoError(t, Parse([]byte(templateDoc), &tmpl))

	assert.Equal(t, "deploy-template", tmpl.ID)
	require.Len(t, tmpl.Variables, 2)
	assert.True(t, tmpl.Variables[0].HasDefault())
	assert.False(t, tmpl.Variables[1].HasDefault())
	assert.True(t, tmpl.Pipeline.Has("stages"))
}

func TestParseConfiguration(t *testing.T) {
	var cfg TemplateConfiguration
	require.NoError(t, Parse([]byte(configurationDoc), &cfg))

	assert.Equal(t, "shop", cfg.Application)
	assert.True(t, cfg.Excludes(FieldTriggers))
	assert.False(t, cfg.Excludes(FieldNotifications))
	assert.Nil(t, cfg.Notifications)
	require.Len(t, cfg.Triggers, 1)

	replicas, ok := cfg.Variables["replicas"].AsInt()
	require.True(t, ok)
	assert.EqualValues(t, 3, replicas)
}

func TestValidation(t *testing.T) {
	t.Run("configuration without application", func(t *testing.T) {
		var cfg TemplateConfiguration
		assert.Error(t, Parse([]byte("name: x\n"), &cfg))
	})

	t.Run("template without pipeline", func(t *testing.T) {
		var tmpl PipelineTemplate
		assert.Error(t, Parse([]byte("id: x\n"), &tmpl))
	})

	t.Run("variable without name", func(t *testing.T) {
		var tmpl PipelineTemplate
		assert.Error(t, Parse([]byte("pipeline: {}\nvariables:\n  - type: string\n"), &tmpl))
	})

	t.Run("stage without build number", func(t *testing.T) {
		var stage CIStageDefinition
		assert.Error(t, Parse([]byte("master: m\njob: j\n"), &stage))
	})
}

func TestLoadExecutionRequestKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "request.yml")
	require.NoError(t, os.WriteFile(path, []byte("id: abc\ntrigger:\n  type: manual\n"), 0o600))

	r, err := LoadExecutionRequest(path, NewExecutionRequest())
	require.NoError(t, err)

	assert.Equal(t, "abc", r.ID)
	assert.True(t, r.LimitConcurrent)
	assert.Len(t, r.Trigger, 1)
}
