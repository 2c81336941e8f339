package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadanandam5592/orca/pkg/document"
	"github.com/sadanandam5592/orca/pkg/logger"
	"github.com/sadanandam5592/orca/pkg/models"
)

func TestGenerateAll(t *testing.T) {
	g := NewGenerator(WithLogger(logger.Discard()))
	configurations := []models.TemplateConfiguration{
		{Application: "shop", Name: "first"},
		{Application: "shop", Name: "second", Exclude: []string{"notifications"}},
		{Application: "cart", Name: "third"},
	}

	definitions, err := g.GenerateAll(context.Background(), newTemplate(), configurations, nil)
	require.NoError(t, err)
	require.Len(t, definitions, 3)

	for i, cfg := range configurations {
		assert.Equal(t, cfg.Name, stringField(t, definitions[i], KeyName))
	}
	assert.Empty(t, listField(t, definitions[1], KeyNotifications))
	assert.Len(t, listField(t, definitions[0], KeyNotifications), 1)
}

func TestGenerateAllFailsOnShapeError(t *testing.T) {
	g := NewGenerator(WithLogger(logger.Discard()))
	tmpl := &models.PipelineTemplate{Pipeline: document.Map{"triggers": document.Bool(true)}}

	_, err := g.GenerateAll(context.Background(), tmpl, []models.TemplateConfiguration{{Application: "shop", Name: "broken"}}, nil)

	var shapeErr *TemplateShapeError
	require.True(t, errors.As(err, &shapeErr))
	assert.Equal(t, "triggers", shapeErr.Field)
	assert.Contains(t, err.Error(), "broken")
}

func TestGenerateAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGenerator().GenerateAll(ctx, newTemplate(), []models.TemplateConfiguration{{Application: "shop"}}, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
