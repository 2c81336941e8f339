package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sadanandam5592/orca/pkg/document"
	"github.com/sadanandam5592/orca/pkg/models"
)

// GenerateAll generates one definition per configuration against a shared
// template. Results keep the order of configurations. The first failure cancels
// the generations that have not started yet.
func (g *Generator) GenerateAll(ctx context.Context, template *models.PipelineTemplate, configurations []models.TemplateConfiguration, request *models.ExecutionRequest) ([]document.Map, error) {
	definitions := make([]document.Map, len(configurations))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i := range configurations {
		i := i
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			definition, err := g.Generate(template, &configurations[i], request)
			if err != nil {
				return fmt.Errorf("configuration %d (%s): %w", i, configurations[i].Name, err)
			}
			definitions[i] = definition
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return definitions, nil
}
