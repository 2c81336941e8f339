package tasks

import (
	"context"
	"fmt"

	"github.com/mohae/deepcopy"

	"github.com/sadanandam5592/orca/pkg/models"
)

// BuildService fetches the artifacts a CI build produced.
type BuildService interface {
	GetArtifacts(ctx context.Context, buildNumber int, propertyFile, master, job string) ([]models.Artifact, error)
}

type GetBuildArtifactsTask struct {
	buildService BuildService
}

func NewGetBuildArtifactsTask(buildService BuildService) *GetBuildArtifactsTask {
	return &GetBuildArtifactsTask{buildService: buildService}
}

// TryExecute outputs the artifacts of the stage's build followed by the
// build-info artifacts flagged as decorated.
func (t *GetBuildArtifactsTask) TryExecute(ctx context.Context, stage models.CIStageDefinition) (TaskResult, error) {
	fetched, err := t.buildService.GetArtifacts(ctx, stage.BuildNumber, stage.PropertyFile, stage.Master, stage.Job)
	if err != nil {
		return TaskResult{}, err
	}

	artifacts := make([]models.Artifact, 0, len(fetched))
	artifacts = append(artifacts, fetched...)
	for i, a := range stage.BuildInfo.Artifacts {
		decorated, err := isDecorated(a)
		if err != nil {
			return TaskResult{}, fmt.Errorf("%w: buildInfo.artifacts[%d]: %v", ErrMalformedStage, i, err)
		}
		if decorated {
			artifacts = append(artifacts, deepcopy.Copy(a).(models.Artifact))
		}
	}

	return TaskResult{
		Status:  StatusSucceeded,
		Context: map[string]any{},
		Outputs: map[string]any{"artifacts": artifacts},
	}, nil
}

func isDecorated(a models.Artifact) (bool, error) {
	v, ok := a.Metadata["decorated"]
	if !ok || v == nil {
		return false, nil
	}
	decorated, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("decorated is a %T, expected a bool", v)
	}
	return decorated, nil
}
