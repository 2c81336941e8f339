package orca

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/sadanandam5592/orca/pkg/buildservice"
	"github.com/sadanandam5592/orca/pkg/logger"
	"github.com/sadanandam5592/orca/pkg/models"
	"github.com/sadanandam5592/orca/pkg/tasks"
)

var (
	stagePath     string
	artifactsFile string
	buildURL      string
)

var artifactsCmd = &cobra.Command{
	Use:   "artifacts",
	Short: "Collects the artifacts of a CI stage's build",
	Long: `Fetches the artifacts produced by the build referenced in a CI stage
definition, adds the decorated build-info artifacts and prints them as
{"artifacts": [...]}. Transient build service failures are retried.`,
	RunE: runArtifacts,
}

func init() {
	artifactsCmd.Flags().StringVarP(&stagePath, "stage", "s", "", "Path to the CI stage definition.")
	artifactsCmd.Flags().StringVar(&artifactsFile, "artifacts-file", "", "Serve builds from a YAML catalog instead of a build service.")
	artifactsCmd.Flags().StringVar(&buildURL, "build-service-url", "", "Base URL of the build service.")

	_ = artifactsCmd.MarkFlagRequired("stage")
}

func runArtifacts(cmd *cobra.Command, _ []string) error {
	stage, err := models.LoadStageDefinition(stagePath)
	if err != nil {
		return err
	}

	svc, err := newBuildService()
	if err != nil {
		return err
	}

	log := logger.Default().With("master", stage.Master, "job", stage.Job, "buildNumber", stage.BuildNumber)
	ctx := logger.ContextWithLogger(cmd.Context(), log)

	result, err := tasks.Execute[models.CIStageDefinition](ctx, tasks.NewGetBuildArtifactsTask(svc), stage, tasks.RetryOptions{
		MaxRetries: settings.BuildService.MaxRetries,
		Backoff:    settings.BuildService.Backoff,
		MaxBackoff: settings.BuildService.MaxBackoff,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(result.Outputs)
}

func newBuildService() (tasks.BuildService, error) {
	if artifactsFile != "" {
		m, err := buildservice.LoadMemory(artifactsFile)
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	url := settings.BuildService.URL
	if buildURL != "" {
		url = buildURL
	}
	if url == "" {
		return nil, errors.New("no build service configured, use --artifacts-file or --build-service-url")
	}
	return buildservice.NewClient(url, settings.BuildService.Timeout), nil
}
