package orca

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sadanandam5592/orca/pkg/document"
	"github.com/sadanandam5592/orca/pkg/logger"
	"github.com/sadanandam5592/orca/pkg/models"
	"github.com/sadanandam5592/orca/pkg/pipeline"
	"github.com/sadanandam5592/orca/pkg/utils"
)

var (
	templatePath            string
	configPaths             []string
	configDir               string
	requestPath             string
	requestID               string
	executionID             string
	newExecutionID          bool
	limitConcurrent         bool
	maxConcurrentExecutions int
	keepWaitingPipelines    bool
	triggerFile             string
	triggerParams           []string
	outputFormat            string
	outputDir               string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates pipeline definitions from a template and configurations",
	Long: `Generates one pipeline definition per configuration. Configurations are
given with --config (repeatable) or collected from --config-dir and are generated
concurrently against the same template.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&templatePath, "template", "t", "", "Path to the pipeline template.")
	generateCmd.Flags().StringArrayVarP(&configPaths, "config", "c", make([]string, 0), "Path to a template configuration. Repeatable.")
	generateCmd.Flags().StringVar(&configDir, "config-dir", "", "Directory of template configurations.")
	generateCmd.Flags().StringVarP(&requestPath, "request", "r", "", "Path to an execution request document.")
	generateCmd.Flags().StringVar(&requestID, "id", "", "Pipeline id.")
	generateCmd.Flags().StringVar(&executionID, "execution-id", "", "Execution id.")
	generateCmd.Flags().BoolVar(&newExecutionID, "new-execution-id", false, "Generate a random execution id.")
	generateCmd.Flags().BoolVar(&limitConcurrent, "limit-concurrent", true, "Fallback for limitConcurrent.")
	generateCmd.Flags().IntVar(&maxConcurrentExecutions, "max-concurrent-executions", 0, "Fallback for maxConcurrentExecutions.")
	generateCmd.Flags().BoolVar(&keepWaitingPipelines, "keep-waiting-pipelines", false, "Fallback for keepWaitingPipelines.")
	generateCmd.Flags().StringVar(&triggerFile, "trigger-file", "", "Path to a trigger payload document.")
	generateCmd.Flags().StringArrayVar(&triggerParams, "trigger-param", make([]string, 0), "Trigger payload value. KEY=VALUE")
	generateCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: json or yaml.")
	generateCmd.Flags().StringVar(&outputDir, "output-dir", "", "Write each definition to a file in this directory.")

	_ = generateCmd.MarkFlagRequired("template")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	log := logger.Default()

	template, err := models.LoadTemplate(templatePath)
	if err != nil {
		return err
	}

	paths := append(make([]string, 0, len(configPaths)), configPaths...)
	if configDir != "" {
		files, err := utils.DocumentFiles(configDir)
		if err != nil {
			return fmt.Errorf("could not read %s: %w", configDir, err)
		}
		paths = append(paths, files...)
	}
	if len(paths) == 0 {
		return errors.New("at least one configuration is required, use --config or --config-dir")
	}

	configurations := make([]models.TemplateConfiguration, len(paths))
	for i, p := range paths {
		if configurations[i], err = models.LoadConfiguration(p); err != nil {
			return err
		}
	}

	request, err := buildRequest(cmd)
	if err != nil {
		return err
	}

	g := pipeline.NewGenerator(pipeline.WithLogger(log.With("template", template.ID)))
	definitions, err := g.GenerateAll(cmd.Context(), &template, configurations, &request)
	if err != nil {
		return err
	}

	format := settings.Output.Format
	if outputFormat != "" {
		format = outputFormat
	}
	dir := settings.Output.Dir
	if outputDir != "" {
		dir = outputDir
	}

	if dir != "" {
		return writeDefinitions(dir, format, definitions)
	}
	for i, d := range definitions {
		out := cmd.OutOrStdout()
		if len(definitions) > 1 {
			out = utils.NewColorLogger(filepath.Base(paths[i]), out, true)
		}
		if err := encodeDefinition(out, format, d); err != nil {
			return err
		}
	}
	log.Info("generated pipelines", "count", len(definitions))
	return nil
}

// buildRequest layers the execution request: settings, request file, then flags.
func buildRequest(cmd *cobra.Command) (models.ExecutionRequest, error) {
	r := models.NewExecutionRequest()
	r.LimitConcurrent = settings.Request.LimitConcurrent
	r.MaxConcurrentExecutions = settings.Request.MaxConcurrentExecutions
	r.KeepWaitingPipelines = settings.Request.KeepWaitingPipelines

	if requestPath != "" {
		var err error
		if r, err = models.LoadExecutionRequest(requestPath, r); err != nil {
			return r, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("limit-concurrent") {
		r.LimitConcurrent = limitConcurrent
	}
	if flags.Changed("max-concurrent-executions") {
		r.MaxConcurrentExecutions = maxConcurrentExecutions
	}
	if flags.Changed("keep-waiting-pipelines") {
		r.KeepWaitingPipelines = keepWaitingPipelines
	}
	if requestID != "" {
		r.ID = requestID
	}
	switch {
	case executionID != "":
		r.ExecutionID = executionID
	case newExecutionID && r.ExecutionID == "":
		r.ExecutionID = uuid.NewString()
	}

	trigger, err := buildTrigger(r.Trigger)
	if err != nil {
		return r, err
	}
	r.Trigger = trigger
	return r, models.Validate(&r)
}

// buildTrigger deep-merges the request trigger, the trigger file and the
// trigger params, later sources winning.
func buildTrigger(base document.Map) (document.Map, error) {
	trigger := base.ToAny()

	if triggerFile != "" {
		contents, err := os.ReadFile(filepath.Clean(triggerFile))
		if err != nil {
			return nil, err
		}
		fromFile := make(map[string]any)
		if err := yaml.Unmarshal(contents, &fromFile); err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", triggerFile, err)
		}
		if err := mergo.Merge(&trigger, fromFile, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("could not merge trigger file: %w", err)
		}
	}

	if len(triggerParams) > 0 {
		params := make(map[string]any, len(triggerParams))
		for _, p := range triggerParams {
			kv := strings.SplitN(p, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("trigger params should be defined as KEY=VALUE: %s", p)
			}
			params[kv[0]] = kv[1]
		}
		if err := mergo.Merge(&trigger, params, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("could not merge trigger params: %w", err)
		}
	}

	if len(trigger) == 0 {
		return nil, nil
	}
	return document.MapFromAny(trigger)
}

func writeDefinitions(dir, format string, definitions []document.Map) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create %s directory: %v", dir, err)
	}

	used := make(map[string]int)
	for _, d := range definitions {
		name, _ := d[pipeline.KeyName].AsString()
		base := slug.Make(name)
		if n := used[base]; n > 0 {
			base = fmt.Sprintf("%s-%d", base, n)
		}
		used[slug.Make(name)]++

		path := filepath.Join(dir, base+"."+format)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("could not create %s: %v", path, err)
		}
		if err := encodeDefinition(f, format, d); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Default().Info("wrote pipeline", "path", path)
	}
	return nil
}

func encodeDefinition(w io.Writer, format string, d document.Map) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
