package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"valuescore/internal/handler"
	"valuescore/internal/model"
	"valuescore/internal/repository"
	"valuescore/internal/service"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

const (
	flagFile   = "file"
	flagDSN    = "dsn"
	flagName   = "name"
	flagInput  = "input"
	flagStrict = "strict"
)

// Flags keep their parsed value, so every command gets its own instances.

func fileFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagFile,
		Aliases: []string{"f"},
		Usage:   "Path to the model artifact JSON",
		Value:   "mymodel.json",
	}
}

func dsnFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     flagDSN,
		Usage:    "PostgreSQL connection string",
		Sources:  cli.EnvVars("DATABASE_URL"),
		Required: true,
	}
}

func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:   "inspect",
		Usage:  "Validate an artifact file and print its summary",
		Flags:  []cli.Flag{fileFlag()},
		Action: cmdInspect,
	}
}

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "Score one request body offline with an artifact file",
		Flags: []cli.Flag{
			fileFlag(),
			&cli.StringFlag{
				Name:    flagInput,
				Aliases: []string{"i"},
				Usage:   "Request body to score; '-' reads stdin",
				Value:   "-",
			},
			&cli.BoolFlag{
				Name:  flagStrict,
				Usage: "Reject fields outside the feature schema",
			},
		},
		Action: cmdScore,
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:   "migrate",
		Usage:  "Create the model_artifacts table",
		Flags:  []cli.Flag{dsnFlag()},
		Action: cmdMigrate,
	}
}

func publishCommand() *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "Validate an artifact file and upsert it into PostgreSQL",
		Flags: []cli.Flag{
			fileFlag(),
			dsnFlag(),
			&cli.StringFlag{
				Name:  flagName,
				Usage: "Artifact name to store (defaults to the name inside the file)",
			},
		},
		Action: cmdPublish,
	}
}

type artifactSummary struct {
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	FeatureNames []string `json:"feature_names"`
	Scaled       bool     `json:"scaled"`
	Intercept    float64  `json:"intercept"`
	Threshold    float64  `json:"threshold"`
}

func cmdInspect(ctx context.Context, cmd *cli.Command) error {
	a, err := loadArtifact(ctx, cmd.String(flagFile))
	if err != nil {
		return err
	}
	return printJSON(cmd.Root().Writer, artifactSummary{
		Name:         a.Name,
		Kind:         a.Kind,
		FeatureNames: a.FeatureNames,
		Scaled:       a.Scaler != nil,
		Intercept:    a.Intercept,
		Threshold:    service.HighValueThreshold,
	})
}

func cmdScore(ctx context.Context, cmd *cli.Command) error {
	source := repository.NewFileArtifactStore(cmd.String(flagFile))
	classifier, err := service.LoadClassifier(ctx, source, zap.NewNop())
	if err != nil {
		return err
	}

	body, err := readInput(cmd.String(flagInput), cmd.Root().Reader)
	if err != nil {
		return err
	}

	features, verrs := model.ParseFeatures(body, cmd.Bool(flagStrict))
	if len(verrs) > 0 {
		return errors.New(handler.FormatValidationErrors(verrs))
	}

	result, err := service.NewScoringService(classifier).Predict(ctx, features)
	if err != nil {
		return err
	}
	return printJSON(cmd.Root().Writer, result)
}

func cmdMigrate(ctx context.Context, cmd *cli.Command) error {
	repo, err := repository.NewPostgresRepository(cmd.String(flagDSN), 1, 1)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		return err
	}
	fmt.Fprintln(cmd.Root().Writer, "model_artifacts ready")
	return nil
}

func cmdPublish(ctx context.Context, cmd *cli.Command) error {
	a, err := loadArtifact(ctx, cmd.String(flagFile))
	if err != nil {
		return err
	}
	if name := cmd.String(flagName); name != "" {
		a.Name = name
	}
	if a.Name == "" {
		return errors.New("artifact has no name; pass --name")
	}

	repo, err := repository.NewPostgresRepository(cmd.String(flagDSN), 1, 1)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := repo.SaveModelArtifact(ctx, a); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "published %s\n", a.Name)
	return nil
}

// loadArtifact reads an artifact file and checks that a classifier can be built from it
func loadArtifact(ctx context.Context, path string) (*model.ModelArtifact, error) {
	source := repository.NewFileArtifactStore(path)
	a, err := source.FetchArtifact(ctx)
	if err != nil {
		return nil, &service.ModelLoadError{Source: source.Describe(), Err: err}
	}
	if _, err := service.NewClassifier(a); err != nil {
		return nil, &service.ModelLoadError{Source: source.Describe(), Err: err}
	}
	return a, nil
}

func readInput(input string, stdin io.Reader) ([]byte, error) {
	if input != "-" {
		return []byte(input), nil
	}
	if stdin == nil {
		stdin = os.Stdin
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return []byte(strings.TrimSpace(string(data))), nil
}

func printJSON(w io.Writer, v any) error {
	if w == nil {
		w = os.Stdout
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
