// Package main is the entry point for the ingest CLI: it parses legal
// source documents, embeds them and writes the index artifacts the server
// loads at startup.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/RodrigoAlexander7/law-copilot/internal/adapter/embed"
	"github.com/RodrigoAlexander7/law-copilot/internal/index"
	"github.com/RodrigoAlexander7/law-copilot/internal/infra/config"
	"github.com/RodrigoAlexander7/law-copilot/internal/infra/logger"
	"github.com/RodrigoAlexander7/law-copilot/internal/ingest"
	"github.com/RodrigoAlexander7/law-copilot/internal/usecase"
)

var (
	sourceID    string
	inputPath   string
	indexDir    string
	indexName   string
	parallelism int
)

var rootCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Build and inspect legal search index artifacts",
	Long: `ingest parses Peruvian legal source texts into articles, embeds them
and persists the vector index the query service loads at startup.

Example usage:
  ingest build --source constitucion_1993 --input data/raw/constitucion.txt
  ingest build --source codigo_civil --input data/raw/codigo_civil.txt
  ingest sources
  ingest inspect`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Parse a legal source and (re)build the index artifacts",
	RunE:  runBuild,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Load the index artifacts and print the manifest",
	RunE:  runInspect,
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the known legal source presets",
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(sourcesCmd)

	buildCmd.Flags().StringVar(&sourceID, "source", "", "legal source preset id (see 'ingest sources')")
	buildCmd.Flags().StringVar(&inputPath, "input", "", "path to the raw source text file")
	buildCmd.Flags().IntVar(&parallelism, "parallelism", 2, "concurrent embedding batches")
	_ = buildCmd.MarkFlagRequired("source")
	_ = buildCmd.MarkFlagRequired("input")

	rootCmd.PersistentFlags().StringVar(&indexDir, "index-dir", "", "index artifact directory (default from INDEX_DIR)")
	rootCmd.PersistentFlags().StringVar(&indexName, "index-name", "", "index artifact base name (default from INDEX_NAME)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logger.New()
	slog.SetDefault(log)
	dir, name := resolveArtifactPath(cfg)

	spec, ok := ingest.PresetByID(sourceID)
	if !ok {
		return fmt.Errorf("unknown source %q, run 'ingest sources' for the list", sourceID)
	}

	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	parser := ingest.NewParser(spec)
	articles := parser.Parse(string(raw))
	if len(articles) == 0 {
		return fmt.Errorf("no articles recognized in %s", inputPath)
	}
	log.Info("source_parsed", "source", spec.ID, "articles", len(articles))

	encoder := embed.NewOllamaEmbedder(
		cfg.OllamaURL,
		cfg.EmbeddingModel,
		cfg.EmbedBatchSize,
		time.Duration(cfg.EmbedTimeout)*time.Second,
		cfg.EmbedRPS,
		log,
	)

	// An index build replaces the artifact set wholesale. To index several
	// sources together, parse them all and rebuild in one run.
	builder := usecase.NewBuildIndexUsecase(encoder, log)
	ctx := logger.WithSourceID(cmd.Context(), spec.ID)
	result, err := builder.Execute(ctx, articles, usecase.BuildIndexParams{
		Dir:         dir,
		Name:        name,
		BatchSize:   cfg.EmbedBatchSize,
		Parallelism: parallelism,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Indexed %d articles (dimension %d) into %s/%s\n",
		result.TotalRecords, result.Dimension, dir, name)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	dir, name := resolveArtifactPath(cfg)

	flat, manifest, err := index.Load(dir, name)
	if err != nil {
		return fmt.Errorf("load index: %w", err)
	}

	out, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	fmt.Printf("loaded: %d records, dimension %d\n", flat.Len(), flat.Dimension())
	return nil
}

func runSources(cmd *cobra.Command, args []string) error {
	for _, spec := range ingest.Presets() {
		fmt.Printf("%-40s %s\n", spec.ID, spec.Name)
	}
	return nil
}

func resolveArtifactPath(cfg *config.Config) (dir, name string) {
	dir, name = cfg.IndexDir, cfg.IndexName
	if indexDir != "" {
		dir = indexDir
	}
	if indexName != "" {
		name = indexName
	}
	return dir, name
}
