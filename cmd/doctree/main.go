package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"doctree-go/internal/config"
	"doctree-go/internal/document"
	"doctree-go/internal/extract"
	"doctree-go/internal/progress"
	"doctree-go/internal/walker"
)

var version = "dev"

func main() {
	var (
		configPath string
		outputPath string
		workers    int
		verbose    bool
	)

	root := &cobra.Command{
		Use:   "doctree [directory]",
		Short: "Generate an annotated Markdown tree of C# source files",
		Long: "doctree walks a directory of C# source files, extracts each file's\n" +
			"primary type name and XML <summary> comment, and writes a Markdown\n" +
			"document containing the annotated directory tree.",
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return run(cmd, dir, configPath, outputPath, workers, verbose)
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "doctree.yaml", "config file path")
	root.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default <directory>/tree_output.md)")
	root.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "number of extraction workers")
	root.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, dir, configPath, outputPath string, workers int, verbose bool) error {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", absDir)
	}

	if outputPath == "" {
		outputPath = cfg.OutputFile
	}
	if outputPath == "" {
		outputPath = filepath.Join(absDir, "tree_output.md")
	}

	fmt.Printf("开始扫描目录: %s\n", absDir)

	w := walker.New(cfg, logger)

	// Collect first, extract with the worker pool, then render strictly
	// sequentially so the line order never depends on the worker count.
	paths := w.CollectFiles(absDir)
	logger.Debug("collected source files", "count", len(paths), "workers", workers)

	bar := progress.New(len(paths))
	results := extract.All(cmd.Context(), paths, workers, bar)
	bar.Finish()

	treeLines := w.Render(absDir, results)

	rootLabel := cfg.RootLabel
	if rootLabel == "" {
		rootLabel = absDir + "/"
	}

	doc := document.Build(cfg, rootLabel, treeLines)
	changed, err := document.Write(doc, outputPath)
	if err != nil {
		return err
	}

	if changed {
		fmt.Printf("✅ 树状图已生成: %s\n", outputPath)
	} else {
		fmt.Printf("✅ 树状图无变化: %s\n", outputPath)
	}
	fmt.Printf("   共扫描 %d 个 %s 文件\n", document.CountFiles(cfg, treeLines), cfg.FileLabel)

	return nil
}
