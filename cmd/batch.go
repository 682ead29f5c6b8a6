package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"material-manager/core/batch"
	"material-manager/core/config"
	"material-manager/core/logger"
	"material-manager/core/material"
	"material-manager/core/matjson"
	"material-manager/core/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the batch command
	batchSourceRef  string
	batchTargetsArg string
	batchOutDir     string
	batchWorkers    int
)

// batchCmd converts one source material against a whole set of targets.
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Convert one source material against many targets",
	Long: `Run the same source material against every target material and
write one converted library file per target.

Targets may be a single library file (all of its materials become
targets) or a directory of library files.

Examples:
  # Convert against every material in one library
  material-manager batch --source skin.json#C_2950_Body --targets shaders.json --out converted/

  # Convert against every library file in a directory, 8 at a time
  material-manager batch --source skin.json --targets shaders/ --out converted/ --workers 8`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVar(&batchSourceRef, "source", "", "Source material as file.json[#Name] (textures to keep)")
	batchCmd.Flags().StringVar(&batchTargetsArg, "targets", "", "Target library file or directory of library files")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "", "Directory for the converted library files")
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Parallel conversions (0 uses the configured default)")

	_ = batchCmd.MarkFlagRequired("source")
	_ = batchCmd.MarkFlagRequired("targets")
	_ = batchCmd.MarkFlagRequired("out")

	RootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	workers := cfg.Batch.Workers
	if cmd.Flags().Changed("workers") {
		workers = batchWorkers
	}

	source, err := loadMaterialRef(batchSourceRef)
	if err != nil {
		return fmt.Errorf("failed to load source material: %w", err)
	}

	targets, err := loadTargetSet(batchTargetsArg)
	if err != nil {
		return fmt.Errorf("failed to load targets: %w", err)
	}
	if len(targets) == 0 {
		return fmt.Errorf("no target materials found in %s", batchTargetsArg)
	}

	if err := os.MkdirAll(batchOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	opts := cfg.Convert.Options()
	engine := reconcile.NewEngine(opts, l)
	processor := batch.NewProcessor(engine, workers, l)

	outcomes, summary, err := processor.Run(context.Background(), source, targets)
	if err != nil {
		return err
	}

	exportOpts := matjson.ExportOptions{
		SimplifyTexturePath:  opts.SimplifyTexturePath,
		SimplifyMaterialPath: opts.SimplifyMaterialPath,
	}

	fmt.Println()
	used := make(map[string]int, len(outcomes))
	for _, o := range outcomes {
		name := safeFileName(o.TargetName)
		used[name]++
		if n := used[name]; n > 1 {
			name = fmt.Sprintf("%s_%d", name, n)
		}
		outPath := filepath.Join(batchOutDir, name+".json")

		if err := matjson.ExportFile(outPath, []material.Material{o.Converted}, exportOpts); err != nil {
			return fmt.Errorf("failed to export %s: %w", o.TargetName, err)
		}
		printBatchOutcome(o, outPath)
	}

	fmt.Println("\n=== Batch Conversion Summary ===")
	fmt.Printf("Run ID: %s\n", summary.RunID)
	fmt.Printf("Targets: %d\n", summary.Targets)
	fmt.Printf("Clean: %d\n", summary.Clean)
	fmt.Printf("With Warnings: %d\n", summary.WithWarnings)
	fmt.Printf("Unmatched: %d\n", summary.Unmatched)
	fmt.Printf("Order Adjustments: %d\n", summary.OrderAdjustments)
	fmt.Printf("Repairs Triggered: %d\n", summary.RepairsTriggered)
	fmt.Printf("Execution Time: %s\n", summary.Elapsed.String())

	l.Info("Batch conversion completed",
		zap.String("run_id", summary.RunID),
		zap.Int("targets", summary.Targets),
		zap.String("out", batchOutDir),
	)
	return nil
}

// loadTargetSet collects the target materials. A directory contributes
// every material of every .json file in it; a file contributes all of
// its materials.
func loadTargetSet(arg string) ([]material.Material, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return matjson.ParseFile(arg)
	}

	entries, err := os.ReadDir(arg)
	if err != nil {
		return nil, err
	}

	var targets []material.Material
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		mats, err := matjson.ParseFile(filepath.Join(arg, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		targets = append(targets, mats...)
	}
	return targets, nil
}

// printBatchOutcome renders one target's line plus its warnings,
// colored by the worst status in the conversion.
func printBatchOutcome(o batch.Outcome, outPath string) {
	unmatched := false
	for _, r := range o.Result.Results {
		if r.Status == reconcile.StatusUnmatched {
			unmatched = true
			break
		}
	}

	line := fmt.Sprintf("%s -> %s", o.TargetName, outPath)
	switch {
	case unmatched:
		fmt.Printf("%s %s\n", reconcile.StatusUnmatched.Icon(), matchRed(line))
	case len(o.Result.Warnings) > 0:
		fmt.Printf("%s %s\n", reconcile.StatusAdjacentMatch.Icon(), matchYellow(line))
	default:
		fmt.Printf("%s %s\n", reconcile.StatusPerfectMatch.Icon(), matchGreen(line))
	}
	for _, w := range o.Result.Warnings {
		fmt.Printf("    - %s\n", w)
	}
}

// safeFileName turns a material name into a file name, replacing path
// separators.
func safeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "material"
	}
	return strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(name)
}
