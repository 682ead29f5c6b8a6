package cmd

import (
	"fmt"
	"strings"

	"material-manager/core/config"
	"material-manager/core/logger"
	"material-manager/core/material"
	"material-manager/core/matjson"
	"material-manager/core/reconcile"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the replace command
	replaceSourceRef string
	replaceTargetRef string
	replaceOutPath   string
	replaceDryRun    bool

	// Conversion option overrides; only applied when set explicitly
	replacePreferPerfect  bool
	replaceMarkedCoverage bool
	replaceAllowAdjust    bool
	replaceMaxAdjust      int32
	replaceStrictOrder    bool
	replaceSimplifyTex    bool
	replaceSimplifyMTD    bool
)

// Severity colors for match table rows.
var (
	matchGreen  = color.New(color.FgGreen).SprintFunc()
	matchYellow = color.New(color.FgYellow).SprintFunc()
	matchRed    = color.New(color.FgRed).SprintFunc()
	matchBlue   = color.New(color.FgBlue).SprintFunc()
	matchGray   = color.New(color.FgHiBlack).SprintFunc()
)

// replaceCmd converts one target material with one source material's textures.
var replaceCmd = &cobra.Command{
	Use:   "replace",
	Short: "Replace a target material's textures with a source material's",
	Long: `Match the source material's samplers onto the target material's slot
layout and write the converted material.

Materials are addressed as file.json#Name; the #Name part may be
omitted when the file holds a single material.

Examples:
  # Convert and write the result
  material-manager replace --source lib.json#C_2950_Body --target shaders.json#C_Slug -o out.json

  # Preview the match table without writing anything
  material-manager replace --source lib.json#C_2950_Body --target shaders.json#C_Slug --dry-run

  # Keep slot order strictly as matched, no local adjustments
  material-manager replace --source a.json --target b.json -o out.json --allow-order-adjustment=false`,
	RunE: runReplace,
}

func init() {
	replaceCmd.Flags().StringVar(&replaceSourceRef, "source", "", "Source material as file.json[#Name] (textures to keep)")
	replaceCmd.Flags().StringVar(&replaceTargetRef, "target", "", "Target material as file.json[#Name] (slot layout to fill)")
	replaceCmd.Flags().StringVarP(&replaceOutPath, "out", "o", "", "Output library file for the converted material")
	replaceCmd.Flags().BoolVar(&replaceDryRun, "dry-run", false, "Print the match table without writing the output file")

	replaceCmd.Flags().BoolVar(&replacePreferPerfect, "prefer-perfect-match", true, "Prefer slots with identical index and type")
	replaceCmd.Flags().BoolVar(&replaceMarkedCoverage, "prefer-marked-coverage", true, "Prefer same-type slots that already carry a path")
	replaceCmd.Flags().BoolVar(&replaceAllowAdjust, "allow-order-adjustment", true, "Allow relocating earlier matches to resolve conflicts")
	replaceCmd.Flags().Int32Var(&replaceMaxAdjust, "max-order-adjustments", material.DefaultMaxOrderAdjustments, "Adjustment budget for one conversion")
	replaceCmd.Flags().BoolVar(&replaceStrictOrder, "strict-order-validation", true, "Check and repair the global slot order after matching")
	replaceCmd.Flags().BoolVar(&replaceSimplifyTex, "simplify-texture-path", false, "Reduce exported texture paths to their final component")
	replaceCmd.Flags().BoolVar(&replaceSimplifyMTD, "simplify-material-path", false, "Reduce the exported MTD path to its final component")

	_ = replaceCmd.MarkFlagRequired("source")
	_ = replaceCmd.MarkFlagRequired("target")

	RootCmd.AddCommand(replaceCmd)
}

func runReplace(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if replaceOutPath == "" && !replaceDryRun {
		return fmt.Errorf("output path required: pass -o or --dry-run")
	}

	opts := cfg.Convert.Options()
	applyOptionFlags(cmd, &opts)

	source, err := loadMaterialRef(replaceSourceRef)
	if err != nil {
		return fmt.Errorf("failed to load source material: %w", err)
	}
	target, err := loadMaterialRef(replaceTargetRef)
	if err != nil {
		return fmt.Errorf("failed to load target material: %w", err)
	}

	l.Info("Converting material",
		zap.String("source", source.Name),
		zap.String("target", target.Name),
	)

	result := reconcile.NewEngine(opts, l).Replace(source, target)
	printMatchReport(result)

	if replaceDryRun {
		l.Info("Dry-run mode: No output written.")
		return nil
	}

	merged := reconcile.Apply(result)
	exportOpts := matjson.ExportOptions{
		SimplifyTexturePath:  opts.SimplifyTexturePath,
		SimplifyMaterialPath: opts.SimplifyMaterialPath,
	}
	if err := matjson.ExportFile(replaceOutPath, []material.Material{merged}, exportOpts); err != nil {
		return err
	}

	l.Info("Converted material written",
		zap.String("material", merged.Name),
		zap.String("path", replaceOutPath),
	)
	return nil
}

// applyOptionFlags overlays conversion options with the flags the user
// set explicitly, leaving configured defaults in place otherwise.
func applyOptionFlags(cmd *cobra.Command, opts *material.ConversionOptions) {
	f := cmd.Flags()
	if f.Changed("prefer-perfect-match") {
		opts.PreferPerfectMatch = replacePreferPerfect
	}
	if f.Changed("prefer-marked-coverage") {
		opts.PreferMarkedCoverage = replaceMarkedCoverage
	}
	if f.Changed("allow-order-adjustment") {
		opts.AllowOrderAdjustment = replaceAllowAdjust
	}
	if f.Changed("max-order-adjustments") {
		opts.MaxOrderAdjustments = replaceMaxAdjust
	}
	if f.Changed("strict-order-validation") {
		opts.StrictOrderValidation = replaceStrictOrder
	}
	if f.Changed("simplify-texture-path") {
		opts.SimplifyTexturePath = replaceSimplifyTex
	}
	if f.Changed("simplify-material-path") {
		opts.SimplifyMaterialPath = replaceSimplifyMTD
	}
}

// splitRef splits "file.json#Name" into its path and material name.
// The name part is optional.
func splitRef(ref string) (path, name string) {
	if i := strings.LastIndex(ref, "#"); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return ref, ""
}

// loadMaterialRef loads one material addressed as file.json[#Name].
func loadMaterialRef(ref string) (material.Material, error) {
	path, name := splitRef(ref)
	mats, err := matjson.ParseFile(path)
	if err != nil {
		return material.Material{}, err
	}
	return matjson.FindByName(mats, name)
}

// printMatchReport renders the match table the way the host preview
// shows it: one row per source sampler, then display-only UNCOVERED
// rows for target paths no source covers.
func printMatchReport(res *reconcile.ReplaceResult) {
	fmt.Printf("\n--- Match Report: %s -> %s ---\n", res.Source.Name, res.Target.Name)

	for _, r := range res.Results {
		src := res.Source.Samplers[r.SourcePos]
		tgt := "-"
		if r.TargetPos != reconcile.NoTarget {
			tgt = fmt.Sprintf("tgt[%d]", r.TargetPos)
		}

		line := fmt.Sprintf("%s %-14s src[%d] %-24s -> %-8s %s",
			r.Status.Icon(), r.Status, r.SourcePos, samplerLabel(src), tgt, r.Reason)
		if r.OrderAdjusted && r.AdjustmentDetail != "" {
			line += fmt.Sprintf(" [%s]", strings.TrimSpace(r.AdjustmentDetail))
		}
		fmt.Println(colorizeStatus(r.Status, line))
	}

	// Targets that keep a path no source covers, shown like the host
	// preview's target panel.
	claimed := make(map[int]struct{}, len(res.Results))
	for _, r := range res.Results {
		if r.TargetPos != reconcile.NoTarget {
			claimed[r.TargetPos] = struct{}{}
		}
	}
	for i, t := range res.Target.Samplers {
		if _, ok := claimed[i]; ok || !t.HasPath() {
			continue
		}
		line := fmt.Sprintf("%s %-14s %-33s -> tgt[%d]  target path kept, not covered by any source",
			reconcile.StatusUncovered.Icon(), reconcile.StatusUncovered, samplerLabel(t), i)
		fmt.Println(colorizeStatus(reconcile.StatusUncovered, line))
	}

	if len(res.Warnings) > 0 {
		fmt.Println("\nWarnings:")
		for _, w := range res.Warnings {
			fmt.Printf("  - %s\n", w)
		}
	}

	repair := "no"
	if res.GlobalRepairTriggered {
		repair = "yes"
	}
	fmt.Printf("\nOrder adjustments: %d   Global repair: %s\n\n", res.OrderAdjustments, repair)
}

// samplerLabel renders a sampler as "BaseType#index" with the display
// name for legacy samplers.
func samplerLabel(s material.Sampler) string {
	if s.IsLegacy {
		return s.DisplayName()
	}
	if s.Index >= 0 {
		return fmt.Sprintf("%s#%d", s.BaseType, s.Index)
	}
	return s.BaseType
}

// colorizeStatus paints a table row by its status severity.
func colorizeStatus(status reconcile.MatchStatus, line string) string {
	switch status {
	case reconcile.StatusPerfectMatch:
		return matchGreen(line)
	case reconcile.StatusAdjacentMatch:
		return matchYellow(line)
	case reconcile.StatusUnmatched:
		return matchRed(line)
	case reconcile.StatusUncovered:
		return matchBlue(line)
	case reconcile.StatusEmpty:
		return matchGray(line)
	default:
		return line
	}
}
