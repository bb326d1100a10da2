package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/cwbudde/vennlayout/internal/arrange"
	"github.com/cwbudde/vennlayout/internal/opt"
	"github.com/cwbudde/vennlayout/internal/venn"
)

var (
	inPath    string
	outPath   string
	width     float64
	height    float64
	padding   float64
	iters     int
	seed      int64
	useGlobal bool
	popSize   int
)

// layoutProblem is the on-disk input format: the requested areas, JSON or
// TOML depending on the file extension.
type layoutProblem struct {
	Areas []venn.AreaSpec `json:"areas" toml:"areas"`
}

// layoutOutput is what the layout command writes for the rendering layer.
type layoutOutput struct {
	Circles     venn.Solution                 `json:"circles"`
	TextCentres map[string]arrange.TextCentre `json:"textCentres"`
	Loss        float64                       `json:"loss"`
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Run a single layout computation",
	Long:  `Reads area specs from a JSON or TOML file, computes the diagram, and writes scaled circles plus label anchors as JSON.`,
	RunE:  runLayout,
}

func init() {
	layoutCmd.Flags().StringVar(&inPath, "in", "", "Input problem file, .json or .toml (required)")
	layoutCmd.Flags().StringVar(&outPath, "out", "-", "Output JSON path, - for stdout")
	layoutCmd.Flags().Float64Var(&width, "width", 600, "Viewport width")
	layoutCmd.Flags().Float64Var(&height, "height", 350, "Viewport height")
	layoutCmd.Flags().Float64Var(&padding, "padding", 15, "Viewport padding")
	layoutCmd.Flags().IntVar(&iters, "iters", 500, "Max refinement iterations")
	layoutCmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	layoutCmd.Flags().BoolVar(&useGlobal, "global", false, "Also search positions globally with the mayfly optimizer")
	layoutCmd.Flags().IntVar(&popSize, "pop", 30, "Population size for the global optimizer")

	layoutCmd.MarkFlagRequired("in")
	rootCmd.AddCommand(layoutCmd)
}

func runLayout(cmd *cobra.Command, args []string) error {
	problem, err := loadProblem(inPath)
	if err != nil {
		return err
	}

	slog.Info("Starting layout", "areas", len(problem.Areas), "iters", iters)

	params := venn.Params{
		MaxIterations: iters,
		Seed:          seed,
	}
	if useGlobal {
		params.Global = opt.NewMayfly(iters, popSize, seed)
	}

	start := time.Now()
	solution, err := venn.Layout(problem.Areas, params)
	if err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}
	elapsed := time.Since(start)

	finalLoss := venn.Loss(solution, problem.Areas)

	normalized := arrange.NormalizeSolution(solution, arrange.DefaultOrientation)
	scaled := arrange.ScaleSolution(normalized, width, height, padding, logger)

	output := layoutOutput{
		Circles:     scaled,
		TextCentres: arrange.ComputeTextCentres(scaled, problem.Areas),
		Loss:        finalLoss,
	}

	if err := writeOutput(outPath, output); err != nil {
		return err
	}

	slog.Info("Layout complete",
		"elapsed", elapsed,
		"loss", finalLoss,
		"circles", len(scaled),
	)
	return nil
}

func loadProblem(path string) (*layoutProblem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem: %w", err)
	}

	var problem layoutProblem
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &problem); err != nil {
			return nil, fmt.Errorf("failed to parse TOML problem: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &problem); err != nil {
			return nil, fmt.Errorf("failed to parse JSON problem: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported problem format %q (want .json or .toml)", filepath.Ext(path))
	}

	if len(problem.Areas) == 0 {
		return nil, fmt.Errorf("problem file %s contains no areas", path)
	}
	return &problem, nil
}

func writeOutput(path string, output layoutOutput) error {
	encoded, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	encoded = append(encoded, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
