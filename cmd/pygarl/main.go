// Package main provides the pygarl CLI entry point.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/frh02/pygarl/pkg/config"
	"github.com/frh02/pygarl/pkg/middleware"
	"github.com/frh02/pygarl/pkg/sample"
)

var (
	version   = "0.1.0"
	commit    = "dev"
	buildTime = "unknown" // Set via ldflags: -X main.buildTime=$(date +%Y%m%d-%H%M%S)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pygarl",
		Short: "pygarl - Gesture sample filtering pipeline",
		Long: `pygarl filters recorded gesture sensor streams: it drops samples
without meaningful motion and groups the samples of one physical
gesture into a single sample, ready for training or recognition.

Sample files are JSON documents with a "data" matrix (one row per
time step) and an optional "gesture_id" label.`,
	}
	rootCmd.PersistentFlags().String("config", "", "Config file (default: auto-detect pygarl.yaml)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("pygarl v%s (%s) built %s\n", version, commit, buildTime)
		},
	})

	filterCmd := &cobra.Command{
		Use:   "filter [files...]",
		Short: "Replay recorded sample files through the gesture filter",
		Long: `Replay recorded sample files through the gradient threshold filter
in arrival (lexical) order, writing every emitted sample to the
output directory. Directories are expanded to their *.json files.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFilter,
	}
	filterCmd.Flags().Float64("threshold", -1, "Motion threshold (overrides config)")
	filterCmd.Flags().Bool("no-group", false, "Disable grouping, pass motion samples through one by one")
	filterCmd.Flags().Int("tolerance", -1, "Below-threshold samples tolerated inside a gesture (overrides config)")
	filterCmd.Flags().String("output", "", "Output directory (overrides config)")
	filterCmd.Flags().Bool("plot", false, "Render every emitted sample to the terminal")
	filterCmd.Flags().Bool("verbose", false, "Log the per-sample threshold decision")
	rootCmd.AddCommand(filterCmd)

	plotCmd := &cobra.Command{
		Use:   "plot <file>",
		Short: "Render a sample file in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	plotCmd.Flags().Int("width", 0, "Bar width in glyph cells (overrides config)")
	rootCmd.AddCommand(plotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves the config file (explicit flag or auto-detect) and
// applies env overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.FindConfigFile()
	}
	return config.LoadFromFile(path)
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Flag overrides
	if v, _ := cmd.Flags().GetFloat64("threshold"); v >= 0 {
		cfg.Filter.Threshold = v
	}
	if v, _ := cmd.Flags().GetBool("no-group"); v {
		cfg.Filter.Group = false
	}
	if v, _ := cmd.Flags().GetInt("tolerance"); v >= 0 {
		cfg.Filter.ToleranceLimit = v
	}
	if v, _ := cmd.Flags().GetString("output"); v != "" {
		cfg.IO.OutputDir = v
	}
	if v, _ := cmd.Flags().GetBool("plot"); v {
		cfg.Plot.Enabled = true
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Logging.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	paths, err := collectSampleFiles(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no sample files found in %v", args)
	}

	if err := os.MkdirAll(cfg.IO.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", cfg.IO.OutputDir, err)
	}

	filter := middleware.NewGradientThresholdFilter(middleware.Config{
		Threshold:      cfg.Filter.Threshold,
		Group:          cfg.Filter.Group,
		ToleranceLimit: cfg.Filter.ToleranceLimit,
		Verbose:        cfg.Logging.Verbose,
	})
	pipeline := middleware.NewPipeline(filter)
	if cfg.Plot.Enabled {
		renderer := &sample.TermRenderer{W: os.Stdout, Width: cfg.Plot.Width}
		pipeline.Append(middleware.NewPlotter(renderer))
	}

	fmt.Printf("🎛  Filtering %d samples (threshold=%g, group=%t, tolerance=%d)\n",
		len(paths), cfg.Filter.Threshold, cfg.Filter.Group, cfg.Filter.ToleranceLimit)

	emitted := 0
	for _, path := range paths {
		s, err := sample.Load(path)
		if err != nil {
			return err
		}
		out, err := pipeline.ProcessSample(s)
		if err != nil {
			return fmt.Errorf("processing %s: %w", path, err)
		}
		if out == nil {
			continue
		}
		outPath, err := writeSample(cfg.IO.OutputDir, out)
		if err != nil {
			return err
		}
		emitted++
		if cfg.Logging.Verbose {
			log.Printf("emitted %s (%d rows) -> %s", out.GestureID, out.Rows(), outPath)
		}
	}

	fmt.Printf("✅ Done: %d in, %d out", len(paths), emitted)
	if buffered := filter.Buffered(); buffered > 0 {
		fmt.Printf(" (%d rows still buffered in an unfinished gesture)", buffered)
	}
	fmt.Println()
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if v, _ := cmd.Flags().GetInt("width"); v > 0 {
		cfg.Plot.Width = v
	}

	s, err := sample.Load(args[0])
	if err != nil {
		return err
	}
	renderer := &sample.TermRenderer{W: os.Stdout, Width: cfg.Plot.Width}
	return s.Plot(renderer)
}

// collectSampleFiles expands directories to their *.json files and returns
// the full list in lexical order, matching capture order for the
// timestamped names the recorders produce.
func collectSampleFiles(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, "*.json"))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

// writeSample stores an emitted sample under a collision-free name.
func writeSample(dir string, s *sample.Sample) (string, error) {
	label := s.GestureID
	if label == "" {
		label = "sample"
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.json", label, uuid.New().String()[:8]))
	if err := s.Save(path); err != nil {
		return "", err
	}
	return path, nil
}
