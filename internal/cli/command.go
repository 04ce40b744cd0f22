package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperkh65/loadsim/config"
	"github.com/hyperkh65/loadsim/internal/domain/model"
	"github.com/hyperkh65/loadsim/internal/export"
	"github.com/hyperkh65/loadsim/internal/i18n"
	"github.com/hyperkh65/loadsim/internal/importer"
	"github.com/hyperkh65/loadsim/internal/logger"
	"github.com/hyperkh65/loadsim/internal/service"
)

// FormatText prints the utilization table instead of a rendered document.
const FormatText = "text"

// ErrNoContainer is returned when neither the plan nor the flags name a container.
var ErrNoContainer = errors.New("no container given, set container in the plan or pass --container")

type options struct {
	plan      string
	items     string
	container string
	catalog   string
	mode      string
	format    string
	view      string
	out       string
	locale    string
	logLevel  string
}

// NewRootCommand returns the loadsim command writing its output to stdout.
func NewRootCommand(stdout io.Writer) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "loadsim --plan plan.yaml",
		Short: "Simulate loading cartons into a shipping container.",
		Long: `loadsim packs the cartons of a loading plan into a shipping container
and prints the utilization report, or renders it as a PDF report, carton
labels, an Excel workbook, a DXF drawing or an SVG view.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PreRun: func(*cobra.Command, []string) {
			logger.Init(opts.logLevel, true)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, stdout)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.plan, "plan", "p", "", "YAML loading plan")
	f.StringVarP(&opts.items, "items", "i", "", "cargo sheet (.xlsx or .csv) appended to the plan items")
	f.StringVarP(&opts.container, "container", "c", "", "container code, overrides the plan")
	f.StringVar(&opts.catalog, "catalog", "", "YAML container catalog, defaults to the built-in presets")
	f.StringVarP(&opts.mode, "mode", "m", "", "rotation mode: none or global_best, overrides the plan")
	f.StringVarP(&opts.format, "format", "f", FormatText, "output: text, pdf, labels, xlsx, dxf or svg")
	f.StringVar(&opts.view, "view", "", "SVG projection: top or side")
	f.StringVarP(&opts.out, "out", "o", "", "output file, - for stdout")
	f.StringVar(&opts.locale, "locale", i18n.DefaultLocale, "language of warnings: en or ko")
	f.StringVar(&opts.logLevel, "log-level", "warn", "diagnostic log level")

	return cmd
}

// Execute runs the root command with the process arguments.
func Execute() error {
	cmd := NewRootCommand(os.Stdout)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "loadsim:", err)
		return err
	}
	return nil
}

func run(ctx context.Context, opts *options, stdout io.Writer) error {
	plan := &Plan{}
	if opts.plan != "" {
		loaded, err := LoadPlan(opts.plan)
		if err != nil {
			return err
		}
		plan = loaded
	}
	if opts.items != "" {
		if err := appendSheet(plan, opts.items); err != nil {
			return err
		}
	}
	if opts.container != "" {
		plan.Container = opts.container
		plan.ContainerDimensions = nil
	}
	if opts.mode != "" {
		plan.RotationMode = opts.mode
	}
	if plan.Container == "" && plan.ContainerDimensions == nil {
		return ErrNoContainer
	}

	req := plan.Request()
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid plan: %w", err)
	}

	container, err := resolveContainer(ctx, opts.catalog, plan)
	if err != nil {
		return err
	}

	sim, err := service.NewSimulatorService().Simulate(service.SimulationInput{
		Container: container,
		Mode:      req.Mode(),
		Requests:  req.BoxRequests(),
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("container", container.Code).
		Int("placed", sim.Result.PlacedCount()).
		Int("overflow", sim.Result.OverflowCount()).
		Float64("utilization_percent", sim.Report.UtilizationPercent).
		Msg("Simulation complete")

	return writeOutput(opts, sim, stdout)
}

func appendSheet(plan *Plan, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open cargo sheet: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	result, err := importer.Import(filepath.Base(path), file)
	if err != nil {
		return err
	}
	if err := result.Err(); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	for _, w := range result.Warnings {
		log.Warn().Str("file", path).Msg(w)
	}
	plan.Items = append(plan.Items, result.Items...)
	return nil
}

func resolveContainer(ctx context.Context, catalogPath string, plan *Plan) (model.Container, error) {
	if plan.ContainerDimensions != nil {
		return model.CustomContainer(plan.ContainerDimensions.ToModel()), nil
	}

	presets, err := config.LoadContainerCatalog(catalogPath)
	if err != nil {
		return model.Container{}, err
	}
	return service.NewContainerCatalog(presets, nil).Get(ctx, plan.Container)
}

func writeOutput(opts *options, sim model.Simulation, stdout io.Writer) error {
	if opts.format == FormatText {
		return withOutput(opts.out, stdout, func(w io.Writer) error {
			return WriteText(w, sim, opts.locale)
		})
	}

	format, err := export.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	view, err := export.ParseView(opts.view)
	if err != nil {
		return err
	}

	out := opts.out
	if out == "" {
		out = format.FileName(sim)
	}
	err = withOutput(out, stdout, func(w io.Writer) error {
		return export.Write(w, format, sim, export.Options{View: view})
	})
	if err == nil && out != "-" {
		log.Info().Str("file", out).Str("format", string(format)).Msg("Export written")
	}
	return err
}

// withOutput calls write with stdout for "" and "-", or with a newly created file.
func withOutput(path string, stdout io.Writer, write func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return write(stdout)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return write(file)
}
