package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wardenproj/warden/internal/config"
	"github.com/wardenproj/warden/internal/generate"
	"github.com/wardenproj/warden/internal/logger"
	"github.com/wardenproj/warden/internal/observe"
	"github.com/wardenproj/warden/internal/scorers"
	"github.com/wardenproj/warden/internal/scoring"
)

// osMismatchError reports a document written for a different operating
// system than the one running the build.
type osMismatchError struct {
	documented string
	running    string
}

func (e *osMismatchError) Error() string {
	return fmt.Sprintf("document targets %s but this machine is %s", e.documented, e.running)
}

type generateOptions struct {
	ConfigPath      string
	Interval        time.Duration
	NoNotifications bool
	ScoringOnly     bool
	GeneratorOnly   bool
}

func newGenerateCmd(root *rootFlags) *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <config>",
		Short: "Provision the training image and start the scoring loop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = args[0]
			return runGenerate(root, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Interval, "interval", scoring.DefaultInterval, "Pause between scoring cycles")
	cmd.Flags().BoolVar(&opts.NoNotifications, "no-notifications", false, "Disable desktop notifications")
	cmd.Flags().BoolVar(&opts.ScoringOnly, "scoring-only", false, "Score an already provisioned machine without touching it")
	cmd.Flags().BoolVar(&opts.GeneratorOnly, "generator-only", false, "Provision the machine without starting the scoring loop")
	cmd.MarkFlagsMutuallyExclusive("scoring-only", "generator-only")

	return cmd
}

func runGenerate(root *rootFlags, opts generateOptions) error {
	log, closeLog, err := newLogger(root)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	doc, err := config.ParseDocument(opts.ConfigPath)
	if err != nil {
		return err
	}
	if doc.OS != runtime.GOOS {
		return &osMismatchError{documented: doc.OS, running: runtime.GOOS}
	}

	desktop, err := generate.DefaultDesktop()
	if err != nil {
		return fmt.Errorf("resolve desktop directory: %w", err)
	}
	savePath, err := scoring.DefaultSavePath()
	if err != nil {
		return fmt.Errorf("resolve save path: %w", err)
	}
	reportPath, err := scoring.DefaultReportPath()
	if err != nil {
		return fmt.Errorf("resolve report path: %w", err)
	}

	eng := scoring.NewEngine(scoring.Options{
		TotalScore:    doc.Score,
		Interval:      opts.Interval,
		Notifications: !opts.NoNotifications,
		SavePath:      savePath,
		ReportPath:    reportPath,
		Logger:        log,
	})

	gen := generate.NewGenerator(doc, eng, desktop, generate.Options{
		ScoringOnly:   opts.ScoringOnly,
		GeneratorOnly: opts.GeneratorOnly,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	table := buildImage(ctx, doc.OS, gen, log)

	if opts.GeneratorOnly {
		log.Info("image generated, skipping the scoring loop")
		return nil
	}

	eng.Run(ctx, table)
	return nil
}

// buildImage runs the OS-specific generation pass and returns the
// matching scorer table.
func buildImage(ctx context.Context, osName string, gen *generate.Generator, log *logger.Logger) []scoring.KindScorer {
	if osName == "windows" {
		generate.BuildWindows(ctx, gen, generate.NewWindowsProvisioner())
		return scorers.WindowsTable(observe.NewWindows(), log)
	}
	generate.BuildLinux(ctx, gen, generate.NewLinuxProvisioner())
	return scorers.LinuxTable(observe.NewLinux(), log)
}
