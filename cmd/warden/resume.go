package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wardenproj/warden/internal/observe"
	"github.com/wardenproj/warden/internal/scorers"
	"github.com/wardenproj/warden/internal/scoring"
)

func newResumeCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume scoring from the persisted engine snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResume(root)
		},
	}

	return cmd
}

func runResume(root *rootFlags) error {
	log, closeLog, err := newLogger(root)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	savePath, err := scoring.DefaultSavePath()
	if err != nil {
		return fmt.Errorf("resolve save path: %w", err)
	}

	eng, err := scoring.LoadSnapshot(savePath, log, nil)
	if err != nil {
		return err
	}

	reportPath, err := scoring.DefaultReportPath()
	if err != nil {
		return fmt.Errorf("resolve report path: %w", err)
	}
	eng.SetReportPath(reportPath)

	var table []scoring.KindScorer
	if runtime.GOOS == "windows" {
		table = scorers.WindowsTable(observe.NewWindows(), log)
	} else {
		table = scorers.LinuxTable(observe.NewLinux(), log)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng.Run(ctx, table)
	return nil
}
