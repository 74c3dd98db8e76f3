package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wardenproj/warden/internal/logger"
)

type rootFlags struct {
	verbose bool
	logFile string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "warden",
		Short:         "Warden generates and scores security training images",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "Append logs to a file instead of stdout")

	cmd.AddCommand(newGenerateCmd(flags))
	cmd.AddCommand(newScoreCmd(flags))
	cmd.AddCommand(newResumeCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// newLogger builds the process logger from the root flags. The returned
// closer is non-nil when logs go to a file.
func newLogger(flags *rootFlags) (*logger.Logger, func() error, error) {
	opts := logger.Options{Level: "info", HumanReadable: true}
	if flags.verbose {
		opts.Level = "debug"
	}

	closer := func() error { return nil }
	if flags.logFile != "" {
		file, err := os.OpenFile(flags.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		opts.Writer = file
		opts.HumanReadable = false
		closer = file.Close
	}

	log, err := logger.New(opts)
	if err != nil {
		closer() //nolint:errcheck
		return nil, nil, err
	}
	return log, closer, nil
}
