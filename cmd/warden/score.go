package main

import (
	"github.com/spf13/cobra"

	"github.com/wardenproj/warden/internal/scoring"
)

func newScoreCmd(root *rootFlags) *cobra.Command {
	opts := generateOptions{ScoringOnly: true}

	cmd := &cobra.Command{
		Use:   "score <config>",
		Short: "Score an already provisioned machine against its document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ConfigPath = args[0]
			return runGenerate(root, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.Interval, "interval", scoring.DefaultInterval, "Pause between scoring cycles")
	cmd.Flags().BoolVar(&opts.NoNotifications, "no-notifications", false, "Disable desktop notifications")

	return cmd
}
