// Command opana computes configured analyses over Go packages through the
// analysis manager and reports what was constructed and what survived the
// declared preservation set.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "opana",
		Short:        "analysis cache driver over Go packages",
		SilenceUsage: true,
	}
	root.AddCommand(runCmd())

	return root
}

func runCmd() *cobra.Command {
	var (
		configPath string
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "run [patterns]",
		Short: "compute configured analyses over the matched packages",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}

			return run(logger, cfg, dir, args)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "opana.yaml", "pipeline config path")
	cmd.Flags().StringVar(&dir, "dir", "", "working directory for package loading")

	return cmd
}
