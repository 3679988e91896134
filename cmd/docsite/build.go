package main

import (
	"github.com/dgallion1/docsite/internal/site"
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site into the output directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		res, err := site.NewBuilder(cfg, newLogger(false)).Build(cmd.Context())
		if err != nil {
			FormatBuildError(cmd.ErrOrStderr(), err)
			return err
		}
		FormatBuildSummary(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
