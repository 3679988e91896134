package main

import (
	"github.com/dgallion1/docsite/internal/site"
	"github.com/spf13/cobra"
)

var headingsCmd = &cobra.Command{
	Use:   "headings",
	Short: "List the document's headings and their anchor ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := site.NewBuilder(cfg, quietLogger()).Compile(cmd.Context())
		if err != nil {
			return err
		}
		FormatHeadings(cmd.OutOrStdout(), s.Headings)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(headingsCmd)
}
