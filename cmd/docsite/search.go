package main

import (
	"strings"

	"github.com/dgallion1/docsite/internal/search"
	"github.com/dgallion1/docsite/internal/site"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the rendered site from the terminal",
	Long: `search renders the source in memory, indexes it the same way the browser does
and prints the ranked results. Nothing is written to the output directory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := site.NewBuilder(cfg, quietLogger()).Compile(cmd.Context())
		if err != nil {
			return err
		}
		query := strings.Join(args, " ")
		results := search.NewIndex(s.Sections).Search(query)
		FormatResults(cmd.OutOrStdout(), query, results)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
