package main

import (
	"github.com/spf13/cobra"
)

var devCmd = &cobra.Command{
	Use:   "dev",
	Short: "Serve the site and rebuild it whenever the source changes",
	Long: `dev serves the site like serve, polls the source document for changes and
rebuilds it. Open pages reload themselves after every successful build.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runServer(cmd, cfg, newLogger(false), true)
	},
}

func init() {
	devCmd.Flags().StringP("port", "p", "", "listen port (overrides PORT)")
	rootCmd.AddCommand(devCmd)
}
