package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cookiekit"
)

var rootCmd = &cobra.Command{
	Use:           "cookiefield",
	Short:         "Read fields from a Cookie header string",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := cookiekit.LoadConfig()
		if err != nil {
			return err
		}
		cookiekit.SetDefaultConfig(cfg)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
