package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"cookiekit"
)

var errFieldNotFound = errors.New("field not found")

func newGetCmd() *cobra.Command {
	var fallback string
	cmd := &cobra.Command{
		Use:   "get NAME [COOKIE]",
		Short: "Print the value of one field",
		Long:  `Print the value of field NAME. The cookie string is taken from COOKIE, or from stdin when COOKIE is omitted.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := cookieLine(cmd, args[1:])
			if err != nil {
				return err
			}
			v, ok := cookiekit.GetValue(args[0], line)
			if !ok {
				if !cmd.Flags().Changed("fallback") {
					return errors.Wrap(errFieldNotFound, args[0])
				}
				v = fallback
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
	cmd.Flags().StringVar(&fallback, "fallback", "", "value to print when the field is absent")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [COOKIE]",
		Short: "Print every name=value pair, one per line",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, err := cookieLine(cmd, args)
			if err != nil {
				return err
			}
			for _, c := range cookiekit.ReadCookies(line) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", c.Name, c.Value)
			}
			return nil
		},
	}
}

func cookieLine(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", errors.Wrap(err, "read cookie string from stdin")
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func init() {
	rootCmd.AddCommand(newGetCmd(), newListCmd())
}
