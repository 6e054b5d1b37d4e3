package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) textCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Encode or decode a string",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "encrypt STRING",
			Short: "Encode STRING and print the result",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := a.engine()
				if err != nil {
					return err
				}
				out, err := e.EncryptText(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			},
		},
		&cobra.Command{
			Use:   "decrypt STRING",
			Short: "Decode STRING produced by 'text encrypt' and print the result",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				e, err := a.engine()
				if err != nil {
					return err
				}
				out, err := e.DecryptText(args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			},
		},
	)
	return cmd
}
