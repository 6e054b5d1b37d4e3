package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) fileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Encode or decode files",
	}
	cmd.AddCommand(
		a.fileEncryptCmd(),
		a.fileDecryptCmd(),
		a.fileInfoCmd(),
	)
	return cmd
}

func (f *fileFlags) resolvePassword(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("password") {
		return f.password, nil
	}
	pass, err := readSecret("Password")
	if err != nil {
		return "", err
	}
	return string(pass), nil
}

func (a *app) fileEncryptCmd() *cobra.Command {
	var flags fileFlags
	cmd := &cobra.Command{
		Use:   "encrypt PATH",
		Short: "Write PATH as an encoded container next to it, replacing its extension with .claudo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			pass, err := flags.resolvePassword(cmd)
			if err != nil {
				return err
			}
			out, err := e.EncryptFile(args[0], pass, flags.headSize)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	flags.register(cmd.Flags(), true)
	return cmd
}

func (a *app) fileDecryptCmd() *cobra.Command {
	var flags fileFlags
	cmd := &cobra.Command{
		Use:   "decrypt PATH",
		Short: "Restore the file stored in the container at PATH, using its original extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			pass, err := flags.resolvePassword(cmd)
			if err != nil {
				return err
			}
			out, err := e.DecryptFile(args[0], pass)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	flags.register(cmd.Flags(), false)
	return cmd
}

func (a *app) fileInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info PATH",
		Short: "Print the metadata of the container at PATH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			info, err := e.InspectFile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Size:      %d\n", info.Size)
			_, _ = fmt.Fprintf(out, "Extension: %s\n", info.Extension)
			_, _ = fmt.Fprintf(out, "Head size: %d\n", info.HeadSize)
			_, err = fmt.Fprintf(out, "Media:     %t\n", info.Media)
			return err
		},
	}
}
