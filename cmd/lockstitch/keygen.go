package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saylorsolutions/lockstitch/pkg/keymat"
	"github.com/saylorsolutions/lockstitch/pkg/lockstitch"
	"github.com/saylorsolutions/lockstitch/pkg/xor"
)

func (a *app) keygenCmd() *cobra.Command {
	var flags keygenFlags
	cmd := &cobra.Command{
		Use:   "keygen OUT",
		Short: "Generate new random key material and write it to OUT",
		Long: "Generate new random key material and write it to OUT.\n" +
			"Content encoded with one set of key material can only be decoded with the same key material.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blob, err := xor.GenHexKey(flags.length)
			if err != nil {
				return err
			}
			m, err := keymat.New(blob)
			if err != nil {
				return err
			}
			data := m.Bytes()
			if flags.seal {
				pass, err := readConfirmedSecret("Key file passphrase")
				if err != nil {
					return err
				}
				data, err = keymat.Seal(m, pass, nil)
				if err != nil {
					return err
				}
			}
			if err := os.WriteFile(args[0], data, 0600); err != nil {
				return fmt.Errorf("%w: %w", lockstitch.ErrIOFailure, err)
			}
			log.Info().Str("path", args[0]).Int("len", m.Len()).Bool("sealed", flags.seal).Msg("Wrote key material")
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}
