package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saylorsolutions/lockstitch/pkg/keymat"
	"github.com/saylorsolutions/lockstitch/pkg/lockstitch"
)

const securityNote = `
SECURITY:
    This is not encryption, this is obfuscation, and they are very different things!
Every key is a window into the same key material, so anybody holding the key material can try every offset.
Use lockstitch to keep content away from casual inspection only.`

type app struct {
	global globalFlags
}

func newRootCmd() *cobra.Command {
	a := new(app)
	root := &cobra.Command{
		Use:           "lockstitch",
		Short:         "Reversibly obfuscate strings and files",
		Long:          "lockstitch obfuscates strings and files with a window of shared key material, and restores them again.\n" + securityNote,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(a.global.logLevel, a.global.logFormat)
		},
	}
	a.global.register(root.PersistentFlags())
	root.AddCommand(
		a.textCmd(),
		a.fileCmd(),
		a.keygenCmd(),
	)
	return root
}

// keyFileCandidates lists the key material files looked for when --key-file isn't given, in order.
func keyFileCandidates(exeDir string) []string {
	return []string{
		filepath.Join(exeDir, "..", "Resources", keyFileName),
		filepath.Join(exeDir, keyFileName),
	}
}

func promptKeyPassphrase() ([]byte, error) {
	return readSecret("Key file passphrase")
}

// material resolves key material from --key-file, then the keyFileCandidates next to the executable, then the built-in default.
func (a *app) material() (*keymat.Material, error) {
	if a.global.keyFile != "" {
		data, err := os.ReadFile(a.global.keyFile)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read key file: %w", lockstitch.ErrIOFailure, err)
		}
		if a.global.sealed || keymat.IsSealed(data) {
			pass, err := promptKeyPassphrase()
			if err != nil {
				return nil, err
			}
			log.Debug().Str("path", a.global.keyFile).Msg("Opening sealed key material")
			return keymat.Open(data, pass)
		}
		log.Debug().Str("path", a.global.keyFile).Msg("Using key material file")
		return keymat.New(data)
	}

	var candidates []string
	if exe, err := os.Executable(); err == nil {
		candidates = keyFileCandidates(filepath.Dir(exe))
	}
	m, usedDefault, err := keymat.Load(promptKeyPassphrase, candidates...)
	if err != nil {
		return nil, err
	}
	if usedDefault {
		log.Debug().Msg("Using built-in key material")
	}
	return m, nil
}

func (a *app) engine() (*lockstitch.Engine, error) {
	m, err := a.material()
	if err != nil {
		return nil, err
	}
	return lockstitch.New(m, lockstitch.WithLogger(log.Logger))
}
