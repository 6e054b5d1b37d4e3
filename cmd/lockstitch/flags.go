package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

const (
	envKeyFile  = "LOCKSTITCH_KEY_FILE"
	envLogLevel = "LOCKSTITCH_LOG_LEVEL"
	keyFileName = "Code.txt"
)

type globalFlags struct {
	keyFile   string
	sealed    bool
	logLevel  string
	logFormat string
}

func envOr(name, fallback string) string {
	if val := os.Getenv(name); val != "" {
		return val
	}
	return fallback
}

func (g *globalFlags) register(flags *flag.FlagSet) {
	flags.StringVarP(&g.keyFile, "key-file", "k", envOr(envKeyFile, ""), "Key material file. Defaults to $"+envKeyFile+", then ../Resources/"+keyFileName+" relative to the executable, then "+keyFileName+" next to the executable, then the built-in key material.")
	flags.BoolVar(&g.sealed, "sealed", false, "The key file is sealed with a passphrase, which will be prompted for. Sealed files are also detected automatically.")
	flags.StringVar(&g.logLevel, "log-level", envOr(envLogLevel, "warn"), "Log level (debug, info, warn, error).")
	flags.StringVar(&g.logFormat, "log-format", "console", "Log output format (console, json).")
}

type fileFlags struct {
	password string
	headSize int
}

func (f *fileFlags) register(flags *flag.FlagSet, withHead bool) {
	flags.StringVarP(&f.password, "password", "p", "", "Container password. Prompted for when not given.")
	if withHead {
		flags.IntVar(&f.headSize, "head", 0, "Number of leading bytes to also keep unencrypted at the front of the container. At most half the file size.")
	}
}

type keygenFlags struct {
	length int
	seal   bool
}

func (k *keygenFlags) register(flags *flag.FlagSet) {
	flags.IntVarP(&k.length, "length", "n", 2048, "Number of hex characters of key material to generate.")
	flags.BoolVar(&k.seal, "seal", false, "Seal the key file with a passphrase, which will be prompted for.")
}
