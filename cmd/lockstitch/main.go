package main

import (
	"github.com/saylorsolutions/lockstitch/cmd/internal"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		internal.FatalErr(err)
	}
}
