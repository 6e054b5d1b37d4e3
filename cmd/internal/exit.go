package internal

import (
	"fmt"
	"os"
	"strings"

	"github.com/saylorsolutions/lockstitch/pkg/lockstitch"
)

// Exit codes reported by the lockstitch CLI.
const (
	ExitFailure     = 1
	ExitIOFailure   = 2
	ExitAuth        = 3
	ExitMalformed   = 4
	ExitConsistency = 5
)

// ExitCode maps err to the process exit code for its lockstitch.Kind.
func ExitCode(err error) int {
	switch lockstitch.KindOf(err) {
	case lockstitch.KindIOFailure:
		return ExitIOFailure
	case lockstitch.KindAuthentication:
		return ExitAuth
	case lockstitch.KindMalformedInput, lockstitch.KindMalformedContainer:
		return ExitMalformed
	case lockstitch.KindConsistency:
		return ExitConsistency
	default:
		return ExitFailure
	}
}

// FatalErr will Echo err and os.Exit with the code given by ExitCode.
func FatalErr(err error) {
	Echo("Error: %v", err)
	os.Exit(ExitCode(err))
}

// Echo will emit the given message without any logging formatting.
func Echo(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = fmt.Fprintf(os.Stderr, msg, args...)
}
