package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Results print to stdout with fmt; diagnostics and errors go to stderr
// through the console logger.
var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Logger()

var cmdMain = &cobra.Command{
	Use:   "romulus",
	Short: "KW-26-style synchronous teleprinter stream cipher",
	Run:   printUsageAndExit1,
}

func main() {
	_ = cmdMain.Execute()
}

func printUsageAndExit1(cmd *cobra.Command, args []string) {
	_ = cmd.Usage()
	os.Exit(1)
}

func fatalf(format string, args ...interface{}) {
	logger.Fatal().Msgf(format, args...)
}

func check(err error) {
	if err != nil {
		fatalf("%v", err)
	}
}
