package main

import (
	"os"
)

func main() {
	os.Exit(newApp(os.Stdout, os.Stderr).exec(os.Args))
}

// exec runs the app and returns the process exit code, logging any failure.
func (a *app) exec(args []string) int {
	if err := a.Run(args); err != nil {
		a.log.Error().Err(err).Msg("command failed")
		return 1
	}
	return 0
}
