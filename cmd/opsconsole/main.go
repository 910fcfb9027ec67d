package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage prefers the user facing message of API errors
func errorMessage(err error) string {
	var ue interface{ UserError() string }
	if errors.As(err, &ue) {
		return ue.UserError()
	}
	return err.Error()
}
