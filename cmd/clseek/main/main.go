package main

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/arthur-debert/clseek/cmd/clseek"
	"github.com/arthur-debert/clseek/pkg/errors"
	"github.com/arthur-debert/clseek/pkg/style"
)

// exitError is the status of any failure that is not a tool result
const exitError = 255

func main() {
	rootCmd := clseek.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		var status *clseek.ExitStatus
		if stderrors.As(err, &status) {
			os.Exit(status.Code)
		}

		fmt.Fprintln(os.Stderr, style.Apply("error", "Error: "+errors.Message(err)))
		os.Exit(exitError)
	}
}
