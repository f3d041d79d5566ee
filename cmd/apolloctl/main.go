// Command apolloctl is a terminal front end for the Apollo back-office.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dalemusser/apollo/internal/app/system/listctl"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	cmd := newRootCmd(out, errOut)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		// List controller failures were already shown as notifications.
		var le *listctl.Error
		if !errors.As(err, &le) {
			fmt.Fprintln(errOut, "Error:", err)
		}
		return 1
	}
	return 0
}
