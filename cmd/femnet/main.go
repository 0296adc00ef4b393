// Package main provides femnet, which solves a manufactured heat problem on a
// triangle mesh and reports the L2 error of the finite element solution.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		var ue *userError
		if errors.As(err, &ue) {
			fmt.Println(ue.Error())
		} else {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
		}
		stop()
		os.Exit(1)
	}
}

// userError is printed verbatim to stdout before exiting with status 1
type userError struct {
	msg string
}

func (e *userError) Error() string { return e.msg }

var errMissingMesh = &userError{msg: "ERROR: Missing mesh."}
