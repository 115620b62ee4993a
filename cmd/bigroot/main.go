// Command bigroot extracts integer roots of arbitrarily large integers and
// manages the fixture suites used to check and benchmark them.
package main

import (
	"context"
	"io"
	"os"
)

var version = "dev"

func main() {
	if err := execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// execute runs one command line and always releases what setup acquired,
// whether or not the command failed.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c := &cli{stderr: stderr}
	cmd := newRootCmd(c, stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if cerr := c.teardown(context.Background()); err == nil {
		err = cerr
	}
	return err
}
