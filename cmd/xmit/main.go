// Command xmit installs the xmit release for this platform on first use and
// forwards every invocation to it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/xmit-co/xmit-npm/internal/dispatch"
	"github.com/xmit-co/xmit-npm/internal/release"
)

var (
	loadConfigFunc = func() (*release.Config, error) { return release.Load(release.Options{}) }
	runFunc        = dispatch.Run
)

func main() {
	runMain(os.Args, os.Stderr, os.Exit)
}

// runMain resolves the release config, runs the binary, and exits with its status.
// Arguments after the program name are forwarded untouched; the shim has no flags.
func runMain(args []string, stderr io.Writer, exit func(int)) {
	cfg, err := loadConfigFunc()
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		exit(1)
		return
	}

	var forwarded []string
	if len(args) > 1 {
		forwarded = args[1:]
	}
	code, err := runFunc(context.Background(), cfg, forwarded, dispatch.Options{})
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		exit(1)
		return
	}
	exit(code)
}
