// Command catalogyaml rewrites translation catalogs in canonical YAML.
//
// Usage:
//
//	catalogyaml [flags] [file ...]
//
// Without files, or with "-", the catalog is read from stdin and the canonical
// form is written to stdout. With --write files are rewritten in place, with
// --check the command fails when a file is not canonical, and with --watch the
// files are processed again whenever they change.
//
// Exit status is 0 on success, 1 when a catalog could not be processed and
// 2 on usage errors.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr, afero.NewOsFs())
	stop()

	os.Exit(code)
}
