// Command ritual tracks a morning and a night routine and the streak of days
// on which both were finished.
package main

import (
	"context"
	"os"

	"github.com/roach88/ritual/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
