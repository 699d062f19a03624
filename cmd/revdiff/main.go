package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cockroachdb/errors"

	"revdiff/internal/diag"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd, opts := newRootCmd()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		// RunE 之前的失败（未知旗标、互斥旗标冲突）一律归为配置错误
		if !opts.ran {
			err = errors.Mark(err, diag.ErrConfig)
		}
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "revdiff: %v\n", err)
		}
		return diag.ExitCode(err)
	}
	return diag.ExitOK
}
