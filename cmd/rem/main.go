package main

import (
	"os"
	"strings"

	"rem-cli/internal/cli"
	"rem-cli/internal/store"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// rewriteTaskLookupArgs turns `rem [flags] <task-id>` into `rem [flags] show <task-id>`.
// Cobra would treat the id as an unknown subcommand, so argv is rewritten before parsing.
func rewriteTaskLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--dir":    true,
		"--config": true,
		"--format": true,
	}

	insertShow := func(at int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:at]...)
		out = append(out, "show")
		return append(out, argv[at:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		switch {
		case a == "":
			continue
		case a == "--":
			if i+1 < len(argv) && store.IsTaskID(argv[i+1]) {
				return insertShow(i)
			}
			return argv
		case strings.HasPrefix(a, "-"):
			// Unknown flags are skipped without consuming a value.
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}

		if store.IsTaskID(a) {
			return insertShow(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteTaskLookupArgs(os.Args)

	cmd := cli.NewRootCmd(version)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
