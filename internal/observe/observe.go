// Package observe queries live system state for the scorers. Every
// probe shells out to standard OS tooling and parses the output, so
// probes degrade to plain observation errors on machines missing the
// tool rather than failing the build or the loop.
package observe

import (
	"context"
	"os/exec"
	"strings"
)

func commandOutput(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// nonEmptyLines splits command output into trimmed, non-empty lines.
func nonEmptyLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
