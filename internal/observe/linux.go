package observe

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	wardenerrors "github.com/wardenproj/warden/pkg/errors"
)

// Linux observes live state through getent, ps, and dpkg-query.
type Linux struct{}

// NewLinux constructs the Linux observer.
func NewLinux() *Linux {
	return &Linux{}
}

// Accounts enumerates local accounts from the passwd database and the
// members of the sudo group.
func (l *Linux) Accounts(ctx context.Context) (map[string]string, []string, error) {
	out, err := commandOutput(ctx, "getent", "passwd")
	if err != nil {
		return nil, nil, wardenerrors.NewObservationError("users", err)
	}

	ids := make(map[string]string)
	for _, line := range nonEmptyLines(out) {
		// name:x:uid:gid:gecos:home:shell
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		ids[fields[0]] = fields[2]
	}

	var admins []string
	groupOut, err := commandOutput(ctx, "getent", "group", "sudo")
	if err != nil {
		// A missing sudo group is a machine with no sudoers, not a failure.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, nil, wardenerrors.NewObservationError("users", err)
		}
	} else if fields := strings.Split(strings.TrimSpace(groupOut), ":"); len(fields) >= 4 {
		for _, member := range strings.Split(fields[3], ",") {
			member = strings.TrimSpace(member)
			if member != "" {
				admins = append(admins, member)
			}
		}
	}

	return ids, admins, nil
}

// RunningProcesses lists command names from the live process table.
func (l *Linux) RunningProcesses(ctx context.Context) ([]string, error) {
	out, err := commandOutput(ctx, "ps", "-eo", "comm=")
	if err != nil {
		return nil, wardenerrors.NewObservationError("processes", err)
	}
	return nonEmptyLines(out), nil
}

// PackageInstalled queries dpkg for one package. A non-zero exit means
// the package is not installed; any other failure is an observation
// error.
func (l *Linux) PackageInstalled(ctx context.Context, name string) (bool, error) {
	out, err := commandOutput(ctx, "dpkg-query", "-W", "-f=${Status}", name)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return false, nil
		}
		return false, wardenerrors.NewObservationError("packages", err)
	}
	return strings.Contains(out, "install ok installed"), nil
}
