package generate

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	wardenerrors "github.com/wardenproj/warden/pkg/errors"
)

// LinuxProvisioner provisions accounts and dummy processes through the
// standard user management tooling.
type LinuxProvisioner struct{}

// NewLinuxProvisioner constructs the Linux provisioner.
func NewLinuxProvisioner() *LinuxProvisioner {
	return &LinuxProvisioner{}
}

// CreateAccount creates a local account with a home directory and adds
// it to the sudo group when admin is set.
func (p *LinuxProvisioner) CreateAccount(ctx context.Context, name string, admin bool) error {
	if err := runCommand(ctx, "users", "useradd", "-m", name); err != nil {
		return err
	}
	if admin {
		return runCommand(ctx, "users", "usermod", "-aG", "sudo", name)
	}
	return nil
}

// AccountID resolves an account name to its numeric uid.
func (p *LinuxProvisioner) AccountID(ctx context.Context, name string) (string, error) {
	out, err := exec.CommandContext(ctx, "id", "-u", name).Output()
	if err != nil {
		return "", wardenerrors.NewProvisionError("users", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// StartDummyProcess launches a long sleeper under the given command
// name so the process table shows it. The child is detached from ctx;
// it must outlive the generation pass.
func (p *LinuxProvisioner) StartDummyProcess(_ context.Context, name string) error {
	cmd := exec.Command("bash", "-c", `exec -a "$0" sleep infinity`, name)
	if err := cmd.Start(); err != nil {
		return wardenerrors.NewProvisionError("processes", err)
	}
	if err := cmd.Process.Release(); err != nil {
		return wardenerrors.NewProvisionError("processes", err)
	}
	return nil
}

func runCommand(ctx context.Context, resource, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if detail := strings.TrimSpace(string(out)); detail != "" {
			err = fmt.Errorf("%w: %s", err, detail)
		}
		return wardenerrors.NewProvisionError(resource, err)
	}
	return nil
}
