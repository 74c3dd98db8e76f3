package generate

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/wardenproj/warden/internal/config"
	wardenerrors "github.com/wardenproj/warden/pkg/errors"
)

// WindowsProvisioner provisions accounts, services, firewall profiles,
// and registry values through net, sc, netsh, and reg.
type WindowsProvisioner struct{}

// NewWindowsProvisioner constructs the Windows provisioner.
func NewWindowsProvisioner() *WindowsProvisioner {
	return &WindowsProvisioner{}
}

// CreateAccount creates a local account and adds it to the
// Administrators group when admin is set.
func (p *WindowsProvisioner) CreateAccount(ctx context.Context, name string, admin bool) error {
	if err := runCommand(ctx, "users", "net", "user", name, "/add"); err != nil {
		return err
	}
	if admin {
		return runCommand(ctx, "users", "net", "localgroup", "Administrators", name, "/add")
	}
	return nil
}

// AccountID resolves an account name to its SID.
func (p *WindowsProvisioner) AccountID(ctx context.Context, name string) (string, error) {
	query := fmt.Sprintf("name='%s'", name)
	out, err := exec.CommandContext(ctx, "wmic", "useraccount", "where", query, "get", "sid").Output()
	if err != nil {
		return "", wardenerrors.NewProvisionError("users", err)
	}

	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if strings.HasPrefix(line, "S-") {
			return line, nil
		}
	}
	return "", wardenerrors.NewProvisionError("users", fmt.Errorf("no SID reported for account %q", name))
}

// ConfigureService sets the startup mode when one is documented and
// brings the service to the requested run state. Start and stop errors
// are tolerated: the service manager exits non-zero when the service is
// already in the requested state.
func (p *WindowsProvisioner) ConfigureService(ctx context.Context, name, startupMode string, running bool) error {
	if startupMode != "" {
		mode, err := serviceStartValue(startupMode)
		if err != nil {
			return err
		}
		if err := runCommand(ctx, "services", "sc", "config", name, "start="+mode); err != nil {
			return err
		}
	}

	verb := "stop"
	if running {
		verb = "start"
	}
	err := runCommand(ctx, "services", "net", verb, name)
	var provErr *wardenerrors.ProvisionError
	var exitErr *exec.ExitError
	if errors.As(err, &provErr) && errors.As(provErr.Err, &exitErr) {
		return nil
	}
	return err
}

func serviceStartValue(mode string) (string, error) {
	switch strings.ToLower(mode) {
	case "automatic":
		return "auto", nil
	case "manual":
		return "demand", nil
	case "disabled":
		return "disabled", nil
	default:
		return "", wardenerrors.NewProvisionError("services", fmt.Errorf("unknown startup mode %q", mode))
	}
}

// SetFirewallProfile toggles one profile through netsh.
func (p *WindowsProvisioner) SetFirewallProfile(ctx context.Context, profile string, enabled bool) error {
	state := "off"
	if enabled {
		state = "on"
	}
	return runCommand(ctx, "firewall", "netsh", "advfirewall", "set", profile+"profile", "state", state)
}

// SetRegistryValue writes one value through reg add, choosing REG_DWORD
// for numeric data and REG_SZ otherwise.
func (p *WindowsProvisioner) SetRegistryValue(ctx context.Context, hive, keyPath, valueName, value string) error {
	key := config.HiveAbbreviation(hive) + `\` + keyPath

	kind := "REG_SZ"
	if _, err := strconv.ParseInt(strings.TrimSpace(value), 0, 64); err == nil {
		kind = "REG_DWORD"
	}

	return runCommand(ctx, "registry", "reg", "add", key, "/v", valueName, "/t", kind, "/d", value, "/f")
}
