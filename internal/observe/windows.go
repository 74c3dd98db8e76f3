package observe

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/wardenproj/warden/internal/config"
	wardenerrors "github.com/wardenproj/warden/pkg/errors"
)

const uninstallKeyPath = `SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall`

// Windows observes live state through wmic, net, sc, reg, and netsh.
type Windows struct{}

// NewWindows constructs the Windows observer.
func NewWindows() *Windows {
	return &Windows{}
}

// Accounts enumerates local accounts (name to SID) and the members of
// the Administrators group.
func (w *Windows) Accounts(ctx context.Context) (map[string]string, []string, error) {
	out, err := commandOutput(ctx, "wmic", "useraccount", "get", "name,sid")
	if err != nil {
		return nil, nil, wardenerrors.NewObservationError("users", err)
	}

	ids := make(map[string]string)
	for _, line := range nonEmptyLines(out) {
		// Account names may contain spaces; the SID is always the last
		// column and always starts with "S-". The "Name SID" header row
		// fails the prefix check.
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		sid := fields[len(fields)-1]
		if !strings.HasPrefix(sid, "S-") {
			continue
		}
		ids[strings.Join(fields[:len(fields)-1], " ")] = sid
	}

	admins, err := w.localGroupMembers(ctx, "Administrators")
	if err != nil {
		return nil, nil, err
	}

	return ids, admins, nil
}

// localGroupMembers parses `net localgroup` output, which lists members
// between two dashed separator lines.
func (w *Windows) localGroupMembers(ctx context.Context, group string) ([]string, error) {
	out, err := commandOutput(ctx, "net", "localgroup", group)
	if err != nil {
		return nil, wardenerrors.NewObservationError("users", err)
	}

	var members []string
	inMembers := false
	for _, line := range nonEmptyLines(out) {
		if strings.HasPrefix(line, "---") {
			inMembers = true
			continue
		}
		if !inMembers {
			continue
		}
		if strings.HasPrefix(line, "The command completed") {
			break
		}
		members = append(members, line)
	}
	return members, nil
}

// ServiceStatus reports a service's run state from `sc query`.
func (w *Windows) ServiceStatus(ctx context.Context, name string) (string, error) {
	out, err := commandOutput(ctx, "sc", "query", name)
	if err != nil {
		return "", wardenerrors.NewObservationError("services", err)
	}

	for _, line := range nonEmptyLines(out) {
		if !strings.HasPrefix(line, "STATE") {
			continue
		}
		// STATE : 4  RUNNING
		fields := strings.Fields(line)
		if len(fields) < 4 {
			break
		}
		return strings.ToLower(fields[len(fields)-1]), nil
	}

	return "", wardenerrors.NewObservationError("services", fmt.Errorf("no STATE line for service %q", name))
}

// InstalledPrograms enumerates program display names from the uninstall
// registry key.
func (w *Windows) InstalledPrograms(ctx context.Context) ([]string, error) {
	out, err := commandOutput(ctx, "reg", "query", `HKLM\`+uninstallKeyPath, "/s", "/v", "DisplayName")
	if err != nil {
		return nil, wardenerrors.NewObservationError("programs", err)
	}

	var programs []string
	for _, line := range nonEmptyLines(out) {
		// DisplayName    REG_SZ    <name>
		if !strings.HasPrefix(line, "DisplayName") {
			continue
		}
		if name, ok := registryValueField(line); ok {
			programs = append(programs, name)
		}
	}
	return programs, nil
}

// FirewallProfiles parses `netsh advfirewall show allprofiles state`,
// which reports the profiles in order: domain, private, public.
func (w *Windows) FirewallProfiles(ctx context.Context) (map[string]bool, error) {
	out, err := commandOutput(ctx, "netsh", "advfirewall", "show", "allprofiles", "state")
	if err != nil {
		return nil, wardenerrors.NewObservationError("firewall", err)
	}

	order := []string{"domain", "private", "public"}
	profiles := make(map[string]bool, len(order))
	index := 0

	for _, line := range nonEmptyLines(out) {
		if !strings.HasPrefix(line, "State") || index >= len(order) {
			continue
		}
		fields := strings.Fields(line)
		state := strings.ToUpper(fields[len(fields)-1])
		profiles[order[index]] = state == "ON"
		index++
	}

	if index == 0 {
		return nil, wardenerrors.NewObservationError("firewall", fmt.Errorf("no profile state lines in netsh output"))
	}
	return profiles, nil
}

// RegistryValue reads one registry value via `reg query`. A query error
// combined with "unable to find" output reports not-found rather than
// an observation error.
func (w *Windows) RegistryValue(ctx context.Context, hive, keyPath, valueName string) (string, bool, error) {
	key := config.HiveAbbreviation(hive) + `\` + keyPath

	out, err := commandOutput(ctx, "reg", "query", key, "/v", valueName)
	if err != nil {
		// reg exits non-zero when the key or value does not exist.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", false, nil
		}
		return "", false, wardenerrors.NewObservationError("registry", err)
	}

	for _, line := range nonEmptyLines(out) {
		if !strings.HasPrefix(line, valueName) {
			continue
		}
		if value, ok := registryValueField(line); ok {
			return value, true, nil
		}
	}
	return "", false, nil
}

// registryValueField extracts the data column from a `reg query` output
// line of the form "<name>    <type>    <data>".
func registryValueField(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 3 || !strings.HasPrefix(fields[1], "REG_") {
		return "", false
	}
	return strings.Join(fields[2:], " "), true
}
