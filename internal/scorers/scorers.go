// Package scorers holds one comparison routine per resource kind. Each
// routine is a pure mapping from (baseline, target, live observation) to
// award, remove, or no-op, invoked by the engine every cycle. Inability
// to observe live state is logged and treated as a no-op for the cycle,
// never as an award or removal.
package scorers

import (
	"context"

	"github.com/wardenproj/warden/internal/logger"
	"github.com/wardenproj/warden/internal/scoring"
)

type outcome int

const (
	stay outcome = iota
	award
	remove
)

// toggle decides the outcome for kinds where the live state is a single
// boolean (running, installed, enabled). No change from the baseline is
// never scored; a change toward the target awards, away from it removes.
func toggle(baseline, target, live bool) outcome {
	switch {
	case live == baseline:
		return stay
	case live == target:
		return award
	default:
		return remove
	}
}

// AccountSource enumerates local accounts (name to system id) and the
// members of the admin group.
type AccountSource interface {
	Accounts(ctx context.Context) (ids map[string]string, admins []string, err error)
}

// ProcessSource lists the names in the live process table.
type ProcessSource interface {
	RunningProcesses(ctx context.Context) ([]string, error)
}

// PackageSource answers whether a package is installed.
type PackageSource interface {
	PackageInstalled(ctx context.Context, name string) (bool, error)
}

// ServiceSource reports a service's run state ("running", "stopped", or
// anything else for unknown).
type ServiceSource interface {
	ServiceStatus(ctx context.Context, name string) (string, error)
}

// ProgramSource enumerates installed program display names.
type ProgramSource interface {
	InstalledPrograms(ctx context.Context) ([]string, error)
}

// FirewallSource reports the enabled state per firewall profile.
type FirewallSource interface {
	FirewallProfiles(ctx context.Context) (map[string]bool, error)
}

// RegistrySource reads one registry value as a string.
type RegistrySource interface {
	RegistryValue(ctx context.Context, hive, keyPath, valueName string) (value string, found bool, err error)
}

// LinuxSources is the observation surface the Linux scorer table needs.
type LinuxSources interface {
	AccountSource
	ProcessSource
	PackageSource
}

// WindowsSources is the observation surface the Windows scorer table needs.
type WindowsSources interface {
	AccountSource
	ServiceSource
	ProgramSource
	FirewallSource
	RegistrySource
}

// LinuxTable returns the Linux scorers in their fixed cycle order:
// users first, then kind-specific resources, shared file and question
// checks last.
func LinuxTable(src LinuxSources, log *logger.Logger) []scoring.KindScorer {
	return []scoring.KindScorer{
		{Kind: "users", Score: func(ctx context.Context, eng *scoring.Engine) {
			Users(ctx, eng, src, log)
		}},
		{Kind: "packages", Score: func(ctx context.Context, eng *scoring.Engine) {
			Packages(ctx, eng, src, log)
		}},
		{Kind: "processes", Score: func(ctx context.Context, eng *scoring.Engine) {
			Processes(ctx, eng, src, log)
		}},
		{Kind: "config_files", Score: func(ctx context.Context, eng *scoring.Engine) {
			ConfigFiles(eng, log)
		}},
		{Kind: "challenge_questions", Score: func(ctx context.Context, eng *scoring.Engine) {
			Questions(eng, log)
		}},
		{Kind: "files", Score: func(ctx context.Context, eng *scoring.Engine) {
			Files(eng, log)
		}},
	}
}

// WindowsTable returns the Windows scorers in their fixed cycle order.
func WindowsTable(src WindowsSources, log *logger.Logger) []scoring.KindScorer {
	return []scoring.KindScorer{
		{Kind: "users", Score: func(ctx context.Context, eng *scoring.Engine) {
			Users(ctx, eng, src, log)
		}},
		{Kind: "programs", Score: func(ctx context.Context, eng *scoring.Engine) {
			Programs(ctx, eng, src, log)
		}},
		{Kind: "firewall", Score: func(ctx context.Context, eng *scoring.Engine) {
			Firewall(ctx, eng, src, log)
		}},
		{Kind: "registry_entries", Score: func(ctx context.Context, eng *scoring.Engine) {
			RegistryEntries(ctx, eng, src, log)
		}},
		{Kind: "services", Score: func(ctx context.Context, eng *scoring.Engine) {
			Services(ctx, eng, src, log)
		}},
		{Kind: "challenge_questions", Score: func(ctx context.Context, eng *scoring.Engine) {
			Questions(eng, log)
		}},
		{Kind: "files", Score: func(ctx context.Context, eng *scoring.Engine) {
			Files(eng, log)
		}},
	}
}
