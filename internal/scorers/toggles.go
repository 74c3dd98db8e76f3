package scorers

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/wardenproj/warden/internal/logger"
	"github.com/wardenproj/warden/internal/scoring"
)

// Processes scores each tracked process against the live process table.
func Processes(ctx context.Context, eng *scoring.Engine, src ProcessSource, log *logger.Logger) {
	if len(eng.Resources.Processes) == 0 {
		return
	}

	log.Debug("scoring processes")

	running, err := src.RunningProcesses(ctx)
	if err != nil {
		log.Error(err, "could not read the process table, skipping process scoring this cycle")
		return
	}

	for i := range eng.Resources.Processes {
		process := &eng.Resources.Processes[i]
		live := slices.Contains(running, process.Name)

		message := fmt.Sprintf("Process '%s' has been stopped.", process.Name)
		if live {
			message = fmt.Sprintf("Process '%s' has been started.", process.Name)
		}

		switch toggle(process.DefaultState, process.DesiredState, live) {
		case award:
			eng.AwardPoints(&process.Item, message)
		case remove:
			eng.RemovePoints(&process.Item, message)
		}
	}
}

// Packages scores each tracked package with a per-package manager query.
// A failed query for one package no-ops that package only.
func Packages(ctx context.Context, eng *scoring.Engine, src PackageSource, log *logger.Logger) {
	if len(eng.Resources.Packages) == 0 {
		return
	}

	log.Debug("scoring packages")

	for i := range eng.Resources.Packages {
		pkg := &eng.Resources.Packages[i]

		live, err := src.PackageInstalled(ctx, pkg.Name)
		if err != nil {
			log.Error(err, "could not query package "+pkg.Name+", skipping it this cycle")
			continue
		}

		message := fmt.Sprintf("Package '%s' was uninstalled.", pkg.Name)
		if live {
			message = fmt.Sprintf("Package '%s' is installed.", pkg.Name)
		}

		switch toggle(pkg.Installed, pkg.Desired, live) {
		case award:
			eng.AwardPoints(&pkg.Item, message)
		case remove:
			eng.RemovePoints(&pkg.Item, message)
		}
	}
}

// Services scores each tracked service against the service manager. An
// unknown state (starting, paused, not found) no-ops the service for the
// cycle.
func Services(ctx context.Context, eng *scoring.Engine, src ServiceSource, log *logger.Logger) {
	if len(eng.Resources.Services) == 0 {
		return
	}

	log.Debug("scoring services")

	for i := range eng.Resources.Services {
		service := &eng.Resources.Services[i]

		status, err := src.ServiceStatus(ctx, service.Name)
		if err != nil {
			log.Error(err, "could not query service "+service.Name+", skipping it this cycle")
			continue
		}

		var live bool
		switch strings.ToLower(status) {
		case "running":
			live = true
		case "stopped":
			live = false
		default:
			log.Warn("service '" + service.Name + "' is in an unknown state: " + status)
			continue
		}

		message := fmt.Sprintf("Service '%s' is stopped.", service.Name)
		if live {
			message = fmt.Sprintf("Service '%s' is running.", service.Name)
		}

		switch toggle(service.DefaultState, service.DesiredState, live) {
		case award:
			eng.AwardPoints(&service.Item, message)
		case remove:
			eng.RemovePoints(&service.Item, message)
		}
	}
}

// Programs scores each tracked program against the uninstall registry
// enumeration.
func Programs(ctx context.Context, eng *scoring.Engine, src ProgramSource, log *logger.Logger) {
	if len(eng.Resources.Programs) == 0 {
		return
	}

	log.Debug("scoring installed programs")

	installed, err := src.InstalledPrograms(ctx)
	if err != nil {
		log.Error(err, "could not enumerate installed programs, skipping program scoring this cycle")
		return
	}

	for i := range eng.Resources.Programs {
		program := &eng.Resources.Programs[i]
		live := slices.Contains(installed, program.Name)

		message := fmt.Sprintf("'%s' is not installed.", program.Name)
		if live {
			message = fmt.Sprintf("'%s' is now installed.", program.Name)
		}

		switch toggle(program.Installed, program.Desired, live) {
		case award:
			eng.AwardPoints(&program.Item, message)
		case remove:
			eng.RemovePoints(&program.Item, message)
		}
	}
}

// Firewall scores each tracked firewall profile toggle. Profiles the
// query did not report are skipped.
func Firewall(ctx context.Context, eng *scoring.Engine, src FirewallSource, log *logger.Logger) {
	if len(eng.Resources.Firewall) == 0 {
		return
	}

	log.Debug("scoring firewall profiles")

	profiles, err := src.FirewallProfiles(ctx)
	if err != nil {
		log.Error(err, "could not query firewall profiles, skipping firewall scoring this cycle")
		return
	}

	for i := range eng.Resources.Firewall {
		profile := &eng.Resources.Firewall[i]

		live, present := profiles[profile.Name]
		if !present {
			log.Warn("firewall profile '" + profile.Name + "' was not reported, skipping it this cycle")
			continue
		}

		title := capitalize(profile.Name)
		message := fmt.Sprintf("%s firewall profile is now disabled.", title)
		if live {
			message = fmt.Sprintf("%s firewall profile is now enabled.", title)
		}

		switch toggle(profile.StartingState, profile.DesiredState, live) {
		case award:
			eng.AwardPoints(&profile.Item, message)
		case remove:
			eng.RemovePoints(&profile.Item, message)
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
