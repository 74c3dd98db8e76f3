package scorers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wardenproj/warden/internal/scoring"
)

func TestProcessesStoppedTowardTargetAwards(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	eng.Resources.Processes = append(eng.Resources.Processes, scoring.Process{
		Item: testItem(eng, 8, 4), Name: "nc", DefaultState: true, DesiredState: false,
	})
	src := &fakeSources{running: []string{"sshd", "cron"}}

	Processes(context.Background(), eng, src, nil)

	require.Equal(t, []string{"[+8] Process 'nc' has been stopped."}, eng.ScoringMessages)
}

func TestProcessesRestartedAwayFromTargetRemoves(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	eng.Resources.Processes = append(eng.Resources.Processes, scoring.Process{
		Item: testItem(eng, 8, 4), Name: "nc", DefaultState: false, DesiredState: false,
	})
	src := &fakeSources{running: []string{"nc"}}

	Processes(context.Background(), eng, src, nil)

	require.Equal(t, []string{"[-4] Process 'nc' has been started."}, eng.ScoringMessages)
}

func TestProcessesTableFailureSkipsCycle(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	eng.Resources.Processes = append(eng.Resources.Processes, scoring.Process{
		Item: testItem(eng, 8, 4), Name: "nc", DefaultState: true, DesiredState: false,
	})
	src := &fakeSources{runningErr: errors.New("boom")}

	Processes(context.Background(), eng, src, nil)

	require.Empty(t, eng.ScoringMessages)
}

func TestPackagesQueryFailureSkipsOnlyThatPackage(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	eng.Resources.Packages = append(eng.Resources.Packages,
		scoring.Package{Item: testItem(eng, 6, 3), Name: "ufw", Installed: false, Desired: true},
	)
	src := &fakeSources{pkgErr: errors.New("dpkg broken")}

	Packages(context.Background(), eng, src, nil)
	require.Empty(t, eng.ScoringMessages)

	src = &fakeSources{installedPkgs: map[string]bool{"ufw": true}}
	Packages(context.Background(), eng, src, nil)
	require.Equal(t, []string{"[+6] Package 'ufw' is installed."}, eng.ScoringMessages)
}

func TestPackagesUninstalledTowardTargetAwards(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	eng.Resources.Packages = append(eng.Resources.Packages,
		scoring.Package{Item: testItem(eng, 6, 3), Name: "john", Installed: true, Desired: false},
	)
	src := &fakeSources{installedPkgs: map[string]bool{}}

	Packages(context.Background(), eng, src, nil)

	require.Equal(t, []string{"[+6] Package 'john' was uninstalled."}, eng.ScoringMessages)
}

func TestServicesStartedTowardTargetAwards(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	eng.Resources.Services = append(eng.Resources.Services, scoring.Service{
		Item: testItem(eng, 9, 2), Name: "wuauserv", DefaultState: false, DesiredState: true,
	})
	src := &fakeSources{serviceStatus: map[string]string{"wuauserv": "RUNNING"}}

	Services(context.Background(), eng, src, nil)

	require.Equal(t, []string{"[+9] Service 'wuauserv' is running."}, eng.ScoringMessages)
}

func TestServicesUnknownStateSkipsService(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	eng.Resources.Services = append(eng.Resources.Services, scoring.Service{
		Item: testItem(eng, 9, 2), Name: "wuauserv", DefaultState: false, DesiredState: true,
	})
	src := &fakeSources{serviceStatus: map[string]string{"wuauserv": "start_pending"}}

	Services(context.Background(), eng, src, nil)

	require.Empty(t, eng.ScoringMessages)
}

func TestProgramsUninstalledTowardTargetAwards(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	eng.Resources.Programs = append(eng.Resources.Programs, scoring.Program{
		Item: testItem(eng, 7, 3), Name: "Wireshark", Installed: true, Desired: false,
	})
	src := &fakeSources{programs: []string{"7-Zip"}}

	Programs(context.Background(), eng, src, nil)

	require.Equal(t, []string{"[+7] 'Wireshark' is not installed."}, eng.ScoringMessages)
}

func TestFirewallEnabledTowardTargetAwards(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	eng.Resources.Firewall = append(eng.Resources.Firewall, scoring.FirewallProfile{
		Item: testItem(eng, 12, 6), Name: "private", StartingState: false, DesiredState: true,
	})
	src := &fakeSources{profiles: map[string]bool{"domain": false, "private": true, "public": false}}

	Firewall(context.Background(), eng, src, nil)

	require.Equal(t, []string{"[+12] Private firewall profile is now enabled."}, eng.ScoringMessages)
}

func TestFirewallUnreportedProfileIsSkipped(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	eng.Resources.Firewall = append(eng.Resources.Firewall, scoring.FirewallProfile{
		Item: testItem(eng, 12, 6), Name: "domain", StartingState: true, DesiredState: true,
	})
	src := &fakeSources{profiles: map[string]bool{"private": true}}

	Firewall(context.Background(), eng, src, nil)

	require.Empty(t, eng.ScoringMessages)
}
