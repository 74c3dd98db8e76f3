package generate

import "context"

// AccountProvisioner creates local accounts and resolves their system
// ids. AccountID is also used in scoring-only mode, where the accounts
// already exist and only their ids need recording.
type AccountProvisioner interface {
	CreateAccount(ctx context.Context, name string, admin bool) error
	AccountID(ctx context.Context, name string) (string, error)
}

// ProcessProvisioner seeds placeholder processes for scored names that
// have no real program behind them.
type ProcessProvisioner interface {
	StartDummyProcess(ctx context.Context, name string) error
}

// ServiceProvisioner sets a service's startup mode and run state. An
// empty startupMode leaves the mode as installed.
type ServiceProvisioner interface {
	ConfigureService(ctx context.Context, name, startupMode string, running bool) error
}

// FirewallProvisioner toggles one firewall profile.
type FirewallProvisioner interface {
	SetFirewallProfile(ctx context.Context, profile string, enabled bool) error
}

// RegistryProvisioner writes one registry value.
type RegistryProvisioner interface {
	SetRegistryValue(ctx context.Context, hive, keyPath, valueName, value string) error
}

// LinuxProvisioners is the provisioning surface the Linux build needs.
type LinuxProvisioners interface {
	AccountProvisioner
	ProcessProvisioner
}

// WindowsProvisioners is the provisioning surface the Windows build needs.
type WindowsProvisioners interface {
	AccountProvisioner
	ServiceProvisioner
	FirewallProvisioner
	RegistryProvisioner
}

// BuildLinux runs the Linux generation pass in the same order the
// scorers later walk the resources.
func BuildLinux(ctx context.Context, g *Generator, prov LinuxProvisioners) {
	g.Readme()
	g.Users(ctx, prov)
	g.Packages()
	g.Processes(ctx, prov)
	g.ConfigFiles()
	g.Questions()
	g.Files()
}

// BuildWindows runs the Windows generation pass.
func BuildWindows(ctx context.Context, g *Generator, prov WindowsProvisioners) {
	g.Readme()
	g.Users(ctx, prov)
	g.Programs()
	g.Firewall(ctx, prov)
	g.RegistryEntries(ctx, prov)
	g.Services(ctx, prov)
	g.Questions()
	g.Files()
}
