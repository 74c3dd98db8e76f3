package config

// Document represents the full warden image description: the machine's
// desired security posture plus the resources the generator must seed.
type Document struct {
	Format string `yaml:"format" validate:"required,eq=warden"`
	OS     string `yaml:"os" validate:"required,oneof=linux windows"`
	Score  int    `yaml:"score" validate:"required,min=1"`
	Readme string `yaml:"readme,omitempty"`

	Users              []UserEntry     `yaml:"users,omitempty" validate:"omitempty,dive"`
	Processes          []ProcessEntry  `yaml:"processes,omitempty" validate:"omitempty,dive"`
	Services           []ServiceEntry  `yaml:"services,omitempty" validate:"omitempty,dive"`
	Packages           []PackageEntry  `yaml:"packages,omitempty" validate:"omitempty,dive"`
	Programs           []ProgramEntry  `yaml:"programs,omitempty" validate:"omitempty,dive"`
	Files              []FileEntry     `yaml:"files,omitempty" validate:"omitempty,dive"`
	ConfigFiles        []ConfigEntry   `yaml:"config_files,omitempty" validate:"omitempty,dive"`
	RegistryEntries    []RegistryEntry `yaml:"registry_entries,omitempty" validate:"omitempty,dive"`
	Firewall           []FirewallEntry `yaml:"firewall,omitempty" validate:"omitempty,dive"`
	ChallengeQuestions []QuestionEntry `yaml:"challenge_questions,omitempty" validate:"omitempty,dive"`
}

// Points carries the award/removal values and optional custom messages
// shared by every scorable descriptor.
type Points struct {
	PositivePoints  int    `yaml:"positive_points" validate:"min=0"`
	NegativePoints  int    `yaml:"negative_points" validate:"min=0"`
	PositiveMessage string `yaml:"positive_message,omitempty"`
	NegativeMessage string `yaml:"negative_message,omitempty"`
}

// UserEntry describes an account to seed and score.
type UserEntry struct {
	Name string `yaml:"name" validate:"required"`
	// Allowed marks the account as legitimate; disallowed accounts are
	// expected to be deleted by the trainee.
	Allowed bool `yaml:"allowed"`
	// Admin is the desired privileged state; AdminAtStart is how the
	// account is provisioned.
	Admin        bool `yaml:"admin"`
	AdminAtStart bool `yaml:"admin_at_start"`
	Points       `yaml:",inline"`
}

// ProcessEntry describes a process scored on the Linux process table.
type ProcessEntry struct {
	Name         string `yaml:"name" validate:"required"`
	DefaultState bool   `yaml:"default_state"`
	DesiredState bool   `yaml:"desired_state"`
	// CreateDummy seeds a placeholder process under the given name.
	CreateDummy bool `yaml:"create_dummy"`
	Points      `yaml:",inline"`
}

// ServiceEntry describes a Windows service scored via the service manager.
type ServiceEntry struct {
	Name               string `yaml:"name" validate:"required"`
	CommonName         string `yaml:"common_name,omitempty"`
	DefaultState       bool   `yaml:"default_state"`
	DesiredState       bool   `yaml:"desired_state"`
	StartupMode        string `yaml:"startup_mode,omitempty"`
	DesiredStartupMode string `yaml:"desired_startup_mode,omitempty"`
	Points             `yaml:",inline"`
}

// PackageEntry describes a dpkg package.
type PackageEntry struct {
	Name      string `yaml:"name" validate:"required"`
	Installed bool   `yaml:"installed"`
	Desired   bool   `yaml:"desired"`
	Points    `yaml:",inline"`
}

// ProgramEntry describes an installed Windows program (uninstall registry).
type ProgramEntry struct {
	Name      string `yaml:"name" validate:"required"`
	Installed bool   `yaml:"installed"`
	Desired   bool   `yaml:"desired"`
	Points    `yaml:",inline"`
}

// FileEntry describes a path scored on bare existence.
type FileEntry struct {
	Path string `yaml:"path" validate:"required"`
	// Exist is the desired state; Create asks the generator to seed the file.
	Exist  bool `yaml:"exist"`
	Create bool `yaml:"create"`
	Points `yaml:",inline"`
}

// ConfigEntry describes a configuration file scored on its content.
type ConfigEntry struct {
	Path          string `yaml:"path" validate:"required"`
	DefaultValue  string `yaml:"default_value"`
	PositiveValue string `yaml:"positive_value"`
	NegativeValue string `yaml:"negative_value"`
	Create        bool   `yaml:"create"`
	Points        `yaml:",inline"`
}

// RegistryEntry describes a Windows registry value scored on its content.
type RegistryEntry struct {
	Hive          string `yaml:"hive" validate:"required,oneof=HKEY_LOCAL_MACHINE HKEY_CURRENT_USER"`
	KeyPath       string `yaml:"key_path" validate:"required"`
	ValueName     string `yaml:"value_name" validate:"required"`
	DefaultValue  string `yaml:"default_value"`
	PositiveValue string `yaml:"positive_value"`
	NegativeValue string `yaml:"negative_value"`
	Points        `yaml:",inline"`
}

// FirewallEntry describes one firewall profile toggle.
type FirewallEntry struct {
	Name          string `yaml:"name" validate:"required,oneof=domain private public"`
	StartingState bool   `yaml:"starting_state"`
	DesiredState  bool   `yaml:"desired_state"`
	Points        `yaml:",inline"`
}

// QuestionEntry describes a knowledge-check question file placed on the
// desktop; the trainee writes "answer: ..." into it.
type QuestionEntry struct {
	Name    string `yaml:"name" validate:"required"`
	Content string `yaml:"content" validate:"required"`
	Answer  string `yaml:"answer" validate:"required"`
	Point   int    `yaml:"points" validate:"min=0"`
}
