package scoring

// Item is the scorable base shared by every resource kind: identity,
// point values, and optional custom messages. An empty message means
// "unset" and defers to the call-site message at award/remove time.
type Item struct {
	EntryID         int    `json:"entry_id"`
	PositivePoints  int    `json:"positive_points"`
	NegativePoints  int    `json:"negative_points"`
	PositiveMessage string `json:"positive_message,omitempty"`
	NegativeMessage string `json:"negative_message,omitempty"`
}

// User is a local account scored on existence, identity, and admin
// membership. AccountID is the system id recorded at generation time; a
// re-created account gets a fresh id and is scored as removed.
type User struct {
	Item
	Name         string `json:"name"`
	Allowed      bool   `json:"allowed"`
	Admin        bool   `json:"admin"`
	AdminAtStart bool   `json:"admin_at_start"`
	AccountID    string `json:"account_id"`
}

// Process is scored on presence in the live process table.
type Process struct {
	Item
	Name         string `json:"name"`
	DefaultState bool   `json:"default_state"`
	DesiredState bool   `json:"desired_state"`
}

// Service is scored on its service-manager run state.
type Service struct {
	Item
	Name               string `json:"name"`
	CommonName         string `json:"common_name,omitempty"`
	DefaultState       bool   `json:"default_state"`
	DesiredState       bool   `json:"desired_state"`
	StartupMode        string `json:"startup_mode,omitempty"`
	DesiredStartupMode string `json:"desired_startup_mode,omitempty"`
}

// Package is scored on a package-manager installation query.
type Package struct {
	Item
	Name      string `json:"name"`
	Installed bool   `json:"installed"`
	Desired   bool   `json:"desired"`
}

// Program is scored on presence in the uninstall registry enumeration.
type Program struct {
	Item
	Name      string `json:"name"`
	Installed bool   `json:"installed"`
	Desired   bool   `json:"desired"`
}

// File is scored on bare filesystem existence against the desired state.
type File struct {
	Item
	Path  string `json:"path"`
	Exist bool   `json:"exist"`
}

// ConfigEntry is a configuration file scored on its trimmed content
// matching the positive or negative value.
type ConfigEntry struct {
	Item
	Path          string `json:"path"`
	DefaultValue  string `json:"default_value"`
	PositiveValue string `json:"positive_value"`
	NegativeValue string `json:"negative_value"`
	Create        bool   `json:"create"`
}

// RegistryEntry is a registry value scored on literal, decimal, or
// hexadecimal equality with the positive or negative value.
type RegistryEntry struct {
	Item
	Hive          string `json:"hive"`
	KeyPath       string `json:"key_path"`
	ValueName     string `json:"value_name"`
	DefaultValue  string `json:"default_value"`
	PositiveValue string `json:"positive_value"`
	NegativeValue string `json:"negative_value"`
}

// FirewallProfile is one firewall profile toggle.
type FirewallProfile struct {
	Item
	Name          string `json:"name"`
	StartingState bool   `json:"starting_state"`
	DesiredState  bool   `json:"desired_state"`
}

// ChallengeQuestion awards points when the trainee writes the expected
// answer into the question file.
type ChallengeQuestion struct {
	Item
	Name   string `json:"name"`
	Path   string `json:"path"`
	Answer string `json:"answer"`
}

// ResourceSet holds every scorable collection. The OS family selected at
// startup decides which slices are populated and which scorers run; the
// set itself is OS-neutral so one snapshot format covers both families.
type ResourceSet struct {
	Users              []User              `json:"users,omitempty"`
	Processes          []Process           `json:"processes,omitempty"`
	Services           []Service           `json:"services,omitempty"`
	Packages           []Package           `json:"packages,omitempty"`
	Programs           []Program           `json:"programs,omitempty"`
	Files              []File              `json:"files,omitempty"`
	ConfigFiles        []ConfigEntry       `json:"config_files,omitempty"`
	RegistryEntries    []RegistryEntry     `json:"registry_entries,omitempty"`
	Firewall           []FirewallProfile   `json:"firewall,omitempty"`
	ChallengeQuestions []ChallengeQuestion `json:"challenge_questions,omitempty"`
}
