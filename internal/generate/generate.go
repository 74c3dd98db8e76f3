// Package generate seeds a training image from a parsed document. It
// provisions accounts, files, and OS settings to their documented
// starting state and registers the matching scorable items with the
// engine. A provisioning failure is recorded as a generator message and
// never aborts the build; the affected item is still registered so the
// scorable surface stays consistent with the document.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/wardenproj/warden/internal/config"
	"github.com/wardenproj/warden/internal/logger"
	"github.com/wardenproj/warden/internal/scoring"
)

const (
	readmeFileName = "readme"

	questionHeader = "Write the correct answer after the \"answer:\" label " +
		"below, then save this file.\n\n"
)

// Options selects the generator's mode. The zero value provisions the
// machine and registers items, which is the normal first boot.
type Options struct {
	// ScoringOnly registers items without touching the machine, for
	// images that were provisioned earlier or by hand.
	ScoringOnly bool
	// GeneratorOnly provisions the machine without registering items,
	// for preparing an image that a separate engine run will score.
	GeneratorOnly bool
}

// Generator walks a document once, kind by kind, in the same order the
// scorers later run.
type Generator struct {
	doc     *config.Document
	eng     *scoring.Engine
	desktop string
	log     *logger.Logger

	provision  bool
	buildItems bool
}

// DefaultDesktop returns the trainee's desktop directory, where the
// readme and question files are placed and where $DESKTOP paths expand.
func DefaultDesktop() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Desktop"), nil
}

// NewGenerator wires a generator over the given document and engine.
func NewGenerator(doc *config.Document, eng *scoring.Engine, desktop string, opts Options, log *logger.Logger) *Generator {
	return &Generator{
		doc:        doc,
		eng:        eng,
		desktop:    desktop,
		log:        log.WithComponent("generator"),
		provision:  !opts.ScoringOnly,
		buildItems: !opts.GeneratorOnly,
	}
}

// item converts a document's point block into a scorable item with a
// freshly allocated entry id.
func (g *Generator) item(p config.Points) scoring.Item {
	return scoring.Item{
		EntryID:         g.eng.NextEntryID(),
		PositivePoints:  p.PositivePoints,
		NegativePoints:  p.NegativePoints,
		PositiveMessage: p.PositiveMessage,
		NegativeMessage: p.NegativeMessage,
	}
}

func (g *Generator) fail(err error, message string) {
	g.log.Error(err, message)
	g.eng.RegisterGeneratorMessage(fmt.Sprintf("%s: %v", message, err))
}

// expandPath substitutes the $DESKTOP placeholder in document paths.
func (g *Generator) expandPath(path string) string {
	return strings.ReplaceAll(path, "$DESKTOP", g.desktop)
}

// seedFile writes content to path, creating parent directories as
// needed. An existing file is left alone so a regenerated image never
// clobbers trainee work.
func (g *Generator) seedFile(path string, content []byte) {
	if _, err := os.Stat(path); err == nil {
		g.log.Warn("file already exists, skipping to prevent data loss: " + path)
		return
	} else if !errors.Is(err, fs.ErrNotExist) {
		g.fail(err, "Could not inspect '"+path+"'")
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		g.fail(err, "Could not create parent directory for '"+path+"'")
		return
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		g.fail(err, "Could not create '"+path+"'")
	}
}

// Readme places the document's readme text on the desktop.
func (g *Generator) Readme() {
	if !g.provision || g.doc.Readme == "" {
		return
	}
	g.log.Debug("writing readme")
	g.seedFile(filepath.Join(g.desktop, readmeFileName), []byte(g.doc.Readme))
}

// Users provisions the documented accounts and records each account's
// live system id, which later distinguishes a surviving account from a
// deleted and re-created one.
func (g *Generator) Users(ctx context.Context, prov AccountProvisioner) {
	for _, entry := range g.doc.Users {
		if g.provision {
			if err := prov.CreateAccount(ctx, entry.Name, entry.AdminAtStart); err != nil {
				g.fail(err, "Could not create user '"+entry.Name+"'")
			}
		}
		if !g.buildItems {
			continue
		}

		id, err := prov.AccountID(ctx, entry.Name)
		if err != nil {
			g.fail(err, "Could not look up the account id of '"+entry.Name+"'")
		}

		g.eng.Resources.Users = append(g.eng.Resources.Users, scoring.User{
			Item:         g.item(entry.Points),
			Name:         entry.Name,
			Allowed:      entry.Allowed,
			Admin:        entry.Admin,
			AdminAtStart: entry.AdminAtStart,
			AccountID:    id,
		})
	}
}

// Processes seeds dummy processes where requested and registers the
// process items.
func (g *Generator) Processes(ctx context.Context, prov ProcessProvisioner) {
	for _, entry := range g.doc.Processes {
		if g.provision && entry.CreateDummy && entry.DefaultState {
			if err := prov.StartDummyProcess(ctx, entry.Name); err != nil {
				g.fail(err, "Could not start dummy process '"+entry.Name+"'")
			}
		}
		if !g.buildItems {
			continue
		}

		g.eng.Resources.Processes = append(g.eng.Resources.Processes, scoring.Process{
			Item:         g.item(entry.Points),
			Name:         entry.Name,
			DefaultState: entry.DefaultState,
			DesiredState: entry.DesiredState,
		})
	}
}

// Services sets each documented service's startup mode and run state to
// its starting configuration and registers the service items.
func (g *Generator) Services(ctx context.Context, prov ServiceProvisioner) {
	for _, entry := range g.doc.Services {
		if g.provision {
			if err := prov.ConfigureService(ctx, entry.Name, entry.StartupMode, entry.DefaultState); err != nil {
				g.fail(err, "Could not configure service '"+entry.Name+"'")
			}
		}
		if !g.buildItems {
			continue
		}

		g.eng.Resources.Services = append(g.eng.Resources.Services, scoring.Service{
			Item:               g.item(entry.Points),
			Name:               entry.Name,
			CommonName:         entry.CommonName,
			DefaultState:       entry.DefaultState,
			DesiredState:       entry.DesiredState,
			StartupMode:        entry.StartupMode,
			DesiredStartupMode: entry.DesiredStartupMode,
		})
	}
}

// Packages registers package items. Installation state is taken as
// found; the generator never installs or removes software.
func (g *Generator) Packages() {
	if !g.buildItems {
		return
	}
	for _, entry := range g.doc.Packages {
		g.eng.Resources.Packages = append(g.eng.Resources.Packages, scoring.Package{
			Item:      g.item(entry.Points),
			Name:      entry.Name,
			Installed: entry.Installed,
			Desired:   entry.Desired,
		})
	}
}

// Programs registers program items. As with packages, installation is
// left to the image author.
func (g *Generator) Programs() {
	if !g.buildItems {
		return
	}
	for _, entry := range g.doc.Programs {
		g.eng.Resources.Programs = append(g.eng.Resources.Programs, scoring.Program{
			Item:      g.item(entry.Points),
			Name:      entry.Name,
			Installed: entry.Installed,
			Desired:   entry.Desired,
		})
	}
}

// Files seeds the tracked paths marked for creation and registers the
// file items. $DESKTOP in a path expands to the trainee's desktop.
func (g *Generator) Files() {
	for _, entry := range g.doc.Files {
		path := g.expandPath(entry.Path)

		if g.provision && entry.Create {
			g.seedFile(path, nil)
		}
		if !g.buildItems {
			continue
		}

		g.eng.Resources.Files = append(g.eng.Resources.Files, scoring.File{
			Item:  g.item(entry.Points),
			Path:  path,
			Exist: entry.Exist,
		})
	}
}

// ConfigFiles seeds configuration files with their default content and
// registers the content items.
func (g *Generator) ConfigFiles() {
	for _, entry := range g.doc.ConfigFiles {
		path := g.expandPath(entry.Path)

		if g.provision && entry.Create {
			g.seedFile(path, []byte(entry.DefaultValue))
		}
		if !g.buildItems {
			continue
		}

		g.eng.Resources.ConfigFiles = append(g.eng.Resources.ConfigFiles, scoring.ConfigEntry{
			Item:          g.item(entry.Points),
			Path:          path,
			DefaultValue:  entry.DefaultValue,
			PositiveValue: entry.PositiveValue,
			NegativeValue: entry.NegativeValue,
			Create:        entry.Create,
		})
	}
}

// RegistryEntries sets each documented value to its default and
// registers the registry items.
func (g *Generator) RegistryEntries(ctx context.Context, prov RegistryProvisioner) {
	for _, entry := range g.doc.RegistryEntries {
		if g.provision && entry.DefaultValue != "" {
			if err := prov.SetRegistryValue(ctx, entry.Hive, entry.KeyPath, entry.ValueName, entry.DefaultValue); err != nil {
				g.fail(err, fmt.Sprintf("Could not set registry value %s in %s\\%s",
					entry.ValueName, entry.Hive, entry.KeyPath))
			}
		}
		if !g.buildItems {
			continue
		}

		g.eng.Resources.RegistryEntries = append(g.eng.Resources.RegistryEntries, scoring.RegistryEntry{
			Item:          g.item(entry.Points),
			Hive:          entry.Hive,
			KeyPath:       entry.KeyPath,
			ValueName:     entry.ValueName,
			DefaultValue:  entry.DefaultValue,
			PositiveValue: entry.PositiveValue,
			NegativeValue: entry.NegativeValue,
		})
	}
}

// Firewall sets each documented profile to its starting state and
// registers the firewall items.
func (g *Generator) Firewall(ctx context.Context, prov FirewallProvisioner) {
	for _, entry := range g.doc.Firewall {
		if g.provision {
			if err := prov.SetFirewallProfile(ctx, entry.Name, entry.StartingState); err != nil {
				g.fail(err, "Could not set the "+entry.Name+" firewall profile")
			}
		}
		if !g.buildItems {
			continue
		}

		g.eng.Resources.Firewall = append(g.eng.Resources.Firewall, scoring.FirewallProfile{
			Item:          g.item(entry.Points),
			Name:          entry.Name,
			StartingState: entry.StartingState,
			DesiredState:  entry.DesiredState,
		})
	}
}

// Questions writes one question file per entry onto the desktop and
// registers the question items. The file carries an answering hint,
// the question text, and an empty answer label for the trainee to fill.
func (g *Generator) Questions() {
	for _, entry := range g.doc.ChallengeQuestions {
		path := filepath.Join(g.desktop, entry.Name)

		if g.provision {
			content := questionHeader + entry.Content + "\n\nanswer: \n"
			g.seedFile(path, []byte(content))
		}
		if !g.buildItems {
			continue
		}

		g.eng.Resources.ChallengeQuestions = append(g.eng.Resources.ChallengeQuestions, scoring.ChallengeQuestion{
			Item: scoring.Item{
				EntryID:        g.eng.NextEntryID(),
				PositivePoints: entry.Point,
			},
			Name:   entry.Name,
			Path:   path,
			Answer: entry.Answer,
		})
	}
}
