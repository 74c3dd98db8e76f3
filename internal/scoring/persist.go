package scoring

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/wardenproj/warden/internal/logger"
	wardenerrors "github.com/wardenproj/warden/pkg/errors"
)

const saveFileName = "scoring_engine.json"

const saveDisabledMessage = "An error occurred saving the scoring engine to disk. " +
	"Saving has been disabled and the scoring engine CANNOT be resumed if it is " +
	"terminated or the virtual machine is powered down or restarted."

// DefaultSavePath returns the fixed per-OS location of the persisted
// engine snapshot.
func DefaultSavePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "warden", saveFileName), nil
}

// snapshot is the complete, self-describing serialized form of an
// engine: everything needed to resume scoring with no other input. It is
// built fresh at serialization time so the engine never serializes
// itself re-entrantly.
type snapshot struct {
	ImageID           string      `json:"image_id"`
	SavedAt           time.Time   `json:"saved_at"`
	TotalScore        int         `json:"total_score"`
	CurrentScore      int         `json:"current_score"`
	IntervalSeconds   int         `json:"interval_seconds"`
	Notifications     bool        `json:"notifications"`
	SaveEnabled       bool        `json:"save_enabled"`
	EntryCounter      int         `json:"entry_counter"`
	ScoringMessages   []string    `json:"scoring_messages"`
	ConfigMessages    []string    `json:"config_messages"`
	GeneratorMessages []string    `json:"generator_messages"`
	Resources         ResourceSet `json:"resources"`
	PositiveNotified  []int       `json:"positive_notified"`
	NegativeNotified  []int       `json:"negative_notified"`
}

func (e *Engine) snapshot() snapshot {
	positive, negative := e.queue.Notified()

	return snapshot{
		ImageID:           e.ImageID,
		SavedAt:           time.Now(),
		TotalScore:        e.TotalScore,
		CurrentScore:      e.CurrentScore,
		IntervalSeconds:   int(e.Interval / time.Second),
		Notifications:     e.Notifications,
		SaveEnabled:       e.SaveEnabled,
		EntryCounter:      e.entryID,
		ScoringMessages:   e.ScoringMessages,
		ConfigMessages:    e.ConfigMessages,
		GeneratorMessages: e.GeneratorMessages,
		Resources:         e.Resources,
		PositiveNotified:  positive,
		NegativeNotified:  negative,
	}
}

// Persist writes the engine snapshot to disk. Once saving has been
// disabled by an earlier unrecoverable failure it only records the
// standing configuration message; scoring continues unsaved.
func (e *Engine) Persist() {
	if !e.SaveEnabled {
		e.RegisterConfigMessage(saveDisabledMessage)
		return
	}
	e.save(false)
}

func (e *Engine) save(retry bool) {
	e.log.Debug("attempting to save scoring engine image to disk")

	data, err := json.MarshalIndent(e.snapshot(), "", "  ")
	if err != nil {
		e.log.Critical(err, "could not serialize scoring engine; saving will be disabled")
		e.SaveEnabled = false
		e.RegisterConfigMessage(saveDisabledMessage)
		return
	}

	if err := os.WriteFile(e.savePath, data, 0o644); err != nil {
		if retry {
			e.log.Critical(err, "could not save scoring engine after retry; saving will be disabled")
			e.SaveEnabled = false
			e.RegisterConfigMessage(saveDisabledMessage)
			return
		}

		if errors.Is(err, fs.ErrNotExist) {
			e.log.Warn("save directory missing, creating " + filepath.Dir(e.savePath))
			if mkErr := os.MkdirAll(filepath.Dir(e.savePath), 0o755); mkErr != nil {
				e.log.Error(mkErr, "could not create save directory")
			}
		} else {
			e.log.Error(err, "unexpected error saving scoring engine, retrying once")
		}
		e.save(true)
	}
}

// LoadSnapshot restores a previously persisted engine from path,
// reattaching the runtime collaborators that are not serialized. The
// caller treats any error as fatal: a resume failure is not retried.
func LoadSnapshot(path string, log *logger.Logger, notifier Notifier) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wardenerrors.NewPersistError(path, err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, wardenerrors.NewPersistError(path, err)
	}

	if notifier == nil {
		notifier = DesktopNotifier{}
	}
	engineLog := log.WithComponent("engine")

	interval := time.Duration(snap.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = DefaultInterval
	}

	eng := &Engine{
		ImageID:           snap.ImageID,
		TotalScore:        snap.TotalScore,
		CurrentScore:      snap.CurrentScore,
		Interval:          interval,
		Notifications:     snap.Notifications,
		SaveEnabled:       snap.SaveEnabled,
		ScoringMessages:   snap.ScoringMessages,
		ConfigMessages:    snap.ConfigMessages,
		GeneratorMessages: snap.GeneratorMessages,
		Resources:         snap.Resources,
		queue:             NewNotificationQueue(notifier, engineLog),
		entryID:           snap.EntryCounter,
		savePath:          path,
		log:               engineLog,
	}
	eng.queue.restore(snap.PositiveNotified, snap.NegativeNotified)

	return eng, nil
}

// SetReportPath points the engine at the report artifact to rewrite
// each cycle. Used after a resume, where the report path is not part of
// the snapshot contract.
func (e *Engine) SetReportPath(path string) {
	e.reportPath = path
}
