package scoring

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wardenproj/warden/internal/logger"
)

// DefaultInterval is the pause between scoring cycles unless overridden
// by the operator.
const DefaultInterval = 30 * time.Second

const unspecifiedMessage = "Unspecified message."

// Options describes engine configuration supplied at creation time.
type Options struct {
	TotalScore    int
	Interval      time.Duration
	Notifications bool
	SavePath      string
	ReportPath    string
	Notifier      Notifier
	Logger        *logger.Logger
}

// Engine owns all scorable collections, the running score, the message
// logs, and the entry-id allocator. It is constructed once per process
// and is the unit of persistence. All mutation happens on the single
// loop goroutine; the engine itself performs no locking.
type Engine struct {
	ImageID       string
	TotalScore    int
	CurrentScore  int
	Interval      time.Duration
	Notifications bool
	SaveEnabled   bool

	// ScoringMessages and ConfigMessages are rebuilt every cycle.
	// GeneratorMessages persist for the life of the image.
	ScoringMessages   []string
	ConfigMessages    []string
	GeneratorMessages []string

	Resources ResourceSet

	queue      *NotificationQueue
	entryID    int
	savePath   string
	reportPath string
	log        *logger.Logger
}

// NewEngine constructs a fresh engine. TotalScore is fixed for the
// engine's lifetime; everything else is rebuilt each cycle.
func NewEngine(opts Options) *Engine {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	notifier := opts.Notifier
	if notifier == nil {
		notifier = DesktopNotifier{}
	}

	log := opts.Logger.WithComponent("engine")

	return &Engine{
		ImageID:       uuid.NewString(),
		TotalScore:    opts.TotalScore,
		Interval:      interval,
		Notifications: opts.Notifications,
		SaveEnabled:   true,
		queue:         NewNotificationQueue(notifier, log),
		savePath:      opts.SavePath,
		reportPath:    opts.ReportPath,
		log:           log,
	}
}

// NextEntryID allocates a fresh scoring id. Ids start at 1, are never
// reused, and key notification de-duplication across save/resume.
func (e *Engine) NextEntryID() int {
	e.entryID++
	return e.entryID
}

// AwardPoints credits the item's positive points and records a scoring
// message. The item's own positive message, when set, wins over the
// call-site message. Not idempotent: the scorer must call this at most
// once per item per cycle.
func (e *Engine) AwardPoints(item *Item, message string) {
	text := item.PositiveMessage
	if text == "" {
		text = message
	}
	if text == "" {
		text = unspecifiedMessage
	}

	entry := fmt.Sprintf("[+%d] %s", item.PositivePoints, text)
	e.log.WithFields(map[string]any{"entry_id": item.EntryID, "message": entry}).Debug("award points")

	e.CurrentScore += item.PositivePoints
	e.ScoringMessages = append(e.ScoringMessages, entry)
	e.queueNotification(item, true)
}

// RemovePoints debits the item's negative points and records a scoring
// message, with the same message precedence as AwardPoints.
func (e *Engine) RemovePoints(item *Item, message string) {
	text := item.NegativeMessage
	if text == "" {
		text = message
	}
	if text == "" {
		text = unspecifiedMessage
	}

	entry := fmt.Sprintf("[-%d] %s", item.NegativePoints, text)
	e.log.WithFields(map[string]any{"entry_id": item.EntryID, "message": entry}).Debug("remove points")

	e.CurrentScore -= item.NegativePoints
	e.ScoringMessages = append(e.ScoringMessages, entry)
	e.queueNotification(item, false)
}

func (e *Engine) queueNotification(item *Item, positive bool) {
	if !e.Notifications {
		return
	}
	e.queue.Issue(item.EntryID, positive)
}

// RegisterConfigMessage adds a message to the configuration list on the
// scoring report, used for scoring-engine errors. Cleared each cycle.
func (e *Engine) RegisterConfigMessage(message string) {
	e.ConfigMessages = append(e.ConfigMessages, message)
	e.log.Critical(nil, message)
}

// RegisterGeneratorMessage adds a message to the generator error list,
// which persists through every cycle for the life of the image.
func (e *Engine) RegisterGeneratorMessage(message string) {
	e.GeneratorMessages = append(e.GeneratorMessages, message)
	e.log.Critical(nil, message)
}
