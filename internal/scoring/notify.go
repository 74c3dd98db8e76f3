package scoring

import (
	"sort"

	"github.com/gen2brain/beeep"

	"github.com/wardenproj/warden/internal/logger"
)

const (
	notifyTitle  = "Warden"
	gainedPoints = "You have gained points!"
	lostPoints   = "You have lost points."
)

// Notifier dispatches a transient desktop alert. Dispatch is
// fire-and-forget: failures are logged and never block scoring.
type Notifier interface {
	Notify(title, message string) error
}

// DesktopNotifier sends OS-level toast notifications.
type DesktopNotifier struct{}

// Notify displays a desktop toast.
func (DesktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// NotificationQueue de-duplicates "points changed" alerts per entry id.
// Once a positive alert has been shown for an item, further positive
// events are suppressed until a negative event re-arms them, and vice
// versa.
type NotificationQueue struct {
	positive map[int]struct{}
	negative map[int]struct{}
	notifier Notifier
	log      *logger.Logger
}

// NewNotificationQueue constructs an empty queue dispatching through the
// given notifier.
func NewNotificationQueue(notifier Notifier, log *logger.Logger) *NotificationQueue {
	return &NotificationQueue{
		positive: make(map[int]struct{}),
		negative: make(map[int]struct{}),
		notifier: notifier,
		log:      log,
	}
}

// Issue records the event for the entry id and dispatches an alert
// unless an identical-polarity alert is already outstanding.
func (q *NotificationQueue) Issue(entryID int, positive bool) {
	shown, cleared := q.positive, q.negative
	message := gainedPoints
	if !positive {
		shown, cleared = q.negative, q.positive
		message = lostPoints
	}

	if _, seen := shown[entryID]; seen {
		return
	}

	shown[entryID] = struct{}{}
	delete(cleared, entryID)

	q.log.WithFields(map[string]any{"entry_id": entryID, "positive": positive}).Debug("displaying notification")

	if err := q.notifier.Notify(notifyTitle, message); err != nil {
		q.log.Warn("could not display notification: " + err.Error())
	}
}

// Notified returns the sorted entry ids in each polarity set, for
// persistence.
func (q *NotificationQueue) Notified() (positive, negative []int) {
	for id := range q.positive {
		positive = append(positive, id)
	}
	for id := range q.negative {
		negative = append(negative, id)
	}
	sort.Ints(positive)
	sort.Ints(negative)
	return positive, negative
}

func (q *NotificationQueue) restore(positive, negative []int) {
	for _, id := range positive {
		q.positive[id] = struct{}{}
	}
	for _, id := range negative {
		q.negative[id] = struct{}{}
	}
}
