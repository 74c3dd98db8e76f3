package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPersistCreatesMissingDirectoryAndWrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "warden", "scoring_engine.json")
	eng := NewEngine(Options{TotalScore: 100, SavePath: path})

	eng.Persist()

	require.True(t, eng.SaveEnabled)
	require.FileExists(t, path)
}

func TestPersistRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scoring_engine.json")
	notifier := &fakeNotifier{}
	eng := NewEngine(Options{
		TotalScore:    200,
		Notifications: true,
		SavePath:      path,
		Notifier:      notifier,
	})

	user := User{
		Item: Item{EntryID: eng.NextEntryID(), PositivePoints: 10, NegativePoints: 5},
		Name: "alice", Allowed: true, AccountID: "1000",
	}
	eng.Resources.Users = append(eng.Resources.Users, user)
	eng.Resources.Files = append(eng.Resources.Files, File{
		Item: Item{EntryID: eng.NextEntryID(), PositivePoints: 3},
		Path: "/tmp/flag", Exist: false,
	})

	eng.AwardPoints(&eng.Resources.Users[0].Item, "gain")
	eng.RemovePoints(&eng.Resources.Files[0].Item, "loss")
	eng.RegisterGeneratorMessage("seed issue")
	eng.Persist()

	restored, err := LoadSnapshot(path, nil, &fakeNotifier{})
	require.NoError(t, err)

	require.Equal(t, eng.ImageID, restored.ImageID)
	require.Equal(t, 200, restored.TotalScore)
	require.Equal(t, eng.CurrentScore, restored.CurrentScore)
	require.Equal(t, eng.Interval, restored.Interval)
	require.True(t, restored.Notifications)
	require.True(t, restored.SaveEnabled)
	require.Equal(t, eng.ScoringMessages, restored.ScoringMessages)
	require.Equal(t, []string{"seed issue"}, restored.GeneratorMessages)
	require.Equal(t, eng.Resources, restored.Resources)

	// The entry allocator continues where it left off.
	require.Equal(t, 3, restored.NextEntryID())

	// Already shown alerts stay suppressed after a resume.
	wantPositive, wantNegative := eng.queue.Notified()
	gotPositive, gotNegative := restored.queue.Notified()
	require.Equal(t, wantPositive, gotPositive)
	require.Equal(t, wantNegative, gotNegative)
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json"), nil, nil)
	require.Error(t, err)
}

func TestLoadSnapshotCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "scoring_engine.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadSnapshot(path, nil, nil)
	require.Error(t, err)
}

func TestPersistLatchesAfterUnrecoverableFailure(t *testing.T) {
	t.Parallel()

	// A regular file where a directory is expected makes every write and
	// every mkdir fail, exhausting the single retry.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	eng := NewEngine(Options{TotalScore: 10, SavePath: filepath.Join(blocker, "scoring_engine.json")})

	eng.Persist()
	require.False(t, eng.SaveEnabled)
	require.Equal(t, []string{saveDisabledMessage}, eng.ConfigMessages)

	// Once latched, every further persist records the standing message
	// without touching the disk.
	eng.Persist()
	require.Equal(t, []string{saveDisabledMessage, saveDisabledMessage}, eng.ConfigMessages)
}
