package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return NewEngine(Options{TotalScore: 100})
}

func TestNewEngineAssignsImageID(t *testing.T) {
	t.Parallel()

	first := newTestEngine()
	second := newTestEngine()

	require.NotEmpty(t, first.ImageID)
	require.NotEqual(t, first.ImageID, second.ImageID)
	require.True(t, first.SaveEnabled)
	require.Equal(t, DefaultInterval, first.Interval)
}

func TestNextEntryIDsAreSequential(t *testing.T) {
	t.Parallel()

	eng := newTestEngine()
	require.Equal(t, 1, eng.NextEntryID())
	require.Equal(t, 2, eng.NextEntryID())
	require.Equal(t, 3, eng.NextEntryID())
}

func TestAwardPointsPrefersItemMessage(t *testing.T) {
	t.Parallel()

	eng := newTestEngine()
	item := Item{EntryID: 1, PositivePoints: 10, PositiveMessage: "Custom gain."}

	eng.AwardPoints(&item, "call-site gain")

	require.Equal(t, 10, eng.CurrentScore)
	require.Equal(t, []string{"[+10] Custom gain."}, eng.ScoringMessages)
}

func TestAwardPointsFallsBackToCallSiteMessage(t *testing.T) {
	t.Parallel()

	eng := newTestEngine()
	item := Item{EntryID: 1, PositivePoints: 5}

	eng.AwardPoints(&item, "call-site gain")

	require.Equal(t, []string{"[+5] call-site gain"}, eng.ScoringMessages)
}

func TestAwardPointsWithNoMessageAtAll(t *testing.T) {
	t.Parallel()

	eng := newTestEngine()
	item := Item{EntryID: 1, PositivePoints: 5}

	eng.AwardPoints(&item, "")

	require.Equal(t, []string{"[+5] Unspecified message."}, eng.ScoringMessages)
}

func TestRemovePointsDebitsScore(t *testing.T) {
	t.Parallel()

	eng := newTestEngine()
	award := Item{EntryID: 1, PositivePoints: 10}
	penalty := Item{EntryID: 2, NegativePoints: 4, NegativeMessage: "Custom loss."}

	eng.AwardPoints(&award, "gain")
	eng.RemovePoints(&penalty, "call-site loss")

	require.Equal(t, 6, eng.CurrentScore)
	require.Equal(t, []string{"[+10] gain", "[-4] Custom loss."}, eng.ScoringMessages)
}

func TestRegisterMessagesAccumulate(t *testing.T) {
	t.Parallel()

	eng := newTestEngine()
	eng.RegisterConfigMessage("config issue")
	eng.RegisterGeneratorMessage("generator issue")
	eng.RegisterGeneratorMessage("another generator issue")

	require.Equal(t, []string{"config issue"}, eng.ConfigMessages)
	require.Equal(t, []string{"generator issue", "another generator issue"}, eng.GeneratorMessages)
}
