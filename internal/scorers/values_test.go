package scorers

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wardenproj/warden/internal/scoring"
)

func TestValuesMatch(t *testing.T) {
	t.Parallel()

	cases := []struct {
		live, target string
		want         bool
	}{
		{"enabled", "enabled", true},
		{"enabled", "disabled", false},
		{"1", "1", true},
		{"0x1", "1", true},
		{"1", "0x1", true},
		{"0x10", "16", true},
		{"17", "0x10", false},
		{"anything", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, valuesMatch(tc.live, tc.target),
			"live=%q target=%q", tc.live, tc.target)
	}
}

func writeConfigEntry(t *testing.T, eng *scoring.Engine, content string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sshd_config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	eng.Resources.ConfigFiles = append(eng.Resources.ConfigFiles, scoring.ConfigEntry{
		Item:          testItem(eng, 10, 5),
		Path:          path,
		DefaultValue:  "PermitRootLogin yes",
		PositiveValue: "PermitRootLogin no",
		NegativeValue: "PermitRootLogin without-password",
	})
}

func TestConfigFilesPositiveMatchAwards(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	writeConfigEntry(t, eng, "PermitRootLogin no\n")

	ConfigFiles(eng, nil)

	require.Equal(t, 10, eng.CurrentScore)
	require.Len(t, eng.ScoringMessages, 1)
	require.Contains(t, eng.ScoringMessages[0], "matches positive value")
}

func TestConfigFilesNegativeMatchRemoves(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	writeConfigEntry(t, eng, "PermitRootLogin without-password")

	ConfigFiles(eng, nil)

	require.Equal(t, -5, eng.CurrentScore)
	require.Contains(t, eng.ScoringMessages[0], "matches negative value")
}

func TestConfigFilesDefaultMatchScoresNothing(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	writeConfigEntry(t, eng, "PermitRootLogin yes")

	ConfigFiles(eng, nil)

	require.Zero(t, eng.CurrentScore)
	require.Empty(t, eng.ScoringMessages)
}

func TestConfigFilesUnreadableFileIsSkipped(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	eng.Resources.ConfigFiles = append(eng.Resources.ConfigFiles, scoring.ConfigEntry{
		Item: testItem(eng, 10, 5), Path: filepath.Join(t.TempDir(), "absent"),
		PositiveValue: "x",
	})

	ConfigFiles(eng, nil)

	require.Empty(t, eng.ScoringMessages)
}

func addRegistryEntry(eng *scoring.Engine, positive, negative string) {
	eng.Resources.RegistryEntries = append(eng.Resources.RegistryEntries, scoring.RegistryEntry{
		Item:          testItem(eng, 10, 5),
		Hive:          "HKEY_LOCAL_MACHINE",
		KeyPath:       `SYSTEM\CurrentControlSet\Control\Lsa`,
		ValueName:     "LimitBlankPasswordUse",
		PositiveValue: positive,
		NegativeValue: negative,
	})
}

func TestRegistryEntriesHexValueMatchesDecimalTarget(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	addRegistryEntry(eng, "1", "")
	src := &fakeSources{registry: map[string]string{
		`HKEY_LOCAL_MACHINE\SYSTEM\CurrentControlSet\Control\Lsa\LimitBlankPasswordUse`: "0x1",
	}}

	RegistryEntries(context.Background(), eng, src, nil)

	require.Equal(t, 10, eng.CurrentScore)
}

func TestRegistryEntriesPositiveAndNegativeAreIndependent(t *testing.T) {
	t.Parallel()

	// Positive and negative targets that both read the live value score
	// both ways in the same cycle.
	eng := newEngine()
	addRegistryEntry(eng, "1", "0x1")
	src := &fakeSources{registry: map[string]string{
		`HKEY_LOCAL_MACHINE\SYSTEM\CurrentControlSet\Control\Lsa\LimitBlankPasswordUse`: "1",
	}}

	RegistryEntries(context.Background(), eng, src, nil)

	require.Equal(t, 5, eng.CurrentScore)
	require.Len(t, eng.ScoringMessages, 2)
}

func TestRegistryEntriesMissingValueIsSkipped(t *testing.T) {
	t.Parallel()

	eng := newEngine()
	addRegistryEntry(eng, "1", "0")
	src := &fakeSources{registry: map[string]string{}}

	RegistryEntries(context.Background(), eng, src, nil)

	require.Empty(t, eng.ScoringMessages)
}
