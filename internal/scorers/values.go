package scorers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wardenproj/warden/internal/logger"
	"github.com/wardenproj/warden/internal/scoring"
)

// ConfigFiles scores configuration files on their trimmed content. A
// match against the default value is informational only.
func ConfigFiles(eng *scoring.Engine, log *logger.Logger) {
	if len(eng.Resources.ConfigFiles) == 0 {
		return
	}

	log.Debug("scoring configuration files")

	for i := range eng.Resources.ConfigFiles {
		entry := &eng.Resources.ConfigFiles[i]

		data, err := os.ReadFile(entry.Path)
		if err != nil {
			log.Error(err, "could not read configuration file "+entry.Path+", skipping it this cycle")
			continue
		}
		content := strings.TrimSpace(string(data))

		if valuesMatch(content, entry.DefaultValue) {
			log.Debug("content of " + entry.Path + " matches the default value")
		}

		if valuesMatch(content, entry.PositiveValue) {
			eng.AwardPoints(&entry.Item,
				fmt.Sprintf("'%s' matches positive value: %s", entry.Path, entry.PositiveValue))
		} else if valuesMatch(content, entry.NegativeValue) {
			eng.RemovePoints(&entry.Item,
				fmt.Sprintf("'%s' matches negative value: %s", entry.Path, entry.NegativeValue))
		}
	}
}

// RegistryEntries scores registry values. A value may award against the
// positive value and remove against the negative value independently;
// matching the default value is logged but never scored.
func RegistryEntries(ctx context.Context, eng *scoring.Engine, src RegistrySource, log *logger.Logger) {
	if len(eng.Resources.RegistryEntries) == 0 {
		return
	}

	log.Debug("scoring registry entries")

	for i := range eng.Resources.RegistryEntries {
		entry := &eng.Resources.RegistryEntries[i]

		value, found, err := src.RegistryValue(ctx, entry.Hive, entry.KeyPath, entry.ValueName)
		if err != nil {
			log.Error(err, fmt.Sprintf("could not read registry value %s in %s\\%s, skipping it this cycle",
				entry.ValueName, entry.Hive, entry.KeyPath))
			continue
		}
		if !found {
			log.Warn(fmt.Sprintf("registry value %s not found in %s\\%s", entry.ValueName, entry.Hive, entry.KeyPath))
			continue
		}

		if valuesMatch(value, entry.PositiveValue) {
			eng.AwardPoints(&entry.Item,
				fmt.Sprintf("Registry entry '%s' matches positive value '%s'.", entry.ValueName, entry.PositiveValue))
		}
		if valuesMatch(value, entry.NegativeValue) {
			eng.RemovePoints(&entry.Item,
				fmt.Sprintf("Registry entry '%s' matches negative value '%s'.", entry.ValueName, entry.NegativeValue))
		}
		if valuesMatch(value, entry.DefaultValue) {
			log.Debug(fmt.Sprintf("registry entry %s matches the default value", entry.ValueName))
		}
	}
}

// valuesMatch compares a live value against a target under three
// interpretations in order: literal string, base-10 integer, base-16
// integer. An exact match on any interpretation counts. Empty targets
// never match.
func valuesMatch(live, target string) bool {
	if target == "" {
		return false
	}
	if live == target {
		return true
	}

	for _, liveNum := range numericForms(live) {
		for _, targetNum := range numericForms(target) {
			if liveNum == targetNum {
				return true
			}
		}
	}
	return false
}

// numericForms returns the base-10 and base-16 readings of a value, in
// that order. Registry tooling reports DWORDs as 0x-prefixed hex.
func numericForms(s string) []int64 {
	s = strings.TrimSpace(s)
	var forms []int64

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		forms = append(forms, v)
	}

	hex := strings.TrimPrefix(strings.ToLower(s), "0x")
	if v, err := strconv.ParseInt(hex, 16, 64); err == nil {
		forms = append(forms, v)
	}

	return forms
}
