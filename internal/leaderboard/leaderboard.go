// Package leaderboard derives the performance comparison shown next to the
// editor. It owns no state; every call recomputes from its inputs.
package leaderboard

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/fentz26/kernelsim/internal/models"
)

// MinWidth is the smallest bar width, in percent, for a row that has data.
const MinWidth = 3.0

// CurrentLabel labels the row of the latest dispatch.
const CurrentLabel = "Current dispatch"

const currentColor = "#A855F7"

// Baselines are used when no snapshot of a language carries a usable metric,
// ordered slow to fast: interpreted, vectorized native, accelerated kernel.
var Baselines = map[models.Language]float64{
	models.LanguagePython: 120.0,
	models.LanguageCPP:    15.0,
	models.LanguageCUDA:   1.2,
}

var numberRe = regexp.MustCompile(`\d+(?:\.\d+)?|\.\d+`)

var sentinels = map[string]bool{
	"":        true,
	"n/a":     true,
	"na":      true,
	"--":      true,
	"no data": true,
}

// ParseMetric extracts the first decimal number from a metric string.
// The boolean is false for sentinels and strings without a number.
func ParseMetric(s string) (float64, bool) {
	trimmed := strings.TrimSpace(s)
	if sentinels[strings.ToLower(trimmed)] {
		return 0, false
	}
	m := numberRe.FindString(trimmed)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// Compute returns one entry per language, in display order, followed by the
// entry for the current dispatch. active may be nil.
func Compute(snapshots []models.Snapshot, active *models.RunResult) []models.Entry {
	best := make(map[models.Language]float64)
	for _, s := range snapshots {
		v, ok := ParseMetric(s.ExecutionTime)
		if !ok || v <= 0 {
			continue
		}
		if cur, seen := best[s.Language]; !seen || v < cur {
			best[s.Language] = v
		}
	}

	var entries []models.Entry
	for _, lang := range models.Languages() {
		v, ok := best[lang]
		if !ok {
			v = Baselines[lang]
		}
		entries = append(entries, models.Entry{
			Label:   lang.Label(),
			Value:   v,
			Color:   lang.Color(),
			HasData: v > 0,
		})
	}

	current := models.Entry{Label: CurrentLabel, Color: currentColor}
	if v, ok := ParseMetric(active.ExecutionTime()); ok && v > 0 {
		current.Value = v
		current.HasData = true
	}
	entries = append(entries, current)

	applyWidths(entries)
	return entries
}

// applyWidths scales bars inversely: the fastest row is 100%.
func applyWidths(entries []models.Entry) {
	fastest := 0.0
	for _, e := range entries {
		if e.HasData && (fastest == 0 || e.Value < fastest) {
			fastest = e.Value
		}
	}
	for i := range entries {
		e := &entries[i]
		if !e.HasData {
			e.Width = 0
			continue
		}
		e.Width = math.Max(fastest/e.Value*100, MinWidth)
	}
}
