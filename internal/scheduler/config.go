// Package scheduler re-dispatches saved snapshots through a bounded worker pool.
package scheduler

import "github.com/fentz26/kernelsim/internal/models"

// Config defines the worker pool limits.
type Config struct {
	// GlobalMax is the maximum number of concurrent dispatches.
	GlobalMax int `yaml:"global_max"`
	// ByLanguage caps concurrent dispatches per language tag.
	ByLanguage map[string]int `yaml:"by_language"`
}

// DefaultConfig returns the default pool configuration.
func DefaultConfig() Config {
	return Config{
		GlobalMax: 4,
		ByLanguage: map[string]int{
			string(models.LanguageCUDA): 2,
		},
	}
}

// LanguageLimit returns the concurrency limit for lang. Unlisted languages
// are bounded only by GlobalMax.
func (c Config) LanguageLimit(lang models.Language) int {
	if limit, ok := c.ByLanguage[string(lang)]; ok && limit > 0 {
		return limit
	}
	return c.GlobalMax
}
