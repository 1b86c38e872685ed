// Package models defines the core domain types for kernelsim.
package models

import (
	"fmt"
	"time"
)

// Language identifies one of the supported source languages.
type Language string

const (
	LanguageCUDA   Language = "cuda"
	LanguageCPP    Language = "cpp"
	LanguagePython Language = "python"
)

// Languages returns every supported language in display order.
func Languages() []Language {
	return []Language{LanguageCUDA, LanguageCPP, LanguagePython}
}

// ParseLanguage validates a language tag.
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages() {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown language %q (want cuda, cpp or python)", s)
}

// Valid reports whether l is a member of the closed language set.
func (l Language) Valid() bool {
	_, err := ParseLanguage(string(l))
	return err == nil
}

// Label is the human-readable name of the language.
func (l Language) Label() string {
	switch l {
	case LanguageCUDA:
		return "CUDA C++"
	case LanguageCPP:
		return "C++ 20"
	case LanguagePython:
		return "Python 3.12"
	default:
		return string(l)
	}
}

// Ext is the file extension shown in the editor header.
func (l Language) Ext() string {
	switch l {
	case LanguageCUDA:
		return "cu"
	case LanguagePython:
		return "py"
	default:
		return "cpp"
	}
}

// Color is the display color associated with the language.
func (l Language) Color() string {
	switch l {
	case LanguageCUDA:
		return "#22C55E"
	case LanguageCPP:
		return "#3B82F6"
	case LanguagePython:
		return "#EAB308"
	default:
		return "#6B7280"
	}
}

// Template is a built-in example program.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Language    Language `json:"language"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
}

// Snapshot is a named, persisted copy of a draft.
type Snapshot struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Language      Language  `json:"language"`
	Code          string    `json:"code"`
	Description   string    `json:"description"`
	UserSaved     bool      `json:"isUserSaved"`
	ExecutionTime string    `json:"executionTime,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Metrics holds the opaque performance figures reported by the backend.
type Metrics struct {
	ExecutionTime  string `json:"executionTime,omitempty"`
	MemoryUsage    string `json:"memoryUsage,omitempty"`
	GPUUtilization string `json:"gpuUtilization,omitempty"`
	Throughput     string `json:"throughput,omitempty"`
	BatchSize      string `json:"batchSize,omitempty"`
	Dimension      string `json:"dimension,omitempty"`
}

// Empty reports whether no field carries a value.
func (m Metrics) Empty() bool {
	return m == Metrics{}
}

// Comparison is one row of a backend-supplied comparison table.
type Comparison struct {
	Label string  `json:"label"`
	Value float64 `json:"value"` // milliseconds
	Color string  `json:"color"`
}

// RunResult is the payload of a successful dispatch.
type RunResult struct {
	Output     string       `json:"output"`
	Analysis   string       `json:"analysis,omitempty"`
	Metrics    *Metrics     `json:"metrics,omitempty"`
	Comparison []Comparison `json:"comparison,omitempty"`
}

// ExecutionTime returns the elapsed-time metric or "" when absent.
func (r *RunResult) ExecutionTime() string {
	if r == nil || r.Metrics == nil {
		return ""
	}
	return r.Metrics.ExecutionTime
}

// LineType routes a log line to its presentation style.
type LineType string

const (
	LineInfo    LineType = "info"
	LineError   LineType = "error"
	LineSuccess LineType = "success"
	LineStdout  LineType = "stdout"
)

// LogLine is one message produced during a dispatch.
type LogLine struct {
	Type    LineType `json:"type"`
	Content string   `json:"content"`
}

// Entry is a derived leaderboard row.
type Entry struct {
	Label   string
	Value   float64 // milliseconds
	Color   string
	HasData bool
	Width   float64 // percent of the bar track
}

// Display renders the entry value for the leaderboard.
func (e Entry) Display() string {
	if !e.HasData {
		return "--"
	}
	return fmt.Sprintf("%.2f ms", e.Value)
}

// DispatchOutcome classifies a journaled dispatch.
type DispatchOutcome string

const (
	OutcomeSuccess DispatchOutcome = "success"
	OutcomeFailure DispatchOutcome = "failure" // backend reported a compile/run failure
	OutcomeError   DispatchOutcome = "error"   // transport or protocol error
)

// DispatchRecord is one journaled dispatch.
type DispatchRecord struct {
	ID            string          `json:"id"`
	Language      Language        `json:"language"`
	SourceHash    string          `json:"source_hash"`
	Outcome       DispatchOutcome `json:"outcome"`
	ExecutionTime string          `json:"execution_time,omitempty"`
	Details       string          `json:"details,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}
