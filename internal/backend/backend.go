// Package backend defines the contract with the external simulation service
// and an HTTP client for it.
package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fentz26/kernelsim/internal/models"
)

// Backend simulates the execution of source text.
type Backend interface {
	// Simulate returns the run result, a *Failure when the backend reports an
	// error, or any other error for transport problems.
	Simulate(ctx context.Context, lang models.Language, source string) (*models.RunResult, error)
}

// ErrUnknownLanguage is returned for a language tag outside the supported set.
var ErrUnknownLanguage = errors.New("unknown language tag")

// Request is the wire form of a simulation request.
type Request struct {
	LanguageTag models.Language `json:"languageTag"`
	SourceText  string          `json:"sourceText"`
}

// Status values of a Response.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the loosely typed wire form of a simulation response.
type Response struct {
	Status     string              `json:"status"`
	Output     string              `json:"output"`
	Analysis   string              `json:"analysis,omitempty"`
	Metrics    *models.Metrics     `json:"metrics,omitempty"`
	Comparison []models.Comparison `json:"comparison,omitempty"`
}

// Failure is an error reported by the backend itself.
type Failure struct {
	Message string
}

func (f *Failure) Error() string {
	return "simulation failed: " + f.Message
}

// Decode validates a Response once at the boundary so callers only ever see a
// complete RunResult or an error.
func Decode(resp *Response) (*models.RunResult, error) {
	if resp == nil {
		return nil, fmt.Errorf("empty response")
	}
	switch strings.ToLower(strings.TrimSpace(resp.Status)) {
	case StatusSuccess:
		result := &models.RunResult{
			Output:   resp.Output,
			Analysis: resp.Analysis,
		}
		if resp.Metrics != nil && !resp.Metrics.Empty() {
			m := *resp.Metrics
			result.Metrics = &m
		}
		for _, c := range resp.Comparison {
			if strings.TrimSpace(c.Label) == "" {
				continue
			}
			result.Comparison = append(result.Comparison, c)
		}
		return result, nil
	case StatusError:
		msg := resp.Output
		if strings.TrimSpace(msg) == "" {
			msg = "backend reported an error without details"
		}
		return nil, &Failure{Message: msg}
	default:
		return nil, fmt.Errorf("unexpected response status %q", resp.Status)
	}
}
