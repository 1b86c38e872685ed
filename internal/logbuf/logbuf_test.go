package logbuf

import (
	"testing"

	"github.com/fentz26/kernelsim/internal/models"
)

func TestAppendKeepsOrder(t *testing.T) {
	b := New()
	b.Info("starting")
	b.Success("done")
	b.Stdout("hello")
	b.Error("oops")

	lines := b.Lines()
	want := []models.LineType{models.LineInfo, models.LineSuccess, models.LineStdout, models.LineError}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d", len(want), len(lines))
	}
	for i, typ := range want {
		if lines[i].Type != typ {
			t.Errorf("Line %d type = %s, want %s", i, lines[i].Type, typ)
		}
	}
}

func TestResetReplaces(t *testing.T) {
	b := New()
	b.Info("old run")
	b.Stdout("old output")

	b.Reset(models.LogLine{Type: models.LineInfo, Content: "new run"})
	lines := b.Lines()
	if len(lines) != 1 || lines[0].Content != "new run" {
		t.Errorf("Reset should replace contents, got %+v", lines)
	}

	b.Clear()
	if b.Len() != 0 {
		t.Errorf("Clear should empty the buffer, got %d lines", b.Len())
	}
}

func TestLinesIsACopy(t *testing.T) {
	b := New()
	b.Info("a")
	lines := b.Lines()
	lines[0].Content = "mutated"
	if b.Lines()[0].Content != "a" {
		t.Error("Lines must return a copy")
	}
}
