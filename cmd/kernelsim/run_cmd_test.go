package main

import (
	"testing"

	"github.com/fentz26/kernelsim/internal/models"
)

func TestLanguageForFile(t *testing.T) {
	tests := []struct {
		path string
		want models.Language
		ok   bool
	}{
		{"kernels/add.cu", models.LanguageCUDA, true},
		{"tile.CUH", models.LanguageCUDA, true},
		{"main.cpp", models.LanguageCPP, true},
		{"main.cc", models.LanguageCPP, true},
		{"bench.py", models.LanguagePython, true},
		{"README.md", "", false},
		{"Makefile", "", false},
	}
	for _, tt := range tests {
		got, ok := languageForFile(tt.path)
		if ok != tt.ok || got != tt.want {
			t.Errorf("languageForFile(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("Unexpected short id %q", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("Short ids must pass through, got %q", got)
	}
}
