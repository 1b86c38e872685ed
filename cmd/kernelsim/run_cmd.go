package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/kernelsim/internal/audit"
	"github.com/fentz26/kernelsim/internal/backend"
	"github.com/fentz26/kernelsim/internal/dispatch"
	"github.com/fentz26/kernelsim/internal/logbuf"
	"github.com/fentz26/kernelsim/internal/models"
	"github.com/spf13/cobra"
)

var runLang string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Dispatch a file, or the stored draft, to the backend",
	Long: `Dispatches source to the simulation backend and prints the log.
Without a file the stored draft of --lang (or the active language) is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runLang, "lang", "", "Language tag: cuda, cpp or python")
}

// fileSource dispatches a fixed text instead of a draft.
type fileSource struct {
	lang models.Language
	text string
}

func (f fileSource) Active() models.Language { return f.lang }
func (f fileSource) ActiveText() string       { return f.text }

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	src, err := resolveSource(sess, args)
	if err != nil {
		return err
	}

	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)
	logs := logbuf.New()
	orch := dispatch.New(client, src, logs, dispatch.Options{
		Logger:   sess.log,
		Recorder: audit.NewJournal(sess.store, sess.log),
	})

	ch, _ := orch.Run(cmd.Context())
	outcome := <-ch
	printLog(logs.Lines())

	if outcome.Err != nil {
		return fmt.Errorf("dispatch failed")
	}
	return nil
}

func resolveSource(sess *session, args []string) (fileSource, error) {
	var lang models.Language
	if runLang != "" {
		l, err := models.ParseLanguage(runLang)
		if err != nil {
			return fileSource{}, err
		}
		lang = l
	}

	if len(args) == 0 {
		if lang == "" {
			lang = sess.drafts.Active()
		}
		return fileSource{lang: lang, text: sess.drafts.Read(lang)}, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fileSource{}, fmt.Errorf("read source: %w", err)
	}
	if lang == "" {
		l, ok := languageForFile(args[0])
		if !ok {
			return fileSource{}, fmt.Errorf("cannot infer language of %s, pass --lang", args[0])
		}
		lang = l
	}
	return fileSource{lang: lang, text: string(data)}, nil
}

func languageForFile(path string) (models.Language, bool) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, l := range models.Languages() {
		if l.Ext() == ext {
			return l, true
		}
	}
	switch ext {
	case "cuh":
		return models.LanguageCUDA, true
	case "cc", "cxx", "hpp", "h":
		return models.LanguageCPP, true
	}
	return "", false
}

var cliLineStyles = map[models.LineType]lipgloss.Style{
	models.LineInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
	models.LineError:   lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	models.LineSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
	models.LineStdout:  lipgloss.NewStyle(),
}

func printLog(lines []models.LogLine) {
	for _, line := range lines {
		fmt.Println(cliLineStyles[line.Type].Render(line.Content))
	}
}
