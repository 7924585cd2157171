package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/bankapi/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelColors = map[log.Level]struct {
	icon  string
	color lipgloss.AdaptiveColor
}{
	log.ErrorLevel: {"❌", lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}},
	log.WarnLevel:  {"⚠️", lipgloss.AdaptiveColor{Light: "#EE6FF8", Dark: "#EE6FF8"}},
	log.InfoLevel:  {"ℹ️", lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}},
	log.DebugLevel: {"🐛", lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#7E57C2"}},
}

// SetupLogger builds the application logger on stdout and makes it the
// slog default.
func SetupLogger(cfg *config.Log) *slog.Logger {
	slogger := slog.New(newLogHandler(os.Stdout, cfg))
	slog.SetDefault(slogger)
	return slogger
}

func newLogHandler(w io.Writer, cfg *config.Log) *log.Logger {
	if cfg == nil {
		cfg = &config.Log{Format: "text"}
	}
	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles())
	return logger
}

func styles() *log.Styles {
	styles := log.DefaultStyles()
	accent := levelColors[log.DebugLevel].color
	for level, lc := range levelColors {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(lc.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(lc.color)
	}
	for _, key := range []string{"error", "warn", "info", "debug"} {
		level, _ := log.ParseLevel(key)
		styles.Keys[key] = lipgloss.NewStyle().Foreground(levelColors[level].color)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	// ids and amounts stand out in request logs
	for _, key := range []string{"prefix", "caller", "time", "accountID", "userID", "transactionID", "amount"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(accent)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}
