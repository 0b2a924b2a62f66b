// Package logging provides the shared logfmt logger, tagged per source.
package logging

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Log source tags used in structured logger contexts.
const (
	SourceApp    = "app"
	SourceWeb    = "web"
	SourceReport = "report"
)

var (
	initOnce   sync.Once
	baseLogger *log.Logger
)

// Init configures the base logger once. The level comes from LOG_LEVEL
// (debug, info, warn, error); anything unset or unknown means info.
func Init() {
	initOnce.Do(func() {
		level := log.InfoLevel
		if parsed, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
			level = parsed
		}

		baseLogger = log.NewWithOptions(os.Stdout, log.Options{
			TimeFunction:    log.NowUTC,
			TimeFormat:      time.RFC3339,
			Level:           level,
			ReportTimestamp: true,
			Formatter:       log.LogfmtFormatter,
		})
	})
}

// Logger returns a logfmt logger tagged with the provided source.
func Logger(source string) *log.Logger {
	Init()
	return baseLogger.With("source", source)
}
