// Package logging builds the logrus logger shared by a CLI run.
package logging

import (
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const timestampFormat = "2006-01-02 15:04:05.000"

// Options selects level and format. Unknown levels fall back to warn.
type Options struct {
	Level  string
	Format string
}

// New returns a logger writing to w and a run-scoped entry tagged with a fresh run_id.
func New(w io.Writer, opts Options) (*logrus.Logger, *logrus.Entry) {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(strings.TrimSpace(opts.Level))
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)

	if strings.EqualFold(strings.TrimSpace(opts.Format), "json") {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: timestampFormat,
		})
	}

	return logger, logger.WithField("run_id", uuid.NewString())
}

// Discard returns an entry that drops everything, for tests and library callers.
func Discard() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

// RunID extracts the run_id field from an entry built by New.
func RunID(entry *logrus.Entry) string {
	if entry == nil {
		return ""
	}
	id, _ := entry.Data["run_id"].(string)
	return id
}
