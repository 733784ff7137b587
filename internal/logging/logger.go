// Package logging builds the process-wide logrus logger.
package logging

import (
    "os"
    "strings"

    "github.com/sirupsen/logrus"
)

// New returns a logger writing to stdout at level.  Production
// environments get JSON lines; everything else gets human-readable text.
// An unknown level falls back to info.
func New(level, env string) *logrus.Logger {
    l := logrus.New()
    l.SetOutput(os.Stdout)
    lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
    if err != nil {
        lvl = logrus.InfoLevel
    }
    l.SetLevel(lvl)
    if strings.EqualFold(env, "prod") || strings.EqualFold(env, "production") {
        l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
    } else {
        l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
    }
    return l
}
