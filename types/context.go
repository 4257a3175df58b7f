package types

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultVersion is the fallback version when AppContext is nil
const DefaultVersion = "dev"

// AppContext holds application-wide context information passed to commands
type AppContext struct {
	Version string
	Logger  *logrus.Logger
}

// AppVersion returns the version, or DefaultVersion when unset.
func (c *AppContext) AppVersion() string {
	if c == nil || c.Version == "" {
		return DefaultVersion
	}
	return c.Version
}

// Log returns the injected logger. Without one, a logger that discards everything is
// returned so commands never touch the logrus package logger.
func (c *AppContext) Log() *logrus.Logger {
	if c != nil && c.Logger != nil {
		return c.Logger
	}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
