// Package compat exposes the dmkit logger through the logging interfaces of
// third-party servers the daemon embeds.
package compat

import (
	"fmt"
	"os"

	"github.com/wbrk/dmkit/log"
)

// GnetAdapter wraps a dmkit log.Logger to implement the gnet
// logging.Logger interface.
type GnetAdapter struct {
	logger       *log.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter.
func NewGnetAdapter(logger *log.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior.
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler.
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting.
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Debugf(format, args...)
}

// Infof logs at info level with printf-style formatting.
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Infof(format, args...)
}

// Warnf logs at warn level with printf-style formatting.
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Warnf(format, args...)
}

// Errorf logs at error level with printf-style formatting.
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Errorf(format, args...)
}

// Fatalf logs at error level and triggers the fatal handler.
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Errorf("fatal: %s", msg)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
