// Copyright (c) 2024 edgegram

package telegram

import "github.com/edgegram/edgegram/internal/utils"

// Logger is the leveled logger the client writes to. Callers may build their
// own with NewLogger and pass it via ClientConfig.Logger.
type Logger = utils.Logger

type LogLevel = utils.LogLevel

const (
	TraceLevel = utils.TraceLevel
	DebugLevel = utils.DebugLevel
	InfoLevel  = utils.InfoLevel
	WarnLevel  = utils.WarnLevel
	ErrorLevel = utils.ErrorLevel
	NoLevel    = utils.NoLevel
)

// NewLogger returns a logger writing to stderr at info level.
func NewLogger(prefix string) *Logger {
	return utils.NewLogger(prefix)
}
