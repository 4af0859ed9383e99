// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is the logging facade used across govstake. It re-exports the
// structured logger of go-ethereum and adds handler setup for the binaries.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	gethlog "github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-isatty"
)

// Logger writes key/value pairs to a handler.
type Logger = gethlog.Logger

const (
	LevelTrace = gethlog.LevelTrace
	LevelDebug = gethlog.LevelDebug
	LevelInfo  = gethlog.LevelInfo
	LevelWarn  = gethlog.LevelWarn
	LevelError = gethlog.LevelError
	LevelCrit  = gethlog.LevelCrit
)

// LegacyLevelInfo is the verbosity value the cli flag defaults to.
const LegacyLevelInfo = 3

var current atomic.Pointer[slog.Handler]

func init() {
	SetHandler(gethlog.NewTerminalHandlerWithLevel(os.Stderr, LevelInfo, useColor(os.Stderr)))
	gethlog.SetDefault(gethlog.NewLogger(&swapHandler{}))
}

// swapHandler forwards to the handler installed by SetHandler, so loggers
// derived before the binary configures output still reach it.
type swapHandler struct {
	attrs []slog.Attr
}

func (h *swapHandler) inner() slog.Handler {
	inner := *current.Load()
	if len(h.attrs) > 0 {
		inner = inner.WithAttrs(h.attrs)
	}
	return inner
}

func (h *swapHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return (*current.Load()).Enabled(ctx, lvl)
}

func (h *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner().Handle(ctx, r)
}

func (h *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	return &swapHandler{attrs: append(merged, attrs...)}
}

func (h *swapHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

// SetHandler installs the handler all loggers write to.
func SetHandler(h slog.Handler) {
	current.Store(&h)
}

// Root returns the root logger.
func Root() Logger { return gethlog.Root() }

// NewLogger creates a logger over the given handler.
func NewLogger(h slog.Handler) Logger { return gethlog.NewLogger(h) }

// WithContext returns a logger bound to the root that always carries ctx.
func WithContext(ctx ...any) Logger { return gethlog.New(ctx...) }

// DiscardHandler drops every record.
func DiscardHandler() slog.Handler { return gethlog.DiscardHandler() }

func Trace(msg string, ctx ...any) { gethlog.Root().Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { gethlog.Root().Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { gethlog.Root().Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { gethlog.Root().Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { gethlog.Root().Error(msg, ctx...) }

// FromLegacyLevel maps verbosity 0..5 (crit..trace) onto slog levels.
func FromLegacyLevel(verbosity int) slog.Level {
	return gethlog.FromLegacyLevel(verbosity)
}

// NewHandler builds the handler used by the command line tools. JSON output
// is written when jsonLogs is set, otherwise a terminal format, colored when
// wr is a tty.
func NewHandler(wr io.Writer, verbosity int, jsonLogs bool) slog.Handler {
	var lvl slog.LevelVar
	lvl.Set(FromLegacyLevel(verbosity))
	return NewHandlerWithLevel(wr, &lvl, jsonLogs)
}

// NewHandlerWithLevel is like NewHandler with a level that can be changed
// while the handler is in use.
func NewHandlerWithLevel(wr io.Writer, lvl *slog.LevelVar, jsonLogs bool) slog.Handler {
	if jsonLogs {
		return JSONHandlerWithLevel(wr, lvl)
	}
	return NewTerminalHandlerWithLevel(wr, lvl, useColor(wr))
}

func useColor(wr io.Writer) bool {
	f, ok := wr.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
}
