package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline, cache and API events to a logger at debug level.
// Failures are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that log to logger. A nil logger uses the
// charmbracelet default logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnImportStart(_ context.Context, size int) {
	h.logger.Debug("import started", "bytes", size)
}

func (h *LogHooks) OnImportComplete(_ context.Context, applied, skipped int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("import failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug("import complete", "applied", applied, "skipped", skipped, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, pageSize string, cellCount int) {
	h.logger.Debug("layout started", "page", pageSize, "cells", cellCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, pageSize string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "page", pageSize, "error", err)
		return
	}
	h.logger.Debug("layout complete", "page", pageSize, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ APIHooks      = (*LogHooks)(nil)
)
