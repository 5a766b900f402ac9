package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every hook event to a logger at debug level, failures at
// warn level. It implements GenerateHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	Logger *log.Logger
}

var (
	_ GenerateHooks = LogHooks{}
	_ CacheHooks    = LogHooks{}
	_ HTTPHooks     = LogHooks{}
)

// UseLogger registers LogHooks for all event categories.
func UseLogger(logger *log.Logger) {
	h := LogHooks{Logger: logger.WithPrefix("hooks")}
	SetGenerateHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h LogHooks) OnGenerateStart(_ context.Context, seed string, formats []string) {
	h.Logger.Debug("generate start", "seed", seed, "formats", formats)
}

func (h LogHooks) OnGenerateComplete(_ context.Context, seed string, formats []string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("generate failed", "seed", seed, "formats", formats, "duration", d, "error", err)
		return
	}
	h.Logger.Debug("generate complete", "seed", seed, "formats", formats, "duration", d)
}

func (h LogHooks) OnTokenResolve(_ context.Context, tokenID string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("token resolve failed", "token", tokenID, "duration", d, "error", err)
		return
	}
	h.Logger.Debug("token resolved", "token", tokenID, "duration", d)
}

func (h LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "kind", keyType)
}

func (h LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "kind", keyType)
}

func (h LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h LogHooks) OnRequest(_ context.Context, method, route, requestID string) {
	h.Logger.Debug("http request", "method", method, "route", route, "request_id", requestID)
}

func (h LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Debug("http response", "method", method, "route", route, "status", status, "duration", d)
}

func (h LogHooks) OnError(_ context.Context, method, route string, err error) {
	h.Logger.Warn("http error", "method", method, "route", route, "error", err)
}
