package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyMode       = "mode"
	KeyOverlay    = "overlay"
	KeySource     = "source"
	KeyResources  = "resources"
	KeyHash       = "hash"
	KeyChanged    = "changed"
	KeyReason     = "reason"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Mode(m string) slog.Attr          { return slog.String(KeyMode, m) }
func Overlay(o string) slog.Attr       { return slog.String(KeyOverlay, o) }
func Source(path string) slog.Attr     { return slog.String(KeySource, path) }
func Resources(n int) slog.Attr        { return slog.Int(KeyResources, n) }
func Hash(h string) slog.Attr          { return slog.String(KeyHash, h) }
func Changed(c bool) slog.Attr         { return slog.Bool(KeyChanged, c) }
func Reason(r string) slog.Attr        { return slog.String(KeyReason, r) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
