// Package models holds the Prbal domain entities and their wire contract.
//
// Every entity parses from an untrusted map with a two-tier policy:
// missing required fields are errors (logged with the raw payload and
// returned to the caller), while malformed optional fields are logged as
// warnings and replaced with documented defaults. Serialization emits a
// sparse snake_case map in which nil optionals are omitted.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// log is the package logger. It defaults to a no-op logger so the models
// stay usable (and silent) without any wiring; main replaces it at startup.
var log = zap.NewNop()

// SetLogger installs the logger used for parse warnings and errors.
func SetLogger(l *zap.Logger) {
	if l != nil {
		log = l
	}
}

// wireTimeLayouts are the timestamp shapes the backend has been observed to
// emit. RFC3339 is canonical; the rest are tolerated.
var wireTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// normalizeEnum lowercases wire enum input so status comparison never
// depends on backend casing.
func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func parseWireTime(s string) (time.Time, error) {
	for _, layout := range wireTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// formatWireTime emits RFC3339 with nanosecond precision so a parse/format
// cycle is lossless.
func formatWireTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// reqString extracts a required string field. Absence or emptiness is a
// contract violation and surfaces as an error after logging the raw map.
func reqString(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		log.Error("required field missing", zap.String("field", key), zap.Any("raw", m))
		return "", fmt.Errorf("required field %q missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		log.Error("required field malformed", zap.String("field", key), zap.Any("raw", m))
		return "", fmt.Errorf("required field %q malformed", key)
	}
	return s, nil
}

func optString(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func optStringPtr(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

// toFloat coerces the loose numeric shapes JSON decoding (and BSON
// round-trips) produce. Numeric strings are accepted on purpose: the
// backend emits amounts as strings on some endpoints.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return d.InexactFloat64(), true
	}
	return 0, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case float32:
		return decimal.NewFromFloat32(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int32:
		return decimal.NewFromInt32(n), true
	case int64:
		return decimal.NewFromInt(n), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	}
	return decimal.Zero, false
}

func optFloat(m map[string]any, key string, def float64) float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	f, ok := toFloat(v)
	if !ok {
		log.Warn("non-numeric field, using default",
			zap.String("field", key), zap.Any("value", v), zap.Float64("default", def))
		return def
	}
	return f
}

func optFloatPtr(m map[string]any, key string) *float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		log.Warn("non-numeric field, dropping", zap.String("field", key), zap.Any("value", v))
		return nil
	}
	return &f
}

func optDecimal(m map[string]any, key string) decimal.Decimal {
	v, ok := m[key]
	if !ok || v == nil {
		return decimal.Zero
	}
	d, ok := toDecimal(v)
	if !ok {
		log.Warn("non-numeric amount, using zero", zap.String("field", key), zap.Any("value", v))
		return decimal.Zero
	}
	return d
}

func optDecimalPtr(m map[string]any, key string) *decimal.Decimal {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	d, ok := toDecimal(v)
	if !ok {
		log.Warn("non-numeric amount, dropping", zap.String("field", key), zap.Any("value", v))
		return nil
	}
	return &d
}

func optInt(m map[string]any, key string, def int) int {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	f, ok := toFloat(v)
	if !ok {
		log.Warn("non-numeric field, using default",
			zap.String("field", key), zap.Any("value", v), zap.Int("default", def))
		return def
	}
	return int(f)
}

func optIntPtr(m map[string]any, key string) *int {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	f, ok := toFloat(v)
	if !ok {
		log.Warn("non-numeric field, dropping", zap.String("field", key), zap.Any("value", v))
		return nil
	}
	i := int(f)
	return &i
}

func optBool(m map[string]any, key string, def bool) bool {
	if b, ok := m[key].(bool); ok {
		return b
	}
	return def
}

// optTime extracts a timestamp, falling back to the current time when the
// value is missing or malformed. The UI treats timestamps as decoration,
// so a bad one must not poison the whole entity.
func optTime(m map[string]any, key string) time.Time {
	v, ok := m[key]
	if !ok || v == nil {
		return time.Now().UTC()
	}
	if t, ok := v.(time.Time); ok {
		return t
	}
	s, ok := v.(string)
	if !ok {
		log.Warn("malformed timestamp, using now", zap.String("field", key), zap.Any("value", v))
		return time.Now().UTC()
	}
	t, err := parseWireTime(s)
	if err != nil {
		log.Warn("malformed timestamp, using now", zap.String("field", key), zap.String("value", s))
		return time.Now().UTC()
	}
	return t
}

func optTimePtr(m map[string]any, key string) *time.Time {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	if t, ok := v.(time.Time); ok {
		return &t
	}
	s, ok := v.(string)
	if !ok {
		log.Warn("malformed timestamp, dropping", zap.String("field", key), zap.Any("value", v))
		return nil
	}
	t, err := parseWireTime(s)
	if err != nil {
		log.Warn("malformed timestamp, dropping", zap.String("field", key), zap.String("value", s))
		return nil
	}
	return &t
}

func optMap(m map[string]any, key string) map[string]any {
	switch v := m[key].(type) {
	case map[string]any:
		return v
	}
	return nil
}

// optMapSlice extracts a list of objects, defaulting to an empty slice so
// callers can range over it without nil checks.
func optMapSlice(m map[string]any, key string) []map[string]any {
	raw, ok := m[key].([]any)
	if !ok {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if mm, ok := item.(map[string]any); ok {
			out = append(out, mm)
		}
	}
	return out
}

func optStringSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Sparse-map emission helpers. A nil pointer means the key is omitted.

func putStringPtr(m map[string]any, key string, v *string) {
	if v != nil {
		m[key] = *v
	}
}

func putFloatPtr(m map[string]any, key string, v *float64) {
	if v != nil {
		m[key] = *v
	}
}

func putIntPtr(m map[string]any, key string, v *int) {
	if v != nil {
		m[key] = *v
	}
}

func putDecimalPtr(m map[string]any, key string, v *decimal.Decimal) {
	if v != nil {
		m[key] = v.InexactFloat64()
	}
}

func putTimePtr(m map[string]any, key string, v *time.Time) {
	if v != nil {
		m[key] = formatWireTime(*v)
	}
}

func putMap(m map[string]any, key string, v map[string]any) {
	if v != nil {
		m[key] = v
	}
}

// toAnySlice widens a string slice for map emission, keeping ToMap output
// shaped exactly like decoded JSON.
func toAnySlice(items []string) []any {
	out := make([]any, 0, len(items))
	for _, s := range items {
		out = append(out, s)
	}
	return out
}

// hasCursor reports whether a pagination cursor is usable. The backend
// sends null, an empty string, or a URL.
func hasCursor(cursor *string) bool {
	return cursor != nil && *cursor != ""
}

// currencySymbols maps the currencies the app renders with a symbol.
// Anything else falls back to "CODE amount".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
}

// FormatCurrencyAmount renders an amount for display, rounded to two
// decimal places: "$9.50", "₹9.50", or "XYZ 9.50" for unknown codes.
func FormatCurrencyAmount(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if sym, ok := currencySymbols[code]; ok {
		return sym + amount.StringFixed(2)
	}
	if code == "" {
		return amount.StringFixed(2)
	}
	return code + " " + amount.StringFixed(2)
}

// TimeAgo renders a rough relative timestamp for list rows.
func TimeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
