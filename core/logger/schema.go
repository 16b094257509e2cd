package logger

import "strings"

// Level names as they appear in log output.
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
	LevelFatal = "FATAL"
)

func normalizeLevel(level string) string {
	switch strings.ToLower(level) {
	case "":
		return LevelInfo
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	}
	return strings.ToUpper(level)
}

// normalizeStatus lowercases the status field and reports whether it is
// one of the values the schema knows about.
func normalizeStatus(status string) (string, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	switch status {
	case "":
		return "", false
	case "ok", "fail", "skip", "retry", "rate_limited", "cancelled":
		return status, true
	}
	return status, false
}

// normalizeOutcome validates the outcome field; unknown values are
// dropped by the handler.
func normalizeOutcome(outcome string) (string, bool) {
	outcome = strings.ToLower(strings.TrimSpace(outcome))
	switch outcome {
	case "ok", "fail", "cancelled", "rate_limited":
		return outcome, true
	}
	return "", false
}

// defaultKeyOrder lists well-known fields in the order they appear at the
// start of every line. Correlation first, then order and catalog fields,
// then transport and error detail.
var defaultKeyOrder = []string{
	"ts",
	"level",
	"component",
	"event",
	"status",
	"rid",
	"rid_full",
	"ts_unix_nano",
	"update_id",
	"user_id",
	"chat_id",
	"chat_type",
	"handler",
	"operation",
	"cb_key",
	"outcome",
	"duration_ms",
	"messages",
	"kb",
	"count",
	"category",
	"product_id",
	"product_name",
	"order_ref",
	"buyer_id",
	"phone_len",
	"destinations",
	"delivered",
	"payload",
	"lang",
	"username",
	"mode",
	"listen",
	"public_url",
	"http_code",
	"db",
	"host",
	"port",
	"path",
	"backend",
	"err",
	"err_code",
	"cause",
	"retryable",
	"attempts",
	"backoff_ms",
	"rate_limited",
}
