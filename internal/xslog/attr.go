package xslog

import (
	"log/slog"
	"time"

	"github.com/hansajasandeepabadalge/naiterm/internal/version"
)

func Error(err error) slog.Attr {
	const errorKey = "error"
	return slog.String(errorKey, err.Error())
}

func Endpoint(endpoint string) slog.Attr {
	const endpointKey = "endpoint"
	return slog.String(endpointKey, endpoint)
}

func Method(method string) slog.Attr {
	const methodKey = "method"
	return slog.String(methodKey, method)
}

func HTTPStatus(status int) slog.Attr {
	const statusKey = "status"
	return slog.Int(statusKey, status)
}

func Duration(duration time.Duration) slog.Attr {
	const durationKey = "duration"
	return slog.Duration(durationKey, duration)
}

func Interval(interval time.Duration) slog.Attr {
	const intervalKey = "interval"
	return slog.Duration(intervalKey, interval)
}

func Count(count int) slog.Attr {
	const countKey = "count"
	return slog.Int(countKey, count)
}

func Category(category string) slog.Attr {
	const categoryKey = "category"
	return slog.String(categoryKey, category)
}

func SessionID(id string) slog.Attr {
	const sessionIDKey = "session_id"
	return slog.String(sessionIDKey, id)
}

func Version() slog.Attr {
	const versionKey = "version"
	return slog.String(versionKey, version.Get())
}
