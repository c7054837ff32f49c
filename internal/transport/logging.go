package transport

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
)

const logSnippetLimit = 120

func requestLogger(ctx context.Context, base *logrus.Entry, method, path string) *logrus.Entry {
	fields := logrus.Fields{
		"method": method,
		"path":   path,
	}

	entry := base.WithFields(fields)
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	return entry
}

func logSnippet(value string) string {
	return truncate(strings.TrimSpace(value), logSnippetLimit, "...")
}

func truncate(value string, limit int, suffix string) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit]) + suffix
}
