package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors classifying pipeline failures. None of them are retried
// internally; every failure propagates to the top level and ends the
// invocation.
var (
	ErrConfig           = errors.New("configuration error")
	ErrNotFound         = errors.New("not found")
	ErrFormat           = errors.New("format error")
	ErrUnsupportedMedia = errors.New("unsupported media")
	ErrFetch            = errors.New("fetch error")
	ErrMux              = errors.New("mux error")
	ErrUpload           = errors.New("upload error")
	ErrPublish          = errors.New("publish error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrFetch
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}
