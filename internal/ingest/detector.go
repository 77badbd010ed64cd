package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Detector turns a capture (usually an image path) into the names of the
// items visible in it. Implementations live outside this repository; only
// their labels reach the inventory.
type Detector interface {
	Detect(ctx context.Context, source string) ([]string, error)
}

// StaticDetector reports the same labels for every source.
type StaticDetector []string

// Detect returns a copy of the labels.
func (d StaticDetector) Detect(ctx context.Context, source string) ([]string, error) {
	out := make([]string, len(d))
	copy(out, d)
	return out, nil
}

// LabelFileDetector reads labels that an external labeler wrote next to a
// capture. The file is either a JSON array of strings or plain text with one
// label per line (blank lines and lines starting with # are ignored).
type LabelFileDetector struct{}

// Detect reads source as a label file.
func (LabelFileDetector) Detect(ctx context.Context, source string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("reading label file: %w", err)
	}
	return ParseLabels(data)
}

// ParseLabels decodes a JSON array of strings or newline separated labels.
func ParseLabels(data []byte) ([]string, error) {
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, nil
	}

	if strings.HasPrefix(text, "[") {
		var labels []string
		if err := json.Unmarshal([]byte(text), &labels); err != nil {
			return nil, fmt.Errorf("parsing label list: %w", err)
		}
		return labels, nil
	}

	var labels []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		labels = append(labels, line)
	}
	return labels, nil
}
