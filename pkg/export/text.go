package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/planforge/pkg/blueprint"
)

// Text returns spec as JSON indented by two spaces.
func Text(spec *blueprint.Spec) ([]byte, error) {
	data, err := blueprint.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal spec: %w", err)
	}
	return data, nil
}

// YAML returns spec as a YAML document with the same field names as
// [Text].
func YAML(spec *blueprint.Spec) ([]byte, error) {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal spec: %w", err)
	}
	return data, nil
}

// ErrClipboardUnavailable is returned when the host has no clipboard
// utility.
var ErrClipboardUnavailable = errors.New("clipboard unavailable")

// writeClipboard is swapped in tests.
var writeClipboard = func(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnavailable
	}
	return clipboard.WriteAll(text)
}

// Clipboard writes text to the system clipboard.
func Clipboard(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
