package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/zscript/textframe/internal/cell"
)

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// WithPrefix qualifies the field of a validation error with the path of the
// element that contains it, e.g. "boxes[2]" + "width". Other errors are
// returned unchanged.
func WithPrefix(prefix string, err error) error {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	field := prefix
	if ve.Field != "" {
		field = prefix + "." + ve.Field
	}
	return &ValidationError{Field: field, Message: ve.Message}
}

// styleNameRegex matches valid style names in scene files
var styleNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateStyleName validates the name a scene gives to a style
func ValidateStyleName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "name cannot be empty"}
	}

	if len(name) > 64 {
		return &ValidationError{Field: "name", Message: "name too long (max 64 characters)"}
	}

	if !styleNameRegex.MatchString(name) {
		return &ValidationError{Field: "name", Message: "name must start with letter/number and contain only letters, numbers, dots, dashes, or underscores"}
	}

	return nil
}

// ValidateColor validates a color name
func ValidateColor(field, name string) error {
	if name == "" {
		return nil
	}
	if _, ok := cell.ParseColor(name); !ok {
		return &ValidationError{Field: field, Message: fmt.Sprintf("unknown color '%s'", name)}
	}
	return nil
}

// glyphWidth measures cells independently of the user's locale: ambiguous
// characters such as box drawing count as one cell.
var glyphWidth = &runewidth.Condition{EastAsianWidth: false}

// ValidateGlyphs checks that text only holds characters occupying exactly one
// terminal cell, since every character is drawn into a single cell.
func ValidateGlyphs(field, text string) error {
	for i, r := range text {
		if unicode.IsControl(r) {
			return &ValidationError{Field: field, Message: fmt.Sprintf("control character %U at byte %d", r, i)}
		}
		if w := glyphWidth.RuneWidth(r); w != 1 {
			return &ValidationError{Field: field, Message: fmt.Sprintf("character %q at byte %d is %d cells wide", r, i, w)}
		}
	}
	return nil
}

// ValidateSize validates a positive dimension with an upper bound
func ValidateSize(field string, v, limit int) error {
	if v < 1 {
		return &ValidationError{Field: field, Message: "must be at least 1"}
	}
	if v > limit {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d", limit)}
	}
	return nil
}

// ValidateNonNegative validates an indent or offset
func ValidateNonNegative(field string, v int) error {
	if v < 0 {
		return &ValidationError{Field: field, Message: "cannot be negative"}
	}
	return nil
}

// ValidateColorMode validates a --color setting
func ValidateColorMode(mode string) error {
	switch mode {
	case "auto", "always", "never":
		return nil
	}
	return &ValidationError{Field: "color", Message: fmt.Sprintf("unknown color mode '%s' (want auto, always or never)", mode)}
}

// ValidateLogLevel validates a log level name
func ValidateLogLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error", "off":
		return nil
	}
	return &ValidationError{Field: "log_level", Message: fmt.Sprintf("unknown log level '%s'", level)}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	switch {
	case path == "~":
		return home, nil
	case strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~\\"):
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

// ValidateScenePath validates the path of a scene file
func ValidateScenePath(path string) error {
	path = strings.TrimSpace(path)

	if path == "" {
		return &ValidationError{Field: "path", Message: "path cannot be empty"}
	}

	path, err := ExpandHome(path)
	if err != nil {
		return &ValidationError{Field: "path", Message: "cannot resolve home directory"}
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &ValidationError{Field: "path", Message: "path does not exist"}
		}
		return &ValidationError{Field: "path", Message: fmt.Sprintf("cannot access path: %v", err)}
	}

	if info.IsDir() {
		return &ValidationError{Field: "path", Message: "path is a directory"}
	}

	return nil
}

// SanitizeText removes control characters other than newline and tab.
// Leading whitespace is kept since it carries indentation.
func SanitizeText(input string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, input)
}
