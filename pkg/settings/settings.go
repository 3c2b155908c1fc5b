// Package settings stores the user's defaults for canvasrand in a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/canvasrand/settings.toml (falling back
// to ~/.config/canvasrand/settings.toml). A missing file means defaults.
// Values can be set from strings with [Settings.Set], the way a settings
// form with text fields would.
package settings

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/canvasrand/pkg/errors"
	"github.com/matzehuels/canvasrand/pkg/grid"
)

const (
	appName  = "canvasrand"
	fileName = "settings.toml"
)

// Source says where candidate notes come from.
type Source string

const (
	// SourceVault uses every note in the vault.
	SourceVault Source = "vault"
	// SourceSearch uses the notes matching a query or tags.
	SourceSearch Source = "search"
)

// Settings are the persisted defaults.
type Settings struct {
	NumNotes    int    `toml:"num_notes" validate:"gte=0"`
	NotesPerRow int    `toml:"notes_per_row" validate:"gte=1"`
	Width       int    `toml:"width" validate:"gt=0"`
	Height      int    `toml:"height" validate:"gt=0"`
	Margin      int    `toml:"margin" validate:"gte=0"`
	XAnchor     int    `toml:"x_anchor"`
	YAnchor     int    `toml:"y_anchor"`
	Source      Source `toml:"source" validate:"oneof=vault search"`
	Color       string `toml:"color" validate:"omitempty,canvascolor"`
	Vault       string `toml:"vault"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		NumNotes:    grid.DefaultCount,
		NotesPerRow: grid.DefaultPerRow,
		Width:       int(grid.DefaultWidth),
		Height:      int(grid.DefaultHeight),
		Margin:      int(grid.DefaultMargin),
		Source:      SourceVault,
	}
}

// Spec returns the placement described by the settings.
func (s Settings) Spec() grid.Spec {
	return grid.Spec{
		Count:   s.NumNotes,
		PerRow:  s.NotesPerRow,
		Width:   float64(s.Width),
		Height:  float64(s.Height),
		Margin:  float64(s.Margin),
		OriginX: float64(s.XAnchor),
		OriginY: float64(s.YAnchor),
	}
}

// =============================================================================
// Validation
// =============================================================================

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		return name
	})
	if err := v.RegisterValidation("canvascolor", func(fl validator.FieldLevel) bool {
		return IsCanvasColor(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("settings: register canvascolor: %v", err))
	}
	return v
}

// IsCanvasColor reports whether c is a canvas color: a preset "1" to "6" or
// a hex color such as "#ff8800".
func IsCanvasColor(c string) bool {
	if len(c) == 1 {
		return c >= "1" && c <= "6"
	}
	if len(c) != 4 && len(c) != 7 || c[0] != '#' {
		return false
	}
	for _, r := range c[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// Validate reports the first problem with s as an INVALID_SETTING error.
func (s Settings) Validate() error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidSetting, err, "invalid settings")
	}
	e := verrs[0]
	var msg string
	switch e.Tag() {
	case "gte":
		msg = fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "gt":
		msg = fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", e.Field(), strings.ReplaceAll(e.Param(), " ", ", "))
	case "canvascolor":
		msg = fmt.Sprintf("%s must be 1-6 or a hex color like #ff8800", e.Field())
	default:
		msg = fmt.Sprintf("%s is invalid", e.Field())
	}
	return errors.New(errors.ErrCodeInvalidSetting, "%s", msg)
}

// =============================================================================
// Persistence
// =============================================================================

// Path returns the settings file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, fileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, fileName), nil
}

// Load reads settings from path. Keys missing from the file keep their
// defaults; a missing file yields [Default].
func Load(path string) (Settings, error) {
	s := Default()
	md, err := toml.DecodeFile(path, &s)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Settings{}, errors.New(errors.ErrCodeInvalidSetting, "read %s: %v", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Settings{}, errors.New(errors.ErrCodeInvalidSetting, "unknown setting %q in %s", undecoded[0].String(), path)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Save writes s to path, creating the directory if needed.
func Save(path string, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(s); err != nil {
		f.Close()
		return fmt.Errorf("encode settings: %w", err)
	}
	return f.Close()
}

// =============================================================================
// String Access
// =============================================================================

// field binds a settings key to its string conversions.
type field struct {
	get func(*Settings) string
	set func(*Settings, string) error
}

func intField(p func(*Settings) *int) field {
	return field{
		get: func(s *Settings) string { return strconv.Itoa(*p(s)) },
		set: func(s *Settings, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("not a whole number: %q", v)
			}
			*p(s) = n
			return nil
		},
	}
}

func stringField(p func(*Settings) *string) field {
	return field{
		get: func(s *Settings) string { return *p(s) },
		set: func(s *Settings, v string) error {
			*p(s) = strings.TrimSpace(v)
			return nil
		},
	}
}

var fields = map[string]field{
	"num_notes":     intField(func(s *Settings) *int { return &s.NumNotes }),
	"notes_per_row": intField(func(s *Settings) *int { return &s.NotesPerRow }),
	"width":         intField(func(s *Settings) *int { return &s.Width }),
	"height":        intField(func(s *Settings) *int { return &s.Height }),
	"margin":        intField(func(s *Settings) *int { return &s.Margin }),
	"x_anchor":      intField(func(s *Settings) *int { return &s.XAnchor }),
	"y_anchor":      intField(func(s *Settings) *int { return &s.YAnchor }),
	"source": {
		get: func(s *Settings) string { return string(s.Source) },
		set: func(s *Settings, v string) error {
			s.Source = Source(strings.ToLower(strings.TrimSpace(v)))
			return nil
		},
	},
	"color": stringField(func(s *Settings) *string { return &s.Color }),
	"vault": stringField(func(s *Settings) *string { return &s.Vault }),
}

// Keys returns the setting names in file order.
func Keys() []string {
	return []string{
		"num_notes", "notes_per_row", "width", "height", "margin",
		"x_anchor", "y_anchor", "source", "color", "vault",
	}
}

// Get returns the value of key as a string.
func (s *Settings) Get(key string) (string, error) {
	f, ok := fields[key]
	if !ok {
		return "", unknownKey(key)
	}
	return f.get(s), nil
}

// Set parses value into key. The settings are left unchanged if the value
// does not parse or is out of range.
func (s *Settings) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return unknownKey(key)
	}
	next := *s
	if err := f.set(&next, value); err != nil {
		return errors.New(errors.ErrCodeInvalidSetting, "%s: %v", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*s = next
	return nil
}

func unknownKey(key string) error {
	return errors.New(errors.ErrCodeInvalidSetting, "unknown setting %q (known: %s)", key, strings.Join(Keys(), ", "))
}
