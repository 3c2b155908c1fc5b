package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/canvasrand/pkg/errors"
	"github.com/matzehuels/canvasrand/pkg/grid"
)

func TestDefault(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if diff := cmp.Diff(grid.DefaultSpec(), s.Spec()); diff != "" {
		t.Errorf("Spec() mismatch (-want +got):\n%s", diff)
	}
	if s.Source != SourceVault {
		t.Errorf("Source = %q", s.Source)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	p, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/xdg", "canvasrand", "settings.toml"); p != want {
		t.Errorf("Path() = %q, want %q", p, want)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	p, err = Path()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(p, filepath.Join(".config", "canvasrand", "settings.toml")) {
		t.Errorf("Path() = %q", p)
	}
}

func TestLoadMissing(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), s); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "settings.toml")
	s := Default()
	s.NumNotes = 8
	s.Width = 320
	s.XAnchor = -200
	s.Source = SourceSearch
	s.Color = "#ff8800"
	s.Vault = "/notes"

	if err := Save(path, s); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(s, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("num_notes = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.NumNotes != 2 || s.NotesPerRow != 3 || s.Width != 400 {
		t.Errorf("partial load = %+v", s)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "num_notes = \n"},
		{"unknown key", "nmu_notes = 2\n"},
		{"out of range", "notes_per_row = 0\n"},
		{"wrong type", "width = \"wide\"\n"},
		{"bad source", "source = \"web\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.toml")
			if err := os.WriteFile(path, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.Is(err, errors.ErrCodeInvalidSetting) {
				t.Errorf("Load() err = %v, want INVALID_SETTING", err)
			}
		})
	}
}

func TestSet(t *testing.T) {
	s := Default()
	for key, value := range map[string]string{
		"num_notes":     " 7 ",
		"notes_per_row": "2",
		"height":        "600",
		"y_anchor":      "-50",
		"source":        "Search",
		"color":         "3",
		"vault":         "~/vault",
	} {
		if err := s.Set(key, value); err != nil {
			t.Fatalf("Set(%q, %q): %v", key, value, err)
		}
	}
	want := Default()
	want.NumNotes = 7
	want.NotesPerRow = 2
	want.Height = 600
	want.YAnchor = -50
	want.Source = SourceSearch
	want.Color = "3"
	want.Vault = "~/vault"
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	for _, key := range Keys() {
		if _, err := s.Get(key); err != nil {
			t.Errorf("Get(%q): %v", key, err)
		}
	}
	if v, _ := s.Get("num_notes"); v != "7" {
		t.Errorf("Get(num_notes) = %q", v)
	}
}

func TestSetInvalid(t *testing.T) {
	tests := []struct {
		key, value string
		wantMsg    string
	}{
		{"width", "abc", "not a whole number"},
		{"width", "0", "width must be greater than 0"},
		{"notes_per_row", "0", "notes_per_row must be at least 1"},
		{"num_notes", "-1", "num_notes must be at least 0"},
		{"margin", "1.5", "not a whole number"},
		{"source", "web", "source must be one of: vault, search"},
		{"color", "7", "color must be 1-6"},
		{"color", "#12345", "color must be 1-6"},
		{"nope", "1", "unknown setting"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			s := Default()
			err := s.Set(tt.key, tt.value)
			if !errors.Is(err, errors.ErrCodeInvalidSetting) {
				t.Fatalf("err = %v, want INVALID_SETTING", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to contain %q", err, tt.wantMsg)
			}
			if diff := cmp.Diff(Default(), s); diff != "" {
				t.Errorf("failed Set changed settings:\n%s", diff)
			}
		})
	}
}

func TestIsCanvasColor(t *testing.T) {
	for c, want := range map[string]bool{
		"1": true, "6": true, "0": false, "7": false,
		"#fff": true, "#FF8800": true, "#ff880": false, "ff8800": false, "#gg0000": false,
	} {
		if got := IsCanvasColor(c); got != want {
			t.Errorf("IsCanvasColor(%q) = %v, want %v", c, got, want)
		}
	}
}

func TestValidatorColorRule(t *testing.T) {
	v := newValidator()

	type colored struct {
		Color string `toml:"color" validate:"canvascolor"`
	}
	if err := v.Struct(colored{Color: "#0af"}); err != nil {
		t.Errorf("valid color rejected: %v", err)
	}
	if err := v.Struct(colored{Color: "red"}); err == nil {
		t.Error("invalid color accepted")
	}
}
