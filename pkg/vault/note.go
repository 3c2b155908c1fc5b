package vault

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Note is a markdown file in a vault.
type Note struct {
	// Path is relative to the vault root and slash-separated.
	Path    string    `json:"path"`
	Title   string    `json:"title"`
	Tags    []string  `json:"tags,omitempty"`
	Aliases []string  `json:"aliases,omitempty"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// IsMarkdown reports whether name has a markdown extension.
func IsMarkdown(name string) bool {
	return strings.EqualFold(path.Ext(name), ".md")
}

// defaultTitle is the note's file name without extension.
func defaultTitle(rel string) string {
	base := path.Base(rel)
	return strings.TrimSuffix(base, path.Ext(base))
}

// meta is the subset of front matter kept for each note.
type meta struct {
	Title   string   `json:"title,omitempty" yaml:"title"`
	Tags    textList `json:"tags,omitempty" yaml:"tags"`
	Tag     textList `json:"-" yaml:"tag"`
	Aliases textList `json:"aliases,omitempty" yaml:"aliases"`
	Alias   textList `json:"-" yaml:"alias"`
}

// textList accepts a YAML sequence or a single comma- or space-separated
// scalar.
type textList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *textList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*l = nil
			return nil
		}
		*l = splitList(value.Value)
		return nil
	case yaml.SequenceNode:
		var out []string
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag == "!!null" {
				continue
			}
			if s := strings.TrimSpace(item.Value); s != "" {
				out = append(out, s)
			}
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("line %d: expected a list or a string", value.Line)
	}
}

func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// maxFrontMatter bounds how much of a note is read looking for front matter.
const maxFrontMatter = 64 << 10

// readFrontMatter returns the YAML block at the top of the file, or nil if
// the note has none.
func readFrontMatter(r io.Reader) ([]byte, error) {
	br := bufio.NewReader(io.LimitReader(r, maxFrontMatter))

	first, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	first = strings.TrimPrefix(first, "\ufeff")
	if strings.TrimRight(first, "\r\n") != "---" {
		return nil, nil
	}

	var buf bytes.Buffer
	for {
		line, err := br.ReadString('\n')
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "---" || trimmed == "..." {
			return buf.Bytes(), nil
		}
		buf.WriteString(line)
		if err == io.EOF {
			// Unterminated block: not front matter.
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// parseMeta parses front matter into meta, merging the singular keys.
func parseMeta(front []byte) (meta, error) {
	var m meta
	if len(bytes.TrimSpace(front)) == 0 {
		return m, nil
	}
	if err := yaml.Unmarshal(front, &m); err != nil {
		return meta{}, err
	}
	m.Tags = normalizeTags(append(m.Tags, m.Tag...))
	m.Aliases = append(m.Aliases, m.Alias...)
	m.Tag, m.Alias = nil, nil
	return m, nil
}

// readMeta opens the note at abs and parses its front matter.
func readMeta(abs string) (meta, error) {
	f, err := os.Open(abs)
	if err != nil {
		return meta{}, err
	}
	defer f.Close()

	front, err := readFrontMatter(f)
	if err != nil {
		return meta{}, err
	}
	return parseMeta(front)
}

// normalizeTags lowercases tags and strips a leading '#'.
func normalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "#"))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
