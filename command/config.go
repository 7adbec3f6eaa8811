package command

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	enableCategory = "enableCommand"
	nameCategory   = "commandName"
)

// store is the command config file: a YAML mapping of categories, each a mapping of command key to
// value. Missing values are added with their default so the file documents every command.
type store struct {
	fs      afero.Fs
	path    string
	root    *yaml.Node
	changed bool
}

func loadStore(afs afero.Fs, path string) (*store, error) {
	s := &store{fs: afs, path: path}

	data, err := afero.ReadFile(afs, path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read command config: %w", err)
	}

	var doc yaml.Node
	if err == nil {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decode command config %s: %w", path, err)
		}
	}
	if len(doc.Content) == 0 {
		s.root = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		s.changed = true
		return s, nil
	}
	s.root = doc.Content[0]
	if s.root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("command config %s: expected a mapping at the top level", path)
	}
	return s, nil
}

func lookup(m *yaml.Node, key string) (*yaml.Node, *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i], m.Content[i+1]
		}
	}
	return nil, nil
}

func (s *store) category(name string) (*yaml.Node, *yaml.Node) {
	k, v := lookup(s.root, name)
	if v != nil && v.Kind == yaml.MappingNode {
		return k, v
	}
	if k == nil {
		k = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		v = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		s.root.Content = append(s.root.Content, k, v)
	} else {
		// not a mapping, start the category over
		*v = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	s.changed = true
	return k, v
}

func (s *store) setComment(category, comment string) {
	k, _ := s.category(category)
	if strings.TrimSpace(strings.TrimPrefix(k.HeadComment, "#")) == comment {
		return
	}
	k.HeadComment = comment
	s.changed = true
}

func (s *store) value(category, key, tag, def string) *yaml.Node {
	_, cat := s.category(category)
	_, v := lookup(cat, key)
	if v != nil && v.Kind == yaml.ScalarNode {
		return v
	}
	s.changed = true
	if v != nil {
		*v = yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: def}
		return v
	}
	v = &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: def}
	cat.Content = append(cat.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, v)
	return v
}

func (s *store) getBool(category, key string, def bool) bool {
	v := s.value(category, key, "!!bool", strconv.FormatBool(def))
	b, err := strconv.ParseBool(v.Value)
	if err != nil {
		return def
	}
	return b
}

func (s *store) getString(category, key, def string) string {
	v := s.value(category, key, "!!str", def)
	if v.Value == "" {
		return def
	}
	return v.Value
}

func (s *store) save() error {
	if !s.changed {
		return nil
	}
	data, err := yaml.Marshal(s.root)
	if err != nil {
		return fmt.Errorf("encode command config: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create command config dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("write command config %s: %w", s.path, err)
	}
	s.changed = false
	return nil
}
