package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/df-mc/dragonfly/server"
	"github.com/pelletier/go-toml"
	"github.com/spf13/afero"
)

// LoadHost reads the dragonfly server configuration, creating it with the default values when the
// file is missing.
func LoadHost(afs afero.Fs, path string) (server.UserConfig, error) {
	c := server.DefaultConfig()

	data, err := afero.ReadFile(afs, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data, err = toml.Marshal(c)
		if err != nil {
			return c, fmt.Errorf("encode server config: %w", err)
		}
		if err := writeFile(afs, path, data); err != nil {
			return c, err
		}
	case err != nil:
		return c, fmt.Errorf("read server config: %w", err)
	default:
		if err := toml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("decode server config %s: %w", path, err)
		}
	}
	return c, nil
}

func writeFile(afs afero.Fs, path string, data []byte) error {
	if err := afs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := afero.WriteFile(afs, path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}
