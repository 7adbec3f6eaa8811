// Package config loads the ServerTools core settings and the dragonfly server settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml"
	"github.com/spf13/afero"
)

// Core holds the settings of the plugin itself, stored in core.toml inside the ServerTools directory.
type Core struct {
	SendMotdOnLogin    bool     `toml:"send_motd_on_login" default:"true" comment:"Send the MOTD to players when they join" env:"SERVERTOOLS_SEND_MOTD_ON_LOGIN"`
	EnableHelpOverride bool     `toml:"enable_help_override" default:"true" comment:"Replace /help with a listing sorted by command name" env:"SERVERTOOLS_ENABLE_HELP_OVERRIDE"`
	WatchMotd          bool     `toml:"watch_motd" default:"false" comment:"Reload the MOTD automatically when the file changes" env:"SERVERTOOLS_WATCH_MOTD"`
	MotdFile           string   `toml:"motd_file" default:"motd.txt" comment:"MOTD file, relative to the ServerTools directory" env:"SERVERTOOLS_MOTD_FILE"`
	CommandFile        string   `toml:"command_file" default:"command.yml" comment:"Command settings file, relative to the ServerTools directory" env:"SERVERTOOLS_COMMAND_FILE"`
	Admins             []string `toml:"admins" comment:"Players allowed to use administrative commands" env:"SERVERTOOLS_ADMINS" envSeparator:","`
	MetricsAddress     string   `toml:"metrics_address" default:"" comment:"Address to serve prometheus metrics on, empty to disable" env:"SERVERTOOLS_METRICS_ADDRESS"`
}

func DefaultCore() Core {
	return Core{
		SendMotdOnLogin:    true,
		EnableHelpOverride: true,
		MotdFile:           "motd.txt",
		CommandFile:        "command.yml",
		Admins:             []string{},
	}
}

// LoadCore reads the core settings from path, writing the defaults there first if the file does not
// exist. Environment variables override values from the file.
func LoadCore(afs afero.Fs, path string) (Core, error) {
	c := DefaultCore()

	data, err := afero.ReadFile(afs, path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data, err = toml.Marshal(c)
		if err != nil {
			return c, fmt.Errorf("encode core config: %w", err)
		}
		if err := writeFile(afs, path, data); err != nil {
			return c, err
		}
	case err != nil:
		return c, fmt.Errorf("read core config: %w", err)
	default:
		if err := toml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("decode core config %s: %w", path, err)
		}
	}

	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// IsAdmin reports if name is listed in the admins setting.
func (c Core) IsAdmin(name string) bool {
	for _, a := range c.Admins {
		if a == name {
			return true
		}
	}
	return false
}
