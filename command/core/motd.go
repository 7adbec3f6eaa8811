package core

import (
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/servertools/servertools/locale"
	"github.com/servertools/servertools/motd"
)

// Motd shows the message of the day.
type Motd struct {
	s *motd.Service
}

func NewMotd(s *motd.Service) Motd {
	return Motd{s: s}
}

func (Motd) DefaultName() string { return "motd" }
func (Motd) Description() string { return locale.Loc("motd_description", nil) }

func (m Motd) Runnables() []cmd.Runnable {
	return []cmd.Runnable{motdRunnable{s: m.s}}
}

type motdRunnable struct {
	s *motd.Service
}

func (r motdRunnable) Run(src cmd.Source, o *cmd.Output) {
	if r.s.Text() == "" {
		o.Error(locale.Loc("motd_unavailable", nil))
		return
	}
	r.s.Serve(recipient(src, o))
}
