package core

import (
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/servertools/servertools/locale"
	"github.com/servertools/servertools/motd"
)

// ReloadMotd reads the MOTD file again.
type ReloadMotd struct {
	s       *motd.Service
	isAdmin func(name string) bool
}

func NewReloadMotd(s *motd.Service, isAdmin func(name string) bool) ReloadMotd {
	return ReloadMotd{s: s, isAdmin: isAdmin}
}

func (ReloadMotd) DefaultName() string { return "reloadmotd" }
func (ReloadMotd) Description() string { return locale.Loc("reloadmotd_description", nil) }

func (c ReloadMotd) Runnables() []cmd.Runnable {
	return []cmd.Runnable{reloadRunnable{s: c.s, isAdmin: c.isAdmin}}
}

type reloadRunnable struct {
	s       *motd.Service
	isAdmin func(name string) bool
}

func (r reloadRunnable) Run(_ cmd.Source, o *cmd.Output) {
	if err := r.s.Load(); err != nil {
		o.Error(locale.Loc("motd_reload_failed", locale.Strmap{"Err": err}))
		return
	}
	o.Print(locale.Loc("motd_reloaded", nil))
}

// Allow only lets admins reload when the command is run by a player.
func (r reloadRunnable) Allow(src cmd.Source) bool {
	p, ok := src.(interface{ Name() string })
	if !ok {
		return true
	}
	return r.allowName(p.Name())
}

func (r reloadRunnable) allowName(name string) bool {
	return r.isAdmin == nil || r.isAdmin(name)
}
