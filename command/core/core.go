// Package core contains the commands ServerTools ships with.
package core

import (
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/hashicorp/go-multierror"
	"github.com/servertools/servertools/command"
	"github.com/servertools/servertools/motd"
)

// InitCoreCommands registers the core commands with m. isAdmin decides which players may run
// administrative commands, a nil isAdmin allows everyone.
func InitCoreCommands(m *command.Manager, s *motd.Service, isAdmin func(name string) bool) error {
	var result *multierror.Error
	for _, c := range []command.Command{
		NewMotd(s),
		NewReloadMotd(s, isAdmin),
	} {
		if err := m.Register(c); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// recipient returns the player running a command, or the command output for other sources.
func recipient(src cmd.Source, o *cmd.Output) motd.Recipient {
	if r, ok := src.(motd.Recipient); ok {
		return r
	}
	return outputRecipient{o: o}
}

type outputRecipient struct {
	o *cmd.Output
}

func (outputRecipient) Name() string { return "Server" }

func (r outputRecipient) Message(a ...any) {
	r.o.Print(a...)
}
