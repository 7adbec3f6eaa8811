// Package command keeps track of the commands provided by ServerTools. Commands are registered before
// the server starts, may be disabled or renamed through a config file, and are handed to the
// dragonfly command dispatcher in one go once the server is starting.
package command

import (
	"reflect"

	"github.com/df-mc/dragonfly/server/cmd"
)

// Command is implemented by every command managed by a Manager.
type Command interface {
	// DefaultName is the name the command is registered under unless renamed in the config.
	DefaultName() string
	Description() string
	// Runnables returns the dragonfly runnables, one per overload of the command.
	Runnables() []cmd.Runnable
}

// Aliaser may be implemented by a Command to register additional aliases.
type Aliaser interface {
	Aliases() []string
}

// Key returns the fully qualified type name of c. It identifies the command in the config file, so
// it stays the same when the command is renamed.
func Key(c Command) string {
	t := reflect.TypeOf(c)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.PkgPath() + "." + t.Name()
}

// Dispatcher receives the commands once the server is starting.
type Dispatcher interface {
	Register(c cmd.Command)
}

type DispatcherFunc func(c cmd.Command)

func (f DispatcherFunc) Register(c cmd.Command) {
	f(c)
}

// HostDispatcher registers commands with the dragonfly command registry.
var HostDispatcher Dispatcher = DispatcherFunc(cmd.Register)
