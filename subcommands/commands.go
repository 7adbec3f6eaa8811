package subcommands

import (
	"context"
	"flag"
	"fmt"

	"github.com/fatih/color"
	"github.com/google/subcommands"
	"github.com/servertools/servertools/locale"
	"github.com/servertools/servertools/plugin"
	"github.com/servertools/servertools/utils"
	"github.com/sirupsen/logrus"
)

type CommandsCMD struct {
	showKeys bool
}

func (*CommandsCMD) Name() string     { return "commands" }
func (*CommandsCMD) Synopsis() string { return "list the ServerTools commands and their settings" }

func (c *CommandsCMD) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.showKeys, "keys", false, "show the config key of every command")
}

func (c *CommandsCMD) Usage() string {
	return c.Name() + ": " + c.Synopsis() + "\n"
}

func (c *CommandsCMD) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	core, err := loadCore()
	if err != nil {
		logrus.Error(err)
		return subcommands.ExitFailure
	}
	st, err := plugin.New(core)
	if err != nil {
		logrus.Error(err)
		return subcommands.ExitFailure
	}
	if err := st.RegisterCoreCommands(); err != nil {
		logrus.Error(err)
		return subcommands.ExitFailure
	}

	entries := st.Commands.Entries()
	if len(entries) == 0 {
		fmt.Println(locale.Loc("commands_none", nil))
		return subcommands.ExitSuccess
	}
	for _, e := range entries {
		state := color.GreenString(locale.Loc("command_enabled", nil))
		if !e.Enabled {
			state = color.RedString(locale.Loc("command_disabled", nil))
		}
		if c.showKeys {
			fmt.Printf("\t%-16s %s\t%s\n", e.Name, state, e.Key)
		} else {
			fmt.Printf("\t%-16s %s\n", e.Name, state)
		}
	}
	return subcommands.ExitSuccess
}

func init() {
	utils.RegisterCommand(&CommandsCMD{})
}
