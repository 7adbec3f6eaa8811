package subcommands

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/servertools/servertools/locale"
	"github.com/servertools/servertools/motd"
	"github.com/servertools/servertools/utils"
	"github.com/sirupsen/logrus"
)

type MotdCMD struct {
	playerName string
}

func (*MotdCMD) Name() string     { return "motd" }
func (*MotdCMD) Synopsis() string { return "print the MOTD as a player would see it" }

func (c *MotdCMD) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.playerName, "player", "Steve", "name to fill in for "+motd.Placeholder)
}

func (c *MotdCMD) Usage() string {
	return c.Name() + ": " + c.Synopsis() + "\n"
}

func (c *MotdCMD) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	core, err := loadCore()
	if err != nil {
		logrus.Error(err)
		return subcommands.ExitFailure
	}

	s := motd.New(utils.FsFactory(), utils.PathData(core.MotdFile))
	lines := s.Render(c.playerName)
	if len(lines) == 0 {
		logrus.Warn(locale.Loc("motd_unavailable", nil))
		return subcommands.ExitFailure
	}
	for _, line := range lines {
		fmt.Println(line)
	}
	return subcommands.ExitSuccess
}

func init() {
	utils.RegisterCommand(&MotdCMD{})
}
