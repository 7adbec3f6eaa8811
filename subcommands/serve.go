package subcommands

import (
	"context"
	"flag"

	"github.com/df-mc/dragonfly/server/player"
	"github.com/google/subcommands"
	"github.com/servertools/servertools/command"
	"github.com/servertools/servertools/config"
	"github.com/servertools/servertools/locale"
	"github.com/servertools/servertools/plugin"
	"github.com/servertools/servertools/utils"
	"github.com/sirupsen/logrus"
)

type ServeCMD struct {
	configPath string
}

func (*ServeCMD) Name() string     { return "serve" }
func (*ServeCMD) Synopsis() string { return "run a dragonfly server with ServerTools" }

func (c *ServeCMD) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "config.toml", "dragonfly server config file")
}

func (c *ServeCMD) Usage() string {
	return c.Name() + ": " + c.Synopsis() + "\n"
}

func (c *ServeCMD) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	uc, err := config.LoadHost(utils.FsFactory(), c.configPath)
	if err != nil {
		logrus.Error(err)
		return subcommands.ExitFailure
	}
	conf, err := uc.Config(logrus.StandardLogger())
	if err != nil {
		logrus.Error(err)
		return subcommands.ExitFailure
	}
	srv := conf.New()

	if err := st.Start(command.HostDispatcher); err != nil {
		logrus.Error(err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := st.Stop(); err != nil {
			logrus.Warn(err)
		}
		logrus.Info(locale.Loc("server_stopped", nil))
	}()

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	srv.Listen()
	logrus.Info(locale.Loc("listening_on", locale.Strmap{"Address": uc.Network.Address}))
	for srv.Accept(func(p *player.Player) {
		logrus.Info(locale.Loc("player_joined", locale.Strmap{"Name": p.Name()}))
		st.HandleJoin(p)
	}) {
	}
	return subcommands.ExitSuccess
}

func init() {
	utils.RegisterCommand(&ServeCMD{})
}
