// Package plugin ties the command manager and the MOTD service to the lifecycle of a dragonfly
// server.
package plugin

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/servertools/servertools/command"
	"github.com/servertools/servertools/command/core"
	"github.com/servertools/servertools/config"
	"github.com/servertools/servertools/motd"
	"github.com/servertools/servertools/utils"
	"github.com/sirupsen/logrus"
)

type ServerTools struct {
	Config   config.Core
	Commands *command.Manager
	Motd     *motd.Service
	Metrics  *utils.Metrics

	log    *logrus.Entry
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates the plugin with its files in the ServerTools directory.
func New(conf config.Core) (*ServerTools, error) {
	afs := utils.FsFactory()
	log := logrus.WithField("plugin", "servertools")
	metrics := utils.NewMetrics()

	commands, err := command.NewManager(afs, utils.PathData(conf.CommandFile),
		command.WithLogger(log.WithField("component", "commands")),
		command.WithHelpOverride(conf.EnableHelpOverride),
	)
	if err != nil {
		return nil, err
	}

	s := motd.New(afs, utils.PathData(conf.MotdFile),
		motd.WithLogger(log.WithField("component", "motd")),
		motd.WithHooks(metrics.MotdServed.Inc, func(err error) {
			result := "ok"
			if err != nil {
				result = "error"
			}
			metrics.MotdReloads.WithLabelValues(result).Inc()
		}),
	)

	return &ServerTools{
		Config:   conf,
		Commands: commands,
		Motd:     s,
		Metrics:  metrics,
		log:      log,
	}, nil
}

// RegisterCoreCommands registers the commands ServerTools ships with.
func (st *ServerTools) RegisterCoreCommands() error {
	if err := core.InitCoreCommands(st.Commands, st.Motd, st.Config.IsAdmin); err != nil {
		return fmt.Errorf("register core commands: %w", err)
	}
	return nil
}

// Start registers the core commands and hands every enabled command to d. It is called while the
// server is starting, other code must register its commands before.
func (st *ServerTools) Start(d command.Dispatcher) error {
	if err := st.RegisterCoreCommands(); err != nil {
		return err
	}
	n := st.Commands.Load(d)
	st.Metrics.RegisteredCommands.Set(float64(n))

	if st.Config.MetricsAddress != "" {
		st.Metrics.Serve(st.Config.MetricsAddress)
	}

	if st.Config.WatchMotd {
		ctx, cancel := context.WithCancel(context.Background())
		st.cancel = cancel
		st.wg.Add(1)
		go func() {
			defer st.wg.Done()
			if err := st.Motd.Watch(ctx); err != nil {
				st.log.WithError(err).Warn("Could not watch the MOTD file")
			}
		}()
	}
	return nil
}

// HandleJoin is called for every player joining the server.
func (st *ServerTools) HandleJoin(p motd.Recipient) {
	if !st.Config.SendMotdOnLogin {
		return
	}
	err := utils.RecoverCall(func() error {
		st.Motd.Serve(p)
		return nil
	})
	if err != nil {
		utils.ErrorHandler(err)
	}
}

// Stop is called once the server stopped. Commands have to be registered again before the next
// Start.
func (st *ServerTools) Stop() error {
	var result *multierror.Error
	st.Commands.Reset()
	if st.cancel != nil {
		st.cancel()
		st.wg.Wait()
		st.cancel = nil
	}
	if err := st.Metrics.Close(); err != nil {
		result = multierror.Append(result, fmt.Errorf("stop metrics: %w", err))
	}
	return result.ErrorOrNil()
}
