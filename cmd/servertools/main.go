package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/servertools/servertools/utils"

	_ "github.com/servertools/servertools/subcommands"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

var version string

func exit() {
	for i := len(utils.G_exit) - 1; i >= 0; i-- { // go through cleanup functions reversed
		utils.G_exit[i]()
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.BoolVar(&utils.G_debug, "debug", false, "debug mode")
	flag.StringVar(&utils.DataFolder, "dir", utils.DataFolder, "ServerTools directory")
	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.ImportantFlag("debug")
	subcommands.ImportantFlag("dir")

	{ // interactive input
		if len(os.Args) < 2 {
			fmt.Println("Available commands:")
			for name, desc := range utils.ValidCMDs {
				fmt.Printf("\t%s\t%s\n", name, desc)
			}
			fmt.Printf("Use '%s <command>' to run a command\n", os.Args[0])

			fmt.Printf("Input Command: ")
			reader := bufio.NewReader(os.Stdin)
			target, _ := reader.ReadString('\n')
			r := regexp.MustCompile(`[\n\r]`)
			target = r.ReplaceAllString(target, "")
			os.Args = append(os.Args, target)
		}
	}

	flag.Parse()
	setupLogging(utils.G_debug)
	if version != "" {
		logrus.Infof("servertools version: %s", version)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		logrus.Info("Exiting")
		cancel()
	}()

	ret := subcommands.Execute(ctx)
	exit()
	os.Exit(int(ret))
}
