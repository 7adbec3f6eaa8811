package subcommands

import (
	"github.com/servertools/servertools/config"
	"github.com/servertools/servertools/utils"
)

func loadCore() (config.Core, error) {
	return config.LoadCore(utils.FsFactory(), utils.PathData("core.toml"))
}
