package command

import (
	"fmt"
	"sort"

	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/servertools/servertools/locale"
)

const helpPageSize = 7

type help struct {
	Page cmd.Optional[int] `cmd:"page"`
}

func newHelpCommand() cmd.Command {
	return cmd.New("help", locale.Loc("help_description", nil), []string{"?"}, help{})
}

func (h help) Run(src cmd.Source, o *cmd.Output) {
	page, pages, lines := helpPage(visibleCommands(src), h.Page.LoadOr(1))
	if pages == 0 {
		o.Error(locale.Loc("help_empty", nil))
		return
	}
	o.Print(locale.Loc("help_header", locale.Strmap{"Page": page, "Pages": pages}))
	for _, l := range lines {
		o.Print(l)
	}
}

// visibleCommands returns the commands src is allowed to run, sorted by name.
func visibleCommands(src cmd.Source) []cmd.Command {
	seen := make(map[string]struct{})
	var list []cmd.Command
	for _, c := range cmd.Commands() {
		if _, ok := seen[c.Name()]; ok {
			continue
		}
		seen[c.Name()] = struct{}{}
		if len(c.Runnables(src)) == 0 {
			continue
		}
		list = append(list, c)
	}
	sortCommands(list)
	return list
}

func sortCommands(list []cmd.Command) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
}

// helpPage returns the lines of one page of list, page is clamped to the available pages.
func helpPage(list []cmd.Command, page int) (int, int, []string) {
	pages := (len(list) + helpPageSize - 1) / helpPageSize
	if pages == 0 {
		return 0, 0, nil
	}
	page = max(1, min(page, pages))

	start := (page - 1) * helpPageSize
	end := min(start+helpPageSize, len(list))
	lines := make([]string, 0, end-start)
	for _, c := range list[start:end] {
		lines = append(lines, fmt.Sprintf("/%s - %s", c.Name(), c.Description()))
	}
	return page, pages, lines
}
