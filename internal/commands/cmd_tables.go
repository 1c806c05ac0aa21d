package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/tactilehq/dotwin/pkg/iojson"
)

type TablesCmd struct {
	flags *Flags

	// flags
	jsonOutput bool
}

// NewTablesCmd creates a new tables command.
func NewTablesCmd(flags *Flags) *TablesCmd {
	return &TablesCmd{flags: flags}
}

// Register adds the tables command to the application.
func (cmd *TablesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "tables",
		Usage:     "List discovered translation tables",
		UsageText: "dotwin tables [--json]",
		Description: `Displays every known translation table: the builtins plus any loaded
from the configured tables directory. The active table is marked.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})
	return app
}

type tableInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Locale string `json:"locale"`
	Grade  int    `json:"grade"`
	Active bool   `json:"active"`
}

func (cmd *TablesCmd) run(_ context.Context, c *cli.Command) error {
	reg := cmd.flags.Registry
	active := reg.ActiveID()
	out := c.Root().Writer

	if cmd.jsonOutput {
		infos := make([]tableInfo, 0)
		for _, t := range reg.List() {
			infos = append(infos, tableInfo{
				ID:     t.ID,
				Name:   t.Name,
				Locale: t.Locale,
				Grade:  t.Grade,
				Active: t.ID == active,
			})
		}
		return iojson.WriteWith(out, c.Root().ErrWriter, infos)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tLOCALE\tGRADE\tACTIVE")
	for _, t := range reg.List() {
		mark := ""
		if t.ID == active {
			mark = "*"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", t.ID, t.Name, t.Locale, t.Grade, mark)
	}
	return w.Flush()
}
