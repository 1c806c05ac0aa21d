package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/tactilehq/dotwin/internal/tui"
)

type SimCmd struct {
	flags *Flags
}

// NewSimCmd creates a new sim command.
func NewSimCmd(flags *Flags) *SimCmd {
	return &SimCmd{flags: flags}
}

// Register adds the sim command to the application.
func (cmd *SimCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "sim",
		Usage:     "Run the interactive display simulator",
		UsageText: "dotwin sim",
		Description: `Opens a terminal stand-in for a physical braille display: the visible
cell window renders as Unicode braille, and the keyboard feeds mapped
commands into the engine.

Press f1 inside the simulator for the key reference.`,
		Action: cmd.run,
	})
	return app
}

// Run executes the simulator. Exported for use as the default action.
func (cmd *SimCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *SimCmd) run(_ context.Context, _ *cli.Command) error {
	model := tui.New(log.Logger, cmd.flags.Config, cmd.flags.Registry)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run simulator: %w", err)
	}
	return nil
}
