package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/tactilehq/dotwin/internal/core/config"
)

type InitCmd struct {
	flags *Flags
}

// NewInitCmd creates a new init command.
func NewInitCmd(flags *Flags) *InitCmd {
	return &InitCmd{flags: flags}
}

// Register adds the init command to the application.
func (cmd *InitCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "init",
		Usage:     "Create a config file interactively",
		UsageText: "dotwin init",
		Description: `Walks through the display and table settings and writes the result
to the config path (see --config).`,
		Action: cmd.run,
	})
	return app
}

func (cmd *InitCmd) run(_ context.Context, c *cli.Command) error {
	path := cmd.flags.ConfigPath

	if _, err := os.Stat(path); err == nil {
		overwrite := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("%s already exists. Overwrite?", path)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			return nil
		}
	}

	cfg := config.DefaultConfig()
	widthStr := strconv.Itoa(cfg.Display.Width)

	var tableOptions []huh.Option[string]
	for _, t := range cmd.flags.Registry.List() {
		tableOptions = append(tableOptions, huh.NewOption(fmt.Sprintf("%s (%s)", t.Name, t.ID), t.ID))
	}
	active := cmd.flags.Registry.ActiveID()

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Display width").
			Description("Number of braille cells on the device").
			Value(&widthStr).
			Validate(func(s string) error {
				n, err := strconv.Atoi(s)
				if err != nil || n < 1 {
					return fmt.Errorf("width must be a positive number")
				}
				return nil
			}),
		huh.NewSelect[string]().
			Title("Translation table").
			Options(tableOptions...).
			Value(&active),
		huh.NewConfirm().
			Title("Split paragraphs?").
			Description("Start a new display line at every paragraph break").
			Value(&cfg.Display.SplitParagraphs),
	))
	if err := form.Run(); err != nil {
		return err
	}

	cfg.Display.Width, _ = strconv.Atoi(widthStr)
	cfg.Tables.Active = active
	// The merged default bindings would be noise in the file.
	cfg.Keymap = nil

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(c.Root().Writer, "Wrote %s\n", path)
	return nil
}
