package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

type DocsCmd struct {
	flags *Flags
	plain bool
}

func NewDocsCmd(flags *Flags) *DocsCmd {
	return &DocsCmd{flags: flags}
}

func (cmd *DocsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "docs",
		Usage: "Documentation and guides",
		Description: `Access documentation for dotwin.

Use 'dotwin docs usage' for an overview of the engine and simulator.
Use 'dotwin docs config' for the config file reference.`,
		Commands: []*cli.Command{
			cmd.guideCmd("usage", "Show the usage guide", usageGuide),
			cmd.guideCmd("config", "Show the config file reference", configGuide),
		},
	})
	return app
}

func (cmd *DocsCmd) guideCmd(name, usage, body string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "plain",
				Usage:       "print raw markdown without terminal styling",
				Destination: &cmd.plain,
			},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			return cmd.print(c, body)
		},
	}
}

func (cmd *DocsCmd) print(c *cli.Command, body string) error {
	w := c.Root().Writer

	if cmd.plain {
		_, _ = fmt.Fprintln(w, body)
		return nil
	}

	wrapWidth := 100
	if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 0 && tw < wrapWidth {
		wrapWidth = tw
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(wrapWidth),
	)
	if err != nil {
		_, _ = fmt.Fprintln(w, body)
		return nil
	}
	rendered, err := r.Render(body)
	if err != nil {
		_, _ = fmt.Fprintln(w, body)
		return nil
	}
	_, _ = fmt.Fprint(w, rendered)
	return nil
}

const usageGuide = `# Dotwin Usage Guide

Dotwin drives a braille display: it translates text to braille cells,
wraps them to the display width, and routes input commands through a
stack of modes.

## Commands

| Command | Description |
|---------|-------------|
| ` + "`dotwin sim`" + ` | Interactive simulator (the default action) |
| ` + "`dotwin render <text>`" + ` | Translate and print wrapped braille lines |
| ` + "`dotwin tables`" + ` | List translation tables |
| ` + "`dotwin init`" + ` | Create a config file interactively |
| ` + "`dotwin config validate`" + ` | Check the config file |

## The simulator

The simulator stands in for a physical device. The braille row shows the
visible cell window; the ruler under it marks a virtual routing cursor.

| Key | Action |
|-----|--------|
| left / right | Pan the window |
| down / up | Move focus to the next or previous item |
| enter | Activate the focused item |
| tab | Switch input mode |
| [ / ] | Move the routing cursor |
| . | Tap the routing key under the cursor |
| , | Long-press the routing key |
| 1-8 | Press braille dots (editor mode) |
| m | Open the menu |
| ctrl+s | Suspend input |
| f1 | Key reference |
| q | Quit |

## Modes

The **editor** mode is the default: it shows the focused item and, when
an editable field has both focus and input focus, switches to braille
composition where dot chords append to the uncommitted input.

The **debug** mode walks the accessibility tree node by node.

The menu is an overlay mode: while open it receives all input, and
closing it returns to the mode underneath.

## Suspend

While suspended, most input is ignored. Pan commands still work so the
display stays readable. Entering a dot chord resumes normal input.
`

const configGuide = `# Dotwin Config Reference

The config file lives at ` + "`$XDG_CONFIG_HOME/dotwin/config.yaml`" + ` by
default; override with ` + "`--config`" + `.

## Example

` + "```yaml" + `
display:
  width: 40
  blink_interval_ms: 700
  flash_base_ms: 1500
  flash_per_cell_ms: 150
  split_paragraphs: true

tables:
  dir: ~/.config/dotwin/tables
  glob: "*.yaml"
  active: en-g2

keymap:
  left: pan-up
  right: pan-down
  "?": global-help
  backspace: ""   # empty unbinds a default
` + "```" + `

## Keys

- ` + "`display.width`" + ` is the number of braille cells on the device.
- ` + "`display.blink_interval_ms`" + ` controls the cursor blink rate.
- ` + "`display.flash_base_ms`" + ` and ` + "`flash_per_cell_ms`" + ` set how long
  flash messages stay up: base plus per-cell extra.
- ` + "`tables.dir`" + ` is scanned with ` + "`tables.glob`" + ` for table files;
  builtins are always available.
- ` + "`keymap`" + ` entries merge over the defaults. An empty value removes
  a default binding.

Run ` + "`dotwin config validate`" + ` after editing.
`
