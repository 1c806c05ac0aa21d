package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/tactilehq/dotwin/internal/core/translate"
	"github.com/tactilehq/dotwin/internal/core/wrap"
)

type RenderCmd struct {
	flags *Flags

	// flags
	width    int
	table    string
	split    bool
	showText bool
}

// NewRenderCmd creates a new render command.
func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags}
}

// Register adds the render command to the application.
func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "render",
		Usage:     "Translate text and print it as wrapped braille lines",
		UsageText: "dotwin render [options] <text>...",
		Description: `Translates the given text with the active table, wraps it to the
display width and prints one braille line per display window.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "width",
				Usage:       "cells per line (0 = detect from terminal)",
				Destination: &cmd.width,
			},
			&cli.StringFlag{
				Name:        "table",
				Usage:       "translation table id (defaults to the configured table)",
				Destination: &cmd.table,
			},
			&cli.BoolFlag{
				Name:        "split-paragraphs",
				Usage:       "start a new line at every paragraph break",
				Destination: &cmd.split,
			},
			&cli.BoolFlag{
				Name:        "text",
				Usage:       "print the source text under each braille line",
				Destination: &cmd.showText,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *RenderCmd) run(_ context.Context, c *cli.Command) error {
	text := strings.Join(c.Args().Slice(), " ")
	if text == "" {
		return fmt.Errorf("nothing to render; pass text as arguments")
	}

	reg := cmd.flags.Registry
	if cmd.table != "" {
		if err := reg.SetActive(cmd.table); err != nil {
			return err
		}
	}

	width := cmd.width
	if width <= 0 {
		width = cmd.flags.Config.Display.Width
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
			width = w
		}
	}

	r, err := reg.Translate(text, translate.None, false)
	res := translate.OrDummy(r, err, text)

	st := wrap.NewWordWrap(width)
	st.SetContent(res, cmd.split)

	out := c.Root().Writer
	for {
		lo, hi := st.DisplayStart(), st.DisplayEnd()
		fmt.Fprintln(out, res.Cells.Slice(lo, hi).String())
		if cmd.showText {
			fmt.Fprintln(out, sourceSlice(res, lo, hi))
		}
		if !st.PanDown() {
			break
		}
	}
	return nil
}

// sourceSlice returns the source text covered by the cell range.
func sourceSlice(res *translate.Result, lo, hi int) string {
	runes := []rune(res.Text)
	tLo := res.CellToText[lo]
	tHi := res.CellToText[hi]
	if tLo > len(runes) {
		tLo = len(runes)
	}
	if tHi > len(runes) {
		tHi = len(runes)
	}
	return strings.ReplaceAll(string(runes[tLo:tHi]), "\n", " ")
}
