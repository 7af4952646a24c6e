// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"io"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/muesli/termenv"
	"golang.org/x/net/html"

	"barista.dev/barista/core"
)

// RenderCommand renders the first frame of an app.
type RenderCommand struct {
	Ui cli.Ui

	// Stdout is the terminal the output ends up on,
	// used to detect color support.
	Stdout io.Writer
}

func (c *RenderCommand) Synopsis() string {
	return "Render the first frame of an app"
}

func (c *RenderCommand) Help() string {
	return strings.TrimSpace(`
Usage: barista render [options]

  Renders the first frame of an app and prints its markup,
  with tags highlighted on color terminals.

Options:

  -app=name   App to render (` + appNames() + `). Defaults to todo.
  -json       Print the frame as the JSON message sent to browsers.
  -dump       Print the render tree instead of the markup.
`)
}

func (c *RenderCommand) Run(args []string) int {
	var appName string
	var asJSON, dump bool
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.Usage = func() { c.Ui.Output(c.Help()) }
	fs.StringVar(&appName, "app", "todo", "")
	fs.BoolVar(&asJSON, "json", false, "")
	fs.BoolVar(&dump, "dump", false, "")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	app, err := lookupApp(appName)
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	tree := core.NewTree(app())
	tu, err := tree.Frame()
	if err != nil {
		c.Ui.Error(err.Error())
		return 1
	}
	switch {
	case dump:
		c.Ui.Output(strings.TrimSuffix(tree.Dump(), "\n"))
	case asJSON:
		msg, err := tu.Render()
		if err != nil {
			c.Ui.Error(err.Error())
			return 1
		}
		c.Ui.Output(msg)
	default:
		markup, err := tu.PrintHTML()
		if err != nil {
			c.Ui.Error(err.Error())
			return 1
		}
		c.Ui.Output(highlight(termenv.NewOutput(c.Stdout), markup))
	}
	return 0
}

// highlight colors the tags of the given markup for the terminal.
func highlight(out *termenv.Output, markup string) string {
	tag := out.Color("4")
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if !errors.Is(z.Err(), io.EOF) {
				b.Write(z.Raw())
			}
			return b.String()
		}
		raw := string(z.Raw())
		switch tt {
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteString(out.String(raw).Foreground(tag).String())
		default:
			b.WriteString(raw)
		}
	}
}
