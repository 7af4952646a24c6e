// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command barista serves and renders barista demo applications.
package main

import (
	"os"

	"cogentcore.org/core/base/errors"
	"github.com/mitchellh/cli"
)

const version = "0.1.0"

func main() {
	ui := &cli.ColoredUi{
		ErrorColor: cli.UiColorRed,
		WarnColor:  cli.UiColorYellow,
		Ui: &cli.BasicUi{
			Reader:      os.Stdin,
			Writer:      os.Stdout,
			ErrorWriter: os.Stderr,
		},
	}
	c := cli.NewCLI("barista", version)
	c.Args = os.Args[1:]
	c.Commands = commands(ui)
	status, err := c.Run()
	errors.Log(err)
	os.Exit(status)
}

func commands(ui cli.Ui) map[string]cli.CommandFactory {
	return map[string]cli.CommandFactory{
		"serve": func() (cli.Command, error) {
			return &ServeCommand{Ui: ui}, nil
		},
		"render": func() (cli.Command, error) {
			return &RenderCommand{Ui: ui, Stdout: os.Stdout}, nil
		},
	}
}
