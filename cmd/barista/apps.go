// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"slices"
	"strings"

	"barista.dev/barista/core"
	"barista.dev/barista/dom"
	"barista.dev/barista/examples/giant"
	"barista.dev/barista/examples/todo"
)

// apps are the applications the commands can serve and render.
var apps = map[string]func() core.Node{
	"todo":  func() core.Node { return todo.New() },
	"giant": func() core.Node { return giant.New(3, 4) },
	"hello": func() core.Node {
		return dom.El("div").Nest(dom.El("h1").SetText("Hello, barista"))
	},
}

func appNames() string {
	var names []string
	for name := range apps {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func lookupApp(name string) (func() core.Node, error) {
	app, ok := apps[name]
	if !ok {
		return nil, fmt.Errorf("unknown app %q (available: %s)", name, appNames())
	}
	return app, nil
}
