// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edits

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// TreeUpdate is the edit record of one frame. It is either in create
// mode, carrying the full markup of the tree, or in update mode,
// carrying a structured diff. A TreeUpdate belongs to a single frame.
type TreeUpdate struct {
	create bool
	root   *ElementUpdate
}

// NewTreeUpdate returns a new empty [TreeUpdate].
func NewTreeUpdate() *TreeUpdate {
	return &TreeUpdate{}
}

// CreateRoot switches to create mode and returns the host record,
// into which the root of the tree is inserted.
func (t *TreeUpdate) CreateRoot() *ElementUpdate {
	t.create = true
	t.root = &ElementUpdate{mode: Update, host: true}
	return t.root
}

// UpdateRoot switches to update mode and returns the host record,
// whose only child is the root of the tree.
func (t *TreeUpdate) UpdateRoot() *ElementUpdate {
	t.create = false
	t.root = &ElementUpdate{mode: Update, host: true}
	return t.root
}

// IsCreate returns whether this is a create mode record.
func (t *TreeUpdate) IsCreate() bool { return t.create }

// Root returns the host record, or nil if neither
// [TreeUpdate.CreateRoot] nor [TreeUpdate.UpdateRoot] was called.
func (t *TreeUpdate) Root() *ElementUpdate { return t.root }

// IsEmpty returns whether this is an update mode record without changes.
func (t *TreeUpdate) IsEmpty() bool {
	return !t.create && (t.root == nil || t.root.IsEmpty())
}

// PrintHTML returns the markup of a create mode record.
func (t *TreeUpdate) PrintHTML() (string, error) {
	if !t.create {
		return "", fmt.Errorf("edits: PrintHTML called on an update mode record")
	}
	return t.root.HTML()
}

// Message returns the wire form of this record.
func (t *TreeUpdate) Message() (*Message, error) {
	if t.create {
		h, err := t.PrintHTML()
		if err != nil {
			return nil, err
		}
		return &Message{Create: &h}, nil
	}
	if t.IsEmpty() {
		return &Message{Noop: true}, nil
	}
	w, err := t.root.Wire()
	if err != nil {
		return nil, err
	}
	return &Message{Update: w}, nil
}

// Render returns the JSON wire form of this record.
func (t *TreeUpdate) Render() (string, error) {
	m, err := t.Message()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("edits: encoding message: %w", err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

// Apply applies this record to the given container node. In create mode,
// the children of the container are replaced by the nodes parsed from
// the created markup.
func (t *TreeUpdate) Apply(container *html.Node) error {
	if t.root == nil {
		return nil
	}
	if !t.create {
		return Apply(container, t.root)
	}
	markup, err := t.PrintHTML()
	if err != nil {
		return err
	}
	nodes, err := ParseMarkup(container, markup)
	if err != nil {
		return err
	}
	for c := container.FirstChild; c != nil; c = container.FirstChild {
		container.RemoveChild(c)
	}
	for _, c := range nodes {
		container.AppendChild(c)
	}
	return nil
}
