// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package edits

import (
	"encoding/json"
	"fmt"
)

// Message is the wire form of one rendered frame. Exactly one of its
// fields is set.
type Message struct {

	// Create is the full markup of a newly created tree.
	Create *string `json:"create,omitempty"`

	// Update is the structured diff of an existing tree.
	Update *WireUpdate `json:"update,omitempty"`

	// Noop is set when a frame changed nothing.
	Noop bool `json:"noop,omitempty"`
}

// WireUpdate is the wire form of an update record.
type WireUpdate struct {
	Index       int               `json:"index"`
	Tag         string            `json:"tag,omitempty"`
	Text        *string           `json:"text,omitempty"`
	Bid         string            `json:"bid,omitempty"`
	Attrs       []WireAttr        `json:"attrs,omitempty"`
	RemoveAttrs []string          `json:"removeAttrs,omitempty"`
	Remove      []int             `json:"remove,omitempty"`
	Place       []WirePlacement   `json:"place,omitempty"`
	Replace     []WireReplacement `json:"replace,omitempty"`
	Children    []*WireUpdate     `json:"children,omitempty"`
}

// WireAttr is an attribute set by an update, as a [name, value] pair.
// Attributes are sent as a list so that they are set in recording order.
type WireAttr [2]string

// WirePlacement is the wire form of a [Placement]. From is set for moves
// and HTML for insertions.
type WirePlacement struct {
	Before int     `json:"before"`
	From   *int    `json:"from,omitempty"`
	HTML   *string `json:"html,omitempty"`
}

// WireReplacement is the wire form of a replace record.
type WireReplacement struct {
	Index int    `json:"index"`
	HTML  string `json:"html"`
}

// Wire returns the wire form of this update record. Empty nested
// records are left out.
func (u *ElementUpdate) Wire() (*WireUpdate, error) {
	if u.IsFull() {
		return nil, fmt.Errorf("edits: %s record at %d has no update wire form", u.mode, u.index)
	}
	w := &WireUpdate{Index: u.index, Tag: u.tag, Bid: u.bid, Remove: u.removes, RemoveAttrs: u.removeAttrs}
	if u.hasText {
		text := u.text
		w.Text = &text
	}
	for name, value := range u.attrs.All() {
		w.Attrs = append(w.Attrs, WireAttr{name, value})
	}
	for _, p := range u.placements {
		wp := WirePlacement{Before: p.Before}
		if p.IsMove() {
			from := p.From
			wp.From = &from
		} else {
			h, err := p.Insert.HTML()
			if err != nil {
				return nil, err
			}
			wp.HTML = &h
		}
		w.Place = append(w.Place, wp)
	}
	for _, cu := range u.updates {
		if cu.mode == Replace {
			h, err := cu.HTML()
			if err != nil {
				return nil, err
			}
			w.Replace = append(w.Replace, WireReplacement{Index: cu.index, HTML: h})
			continue
		}
		if cu.IsEmpty() {
			continue
		}
		cw, err := cu.Wire()
		if err != nil {
			return nil, err
		}
		w.Children = append(w.Children, cw)
	}
	return w, nil
}

// DecodeMessage decodes a rendered frame.
func DecodeMessage(data []byte) (*Message, error) {
	m := &Message{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("edits: decoding message: %w", err)
	}
	return m, nil
}
