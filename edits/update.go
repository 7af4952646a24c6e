// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package edits records the structural and property mutations produced
// by reconciling a render tree, and serializes them either as initial
// markup or as a structured diff for a remote renderer.
//
// Every index in an edit record refers to the pre-edit child list of the
// element being updated: child updates and replacements name the child
// they apply to, removes name the removed child, and placements name the
// child they are inserted before, with the length of the pre-edit list
// meaning "append". Placements (moves and insertions) are applied in the
// order they were recorded, after child updates and removes.
package edits

import (
	"slices"

	"barista.dev/barista/base/ordmap"
)

// Modes are the kinds of [ElementUpdate] records.
type Modes int32

const (
	// Update records changes to an existing child; the index is the
	// child's position in the pre-edit child list.
	Update Modes = iota

	// Insert records a new child in full; the index is the insert-before
	// position in the pre-edit child list.
	Insert

	// Replace records a new child in full that replaces the existing
	// child at the index.
	Replace
)

// String returns the name of the mode.
func (m Modes) String() string {
	switch m {
	case Update:
		return "update"
	case Insert:
		return "insert"
	case Replace:
		return "replace"
	}
	return "unknown"
}

// Move is a move of an existing child.
type Move struct {

	// Before is the pre-edit index of the child the moved child is
	// placed before, or the pre-edit length to append it.
	Before int

	// From is the pre-edit index of the moved child.
	From int
}

// Placement is either a [Move] of an existing child or the insertion
// of a new child. Placements of one element are applied in order.
type Placement struct {

	// Before is the pre-edit index of the child to place before,
	// or the pre-edit length to append.
	Before int

	// From is the pre-edit index of the moved child, or -1 for insertions.
	From int

	// Insert is the full record of the inserted child, or nil for moves.
	Insert *ElementUpdate
}

// IsMove returns whether the placement moves an existing child.
func (p Placement) IsMove() bool {
	return p.Insert == nil
}

// ElementUpdate is an append-only record of the edits for one position
// in the rendered tree: its own property changes, the removal and
// placement of its children, and the nested records of updated children.
// For insert and replace records, it is a full description of the new node.
type ElementUpdate struct {
	mode  Modes
	index int

	// host is set on the root record of a [TreeUpdate], which stands for
	// the container the tree renders into and is never printed itself.
	host bool

	tag      string
	key      string
	bid      string
	textNode bool
	hasText  bool
	text     string

	attrs       *ordmap.Map[string, string]
	removeAttrs []string

	removes    []int
	placements []Placement
	updates    []*ElementUpdate
}

func newElementUpdate(mode Modes, index int) *ElementUpdate {
	return &ElementUpdate{mode: mode, index: index}
}

// Mode returns the kind of this record.
func (u *ElementUpdate) Mode() Modes { return u.mode }

// Index returns the child index (update and replace records) or the
// insert-before index (insert records) in the parent's pre-edit child list.
func (u *ElementUpdate) Index() int { return u.index }

// IsFull returns whether this record fully describes a new node,
// which is the case for insert and replace records.
func (u *ElementUpdate) IsFull() bool {
	return u.mode == Insert || u.mode == Replace
}

// RemoveChild records the removal of the child at the given pre-edit index.
func (u *ElementUpdate) RemoveChild(index int) {
	u.removes = append(u.removes, index)
}

// MoveChild records moving the child at pre-edit index from to just
// before the child at pre-edit index before.
func (u *ElementUpdate) MoveChild(before, from int) {
	u.placements = append(u.placements, Placement{Before: before, From: from})
}

// InsertChild records the insertion of a new child before the child at
// the given pre-edit index, and returns the record that describes it.
func (u *ElementUpdate) InsertChild(before int) *ElementUpdate {
	cu := newElementUpdate(Insert, before)
	u.placements = append(u.placements, Placement{Before: before, From: -1, Insert: cu})
	return cu
}

// UpdateChild returns a new record for changes to the child at the
// given pre-edit index.
func (u *ElementUpdate) UpdateChild(index int) *ElementUpdate {
	cu := newElementUpdate(Update, index)
	u.updates = append(u.updates, cu)
	return cu
}

// Replace discards everything recorded so far and turns this record into
// a full description of a new node. Update records become replace records;
// insert records stay insert records. It returns the record for chaining.
func (u *ElementUpdate) Replace() *ElementUpdate {
	host := u.host
	mode := u.mode
	if mode == Update {
		mode = Replace
	}
	*u = ElementUpdate{mode: mode, index: u.index, host: host}
	return u
}

// SetTag records the tag of an element.
func (u *ElementUpdate) SetTag(tag string) { u.tag = tag }

// SetKey records the key of a node, which is printed as a marker in markup.
func (u *ElementUpdate) SetKey(key string) { u.key = key }

// SetBid records the dispatch identifier of an element.
func (u *ElementUpdate) SetBid(bid string) { u.bid = bid }

// SetText records new text content of a text node.
func (u *ElementUpdate) SetText(text string) {
	u.text = text
	u.hasText = true
}

// SetTextNode marks this record as describing a text node with the given text.
func (u *ElementUpdate) SetTextNode(text string) {
	u.textNode = true
	u.SetText(text)
}

// SetAttribute records setting the attribute with the given name.
func (u *ElementUpdate) SetAttribute(name, value string) {
	if u.attrs == nil {
		u.attrs = ordmap.New[string, string]()
	}
	u.attrs.Add(name, value)
}

// RemoveAttribute records removing the attribute with the given name.
func (u *ElementUpdate) RemoveAttribute(name string) {
	u.removeAttrs = append(u.removeAttrs, name)
}

// Tag returns the recorded tag.
func (u *ElementUpdate) Tag() string { return u.tag }

// Key returns the recorded key.
func (u *ElementUpdate) Key() string { return u.key }

// Bid returns the recorded dispatch identifier.
func (u *ElementUpdate) Bid() string { return u.bid }

// Text returns the recorded text and whether any was recorded.
func (u *ElementUpdate) Text() (string, bool) { return u.text, u.hasText }

// IsTextNode returns whether this record describes a text node.
func (u *ElementUpdate) IsTextNode() bool { return u.textNode }

// Attributes returns the recorded attribute settings in order.
func (u *ElementUpdate) Attributes() *ordmap.Map[string, string] { return u.attrs }

// RemovedAttributes returns the names of the removed attributes.
func (u *ElementUpdate) RemovedAttributes() []string { return u.removeAttrs }

// Removes returns the pre-edit indexes of the removed children.
func (u *ElementUpdate) Removes() []int { return u.removes }

// Placements returns the moves and insertions in order.
func (u *ElementUpdate) Placements() []Placement { return u.placements }

// Moves returns the moves among the placements.
func (u *ElementUpdate) Moves() []Move {
	var ms []Move
	for _, p := range u.placements {
		if p.IsMove() {
			ms = append(ms, Move{Before: p.Before, From: p.From})
		}
	}
	return ms
}

// Inserts returns the records of the inserted children, in order.
func (u *ElementUpdate) Inserts() []*ElementUpdate {
	var is []*ElementUpdate
	for _, p := range u.placements {
		if !p.IsMove() {
			is = append(is, p.Insert)
		}
	}
	return is
}

// Updates returns the records of updated and replaced children.
func (u *ElementUpdate) Updates() []*ElementUpdate { return u.updates }

// Child returns the update or replace record for the child at the given
// pre-edit index, or nil if there is none.
func (u *ElementUpdate) Child(index int) *ElementUpdate {
	i := slices.IndexFunc(u.updates, func(cu *ElementUpdate) bool { return cu.index == index })
	if i < 0 {
		return nil
	}
	return u.updates[i]
}

// hasOwnChanges returns whether this record changes the node itself.
func (u *ElementUpdate) hasOwnChanges() bool {
	return u.tag != "" || u.bid != "" || u.hasText || u.attrs.Len() > 0 || len(u.removeAttrs) > 0
}

// IsEmpty returns whether this record changes nothing, including through
// its nested child records. Insert and replace records are never empty.
func (u *ElementUpdate) IsEmpty() bool {
	if u.IsFull() {
		return false
	}
	if u.hasOwnChanges() || len(u.removes) > 0 || len(u.placements) > 0 {
		return false
	}
	for _, cu := range u.updates {
		if !cu.IsEmpty() {
			return false
		}
	}
	return true
}
