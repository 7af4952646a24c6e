// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import "fmt"

// Event is a DOM event forwarded by the host to the render tree.
type Event struct {

	// Type is the DOM event type, such as "click" or "keyup".
	Type string `json:"type"`

	// Target is the dispatch id (the _bid attribute) of the element the
	// event was fired on.
	Target string `json:"target"`

	// Data is an event specific payload, such as the value of an input
	// element for "keyup".
	Data string `json:"data,omitempty"`
}

func (ev *Event) String() string {
	return fmt.Sprintf("%s@%s", ev.Type, ev.Target)
}
