// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package core reconciles an immutable configuration tree, rebuilt by
// user code on every change, against a long-lived render tree, and
// records the minimal set of edits needed to bring a retained DOM in
// line with the new configuration.
//
// Configuration nodes implement [Node]. Widgets are either stateless
// ([StatelessWidget]), whose Build method is a pure function of the
// widget, or stateful ([StatefulWidget]), whose [State] survives across
// rebuilds as long as the render node is retained. Leaf and multi-child
// nodes implement [Instantiator] and are provided by a leaf vocabulary
// such as package dom.
//
// A [Tree] drives the whole process: each call to [Tree.Frame] walks the
// render tree, rebuilding only the parts marked with
// [RenderNodeBase.ScheduleUpdate] or whose configuration changed, and
// returns the edits as an [edits.TreeUpdate].
package core
