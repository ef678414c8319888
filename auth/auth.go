// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package auth grants or denies capability-flag permissions (entity G,
// §4.G) over named context-stack scopes: "is this layer writable for
// assignment", "does this layer allow autoload". A scope is whatever
// name an embedder published a layer under (e.g. "config", "args"),
// not a user account.
package auth

import (
	"strings"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/kirkendall/jsoncalc-sub001/evalctx"
)

// Permission is a bitmask of capabilities a named scope may grant.
type Permission int

const (
	ReadPerm Permission = 1 << iota
	WritePerm
	AutoloadPerm
)

var (
	// AllPermissions holds all defined permissions.
	AllPermissions = ReadPerm | WritePerm | AutoloadPerm
	// DefaultPermissions are the permissions granted to a scope with no
	// explicit grant list.
	DefaultPermissions = ReadPerm

	// PermissionNames translates between human and machine
	// representations, e.g. for Scoped grant files.
	PermissionNames = map[string]Permission{
		"read":     ReadPerm,
		"write":    WritePerm,
		"autoload": AutoloadPerm,
	}

	// ErrNotAuthorized is returned when a scope has no grant recorded at
	// all.
	ErrNotAuthorized = errors.NewKind("not authorized")
	// ErrNoPermission names the specific missing permission.
	ErrNoPermission = errors.NewKind("missing permission: %s")
)

// String returns p's permissions as a comma-joined word list, e.g.
// "read,write".
func (p Permission) String() string {
	var words []string
	for _, name := range []string{"read", "write", "autoload"} {
		if p&PermissionNames[name] != 0 {
			words = append(words, name)
		}
	}
	if len(words) == 0 {
		return "none"
	}
	return strings.Join(words, ",")
}

// Required derives the Permission a layer's capability flags demand: a
// Const layer only ever needs read, a NoCache (autoloading) layer needs
// autoload too, and anything else needs write for assignment to reach
// it at all.
func Required(flags evalctx.Flag) Permission {
	need := ReadPerm
	if !flags.Has(evalctx.Const) {
		need |= WritePerm
	}
	if flags.Has(evalctx.NoCache) {
		need |= AutoloadPerm
	}
	return need
}

// Auth decides whether a named scope is granted a given Permission.
type Auth interface {
	// Allowed checks scope's granted permissions against permission. If
	// the scope has no grant at all it returns ErrNotAuthorized; if it
	// has a grant missing some of permission it returns ErrNoPermission.
	Allowed(scope string, permission Permission) error
}

// Writable reports whether a layer's flags admit assignment at all,
// independent of any Auth grant ("is this layer writable for
// assignment").
func Writable(flags evalctx.Flag) bool {
	return !flags.Has(evalctx.Const)
}

// Autoloadable reports whether a layer's flags admit on-demand autoload
// lookups ("does this layer allow autoload").
func Autoloadable(flags evalctx.Flag) bool {
	return flags.Has(evalctx.NoCache)
}
