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

package auth

import (
	"encoding/json"
	"os"
	"strings"

	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrParseScopeFile is given when a scope grant file is malformed.
	ErrParseScopeFile = errors.NewKind("error parsing scope file")
	// ErrUnknownPermission happens when a scope names a permission word
	// that isn't in PermissionNames.
	ErrUnknownPermission = errors.NewKind("unknown permission, %s")
	// ErrDuplicateScope happens when a scope appears more than once in a
	// grant file.
	ErrDuplicateScope = errors.NewKind("duplicate scope, %s")
)

// scopeGrant holds the permissions granted to one named scope.
type scopeGrant struct {
	Name            string
	JSONPermissions []string `json:"Permissions"`
	Permissions     Permission
}

// allowed checks if the scope has p.
func (g scopeGrant) allowed(p Permission) error {
	if g.Permissions&p == p {
		return nil
	}
	missing := (^g.Permissions) & p
	return ErrNoPermission.New(missing)
}

// Scoped holds permission grants per named context-stack scope.
type Scoped struct {
	grants map[string]scopeGrant
}

// NewScopedSingle creates a Scoped with a single named scope granted
// perm.
func NewScopedSingle(name string, perm Permission) *Scoped {
	return &Scoped{grants: map[string]scopeGrant{
		name: {Name: name, Permissions: perm},
	}}
}

// NewScopedFile creates a Scoped and loads its grants from a JSON file,
// one object per scope: {"Name": "...", "Permissions": ["read", ...]}.
func NewScopedFile(file string) (*Scoped, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, ErrParseScopeFile.New(err)
	}

	var data []scopeGrant
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, ErrParseScopeFile.New(err)
	}

	grants := make(map[string]scopeGrant, len(data))
	for _, g := range data {
		if _, ok := grants[g.Name]; ok {
			return nil, ErrDuplicateScope.New(g.Name)
		}

		if len(g.JSONPermissions) == 0 {
			g.Permissions = DefaultPermissions
		}

		for _, p := range g.JSONPermissions {
			perm, ok := PermissionNames[strings.ToLower(p)]
			if !ok {
				return nil, ErrUnknownPermission.New(p)
			}
			g.Permissions |= perm
		}

		grants[g.Name] = g
	}

	return &Scoped{grants: grants}, nil
}

// Allowed implements Auth.
func (s *Scoped) Allowed(scope string, permission Permission) error {
	g, ok := s.grants[scope]
	if !ok {
		return ErrNotAuthorized.New()
	}

	return g.allowed(permission)
}
