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

package auth_test

import (
	"os"
	"testing"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/stretchr/testify/require"

	"github.com/kirkendall/jsoncalc-sub001/auth"
)

const (
	baseScopeConfig = `
[
	{"Name": "config", "Permissions": ["read", "write"]},
	{"Name": "args", "Permissions": ["read"]},
	{"Name": "system"}
]`
	duplicateScope = `[{"Name": "config"}, {"Name": "config"}]`
	badPermission  = `[{"Name": "config", "Permissions": ["read", "admin"]}]`
	badJSON        = "I,am{not}JSON"
)

func writeScopeConfig(t *testing.T, config string) string {
	t.Helper()
	f, err := os.CreateTemp("", "scoped-config")
	require.NoError(t, err)
	_, err = f.WriteString(config)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	t.Cleanup(func() { os.Remove(f.Name()) })
	return f.Name()
}

func TestScopedSingleAll(t *testing.T) {
	a := auth.NewScopedSingle("config", auth.AllPermissions)

	require.NoError(t, a.Allowed("config", auth.ReadPerm))
	require.NoError(t, a.Allowed("config", auth.WritePerm))
	require.NoError(t, a.Allowed("config", auth.AutoloadPerm))
	require.Error(t, a.Allowed("args", auth.ReadPerm))
}

func TestScopedSingleReadOnly(t *testing.T) {
	a := auth.NewScopedSingle("config", auth.ReadPerm)

	require.NoError(t, a.Allowed("config", auth.ReadPerm))
	require.Error(t, a.Allowed("config", auth.WritePerm))
}

func TestScopedFile(t *testing.T) {
	conf := writeScopeConfig(t, baseScopeConfig)

	a, err := auth.NewScopedFile(conf)
	require.NoError(t, err)

	require.NoError(t, a.Allowed("config", auth.ReadPerm))
	require.NoError(t, a.Allowed("config", auth.WritePerm))

	require.NoError(t, a.Allowed("args", auth.ReadPerm))
	require.Error(t, a.Allowed("args", auth.WritePerm))

	// "system" has no Permissions list, so it falls back to
	// auth.DefaultPermissions (read only).
	require.NoError(t, a.Allowed("system", auth.ReadPerm))
	require.Error(t, a.Allowed("system", auth.WritePerm))

	require.Error(t, a.Allowed("nonexistent", auth.ReadPerm))
}

func TestScopedFileErrors(t *testing.T) {
	tests := []struct {
		name   string
		config string
		err    *errors.Kind
	}{
		{"duplicate_scope", duplicateScope, auth.ErrDuplicateScope},
		{"bad_permission", badPermission, auth.ErrUnknownPermission},
		{"malformed", badJSON, auth.ErrParseScopeFile},
	}

	for _, c := range tests {
		t.Run(c.name, func(t *testing.T) {
			conf := writeScopeConfig(t, c.config)

			_, err := auth.NewScopedFile(conf)
			require.Error(t, err)
			require.True(t, c.err.Is(err))
		})
	}
}
