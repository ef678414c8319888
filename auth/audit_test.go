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
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/kirkendall/jsoncalc-sub001/auth"
)

type auditRecord struct {
	scope   string
	perm    auth.Permission
	authErr error

	source  string
	dur     time.Duration
	stmtErr error
}

func (a *auditRecord) Authorization(scope string, p auth.Permission, err error) {
	a.scope, a.perm, a.authErr = scope, p, err
}

func (a *auditRecord) Statement(source string, d time.Duration, err error) {
	a.source, a.dur, a.stmtErr = source, d, err
}

func TestAuditProxiesAllowed(t *testing.T) {
	inner := auth.NewScopedSingle("config", auth.ReadPerm)
	rec := &auditRecord{}
	audited := auth.NewAudit(inner, rec)

	require.NoError(t, audited.Allowed("config", auth.ReadPerm))
	require.Equal(t, "config", rec.scope)
	require.Equal(t, auth.ReadPerm, rec.perm)
	require.NoError(t, rec.authErr)

	require.Error(t, audited.Allowed("config", auth.WritePerm))
	require.Error(t, rec.authErr)
}

func TestAuditStatement(t *testing.T) {
	inner := auth.NewScopedSingle("config", auth.AllPermissions)
	rec := &auditRecord{}
	audited := auth.NewAudit(inner, rec).(*auth.Audit)

	audited.Statement("1+1", 5*time.Millisecond, nil)
	require.Equal(t, "1+1", rec.source)
	require.Equal(t, 5*time.Millisecond, rec.dur)
	require.NoError(t, rec.stmtErr)
}

func TestAuditLog(t *testing.T) {
	logger, hook := test.NewNullLogger()
	l := auth.NewAuditLog(logger)

	l.Authorization("config", auth.ReadPerm, nil)
	e := hook.LastEntry()
	require.NotNil(t, e)
	require.Equal(t, logrus.InfoLevel, e.Level)
	require.Equal(t, "config", e.Data["scope"])
	require.Equal(t, true, e.Data["success"])

	err := auth.ErrNoPermission.New(auth.WritePerm)
	l.Authorization("config", auth.WritePerm, err)
	e = hook.LastEntry()
	require.Equal(t, false, e.Data["success"])
	require.Equal(t, err, e.Data["err"])

	l.Statement("1+1", 5*time.Millisecond, nil)
	e = hook.LastEntry()
	require.Equal(t, "statement", e.Data["action"])
	require.Equal(t, 5*time.Millisecond, e.Data["duration"])
	require.Equal(t, true, e.Data["success"])

	l.Statement("1+1", 5*time.Millisecond, err)
	e = hook.LastEntry()
	require.Equal(t, false, e.Data["success"])
}
