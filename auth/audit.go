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
	"time"

	"github.com/sirupsen/logrus"
)

// AuditMethod is called to log the audit trail of actions.
type AuditMethod interface {
	// Authorization logs a permission check against a named scope.
	Authorization(scope string, p Permission, err error)
	// Statement logs one top-level statement run.
	Statement(source string, d time.Duration, err error)
}

// NewAudit creates a wrapped Auth that sends audit trails to the
// specified method.
func NewAudit(auth Auth, method AuditMethod) Auth {
	return &Audit{
		auth:   auth,
		method: method,
	}
}

// Audit is an Auth proxy that sends audit trails to the specified
// AuditMethod.
type Audit struct {
	auth   Auth
	method AuditMethod
}

// Allowed implements Auth.
func (a *Audit) Allowed(scope string, permission Permission) error {
	err := a.auth.Allowed(scope, permission)
	a.method.Authorization(scope, permission, err)

	return err
}

// Statement reports one completed statement run to the underlying
// method, for embedders timing every top-level Run call.
func (a *Audit) Statement(source string, d time.Duration, err error) {
	a.method.Statement(source, d, err)
}

// NewAuditLog creates a new AuditMethod that logs to a logrus.Logger.
func NewAuditLog(l *logrus.Logger) AuditMethod {
	la := l.WithField("system", "audit")

	return &AuditLog{
		log: la,
	}
}

const auditLogMessage = "audit trail"

// AuditLog logs audit trails to a logrus.Logger.
type AuditLog struct {
	log *logrus.Entry
}

// Authorization implements AuditMethod.
func (a *AuditLog) Authorization(scope string, p Permission, err error) {
	fields := logrus.Fields{
		"action":     "authorization",
		"scope":      scope,
		"permission": p.String(),
		"success":    err == nil,
	}
	if err != nil {
		fields["err"] = err
	}

	a.log.WithFields(fields).Info(auditLogMessage)
}

// Statement implements AuditMethod.
func (a *AuditLog) Statement(source string, d time.Duration, err error) {
	fields := logrus.Fields{
		"action":   "statement",
		"source":   source,
		"duration": d,
		"success":  err == nil,
	}
	if err != nil {
		fields["err"] = err
	}

	a.log.WithFields(fields).Info(auditLogMessage)
}
