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

// Package value implements the JSON-shaped value model: typed nodes for
// null, boolean, number, string, array, object and key, plus the deferred
// (lazily produced) array driver contract.
package value

import errors "gopkg.in/src-d/go-errors.v1"

// Error codes mirror the "code:message" convention error nulls use so that
// the same string can be embedded directly into a Null's error text.
var (
	// ErrAppendNonKey is returned when something other than a Key is
	// appended to an Object.
	ErrAppendNonKey = errors.NewKind("badappend:cannot append non-key %s to object")

	// ErrDivByZero backs the "div0" error null code.
	ErrDivByZero = errors.NewKind("div0:division by 0")

	// ErrModByZero backs the "mod0" error null code.
	ErrModByZero = errors.NewKind("mod0:modulo by 0")

	// ErrBadCompare backs the "cmpObjArr" error null code: arrays and
	// objects can only be compared with === and !==.
	ErrBadCompare = errors.NewKind("cmpObjArr:arrays and objects can only be compared with === or !==")

	// ErrBadBlob backs the "badblob" error null code for malformed
	// byte-blob deferred arrays.
	ErrBadBlob = errors.NewKind("badblob:%s")

	// ErrInterrupted backs the "intr" error null code.
	ErrInterrupted = errors.NewKind("intr:Interrupted")

	// ErrScanAbandoned describes a deferred scan torn down via BreakScan
	// instead of running to completion. Nothing in this module returns
	// or logs it.
	ErrScanAbandoned = errors.NewKind("scan of %s abandoned without reaching end")
)
