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

package eval

import errors "gopkg.in/src-d/go-errors.v1"

// ErrUnknownFunc is raised when a call site's name resolves to nothing
// in the function table at evaluation time.
var ErrUnknownFunc = errors.NewKind("unknown function: %s")

// ErrBadLValue is raised when the left side of an assignment isn't a
// Name, dot chain, or subscript chain (§4.G).
var ErrBadLValue = errors.NewKind("invalid assignment target")

// ErrBadMember reports a '.' applied to something that can't have a
// member extracted (§4.F.4).
var ErrBadMember = errors.NewKind("cannot get member of %s")
