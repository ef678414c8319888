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

package evalctx

import "github.com/kirkendall/jsoncalc-sub001/value"

// Cursor selects which known file becomes active relative to the
// current one (§4.G "files are a pseudo-layer").
type Cursor int

const (
	CursorNext Cursor = iota
	CursorSame
	CursorPrevious
)

// knownFile is one entry in the files pseudo-layer.
type knownFile struct {
	Name     string
	Writable bool
	Data     value.Value
	Modified bool
}

// Files tracks the set of files an engine has opened, plus which one is
// "current" for relative statements like a bare save.
type Files struct {
	list    []*knownFile
	current int
}

func newFiles() *Files {
	return &Files{current: -1}
}

// Open registers name (or returns the existing entry for it).
func (f *Files) Open(name string, writable bool, data value.Value) int {
	for i, kf := range f.list {
		if kf.Name == name {
			return i
		}
	}
	f.list = append(f.list, &knownFile{Name: name, Writable: writable, Data: data})
	return len(f.list) - 1
}

// Writeback is invoked (as the wb argument a caller passes to Select) when a modified
// writable file is about to stop being current.
type Writeback func(name string, data value.Value) error

// Select moves the cursor according to cur, triggering writeback via wb
// when the file being left is modified and writable (§4.G).
func (f *Files) Select(cur Cursor, explicitIndex int, wb Writeback) error {
	if f.current >= 0 && f.current < len(f.list) {
		cf := f.list[f.current]
		if cf.Modified && cf.Writable && wb != nil {
			if err := wb(cf.Name, cf.Data); err != nil {
				return err
			}
			cf.Modified = false
		}
	}
	switch cur {
	case CursorNext:
		if f.current+1 < len(f.list) {
			f.current++
		}
	case CursorPrevious:
		if f.current > 0 {
			f.current--
		}
	case CursorSame:
		if explicitIndex >= 0 && explicitIndex < len(f.list) {
			f.current = explicitIndex
		}
	}
	return nil
}

// Current returns the active file's data, or nil if none is selected.
func (f *Files) Current() value.Value {
	if f.current < 0 || f.current >= len(f.list) {
		return nil
	}
	return f.list[f.current].Data
}

// MarkModified flags the current file as dirty, so a later Select
// triggers writeback.
func (f *Files) MarkModified() {
	if f.current >= 0 && f.current < len(f.list) {
		f.list[f.current].Modified = true
	}
}
