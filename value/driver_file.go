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

package value

// ElementParser parses a single JSON element starting at data[0],
// returning the decoded value and the number of bytes it consumed. It is
// supplied by the jsonio package (which owns the grammar) so that value
// can drive file-backed scanning without importing jsonio back.
type ElementParser func(data []byte) (Value, int, error)

// FileArrayDriver is the file-backed JSON deferred array: a (start, end)
// byte-offset slice into a mapped FileRef, parsed one element at a time.
type FileArrayDriver struct {
	File    *FileRef
	Start   int
	End     int
	Parse   ElementParser
	count   int
	countOK bool
}

// NewFileArray builds a deferred array spanning file.Base[start:end],
// parsing elements on demand with parse. count is the element count if
// already known from the caller's own scan (e.g. the top-level parser
// counting top-level commas while locating end), or -1 if unknown.
func NewFileArray(file *FileRef, start, end, count int, parse ElementParser) *Array {
	file.Ref()
	d := &FileArrayDriver{File: file, Start: start, End: end, Parse: parse}
	if count >= 0 {
		d.count, d.countOK = count, true
	}
	return NewDeferredArray(d)
}

func (d *FileArrayDriver) skipSeparators(pos int) int {
	data := d.File.Base
	for pos < d.End {
		switch data[pos] {
		case ' ', '\t', '\n', '\r', ',':
			pos++
		default:
			return pos
		}
	}
	return pos
}

func (d *FileArrayDriver) First(array *Array) Value {
	pos := d.skipSeparators(d.Start)
	if pos >= d.End {
		return nil
	}
	return d.parseAt(pos)
}

func (d *FileArrayDriver) parseAt(pos int) Value {
	v, n, err := d.Parse(d.File.Base[pos:d.End])
	if err != nil || n <= 0 {
		return nil
	}
	return &cursor{Value: v, pos: pos + n}
}

func (d *FileArrayDriver) Next(elem Value) Value {
	c, ok := elem.(*cursor)
	if !ok {
		return nil
	}
	pos := d.skipSeparators(c.pos)
	if pos >= d.End {
		return nil
	}
	return d.parseAt(pos)
}

func (d *FileArrayDriver) IsLast(elem Value) bool {
	c, ok := elem.(*cursor)
	if !ok {
		return true
	}
	return d.skipSeparators(c.pos) >= d.End
}

// BreakScan is a no-op: a scan holds no file reference of its own. The
// array's single reference, taken in NewFileArray, is dropped by Release.
func (d *FileArrayDriver) BreakScan(Value) {}

func (d *FileArrayDriver) Len() (int, bool) {
	return d.count, d.countOK
}

func (d *FileArrayDriver) ByIndex(array *Array, i int) (Value, bool) {
	// No random-access index is maintained; fall back to a linear scan.
	return nil, false
}

func (d *FileArrayDriver) ByKeyValue(array *Array, key string, value Value) (Value, bool) {
	return nil, false
}

// Release drops the driver's reference on the backing file. Nothing in
// this module calls it.
func (d *FileArrayDriver) Release() {
	d.File.Unref()
}
