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

// BlobDriver presents a raw byte slice as a deferred array of integer
// (0-255) elements, with O(1) by-index access.
type BlobDriver struct {
	Bytes []byte
}

// NewBlob builds a deferred array over the given bytes.
func NewBlob(b []byte) *Array {
	return NewDeferredArray(&BlobDriver{Bytes: b})
}

func (b *BlobDriver) First(array *Array) Value {
	if len(b.Bytes) == 0 {
		return nil
	}
	return &cursor{Value: NewInt(int64(b.Bytes[0])), pos: 0}
}

func (b *BlobDriver) Next(elem Value) Value {
	c, ok := elem.(*cursor)
	if !ok || c.pos+1 >= len(b.Bytes) {
		return nil
	}
	return &cursor{Value: NewInt(int64(b.Bytes[c.pos+1])), pos: c.pos + 1}
}

func (b *BlobDriver) IsLast(elem Value) bool {
	c, ok := elem.(*cursor)
	return ok && c.pos == len(b.Bytes)-1
}

func (b *BlobDriver) BreakScan(Value) {}

func (b *BlobDriver) Len() (int, bool) { return len(b.Bytes), true }

func (b *BlobDriver) ByIndex(array *Array, i int) (Value, bool) {
	if i < 0 || i >= len(b.Bytes) {
		return nil, true
	}
	return NewInt(int64(b.Bytes[i])), true
}

func (b *BlobDriver) ByKeyValue(array *Array, key string, value Value) (Value, bool) {
	return nil, false
}
