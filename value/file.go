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

import (
	"os"
	"sync"

	errors "gopkg.in/src-d/go-errors.v1"
	"golang.org/x/sys/unix"
)

// ErrFileLoad is returned when a source file can't be mapped into memory.
var ErrFileLoad = errors.NewKind("unable to load file %s: %s")

// FileRef is a file mapped into memory so its contents can be scanned
// like a giant string without copying. Its reference count tracks how
// many live deferred arrays (or loaded scripts) point into it; Unref
// unmaps the file only once the count reaches zero (§5 "Concurrency &
// resource model").
type FileRef struct {
	Filename string
	Base     []byte

	mu   sync.Mutex
	refs int
	f    *os.File
}

// LoadFile maps filename into memory read-only.
func LoadFile(filename string) (*FileRef, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, ErrFileLoad.New(filename, err.Error())
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ErrFileLoad.New(filename, err.Error())
	}
	if st.Size() == 0 {
		f.Close()
		return &FileRef{Filename: filename, Base: nil}, nil
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		f.Close()
		return nil, ErrFileLoad.New(filename, err.Error())
	}
	return &FileRef{Filename: filename, Base: data, f: f}, nil
}

// Ref increments the reference count, returning the receiver for chaining.
func (fr *FileRef) Ref() *FileRef {
	fr.mu.Lock()
	fr.refs++
	fr.mu.Unlock()
	return fr
}

// Unref decrements the reference count, unmapping and closing the file
// once it reaches zero.
func (fr *FileRef) Unref() {
	fr.mu.Lock()
	fr.refs--
	done := fr.refs <= 0
	fr.mu.Unlock()
	if done {
		fr.unload()
	}
}

func (fr *FileRef) unload() {
	if fr.Base != nil {
		_ = unix.Munmap(fr.Base)
		fr.Base = nil
	}
	if fr.f != nil {
		_ = fr.f.Close()
		fr.f = nil
	}
}
