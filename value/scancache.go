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
	"strconv"

	msgpack "gopkg.in/vmihailenco/msgpack.v2"
)

// scanEntry is one cached (end offset, element count) result for a
// previously-completed scan of a file-backed deferred array, keyed by
// the (file, start) pair the scan began at.
type scanEntry struct {
	Filename string
	Start    int
	ModTime  int64
	End      int
	Count    int
}

// ScanCache persists FileArrayDriver scan results (end offset, element
// count) across process runs so repeatedly scanning the same file
// doesn't always re-walk it to find where an array ends (§3.3, wired per
// SPEC_FULL.md's msgpack repurposing note).
type ScanCache struct {
	path    string
	entries map[string]scanEntry
}

// OpenScanCache loads a msgpack-encoded cache file, or starts an empty
// one if path doesn't exist yet.
func OpenScanCache(path string) (*ScanCache, error) {
	c := &ScanCache{path: path, entries: map[string]scanEntry{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	var list []scanEntry
	if err := msgpack.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	for _, e := range list {
		c.entries[cacheKey(e.Filename, e.Start)] = e
	}
	return c, nil
}

// Save writes the cache back to its file.
func (c *ScanCache) Save() error {
	list := make([]scanEntry, 0, len(c.entries))
	for _, e := range c.entries {
		list = append(list, e)
	}
	data, err := msgpack.Marshal(list)
	if err != nil {
		return err
	}
	return os.WriteFile(c.path, data, 0644)
}

// Lookup returns a previously-cached (end, count) for file starting the
// scan at start, valid only if file's mtime matches what was cached.
func (c *ScanCache) Lookup(file *FileRef, start int) (end, count int, ok bool) {
	info, err := os.Stat(file.Filename)
	if err != nil {
		return 0, 0, false
	}
	e, found := c.entries[cacheKey(file.Filename, start)]
	if !found || e.ModTime != info.ModTime().Unix() {
		return 0, 0, false
	}
	return e.End, e.Count, true
}

// Store records a completed scan's (end, count) result.
func (c *ScanCache) Store(file *FileRef, start, end, count int) {
	info, err := os.Stat(file.Filename)
	if err != nil {
		return
	}
	c.entries[cacheKey(file.Filename, start)] = scanEntry{
		Filename: file.Filename,
		Start:    start,
		ModTime:  info.ModTime().Unix(),
		End:      end,
		Count:    count,
	}
}

func cacheKey(filename string, start int) string {
	return filename + ":" + strconv.Itoa(start)
}
