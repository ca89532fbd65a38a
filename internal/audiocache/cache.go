// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

// Package audiocache memoizes synthesized audio files, keyed by the
// full synthesis request. The cache is LRU-bounded; evicted entries
// have their audio files removed from disk.
package audiocache

import (
	"context"
	"encoding/binary"
	"os"
	"strconv"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"github.com/mideind/Icespeak/pkg/commons"
	"github.com/mideind/Icespeak/voices"
)

// RequestKey derives the cache key for a synthesis request. The raw,
// pre-normalization text goes into the key, so textually identical
// requests hit the same entry regardless of normalizer changes between
// them. Fields are length-prefixed so no two field sequences collide.
func RequestKey(text string, opts voices.TTSOptions) string {
	h := xxhash.New()
	field := func(s string) {
		var n [8]byte
		binary.BigEndian.PutUint64(n[:], uint64(len(s)))
		_, _ = h.Write(n[:])
		_, _ = h.WriteString(s)
	}
	field(text)
	field(opts.Voice)
	field(strconv.FormatFloat(opts.Speed, 'g', -1, 64))
	field(opts.TextFormat)
	field(opts.AudioFormat)
	field(strconv.FormatBool(opts.Transcribe))
	return strconv.FormatUint(h.Sum64(), 16)
}

// Cache maps request keys to audio file paths. Files belong to the
// cache: they are deleted when their entry is evicted and, if cleanup
// is enabled, when the cache is closed.
type Cache struct {
	log     commons.Logger
	clean   bool
	entries *lru.Cache[string, string]
	group   singleflight.Group
}

// New returns a cache holding at most size entries. When clean is set,
// evicted and purged audio files are removed from disk.
func New(size int, clean bool, log commons.Logger) (*Cache, error) {
	c := &Cache{log: log, clean: clean}
	entries, err := lru.NewWithEvict[string, string](size, c.onEvict)
	if err != nil {
		return nil, err
	}
	c.entries = entries
	return c, nil
}

func (c *Cache) onEvict(key, path string) {
	if !c.clean {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		c.log.Warnf("could not remove evicted audio file %s: %v", path, err)
	}
}

// Get returns the cached audio file for a key, marking it recently
// used. An entry whose file has vanished or is empty counts as a miss
// and is dropped.
func (c *Cache) Get(key string) (string, bool) {
	return c.lookup(key)
}

func (c *Cache) lookup(key string) (string, bool) {
	path, ok := c.entries.Get(key)
	if !ok {
		return "", false
	}
	if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
		c.log.Warnf("cached audio file %s is missing or empty, dropping entry", path)
		c.entries.Remove(key)
		return "", false
	}
	return path, true
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// GetOrCreate returns the audio file for a key, invoking create at
// most once per key across concurrent callers. The hit result reports
// whether an existing entry was used. A canceled context abandons the
// wait, but an in-flight create still finishes and populates the cache
// for the other callers.
func (c *Cache) GetOrCreate(ctx context.Context, key string, create func() (string, error)) (path string, hit bool, err error) {
	if path, ok := c.lookup(key); ok {
		return path, true, nil
	}

	created := false
	ch := c.group.DoChan(key, func() (interface{}, error) {
		// Another flight may have populated the entry while this
		// caller was queueing up
		if path, ok := c.lookup(key); ok {
			return path, nil
		}
		path, err := create()
		if err != nil {
			return "", err
		}
		created = true
		c.entries.Add(key, path)
		return path, nil
	})

	select {
	case <-ctx.Done():
		return "", false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", false, res.Err
		}
		return res.Val.(string), !created, nil
	}
}

// Close purges the cache, removing all audio files from disk when
// cleanup is enabled.
func (c *Cache) Close() {
	c.entries.Purge()
}
