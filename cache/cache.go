// Package cache persists a decoded qvd.Result under a caller-chosen
// directory so that decoding the same large QVD file repeatedly — a dashboard
// re-reading its source extract, say — doesn't re-walk the binary payload
// every time.
//
// An entry is keyed by the source file's size, modification time, and an
// xxHash64 fingerprint of its first few header bytes, so a file rewritten
// in place (same path, different content) misses the cache instead of
// returning a stale result. Entries are gob-encoded and passed through a
// compress.Codec before being written to disk.
package cache

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/qvdfmt/qvd/compress"
	"github.com/qvdfmt/qvd/internal/hash"
)

// headerProbeSize is how many leading bytes of the source file are hashed
// into the cache key, in addition to file size and modification time.
const headerProbeSize = 4096

// Cache persists decoded results under a directory, compressed with a
// chosen codec.
type Cache struct {
	dir   string
	codec compress.Codec
}

// Open returns a Cache that stores entries under dir, compressed with
// codec. dir is created on first write if it doesn't already exist.
func Open(dir string, codec compress.Codec) *Cache {
	return &Cache{dir: dir, codec: codec}
}

// Load returns the cached decode of path if a fresh entry exists for it;
// otherwise it calls decode, writes the result to the cache for next
// time, and returns it.
//
// A cache read or write failure is never fatal: Load always falls back to
// decode() and returns its result, since a stale, corrupt, or unwritable
// cache directory must never stand between the caller and its data.
//
// Load is a free function rather than a method because Go methods cannot
// introduce their own type parameters; T is typically qvd.Result.
func Load[T any](c *Cache, path string, decode func() (T, error)) (T, error) {
	key, fpErr := fingerprint(path)
	if fpErr == nil {
		if v, ok := read[T](c, key); ok {
			return v, nil
		}
	}

	result, err := decode()
	if err != nil {
		var zero T
		return zero, err
	}

	if fpErr == nil {
		_ = write(c, key, result)
	}

	return result, nil
}

// fingerprint derives a cache key from path's size, modification time, and
// the xxHash64 of its first headerProbeSize bytes.
func fingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}

	probe := make([]byte, headerProbeSize)
	n, err := io.ReadFull(f, probe)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	var sizeBuf, mtimeBuf [8]byte
	binary.LittleEndian.PutUint64(sizeBuf[:], uint64(info.Size()))
	binary.LittleEndian.PutUint64(mtimeBuf[:], uint64(info.ModTime().UnixNano()))

	digest := hash.Digest(sizeBuf[:], mtimeBuf[:], probe[:n])

	return fmt.Sprintf("%016x", digest), nil
}

func entryPath(c *Cache, key string) string {
	return filepath.Join(c.dir, key+".qvdcache")
}

func read[T any](c *Cache, key string) (T, bool) {
	var zero T

	data, err := os.ReadFile(entryPath(c, key))
	if err != nil {
		return zero, false
	}

	raw, err := c.codec.Decompress(data)
	if err != nil {
		return zero, false
	}

	var v T
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&v); err != nil {
		return zero, false
	}

	return v, true
}

func write[T any](c *Cache, key string, v T) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return err
	}

	compressed, err := c.codec.Compress(buf.Bytes())
	if err != nil {
		return err
	}

	return os.WriteFile(entryPath(c, key), compressed, 0o644)
}
