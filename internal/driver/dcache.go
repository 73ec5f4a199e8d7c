package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"orbit/internal/session"
	"orbit/internal/source"
)

// Bump when ScanPayload changes shape.
const scanCacheSchema uint16 = 2

// DiskCache stores scan results on disk keyed by content digest.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// ScanPayload is what the scan phase needs to replay a file it has seen.
type ScanPayload struct {
	Schema   uint16
	// Targets is the sorted target set the scan ran with; warnings depend on it.
	Targets  []string
	Pragmas  []cachedPragma
	Warnings []string
}

type cachedPragma struct {
	Name   string
	Target string
	Args   []string
}

func (c cachedPragma) pragma() session.Pragma {
	return session.Pragma{Name: c.Name, Target: c.Target, Args: c.Args}
}

// OpenDiskCache opens the cache under the user cache directory
// ($XDG_CACHE_HOME or ~/.cache) in a subdirectory named app.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir, creating it when needed.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) Dir() string { return c.dir }

func (c *DiskCache) pathFor(key source.Digest) string {
	// "scan" subdirectory keeps cleanup easy.
	return filepath.Join(c.dir, "scan", key.String()+".mp")
}

// Put serializes payload and atomically replaces the entry for key.
func (c *DiskCache) Put(key source.Digest, payload *ScanPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// атомарная замена
	return os.Rename(tmp, p)
}

// Get decodes the entry for key into out. A missing entry is not an error.
func (c *DiskCache) Get(key source.Digest, out *ScanPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// DropAll removes every entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
