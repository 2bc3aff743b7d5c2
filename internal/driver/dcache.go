package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"asynclint/internal/diag"
	"asynclint/internal/rules"
	"asynclint/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// Digest identifies one (file content, options) pair.
type Digest [32]byte

// DiskCache хранит готовые диагностики файла на диске, чтобы не парсить
// неизменённые файлы заново. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload stores the cached diagnostics of one file. Spans are stored
// as bare byte offsets and re-bound to the current run's FileID on load.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Diags []CachedDiagnostic
}

type CachedDiagnostic struct {
	Severity uint8
	Code     uint16
	Message  string
	Start    uint32
	End      uint32
	Notes    []CachedNote
	Data     map[string]string
}

type CachedNote struct {
	Start uint32
	End   uint32
	Msg   string
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt is the test hook: same cache rooted at an explicit dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Для удобства читаемости/очистки — подкаталог "files".
	return filepath.Join(c.dir, "files", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
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
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// тривиально: переименуем каталог и удалим в фоне
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

// CacheKey derives the lookup digest from file content and the effective
// options. Any option that changes what gets reported participates.
func CacheKey(contentHash [32]byte, opts rules.Options) Digest {
	h := sha256.New()

	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], diskCacheSchemaVersion)
	h.Write(schema[:])
	h.Write(contentHash[:])

	writeList := func(values []string) {
		var n [4]byte
		binary.LittleEndian.PutUint32(n[:], uint32(len(values)))
		h.Write(n[:])
		for _, v := range values {
			h.Write([]byte(v))
			h.Write([]byte{0})
		}
	}
	writeList(opts.Patterns)
	writeList(opts.ContinuationMethods)
	writeList(opts.Properties)
	writeList(opts.Methods)
	if opts.Reference {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	h.Write([]byte{byte(opts.Severity)})

	var key Digest
	h.Sum(key[:0])
	return key
}

// diagnosticsToPayload converts a bag's diagnostics into the cache format.
func diagnosticsToPayload(items []diag.Diagnostic) *DiskPayload {
	payload := &DiskPayload{Schema: diskCacheSchemaVersion}
	payload.Diags = make([]CachedDiagnostic, len(items))
	for i, d := range items {
		cached := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Message:  d.Message,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Data:     d.Data,
		}
		cached.Notes = make([]CachedNote, len(d.Notes))
		for j, n := range d.Notes {
			cached.Notes[j] = CachedNote{Start: n.Span.Start, End: n.Span.End, Msg: n.Msg}
		}
		payload.Diags[i] = cached
	}
	return payload
}

// payloadToDiagnostics re-binds cached diagnostics to the file of the
// current run.
func payloadToDiagnostics(payload *DiskPayload, file source.FileID) []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(payload.Diags))
	for i, cached := range payload.Diags {
		d := diag.Diagnostic{
			Severity: diag.Severity(cached.Severity),
			Code:     diag.Code(cached.Code),
			Message:  cached.Message,
			Primary:  source.Span{File: file, Start: cached.Start, End: cached.End},
			Data:     cached.Data,
		}
		if len(cached.Notes) > 0 {
			d.Notes = make([]diag.Note, len(cached.Notes))
			for j, n := range cached.Notes {
				d.Notes[j] = diag.Note{
					Span: source.Span{File: file, Start: n.Start, End: n.End},
					Msg:  n.Msg,
				}
			}
		}
		out[i] = d
	}
	return out
}
