package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/haulory/haulory/internal/crypt"
)

// KeyProvider supplies the symmetric key protecting every collection.
// Implemented by keystore.Manager.
type KeyProvider interface {
	Key() ([]byte, error)
}

// Env holds everything collections share: the data directory, the key
// provider, the gate registry and the logger.
type Env struct {
	dir   string
	keys  KeyProvider
	gates *GateRegistry
	log   *slog.Logger
	now   func() time.Time
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithClock overrides the wall clock, used for deterministic quarantine
// suffixes in tests.
func WithClock(now func() time.Time) EnvOption {
	return func(e *Env) { e.now = now }
}

// NewEnv creates the store environment rooted at dir.
//
// The directory is created if missing, and stale temporary files left by
// interrupted atomic writes are swept. This function is idempotent.
func NewEnv(dir string, keys KeyProvider, log *slog.Logger, opts ...EnvOption) (*Env, error) {
	if log == nil {
		log = slog.Default()
	}
	e := &Env{
		dir:   dir,
		keys:  keys,
		gates: NewGateRegistry(),
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	e.sweepTemp()
	return e, nil
}

// Dir returns the data directory.
func (e *Env) Dir() string {
	return e.dir
}

// sweepTemp removes temp files left behind by writes interrupted between
// temp-write and rename. The target files themselves are still the
// previous valid state, so the temps carry nothing worth keeping.
func (e *Env) sweepTemp() {
	matches, err := filepath.Glob(filepath.Join(e.dir, "*.tmp"))
	if err != nil {
		return
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			e.log.Warn("failed to sweep stale temp file", "path", m, "error", err)
			continue
		}
		e.log.Info("swept stale temp file", "path", m)
	}
}

// Collection is one named, encrypted record array on disk.
//
// All access goes through View or Update, which hold the collection's gate
// for the full operation. The on-disk file is the sole source of truth;
// nothing is cached between operations.
type Collection[T any] struct {
	env  *Env
	path string
	gate *sync.Mutex
}

// NewCollection binds a collection to <env dir>/<name>.
func NewCollection[T any](env *Env, name string) *Collection[T] {
	path := filepath.Join(env.dir, name)
	return &Collection[T]{
		env:  env,
		path: path,
		gate: env.gates.Gate(path),
	}
}

// Path returns the collection's file path.
func (c *Collection[T]) Path() string {
	return c.path
}

// View runs fn over the current records while holding the gate.
//
// fn must not retain the slice past the call; the next operation reloads
// from disk.
func (c *Collection[T]) View(ctx context.Context, fn func(records []T) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.gate.Lock()
	defer c.gate.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}
	return fn(records)
}

// Update runs a read-modify-write cycle while holding the gate.
//
// fn returns the updated records and whether anything changed; when
// changed is false the file is left untouched. The save persists the
// whole collection in one atomic replace.
func (c *Collection[T]) Update(ctx context.Context, fn func(records []T) (updated []T, changed bool, err error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.gate.Lock()
	defer c.gate.Unlock()

	records, err := c.load()
	if err != nil {
		return err
	}
	updated, changed, err := fn(records)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}
	return c.save(updated)
}

// load reads and decrypts the collection. Caller must hold the gate.
//
// A missing file is a normal first run and yields an empty collection. Any
// decode failure triggers recovery: first a restore from the atomic-write
// backup, then quarantine-and-empty. Only key unavailability propagates.
func (c *Collection[T]) load() ([]T, error) {
	key, err := c.env.keys.Key()
	if err != nil {
		return nil, NewKeyUnavailable(c.path, err)
	}

	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection: %w", err)
	}

	records, derr := decode[T](data, key)
	if derr == nil {
		return records, nil
	}
	c.env.log.Error("collection unreadable", "path", c.path, "error", derr)

	// Recovery step 1: the backup left by the last atomic replace may
	// still hold the previous valid state.
	if restored, ok := c.restoreFromBackup(key); ok {
		return restored, nil
	}

	// Recovery step 2: quarantine and start empty. The caller sees "no
	// data yet", not an error; the quarantined bytes stay on disk for
	// diagnosis.
	c.quarantine()
	return nil, nil
}

// decode splits IV‖ciphertext, decrypts, and unmarshals the record array.
// Field names are matched case-insensitively by encoding/json, which is
// what tolerates minor schema drift across app versions.
func decode[T any](data, key []byte) ([]T, error) {
	if len(data) <= crypt.IVSize {
		return nil, &StoreError{
			Code:    ErrCodeDecryptionFailure,
			Message: fmt.Sprintf("file is %d bytes, too short for IV and data", len(data)),
		}
	}
	plaintext, err := crypt.Decrypt(data[crypt.IVSize:], key, data[:crypt.IVSize])
	if err != nil {
		return nil, &StoreError{
			Code:    ErrCodeDecryptionFailure,
			Message: "wrong key or corrupt ciphertext",
			Err:     err,
		}
	}
	var records []T
	if err := json.Unmarshal(plaintext, &records); err != nil {
		return nil, &StoreError{
			Code:    ErrCodeSerializationFailure,
			Message: "decrypted payload is not a record array",
			Err:     err,
		}
	}
	return records, nil
}

// restoreFromBackup attempts to decode the .bak file and, on success,
// promotes it over the unreadable collection (after quarantining the bad
// bytes). Returns false when no usable backup exists.
func (c *Collection[T]) restoreFromBackup(key []byte) ([]T, bool) {
	bak := c.path + ".bak"
	data, err := os.ReadFile(bak)
	if err != nil {
		return nil, false
	}
	records, derr := decode[T](data, key)
	if derr != nil {
		return nil, false
	}

	c.quarantine()
	if err := writeFileSync(c.path, data); err != nil {
		c.env.log.Warn("failed to promote backup", "path", bak, "error", err)
	} else {
		c.env.log.Info("restored collection from backup", "path", c.path)
	}
	return records, true
}

// quarantine renames the unreadable file aside with a timestamped suffix,
// preserving it for diagnosis while the logical collection reads as empty.
func (c *Collection[T]) quarantine() {
	stamp := c.env.now().UTC().Format("20060102150405")
	dst := c.path + ".corrupt_" + stamp
	if err := os.Rename(c.path, dst); err != nil {
		c.env.log.Warn("failed to quarantine collection", "path", c.path, "error", err)
		return
	}
	c.env.log.Warn("quarantined unreadable collection", "path", c.path, "quarantine", dst)
}

// save serializes, encrypts and atomically replaces the collection file.
// Caller must hold the gate.
func (c *Collection[T]) save(records []T) error {
	key, err := c.env.keys.Key()
	if err != nil {
		return NewKeyUnavailable(c.path, err)
	}
	if records == nil {
		records = []T{}
	}

	plaintext, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &StoreError{
			Code:    ErrCodeSerializationFailure,
			Path:    c.path,
			Message: "marshal records",
			Err:     err,
		}
	}
	iv, ciphertext, err := crypt.Encrypt(plaintext, key)
	if err != nil {
		return fmt.Errorf("encrypt collection: %w", err)
	}

	combined := make([]byte, 0, len(iv)+len(ciphertext))
	combined = append(combined, iv...)
	combined = append(combined, ciphertext...)

	return c.writeAtomic(combined)
}

// writeAtomic writes data to a temp file, retains the previous file as
// .bak, and renames the temp into place. A crash at any point leaves the
// target either as the previous valid file or the complete new one, never
// truncated.
func (c *Collection[T]) writeAtomic(data []byte) error {
	tmp := c.path + ".tmp"
	if err := writeFileSync(tmp, data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if _, err := os.Stat(c.path); err == nil {
		// Backup failure is logged, not fatal: the replace below is still
		// atomic without it, only corrupt-file recovery loses depth.
		if err := copyFile(c.path, c.path+".bak"); err != nil {
			c.env.log.Warn("failed to write backup", "path", c.path, "error", err)
		}
	}

	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace collection: %w", err)
	}
	syncDir(filepath.Dir(c.path))
	return nil
}

// writeFileSync writes data and fsyncs before closing.
func writeFileSync(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// copyFile copies src to dst, replacing dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// syncDir fsyncs a directory so a completed rename survives power loss.
// Best effort: not all platforms support syncing directories.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	defer d.Close()
	_ = d.Sync()
}
