// Copyright 2026 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package artifact

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ianlewis/go-dictzip"

	"github.com/ianlewis/go-thaidict/errcode"
)

// DefaultPerm is the default permission of written artifacts.
const DefaultPerm os.FileMode = 0o644

// WriterOptions configures a Writer.
type WriterOptions struct {
	// Perm is the permission of the written file. Defaults to DefaultPerm.
	Perm os.FileMode

	// Logger receives write events. Defaults to a logger that discards
	// output.
	Logger *slog.Logger
}

// Writer persists artifacts atomically. The destination is replaced only
// after the full artifact has been written and flushed to disk.
type Writer struct {
	perm os.FileMode
	log  *slog.Logger

	// wrap, if set, wraps the stream the artifact is encoded to.
	wrap func(io.Writer) io.Writer

	syncDir func(dir string) error
}

// NewWriter returns a new Writer.
func NewWriter(opts WriterOptions) *Writer {
	w := &Writer{
		perm:    opts.Perm,
		log:     opts.Logger,
		syncDir: syncDir,
	}
	if w.perm == 0 {
		w.perm = DefaultPerm
	}
	if w.log == nil {
		w.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w
}

// Write writes a to dest. A destination ending in ".dz" is written
// dictzip compressed.
//
// The artifact is written to a temporary file in the directory of dest
// which is then renamed onto dest. On failure the temporary file is
// removed and dest is left untouched. Once the rename succeeds the write is
// reported as successful even if flushing the directory fails. I/O failures
// before that are
// Dictionary.WriteFailed. Cancellation of ctx before the rename is
// System.TimeLimit.
func (w *Writer) Write(ctx context.Context, a *Artifact, dest string) error {
	if dest == "" {
		return errcode.New(errcode.ConfigInvalid, "destination path is empty")
	}
	if a == nil || len(a.entries) == 0 {
		return errcode.EmptyDictionary("artifact")
	}
	if err := errcode.FromContext(ctx, "writing "+dest); err != nil {
		return err
	}

	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".tmp.*")
	if err != nil {
		return errcode.WriteFailed(dest, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if err := w.encode(tmp, a, isCompressed(dest)); err != nil {
		return errcode.WriteFailed(dest, err)
	}
	if err := tmp.Chmod(w.perm); err != nil {
		return errcode.WriteFailed(dest, err)
	}
	if err := tmp.Sync(); err != nil {
		return errcode.WriteFailed(dest, err)
	}
	if err := tmp.Close(); err != nil {
		return errcode.WriteFailed(dest, err)
	}

	// Last chance to abandon the write.
	if err := errcode.FromContext(ctx, "writing "+dest); err != nil {
		return err
	}

	if err := os.Rename(tmpName, dest); err != nil {
		return errcode.WriteFailed(dest, err)
	}
	committed = true

	if err := w.syncDir(dir); err != nil {
		w.log.WarnContext(ctx, "syncing directory failed",
			slog.String("destination", dest),
			slog.String("error", err.Error()),
		)
	}

	w.log.DebugContext(ctx, "artifact written",
		slog.String("destination", dest),
		slog.Int("entries", len(a.entries)),
	)
	return nil
}

func (w *Writer) encode(f *os.File, a *Artifact, compress bool) error {
	if !compress {
		return Encode(w.wrapped(f), a)
	}

	z, err := dictzip.NewWriter(f)
	if err != nil {
		return fmt.Errorf("creating dictzip writer: %w", err)
	}
	if err := Encode(w.wrapped(z), a); err != nil {
		_ = z.Close()
		return err
	}
	if err := z.Close(); err != nil {
		return fmt.Errorf("closing dictzip writer: %w", err)
	}
	return nil
}

func (w *Writer) wrapped(out io.Writer) io.Writer {
	if w.wrap == nil {
		return out
	}
	return w.wrap(out)
}

// syncDir flushes the rename of a file in dir to disk. Directories cannot be
// synced on Windows.
func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return fmt.Errorf("opening directory: %w", err)
	}
	defer f.Close()
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing directory: %w", err)
	}
	return nil
}

func isCompressed(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".dz")
}
