package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalFS(t *testing.T) {
	tmp := t.TempDir()
	lfs := LocalFS{}

	dir := filepath.Join(tmp, "subdir")
	require.NoError(t, lfs.MkdirAll(dir, 0o755))

	fpath := filepath.Join(dir, "a.coo")
	f, err := lfs.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	require.NoError(t, err)
	assert.Equal(t, fpath, f.Name())
	_, err = f.Write([]byte("order: 0\n"))
	require.NoError(t, err)
	require.NoError(t, f.Sync())
	require.NoError(t, f.Close())

	// O_EXCL refuses an existing file.
	_, err = lfs.OpenFile(fpath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	assert.ErrorIs(t, err, iofs.ErrExist)

	moved := filepath.Join(dir, "b.coo")
	require.NoError(t, lfs.Rename(fpath, moved))

	r, err := lfs.Open(moved)
	require.NoError(t, err)
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, "order: 0\n", string(data))

	var seen []string
	require.NoError(t, lfs.WalkDir(tmp, func(p string, d iofs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			seen = append(seen, filepath.Base(p))
		}
		return err
	}))
	assert.Equal(t, []string{"b.coo"}, seen)

	require.NoError(t, lfs.Remove(moved))
	_, err = lfs.Open(moved)
	assert.True(t, errors.Is(err, iofs.ErrNotExist))
}

func TestFaultyFS_Write(t *testing.T) {
	tmp := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("torn", Fault{FailAfterBytes: 4})

	f, err := ffs.OpenFile(filepath.Join(tmp, "torn.coo"), os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)

	n, err := f.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = f.Write([]byte("defg"))
	assert.ErrorIs(t, err, ErrInjected)
	assert.Equal(t, 1, n)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(filepath.Join(tmp, "torn.coo"))
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(data))
	assert.Equal(t, 1, ffs.Opened())
}

func TestFaultyFS_SyncCloseRename(t *testing.T) {
	tmp := t.TempDir()
	custom := errors.New("disk on fire")

	ffs := NewFaultyFS(LocalFS{})
	ffs.AddRule("-sync.", Fault{FailAfterBytes: -1, FailOnSync: true, Err: custom})
	ffs.AddRule("-close.", Fault{FailAfterBytes: -1, FailOnClose: true})
	ffs.AddRule("-rename.", Fault{FailAfterBytes: -1, FailOnRename: true})

	f, err := ffs.OpenFile(filepath.Join(tmp, "x-sync.bin"), os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Sync(), custom)
	require.NoError(t, f.Close())

	f, err = ffs.OpenFile(filepath.Join(tmp, "x-close.bin"), os.O_CREATE|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	assert.ErrorIs(t, f.Close(), ErrInjected)

	src := filepath.Join(tmp, "x-rename.bin")
	require.NoError(t, os.WriteFile(src, nil, 0o644))
	assert.ErrorIs(t, ffs.Rename(src, filepath.Join(tmp, "other")), ErrInjected)

	// Unmatched files pass through.
	require.NoError(t, ffs.Rename(filepath.Join(tmp, "x-sync.bin"), filepath.Join(tmp, "fine")))
}
