package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerd/recordcache/storage"
	"github.com/ledgerd/recordcache/utils/unittest"
)

func TestCheckFolderIsEmpty(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		content, err := storage.CheckFolder(dir)
		require.NoError(t, err)
		require.Equal(t, storage.FolderEmpty, content)

		content, err = storage.CheckFolder(filepath.Join(dir, "missing"))
		require.NoError(t, err)
		require.Equal(t, storage.FolderEmpty, content)
	})
}

func TestCheckFolderIsBadger(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		db := unittest.BadgerDB(t, dir)
		require.NoError(t, db.Close())

		content, err := storage.CheckFolder(dir)
		require.NoError(t, err)
		require.Equal(t, storage.FolderBadger, content)
	})
}

func TestCheckFolderIsPebble(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		db := unittest.PebbleDB(t, dir)
		require.NoError(t, db.Close())

		content, err := storage.CheckFolder(dir)
		require.NoError(t, err)
		require.Equal(t, storage.FolderPebble, content)
	})
}

func TestCheckFolderIsFile(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		path := filepath.Join(dir, "file")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

		_, err := storage.CheckFolder(path)
		require.Error(t, err)
	})
}
