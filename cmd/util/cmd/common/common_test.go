package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/utils/unittest"
)

func TestBackendFlag(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	var backend BackendFlag
	InitBackendFlag(flags, &backend)
	assert.Equal(t, BackendBadger, backend.String())

	require.NoError(t, flags.Parse([]string{"--backend", BackendPebble}))
	assert.Equal(t, BackendPebble, backend.String())

	require.Error(t, flags.Parse([]string{"--backend", "leveldb"}))
}

func TestAddressBook(t *testing.T) {
	unittest.RunWithTempDir(t, func(dir string) {
		path := filepath.Join(dir, "config.yaml")
		err := os.WriteFile(path, []byte("nodes:\n  3: 0.0.3\n  4: 0.0.40\n"), 0o600)
		require.NoError(t, err)

		viper.Reset()
		t.Cleanup(viper.Reset)
		viper.SetConfigFile(path)
		require.NoError(t, viper.ReadInConfig())

		book, err := AddressBook()
		require.NoError(t, err)
		assert.Equal(t, []uint64{3, 4}, book.NodeIDs())

		account, ok := book.AccountIDOfNode(4)
		require.True(t, ok)
		assert.Equal(t, ledger.NewAccountID(40), account)
	})
}
