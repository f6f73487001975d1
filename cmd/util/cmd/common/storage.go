package common

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/ledgerd/recordcache/model/ledger"
	"github.com/ledgerd/recordcache/module/clock"
	"github.com/ledgerd/recordcache/module/mempool/dedup"
	"github.com/ledgerd/recordcache/module/metrics"
	"github.com/ledgerd/recordcache/module/recordcache"
	"github.com/ledgerd/recordcache/module/updatable_configs"
	"github.com/ledgerd/recordcache/storage"
	"github.com/ledgerd/recordcache/storage/badger"
	"github.com/ledgerd/recordcache/storage/pebble"
)

const (
	BackendBadger = metrics.BackendBadger
	BackendPebble = metrics.BackendPebble
)

// Cache is a record cache rebuilt from a receipt log opened by the tool.
type Cache struct {
	*recordcache.RecordCache
	ReceiptLog storage.ReceiptLog

	closer func() error
	server *metrics.Server
}

// Close stops the metrics server, if any, and closes the receipt log.
func (c *Cache) Close() error {
	if c.server != nil {
		err := c.server.Shutdown()
		if err != nil {
			return fmt.Errorf("could not stop metrics server: %w", err)
		}
	}
	return c.closer()
}

// OpenReceiptLog opens the receipt log configured by the data-dir and backend settings.
func OpenReceiptLog(log zerolog.Logger, registerer prometheus.Registerer) (storage.ReceiptLog, func() error, error) {
	dir := viper.GetString("data-dir")
	if dir == "" {
		return nil, nil, fmt.Errorf("missing data directory, set --data-dir")
	}

	backend := viper.GetString("backend")
	content, err := storage.CheckFolder(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("could not inspect data directory: %w", err)
	}
	if content != storage.FolderEmpty && content.String() != backend {
		return nil, nil, fmt.Errorf("data directory %s holds %s data, not %s", dir, content, backend)
	}

	collector := metrics.NewReceiptLogCollector(registerer, backend)
	switch backend {
	case BackendBadger:
		return badger.Open(log, collector, dir)
	case BackendPebble:
		return pebble.Open(log, collector, dir)
	default:
		return nil, nil, fmt.Errorf("unknown receipt log backend %q", backend)
	}
}

// InitCache opens the receipt log and rebuilds a record cache from it.
func InitCache(log zerolog.Logger) (*Cache, error) {
	registry := prometheus.NewRegistry()

	receiptLog, closer, err := OpenReceiptLog(log, registry)
	if err != nil {
		return nil, fmt.Errorf("could not open receipt log: %w", err)
	}

	configs, err := updatable_configs.NewCacheConfigs(
		viper.GetInt64("max-transaction-valid-duration"),
		viper.GetInt("records-max-queryable-by-account"),
	)
	if err != nil {
		_ = closer()
		return nil, fmt.Errorf("invalid cache configuration: %w", err)
	}

	book, err := AddressBook()
	if err != nil {
		_ = closer()
		return nil, err
	}

	now := time.Now()
	if seconds := viper.GetInt64("consensus-time"); seconds > 0 {
		now = time.Unix(seconds, 0)
	}

	collector := metrics.NewRecordCacheCollector(registry)
	dedupCache := dedup.NewCache(clock.NewConsensus(now), configs, collector)

	cache, err := recordcache.New(log, collector, dedupCache, configs, book, receiptLog)
	if err != nil {
		_ = closer()
		return nil, fmt.Errorf("could not rebuild record cache: %w", err)
	}

	c := &Cache{
		RecordCache: cache,
		ReceiptLog:  receiptLog,
		closer:      closer,
	}
	if port := viper.GetUint("metrics-port"); port > 0 {
		c.server = metrics.NewServer(log, port, registry)
		c.server.Start()
	}
	return c, nil
}

// AddressBook loads the "nodes" table of the config file, mapping node ids to accounts.
func AddressBook() (*ledger.AddressBook, error) {
	entries := make(map[uint64]string)
	err := viper.UnmarshalKey("nodes", &entries)
	if err != nil {
		return nil, fmt.Errorf("could not read address book: %w", err)
	}
	book, err := ledger.ParseAddressBook(entries)
	if err != nil {
		return nil, fmt.Errorf("invalid address book: %w", err)
	}
	return book, nil
}
