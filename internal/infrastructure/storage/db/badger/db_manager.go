package dbbadger

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/dgraph-io/badger/v3/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"
)

// DbManager holds all the badgerhold stores in a single data structure.
type DbManager struct {
	OutputStore      *badgerhold.Store
	NegotiationStore *badgerhold.Store
}

// NewDbManager opens (or creates if not exists) the badger stores on disk.
// An empty base dir opens fully in-memory stores, useful for tests.
func NewDbManager(baseDbDir string, logger badger.Logger) (*DbManager, error) {
	var outputDir, negotiationDir string
	if len(baseDbDir) > 0 {
		outputDir = filepath.Join(baseDbDir, "outputs")
		negotiationDir = filepath.Join(baseDbDir, "negotiations")
	}

	outputDb, err := createDb(outputDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening outputs db: %w", err)
	}
	negotiationDb, err := createDb(negotiationDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening negotiations db: %w", err)
	}

	return &DbManager{
		OutputStore:      outputDb,
		NegotiationStore: negotiationDb,
	}, nil
}

// Close closes the underlying stores.
func (d *DbManager) Close() {
	d.OutputStore.Close()
	d.NegotiationStore.Close()
}

func createDb(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	if !isInMemory {
		ticker := time.NewTicker(30 * time.Minute)

		go func() {
			for {
				<-ticker.C
				if err := db.Badger().RunValueLogGC(0.5); err != nil &&
					err != badger.ErrNoRewrite {
					log.Error(err)
				}
			}
		}()
	}

	return db, nil
}
