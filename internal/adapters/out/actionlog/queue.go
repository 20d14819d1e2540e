// Package actionlog persists the offline action queue in an embedded
// BadgerDB so buffered mutations survive process restarts.
package actionlog

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"os"

	badger "github.com/dgraph-io/badger/v4"

	"orderdesk/internal/core/domain/model/offline"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// Config holds the settings of the queue database.
type Config struct {
	// Path is the directory for the BadgerDB files.
	// Ignored when InMemory is true.
	Path string

	// InMemory keeps the queue in memory only. Useful for tests.
	InMemory bool
}

const sequenceBandwidth = 64

var actionKeyPrefix = []byte("action/")

var _ ports.ActionQueue = (*BadgerActionQueue)(nil)

// BadgerActionQueue stores pending actions under big-endian uint64 keys so
// a forward key iteration yields them in enqueue order. Entries are deleted
// once synced; the sequence never reuses an id.
type BadgerActionQueue struct {
	db  *badger.DB
	seq *badger.Sequence
}

// NewBadgerActionQueue opens (or creates) the queue database. The caller
// owns the returned queue and must Close it.
func NewBadgerActionQueue(cfg Config) (*BadgerActionQueue, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, errs.NewValueIsRequiredError("path")
		}
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, errs.NewStorageError("action queue", err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	// Sync writes so an enqueued action survives a crash right after the
	// connectivity failure it was buffered for.
	opts = opts.WithSyncWrites(!cfg.InMemory).WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errs.NewStorageError("action queue", err)
	}

	seq, err := db.GetSequence([]byte("seq/action"), sequenceBandwidth)
	if err != nil {
		_ = db.Close()
		return nil, errs.NewStorageError("action queue", err)
	}

	return &BadgerActionQueue{db: db, seq: seq}, nil
}

// Close releases the sequence lease and closes the database.
func (q *BadgerActionQueue) Close() error {
	if err := q.seq.Release(); err != nil {
		_ = q.db.Close()
		return errs.NewStorageError("action queue", err)
	}
	if err := q.db.Close(); err != nil {
		return errs.NewStorageError("action queue", err)
	}
	return nil
}

func (q *BadgerActionQueue) Enqueue(ctx context.Context, action offline.PendingAction) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	next, err := q.seq.Next()
	if err != nil {
		return 0, errs.NewStorageError("action queue", err)
	}
	// Sequences start at zero, ids at one.
	id := next + 1

	action.ID = id
	data, err := json.Marshal(action)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("pending action", err)
	}

	err = q.db.Update(func(txn *badger.Txn) error {
		return txn.Set(actionKey(id), data)
	})
	if err != nil {
		return 0, errs.NewStorageError("action queue", err)
	}
	return id, nil
}

func (q *BadgerActionQueue) ListPending(ctx context.Context) ([]offline.PendingAction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var actions []offline.PendingAction
	err := q.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(actionKeyPrefix); it.ValidForPrefix(actionKeyPrefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				var action offline.PendingAction
				if err := json.Unmarshal(val, &action); err != nil {
					return errs.NewValueIsInvalidErrorWithCause("pending action", err)
				}
				actions = append(actions, action)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return actions, nil
}

func (q *BadgerActionQueue) MarkSynced(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := q.db.Update(func(txn *badger.Txn) error {
		key := actionKey(id)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errs.NewObjectNotFoundError("pending action", id)
			}
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return err
		}
		return errs.NewStorageError("action queue", err)
	}
	return nil
}

func actionKey(id uint64) []byte {
	key := make([]byte, len(actionKeyPrefix)+8)
	copy(key, actionKeyPrefix)
	binary.BigEndian.PutUint64(key[len(actionKeyPrefix):], id)
	return key
}
