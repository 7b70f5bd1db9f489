package repository

import (
	"context"
	"encoding/json"

	"github.com/service-desk/helpdesk/internal/persistence"
	"github.com/service-desk/helpdesk/pkg/util"
)

// blobCodec serializes a whole collection to a single storage key. Every
// mutation is read-entire-collection, mutate, write-entire-collection; the
// owning repository serializes callers with its own mutex.
type blobCodec struct {
	store    persistence.BlobStore
	maxBytes int
}

func newBlobCodec(store persistence.BlobStore, maxBlobMB int) blobCodec {
	if maxBlobMB <= 0 {
		maxBlobMB = 4
	}
	return blobCodec{store: store, maxBytes: maxBlobMB * 1024 * 1024}
}

// load unmarshals the blob at key into out. A missing key leaves out at its
// zero value.
func (c blobCodec) load(ctx context.Context, key string, out any) error {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		return util.NewStorageError("read from storage failed", err)
	}
	if raw == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return util.NewStorageError("corrupt blob in storage", err)
	}
	return nil
}

func (c blobCodec) save(ctx context.Context, key string, in any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return util.NewStorageError("serialize collection failed", err)
	}
	if len(raw) > c.maxBytes {
		return util.NewStorageError("blob exceeds storage limit", nil)
	}
	if err := c.store.Set(ctx, key, raw); err != nil {
		return util.NewStorageError("write to storage failed", err)
	}
	return nil
}
