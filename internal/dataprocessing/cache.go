package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"glcli/pkg/contracts/domain"
)

// HashTable computes the content hash identifying a raw table. Two uploads
// with identical header and cell content share a hash regardless of where
// they came from, so reprocessing the same batch skips normalization.
func HashTable(table *domain.RawTable) uint64 {
	h := xxhash.New()
	for _, cell := range table.Header {
		h.WriteString(cell)
		h.Write([]byte{0x1f})
	}
	h.Write([]byte{0x1e})
	for _, row := range table.Rows {
		for _, cell := range row {
			h.WriteString(cell)
			h.Write([]byte{0x1f})
		}
		h.Write([]byte{0x1e})
	}
	return h.Sum64()
}

// BatchCache memoizes normalized batches keyed by the content hash of their
// raw input. Only the Normalizer and derived-field stages are memoized;
// filtering and aggregation always re-run against the cached batch. Entries
// are immutable once stored, so reads need no copying, and a changed upload
// simply produces a new hash.
type BatchCache struct {
	mu     sync.RWMutex
	ledger map[uint64]*domain.LedgerBatch
	rolls  map[uint64]*domain.RollWeightBatch
	group  singleflight.Group
	logger *slog.Logger
}

// NewBatchCache creates an empty cache.
func NewBatchCache(logger *slog.Logger) *BatchCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchCache{
		ledger: make(map[uint64]*domain.LedgerBatch),
		rolls:  make(map[uint64]*domain.RollWeightBatch),
		logger: logger,
	}
}

// NormalizeLedger returns the memoized batch for the table's content,
// normalizing at most once per hash even under concurrent callers.
func (c *BatchCache) NormalizeLedger(ctx context.Context, table *domain.RawTable, normalizer *Normalizer) (*domain.LedgerBatch, error) {
	hash := HashTable(table)

	c.mu.RLock()
	cached, ok := c.ledger[hash]
	c.mu.RUnlock()
	if ok {
		c.logger.DebugContext(ctx, "ledger batch cache hit", slog.Uint64("content_hash", hash))
		return cached, nil
	}

	v, err, _ := c.group.Do("ledger:"+strconv.FormatUint(hash, 16), func() (interface{}, error) {
		batch, err := normalizer.Normalize(ctx, table)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.ledger[hash] = batch
		c.mu.Unlock()
		return batch, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.LedgerBatch), nil
}

// NormalizeRollWeight is the roll-weight counterpart of NormalizeLedger.
func (c *BatchCache) NormalizeRollWeight(ctx context.Context, table *domain.RawTable, normalizer *RollWeightNormalizer) (*domain.RollWeightBatch, error) {
	hash := HashTable(table)

	c.mu.RLock()
	cached, ok := c.rolls[hash]
	c.mu.RUnlock()
	if ok {
		c.logger.DebugContext(ctx, "roll-weight batch cache hit", slog.Uint64("content_hash", hash))
		return cached, nil
	}

	v, err, _ := c.group.Do("rolls:"+strconv.FormatUint(hash, 16), func() (interface{}, error) {
		batch, err := normalizer.Normalize(ctx, table)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.rolls[hash] = batch
		c.mu.Unlock()
		return batch, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.RollWeightBatch), nil
}

// Len returns the number of memoized ledger batches.
func (c *BatchCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ledger)
}
