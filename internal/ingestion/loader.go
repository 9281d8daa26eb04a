package ingestion

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/verifyap/threeway/internal/domain"
	"github.com/verifyap/threeway/internal/orders"
)

// RowStore is the stored feed the loader reads for the sqlite source.
type RowStore interface {
	ListRows(ctx context.Context) ([]domain.FeedRow, error)
}

// LoadRecorder records applied loads.
type LoadRecorder interface {
	Insert(ctx context.Context, l *domain.FeedLoad) error
}

// Source describes where the loader reads the feed.
type Source struct {
	Kind  domain.FeedSource
	Path  string
	Sheet string
}

// LoadResult is returned from a reload.
type LoadResult struct {
	Changed bool              `json:"changed"`
	Source  domain.FeedSource `json:"source"`
	Hash    string            `json:"hash"`
	Rows    int               `json:"rows"`
	Stats   orders.Statistics `json:"stats"`
}

// Loader (re)builds the order index from the configured feed source.
type Loader struct {
	src     Source
	index   *orders.Index
	store   RowStore
	history LoadRecorder
	logger  *slog.Logger

	mu       sync.Mutex
	lastHash string
}

// NewLoader creates a loader. store is required only for the sqlite source,
// history may be nil.
func NewLoader(src Source, index *orders.Index, store RowStore, history LoadRecorder, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		src:     src,
		index:   index,
		store:   store,
		history: history,
		logger:  logger,
	}
}

// Reload reads the feed and publishes a new index snapshot. Content identical
// to the last applied feed is a no-op. On any error the index keeps serving
// its current snapshot.
func (l *Loader) Reload(ctx context.Context) (*LoadResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, hash, err := l.read(ctx)
	if err != nil {
		l.logger.Error("[ingestion] feed read failed", "source", l.src.Kind, "path", l.src.Path, "error", err)
		return nil, err
	}

	if hash == l.lastHash {
		l.logger.Info("[ingestion] feed unchanged, keeping current index", "source", l.src.Kind, "hash", hash[:12])
		return &LoadResult{
			Changed: false,
			Source:  l.src.Kind,
			Hash:    hash,
			Rows:    len(rows),
			Stats:   l.index.Statistics(),
		}, nil
	}

	stats, err := l.index.Load(rows)
	if err != nil {
		l.logger.Error("[ingestion] feed rejected, keeping current index", "source", l.src.Kind, "path", l.src.Path, "error", err)
		return nil, fmt.Errorf("load index: %w", err)
	}
	l.lastHash = hash

	l.logger.Info("[ingestion] feed loaded",
		"source", l.src.Kind,
		"snapshot", stats.SnapshotID,
		"orders", stats.TotalOrders,
		"lines", stats.TotalLines,
		"vendors", stats.UniqueVendors)

	if l.history != nil {
		rec := &domain.FeedLoad{
			ID:         stats.SnapshotID,
			Source:     l.src.Kind,
			Location:   l.src.Path,
			Hash:       hash,
			RowCount:   len(rows),
			OrderCount: stats.TotalOrders,
			LoadedAt:   time.Now().UTC(),
		}
		// The snapshot is already live; a history failure must not undo it.
		if err := l.history.Insert(ctx, rec); err != nil {
			l.logger.Warn("[ingestion] could not record feed load", "error", err)
		}
	}

	return &LoadResult{
		Changed: true,
		Source:  l.src.Kind,
		Hash:    hash,
		Rows:    len(rows),
		Stats:   stats,
	}, nil
}

func (l *Loader) read(ctx context.Context) ([]domain.FeedRow, string, error) {
	switch l.src.Kind {
	case domain.SourceCSV, domain.SourceXLSX:
		data, err := os.ReadFile(l.src.Path)
		if err != nil {
			return nil, "", fmt.Errorf("read feed: %w", err)
		}
		rows, err := Parse(l.src.Kind, data, l.src.Sheet)
		if err != nil {
			return nil, "", fmt.Errorf("parse %s: %w", l.src.Kind, err)
		}
		return rows, contentHash(data), nil

	case domain.SourceSQLite:
		if l.store == nil {
			return nil, "", fmt.Errorf("sqlite source has no feed store")
		}
		rows, err := l.store.ListRows(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("list feed rows: %w", err)
		}
		encoded, err := json.Marshal(rows)
		if err != nil {
			return nil, "", fmt.Errorf("hash feed rows: %w", err)
		}
		return rows, contentHash(encoded), nil

	default:
		return nil, "", fmt.Errorf("unsupported feed source: %q", l.src.Kind)
	}
}

func contentHash(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
