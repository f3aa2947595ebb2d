package vectordb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
	"go.uber.org/zap"

	"github.com/bububa/waypoint/components/document"
)

// FieldChunkIndex is the metadata key holding the position of a chunk in its record
const FieldChunkIndex = "chunk"

var (
	ErrNoDocuments     = errors.New("no documents with content to index")
	ErrEmptyCollection = errors.New("collection is empty")
)

// Store keeps record chunks in a chromem collection. Embedding and similarity
// search are delegated to chromem.
type Store struct {
	db *chromem.DB
	Options
}

// New wraps an opened chromem database.
func New(db *chromem.DB, opts ...Option) *Store {
	ret := &Store{
		db: db,
		Options: Options{
			Collection:  DefaultCollection,
			TopK:        DefaultTopK,
			Concurrency: DefaultConcurrency,
		},
	}
	for _, opt := range opts {
		opt(&ret.Options)
	}
	if ret.Logger == nil {
		ret.Logger = zap.NewNop()
	}
	return ret
}

// Open opens the database persisted under path, creating it when missing.
// An empty path opens an in-memory database.
func Open(path string, compress bool, opts ...Option) (*Store, error) {
	if path == "" {
		return New(chromem.NewDB(), opts...), nil
	}
	db, err := chromem.NewPersistentDB(path, compress)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector db %s: %w", path, err)
	}
	return New(db, opts...), nil
}

func (s *Store) collection() (*chromem.Collection, error) {
	return s.db.GetOrCreateCollection(s.Collection, nil, s.EmbeddingFunc)
}

// Count returns the number of chunks in the collection.
func (s *Store) Count() (int, error) {
	col, err := s.collection()
	if err != nil {
		return 0, err
	}
	return col.Count(), nil
}

// Reset deletes the collection and everything in it.
func (s *Store) Reset() error {
	return s.db.DeleteCollection(s.Collection)
}

// Index embeds and stores the chunks of records. Records without chunks are
// stored whole when they carry text. Returns the number of stored chunks.
func (s *Store) Index(ctx context.Context, records []document.Record) (int, error) {
	docs := Documents(records)
	if len(docs) == 0 {
		return 0, ErrNoDocuments
	}
	col, err := s.collection()
	if err != nil {
		return 0, err
	}
	if err := col.AddDocuments(ctx, docs, max(s.Concurrency, 1)); err != nil {
		return 0, err
	}
	s.Logger.Info("indexed chunks",
		zap.String("collection", s.Collection),
		zap.Int("records", len(records)),
		zap.Int("chunks", len(docs)),
		zap.Int("total", col.Count()))
	return len(docs), nil
}

// Search returns the chunks most similar to query, best first. topK <= 0
// falls back to the configured TopK; it is capped by the collection size.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	col, err := s.collection()
	if err != nil {
		return nil, err
	}
	count := col.Count()
	if count == 0 {
		return nil, ErrEmptyCollection
	}
	if topK <= 0 {
		topK = s.TopK
	}
	results, err := col.Query(ctx, query, min(max(topK, 1), count), nil, nil)
	if err != nil {
		return nil, err
	}
	ret := make([]Result, 0, len(results))
	for _, res := range results {
		ret = append(ret, Result{
			ID:      res.ID,
			Content: res.Content,
			Meta:    res.Metadata,
			Score:   float64(res.Similarity),
		})
	}
	return ret, nil
}

// Documents converts records into chromem documents, one per non blank
// chunk. Ids are derived from url, position and content, so indexing the
// same records twice overwrites instead of duplicating.
func Documents(records []document.Record) []chromem.Document {
	var docs []chromem.Document
	for _, record := range records {
		parts := record.Chunks()
		if !record.HasChunks() {
			if txt := strings.TrimSpace(record.String(document.FieldText)); txt != "" {
				parts = []string{txt}
			}
		}
		for idx, part := range parts {
			if strings.TrimSpace(part) == "" {
				continue
			}
			meta := record.Meta()
			meta[FieldChunkIndex] = strconv.Itoa(idx)
			docs = append(docs, chromem.Document{
				ID:       ChunkID(record.URL(), idx, part),
				Metadata: meta,
				Content:  part,
			})
		}
	}
	return docs
}

// ChunkID returns a name based uuid of a chunk.
func ChunkID(link string, idx int, content string) string {
	name := fmt.Appendf(nil, "%s\n%d\n%s", link, idx, content)
	return uuid.NewSHA1(uuid.NameSpaceURL, name).String()
}
