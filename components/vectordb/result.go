package vectordb

// Result represents a single chunk returned by a similarity search.
type Result struct {
	// ID is the identifier of the chunk
	ID string
	// Content is the chunk text
	Content string
	// Meta holds the metadata of the record the chunk came from
	Meta map[string]string
	// Score is the cosine similarity between query and chunk
	Score float64
}
