package similarity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/jobsy/jobmail-analyzer/internal/core"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIIndex is an implementation of the SimilarityIndex interface
// using OpenAI embeddings with in-memory cosine similarity search.
type OpenAIIndex struct {
	client         *openai.Client
	embeddingModel string
	entries        map[string][]indexEntry
	mu             sync.RWMutex
	logger         *zap.Logger
}

type indexEntry struct {
	record *core.ApplicationRecord
	vector []float32
}

// NewOpenAIIndex creates a new similarity index backed by OpenAI embeddings
func NewOpenAIIndex(apiKey, embeddingModel string, logger *zap.Logger) *OpenAIIndex {
	return &OpenAIIndex{
		client:         openai.NewClient(apiKey),
		embeddingModel: embeddingModel,
		entries:        make(map[string][]indexEntry),
		logger:         logger,
	}
}

// Index adds a record to the index
func (i *OpenAIIndex) Index(ctx context.Context, userID string, record *core.ApplicationRecord) error {
	vector, err := i.embed(ctx, recordText(record))
	if err != nil {
		return err
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.entries[userID] = append(i.entries[userID], indexEntry{record: record, vector: vector})
	return nil
}

// Search returns the records most similar to the query text,
// best match first
func (i *OpenAIIndex) Search(ctx context.Context, userID string, query string, limit int) ([]core.SimilarMatch, error) {
	vector, err := i.embed(ctx, query)
	if err != nil {
		return nil, err
	}

	i.mu.RLock()
	defer i.mu.RUnlock()

	entries := i.entries[userID]
	matches := make([]core.SimilarMatch, 0, len(entries))
	for _, entry := range entries {
		matches = append(matches, core.SimilarMatch{
			Record: entry.record,
			Score:  cosineSimilarity(vector, entry.vector),
		})
	}

	sort.Slice(matches, func(a, b int) bool {
		return matches[a].Score > matches[b].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (i *OpenAIIndex) embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := i.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(i.embeddingModel),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}
	return resp.Data[0].Embedding, nil
}

// recordText builds the text that represents a record in the index
func recordText(record *core.ApplicationRecord) string {
	parts := []string{record.CompanyName, record.Position, record.Status, record.EmailSubject}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for idx := range a {
		dot += float64(a[idx]) * float64(b[idx])
		normA += float64(a[idx]) * float64(a[idx])
		normB += float64(b[idx]) * float64(b[idx])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
