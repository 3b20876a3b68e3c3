package core

import (
	"context"
)

// LLMClient defines the interface for the free-form LLM judgment path
type LLMClient interface {
	// JudgeEmail asks the LLM whether the email belongs to an existing
	// job/internship application and what its status is
	JudgeEmail(ctx context.Context, email *RawEmail) (*LLMJudgment, error)
}

// TextClassifier defines the interface for a text-classification backend
type TextClassifier interface {
	// ClassifyText returns the top label and its score for the text
	ClassifyText(ctx context.Context, text string) (*ModelPrediction, error)

	// ModelName identifies the underlying model
	ModelName() string
}

// ApplicationStore defines the interface for persisting application records
type ApplicationStore interface {
	// Save persists a record for a user. Returns false when a record
	// with the same email ID already exists for that user.
	Save(ctx context.Context, userID string, record *ApplicationRecord) (bool, error)

	// List returns every record stored for a user
	List(ctx context.Context, userID string) ([]*ApplicationRecord, error)

	// Get returns the record with the given email ID
	Get(ctx context.Context, userID string, emailID string) (*ApplicationRecord, error)

	// UpdateStatus changes the status of a stored record
	UpdateStatus(ctx context.Context, userID string, emailID string, status string) error

	// Delete removes a stored record
	Delete(ctx context.Context, userID string, emailID string) error
}

// SimilarityIndex defines the interface for similarity search over
// stored application records
type SimilarityIndex interface {
	// Index adds a record to the index
	Index(ctx context.Context, userID string, record *ApplicationRecord) error

	// Search returns the records most similar to the query text
	Search(ctx context.Context, userID string, query string, limit int) ([]SimilarMatch, error)
}
