package similarity

import (
	"testing"

	"github.com/jobsy/jobmail-analyzer/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)

	// Mismatched or empty vectors score zero
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1}, []float32{1, 2}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 1}))
}

func TestRecordText(t *testing.T) {
	record := &core.ApplicationRecord{
		CompanyName:  "Acme",
		Position:     "Backend Developer",
		Status:       "Mülakat Daveti",
		EmailSubject: "Görüşme",
	}
	assert.Equal(t, "Acme Backend Developer Mülakat Daveti Görüşme", recordText(record))
}
