package store

import (
	"context"
	"testing"

	"github.com/jobsy/jobmail-analyzer/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testRecord(emailID string) *core.ApplicationRecord {
	return &core.ApplicationRecord{
		EmailID:     emailID,
		CompanyName: "Acme",
		Status:      "Başvuru Onayı",
		Category:    core.CategoryApplication,
	}
}

func TestMemoryStoreSaveAndGet(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	saved, err := s.Save(ctx, "user", testRecord("m1"))
	require.NoError(t, err)
	assert.True(t, saved)

	record, err := s.Get(ctx, "user", "m1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", record.CompanyName)
	assert.False(t, record.CreatedAt.IsZero())
}

func TestMemoryStoreDeduplicates(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	saved, err := s.Save(ctx, "user", testRecord("m1"))
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = s.Save(ctx, "user", testRecord("m1"))
	require.NoError(t, err)
	assert.False(t, saved)

	// Same email ID under a different user is a separate record
	saved, err = s.Save(ctx, "other", testRecord("m1"))
	require.NoError(t, err)
	assert.True(t, saved)
}

func TestMemoryStoreList(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	_, err := s.Save(ctx, "user", testRecord("m1"))
	require.NoError(t, err)
	_, err = s.Save(ctx, "user", testRecord("m2"))
	require.NoError(t, err)

	records, err := s.List(ctx, "user")
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = s.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMemoryStoreUpdateStatus(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	_, err := s.Save(ctx, "user", testRecord("m1"))
	require.NoError(t, err)

	require.NoError(t, s.UpdateStatus(ctx, "user", "m1", "Mülakat Daveti"))

	record, err := s.Get(ctx, "user", "m1")
	require.NoError(t, err)
	assert.Equal(t, "Mülakat Daveti", record.Status)

	assert.ErrorIs(t, s.UpdateStatus(ctx, "user", "missing", "x"), ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore(zap.NewNop())
	ctx := context.Background()

	_, err := s.Save(ctx, "user", testRecord("m1"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, "user", "m1"))

	_, err = s.Get(ctx, "user", "m1")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "user", "m1"), ErrNotFound)
}
