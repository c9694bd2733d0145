package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"modeleval-api/internal/model"
)

func TestWebhookEventRecordToleratesReplay(t *testing.T) {
	db := newTestDB(t)
	repo := NewWebhookEventRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, "evt_1", "checkout.session.completed"))
	require.NoError(t, repo.Record(ctx, "evt_1", "checkout.session.completed"))

	assert.Equal(t, int64(1), countRows(t, db, &model.WebhookEvent{}))
}
