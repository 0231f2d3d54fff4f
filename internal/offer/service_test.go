package offer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gilboash/printlink/internal/model"
	"github.com/gilboash/printlink/internal/store"
)

func TestSubmitAppendsOffer(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewService(st, zap.NewNop())

	id, err := svc.Submit(ctx, "req-1", "maker-1", 12.50, "can do by Friday")
	require.NoError(t, err)
	require.NotEmpty(t, id)

	snaps, err := st.Query(ctx, store.Query{Collection: CollectionFor("req-1")})
	require.NoError(t, err)
	require.Len(t, snaps, 1)

	offer, err := FromSnapshot(snaps[0])
	require.NoError(t, err)
	assert.Equal(t, "req-1", offer.RequestID)
	assert.Equal(t, "maker-1", offer.MakerID)
	assert.Equal(t, 12.50, offer.Price)
	assert.Equal(t, "can do by Friday", offer.Message)
	assert.False(t, offer.CreatedAt.IsZero())
}

func TestSubmitRequiresIdentity(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewService(st, zap.NewNop())

	_, err := svc.Submit(ctx, "req-1", "", 12.50, "")

	var aerr *model.AuthError
	assert.ErrorAs(t, err, &aerr)
}

func TestSubmitRejectsNonPositivePrice(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewService(st, zap.NewNop())

	for _, price := range []float64{0, -5} {
		_, err := svc.Submit(ctx, "req-1", "maker-1", price, "")

		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "price", verr.Field)
	}

	snaps, err := st.Query(ctx, store.Query{Collection: CollectionFor("req-1")})
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestRepeatOffersFromSameMakerAccumulate(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	svc := NewService(st, zap.NewNop())

	_, err := svc.Submit(ctx, "req-1", "maker-1", 10, "first")
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "req-1", "maker-1", 8, "lowered")
	require.NoError(t, err)

	snaps, err := st.Query(ctx, store.Query{Collection: CollectionFor("req-1")})
	require.NoError(t, err)
	assert.Len(t, snaps, 2, "offers are immutable, never replaced")
}
