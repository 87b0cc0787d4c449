package redis_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/financeflow/internal/adapters/storage/redis"
	"github.com/SscSPs/financeflow/internal/apperrors"
)

func TestStore_Load(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := redis.NewStore(client, redis.WithKeyPrefix("ff:"))

	mock.ExpectGet("ff:journal").SetVal(`[]`)
	data, err := store.Load(ctx, "journal")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	mock.ExpectGet("ff:journal").RedisNil()
	_, err = store.Load(ctx, "journal")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	mock.ExpectGet("ff:journal").SetErr(errors.New("connection refused"))
	_, err = store.Load(ctx, "journal")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveAndDelete(t *testing.T) {
	ctx := context.Background()
	client, mock := redismock.NewClientMock()
	store := redis.NewStore(client)

	mock.ExpectSet("journal", `[{"id":"e1"}]`, 0).SetVal("OK")
	require.NoError(t, store.Save(ctx, "journal", []byte(`[{"id":"e1"}]`)))

	mock.ExpectSet("journal", `[]`, 0).SetErr(errors.New("READONLY"))
	assert.Error(t, store.Save(ctx, "journal", []byte(`[]`)))

	mock.ExpectDel("journal").SetVal(1)
	require.NoError(t, store.Delete(ctx, "journal"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
