package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStoreGetHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, "equityscan")

	mock.ExpectGet("equityscan:price:TCS").SetVal(`{"ok":true}`)

	val, ok, err := store.Get(context.Background(), "price:TCS")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"ok":true}`, string(val))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreGetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, "equityscan")

	mock.ExpectGet("equityscan:price:TCS").RedisNil()

	_, ok, err := store.Get(context.Background(), "price:TCS")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreSetWithTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, "equityscan")

	mock.ExpectSet("equityscan:fundamentals:TCS", []byte(`{}`), time.Hour).SetVal("OK")

	err := store.Set(context.Background(), "fundamentals:TCS", []byte(`{}`), time.Hour)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStore(client, "")

	mock.ExpectDel("price:TCS").SetVal(1)

	require.NoError(t, store.Delete(context.Background(), "price:TCS"))
	require.NoError(t, mock.ExpectationsWereMet())
}
