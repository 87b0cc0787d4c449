package storage_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/financeflow/internal/adapters/storage"
	"github.com/SscSPs/financeflow/internal/adapters/storage/file"
	"github.com/SscSPs/financeflow/internal/adapters/storage/memory"
	"github.com/SscSPs/financeflow/pkg/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := storage.Open(ctx, &config.Config{StoreDriver: config.StoreMemory}, discardLogger())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &memory.Store{}, store)

	store, closeFn, err = storage.Open(ctx, &config.Config{StoreDriver: config.StoreFile, StorePath: t.TempDir()}, discardLogger())
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &file.Store{}, store)

	_, closeFn, err = storage.Open(ctx, &config.Config{StoreDriver: "s3"}, discardLogger())
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}
