package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classforge/timetable-api/internal/dto"
	appErrors "github.com/classforge/timetable-api/pkg/errors"
)

func TestMemoryResultStoreRoundTrip(t *testing.T) {
	store := NewMemoryResultStore(time.Minute)

	saved := &dto.TimetableResponse{RunID: "run-1", InstitutionID: "inst-1"}
	require.NoError(t, store.Save(context.Background(), saved))

	got, err := store.Get(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.RunID)
}

func TestMemoryResultStoreReplacesPreviousResult(t *testing.T) {
	store := NewMemoryResultStore(time.Minute)

	require.NoError(t, store.Save(context.Background(), &dto.TimetableResponse{RunID: "run-1", InstitutionID: "inst-1"}))
	require.NoError(t, store.Save(context.Background(), &dto.TimetableResponse{RunID: "run-2", InstitutionID: "inst-1"}))

	got, err := store.Get(context.Background(), "inst-1")
	require.NoError(t, err)
	assert.Equal(t, "run-2", got.RunID)
}

func TestMemoryResultStoreExpiresEntries(t *testing.T) {
	store := NewMemoryResultStore(10 * time.Millisecond)

	require.NoError(t, store.Save(context.Background(), &dto.TimetableResponse{RunID: "run-1", InstitutionID: "inst-1"}))
	time.Sleep(25 * time.Millisecond)

	_, err := store.Get(context.Background(), "inst-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMemoryResultStoreMissIsNotFound(t *testing.T) {
	store := NewMemoryResultStore(time.Minute)

	_, err := store.Get(context.Background(), "unknown")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
