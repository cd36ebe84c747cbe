package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aqua-bot/api/internal/aqua"
	"aqua-bot/api/internal/i18n"
	"aqua-bot/api/internal/inference"
)

func TestSensitivityClamp(t *testing.T) {
	s := NewSeedCount(&mockService{}, nil)
	assert.Equal(t, 7, s.Sensitivity())
	assert.Equal(t, 1, s.SetSensitivity(0))
	assert.Equal(t, 30, s.SetSensitivity(45))
	assert.Equal(t, 12, s.SetSensitivity(12))
}

func TestSeedCountRequiresImage(t *testing.T) {
	s := NewSeedCount(&mockService{}, nil)
	_, err := s.Count(context.Background(), i18n.English)
	assert.ErrorIs(t, err, ErrNoImage)
	assert.Equal(t, "Please upload an image first.", s.Snapshot().Error)
}

func TestSeedCountSendsFraction(t *testing.T) {
	svc := &mockService{}
	s := NewSeedCount(svc, nil)
	img := stagedImage(t)
	s.SelectImage(img)

	n := 42
	svc.On("SeedCount", mock.Anything, img.File, 0.07).Return(aqua.SeedCount{Count: &n}, nil).Once()

	got, err := s.Count(context.Background(), i18n.English)
	require.NoError(t, err)
	assert.Equal(t, 42, got)

	st := s.Snapshot()
	require.NotNil(t, st.Count)
	assert.Equal(t, 42, *st.Count)
	assert.Equal(t, 7, st.Threshold)
	svc.AssertExpectations(t)
}

func TestSeedCountMissingCountIsZero(t *testing.T) {
	svc := &mockService{}
	s := NewSeedCount(svc, nil)
	s.SelectImage(stagedImage(t))
	svc.On("SeedCount", mock.Anything, mock.Anything, mock.Anything).Return(aqua.SeedCount{}, nil).Once()

	got, err := s.Count(context.Background(), i18n.English)
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestSeedCountErrors(t *testing.T) {
	svc := &mockService{}
	s := NewSeedCount(svc, nil)
	s.SelectImage(stagedImage(t))

	svc.On("SeedCount", mock.Anything, mock.Anything, mock.Anything).
		Return(aqua.SeedCount{}, &inference.APIError{Status: 422, Detail: "Image too small"}).Once()
	_, err := s.Count(context.Background(), i18n.English)
	require.Error(t, err)
	assert.Equal(t, "Image too small", s.Snapshot().Error)

	svc.On("SeedCount", mock.Anything, mock.Anything, mock.Anything).
		Return(aqua.SeedCount{}, errors.New("timeout")).Once()
	_, err = s.Count(context.Background(), i18n.English)
	require.Error(t, err)
	assert.Equal(t, "Failed to count fish seeds", s.Snapshot().Error)
}
