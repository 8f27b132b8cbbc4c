package counter_test

import (
	"context"
	"errors"
	"testing"

	"go-schooldocs/internal/shared/counter"
	counterMock "go-schooldocs/internal/shared/counter/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestGenerator_Next_Format(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := counterMock.NewMockRepository(ctrl)
	gen := counter.NewGenerator(repo)

	repo.EXPECT().
		GetNextValue(gomock.Any(), counter.DocTypeAttestation, 2024).
		Return(int64(17), nil)

	ref, err := gen.Next(context.Background(), counter.DocTypeAttestation, 2024)

	assert.NoError(t, err)
	assert.Equal(t, "ATT-2024-00017", ref)
}

func TestGenerator_Next_PadsAndGrowsPastFiveDigits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := counterMock.NewMockRepository(ctrl)
	gen := counter.NewGenerator(repo)

	repo.EXPECT().
		GetNextValue(gomock.Any(), counter.DocTypeMission, 2026).
		Return(int64(3), nil)
	repo.EXPECT().
		GetNextValue(gomock.Any(), counter.DocTypeMission, 2026).
		Return(int64(123456), nil)

	ref, err := gen.Next(context.Background(), counter.DocTypeMission, 2026)
	assert.NoError(t, err)
	assert.Equal(t, "OM-2026-00003", ref)

	ref, err = gen.Next(context.Background(), counter.DocTypeMission, 2026)
	assert.NoError(t, err)
	assert.Equal(t, "OM-2026-123456", ref)
}

func TestGenerator_Next_SequencesIndependentPerTypeAndYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := counterMock.NewMockRepository(ctrl)
	gen := counter.NewGenerator(repo)

	repo.EXPECT().
		GetNextValue(gomock.Any(), counter.DocTypeAttestation, 2026).
		Return(int64(8), nil)
	repo.EXPECT().
		GetNextValue(gomock.Any(), counter.DocTypeMission, 2026).
		Return(int64(1), nil)
	repo.EXPECT().
		GetNextValue(gomock.Any(), counter.DocTypeAttestation, 2025).
		Return(int64(412), nil)

	refA, err := gen.Next(context.Background(), counter.DocTypeAttestation, 2026)
	assert.NoError(t, err)
	refB, err2 := gen.Next(context.Background(), counter.DocTypeMission, 2026)
	assert.NoError(t, err2)
	refC, err3 := gen.Next(context.Background(), counter.DocTypeAttestation, 2025)
	assert.NoError(t, err3)

	assert.Equal(t, "ATT-2026-00008", refA)
	assert.Equal(t, "OM-2026-00001", refB)
	assert.Equal(t, "ATT-2025-00412", refC)
}

func TestGenerator_Next_SurfacesSerializationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := counterMock.NewMockRepository(ctrl)
	gen := counter.NewGenerator(repo)

	repo.EXPECT().
		GetNextValue(gomock.Any(), counter.DocTypeAttestation, 2026).
		Return(int64(0), counter.ErrSerialization)

	_, err := gen.Next(context.Background(), counter.DocTypeAttestation, 2026)

	assert.True(t, errors.Is(err, counter.ErrSerialization))
}
