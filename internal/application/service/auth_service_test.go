package service_test

import (
	"context"
	"testing"

	"github.com/hkpos/hkpos-api/internal/application/service"
	infraRepo "github.com/hkpos/hkpos-api/internal/infrastructure/repository"
	"github.com/hkpos/hkpos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPIN(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewAuthService(infraRepo.NewPINRepository(db))
	ctx := context.Background()

	t.Run("seeded default PIN verifies", func(t *testing.T) {
		assert.NoError(t, svc.CheckPIN(ctx, "refund", "1234"))
		assert.NoError(t, svc.CheckPIN(ctx, "discount", "1234"))
	})

	t.Run("wrong PIN is rejected", func(t *testing.T) {
		err := svc.CheckPIN(ctx, "refund", "0000")
		assert.ErrorIs(t, err, apperror.ErrInvalidPIN)
	})

	t.Run("ungated action always passes", func(t *testing.T) {
		assert.NoError(t, svc.CheckPIN(ctx, "void", "anything"))
	})
}

func TestSetPIN(t *testing.T) {
	db := newTestDB(t)
	svc := service.NewAuthService(infraRepo.NewPINRepository(db))
	ctx := context.Background()

	t.Run("requires the current PIN", func(t *testing.T) {
		err := svc.SetPIN(ctx, "refund", "9999", "5678")
		assert.ErrorIs(t, err, apperror.ErrInvalidPIN)
	})

	t.Run("rotates the PIN", func(t *testing.T) {
		require.NoError(t, svc.SetPIN(ctx, "refund", "1234", "5678"))
		assert.NoError(t, svc.CheckPIN(ctx, "refund", "5678"))
		assert.Error(t, svc.CheckPIN(ctx, "refund", "1234"))
	})

	t.Run("rejects short PINs", func(t *testing.T) {
		assert.Error(t, svc.SetPIN(ctx, "refund", "5678", "12"))
	})
}
