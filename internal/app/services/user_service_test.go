package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placemate/placemate/internal/pkg/apperrors"
)

func TestUpdateRolesRejectsSelf(t *testing.T) {
	svc := NewUserService(nil, nil, nil, zerolog.Nop())

	user, err := svc.UpdateRoles(context.Background(), 7, 7, []int64{1, 2})

	assert.Nil(t, user)
	require.Error(t, err)
	var customErr *apperrors.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, "Cannot modify own roles", customErr.Message)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestSetActivationRejectsSelfDeactivation(t *testing.T) {
	svc := NewUserService(nil, nil, nil, zerolog.Nop())

	err := svc.SetActivation(context.Background(), 7, 7, false)

	require.Error(t, err)
	var customErr *apperrors.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, "Cannot deactivate own account", customErr.Message)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}
