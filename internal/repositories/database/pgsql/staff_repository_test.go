package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapStaffWriteError(t *testing.T) {
	t.Run("email key", func(t *testing.T) {
		err := mapStaffWriteError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "staff_email_key"}, "save staff carol")

		var appErr *apperrors.AppError
		if assert.True(t, errors.As(err, &appErr)) {
			assert.Equal(t, "email already in use", appErr.Message)
		}
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	})

	t.Run("username key", func(t *testing.T) {
		err := mapStaffWriteError(fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "staff_username_key"}), "save staff carol")

		var appErr *apperrors.AppError
		if assert.True(t, errors.As(err, &appErr)) {
			assert.Equal(t, "username already taken", appErr.Message)
		}
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	})

	t.Run("other violations fall through", func(t *testing.T) {
		err := mapStaffWriteError(&pgconn.PgError{Code: pgerrcode.CheckViolation, ConstraintName: "staff_role_check"}, "save staff carol")

		assert.NotErrorIs(t, err, apperrors.ErrDuplicate)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, mapStaffWriteError(nil, "save staff carol"))
	})
}
