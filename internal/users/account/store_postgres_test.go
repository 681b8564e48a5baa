// Copyright (c) 2026 Passage. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/passage/internal/platform/apperr"
	"github.com/taibuivan/passage/internal/users/account"
	"github.com/taibuivan/passage/internal/users/auth"
)

func TestPostgresProfileRepository_FindByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{"id", "name", "email", "passwordhash", "photo", "phone", "bio", "createdat", "updatedat"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM users.account WHERE id = $1")).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(columns).AddRow("user-1", "Ann", "ann@x.com", "hash", "p", "+234", "bio", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users.account WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(columns))

	repository := account.NewProfileRepository(mock)

	user, err := repository.FindByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
	assert.Equal(t, "hash", user.PasswordHash)

	_, err = repository.FindByID(context.Background(), "missing")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProfileRepository_UpdateProfile(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantCode string
	}{
		{"updated", 1, ""},
		{"missing_row", 0, apperr.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			user := &auth.User{ID: "user-1", Name: "Ann", Email: "ann@x.com", Photo: "p", Phone: "+234", Bio: "hi"}

			mock.ExpectExec(regexp.QuoteMeta("UPDATE users.account")).
				WithArgs("user-1", "Ann", "p", "+234", "hi", pgxmock.AnyArg()).
				WillReturnResult(pgxmock.NewResult("UPDATE", tt.affected))

			err = account.NewProfileRepository(mock).UpdateProfile(context.Background(), user)
			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.False(t, user.UpdatedAt.IsZero())
			} else {
				assert.True(t, apperr.HasCode(err, tt.wantCode))
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
