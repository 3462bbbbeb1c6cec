package users_repositories

import (
	"context"
	"testing"
	"time"

	users_models "taskboard/internal/features/users/models"
	test_utils "taskboard/internal/util/testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_RefreshTokenRepository_GetByUserID_WhenMissing_ReturnsNil(t *testing.T) {
	mock := test_utils.NewMockDb(t)
	repository := &RefreshTokenRepository{}
	userID := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expire_on", "created_at"}))

	token, err := repository.GetByUserID(context.Background(), userID)

	require.NoError(t, err)
	assert.Nil(t, token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_RefreshTokenRepository_GetByUserID_WhenPresent_ReturnsRow(t *testing.T) {
	mock := test_utils.NewMockDb(t)
	repository := &RefreshTokenRepository{}
	userID := uuid.New()
	tokenID := uuid.New()
	expireOn := time.Now().UTC().Add(time.Hour).Truncate(time.Second)

	mock.ExpectQuery(`SELECT \* FROM "refresh_tokens" WHERE user_id = \$1`).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "user_id", "token_hash", "expire_on", "created_at"}).
				AddRow(tokenID.String(), userID.String(), "hash", expireOn, time.Now().UTC()),
		)

	token, err := repository.GetByUserID(context.Background(), userID)

	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, tokenID, token.ID)
	assert.Equal(t, "hash", token.TokenHash)
	assert.Equal(t, expireOn, token.ExpireOn)
}

func Test_RefreshTokenRepository_Update_WritesOnlyValueAndExpiry(t *testing.T) {
	mock := test_utils.NewMockDb(t)
	repository := &RefreshTokenRepository{}
	token := &users_models.RefreshToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		TokenHash: "new-hash",
		ExpireOn:  time.Now().UTC().Add(time.Hour),
	}

	mock.ExpectExec(`UPDATE "refresh_tokens" SET "expire_on"=\$1,"token_hash"=\$2 WHERE id = \$3`).
		WithArgs(token.ExpireOn, "new-hash", token.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repository.Update(context.Background(), token)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_RefreshTokenRepository_Delete_DeletesById(t *testing.T) {
	mock := test_utils.NewMockDb(t)
	repository := &RefreshTokenRepository{}
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM "refresh_tokens" WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repository.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_RefreshTokenRepository_DeleteExpired_ReturnsRemovedCount(t *testing.T) {
	mock := test_utils.NewMockDb(t)
	repository := &RefreshTokenRepository{}
	now := time.Now().UTC()

	mock.ExpectExec(`DELETE FROM "refresh_tokens" WHERE expire_on <= \$1`).
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	removed, err := repository.DeleteExpired(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, int64(4), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
