package projects_repositories

import (
	"errors"
	"testing"

	projects_models "taskboard/internal/features/projects/models"
	"taskboard/internal/features/rules"
	test_utils "taskboard/internal/util/testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CreateProjectWithOwner_InsertsBothRowsInOneTransaction(t *testing.T) {
	mock := test_utils.NewMockDb(t)
	repository := &ProjectRepository{}
	project := &projects_models.Project{Name: "Board"}
	owner := &projects_models.ProjectMembership{UserID: uuid.New(), Role: rules.RoleOwner}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "projects"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "project_memberships"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repository.CreateProjectWithOwner(project, owner)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, project.ID)
	assert.Equal(t, project.ID, owner.ProjectID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_CreateProjectWithOwner_WhenOwnerInsertFails_RollsBack(t *testing.T) {
	mock := test_utils.NewMockDb(t)
	repository := &ProjectRepository{}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "projects"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "project_memberships"`).WillReturnError(errors.New("foreign key violation"))
	mock.ExpectRollback()

	err := repository.CreateProjectWithOwner(
		&projects_models.Project{Name: "Board"},
		&projects_models.ProjectMembership{UserID: uuid.New(), Role: rules.RoleOwner},
	)

	assert.ErrorContains(t, err, "foreign key violation")
	assert.NoError(t, mock.ExpectationsWereMet())
}
