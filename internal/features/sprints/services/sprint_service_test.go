package sprints_services

import (
	"testing"
	"time"

	projects_testing "taskboard/internal/features/projects/testing"
	"taskboard/internal/features/rules"
	sprints_dto "taskboard/internal/features/sprints/dto"
	sprints_models "taskboard/internal/features/sprints/models"
	users_enums "taskboard/internal/features/users/enums"
	users_models "taskboard/internal/features/users/models"
	users_testing "taskboard/internal/features/users/testing"
	errors_utils "taskboard/internal/util/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inMemorySprintStore struct {
	sprints         map[uuid.UUID]sprints_models.Sprint
	deletedProjects []uuid.UUID
}

func (s *inMemorySprintStore) CreateSprint(sprint *sprints_models.Sprint) error {
	s.sprints[sprint.ID] = *sprint
	return nil
}

func (s *inMemorySprintStore) GetSprintByID(sprintID uuid.UUID) (*sprints_models.Sprint, error) {
	sprint, ok := s.sprints[sprintID]
	if !ok {
		return nil, nil
	}

	return &sprint, nil
}

func (s *inMemorySprintStore) GetSprintsByProject(projectID uuid.UUID) ([]*sprints_models.Sprint, error) {
	result := make([]*sprints_models.Sprint, 0)
	for _, sprint := range s.sprints {
		if sprint.ProjectID == projectID {
			result = append(result, &sprint)
		}
	}

	return result, nil
}

func (s *inMemorySprintStore) UpdateSprint(sprint *sprints_models.Sprint) error {
	s.sprints[sprint.ID] = *sprint
	return nil
}

func (s *inMemorySprintStore) DeleteSprint(sprintID uuid.UUID) error {
	delete(s.sprints, sprintID)
	return nil
}

func (s *inMemorySprintStore) DeleteSprintsByProject(projectID uuid.UUID) error {
	s.deletedProjects = append(s.deletedProjects, projectID)
	return nil
}

type sprintFixture struct {
	service   *SprintService
	store     *inMemorySprintStore
	projectID uuid.UUID
	owner     *users_models.User
	developer *users_models.User
	observer  *users_models.User
}

func newSprintFixture(t *testing.T) *sprintFixture {
	env := projects_testing.NewTestProjectEnv(t)
	owner := users_testing.NewTestUser()
	projectID := env.CreateProject(t, "Board", owner)

	developer := users_testing.NewTestUser()
	observer := users_testing.NewTestUser()
	env.Memberships.AddMember(projectID, developer, rules.RoleDeveloper)
	env.Memberships.AddMember(projectID, observer, rules.RoleObserver)

	store := &inMemorySprintStore{sprints: map[uuid.UUID]sprints_models.Sprint{}}

	return &sprintFixture{
		service:   NewSprintService(store, env.ProjectService, env.AuditLogs),
		store:     store,
		projectID: projectID,
		owner:     owner,
		developer: developer,
		observer:  observer,
	}
}

func sprintRequest(name string, start time.Time, length time.Duration) *sprints_dto.SprintRequestDTO {
	return &sprints_dto.SprintRequestDTO{
		Name:      name,
		StartDate: start,
		EndDate:   start.Add(length),
	}
}

func Test_CreateSprint_AsOwner_StoresSprint(t *testing.T) {
	f := newSprintFixture(t)
	start := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	sprint, err := f.service.CreateSprint(f.projectID, sprintRequest("Sprint 1", start, 14*24*time.Hour), f.owner)

	require.NoError(t, err)
	assert.Equal(t, f.projectID, sprint.ProjectID)
	assert.Contains(t, f.store.sprints, sprint.ID)
}

func Test_CreateSprint_AsDeveloper_ReturnsForbidden(t *testing.T) {
	f := newSprintFixture(t)

	_, err := f.service.CreateSprint(f.projectID, sprintRequest("Sprint 1", time.Now(), time.Hour), f.developer)

	assert.True(t, errors_utils.IsForbiddenOperation(err))
	assert.Empty(t, f.store.sprints)
}

func Test_CreateSprint_WhenEndPrecedesStart_ReturnsError(t *testing.T) {
	f := newSprintFixture(t)

	_, err := f.service.CreateSprint(f.projectID, sprintRequest("Sprint 1", time.Now(), -time.Hour), f.owner)

	assert.EqualError(t, err, "sprint end date must not precede its start date")
}

func Test_CreateSprint_WithSameStartAndEnd_Succeeds(t *testing.T) {
	f := newSprintFixture(t)

	_, err := f.service.CreateSprint(f.projectID, sprintRequest("One day", time.Now(), 0), f.owner)

	assert.NoError(t, err)
}

func Test_GetSprints_AsObserver_ListsSprints(t *testing.T) {
	f := newSprintFixture(t)
	_, err := f.service.CreateSprint(f.projectID, sprintRequest("Sprint 1", time.Now(), time.Hour), f.owner)
	require.NoError(t, err)

	response, err := f.service.GetSprints(f.projectID, f.observer)

	require.NoError(t, err)
	assert.Len(t, response.Sprints, 1)
}

func Test_GetSprints_AsOutsider_ReturnsForbidden(t *testing.T) {
	f := newSprintFixture(t)

	_, err := f.service.GetSprints(f.projectID, users_testing.NewTestUser())

	assert.True(t, errors_utils.IsForbiddenOperation(err))
}

func Test_GetSprints_AsAdministratorOutsider_IsAllowed(t *testing.T) {
	f := newSprintFixture(t)

	_, err := f.service.GetSprints(f.projectID, users_testing.NewTestUser(users_enums.UserRoleAdministrator))

	assert.NoError(t, err)
}

func Test_UpdateSprint_FromAnotherProject_ReturnsNotFound(t *testing.T) {
	f := newSprintFixture(t)
	sprint, err := f.service.CreateSprint(f.projectID, sprintRequest("Sprint 1", time.Now(), time.Hour), f.owner)
	require.NoError(t, err)

	foreign := newSprintFixture(t)
	foreign.store.sprints[sprint.ID] = *sprint

	_, err = foreign.service.UpdateSprint(
		foreign.projectID,
		sprint.ID,
		sprintRequest("Renamed", time.Now(), time.Hour),
		foreign.owner,
	)

	assert.True(t, errors_utils.IsNotFound(err))
}

func Test_DeleteSprint_AsOwner_RemovesSprint(t *testing.T) {
	f := newSprintFixture(t)
	sprint, err := f.service.CreateSprint(f.projectID, sprintRequest("Sprint 1", time.Now(), time.Hour), f.owner)
	require.NoError(t, err)

	err = f.service.DeleteSprint(f.projectID, sprint.ID, f.owner)

	require.NoError(t, err)
	assert.NotContains(t, f.store.sprints, sprint.ID)
}

func Test_OnBeforeProjectDeletion_RemovesProjectSprints(t *testing.T) {
	f := newSprintFixture(t)

	err := f.service.OnBeforeProjectDeletion(f.projectID)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.projectID}, f.store.deletedProjects)
}
