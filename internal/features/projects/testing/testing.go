package projects_testing

import (
	"errors"
	"sort"
	"sync"
	"testing"

	"taskboard/internal/features/audit_logs"
	projects_dto "taskboard/internal/features/projects/dto"
	projects_models "taskboard/internal/features/projects/models"
	projects_services "taskboard/internal/features/projects/services"
	"taskboard/internal/features/rules"
	users_middleware "taskboard/internal/features/users/middleware"
	users_models "taskboard/internal/features/users/models"
	cache_utils "taskboard/internal/util/cache"
	"taskboard/internal/util/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"
	"gorm.io/gorm"
)

type ControllerInterface interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// StaticUserResolver maps bearer tokens to users for router tests.
type StaticUserResolver map[string]*users_models.User

func (r StaticUserResolver) GetUserFromToken(token string) (*users_models.User, error) {
	user, ok := r[token]
	if !ok {
		return nil, errors.New("unknown token")
	}

	return user, nil
}

func CreateTestRouter(resolver users_middleware.UserFromTokenResolver, controllers ...ControllerInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	protected := v1.Group("")
	protected.Use(users_middleware.AuthMiddleware(resolver))

	for _, controller := range controllers {
		controller.RegisterRoutes(protected)
	}

	return router
}

type RecordedAuditLog struct {
	Message   string
	UserID    *uuid.UUID
	ProjectID *uuid.UUID
}

type AuditLogRecorder struct {
	mu       sync.Mutex
	Messages []string
	Entries  []RecordedAuditLog
}

func (r *AuditLogRecorder) WriteAuditLog(message string, userID *uuid.UUID, projectID *uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Messages = append(r.Messages, message)
	r.Entries = append(r.Entries, RecordedAuditLog{Message: message, UserID: userID, ProjectID: projectID})
}

// Find returns the first entry with the given message.
func (r *AuditLogRecorder) Find(message string) (RecordedAuditLog, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range r.Entries {
		if entry.Message == message {
			return entry, true
		}
	}

	return RecordedAuditLog{}, false
}

func (r *AuditLogRecorder) GetProjectAuditLogs(
	projectID uuid.UUID,
	request *audit_logs.GetAuditLogsRequest,
) (*audit_logs.GetAuditLogsResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs := make([]*audit_logs.AuditLogDTO, 0, len(r.Messages))
	for _, message := range r.Messages {
		projectID := projectID
		logs = append(logs, &audit_logs.AuditLogDTO{ID: uuid.New(), ProjectID: &projectID, Message: message})
	}

	return &audit_logs.GetAuditLogsResponse{AuditLogs: logs, Total: int64(len(logs)), Limit: request.Limit}, nil
}

type InMemoryProjectStore struct {
	mu       sync.Mutex
	Projects map[uuid.UUID]projects_models.Project
	Reads    int

	// OwnerInsertError makes CreateProjectWithOwner fail after the project
	// insert, which is then rolled back.
	OwnerInsertError error

	memberships *InMemoryMembershipStore
}

func NewInMemoryProjectStore() *InMemoryProjectStore {
	return &InMemoryProjectStore{Projects: map[uuid.UUID]projects_models.Project{}}
}

func (s *InMemoryProjectStore) CreateProjectWithOwner(
	project *projects_models.Project,
	owner *projects_models.ProjectMembership,
) error {
	if s.OwnerInsertError != nil {
		return s.OwnerInsertError
	}

	s.saveProject(project)

	owner.ProjectID = project.ID
	if s.memberships != nil {
		return s.memberships.CreateMembership(owner)
	}

	return nil
}

func (s *InMemoryProjectStore) saveProject(project *projects_models.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Projects[project.ID] = *project
}

func (s *InMemoryProjectStore) GetProjectByID(projectID uuid.UUID) (*projects_models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Reads++
	project, ok := s.Projects[projectID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	return &project, nil
}

func (s *InMemoryProjectStore) UpdateProject(project *projects_models.Project) error {
	s.saveProject(project)
	return nil
}

func (s *InMemoryProjectStore) DeleteProject(projectID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.Projects, projectID)
	return nil
}

type InMemoryMembershipStore struct {
	mu          sync.Mutex
	Memberships []projects_models.ProjectMembership
	Users       map[uuid.UUID]*users_models.User
	Projects    *InMemoryProjectStore
}

func NewInMemoryMembershipStore(projects *InMemoryProjectStore) *InMemoryMembershipStore {
	store := &InMemoryMembershipStore{Users: map[uuid.UUID]*users_models.User{}, Projects: projects}
	projects.memberships = store

	return store
}

func (s *InMemoryMembershipStore) CreateMembership(membership *projects_models.ProjectMembership) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if membership.ID == uuid.Nil {
		membership.ID = uuid.New()
	}

	s.Memberships = append(s.Memberships, *membership)
	return nil
}

func (s *InMemoryMembershipStore) GetMembership(
	projectID, userID uuid.UUID,
) (*projects_models.ProjectMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, membership := range s.Memberships {
		if membership.ProjectID == projectID && membership.UserID == userID {
			return &membership, nil
		}
	}

	return nil, nil
}

func (s *InMemoryMembershipStore) GetMemberRole(projectID, userID uuid.UUID) (rules.Role, error) {
	membership, _ := s.GetMembership(projectID, userID)
	if membership == nil {
		return rules.RoleNone, nil
	}

	return membership.Role, nil
}

func (s *InMemoryMembershipStore) GetProjectMembers(
	projectID uuid.UUID,
) ([]*projects_dto.ProjectMemberResponseDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	members := make([]*projects_dto.ProjectMemberResponseDTO, 0)
	for _, membership := range s.Memberships {
		if membership.ProjectID != projectID {
			continue
		}

		member := &projects_dto.ProjectMemberResponseDTO{
			ID:        membership.ID,
			UserID:    membership.UserID,
			Role:      membership.Role,
			CreatedAt: membership.CreatedAt,
		}
		if user, ok := s.Users[membership.UserID]; ok {
			member.Username = user.Username
			member.Email = user.Email
		}

		members = append(members, member)
	}

	return members, nil
}

func (s *InMemoryMembershipStore) GetProjectsByUserID(userID uuid.UUID) ([]projects_dto.ProjectResponseDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]projects_dto.ProjectResponseDTO, 0)
	for _, membership := range s.Memberships {
		if membership.UserID != userID {
			continue
		}

		project, ok := s.Projects.Projects[membership.ProjectID]
		if !ok {
			continue
		}

		results = append(results, projects_dto.ProjectResponseDTO{
			ID:          project.ID,
			Name:        project.Name,
			Description: project.Description,
			CreatedAt:   project.CreatedAt,
			UserRole:    membership.Role,
		})
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	return results, nil
}

func (s *InMemoryMembershipStore) UpdateMemberRole(projectID, userID uuid.UUID, role rules.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.Memberships {
		if s.Memberships[i].ProjectID == projectID && s.Memberships[i].UserID == userID {
			s.Memberships[i].Role = role
		}
	}

	return nil
}

func (s *InMemoryMembershipStore) RemoveMember(projectID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.Memberships[:0]
	for _, membership := range s.Memberships {
		if membership.ProjectID == projectID && membership.UserID == userID {
			continue
		}
		kept = append(kept, membership)
	}
	s.Memberships = kept

	return nil
}

func (s *InMemoryMembershipStore) GetUserByEmail(email string) (*users_models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.Users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, nil
}

func (s *InMemoryMembershipStore) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.Users[userID], nil
}

// AddMember registers the user and a membership row with the given role.
func (s *InMemoryMembershipStore) AddMember(projectID uuid.UUID, user *users_models.User, role rules.Role) {
	s.mu.Lock()
	s.Users[user.ID] = user
	s.mu.Unlock()

	_ = s.CreateMembership(&projects_models.ProjectMembership{
		UserID:    user.ID,
		ProjectID: projectID,
		Role:      role,
	})
}

// TestProjectEnv is a ProjectService and MembershipService wired to
// in-memory stores and a miniredis backed cache.
type TestProjectEnv struct {
	Projects          *InMemoryProjectStore
	Memberships       *InMemoryMembershipStore
	AuditLogs         *AuditLogRecorder
	Cache             *miniredis.Miniredis
	ProjectService    *projects_services.ProjectService
	MembershipService *projects_services.MembershipService
}

func NewTestProjectEnv(t *testing.T) *TestProjectEnv {
	t.Helper()

	server := miniredis.RunT(t)
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{server.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	projects := NewInMemoryProjectStore()
	memberships := NewInMemoryMembershipStore(projects)
	auditLogs := &AuditLogRecorder{}

	projectService := projects_services.NewProjectService(
		projects,
		memberships,
		auditLogs,
		auditLogs,
		cache_utils.NewCacheUtil[projects_models.Project](
			func() valkey.Client { return client },
			"tb_project_test:",
		),
		logger.GetLogger(),
	)

	return &TestProjectEnv{
		Projects:          projects,
		Memberships:       memberships,
		AuditLogs:         auditLogs,
		Cache:             server,
		ProjectService:    projectService,
		MembershipService: projects_services.NewMembershipService(memberships, memberships, auditLogs, projectService),
	}
}

// CreateProject stores a project owned by owner.
func (e *TestProjectEnv) CreateProject(t *testing.T, name string, owner *users_models.User) uuid.UUID {
	t.Helper()

	e.Memberships.mu.Lock()
	e.Memberships.Users[owner.ID] = owner
	e.Memberships.mu.Unlock()

	response, err := e.ProjectService.CreateProject(&projects_dto.CreateProjectRequestDTO{Name: name}, owner)
	require.NoError(t, err)

	return response.ID
}
