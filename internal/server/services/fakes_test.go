package services

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/dbx"
	"github.com/dmitrijs2005/taskboard/internal/models"
	sm "github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/profiles"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/tasks"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/users"
	"github.com/google/uuid"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakeUsersRepo struct {
	byEmail   map[string]*sm.User
	createErr error
	getErr    error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *sm.User) (*sm.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*sm.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

type fakeRefreshRepo struct {
	tokens     map[string]sm.RefreshToken
	createErr  error
	consumeErr error
	sweepErr   error
	swept      []string
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, token string, expires time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.tokens[token] = sm.RefreshToken{UserID: userID, Token: token, Expires: expires}
	return nil
}

func (f *fakeRefreshRepo) Consume(_ context.Context, token string) (*sm.RefreshToken, error) {
	if f.consumeErr != nil {
		return nil, f.consumeErr
	}
	rt, ok := f.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	delete(f.tokens, token)
	return &rt, nil
}

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context, userID string, _ time.Time) (int64, error) {
	if f.sweepErr != nil {
		return 0, f.sweepErr
	}
	f.swept = append(f.swept, userID)
	return 0, nil
}

type fakeTasksRepo struct {
	rows  map[string]models.Task
	clock time.Time
}

func (f *fakeTasksRepo) List(_ context.Context, userID string) ([]models.Task, error) {
	out := make([]models.Task, 0)
	for _, t := range f.rows {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTasksRepo) Create(_ context.Context, userID string, in models.TaskInput) (*models.Task, error) {
	f.clock = f.clock.Add(time.Second)
	t := models.Task{
		ID: uuid.NewString(), UserID: userID, Title: in.Title, Description: in.Description,
		Status: in.Status, Priority: in.Priority, DueDate: in.DueDate, CreatedAt: f.clock, UpdatedAt: f.clock,
	}
	f.rows[t.ID] = t
	return &t, nil
}

func (f *fakeTasksRepo) Update(_ context.Context, userID, id string, p models.TaskPatch) (*models.Task, error) {
	t, ok := f.rows[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	f.rows[id] = t
	return &t, nil
}

func (f *fakeTasksRepo) Delete(_ context.Context, userID, id string) error {
	t, ok := f.rows[id]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeProfilesRepo struct {
	byUser map[string]models.Profile
}

func (f *fakeProfilesRepo) Create(_ context.Context, userID string, fullName *string) (*models.Profile, error) {
	p := models.Profile{ID: uuid.NewString(), UserID: userID, FullName: fullName}
	f.byUser[userID] = p
	return &p, nil
}

func (f *fakeProfilesRepo) GetByUser(_ context.Context, userID string) (*models.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (f *fakeProfilesRepo) Update(_ context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.FullName != nil {
		p.FullName = patch.FullName
	}
	if patch.Bio != nil {
		p.Bio = patch.Bio
	}
	f.byUser[userID] = p
	return &p, nil
}

func (f *fakeProfilesRepo) SetAvatarURL(_ context.Context, userID, url string) (*models.Profile, error) {
	p, ok := f.byUser[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	p.AvatarURL = &url
	f.byUser[userID] = p
	return &p, nil
}

type fakeRepoManager struct {
	users    *fakeUsersRepo
	refresh  *fakeRefreshRepo
	tasks    *fakeTasksRepo
	profiles *fakeProfilesRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		users:    &fakeUsersRepo{byEmail: map[string]*sm.User{}},
		refresh:  &fakeRefreshRepo{tokens: map[string]sm.RefreshToken{}},
		tasks:    &fakeTasksRepo{rows: map[string]models.Task{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		profiles: &fakeProfilesRepo{byUser: map[string]models.Profile{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) (int, error) { return 0, nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                     { return m.users }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository     { return m.refresh }
func (m *fakeRepoManager) Tasks(dbx.DBTX) tasks.Repository                     { return m.tasks }
func (m *fakeRepoManager) Profiles(dbx.DBTX) profiles.Repository               { return m.profiles }
