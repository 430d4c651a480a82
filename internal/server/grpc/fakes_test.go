package grpc

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/models"
	sm "github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
)

type nopLogger struct{}

func (n nopLogger) Debug(context.Context, string, ...any) {}
func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

type fakeUsers struct {
	signUpOut *sm.User
	signUpErr error

	loginOut *services.TokenPair
	loginErr error

	refreshOut *services.TokenPair
	refreshErr error
}

func (f *fakeUsers) SignUp(context.Context, string, string, string) (*sm.User, error) {
	return f.signUpOut, f.signUpErr
}
func (f *fakeUsers) Login(context.Context, string, string) (*services.TokenPair, error) {
	return f.loginOut, f.loginErr
}
func (f *fakeUsers) RefreshToken(context.Context, string) (*services.TokenPair, error) {
	return f.refreshOut, f.refreshErr
}

type fakeTasks struct {
	owner string
	rows  []models.Task
	err   error
}

func (f *fakeTasks) List(_ context.Context, userID string) ([]models.Task, error) {
	f.owner = userID
	return f.rows, f.err
}
func (f *fakeTasks) Create(_ context.Context, userID string, in models.TaskInput) (*models.Task, error) {
	f.owner = userID
	if f.err != nil {
		return nil, f.err
	}
	t := models.Task{ID: "t-new", UserID: userID, Title: in.Title, Status: in.Status, Priority: in.Priority}
	f.rows = append(f.rows, t)
	return &t, nil
}
func (f *fakeTasks) Update(_ context.Context, userID, id string, p models.TaskPatch) (*models.Task, error) {
	f.owner = userID
	if f.err != nil {
		return nil, f.err
	}
	t := models.Task{ID: id, UserID: userID}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return &t, nil
}
func (f *fakeTasks) Delete(_ context.Context, userID, _ string) error {
	f.owner = userID
	return f.err
}

type fakeProfiles struct {
	profile *models.Profile
	err     error
}

func (f *fakeProfiles) Get(context.Context, string) (*models.Profile, error) {
	return f.profile, f.err
}
func (f *fakeProfiles) Update(_ context.Context, userID string, p models.ProfilePatch) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Profile{UserID: userID, FullName: p.FullName, Bio: p.Bio}, nil
}
func (f *fakeProfiles) PresignAvatarUpload(_ context.Context, userID, _ string) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return "avatars/" + userID + "/k", "http://signed", nil
}
func (f *fakeProfiles) ConfirmAvatar(_ context.Context, userID, key string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	url := "http://cdn/" + key
	return &models.Profile{UserID: userID, AvatarURL: &url}, nil
}
