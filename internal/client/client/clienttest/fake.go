// Package clienttest provides an in-memory client.Client that behaves like
// the taskboard server: rows are scoped to the signed-in user and writes are
// validated.
package clienttest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/dmitrijs2005/taskboard/internal/validation"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
)

type account struct {
	id       string
	email    string
	password string
}

type Fake struct {
	mu sync.Mutex

	accounts map[string]account // by email
	user     string
	email    string
	tasks    map[string][]models.Task // by owner, newest first
	profiles map[string]*models.Profile
	onRotate func(string)
	clock    time.Time
	calls    map[string]int

	// Err, when set, fails every call.
	Err error
	// BeforeList runs before ListTasks answers; tests use it to hold a
	// response back.
	BeforeList func(owner string)
}

func New() *Fake {
	return &Fake{
		accounts: make(map[string]account),
		tasks:    make(map[string][]models.Task),
		profiles: make(map[string]*models.Profile),
		calls:    make(map[string]int),
		clock:    time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

// Calls returns how many times method was called.
func (f *Fake) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

// SignIn makes userID the caller of later calls without a login.
func (f *Fake) SignIn(userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = userID
}

// Seed stores a task of owner as if it had been created on the server.
func (f *Fake) Seed(owner string, t models.Task) models.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.UserID = owner
	t.CreatedAt = f.tick()
	t.UpdatedAt = t.CreatedAt
	f.tasks[owner] = append([]models.Task{t}, f.tasks[owner]...)
	return t
}

func (f *Fake) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

// begin counts the call and returns the caller, failing when nobody is
// signed in or Err is set.
func (f *Fake) begin(method string, auth bool) (string, error) {
	f.calls[method]++
	if f.Err != nil {
		return "", f.Err
	}
	if auth && f.user == "" {
		return "", client.NewRemoteError(codes.Unauthenticated, "missing token")
	}
	return f.user, nil
}

func invalid(errs validation.Errors) error {
	msgs := make([]string, 0, len(errs))
	for _, fe := range errs {
		msgs = append(msgs, fe.Message)
	}
	return client.NewRemoteError(codes.InvalidArgument, strings.Join(msgs, "; "))
}

func (f *Fake) Close() error { return nil }

func (f *Fake) Ping(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, err := f.begin("Ping", false)
	return err
}

func (f *Fake) OnTokenRotation(fn func(string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onRotate = fn
}

func (f *Fake) Resume(refreshToken string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	// tokens are "refresh-<user id>"
	f.user = strings.TrimPrefix(refreshToken, "refresh-")
}

func (f *Fake) Logout() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.user = ""
	f.email = ""
}

func (f *Fake) SignUp(_ context.Context, email, password, fullName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, err := f.begin("SignUp", false); err != nil {
		return "", err
	}
	email = strings.ToLower(email)
	if _, ok := f.accounts[email]; ok {
		return "", client.NewRemoteError(codes.AlreadyExists, "user already exists")
	}
	id := uuid.NewString()
	f.accounts[email] = account{id: id, email: email, password: password}
	name := fullName
	now := f.tick()
	f.profiles[id] = &models.Profile{ID: uuid.NewString(), UserID: id, FullName: &name, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *Fake) Login(_ context.Context, email, password string) (models.Session, error) {
	f.mu.Lock()
	if _, err := f.begin("Login", false); err != nil {
		f.mu.Unlock()
		return models.Session{}, err
	}
	acc, ok := f.accounts[strings.ToLower(email)]
	if !ok || acc.password != password {
		f.mu.Unlock()
		return models.Session{}, client.NewRemoteError(codes.Unauthenticated, "invalid credentials")
	}
	f.user, f.email = acc.id, acc.email
	rotate := f.onRotate
	f.mu.Unlock()

	if rotate != nil {
		rotate("refresh-" + acc.id)
	}
	return models.Session{UserID: acc.id, Email: acc.email}, nil
}

func (f *Fake) ListTasks(context.Context) ([]models.Task, error) {
	f.mu.Lock()
	owner, err := f.begin("ListTasks", true)
	hook := f.BeforeList
	var out []models.Task
	if err == nil {
		out = append([]models.Task{}, f.tasks[owner]...)
	}
	f.mu.Unlock()

	if hook != nil {
		hook(owner)
	}
	return out, err
}

func (f *Fake) CreateTask(_ context.Context, in models.TaskInput) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, err := f.begin("CreateTask", true)
	if err != nil {
		return nil, err
	}
	if errs := validation.Task(in); len(errs) > 0 {
		return nil, invalid(errs)
	}
	now := f.tick()
	t := models.Task{
		ID:          uuid.NewString(),
		UserID:      owner,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks[owner] = append([]models.Task{t}, f.tasks[owner]...)
	return &t, nil
}

func (f *Fake) find(owner, id string) (int, error) {
	for i, t := range f.tasks[owner] {
		if t.ID == id {
			return i, nil
		}
	}
	return -1, client.NewRemoteError(codes.NotFound, "task not found")
}

func (f *Fake) UpdateTask(_ context.Context, id string, p models.TaskPatch) (*models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, err := f.begin("UpdateTask", true)
	if err != nil {
		return nil, err
	}
	if errs := validation.TaskPatch(p); len(errs) > 0 {
		return nil, invalid(errs)
	}
	i, err := f.find(owner, id)
	if err != nil {
		return nil, err
	}
	t := f.tasks[owner][i]
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		if *p.Description == "" {
			t.Description = nil
		} else {
			d := *p.Description
			t.Description = &d
		}
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.ClearDueDate {
		t.DueDate = nil
	}
	t.UpdatedAt = f.tick()
	f.tasks[owner][i] = t
	return &t, nil
}

func (f *Fake) DeleteTask(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, err := f.begin("DeleteTask", true)
	if err != nil {
		return err
	}
	i, err := f.find(owner, id)
	if err != nil {
		return err
	}
	f.tasks[owner] = append(f.tasks[owner][:i], f.tasks[owner][i+1:]...)
	return nil
}

func (f *Fake) GetProfile(context.Context) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, err := f.begin("GetProfile", true)
	if err != nil {
		return nil, err
	}
	p, ok := f.profiles[owner]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *Fake) UpdateProfile(_ context.Context, patch models.ProfilePatch) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, err := f.begin("UpdateProfile", true)
	if err != nil {
		return nil, err
	}
	if errs := validation.Profile(patch); len(errs) > 0 {
		return nil, invalid(errs)
	}
	p, ok := f.profiles[owner]
	if !ok {
		return nil, client.NewRemoteError(codes.NotFound, "profile not found")
	}
	if patch.FullName != nil {
		name := strings.TrimSpace(*patch.FullName)
		p.FullName = &name
	}
	if patch.Bio != nil {
		bio := *patch.Bio
		p.Bio = &bio
	}
	p.UpdatedAt = f.tick()
	cp := *p
	return &cp, nil
}

func (f *Fake) PresignAvatarUpload(_ context.Context, contentType string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, err := f.begin("PresignAvatarUpload", true)
	if err != nil {
		return "", "", err
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", client.NewRemoteError(codes.InvalidArgument, "Avatar must be an image")
	}
	key := fmt.Sprintf("avatars/%s/%s", owner, uuid.NewString())
	return key, "https://storage.test/" + key, nil
}

func (f *Fake) ConfirmAvatar(_ context.Context, key string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	owner, err := f.begin("ConfirmAvatar", true)
	if err != nil {
		return nil, err
	}
	p, ok := f.profiles[owner]
	if !ok {
		return nil, client.NewRemoteError(codes.NotFound, "profile not found")
	}
	url := "https://cdn.test/" + key
	p.AvatarURL = &url
	cp := *p
	return &cp, nil
}

var _ client.Client = (*Fake)(nil)
