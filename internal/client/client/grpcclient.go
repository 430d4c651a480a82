package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/dmitrijs2005/taskboard/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// taskBoardAPI is the subset of rpc.TaskBoardClient the client calls.
type taskBoardAPI interface {
	SignUp(ctx context.Context, in *rpc.SignUpRequest, opts ...grpc.CallOption) (*rpc.SignUpResponse, error)
	Login(ctx context.Context, in *rpc.LoginRequest, opts ...grpc.CallOption) (*rpc.LoginResponse, error)
	RefreshToken(ctx context.Context, in *rpc.RefreshTokenRequest, opts ...grpc.CallOption) (*rpc.RefreshTokenResponse, error)
	Ping(ctx context.Context, in *rpc.PingRequest, opts ...grpc.CallOption) (*rpc.PingResponse, error)
	ListTasks(ctx context.Context, in *rpc.ListTasksRequest, opts ...grpc.CallOption) (*rpc.ListTasksResponse, error)
	CreateTask(ctx context.Context, in *rpc.CreateTaskRequest, opts ...grpc.CallOption) (*rpc.CreateTaskResponse, error)
	UpdateTask(ctx context.Context, in *rpc.UpdateTaskRequest, opts ...grpc.CallOption) (*rpc.UpdateTaskResponse, error)
	DeleteTask(ctx context.Context, in *rpc.DeleteTaskRequest, opts ...grpc.CallOption) (*rpc.DeleteTaskResponse, error)
	GetProfile(ctx context.Context, in *rpc.GetProfileRequest, opts ...grpc.CallOption) (*rpc.GetProfileResponse, error)
	UpdateProfile(ctx context.Context, in *rpc.UpdateProfileRequest, opts ...grpc.CallOption) (*rpc.UpdateProfileResponse, error)
	PresignAvatarUpload(ctx context.Context, in *rpc.PresignAvatarUploadRequest, opts ...grpc.CallOption) (*rpc.PresignAvatarUploadResponse, error)
	ConfirmAvatar(ctx context.Context, in *rpc.ConfirmAvatarRequest, opts ...grpc.CallOption) (*rpc.ConfirmAvatarResponse, error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      taskBoardAPI

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	onRotate     func(string)

	// refreshMu serialises refreshes so a rotated token is spent once.
	refreshMu sync.Mutex
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	s.accessToken = access
	s.refreshToken = refresh
	fn := s.onRotate
	s.mu.Unlock()

	if fn != nil && refresh != "" {
		fn(refresh)
	}
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

// refresh exchanges the refresh token for a new pair unless another call
// already did so after staleAccess was sent.
func (s *GRPCClient) refresh(ctx context.Context, staleAccess string) (string, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	access, refresh := s.tokens()
	if access != staleAccess && access != "" {
		return access, nil
	}
	if refresh == "" {
		return "", ErrUnauthorized
	}

	resp, err := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: refresh})
	if err != nil {
		return "", err
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return resp.AccessToken, nil
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if method == rpc.FullMethod(rpc.MethodRefreshToken) {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	access, refresh := s.tokens()
	if access == "" && refresh != "" {
		// resumed session: trade the saved refresh token first
		if fresh, err := s.refresh(ctx, ""); err == nil {
			access = fresh
		}
	}
	err := invoker(withAccessToken(ctx, access), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) {
		return err
	}

	fresh, rerr := s.refresh(ctx, access)
	if rerr != nil {
		return err
	}
	return invoker(withAccessToken(ctx, fresh), method, req, reply, cc, opts...)
}

func NewTaskBoardClientService(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewTaskBoardClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) OnTokenRotation(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRotate = fn
}

func (s *GRPCClient) Resume(refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = refreshToken
}

func (s *GRPCClient) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
	s.refreshToken = ""
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := s.client.Ping(ctx, &rpc.PingRequest{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) SignUp(ctx context.Context, email, password, fullName string) (string, error) {
	resp, err := s.client.SignUp(ctx, &rpc.SignUpRequest{Email: email, Password: password, FullName: fullName})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.UserID, nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (models.Session, error) {
	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Email: email, Password: password})
	if err != nil {
		return models.Session{}, s.mapError(err)
	}
	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return models.Session{UserID: resp.UserID, Email: resp.Email}, nil
}

func (s *GRPCClient) ListTasks(ctx context.Context) ([]models.Task, error) {
	resp, err := s.client.ListTasks(ctx, &rpc.ListTasksRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tasks, nil
}

func (s *GRPCClient) CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error) {
	resp, err := s.client.CreateTask(ctx, &rpc.CreateTaskRequest{Task: in})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Task, nil
}

func (s *GRPCClient) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error) {
	resp, err := s.client.UpdateTask(ctx, &rpc.UpdateTaskRequest{ID: id, Patch: patch})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Task, nil
}

func (s *GRPCClient) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.client.DeleteTask(ctx, &rpc.DeleteTaskRequest{ID: id}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	resp, err := s.client.GetProfile(ctx, &rpc.GetProfileRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Profile, nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error) {
	resp, err := s.client.UpdateProfile(ctx, &rpc.UpdateProfileRequest{Patch: patch})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Profile, nil
}

func (s *GRPCClient) PresignAvatarUpload(ctx context.Context, contentType string) (string, string, error) {
	resp, err := s.client.PresignAvatarUpload(ctx, &rpc.PresignAvatarUploadRequest{ContentType: contentType})
	if err != nil {
		return "", "", s.mapError(err)
	}
	return resp.Key, resp.URL, nil
}

func (s *GRPCClient) ConfirmAvatar(ctx context.Context, key string) (*models.Profile, error) {
	resp, err := s.client.ConfirmAvatar(ctx, &rpc.ConfirmAvatarRequest{Key: key})
	if err != nil {
		return nil, s.mapError(err)
	}
	return &resp.Profile, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return NewRemoteError(st.Code(), st.Message())
	}
}

var _ Client = (*GRPCClient)(nil)
