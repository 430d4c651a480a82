package grpc

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/rpc"
	"github.com/dmitrijs2005/taskboard/internal/server/metrics"
)

func (s *GRPCServer) SignUp(ctx context.Context, req *rpc.SignUpRequest) (*rpc.SignUpResponse, error) {
	user, err := s.users.SignUp(ctx, req.Email, req.Password, req.FullName)
	if err != nil {
		return nil, s.toStatus(ctx, "sign up", "user", err)
	}
	s.logger.Info(ctx, "Signed up", "user_id", user.ID)
	return &rpc.SignUpResponse{UserID: user.ID}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.LoginResponse, error) {
	tokens, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, s.toStatus(ctx, "login", "user", err)
	}
	return &rpc.LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		UserID:       tokens.UserID,
		Email:        tokens.Email,
	}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.RefreshTokenResponse, error) {
	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, s.toStatus(ctx, "refresh token", "refresh token", err)
	}
	return &rpc.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.PingRequest) (*rpc.PingResponse, error) {
	return &rpc.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) ListTasks(ctx context.Context, req *rpc.ListTasksRequest) (*rpc.ListTasksResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.List(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "list tasks", "task", err)
	}
	return &rpc.ListTasksResponse{Tasks: tasks}, nil
}

func (s *GRPCServer) CreateTask(ctx context.Context, req *rpc.CreateTaskRequest) (*rpc.CreateTaskResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	task, err := s.tasks.Create(ctx, userID, req.Task)
	if err != nil {
		return nil, s.toStatus(ctx, "create task", "task", err)
	}
	metrics.RecordMutation("task", "create")
	s.logger.Debug(ctx, "Task created", "user_id", userID, "task_id", task.ID)
	return &rpc.CreateTaskResponse{Task: *task}, nil
}

func (s *GRPCServer) UpdateTask(ctx context.Context, req *rpc.UpdateTaskRequest) (*rpc.UpdateTaskResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	task, err := s.tasks.Update(ctx, userID, req.ID, req.Patch)
	if err != nil {
		return nil, s.toStatus(ctx, "update task", "task", err)
	}
	metrics.RecordMutation("task", "update")
	return &rpc.UpdateTaskResponse{Task: *task}, nil
}

func (s *GRPCServer) DeleteTask(ctx context.Context, req *rpc.DeleteTaskRequest) (*rpc.DeleteTaskResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Delete(ctx, userID, req.ID); err != nil {
		return nil, s.toStatus(ctx, "delete task", "task", err)
	}
	metrics.RecordMutation("task", "delete")
	return &rpc.DeleteTaskResponse{}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *rpc.GetProfileRequest) (*rpc.GetProfileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, s.toStatus(ctx, "get profile", "profile", err)
	}
	return &rpc.GetProfileResponse{Profile: p}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.UpdateProfileResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.Update(ctx, userID, req.Patch)
	if err != nil {
		return nil, s.toStatus(ctx, "update profile", "profile", err)
	}
	metrics.RecordMutation("profile", "update")
	return &rpc.UpdateProfileResponse{Profile: *p}, nil
}

func (s *GRPCServer) PresignAvatarUpload(ctx context.Context, req *rpc.PresignAvatarUploadRequest) (*rpc.PresignAvatarUploadResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	key, url, err := s.profiles.PresignAvatarUpload(ctx, userID, req.ContentType)
	if err != nil {
		return nil, s.toStatus(ctx, "presign avatar", "profile", err)
	}
	return &rpc.PresignAvatarUploadResponse{Key: key, URL: url}, nil
}

func (s *GRPCServer) ConfirmAvatar(ctx context.Context, req *rpc.ConfirmAvatarRequest) (*rpc.ConfirmAvatarResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.ConfirmAvatar(ctx, userID, req.Key)
	if err != nil {
		return nil, s.toStatus(ctx, "confirm avatar", "profile", err)
	}
	metrics.RecordMutation("profile", "avatar")
	return &rpc.ConfirmAvatarResponse{Profile: *p}, nil
}
