package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "taskboard.v1.TaskBoard"

const (
	MethodSignUp              = "SignUp"
	MethodLogin               = "Login"
	MethodRefreshToken        = "RefreshToken"
	MethodPing                = "Ping"
	MethodListTasks           = "ListTasks"
	MethodCreateTask          = "CreateTask"
	MethodUpdateTask          = "UpdateTask"
	MethodDeleteTask          = "DeleteTask"
	MethodGetProfile          = "GetProfile"
	MethodUpdateProfile       = "UpdateProfile"
	MethodPresignAvatarUpload = "PresignAvatarUpload"
	MethodConfirmAvatar       = "ConfirmAvatar"
)

// FullMethod returns the "/service/method" path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// TaskBoardServer is implemented by the remote data service.
type TaskBoardServer interface {
	SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error)
	CreateTask(context.Context, *CreateTaskRequest) (*CreateTaskResponse, error)
	UpdateTask(context.Context, *UpdateTaskRequest) (*UpdateTaskResponse, error)
	DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error)
	GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UpdateProfileResponse, error)
	PresignAvatarUpload(context.Context, *PresignAvatarUploadRequest) (*PresignAvatarUploadResponse, error)
	ConfirmAvatar(context.Context, *ConfirmAvatarRequest) (*ConfirmAvatarResponse, error)
}

// UnimplementedTaskBoardServer answers codes.Unimplemented for every method.
// Embed it to implement a subset of the service.
type UnimplementedTaskBoardServer struct{}

func unimplemented(method string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", method)
}

func (UnimplementedTaskBoardServer) SignUp(context.Context, *SignUpRequest) (*SignUpResponse, error) {
	return nil, unimplemented(MethodSignUp)
}
func (UnimplementedTaskBoardServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, unimplemented(MethodLogin)
}
func (UnimplementedTaskBoardServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, unimplemented(MethodRefreshToken)
}
func (UnimplementedTaskBoardServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, unimplemented(MethodPing)
}
func (UnimplementedTaskBoardServer) ListTasks(context.Context, *ListTasksRequest) (*ListTasksResponse, error) {
	return nil, unimplemented(MethodListTasks)
}
func (UnimplementedTaskBoardServer) CreateTask(context.Context, *CreateTaskRequest) (*CreateTaskResponse, error) {
	return nil, unimplemented(MethodCreateTask)
}
func (UnimplementedTaskBoardServer) UpdateTask(context.Context, *UpdateTaskRequest) (*UpdateTaskResponse, error) {
	return nil, unimplemented(MethodUpdateTask)
}
func (UnimplementedTaskBoardServer) DeleteTask(context.Context, *DeleteTaskRequest) (*DeleteTaskResponse, error) {
	return nil, unimplemented(MethodDeleteTask)
}
func (UnimplementedTaskBoardServer) GetProfile(context.Context, *GetProfileRequest) (*GetProfileResponse, error) {
	return nil, unimplemented(MethodGetProfile)
}
func (UnimplementedTaskBoardServer) UpdateProfile(context.Context, *UpdateProfileRequest) (*UpdateProfileResponse, error) {
	return nil, unimplemented(MethodUpdateProfile)
}
func (UnimplementedTaskBoardServer) PresignAvatarUpload(context.Context, *PresignAvatarUploadRequest) (*PresignAvatarUploadResponse, error) {
	return nil, unimplemented(MethodPresignAvatarUpload)
}
func (UnimplementedTaskBoardServer) ConfirmAvatar(context.Context, *ConfirmAvatarRequest) (*ConfirmAvatarResponse, error) {
	return nil, unimplemented(MethodConfirmAvatar)
}

// unary builds the method descriptor that decodes Req, runs the server
// interceptor chain and dispatches to call.
func unary[Req any, Resp any](method string, call func(TaskBoardServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TaskBoardServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TaskBoardServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the TaskBoard service for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TaskBoardServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodSignUp, TaskBoardServer.SignUp),
		unary(MethodLogin, TaskBoardServer.Login),
		unary(MethodRefreshToken, TaskBoardServer.RefreshToken),
		unary(MethodPing, TaskBoardServer.Ping),
		unary(MethodListTasks, TaskBoardServer.ListTasks),
		unary(MethodCreateTask, TaskBoardServer.CreateTask),
		unary(MethodUpdateTask, TaskBoardServer.UpdateTask),
		unary(MethodDeleteTask, TaskBoardServer.DeleteTask),
		unary(MethodGetProfile, TaskBoardServer.GetProfile),
		unary(MethodUpdateProfile, TaskBoardServer.UpdateProfile),
		unary(MethodPresignAvatarUpload, TaskBoardServer.PresignAvatarUpload),
		unary(MethodConfirmAvatar, TaskBoardServer.ConfirmAvatar),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "taskboard/v1",
}

// RegisterTaskBoardServer registers srv on s.
func RegisterTaskBoardServer(s grpc.ServiceRegistrar, srv TaskBoardServer) {
	s.RegisterService(&ServiceDesc, srv)
}
