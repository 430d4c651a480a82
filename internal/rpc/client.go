package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// TaskBoardClient is the client stub of the TaskBoard service. Every call is
// sent with the JSON content-subtype.
type TaskBoardClient struct {
	cc grpc.ClientConnInterface
}

func NewTaskBoardClient(cc grpc.ClientConnInterface) *TaskBoardClient {
	return &TaskBoardClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *TaskBoardClient) SignUp(ctx context.Context, in *SignUpRequest, opts ...grpc.CallOption) (*SignUpResponse, error) {
	return invoke[SignUpResponse](ctx, c.cc, MethodSignUp, in, opts)
}

func (c *TaskBoardClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *TaskBoardClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *TaskBoardClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *TaskBoardClient) ListTasks(ctx context.Context, in *ListTasksRequest, opts ...grpc.CallOption) (*ListTasksResponse, error) {
	return invoke[ListTasksResponse](ctx, c.cc, MethodListTasks, in, opts)
}

func (c *TaskBoardClient) CreateTask(ctx context.Context, in *CreateTaskRequest, opts ...grpc.CallOption) (*CreateTaskResponse, error) {
	return invoke[CreateTaskResponse](ctx, c.cc, MethodCreateTask, in, opts)
}

func (c *TaskBoardClient) UpdateTask(ctx context.Context, in *UpdateTaskRequest, opts ...grpc.CallOption) (*UpdateTaskResponse, error) {
	return invoke[UpdateTaskResponse](ctx, c.cc, MethodUpdateTask, in, opts)
}

func (c *TaskBoardClient) DeleteTask(ctx context.Context, in *DeleteTaskRequest, opts ...grpc.CallOption) (*DeleteTaskResponse, error) {
	return invoke[DeleteTaskResponse](ctx, c.cc, MethodDeleteTask, in, opts)
}

func (c *TaskBoardClient) GetProfile(ctx context.Context, in *GetProfileRequest, opts ...grpc.CallOption) (*GetProfileResponse, error) {
	return invoke[GetProfileResponse](ctx, c.cc, MethodGetProfile, in, opts)
}

func (c *TaskBoardClient) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UpdateProfileResponse, error) {
	return invoke[UpdateProfileResponse](ctx, c.cc, MethodUpdateProfile, in, opts)
}

func (c *TaskBoardClient) PresignAvatarUpload(ctx context.Context, in *PresignAvatarUploadRequest, opts ...grpc.CallOption) (*PresignAvatarUploadResponse, error) {
	return invoke[PresignAvatarUploadResponse](ctx, c.cc, MethodPresignAvatarUpload, in, opts)
}

func (c *TaskBoardClient) ConfirmAvatar(ctx context.Context, in *ConfirmAvatarRequest, opts ...grpc.CallOption) (*ConfirmAvatarResponse, error) {
	return invoke[ConfirmAvatarResponse](ctx, c.cc, MethodConfirmAvatar, in, opts)
}
