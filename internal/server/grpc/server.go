// Package grpc exposes the server services as the taskboard.v1.TaskBoard
// gRPC service.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/taskboard/internal/logging"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/dmitrijs2005/taskboard/internal/rpc"
	sm "github.com/dmitrijs2005/taskboard/internal/server/models"
	"github.com/dmitrijs2005/taskboard/internal/server/services"
	"google.golang.org/grpc"
)

type UserService interface {
	SignUp(ctx context.Context, email, password, fullName string) (*sm.User, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

type TaskService interface {
	List(ctx context.Context, userID string) ([]models.Task, error)
	Create(ctx context.Context, userID string, in models.TaskInput) (*models.Task, error)
	Update(ctx context.Context, userID, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error)
	PresignAvatarUpload(ctx context.Context, userID, contentType string) (string, string, error)
	ConfirmAvatar(ctx context.Context, userID, key string) (*models.Profile, error)
}

type GRPCServer struct {
	rpc.UnimplementedTaskBoardServer
	address   string
	users     UserService
	tasks     TaskService
	profiles  ProfileService
	logger    logging.Logger
	jwtSecret []byte
}

func NewGRPCServer(a string, l logging.Logger, us UserService, ts TaskService, ps ProfileService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     us,
		tasks:     ts,
		profiles:  ps,
		jwtSecret: []byte(secretKey),
	}
}

// newServer builds the grpc.Server with the interceptor chain and the
// service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(metricsInterceptor, s.accessTokenInterceptor))
	rpc.RegisterTaskBoardServer(srv, s)
	return srv
}

// Run serves until ctx is cancelled, then stops gracefully.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run over an existing listener.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	<-stopped
	return nil
}
