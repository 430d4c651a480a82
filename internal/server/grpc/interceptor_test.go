package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/rpc"
	"github.com/dmitrijs2005/taskboard/internal/server/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestServer(secret string) *GRPCServer {
	return NewGRPCServer("", nopLogger{}, &fakeUsers{}, &fakeTasks{}, &fakeProfiles{}, secret)
}

func withToken(tok string) context.Context {
	return metadata.NewIncomingContext(context.Background(),
		metadata.New(map[string]string{common.AccessTokenHeaderName: tok}))
}

func TestInterceptor_PublicMethodsSkipToken(t *testing.T) {
	s := newTestServer("secret")

	for _, m := range []string{rpc.MethodSignUp, rpc.MethodLogin, rpc.MethodRefreshToken, rpc.MethodPing} {
		called := false
		h := func(ctx context.Context, req any) (any, error) {
			called = true
			return "ok", nil
		}
		resp, err := s.accessTokenInterceptor(context.Background(), nil, &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(m)}, h)
		require.NoError(t, err, m)
		assert.True(t, called, m)
		assert.Equal(t, "ok", resp)
	}
}

func TestInterceptor_MissingToken(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(rpc.MethodListTasks)}

	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called when token missing")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(context.Background(), nil, info, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "missing token", status.Convert(err).Message())
}

func TestInterceptor_InvalidAndExpiredTokens(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(rpc.MethodCreateTask)}
	h := func(ctx context.Context, req any) (any, error) {
		t.Fatal("handler should not be called")
		return nil, nil
	}

	_, err := s.accessTokenInterceptor(withToken("not-a-valid-jwt"), nil, info, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "invalid token", status.Convert(err).Message())

	expired, err := auth.GenerateToken("u1", []byte("secret"), -time.Second)
	require.NoError(t, err)
	_, err = s.accessTokenInterceptor(withToken(expired), nil, info, h)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
	assert.Equal(t, "token expired", status.Convert(err).Message())
}

func TestInterceptor_ValidTokenInjectsUserID(t *testing.T) {
	s := newTestServer("secret")
	info := &grpc.UnaryServerInfo{FullMethod: rpc.FullMethod(rpc.MethodListTasks)}

	tok, err := auth.GenerateToken("u-42", []byte("secret"), time.Minute)
	require.NoError(t, err)

	var got string
	h := func(ctx context.Context, req any) (any, error) {
		got, err = userIDFromContext(ctx)
		return nil, err
	}
	_, err = s.accessTokenInterceptor(withToken(tok), nil, info, h)
	require.NoError(t, err)
	assert.Equal(t, "u-42", got)
}

func TestUserIDFromContext_Missing(t *testing.T) {
	_, err := userIDFromContext(context.Background())
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
