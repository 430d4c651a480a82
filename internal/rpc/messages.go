package rpc

import "github.com/dmitrijs2005/taskboard/internal/models"

type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type SignUpResponse struct {
	UserID string `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type ListTasksRequest struct{}

type ListTasksResponse struct {
	Tasks []models.Task `json:"tasks"`
}

type CreateTaskRequest struct {
	Task models.TaskInput `json:"task"`
}

type CreateTaskResponse struct {
	Task models.Task `json:"task"`
}

type UpdateTaskRequest struct {
	ID    string           `json:"id"`
	Patch models.TaskPatch `json:"patch"`
}

type UpdateTaskResponse struct {
	Task models.Task `json:"task"`
}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type DeleteTaskResponse struct{}

type GetProfileRequest struct{}

// GetProfileResponse carries a nil Profile when the user has none.
type GetProfileResponse struct {
	Profile *models.Profile `json:"profile,omitempty"`
}

type UpdateProfileRequest struct {
	Patch models.ProfilePatch `json:"patch"`
}

type UpdateProfileResponse struct {
	Profile models.Profile `json:"profile"`
}

type PresignAvatarUploadRequest struct {
	ContentType string `json:"content_type"`
}

type PresignAvatarUploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type ConfirmAvatarRequest struct {
	Key string `json:"key"`
}

type ConfirmAvatarResponse struct {
	Profile models.Profile `json:"profile"`
}
