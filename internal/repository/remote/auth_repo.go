package remote

import (
	"context"
	"net/http"

	"go-jobboard-gateway/internal/domain"
)

// authRepository implements domain.AuthGateway against the platform API's
// account endpoints. Tokens and user identities pass through untouched; role
// normalization happens in the usecase layer.
type authRepository struct {
	client *Client
}

func NewAuthRepository(client *Client) domain.AuthGateway {
	return &authRepository{client: client}
}

func (r *authRepository) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	var result domain.AuthResult
	body := map[string]string{"email": email, "password": password}
	if err := r.client.do(ctx, http.MethodPost, "/auth/login", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *authRepository) Register(ctx context.Context, input *domain.RegisterInput) error {
	return r.client.do(ctx, http.MethodPost, "/auth/register", "", input, nil)
}

func (r *authRepository) VerifyEmail(ctx context.Context, email, otp string) (*domain.AuthResult, error) {
	var result domain.AuthResult
	body := map[string]string{"email": email, "otp": otp}
	if err := r.client.do(ctx, http.MethodPost, "/auth/verify-email", "", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *authRepository) ResendOtp(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return r.client.do(ctx, http.MethodPost, "/auth/resend-otp", "", body, nil)
}

func (r *authRepository) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return r.client.do(ctx, http.MethodPost, "/auth/forgot-password", "", body, nil)
}

func (r *authRepository) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{"email": email, "otp": otp, "newPassword": newPassword}
	return r.client.do(ctx, http.MethodPost, "/auth/reset-password", "", body, nil)
}

func (r *authRepository) RefreshToken(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	var pair domain.TokenPair
	body := map[string]string{"refreshToken": refreshToken}
	if err := r.client.do(ctx, http.MethodPost, "/auth/refresh", "", body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}
