package auth

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Suyog-Rijal/Makeover-me-backend/internal/httputil"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/logging"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/ratelimit"
	"github.com/Suyog-Rijal/Makeover-me-backend/internal/user"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service      *Service
	rateLimiter  *ratelimit.Limiter
	isProduction bool
	refreshTTL   time.Duration
}

// NewHandler builds the auth endpoints. rateLimiter may be nil to disable throttling.
func NewHandler(service *Service, rateLimiter *ratelimit.Limiter, isProduction bool, refreshTTL time.Duration) *Handler {
	return &Handler{
		service:      service,
		rateLimiter:  rateLimiter,
		isProduction: isProduction,
		refreshTTL:   refreshTTL,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest represents the token refresh request body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// GoogleLoginRequest carries a Google ID token from the frontend.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// SignupResponse represents the signup response
type SignupResponse struct {
	Detail           string       `json:"detail"`
	Data             user.Summary `json:"data"`
	VerificationLink string       `json:"verification_link,omitempty"`
}

// TokenResponse is returned by every endpoint that starts a session.
// refresh_token is only present in development; production uses the cookie.
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	Data         *user.Summary `json:"data,omitempty"`
	Detail       string        `json:"detail,omitempty"`
}

// Signup handles account creation
// @Summary      Register a new user
// @Description  Create a password account. A verification link is emailed; in development it is also returned.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body user.NewAccount true "Signup payload"
// @Success      201 {object} SignupResponse
// @Failure      400 {object} httputil.ErrorResponse "Validation error or duplicate email"
// @Failure      429 {object} httputil.ErrorResponse "Too many requests"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.throttled(w, r, ratelimit.PurposeSignup) {
		return
	}

	var req user.NewAccount
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid signup request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	result, err := h.service.Signup(r.Context(), req)
	if err != nil {
		var conflict *user.ConflictError
		if errors.As(err, &conflict) {
			logger.Warn("signup failed: email already registered")
			httputil.RespondValidation(w, conflict.Message, conflict.Fields())
			return
		}
		var invalid *user.ValidationError
		if errors.As(err, &invalid) {
			logger.Warn("signup failed: validation error")
			httputil.RespondValidation(w, "Invalid input.", invalid.Fields)
			return
		}
		logger.Error("signup failed: internal error", "error", err.Error())
		httputil.RespondInternal(w)
		return
	}

	logger.Info("user signed up", "user_id", result.User.ID)

	resp := SignupResponse{
		Detail: "Account created successfully. Please check your email for verification link.",
		Data:   result.User.Summary(),
	}
	if !h.isProduction {
		resp.VerificationLink = result.VerificationLink
	}
	httputil.RespondJSON(w, resp, http.StatusCreated)
}

// Login handles user login
// @Summary      User login
// @Description  Authenticate a password account and receive a session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid credentials, disabled, google or unverified account"
// @Failure      429 {object} httputil.ErrorResponse "Too many requests"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if h.throttled(w, r, ratelimit.PurposeLogin) {
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid login request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	u, tokens, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn("login failed: invalid credentials")
			httputil.RespondErrorWithCode(w, "Invalid email or password.", httputil.CodeInvalidCredentials, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrAccountDisabled) {
			logger.Warn("login failed: account disabled")
			httputil.RespondErrorWithCode(w, "This account has been disabled. Please contact support.", httputil.CodeAccountDisabled, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrGoogleAccountRequired) {
			logger.Warn("login failed: google account")
			httputil.RespondErrorWithCode(w, "This email is associated with a Google account. Please log in using Google.", httputil.CodeGoogleAccount, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrEmailUnverified) {
			logger.Warn("login failed: email not verified")
			httputil.RespondErrorWithCode(w, "Email is not verified. Please check your inbox and verify the email clicking the verification link.", httputil.CodeEmailUnverified, http.StatusBadRequest)
			return
		}
		logger.Error("login failed: internal error", "error", err.Error())
		httputil.RespondInternal(w)
		return
	}

	logger.Info("user logged in", "user_id", u.ID)
	h.respondSession(w, u, tokens, "Login successful", http.StatusOK)
}

// Refresh handles access token refresh
// @Summary      Refresh access token
// @Description  Exchange a refresh token from the `token` cookie or the body for a new session
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest false "Refresh token (development)"
// @Success      200 {object} TokenResponse
// @Failure      401 {object} httputil.ErrorResponse "Missing, invalid or expired refresh token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	refreshToken := readRefreshToken(r)

	u, tokens, err := h.service.Refresh(r.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, ErrMissingToken) {
			logger.Warn("token refresh failed: token missing")
			httputil.RespondErrorWithCode(w, "You are not authorized to make this request.", httputil.CodeUnauthorized, http.StatusUnauthorized)
			return
		}
		if errors.Is(err, ErrInvalidOrExpired) {
			logger.Warn("token refresh failed: invalid or expired token")
			httputil.RespondErrorWithCode(w, "Invalid or expired refresh token.", httputil.CodeTokenInvalid, http.StatusUnauthorized)
			return
		}
		if errors.Is(err, ErrUnknownUser) {
			logger.Warn("token refresh failed: unknown user")
			httputil.RespondErrorWithCode(w, "User not found.", httputil.CodeUnauthorized, http.StatusUnauthorized)
			return
		}
		if errors.Is(err, ErrAccountDisabled) {
			logger.Warn("token refresh failed: account disabled")
			httputil.RespondErrorWithCode(w, "This account has been disabled. Please contact support.", httputil.CodeAccountDisabled, http.StatusUnauthorized)
			return
		}
		logger.Error("token refresh failed: internal error", "error", err.Error())
		httputil.RespondInternal(w)
		return
	}

	if !tokens.Rotated {
		httputil.RespondJSON(w, TokenResponse{AccessToken: tokens.AccessToken}, http.StatusOK)
		return
	}

	logger.Debug("session rotated", "user_id", u.ID)
	h.respondSession(w, u, tokens, "Access token refreshed successfully", http.StatusOK)
}

// VerifyEmail handles email verification
// @Summary      Verify email address
// @Description  Confirm an email address with the signed link token and start a session
// @Tags         auth
// @Produce      json
// @Param        token query string true "Verification token"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} httputil.ErrorResponse "Expired or invalid token"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/verify-email [get]
func (h *Handler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	result, err := h.service.VerifyEmail(r.Context(), r.URL.Query().Get("token"))
	if err != nil {
		if errors.Is(err, ErrVerificationExpired) {
			logger.Warn("email verification failed: token expired")
			httputil.RespondErrorWithCode(w, "Link has expired.", httputil.CodeTokenExpired, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrVerificationInvalid) {
			logger.Warn("email verification failed: invalid token")
			httputil.RespondErrorWithCode(w, "Invalid token.", httputil.CodeTokenInvalid, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrUserNotFound) {
			logger.Warn("email verification failed: user not found")
			httputil.RespondErrorWithCode(w, "User not found.", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("email verification failed: internal error", "error", err.Error())
		httputil.RespondInternal(w)
		return
	}

	if result.AlreadyVerified {
		httputil.RespondJSON(w, httputil.MessageResponse{Detail: "Account is already verified."}, http.StatusOK)
		return
	}

	logger.Info("email verified", "user_id", result.User.ID)
	h.respondSession(w, result.User, result.Tokens, "Account has been verified successfully. You can continue your journey", http.StatusOK)
}

// Me returns the authenticated user's profile
// @Summary      Current user
// @Description  Profile of the user behind the bearer access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} user.Profile
// @Failure      401 {object} httputil.ErrorResponse "Not authenticated"
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "Authentication credentials were not provided.", httputil.CodeUnauthorized, http.StatusUnauthorized)
		return
	}

	u, err := h.service.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			httputil.RespondErrorWithCode(w, "User not found.", httputil.CodeUnauthorized, http.StatusUnauthorized)
			return
		}
		logger.Error("failed to load profile", "error", err.Error())
		httputil.RespondInternal(w)
		return
	}

	httputil.RespondJSON(w, u.Profile(), http.StatusOK)
}

// GoogleLogin signs in with a Google ID token
// @Summary      Google login
// @Description  Verify a Google ID token and start a session, creating the account on first use
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body GoogleLoginRequest true "Google ID token"
// @Success      200 {object} TokenResponse
// @Failure      400 {object} httputil.ErrorResponse "Disabled account or password account exists"
// @Failure      401 {object} httputil.ErrorResponse "Invalid Google token"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /auth/google [post]
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req GoogleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid google login request body", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid request body.", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}

	u, tokens, err := h.service.GoogleLogin(r.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, ErrInvalidGoogleToken) {
			logger.Warn("google login failed: invalid token")
			httputil.RespondErrorWithCode(w, "Invalid Google token.", httputil.CodeTokenInvalid, http.StatusUnauthorized)
			return
		}
		if errors.Is(err, ErrAccountDisabled) {
			logger.Warn("google login failed: account disabled")
			httputil.RespondErrorWithCode(w, "This account has been disabled. Please contact support.", httputil.CodeAccountDisabled, http.StatusBadRequest)
			return
		}
		if errors.Is(err, ErrPasswordAccountExists) {
			logger.Warn("google login failed: password account exists")
			httputil.RespondErrorWithCode(w, "An account with this email already exists. Please log in with your email and password.", httputil.CodePasswordAccount, http.StatusBadRequest)
			return
		}
		logger.Error("google login failed: internal error", "error", err.Error())
		httputil.RespondInternal(w)
		return
	}

	logger.Info("user logged in with google", "user_id", u.ID)
	h.respondSession(w, u, tokens, "Login successful", http.StatusOK)
}

// Logout handles user logout
// @Summary      User logout
// @Description  Blacklist the refresh token and clear the cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest false "Refresh token (development)"
// @Success      200 {object} httputil.MessageResponse
// @Router       /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if err := h.service.Logout(r.Context(), readRefreshToken(r)); err != nil {
		// Continue - still clear the cookie
		logger.Warn("failed to revoke refresh token", "error", err.Error())
	}

	ClearRefreshCookie(w, h.isProduction)

	httputil.RespondJSON(w, httputil.MessageResponse{Detail: "Logged out successfully"}, http.StatusOK)
}

// respondSession writes a token response. In production the refresh token
// goes into the cookie only.
func (h *Handler) respondSession(w http.ResponseWriter, u *user.User, tokens *AuthTokens, detail string, status int) {
	summary := u.Summary()
	resp := TokenResponse{
		AccessToken: tokens.AccessToken,
		Data:        &summary,
		Detail:      detail,
	}

	if h.isProduction {
		SetRefreshCookie(w, tokens.RefreshToken, true, h.refreshTTL)
	} else {
		resp.RefreshToken = tokens.RefreshToken
	}

	httputil.RespondJSON(w, resp, status)
}

// throttled enforces the per-IP window for purpose and writes the 429 itself.
// Limiter failures never block a request.
func (h *Handler) throttled(w http.ResponseWriter, r *http.Request, purpose string) bool {
	if h.rateLimiter == nil {
		return false
	}
	logger := logging.GetLoggerFromContext(r.Context())

	ip := getClientIP(r)
	allowed, err := h.rateLimiter.AllowIPRequestWithPurpose(r.Context(), ip, purpose)
	if err != nil {
		logger.WithError(err).Error("failed to apply IP rate limit")
		return false
	}
	if !allowed {
		logger.Warn("IP rate limit exceeded", "ip", ip, "purpose", purpose)
		httputil.RespondErrorWithCode(w, "Request was throttled. Please try again later.", httputil.CodeTooManyRequests, http.StatusTooManyRequests)
		return true
	}
	return false
}

// readRefreshToken prefers the JSON body and falls back to the cookie.
func readRefreshToken(r *http.Request) string {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && req.RefreshToken != "" {
		return req.RefreshToken
	}
	token, err := GetRefreshTokenFromCookie(r)
	if err != nil {
		return ""
	}
	return token
}

// getClientIP extracts the client IP address from the request.
// RealIP middleware has already applied X-Forwarded-For / X-Real-IP.
func getClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
