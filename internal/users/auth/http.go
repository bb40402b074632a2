// Copyright (c) 2026 MineVale. All rights reserved.
// Author: contato@minevale.com.br

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/minevale/api/internal/platform/constants"
	"github.com/minevale/api/internal/platform/middleware"
	requestutil "github.com/minevale/api/internal/platform/request"
	"github.com/minevale/api/internal/platform/respond"
	"github.com/minevale/api/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
type Handler struct {
	authService *Service
	resolver    *Resolver
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service, resolver *Resolver) *Handler {
	return &Handler{authService: service, resolver: resolver}
}

// Routes returns a [chi.Router] configured with authentication-specific routes.
//
// # Endpoints
//   - POST /register : Creates a new account.
//   - POST /login    : Authenticates and establishes a session.
//   - POST /refresh  : Rotates the refresh token.
//   - POST /logout   : Revokes the session.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)
	router.Post("/refresh", handler.refresh)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Nickname        string `json:"nickname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
register handles the creation of a new player account.

POST /api/v1/auth/register

Response:
  - 201: User: Created account
  - 400: Validation failure (per-field details)
  - 409: Nickname or e-mail already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldNickname, input.Nickname).
		MinLen(FieldNickname, input.Nickname, NicknameMinLen).
		MaxLen(FieldNickname, input.Nickname, NicknameMaxLen).
		Handle(FieldNickname, input.Nickname).
		Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLen).
		MinLen(FieldConfirmPassword, input.ConfirmPassword, PasswordMinLen).
		Equals(FieldConfirmPassword, input.ConfirmPassword, input.Password, "As senhas não conferem")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Nickname:        input.Nickname,
		Email:           input.Email,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, user)
}

/*
login authenticates a player and establishes a session.

POST /api/v1/auth/login

Side effects: sets the session JWT cookie (read by the edge gate) and the
scoped refresh token cookie.

Response:
  - 200: Session payload (access token + user)
  - 401: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLen)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.writeSessionCookies(writer, session)

	respond.OK(writer, map[string]any{
		"access_token": session.AccessToken,
		"user":         session.User,
	})
}

/*
refresh rotates the refresh token and issues a new session pair.

POST /api/v1/auth/refresh
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	refreshToken := refreshTokenFromRequest(request)
	if refreshToken == "" {
		respond.Error(writer, request, validate.RequiredError("refresh_token", "Este campo é obrigatório"))
		return
	}

	session, err := handler.authService.RefreshSession(request.Context(), refreshToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.writeSessionCookies(writer, session)

	respond.OK(writer, map[string]any{
		"access_token": session.AccessToken,
		"user":         session.User,
	})
}

/*
logout revokes the current session and clears both cookies.

POST /api/v1/auth/logout
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	if refreshToken := refreshTokenFromRequest(request); refreshToken != "" {
		if err := handler.authService.Logout(request.Context(), refreshToken); err != nil {
			respond.Error(writer, request, err)
			return
		}
	}

	handler.resolver.ClearSessionCookie(writer)
	clearRefreshCookie(writer)

	respond.NoContent(writer)
}

// # Cookie Plumbing

// writeSessionCookies sets the gate-facing session cookie and the
// auth-scoped refresh cookie for a freshly established session.
func (handler *Handler) writeSessionCookies(writer http.ResponseWriter, session *LoginSession) {
	handler.resolver.SetSessionCookie(writer, session.AccessToken, session.RefreshTokenExpiresAt)

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.RefreshTokenCookiePath,
		Expires:  session.RefreshTokenExpiresAt,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// refreshTokenFromRequest reads the refresh token cookie, if present.
func refreshTokenFromRequest(request *http.Request) string {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// clearRefreshCookie expires the refresh token cookie immediately.
func clearRefreshCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    "",
		Path:     constants.RefreshTokenCookiePath,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}
