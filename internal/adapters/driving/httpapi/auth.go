package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/granthika-labs/granthika/internal/core/domain"
)

// sessionCookie is the cookie carrying the signed session token.
const sessionCookie = "granthika_session"

// userIDKey is the echo context key for the authenticated user ID.
const userIDKey = "userID"

type registerRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	user, err := s.auth.Register(c.Request().Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		return err
	}

	if err := s.setSession(c, user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	user, err := s.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	if err := s.setSession(c, user.ID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

type checkEmailRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleCheckEmail(c echo.Context) error {
	var req checkEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	available, err := s.auth.EmailAvailable(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"available": available})
}

func (s *Server) handleLogout(c echo.Context) error {
	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
	return c.NoContent(http.StatusOK)
}

func (s *Server) handleMe(c echo.Context) error {
	user, err := s.auth.GetUser(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// setSession signs a JWT for the user and sets it as an HTTP-only
// cookie. Tokens carry only the user ID; everything else is looked up
// per request.
func (s *Server) setSession(c echo.Context, userID int64) error {
	ttl := time.Duration(s.opts.SessionHours) * time.Hour
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.opts.JWTSecret)
	if err != nil {
		return fmt.Errorf("signing session token: %w", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// requireSession rejects requests without a valid session cookie.
func (s *Server) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		userID, err := s.sessionUserID(c)
		if err != nil {
			return domain.ErrUnauthorized
		}
		c.Set(userIDKey, userID)
		return next(c)
	}
}

// optionalSession attaches the user ID when a valid session is present
// but lets anonymous requests through. Handlers decide what anonymous
// users may see.
func (s *Server) optionalSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if userID, err := s.sessionUserID(c); err == nil {
			c.Set(userIDKey, userID)
		}
		return next(c)
	}
}

func (s *Server) sessionUserID(c echo.Context) (int64, error) {
	cookie, err := c.Cookie(sessionCookie)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}

	token, err := jwt.ParseWithClaims(cookie.Value, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.opts.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return 0, domain.ErrUnauthorized
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, domain.ErrUnauthorized
	}
	return userID, nil
}

// currentUserID returns the authenticated user set by requireSession.
func currentUserID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}

// maybeUserID returns the user ID and whether a session was present.
func maybeUserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(userIDKey).(int64)
	return id, ok
}
