//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"equipsched/internal/domain/user"
	"equipsched/internal/handler/dto/request"
	"equipsched/tests/common/authtest"
	"equipsched/tests/common/dbtest"
	"equipsched/tests/common/httptest"
	"equipsched/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL   = "/api/v1/auth/login"
	logoutURL  = "/api/v1/auth/logout"
	refreshURL = "/api/v1/auth/refresh"
	meURL      = "/api/v1/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
	jwtHelper *authtest.JWTHelper
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwtHelper = authtest.NewJWTHelper(s.Config.JWT)
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "manager@example.com", string(user.RoleManager))
	dbtest.CreateTestUser(s.T(), s.DB, "operator@example.com", string(user.RoleOperator))
	dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", string(user.RoleOperator))

	ctx := s.T().Context()
	_, err := s.DB.Exec(ctx, "UPDATE users SET is_active = false WHERE email = 'inactive@example.com'")
	require.NoError(s.T(), err)
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{
			name:           "valid credentials",
			email:          "manager@example.com",
			password:       "password123",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown user",
			email:          "nonexistent@example.com",
			password:       "password123",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong password",
			email:          "manager@example.com",
			password:       "wrongpassword",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "deactivated account",
			email:          "inactive@example.com",
			password:       "password123",
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			t := s.T()

			w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
				request.LoginRequest{Email: tt.email, Password: tt.password}, "")
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.expectedStatus == http.StatusOK {
				accessCookie := httptest.ExtractCookie(w, "access_token")
				require.NotNil(t, accessCookie)
				require.NotEmpty(t, accessCookie.Value)
				refreshCookie := httptest.ExtractCookie(w, "refresh_token")
				require.NotNil(t, refreshCookie)
				require.NotEmpty(t, refreshCookie.Value)
			}
		})
	}
}

func (s *authSuite) TestMe() {
	s.Run("returns the logged-in user", func() {
		t := s.T()

		token := authtest.LoginUser(t, s.Router, "operator@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var body map[string]any
		err := httptest.DecodeResponseBody(t, w.Body, &body)
		require.NoError(t, err)
		require.Equal(t, "operator@example.com", body["email"])
		require.Equal(t, "operator", body["role"])
	})

	s.Run("rejects an expired token", func() {
		t := s.T()

		expired := s.jwtHelper.CreateExpiredToken(t, uuid.New(), user.RoleOperator)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, expired)
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})

	s.Run("rejects a token signed with the wrong key", func() {
		t := s.T()

		cfg := s.Config.JWT
		cfg.Secret = "other-secret-key"
		forged := authtest.NewJWTHelper(cfg).GenerateToken(t, uuid.New(), user.RoleAdmin)

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, forged)
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})

	s.Run("rejects missing credentials", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestRefresh() {
	s.Run("rotates the token pair from the refresh cookie", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "operator@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		cookies := httptest.ExtractCookies(w)

		rw := httptest.PerformRequestWithCookies(t, s.Router, http.MethodPost, refreshURL, nil, cookies, "")
		require.Equal(t, http.StatusOK, rw.Code, rw.Body.String())

		var body map[string]string
		err := httptest.DecodeResponseBody(t, rw.Body, &body)
		require.NoError(t, err)
		require.NotEmpty(t, body["access_token"])

		newRefresh := httptest.ExtractCookie(rw, "refresh_token")
		require.NotNil(t, newRefresh)
		require.NotEmpty(t, newRefresh.Value)
	})

	s.Run("rejects a garbage refresh token", func() {
		t := s.T()

		rw := httptest.PerformRequest(t, s.Router, http.MethodPost, refreshURL,
			map[string]string{"refresh_token": "not-a-jwt"}, "")
		require.Equal(t, http.StatusUnauthorized, rw.Code, rw.Body.String())
	})
}

func (s *authSuite) TestLogout() {
	s.Run("clears the auth cookies", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "operator@example.com", Password: "password123"}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		cookies := httptest.ExtractCookies(w)

		authtest.LogoutUser(t, s.Router, cookies)
	})
}
