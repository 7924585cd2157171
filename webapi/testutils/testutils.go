// Package testutils runs the HTTP API on an in-memory database for handler
// tests.
package testutils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/pkg/service/auth"
	pkgtestutils "github.com/amirasaad/bankapi/pkg/testutils"
	"github.com/amirasaad/bankapi/webapi"
	"github.com/amirasaad/bankapi/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

// E2ETestSuite provides a test suite with a fresh database and app per test.
type E2ETestSuite struct {
	suite.Suite
	Env *pkgtestutils.Env
	App *fiber.App
}

// SetupTest builds a new database and app before each test.
func (s *E2ETestSuite) SetupTest() {
	s.Env = pkgtestutils.NewEnv(s.T())
	s.App = webapi.SetupApp(s.Env.App)
}

// MakeRequest sends a request with an optional JSON body and bearer token.
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.App.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// DecodeResponse reads a success envelope and decodes its data into out.
func (s *E2ETestSuite) DecodeResponse(resp *http.Response, out any) common.Response {
	defer resp.Body.Close() //nolint: errcheck
	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	var envelope struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.Unmarshal(raw, &envelope), string(raw))
	if out != nil {
		s.Require().NoError(json.Unmarshal(envelope.Data, out), string(raw))
	}
	return envelope.Response
}

// DecodeProblem reads a problem details response.
func (s *E2ETestSuite) DecodeProblem(resp *http.Response) common.ProblemDetails {
	defer resp.Body.Close() //nolint: errcheck
	var pd common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

// CreateTestUser stores a user with the given role.
func (s *E2ETestSuite) CreateTestUser(role user.Role) *dto.UserRead {
	return s.Env.CreateUser(s.T(), role)
}

// LoginUser logs in over HTTP and returns the access token.
func (s *E2ETestSuite) LoginUser(u *dto.UserRead) string {
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, u.Email, pkgtestutils.Password)
	resp := s.MakeRequest(fiber.MethodPost, "/auth/login", body, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var data struct {
		Tokens auth.TokenPair `json:"tokens"`
	}
	s.DecodeResponse(resp, &data)
	s.Require().NotEmpty(data.Tokens.AccessToken)
	return data.Tokens.AccessToken
}
