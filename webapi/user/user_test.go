package user_test

import (
	"fmt"
	"testing"

	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type UserTestSuite struct {
	testutils.E2ETestSuite
	member      *dto.UserRead
	memberToken string
	adminToken  string
}

func (s *UserTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	s.member = s.CreateTestUser(user.RoleUser)
	s.memberToken = s.LoginUser(s.member)
	s.adminToken = s.LoginUser(s.CreateTestUser(user.RoleAdmin))
}

func TestUserSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}

func (s *UserTestSuite) TestCreateUser() {
	body := `{"firstName":"Grace","lastName":"Hopper","email":"Grace@Example.com","password":"cobol-1959","role":"admin"}`

	resp := s.MakeRequest(fiber.MethodPost, "/users", body, s.memberToken)
	s.Equal(fiber.StatusForbidden, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodPost, "/users", body, s.adminToken)
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var created dto.UserRead
	s.DecodeResponse(resp, &created)
	s.Equal("grace@example.com", created.Email)
	s.Equal("admin", created.Role)

	resp = s.MakeRequest(fiber.MethodPost, "/users", body, s.adminToken)
	s.Equal(fiber.StatusConflict, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodPost, "/users", `{"email":"bad"}`, s.adminToken)
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *UserTestSuite) TestGetUser() {
	path := "/users/" + s.member.ID.String()

	resp := s.MakeRequest(fiber.MethodGet, path, "", s.memberToken)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var got dto.UserRead
	s.DecodeResponse(resp, &got)
	s.Equal(s.member.Email, got.Email)

	other := s.CreateTestUser(user.RoleUser)
	resp = s.MakeRequest(fiber.MethodGet, "/users/"+other.ID.String(), "", s.memberToken)
	s.Equal(fiber.StatusForbidden, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodGet, "/users/"+other.ID.String(), "", s.adminToken)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodGet, "/users/"+uuid.NewString(), "", s.adminToken)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodGet, "/users/email/"+s.member.Email, "", s.adminToken)
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodGet, "/users/email/"+s.member.Email, "", s.memberToken)
	s.Equal(fiber.StatusForbidden, resp.StatusCode)
}

func (s *UserTestSuite) TestListUsers() {
	resp := s.MakeRequest(fiber.MethodGet, "/users?page=1&pageSize=10", "", s.adminToken)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var users []dto.UserRead
	s.DecodeResponse(resp, &users)
	s.Len(users, 2)

	resp = s.MakeRequest(fiber.MethodGet, "/users", "", s.memberToken)
	s.Equal(fiber.StatusForbidden, resp.StatusCode)
}

func (s *UserTestSuite) TestUpdateUser() {
	path := "/users/" + s.member.ID.String()

	s.Run("self update", func() {
		resp := s.MakeRequest(fiber.MethodPatch, path, `{"firstName":"Updated"}`, s.memberToken)
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		var updated dto.UserRead
		s.DecodeResponse(resp, &updated)
		s.Equal("Updated", updated.FirstName)
	})

	s.Run("users cannot promote themselves", func() {
		resp := s.MakeRequest(fiber.MethodPatch, path, `{"role":"admin"}`, s.memberToken)
		s.Equal(fiber.StatusForbidden, resp.StatusCode)
		pd := s.DecodeProblem(resp)
		s.Equal("Only admins can change role or status", pd.Detail)
	})

	s.Run("users cannot update others", func() {
		other := s.CreateTestUser(user.RoleUser)
		resp := s.MakeRequest(fiber.MethodPatch, "/users/"+other.ID.String(), `{"firstName":"X"}`, s.memberToken)
		s.Equal(fiber.StatusForbidden, resp.StatusCode)
	})

	s.Run("invalid field", func() {
		resp := s.MakeRequest(fiber.MethodPatch, path, `{"email":"not-an-email"}`, s.memberToken)
		s.Equal(fiber.StatusBadRequest, resp.StatusCode)
	})

	s.Run("admin promotes", func() {
		resp := s.MakeRequest(fiber.MethodPatch, path, `{"role":"admin"}`, s.adminToken)
		s.Require().Equal(fiber.StatusOK, resp.StatusCode)
		var updated dto.UserRead
		s.DecodeResponse(resp, &updated)
		s.Equal("admin", updated.Role)

		// the old token still carries the user role until it is refreshed
		resp = s.MakeRequest(fiber.MethodGet, "/users", "", s.memberToken)
		s.Equal(fiber.StatusForbidden, resp.StatusCode)
	})
}

func (s *UserTestSuite) TestDeleteUser() {
	owner := s.CreateTestUser(user.RoleUser)
	s.Env.OpenAccount(s.T(), owner.ID, "0")

	resp := s.MakeRequest(fiber.MethodDelete, "/users/"+owner.ID.String(), "", s.memberToken)
	s.Equal(fiber.StatusForbidden, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodDelete, "/users/"+owner.ID.String(), "", s.adminToken)
	s.Equal(fiber.StatusConflict, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodDelete, "/users/"+s.member.ID.String(), "", s.adminToken)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodDelete, "/users/"+s.member.ID.String(), "", s.adminToken)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	// tokens of deleted users no longer reach their data
	resp = s.MakeRequest(fiber.MethodGet, fmt.Sprintf("/users/%s", s.member.ID), "", s.memberToken)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}
