package transaction_test

import (
	"fmt"
	"testing"

	"github.com/amirasaad/bankapi/pkg/domain/user"
	"github.com/amirasaad/bankapi/pkg/dto"
	"github.com/amirasaad/bankapi/webapi/testutils"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"
)

type TransactionTestSuite struct {
	testutils.E2ETestSuite
	owner      *dto.UserRead
	ownerToken string
	adminToken string
	account    *dto.AccountRead
}

func (s *TransactionTestSuite) SetupTest() {
	s.E2ETestSuite.SetupTest()
	s.owner = s.CreateTestUser(user.RoleUser)
	s.ownerToken = s.LoginUser(s.owner)
	s.adminToken = s.LoginUser(s.CreateTestUser(user.RoleAdmin))
	s.account = s.Env.OpenAccount(s.T(), s.owner.ID, "100")
}

func TestTransactionSuite(t *testing.T) {
	suite.Run(t, new(TransactionTestSuite))
}

func (s *TransactionTestSuite) create(body, token string) (int, dto.TransactionRead) {
	resp := s.MakeRequest(fiber.MethodPost, "/transactions", body, token)
	var tx dto.TransactionRead
	if resp.StatusCode == fiber.StatusCreated {
		s.DecodeResponse(resp, &tx)
	}
	return resp.StatusCode, tx
}

func (s *TransactionTestSuite) TestCreate() {
	status, tx := s.create(fmt.Sprintf(`{"accountId":%q,"type":"deposit","amount":20}`, s.account.ID), s.ownerToken)
	s.Require().Equal(fiber.StatusCreated, status)
	s.Equal("completed", tx.Status)
	s.Equal("USD", tx.Currency)
	s.Equal("120", s.Env.Balance(s.T(), s.account.ID).String())

	status, _ = s.create(fmt.Sprintf(`{"accountId":%q,"type":"refund","amount":20}`, s.account.ID), s.ownerToken)
	s.Equal(fiber.StatusBadRequest, status)

	status, _ = s.create(fmt.Sprintf(`{"accountId":%q,"type":"transfer","amount":20}`, s.account.ID), s.ownerToken)
	s.Equal(fiber.StatusBadRequest, status)

	status, _ = s.create(fmt.Sprintf(`{"accountId":%q,"type":"withdrawal","amount":500}`, s.account.ID), s.ownerToken)
	s.Equal(fiber.StatusUnprocessableEntity, status)
	s.Equal("120", s.Env.Balance(s.T(), s.account.ID).String())

	status, _ = s.create(fmt.Sprintf(`{"accountId":%q,"type":"deposit","amount":20}`, s.account.ID), "")
	s.Equal(fiber.StatusUnauthorized, status)
}

func (s *TransactionTestSuite) TestReadAccess() {
	_, tx := s.create(fmt.Sprintf(`{"accountId":%q,"type":"deposit","amount":5}`, s.account.ID), s.ownerToken)
	path := "/transactions/" + tx.ID.String()

	resp := s.MakeRequest(fiber.MethodGet, path, "", s.ownerToken)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var got dto.TransactionRead
	s.DecodeResponse(resp, &got)
	s.Equal(tx.ID, got.ID)

	strangerToken := s.LoginUser(s.CreateTestUser(user.RoleUser))
	resp = s.MakeRequest(fiber.MethodGet, path, "", strangerToken)
	s.Equal(fiber.StatusForbidden, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodGet, "/transactions/account/"+s.account.ID.String(), "", strangerToken)
	s.Equal(fiber.StatusForbidden, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodGet, "/transactions/account/"+s.account.ID.String(), "", s.ownerToken)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var history []dto.TransactionRead
	s.DecodeResponse(resp, &history)
	s.Len(history, 1)

	resp = s.MakeRequest(fiber.MethodGet, "/transactions", "", s.ownerToken)
	s.Equal(fiber.StatusForbidden, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodGet, "/transactions", "", s.adminToken)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	s.DecodeResponse(resp, &history)
	s.Len(history, 1)
}

func (s *TransactionTestSuite) TestAdministration() {
	_, completed := s.create(fmt.Sprintf(`{"accountId":%q,"type":"deposit","amount":5}`, s.account.ID), s.ownerToken)
	s.create(fmt.Sprintf(`{"accountId":%q,"type":"withdrawal","amount":1000}`, s.account.ID), s.ownerToken)

	resp := s.MakeRequest(fiber.MethodGet, "/transactions/account/"+s.account.ID.String(), "", s.adminToken)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var history []dto.TransactionRead
	s.DecodeResponse(resp, &history)
	s.Require().Len(history, 2)
	var failed dto.TransactionRead
	for _, tx := range history {
		if tx.Status == "failed" {
			failed = tx
		}
	}
	s.Require().Equal("failed", failed.Status)

	completedPath := "/transactions/" + completed.ID.String()
	resp = s.MakeRequest(fiber.MethodPatch, completedPath, `{"notes":"edited"}`, s.ownerToken)
	s.Equal(fiber.StatusForbidden, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodPatch, completedPath, `{"notes":"edited"}`, s.adminToken)
	s.Equal(fiber.StatusConflict, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodDelete, completedPath, "", s.adminToken)
	s.Equal(fiber.StatusConflict, resp.StatusCode)

	failedPath := "/transactions/" + failed.ID.String()
	resp = s.MakeRequest(fiber.MethodPatch, failedPath, `{"notes":"customer notified","status":"completed"}`, s.adminToken)
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var edited dto.TransactionRead
	s.DecodeResponse(resp, &edited)
	s.Equal("customer notified", edited.Notes)
	s.Equal("failed", edited.Status)

	resp = s.MakeRequest(fiber.MethodDelete, failedPath, "", s.adminToken)
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	resp = s.MakeRequest(fiber.MethodGet, failedPath, "", s.adminToken)
	s.Equal(fiber.StatusNotFound, resp.StatusCode)
}
