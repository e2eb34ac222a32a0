package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/core/services"
	"github.com/SscSPs/cherry_dining/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountAdminServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAdminRepository
	service  portssvc.AccountAdminSvc
}

func (suite *AccountAdminServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAdminRepository)
	suite.service = services.NewAccountAdminService(suite.mockRepo)
}

func TestAccountAdminServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountAdminServiceTestSuite))
}

func (suite *AccountAdminServiceTestSuite) TestDelete_RefusesSelf() {
	_, err := suite.service.ExecuteAccountAction(context.Background(), dto.AccountActionRequest{Action: "delete", UserID: "admin-1"}, "admin-1")

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAdmin", mock.Anything, mock.Anything)
}

func (suite *AccountAdminServiceTestSuite) TestDelete_Other() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteAdmin", ctx, "admin-2").Return(nil).Once()

	resp, err := suite.service.ExecuteAccountAction(ctx, dto.AccountActionRequest{Action: "delete", UserID: "admin-2"}, "admin-1")

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountAdminServiceTestSuite) TestCreate_PartialFailureKeepsAccount() {
	ctx := context.Background()
	role := "manager"
	req := dto.AccountActionRequest{Action: "create", Email: "New@Cherry.test", Password: "password1", FullName: strPtr("New Manager"), Role: &role}

	suite.mockRepo.On("FindCredentialsByEmail", ctx, "new@cherry.test").Return(nil, errNotFound).Once()
	suite.mockRepo.On("SaveCredentials", ctx, mock.AnythingOfType("domain.AdminCredentials")).Return(nil).Once()
	suite.mockRepo.On("SaveProfile", ctx, mock.AnythingOfType("domain.AdminProfile")).Return(nil).Once()
	suite.mockRepo.On("UpsertRole", ctx, mock.Anything, domain.RoleManager).Return(errors.New("role table unavailable")).Once()
	suite.mockRepo.On("FindAdminByID", ctx, mock.Anything).Return(&domain.AdminIdentity{ID: "new", Email: "new@cherry.test", FullName: "New Manager"}, nil).Once()

	resp, err := suite.service.ExecuteAccountAction(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.True(resp.Success)
	suite.Require().Len(resp.Warnings, 1)
	suite.Contains(resp.Warnings[0], "role could not be assigned")
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAdmin", mock.Anything, mock.Anything)
}

func (suite *AccountAdminServiceTestSuite) TestUpdate_CreatesRoleWhenAbsent() {
	ctx := context.Background()
	role := "accountant"
	suite.mockRepo.On("FindAdminByID", ctx, "admin-2").Return(&domain.AdminIdentity{ID: "admin-2", FullName: "Old"}, nil).Once()
	suite.mockRepo.On("UpsertRole", ctx, "admin-2", domain.RoleAccountant).Return(nil).Once()

	resp, err := suite.service.ExecuteAccountAction(ctx, dto.AccountActionRequest{Action: "update", UserID: "admin-2", Role: &role}, "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(resp.User.Role)
	suite.Equal("accountant", *resp.User.Role)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveProfile", mock.Anything, mock.Anything)
}

func (suite *AccountAdminServiceTestSuite) TestCreate_RejectsExistingEmail() {
	ctx := context.Background()
	suite.mockRepo.On("FindCredentialsByEmail", ctx, "taken@cherry.test").Return(&domain.AdminCredentials{UserID: "x"}, nil).Once()

	_, err := suite.service.ExecuteAccountAction(ctx, dto.AccountActionRequest{Action: "create", Email: "taken@cherry.test", Password: "password1"}, "admin-1")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}
