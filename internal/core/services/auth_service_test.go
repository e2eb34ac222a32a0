package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/cherry_dining/internal/apperrors"
	"github.com/SscSPs/cherry_dining/internal/core/domain"
	portssvc "github.com/SscSPs/cherry_dining/internal/core/ports/services"
	"github.com/SscSPs/cherry_dining/internal/core/services"
	"github.com/SscSPs/cherry_dining/internal/platform/config"
	"github.com/SscSPs/cherry_dining/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AdminAuthServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAdminRepository
	service  portssvc.AdminAuthSvcFacade
}

func (suite *AdminAuthServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAdminRepository)
	cfg := &config.Config{
		JWTSecret:                  "test-secret",
		JWTIssuer:                  "test",
		JWTExpiryDuration:          time.Hour,
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.service = services.NewAdminAuthService(cfg, suite.mockRepo, &passthroughTx{}, nil)
}

func TestAdminAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AdminAuthServiceTestSuite))
}

func (suite *AdminAuthServiceTestSuite) TestSignIn_Success() {
	ctx := context.Background()
	hash, _ := utils.HashPassword("password1")
	role := domain.RoleSuperAdmin

	suite.mockRepo.On("FindCredentialsByEmail", ctx, "owner@cherry.test").Return(&domain.AdminCredentials{UserID: "a1", PasswordHash: hash}, nil).Once()
	suite.mockRepo.On("FindAdminByID", ctx, "a1").Return(&domain.AdminIdentity{ID: "a1", Email: "owner@cherry.test", Role: &role}, nil).Once()
	suite.mockRepo.On("UpdateRefreshToken", ctx, "a1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()

	session, err := suite.service.SignIn(ctx, " Owner@Cherry.test ", "password1")

	suite.Require().NoError(err)
	suite.Equal("a1", session.Identity.ID)
	userID, _, ok := utils.SplitRefreshToken(session.RefreshToken)
	suite.True(ok)
	suite.Equal("a1", userID)

	claims, err := utils.ParseAndValidateJWT(session.AccessToken, "test-secret")
	suite.Require().NoError(err)
	suite.Equal(domain.KindAdmin, claims.Kind)
	suite.Equal("super_admin", claims.Role)
}

func (suite *AdminAuthServiceTestSuite) TestSignIn_UnknownAndWrongPasswordMatch() {
	ctx := context.Background()
	hash, _ := utils.HashPassword("password1")
	suite.mockRepo.On("FindCredentialsByEmail", ctx, "ghost@cherry.test").Return(nil, errNotFound).Once()
	suite.mockRepo.On("FindCredentialsByEmail", ctx, "owner@cherry.test").Return(&domain.AdminCredentials{UserID: "a1", PasswordHash: hash}, nil).Once()

	_, unknownErr := suite.service.SignIn(ctx, "ghost@cherry.test", "password1")
	_, wrongErr := suite.service.SignIn(ctx, "owner@cherry.test", "password2")

	suite.ErrorIs(unknownErr, apperrors.ErrInvalidCredentials)
	suite.Equal(unknownErr, wrongErr)
}

func (suite *AdminAuthServiceTestSuite) TestRefresh_Expired() {
	ctx := context.Background()
	expired := time.Now().Add(-time.Minute)
	suite.mockRepo.On("FindCredentialsByID", ctx, "a1").Return(&domain.AdminCredentials{
		UserID:                 "a1",
		RefreshTokenHash:       utils.HashRefreshToken("secret"),
		RefreshTokenExpiryTime: &expired,
	}, nil).Once()

	_, err := suite.service.Refresh(ctx, utils.ComposeRefreshToken("a1", "secret"))

	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
}

func (suite *AdminAuthServiceTestSuite) TestRefresh_Mismatch() {
	ctx := context.Background()
	valid := time.Now().Add(time.Hour)
	suite.mockRepo.On("FindCredentialsByID", ctx, "a1").Return(&domain.AdminCredentials{
		UserID:                 "a1",
		RefreshTokenHash:       utils.HashRefreshToken("secret"),
		RefreshTokenExpiryTime: &valid,
	}, nil).Once()

	_, err := suite.service.Refresh(ctx, utils.ComposeRefreshToken("a1", "guess"))
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)

	_, err = suite.service.Refresh(ctx, "garbage")
	suite.ErrorIs(err, apperrors.ErrInvalidRefreshToken)
}

func (suite *AdminAuthServiceTestSuite) TestSignInWithGoogle_NotConfigured() {
	_, err := suite.service.SignInWithGoogle(context.Background(), "token")
	suite.Error(err)
}

func (suite *AdminAuthServiceTestSuite) TestSignUp_DuplicateEmail() {
	ctx := context.Background()
	suite.mockRepo.On("FindCredentialsByEmail", ctx, "owner@cherry.test").Return(&domain.AdminCredentials{UserID: "a1"}, nil).Once()

	_, err := suite.service.SignUp(ctx, "owner@cherry.test", "password1", "Owner")

	suite.ErrorIs(err, apperrors.ErrDuplicate)
}
