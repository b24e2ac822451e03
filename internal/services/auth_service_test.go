package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adelacruz/timeplan/internal/models"
	"github.com/adelacruz/timeplan/internal/repository"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.AutoMigrate(&models.User{}))

	suite.service = NewAuthService(repository.NewUserRepository(suite.db))
}

func (suite *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthServiceTestSuite) TestSignupHashesPassword() {
	user, err := suite.service.Signup(SignupInput{Username: "alex", Password: "correct horse"})
	suite.Require().NoError(err)
	suite.NotZero(user.ID)
	suite.NotEqual("correct horse", user.PasswordHash)
	suite.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
}

func (suite *AuthServiceTestSuite) TestSignupValidation() {
	_, err := suite.service.Signup(SignupInput{Username: "  ", Password: "long enough"})
	var verr *ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Equal("username", verr.Field)

	_, err = suite.service.Signup(SignupInput{Username: "alex", Password: "short"})
	suite.ErrorIs(err, ErrPasswordTooShort)
}

func (suite *AuthServiceTestSuite) TestSignupRejectsDuplicateUsername() {
	_, err := suite.service.Signup(SignupInput{Username: "alex", Password: "correct horse"})
	suite.Require().NoError(err)

	_, err = suite.service.Signup(SignupInput{Username: "alex", Password: "another pass"})
	suite.ErrorIs(err, ErrUsernameTaken)
}

func (suite *AuthServiceTestSuite) TestLogin() {
	created, err := suite.service.Signup(SignupInput{Username: "alex", Password: "correct horse"})
	suite.Require().NoError(err)

	user, err := suite.service.Login(LoginInput{Username: "alex", Password: "correct horse"})
	suite.Require().NoError(err)
	suite.Equal(created.ID, user.ID)

	_, err = suite.service.Login(LoginInput{Username: "alex", Password: "wrong"})
	suite.ErrorIs(err, ErrInvalidCredentials)

	_, err = suite.service.Login(LoginInput{Username: "nobody", Password: "correct horse"})
	suite.ErrorIs(err, ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestGetUser() {
	created, err := suite.service.Signup(SignupInput{Username: "alex", Password: "correct horse"})
	suite.Require().NoError(err)

	user, err := suite.service.GetUser(created.ID)
	suite.Require().NoError(err)
	suite.Equal("alex", user.Username)

	_, err = suite.service.GetUser(999)
	suite.ErrorIs(err, ErrUserNotFound)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
