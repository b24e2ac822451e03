package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/adelacruz/timeplan/internal/dto"
	"github.com/adelacruz/timeplan/internal/middleware"
	"github.com/adelacruz/timeplan/internal/models"
	"github.com/adelacruz/timeplan/internal/repository"
	"github.com/adelacruz/timeplan/internal/services"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.AutoMigrate(&models.User{}))

	authHandler := NewAuthHandler(
		services.NewAuthService(repository.NewUserRepository(suite.db)))

	suite.router = gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	suite.router.Use(sessions.Sessions("timeplan_session", store))

	auth := suite.router.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
}

func (suite *AuthHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *AuthHandlerTestSuite) request(method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *AuthHandlerTestSuite) TestSignup() {
	w := suite.request(http.MethodPost, "/api/auth/signup",
		gin.H{"username": "alex", "password": "a long password"}, nil)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var user dto.UserDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &user))
	suite.Equal("alex", user.Username)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *AuthHandlerTestSuite) TestSignupRejectsBadInput() {
	w := suite.request(http.MethodPost, "/api/auth/signup",
		gin.H{"username": "ab", "password": "a long password"}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/auth/signup",
		gin.H{"username": "alex", "password": "short"}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestSignupDuplicateIsConflict() {
	body := gin.H{"username": "alex", "password": "a long password"}
	w := suite.request(http.MethodPost, "/api/auth/signup", body, nil)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodPost, "/api/auth/signup", body, nil)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLoginSessionFlow() {
	body := gin.H{"username": "alex", "password": "a long password"}
	w := suite.request(http.MethodPost, "/api/auth/signup", body, nil)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodPost, "/api/auth/login", body, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies)

	w = suite.request(http.MethodGet, "/api/auth/me", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var user dto.UserDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &user))
	suite.Equal("alex", user.Username)
}

func (suite *AuthHandlerTestSuite) TestLoginWrongPassword() {
	w := suite.request(http.MethodPost, "/api/auth/signup",
		gin.H{"username": "alex", "password": "a long password"}, nil)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodPost, "/api/auth/login",
		gin.H{"username": "alex", "password": "wrong password"}, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestMeWithoutSession() {
	w := suite.request(http.MethodGet, "/api/auth/me", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLogoutClearsSession() {
	body := gin.H{"username": "alex", "password": "a long password"}
	w := suite.request(http.MethodPost, "/api/auth/signup", body, nil)
	suite.Require().Equal(http.StatusCreated, w.Code)

	w = suite.request(http.MethodPost, "/api/auth/login", body, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	w = suite.request(http.MethodPost, "/api/auth/logout", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/auth/me", nil, w.Result().Cookies())
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
