package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	appuser "usermanagement/internal/app/user"
	"usermanagement/internal/cache"
	"usermanagement/internal/config"
	"usermanagement/internal/db"
	"usermanagement/internal/db/repository"
	"usermanagement/internal/http/errorhandler"
	"usermanagement/internal/http/handlers/health"
	userhandler "usermanagement/internal/http/handlers/user"
	"usermanagement/internal/http/responses"
	"usermanagement/internal/logging"
)

type RouterTestSuite struct {
	suite.Suite
	dbClient *db.Client
	router   chi.Router
}

func (suite *RouterTestSuite) SetupTest() {
	ctx := context.Background()
	logger := logging.NewNop()

	dbClient, err := db.NewClient(ctx, config.DatabaseConfig{DSN: "file::memory:"}, logger)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), dbClient.Migrate(ctx))
	suite.dbClient = dbClient

	service := appuser.NewService(repository.NewUserRepository(dbClient, logger), cache.NoopUserCache{}, appuser.NoopEvents{}, logger)
	suite.router = NewRouter(
		logger,
		config.HTTPConfig{RequestTimeout: 5 * time.Second},
		errorhandler.New(logger),
		health.NewHandler(dbClient, nil, logger),
		userhandler.NewHandler(service, logger),
	)
}

func (suite *RouterTestSuite) TearDownTest() {
	_ = suite.dbClient.Close()
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (suite *RouterTestSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	suite.router.ServeHTTP(rec, req)
	return rec
}

func (suite *RouterTestSuite) errorBody(rec *httptest.ResponseRecorder) responses.ErrorResponse {
	var body responses.ErrorResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func (suite *RouterTestSuite) TestCreate_Returns200WithNullUpdatedAt() {
	rec := suite.do(http.MethodPost, "/users", `{"firstName":"Test","lastName":"User","email":"test@example.com"}`)

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Equal(suite.T(), "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(suite.T(), float64(1), body["id"])
	assert.Equal(suite.T(), "Test", body["firstName"])
	assert.Equal(suite.T(), "User", body["lastName"])
	assert.Equal(suite.T(), "test@example.com", body["email"])
	assert.NotEmpty(suite.T(), body["createdAt"])
	assert.Contains(suite.T(), body, "updatedAt")
	assert.Nil(suite.T(), body["updatedAt"])
}

func (suite *RouterTestSuite) TestCreate_IgnoresServerAssignedFields() {
	rec := suite.do(http.MethodPost, "/users", `{"id":77,"firstName":"A","lastName":"B","email":"a@example.com","createdAt":"2000-01-01T00:00:00Z"}`)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var body appuser.UserResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(suite.T(), int64(1), body.Id)
	assert.NotEqual(suite.T(), 2000, body.CreatedAt.Year())
}

func (suite *RouterTestSuite) TestCreate_DuplicateEmail409() {
	payload := `{"firstName":"Dup","lastName":"User","email":"dup@example.com"}`
	require.Equal(suite.T(), http.StatusOK, suite.do(http.MethodPost, "/users", payload).Code)

	rec := suite.do(http.MethodPost, "/users", payload)

	assert.Equal(suite.T(), http.StatusConflict, rec.Code)
	body := suite.errorBody(rec)
	assert.Equal(suite.T(), http.StatusConflict, body.Status)
	assert.Equal(suite.T(), "A user with this email already exists.", body.Message)
}

func (suite *RouterTestSuite) TestCreate_MalformedJSON400() {
	rec := suite.do(http.MethodPost, "/users", `{"firstName":`)

	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
	body := suite.errorBody(rec)
	assert.Equal(suite.T(), http.StatusBadRequest, body.Status)
	assert.Equal(suite.T(), "Invalid JSON payload.", body.Message)
}

func (suite *RouterTestSuite) TestCreate_TrailingDataAndNullRejected() {
	for _, body := range []string{
		`{"firstName":"a","lastName":"b","email":"g@example.com"} garbage`,
		`null`,
	} {
		rec := suite.do(http.MethodPost, "/users", body)

		assert.Equal(suite.T(), http.StatusBadRequest, rec.Code, body)
		errBody := suite.errorBody(rec)
		assert.Equal(suite.T(), http.StatusBadRequest, errBody.Status)
		assert.Equal(suite.T(), "Invalid JSON payload.", errBody.Message)
	}

	rec := suite.do(http.MethodGet, "/users", "")
	assert.JSONEq(suite.T(), `[]`, rec.Body.String())
}

func (suite *RouterTestSuite) TestUpdate_NullBodyRejected() {
	require.Equal(suite.T(), http.StatusOK, suite.do(http.MethodPost, "/users", `{"firstName":"A","lastName":"B","email":"keep@example.com"}`).Code)

	rec := suite.do(http.MethodPut, "/users/1", `null`)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)

	var body appuser.UserResponse
	require.NoError(suite.T(), json.Unmarshal(suite.do(http.MethodGet, "/users/1", "").Body.Bytes(), &body))
	assert.Equal(suite.T(), "keep@example.com", body.Email)
}

func (suite *RouterTestSuite) TestCreate_WrongFieldType400() {
	rec := suite.do(http.MethodPost, "/users", `{"firstName":5,"lastName":"B","email":"c@example.com"}`)
	assert.Equal(suite.T(), http.StatusBadRequest, rec.Code)
}

func (suite *RouterTestSuite) TestGet_Missing404EmptyBody() {
	rec := suite.do(http.MethodGet, "/users/999999", "")

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Empty(suite.T(), rec.Body.String())
}

func (suite *RouterTestSuite) TestGet_NonIntegerID404() {
	for _, path := range []string{"/users/abc", "/users/-1", "/users/99999999999999999999"} {
		rec := suite.do(http.MethodGet, path, "")
		assert.Equal(suite.T(), http.StatusNotFound, rec.Code, path)
		assert.Empty(suite.T(), rec.Body.String(), path)
	}
}

func (suite *RouterTestSuite) TestUpdate_Missing404EmptyBody() {
	rec := suite.do(http.MethodPut, "/users/999999", `{"firstName":"X","lastName":"Y","email":"z@example.com"}`)

	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Empty(suite.T(), rec.Body.String())
}

func (suite *RouterTestSuite) TestUpdate_SetsUpdatedAt() {
	require.Equal(suite.T(), http.StatusOK, suite.do(http.MethodPost, "/users", `{"firstName":"Old","lastName":"N","email":"old@example.com"}`).Code)

	rec := suite.do(http.MethodPut, "/users/1", `{"firstName":"New","lastName":"N","email":"new@example.com"}`)
	require.Equal(suite.T(), http.StatusOK, rec.Code)

	var body appuser.UserResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(suite.T(), "New", body.FirstName)
	assert.NotNil(suite.T(), body.UpdatedAt)
}

func (suite *RouterTestSuite) TestList_EmptyArray() {
	rec := suite.do(http.MethodGet, "/users", "")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.JSONEq(suite.T(), `[]`, rec.Body.String())
}

func (suite *RouterTestSuite) TestAPIPrefixAlias() {
	require.Equal(suite.T(), http.StatusOK, suite.do(http.MethodPost, "/api/users", `{"firstName":"A","lastName":"B","email":"alias@example.com"}`).Code)

	rec := suite.do(http.MethodGet, "/api/users/1", "")
	assert.Equal(suite.T(), http.StatusOK, rec.Code)

	rec = suite.do(http.MethodGet, "/users", "")
	var users []appuser.UserResponse
	require.NoError(suite.T(), json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(suite.T(), users, 1)
}

func (suite *RouterTestSuite) TestUnknownRoute404() {
	rec := suite.do(http.MethodGet, "/nope", "")
	assert.Equal(suite.T(), http.StatusNotFound, rec.Code)
	assert.Empty(suite.T(), rec.Body.String())
}

func (suite *RouterTestSuite) TestMethodNotAllowed() {
	rec := suite.do(http.MethodDelete, "/users/1", "")

	assert.Equal(suite.T(), http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(suite.T(), http.StatusMethodNotAllowed, suite.errorBody(rec).Status)
}

func (suite *RouterTestSuite) TestHealth() {
	rec := suite.do(http.MethodGet, "/health", "")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.JSONEq(suite.T(), `{"status":"ok","db":"ok","redis":"disabled"}`, rec.Body.String())
}

func (suite *RouterTestSuite) TestSwaggerDoc() {
	rec := suite.do(http.MethodGet, "/swagger/doc.json", "")

	assert.Equal(suite.T(), http.StatusOK, rec.Code)
	assert.Contains(suite.T(), rec.Body.String(), `"/users/{id}"`)
}
