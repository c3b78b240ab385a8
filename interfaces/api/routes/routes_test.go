package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/application/serviceimpl"
	"todo-api/domain/dto"
	"todo-api/domain/models"
	"todo-api/infrastructure/postgres"
	"todo-api/interfaces/api/handlers"
	"todo-api/pkg/config"
	"todo-api/pkg/testutil"
	"todo-api/pkg/utils"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db := testutil.NewTestDB(t)
	userRepo := postgres.NewUserRepository(db)
	taskRepo := postgres.NewTaskRepository(db)
	tx := postgres.NewTransactor(db)

	h := handlers.NewHandlers(&handlers.Services{
		UserService: serviceimpl.NewUserService(userRepo, taskRepo, tx, nil, "test-secret", time.Hour),
		TaskService: serviceimpl.NewTaskService(taskRepo, tx, nil, nil, models.OrderNewestFirst),
		App:         config.AppConfig{Name: "Todo API", Version: "1.0.0"},
	})
	return NewApp("Todo API", []string{"http://localhost:3000"}, h)
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = strings.NewReader(b)
		default:
			data, err := json.Marshal(b)
			require.NoError(t, err)
			reader = bytes.NewReader(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func register(t *testing.T, app *fiber.App, email string) dto.TokenResponse {
	t.Helper()
	resp := doRequest(t, app, fiber.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": "correct horse",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.TokenResponse](t, resp)
}

func tasksPath(user dto.TokenResponse) string {
	return "/api/" + user.User.ID.String() + "/tasks"
}

func TestHealthAndRoot(t *testing.T) {
	app := newTestApp(t)

	resp := doRequest(t, app, fiber.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", decode[dto.HealthResponse](t, resp).Status)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp = doRequest(t, app, fiber.MethodGet, "/", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	root := decode[dto.RootResponse](t, resp)
	assert.Equal(t, "1.0.0", root.Version)
	assert.Equal(t, "/health", root.Health)
}

func TestAuthFlow(t *testing.T) {
	app := newTestApp(t)

	alice := register(t, app, "alice@example.com")
	assert.Equal(t, "bearer", alice.TokenType)
	assert.NotEmpty(t, alice.AccessToken)
	assert.Equal(t, "alice@example.com", alice.User.Email)

	resp := doRequest(t, app, fiber.MethodPost, "/auth/register", "", map[string]string{
		"email": "alice@example.com", "password": "another",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Email already registered", decode[utils.Response](t, resp).Error.Message)

	resp = doRequest(t, app, fiber.MethodPost, "/auth/register", "", map[string]string{
		"email": "not-an-email", "password": "pw",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodPost, "/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))
	assert.Equal(t, "Incorrect email or password", decode[utils.Response](t, resp).Error.Message)

	resp = doRequest(t, app, fiber.MethodPost, "/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "correct horse",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	login := decode[dto.TokenResponse](t, resp)
	assert.Equal(t, alice.User.ID, login.User.ID)

	resp = doRequest(t, app, fiber.MethodGet, "/auth/me", login.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, alice.User.ID, decode[dto.UserResponse](t, resp).ID)

	resp = doRequest(t, app, fiber.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get("WWW-Authenticate"))

	resp = doRequest(t, app, fiber.MethodGet, "/auth/me", "garbage", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTaskScenario(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com")
	path := tasksPath(alice)
	token := alice.AccessToken

	resp := doRequest(t, app, fiber.MethodPost, path, token, map[string]string{"title": "Buy milk", "description": "2 liters"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	milk := decode[dto.TaskResponse](t, resp)
	assert.Equal(t, "Buy milk", milk.Title)
	assert.False(t, milk.Completed)
	assert.Equal(t, alice.User.ID, milk.UserID)

	resp = doRequest(t, app, fiber.MethodPost, path, token, map[string]string{"title": "Walk dog"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	dog := decode[dto.TaskResponse](t, resp)

	resp = doRequest(t, app, fiber.MethodPatch, path+"/"+itoa(milk.ID)+"/toggle", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decode[dto.TaskResponse](t, resp).Completed)

	resp = doRequest(t, app, fiber.MethodGet, path, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[dto.TaskListResponse](t, resp)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 1, list.Completed)
	assert.Equal(t, 1, list.Pending)
	require.Len(t, list.Tasks, 2)
	assert.Equal(t, dog.ID, list.Tasks[0].ID)

	resp = doRequest(t, app, fiber.MethodPut, path+"/"+itoa(dog.ID), token, map[string]any{"title": "Walk the dog", "completed": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decode[dto.TaskResponse](t, resp)
	assert.Equal(t, "Walk the dog", updated.Title)
	assert.True(t, updated.Completed)

	resp = doRequest(t, app, fiber.MethodDelete, path+"/"+itoa(milk.ID), token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, path+"/"+itoa(milk.ID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Task not found", decode[utils.Response](t, resp).Error.Message)

	resp = doRequest(t, app, fiber.MethodDelete, path+"/"+itoa(milk.ID), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestTaskValidationAndBadInput(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com")
	path := tasksPath(alice)
	token := alice.AccessToken

	resp := doRequest(t, app, fiber.MethodPost, path, token, map[string]string{"title": "   "})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodPost, path, token, map[string]string{"title": strings.Repeat("x", 201)})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	body := decode[utils.Response](t, resp)
	assert.Equal(t, utils.ErrCodeValidation, body.Error.Code)
	assert.Equal(t, "Title must be 200 characters or less", body.Error.Message)

	resp = doRequest(t, app, fiber.MethodPost, path, token, "{not json")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, path+"/abc", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodPost, path, token, map[string]string{"title": "ok"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	task := decode[dto.TaskResponse](t, resp)

	resp = doRequest(t, app, fiber.MethodPut, path+"/"+itoa(task.ID), token, map[string]string{"description": strings.Repeat("d", 1001)})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, path+"/"+itoa(task.ID), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "", decode[dto.TaskResponse](t, resp).Description)
}

func TestCrossUserAccessIsForbidden(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com")
	bob := register(t, app, "bob@example.com")

	resp := doRequest(t, app, fiber.MethodPost, tasksPath(alice), alice.AccessToken, map[string]string{"title": "secret"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	secret := decode[dto.TaskResponse](t, resp)

	cases := []struct {
		method  string
		path    string
		body    any
		message string
	}{
		{fiber.MethodGet, tasksPath(alice), nil, "Not authorized to access these tasks"},
		{fiber.MethodPost, tasksPath(alice), map[string]string{"title": "intrusion"}, "Not authorized to create tasks for this user"},
		{fiber.MethodGet, tasksPath(alice) + "/" + itoa(secret.ID), nil, "Not authorized to access this task"},
		{fiber.MethodPut, tasksPath(alice) + "/" + itoa(secret.ID), map[string]string{"title": "pwned"}, "Not authorized to update this task"},
		{fiber.MethodPatch, tasksPath(alice) + "/" + itoa(secret.ID) + "/toggle", nil, "Not authorized to update this task"},
		{fiber.MethodDelete, tasksPath(alice) + "/" + itoa(secret.ID), nil, "Not authorized to delete this task"},
		{fiber.MethodGet, "/api/not-a-uuid/tasks", nil, "Not authorized to access these tasks"},
		{fiber.MethodDelete, tasksPath(alice) + "/999", nil, "Not authorized to delete this task"},
	}
	for _, tc := range cases {
		resp := doRequest(t, app, tc.method, tc.path, bob.AccessToken, tc.body)
		require.Equal(t, fiber.StatusForbidden, resp.StatusCode, "%s %s", tc.method, tc.path)
		assert.Equal(t, tc.message, decode[utils.Response](t, resp).Error.Message, "%s %s", tc.method, tc.path)
	}

	// through bob's own path alice's task simply does not exist
	resp = doRequest(t, app, fiber.MethodGet, tasksPath(bob)+"/"+itoa(secret.ID), bob.AccessToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, tasksPath(alice), "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, tasksPath(alice)+"/"+itoa(secret.ID), alice.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "secret", decode[dto.TaskResponse](t, resp).Title)
}

func TestDeleteAccount(t *testing.T) {
	app := newTestApp(t)
	alice := register(t, app, "alice@example.com")

	for _, title := range []string{"one", "two"} {
		resp := doRequest(t, app, fiber.MethodPost, tasksPath(alice), alice.AccessToken, map[string]string{"title": title})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := doRequest(t, app, fiber.MethodDelete, "/auth/me", alice.AccessToken, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = doRequest(t, app, fiber.MethodGet, tasksPath(alice), alice.AccessToken, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// the address is free again
	again := register(t, app, "alice@example.com")
	assert.NotEqual(t, alice.User.ID, again.User.ID)

	resp = doRequest(t, app, fiber.MethodGet, tasksPath(again), again.AccessToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[dto.TaskListResponse](t, resp).Total)
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
