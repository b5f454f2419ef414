package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandeptwidyaop/agents-rest/internal/database"
	"github.com/pandeptwidyaop/agents-rest/internal/dto"
	"github.com/pandeptwidyaop/agents-rest/internal/handlers"
	"github.com/pandeptwidyaop/agents-rest/internal/models"
	"github.com/pandeptwidyaop/agents-rest/internal/services"
)

func agentsRouter(t *testing.T) (*gin.Engine, *database.DB) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	h := handlers.NewAgentsHandler(services.NewAgentStore(db, testGame, nil))

	r := gin.New()
	r.GET("/agents", h.List)
	r.GET("/agents/:id", h.Get)
	r.POST("/agents", h.Create)
	r.PUT("/agents/:id/pin", h.Pin)
	r.PUT("/agents/:id/move", h.Move)
	return r, db
}

func createAgent(t *testing.T, r http.Handler, body string) dto.AgentDto {
	t.Helper()
	w := do(r, http.MethodPost, "/agents", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var a dto.AgentDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	return a
}

func TestAgentsHandler_CreateAndGet(t *testing.T) {
	r, _ := agentsRouter(t)

	a := createAgent(t, r, `{"nickname":"007","photoUrl":"https://img/007.png","x":5,"y":6,"status":"Active","eliminations":3}`)
	assert.Equal(t, "007", a.Nickname)
	assert.Equal(t, "Inactive", a.Status)
	assert.Equal(t, 0, a.Eliminations)
	assert.Equal(t, "https://img/007.png", a.PhotoURL)

	w := do(r, http.MethodGet, "/agents/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"nickname":"007","status":"Inactive","photoUrl":"https://img/007.png","x":5,"y":6,"eliminations":0}`, w.Body.String())

	w = do(r, http.MethodGet, "/agents", "")
	require.Equal(t, http.StatusOK, w.Code)
	var all []dto.AgentDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 1)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/agents/2", "").Code)
}

func TestAgentsHandler_Create_Invalid(t *testing.T) {
	r, _ := agentsRouter(t)

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/agents", `{"nickname":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/agents", `{"nickname":"x","x":-1}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/agents", `{"nickname":"x","photoUrl":"ftp://nope"}`).Code)
}

func TestAgentsHandler_PinAndMove(t *testing.T) {
	r, _ := agentsRouter(t)
	createAgent(t, r, `{"nickname":"007"}`)

	w := do(r, http.MethodPut, "/agents/1/pin", `{"x":1000,"y":0}`)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodPut, "/agents/1/move", `{"direction":"nw"}`).Code)

	w = do(r, http.MethodPut, "/agents/1/move", `{"direction":"se"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(r, http.MethodPut, "/agents/1/move", `{"direction":"e"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.ErrOutOfBounds.Error(), errorMessage(t, w))

	w = do(r, http.MethodGet, "/agents/1", "")
	var a dto.AgentDto
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &a))
	assert.Equal(t, 1000, a.X)
	assert.Equal(t, 0, a.Y)
}

func TestAgentsHandler_ActiveAgentConflict(t *testing.T) {
	r, db := agentsRouter(t)
	createAgent(t, r, `{"nickname":"007"}`)

	_, err := db.Exec("UPDATE agents SET status = ? WHERE id = 1", models.AgentActive)
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, do(r, http.MethodPut, "/agents/1/pin", `{"x":1,"y":1}`).Code)
	assert.Equal(t, http.StatusConflict, do(r, http.MethodPut, "/agents/1/move", `{"direction":"n"}`).Code)
}
