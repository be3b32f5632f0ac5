package groups

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mikepea/chatter/pkg/chatter/auth"
	"github.com/mikepea/chatter/pkg/chatter/store/gormstore"
	"github.com/mikepea/chatter/pkg/chatter/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db := setupTestDB(t)
	s := gormstore.New(db)
	ledger := NewLedger(s, zap.NewNop())
	gate := auth.NewGate(users.NewService(s, zap.NewNop()), ledger, zap.NewNop())

	r := gin.New()
	NewHandler(ledger, gate, zap.NewNop()).RegisterRoutes(r.Group("/api/groups"))
	return r, db
}

func doRequest(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestCreateGroupHandler(t *testing.T) {
	router, db := setupTestRouter(t)
	alice := createTestUser(t, db, "alice")

	resp := doRequest(router, "POST", "/api/groups", `{"name":"Book Club"}`, alice.Token)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var body struct {
		Message string      `json:"message"`
		Group   GroupDetail `json:"group"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Group created successfully", body.Message)
	assert.Equal(t, "Book Club", body.Group.Name)
	assert.Equal(t, alice.ID, body.Group.CreatedBy)
	require.Len(t, body.Group.Members, 1)
	assert.Equal(t, "alice", body.Group.Members[0].Username)
}

func TestCreateGroupHandlerErrors(t *testing.T) {
	router, db := setupTestRouter(t)
	alice := createTestUser(t, db, "alice")

	tests := []struct {
		name  string
		body  string
		token string
		want  int
	}{
		{"no token", `{"name":"Book Club"}`, "", http.StatusUnauthorized},
		{"bad token", `{"name":"Book Club"}`, "nope", http.StatusUnauthorized},
		{"missing name", `{}`, alice.Token, http.StatusBadRequest},
		{"empty name", `{"name":""}`, alice.Token, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doRequest(router, "POST", "/api/groups", tt.body, tt.token)
			assert.Equal(t, tt.want, resp.Code, resp.Body.String())
		})
	}
}

func TestListAndGetGroupHandlers(t *testing.T) {
	router, db := setupTestRouter(t)
	alice := createTestUser(t, db, "alice")

	resp := doRequest(router, "POST", "/api/groups", `{"name":"Book Club"}`, alice.Token)
	require.Equal(t, http.StatusCreated, resp.Code)
	var created struct {
		Group GroupDetail `json:"group"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))

	resp = doRequest(router, "GET", "/api/groups", "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"Book Club"`)

	resp = doRequest(router, "GET", "/api/groups/"+jsonID(created.Group.ID), "", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var detail GroupDetail
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &detail))
	assert.Equal(t, created.Group.ID, detail.ID)
	assert.Len(t, detail.Members, 1)

	resp = doRequest(router, "GET", "/api/groups/999", "", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doRequest(router, "GET", "/api/groups/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestJoinGroupHandler(t *testing.T) {
	router, db := setupTestRouter(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	resp := doRequest(router, "POST", "/api/groups", `{"name":"Book Club"}`, alice.Token)
	require.Equal(t, http.StatusCreated, resp.Code)
	var created struct {
		Group GroupDetail `json:"group"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &created))
	path := "/api/groups/" + jsonID(created.Group.ID) + "/join"

	resp = doRequest(router, "POST", path, "", bob.Token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Contains(t, resp.Body.String(), "Successfully joined the group")

	resp = doRequest(router, "POST", path, "", bob.Token)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Already a member of the group")

	resp = doRequest(router, "POST", path, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = doRequest(router, "POST", "/api/groups/999/join", "", bob.Token)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = doRequest(router, "POST", "/api/groups/abc/join", "", bob.Token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func jsonID(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
