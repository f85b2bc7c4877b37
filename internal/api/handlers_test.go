package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"sidehustle_server/internal/builder"
	"sidehustle_server/internal/builder/templates"
	"sidehustle_server/internal/store"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	router := gin.New()
	RegisterRoutes(router, NewAPIHandler(builder.NewGenerator(8), st))
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set(UserHeader, user)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestGenerate(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/builder/generate", "", map[string]string{"prompt": "Build a task management app"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[GenerateResponse](t, w)
	assert.Equal(t, builder.GenerateResponse("Build a task management app"), resp.Response)
	assert.Equal(t, "productivity tool", resp.Plan.AppType)

	w = doJSON(t, router, http.MethodPost, "/builder/generate", "", map[string]string{"prompt": ""})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = decode[GenerateResponse](t, w)
	assert.Equal(t, []string{"Home Page", "About Page"}, resp.Plan.Pages)

	w = doJSON(t, router, http.MethodPost, "/builder/generate", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionsFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/builder/sessions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodPost, "/builder/sessions", "alice", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sessionID := decode[CreateSessionResponse](t, w).SessionID
	require.NotEmpty(t, sessionID)

	w = doJSON(t, router, http.MethodGet, "/builder/sessions", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{sessionID}, decode[ListSessionsResponse](t, w).Sessions)

	w = doJSON(t, router, http.MethodPost, "/builder/sessions/"+sessionID+"/chat", "alice", map[string]string{"prompt": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	chat := decode[ChatResponse](t, w)
	assert.Equal(t, "hello", chat.UserMessage.Content)
	assert.Equal(t, templates.GetGreetingReply(), chat.AssistantMessage.Content)
	assert.Equal(t, int64(2), chat.AssistantMessage.ID)

	w = doJSON(t, router, http.MethodPost, "/builder/sessions/"+sessionID+"/messages", "alice",
		map[string]string{"role": "user", "content": "thanks"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/builder/sessions/"+sessionID+"/messages", "alice",
		map[string]string{"role": "system", "content": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/builder/sessions/"+sessionID+"/messages", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[MessagesResponse](t, w).Messages, 3)

	w = doJSON(t, router, http.MethodGet, "/builder/sessions/"+sessionID+"/transcript", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	transcript := decode[TranscriptResponse](t, w).Messages
	require.Len(t, transcript, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, transcript[0].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, transcript[2].Role)

	// Someone else's session looks missing.
	w = doJSON(t, router, http.MethodGet, "/builder/sessions/"+sessionID+"/messages", "bob", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/builder/sessions/unknown/chat", "alice", map[string]string{"prompt": "hi"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPost, "/builder/sessions/"+sessionID+"/chat", "alice", map[string]string{"prompt": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOpportunitiesEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/opportunities/featured/ensure", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	submit := SubmitOpportunityRequest{
		Title:        "AI data labeling",
		Company:      "LabelCo",
		Description:  "Label images for model training.",
		Link:         "https://labelco.example",
		Remote:       true,
		Category:     "AI",
		BarrierLevel: 1,
	}
	w = doJSON(t, router, http.MethodPost, "/opportunities", "", submit)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := decode[SubmitOpportunityResponse](t, w).ID

	bad := submit
	bad.Link = "labelco.example"
	w = doJSON(t, router, http.MethodPost, "/opportunities", "", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/opportunities?category=AI", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	opps := decode[OpportunitiesResponse](t, w).Opportunities
	require.Len(t, opps, 1)
	assert.Equal(t, id, opps[0].ID)

	w = doJSON(t, router, http.MethodGet, "/opportunities?remote=true&barrierLevel=all", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[OpportunitiesResponse](t, w).Opportunities, 2)

	w = doJSON(t, router, http.MethodGet, "/opportunities?remote=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet, "/opportunities/featured", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[OpportunitiesResponse](t, w).Opportunities, 1)

	w = doJSON(t, router, http.MethodGet, "/opportunities/count", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(2), decode[CountResponse](t, w).Count)

	w = doJSON(t, router, http.MethodGet, "/opportunities/9999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodGet, "/opportunities/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProfileAndHealth(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/profile", "alice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodPut, "/profile", "alice", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, "/profile", "alice", map[string]string{"name": "Alice"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/profile", "alice", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"name":"Alice"}`, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
