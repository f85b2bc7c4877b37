package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"sidehustle_server/internal/builder"
	builderutils "sidehustle_server/internal/builder/utils"
	"sidehustle_server/internal/store"
	"sidehustle_server/internal/types"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"
)

// UserHeader carries the caller identity set by the fronting auth proxy.
const UserHeader = "X-User-ID"

const transcriptSystemPrompt = "You are an app planning assistant for Internet Computer applications."

// APIHandler holds dependencies for API endpoints.
type APIHandler struct {
	generator *builder.Generator
	store     *store.Store
}

// NewAPIHandler initializes a new API handler with its dependencies.
func NewAPIHandler(gen *builder.Generator, st *store.Store) *APIHandler {
	return &APIHandler{
		generator: gen,
		store:     st,
	}
}

// --- Request/Response Structs ---

type GenerateRequest struct {
	Prompt *string `json:"prompt" binding:"required"` // empty prompts are valid input
}

type GenerateResponse struct {
	Response string          `json:"response"`
	Plan     builder.AppPlan `json:"plan"`
}

type CreateSessionResponse struct {
	SessionID string `json:"sessionId"`
}

type ListSessionsResponse struct {
	Sessions []string `json:"sessions"`
}

type AppendMessageRequest struct {
	Role    types.Role `json:"role" binding:"required"`
	Content string     `json:"content" binding:"required"`
}

type ChatRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

type ChatResponse struct {
	UserMessage      types.BuilderMessage `json:"userMessage"`
	AssistantMessage types.BuilderMessage `json:"assistantMessage"`
}

type MessagesResponse struct {
	Messages []types.BuilderMessage `json:"messages"`
}

type TranscriptResponse struct {
	Messages []openai.ChatCompletionMessage `json:"messages"`
}

// --- Handlers ---

// Generate runs the plan generator without touching any session.
func (h *APIHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{
		Response: h.generator.Respond(*req.Prompt),
		Plan:     h.generator.Plan(*req.Prompt),
	})
}

func (h *APIHandler) CreateSession(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	sessionID, err := h.store.CreateSession(c.Request.Context(), userID)
	if err != nil {
		log.Printf("ERROR: Failed to create builder session for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	log.Printf("Created builder session %s for %s", sessionID, userID)
	c.JSON(http.StatusCreated, CreateSessionResponse{SessionID: sessionID})
}

func (h *APIHandler) ListSessions(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	sessions, err := h.store.ListSessions(c.Request.Context(), userID)
	if err != nil {
		log.Printf("ERROR: Failed to list builder sessions for %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sessions"})
		return
	}
	c.JSON(http.StatusOK, ListSessionsResponse{Sessions: sessions})
}

func (h *APIHandler) SessionMessages(c *gin.Context) {
	sessionID, ok := h.requireOwnedSession(c)
	if !ok {
		return
	}

	messages, err := h.store.SessionMessages(c.Request.Context(), sessionID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessagesResponse{Messages: messages})
}

func (h *APIHandler) AppendMessage(c *gin.Context) {
	sessionID, ok := h.requireOwnedSession(c)
	if !ok {
		return
	}

	var req AppendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	msg, err := h.store.AppendMessage(c.Request.Context(), sessionID, req.Role, req.Content)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Chat records the user's prompt, answers it and records the answer.
func (h *APIHandler) Chat(c *gin.Context) {
	sessionID, ok := h.requireOwnedSession(c)
	if !ok {
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt must not be blank"})
		return
	}

	ctx := c.Request.Context()
	userMsg, err := h.store.AppendMessage(ctx, sessionID, types.RoleUser, prompt)
	if err != nil {
		h.storeError(c, err)
		return
	}

	reply := h.generator.Respond(prompt)
	assistantMsg, err := h.store.AppendMessage(ctx, sessionID, types.RoleAssistant, reply)
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ChatResponse{UserMessage: userMsg, AssistantMessage: assistantMsg})
}

// Transcript exports a session as chat-completion messages.
func (h *APIHandler) Transcript(c *gin.Context) {
	sessionID, ok := h.requireOwnedSession(c)
	if !ok {
		return
	}

	messages, err := h.store.SessionMessages(c.Request.Context(), sessionID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, TranscriptResponse{
		Messages: builderutils.TranscriptToChat(transcriptSystemPrompt, messages),
	})
}

func (h *APIHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	profile, found, err := h.store.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *APIHandler) SaveProfile(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var profile types.UserProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.store.SaveProfile(c.Request.Context(), userID, profile); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func (h *APIHandler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		log.Printf("WARN: Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "cachedReplies": h.generator.CachedReplies()})
}

// --- Helpers ---

func requireUser(c *gin.Context) (string, bool) {
	userID := strings.TrimSpace(c.GetHeader(UserHeader))
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing " + UserHeader + " header"})
		return "", false
	}
	return userID, true
}

// requireOwnedSession resolves :id and checks it belongs to the caller.
// Sessions owned by someone else are reported as missing.
func (h *APIHandler) requireOwnedSession(c *gin.Context) (string, bool) {
	userID, ok := requireUser(c)
	if !ok {
		return "", false
	}

	sessionID := c.Param("id")
	owner, err := h.store.SessionOwner(c.Request.Context(), sessionID)
	if err != nil {
		h.storeError(c, err)
		return "", false
	}
	if owner != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return "", false
	}
	return sessionID, true
}

// storeError maps store sentinels onto HTTP statuses.
func (h *APIHandler) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, store.ErrOpportunityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Opportunity not found"})
	case errors.Is(err, store.ErrInvalidRole),
		errors.Is(err, store.ErrInvalidOpportunity),
		errors.Is(err, store.ErrInvalidProfile):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("ERROR: Store call failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
