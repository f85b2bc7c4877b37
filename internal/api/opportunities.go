package api

import (
	"log"
	"net/http"
	"strconv"

	"sidehustle_server/internal/store"
	"sidehustle_server/internal/types"
	"sidehustle_server/internal/utils"

	"github.com/gin-gonic/gin"
)

type SubmitOpportunityRequest struct {
	Title        string `json:"title" binding:"required"`
	Company      string `json:"company" binding:"required"`
	Description  string `json:"description" binding:"required"`
	Link         string `json:"link" binding:"required"`
	Remote       bool   `json:"remote"`
	Category     string `json:"category" binding:"required"`
	BarrierLevel int    `json:"barrierLevel" binding:"required"`
}

type SubmitOpportunityResponse struct {
	ID int64 `json:"id"`
}

type OpportunitiesResponse struct {
	Opportunities []types.Opportunity `json:"opportunities"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}

// ListOpportunities supports ?remote=, ?category= and ?barrierLevel= filters.
func (h *APIHandler) ListOpportunities(c *gin.Context) {
	remote, err := utils.ParseOptionalBool(c.Query("remote"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid remote filter: " + err.Error()})
		return
	}
	barrier, err := utils.ParseOptionalInt(c.Query("barrierLevel"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid barrierLevel filter: " + err.Error()})
		return
	}

	filter := types.OpportunityFilter{
		Remote:       remote,
		Category:     utils.ParseOptionalString(c.Query("category")),
		BarrierLevel: barrier,
	}
	opps, err := h.store.ListOpportunities(c.Request.Context(), filter)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, OpportunitiesResponse{Opportunities: opps})
}

func (h *APIHandler) FeaturedOpportunities(c *gin.Context) {
	opps, err := h.store.FeaturedOpportunities(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, OpportunitiesResponse{Opportunities: opps})
}

func (h *APIHandler) CountOpportunities(c *gin.Context) {
	n, err := h.store.CountOpportunities(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, CountResponse{Count: n})
}

func (h *APIHandler) GetOpportunity(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid opportunity id"})
		return
	}

	opp, err := h.store.GetOpportunity(c.Request.Context(), id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, opp)
}

func (h *APIHandler) SubmitOpportunity(c *gin.Context) {
	var req SubmitOpportunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	id, err := h.store.SubmitOpportunity(c.Request.Context(), store.NewOpportunity{
		Title:        req.Title,
		Company:      req.Company,
		Description:  req.Description,
		Link:         req.Link,
		Remote:       req.Remote,
		Category:     req.Category,
		BarrierLevel: req.BarrierLevel,
	})
	if err != nil {
		h.storeError(c, err)
		return
	}

	log.Printf("Opportunity %d submitted: %q", id, req.Title)
	c.JSON(http.StatusCreated, SubmitOpportunityResponse{ID: id})
}

// EnsureFeatured seeds the featured listing; repeated calls are no-ops.
func (h *APIHandler) EnsureFeatured(c *gin.Context) {
	inserted, err := h.store.EnsureXerisFeatured(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"inserted": inserted})
}
