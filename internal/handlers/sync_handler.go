// internal/handlers/sync_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Jiu-020812/orange-fanta-back/internal/middleware"
	"github.com/Jiu-020812/orange-fanta-back/internal/services"
	"github.com/Jiu-020812/orange-fanta-back/internal/utils"
)

type SyncHandler struct {
	syncService *services.SyncService
}

func NewSyncHandler(syncService *services.SyncService) *SyncHandler {
	return &SyncHandler{syncService: syncService}
}

func (h *SyncHandler) GetPolicy(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	policy, err := h.syncService.EffectivePolicy(userID, itemID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, policy)
}

func (h *SyncHandler) SetPolicy(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SetPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	policy, err := h.syncService.SetPolicy(userID, itemID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, policy)
}

func (h *SyncHandler) ListListings(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	listings, err := h.syncService.ListListings(userID, itemID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, listings)
}

func (h *SyncHandler) CreateListing(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	listing, err := h.syncService.CreateListing(userID, itemID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, listing)
}

func (h *SyncHandler) DeleteListing(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	listingID, ok := parseIDParam(c, "listingId")
	if !ok {
		return
	}

	if err := h.syncService.DeleteListing(userID, listingID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, gin.H{"deleted": true})
}

// Enqueue recomputes the item's visibility targets and queues a job per
// active listing.
func (h *SyncHandler) Enqueue(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	enqueued, err := h.syncService.EnqueueForItem(userID, itemID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusAccepted, gin.H{"enqueued": enqueued})
}

// Run drains the caller's due jobs immediately instead of waiting for
// the background worker.
func (h *SyncHandler) Run(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 200 {
			utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be between 1 and 200")
			return
		}
		limit = parsed
	}

	result, err := h.syncService.RunDueJobs(&userID, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *SyncHandler) ListJobs(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	jobs, err := h.syncService.ListJobs(userID, itemID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, jobs)
}
