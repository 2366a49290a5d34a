// internal/handlers/movement_handler.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jiu-020812/orange-fanta-back/internal/middleware"
	"github.com/Jiu-020812/orange-fanta-back/internal/services"
	"github.com/Jiu-020812/orange-fanta-back/internal/utils"
)

type MovementHandler struct {
	movementService *services.MovementService
}

func NewMovementHandler(movementService *services.MovementService) *MovementHandler {
	return &MovementHandler{movementService: movementService}
}

// List returns the item's full movement history with the recomputed
// ledger totals.
func (h *MovementHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.movementService.ListMovements(userID, itemID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *MovementHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	result, err := h.movementService.CreateMovement(userID, itemID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, result)
}

func (h *MovementHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	movementID, ok := parseIDParam(c, "movementId")
	if !ok {
		return
	}

	var req services.UpdateMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	result, err := h.movementService.UpdateMovement(userID, movementID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}

func (h *MovementHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	movementID, ok := parseIDParam(c, "movementId")
	if !ok {
		return
	}

	totals, err := h.movementService.DeleteMovement(userID, movementID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, gin.H{"deleted": true, "totals": totals})
}

// Arrive records a receipt against an outstanding purchase. Without a
// count in the body the whole remaining quantity arrives at once.
func (h *MovementHandler) Arrive(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	purchaseID, ok := parseIDParam(c, "movementId")
	if !ok {
		return
	}

	// An empty body means "everything that is still outstanding".
	var req services.ArriveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	result, err := h.movementService.Arrive(userID, purchaseID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, result)
}
