// internal/handlers/warehouse_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jiu-020812/orange-fanta-back/internal/middleware"
	"github.com/Jiu-020812/orange-fanta-back/internal/services"
	"github.com/Jiu-020812/orange-fanta-back/internal/utils"
)

type WarehouseHandler struct {
	warehouseService *services.WarehouseService
}

func NewWarehouseHandler(warehouseService *services.WarehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouseService: warehouseService}
}

func (h *WarehouseHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	warehouses, err := h.warehouseService.ListWarehouses(userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, warehouses)
}

func (h *WarehouseHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req services.WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	warehouse, err := h.warehouseService.CreateWarehouse(userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, warehouse)
}

func (h *WarehouseHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	warehouseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.WarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	warehouse, err := h.warehouseService.UpdateWarehouse(userID, warehouseID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, warehouse)
}

func (h *WarehouseHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	warehouseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.warehouseService.DeleteWarehouse(userID, warehouseID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *WarehouseHandler) ListStocks(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	warehouseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	stocks, err := h.warehouseService.ListStocks(userID, warehouseID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, stocks)
}

func (h *WarehouseHandler) SetStock(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	warehouseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.SetWarehouseStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	stock, err := h.warehouseService.SetStock(userID, warehouseID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if stock == nil {
		utils.SuccessResponse(c, http.StatusOK, gin.H{"removed": true})
		return
	}
	utils.SuccessResponse(c, http.StatusOK, stock)
}
