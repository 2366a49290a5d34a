// internal/handlers/item_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Jiu-020812/orange-fanta-back/internal/middleware"
	"github.com/Jiu-020812/orange-fanta-back/internal/services"
	"github.com/Jiu-020812/orange-fanta-back/internal/utils"
)

type ItemHandler struct {
	itemService    *services.ItemService
	storageService *services.StorageService
}

func NewItemHandler(itemService *services.ItemService, storageService *services.StorageService) *ItemHandler {
	return &ItemHandler{
		itemService:    itemService,
		storageService: storageService,
	}
}

func (h *ItemHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	params := utils.GetPaginationParams(c)

	var categoryID *uuid.UUID
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "category_id must be a valid UUID")
			return
		}
		categoryID = &parsed
	}

	items, total, err := h.itemService.ListItems(userID, params, categoryID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponseWithMeta(c, http.StatusOK, items, utils.BuildMeta(params, total))
}

func (h *ItemHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.itemService.GetItem(userID, itemID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, detail)
}

func (h *ItemHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req services.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	item, err := h.itemService.CreateItem(userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, item)
}

func (h *ItemHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	item, err := h.itemService.UpdateItem(userID, itemID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, item)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(userID, itemID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, gin.H{"deleted": true})
}

// UploadImage accepts a multipart image and returns its public URL; the
// client attaches it to an item via the regular update endpoint.
func (h *ItemHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "image file is required")
		return
	}
	defer file.Close()

	result, err := h.storageService.UploadItemImage(file, header)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "UPLOAD_FAILED", err.Error())
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, result)
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", name+" must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}
