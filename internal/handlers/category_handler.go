// internal/handlers/category_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jiu-020812/orange-fanta-back/internal/middleware"
	"github.com/Jiu-020812/orange-fanta-back/internal/services"
	"github.com/Jiu-020812/orange-fanta-back/internal/utils"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
}

func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	categories, err := h.categoryService.ListCategories(userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	category, err := h.categoryService.CreateCategory(userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	category, err := h.categoryService.UpdateCategory(userID, categoryID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	categoryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(userID, categoryID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, gin.H{"deleted": true})
}
