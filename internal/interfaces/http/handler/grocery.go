package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/grocery/backend/internal/application/catalog"
	"github.com/grocery/backend/internal/domain/shared"
	"github.com/grocery/backend/internal/interfaces/http/dto"
)

// imageFormField is the multipart field carrying a grocery image
const imageFormField = "image"

// GroceryHandler handles catalog HTTP requests for shoppers and administrators
type GroceryHandler struct {
	BaseHandler
	groceryService GroceryUseCase
}

// NewGroceryHandler creates a new GroceryHandler
func NewGroceryHandler(groceryService GroceryUseCase) *GroceryHandler {
	return &GroceryHandler{groceryService: groceryService}
}

type groceryListQuery struct {
	listQuery
	OrderBy  string `form:"order_by" binding:"omitempty,oneof=id name price quantity created_at updated_at"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

func (q groceryListQuery) filter() catalogapp.GroceryFilter {
	return catalogapp.GroceryFilter{
		ID:       q.idFilter(),
		Page:     q.Page,
		Size:     q.Size,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	}
}

// List godoc
// @Summary      List groceries
// @Description  List groceries that are in stock
// @Tags         groceries
// @Produce      json
// @Param        id query string false "Grocery ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        size query int false "Page size" default(5) minimum(1) maximum(10)
// @Param        order_by query string false "Sort field" Enums(id, name, price, quantity, created_at, updated_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]catalogapp.GroceryResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /groceries [get]
func (h *GroceryHandler) List(c *gin.Context) {
	var q groceryListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	result, err := h.groceryService.ListForUsers(c.Request.Context(), q.filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Data, result.Total, result.Page, result.Size)
}

// AdminList godoc
// @Summary      List all groceries
// @Description  List every grocery including deleted and out of stock ones, with audit fields
// @Tags         admin-groceries
// @Produce      json
// @Param        id query string false "Grocery ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        size query int false "Page size" default(5) minimum(1) maximum(10)
// @Param        order_by query string false "Sort field" Enums(id, name, price, quantity, created_at, updated_at)
// @Param        order_dir query string false "Sort direction" Enums(asc, desc)
// @Success      200 {object} dto.Response{data=[]catalogapp.AdminGroceryResponse,meta=dto.Meta}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/groceries [get]
func (h *GroceryHandler) AdminList(c *gin.Context) {
	var q groceryListQuery
	if !h.bindQuery(c, &q) {
		return
	}

	result, err := h.groceryService.ListForAdmin(c.Request.Context(), q.filter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Data, result.Total, result.Page, result.Size)
}

// Create godoc
// @Summary      Create grocery
// @Description  Add a grocery to the catalog. Price is in minor currency units.
// @Tags         admin-groceries
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateGroceryRequest true "Grocery"
// @Success      201 {object} dto.Response{data=catalogapp.AdminGroceryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/groceries [post]
func (h *GroceryHandler) Create(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	var req catalogapp.CreateGroceryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	grocery, err := h.groceryService.Create(c.Request.Context(), actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, grocery)
}

// Update godoc
// @Summary      Update grocery
// @Description  Partially update name, description, price or image URL. Stock changes go through the quantity endpoint.
// @Tags         admin-groceries
// @Accept       json
// @Produce      json
// @Param        id path string true "Grocery ID" format(uuid)
// @Param        request body catalogapp.UpdateGroceryRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=catalogapp.AdminGroceryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/groceries/{id} [put]
func (h *GroceryHandler) Update(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateGroceryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	grocery, err := h.groceryService.Update(c.Request.Context(), id, actorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, grocery)
}

// UpdateQuantity godoc
// @Summary      Set grocery stock
// @Description  Overwrite the stock level of a grocery
// @Tags         admin-groceries
// @Accept       json
// @Produce      json
// @Param        id path string true "Grocery ID" format(uuid)
// @Param        request body catalogapp.UpdateQuantityRequest true "New quantity"
// @Success      200 {object} dto.Response{data=catalogapp.AdminGroceryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/groceries/{id}/quantity [patch]
func (h *GroceryHandler) UpdateQuantity(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.UpdateQuantityRequest
	if !h.bindJSON(c, &req) {
		return
	}

	grocery, err := h.groceryService.UpdateQuantity(c.Request.Context(), id, *req.Quantity, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, grocery)
}

// UploadImage godoc
// @Summary      Upload grocery image
// @Description  Store a JPEG, PNG, WebP or GIF image for the grocery and point image_url at it
// @Tags         admin-groceries
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path string true "Grocery ID" format(uuid)
// @Param        image formData file true "Image file"
// @Success      200 {object} dto.Response{data=catalogapp.AdminGroceryResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      413 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/groceries/{id}/image [post]
func (h *GroceryHandler) UploadImage(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.HandleError(c, err)
			return
		}
		h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidInput, "Multipart field \"image\" is required")
		return
	}
	if fileHeader.Size > catalogapp.MaxImageSize {
		h.HandleError(c, shared.ErrInvalidInput.Withf("Image cannot exceed %d bytes", catalogapp.MaxImageSize))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, catalogapp.MaxImageSize+1))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	grocery, err := h.groceryService.UploadImage(c.Request.Context(), id, actorID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, grocery)
}

// Delete godoc
// @Summary      Delete grocery
// @Description  Soft-delete a grocery. Existing order lines keep referencing it.
// @Tags         admin-groceries
// @Param        id path string true "Grocery ID" format(uuid)
// @Success      204
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /admin/groceries/{id} [delete]
func (h *GroceryHandler) Delete(c *gin.Context) {
	actorID, ok := h.actorID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.groceryService.Delete(c.Request.Context(), id, actorID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
