package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"skywrench/internal/application/inventory/usecases"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type InventoryHandler struct {
	createItemUC       *usecases.CreateItemUseCase
	updateItemUC       *usecases.UpdateItemUseCase
	getItemUC          *usecases.GetItemUseCase
	listItemsUC        *usecases.ListItemsUseCase
	restockItemUC      *usecases.RestockItemUseCase
	adjustStockUC      *usecases.AdjustStockUseCase
	listTransactionsUC *usecases.ListTransactionsUseCase
	logger             logger.Interface
}

func NewInventoryHandler(
	createItemUC *usecases.CreateItemUseCase,
	updateItemUC *usecases.UpdateItemUseCase,
	getItemUC *usecases.GetItemUseCase,
	listItemsUC *usecases.ListItemsUseCase,
	restockItemUC *usecases.RestockItemUseCase,
	adjustStockUC *usecases.AdjustStockUseCase,
	listTransactionsUC *usecases.ListTransactionsUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		createItemUC:       createItemUC,
		updateItemUC:       updateItemUC,
		getItemUC:          getItemUC,
		listItemsUC:        listItemsUC,
		restockItemUC:      restockItemUC,
		adjustStockUC:      adjustStockUC,
		listTransactionsUC: listTransactionsUC,
		logger:             logger.NewLogger(),
	}
}

type ItemParamsRequest struct {
	PartNumber       string          `json:"part_number" binding:"required"`
	Name             string          `json:"name" binding:"required"`
	Description      string          `json:"description"`
	Manufacturer     string          `json:"manufacturer"`
	Model            string          `json:"model"`
	Quantity         int             `json:"quantity" binding:"min=0"`
	MinStock         int             `json:"min_stock" binding:"min=0"`
	MaxStock         int             `json:"max_stock" binding:"min=0"`
	Condition        string          `json:"condition"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	WeightGrams      int             `json:"weight_grams"`
	Dimensions       string          `json:"dimensions"`
	CompatibleModels []string        `json:"compatible_models"`
}

type UpdateItemRequest struct {
	ItemParamsRequest
	Active *bool `json:"active"`
}

type RestockRequest struct {
	Quantity int             `json:"quantity" binding:"required,min=1"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

type ItemResponse struct {
	ID               uint            `json:"id"`
	PartNumber       string          `json:"part_number"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Manufacturer     string          `json:"manufacturer,omitempty"`
	Model            string          `json:"model,omitempty"`
	Quantity         int             `json:"quantity"`
	MinStock         int             `json:"min_stock"`
	MaxStock         int             `json:"max_stock"`
	Condition        string          `json:"condition"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	WeightGrams      int             `json:"weight_grams,omitempty"`
	Dimensions       string          `json:"dimensions,omitempty"`
	CompatibleModels []string        `json:"compatible_models,omitempty"`
	Active           bool            `json:"active"`
	StockStatus      string          `json:"stock_status"`
	LowStock         bool            `json:"low_stock"`
	LastRestockedAt  *time.Time      `json:"last_restocked_at,omitempty"`
}

type TransactionResponse struct {
	ID            uint            `json:"id"`
	ItemID        uint            `json:"item_id"`
	Type          string          `json:"type"`
	Quantity      int             `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   uint            `json:"reference_id,omitempty"`
	ActorID       *uint           `json:"actor_id,omitempty"`
	Note          string          `json:"note,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

func itemToResponse(r *usecases.ItemResult) ItemResponse {
	return ItemResponse{
		ID:               r.ID,
		PartNumber:       r.PartNumber,
		Name:             r.Name,
		Description:      r.Description,
		Manufacturer:     r.Manufacturer,
		Model:            r.Model,
		Quantity:         r.Quantity,
		MinStock:         r.MinStock,
		MaxStock:         r.MaxStock,
		Condition:        r.Condition,
		UnitCost:         r.UnitCost,
		WeightGrams:      r.WeightGrams,
		Dimensions:       r.Dimensions,
		CompatibleModels: r.CompatibleModels,
		Active:           r.Active,
		StockStatus:      r.StockStatus,
		LowStock:         r.LowStock,
		LastRestockedAt:  r.LastRestockedAt,
	}
}

func itemParamsToCommand(req ItemParamsRequest) usecases.CreateItemCommand {
	return usecases.CreateItemCommand{
		PartNumber:       req.PartNumber,
		Name:             req.Name,
		Description:      req.Description,
		Manufacturer:     req.Manufacturer,
		Model:            req.Model,
		Quantity:         req.Quantity,
		MinStock:         req.MinStock,
		MaxStock:         req.MaxStock,
		Condition:        req.Condition,
		UnitCost:         req.UnitCost,
		WeightGrams:      req.WeightGrams,
		Dimensions:       req.Dimensions,
		CompatibleModels: req.CompatibleModels,
	}
}

func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req ItemParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create item", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid item payload")
		return
	}

	result, err := h.createItemUC.Execute(c.Request.Context(), itemParamsToCommand(req))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, itemToResponse(result), "inventory item created")
}

func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	itemID, err := utils.ParseUintParam(c, "id", "inventory item")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update item", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid item payload")
		return
	}

	result, err := h.updateItemUC.Execute(c.Request.Context(), usecases.UpdateItemCommand{
		ItemID: itemID,
		Params: itemParamsToCommand(req.ItemParamsRequest),
		Active: req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "inventory item updated", itemToResponse(result))
}

func (h *InventoryHandler) GetItem(c *gin.Context) {
	itemID, err := utils.ParseUintParam(c, "id", "inventory item")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getItemUC.Execute(c.Request.Context(), itemID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", itemToResponse(result))
}

func (h *InventoryHandler) ListItems(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listItemsUC.Execute(c.Request.Context(), usecases.ListItemsQuery{
		Search:       c.Query("search"),
		LowStockOnly: c.Query("low_stock") == "true",
		Pagination:   p,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]ItemResponse, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, itemToResponse(&result.Items[i]))
	}

	utils.ListSuccessResponse(c, items, result.Total, p.Page, p.PageSize)
}

func (h *InventoryHandler) RestockItem(c *gin.Context) {
	itemID, err := utils.ParseUintParam(c, "id", "inventory item")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for restock", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "quantity is required")
		return
	}

	actorID := utils.CurrentUserID(c)
	result, err := h.restockItemUC.Execute(c.Request.Context(), usecases.RestockItemCommand{
		ItemID:   itemID,
		Quantity: req.Quantity,
		UnitCost: req.UnitCost,
		ActorID:  &actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "item restocked", itemToResponse(result))
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	itemID, err := utils.ParseUintParam(c, "id", "inventory item")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for stock adjustment", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "delta and reason are required")
		return
	}

	actorID := utils.CurrentUserID(c)
	result, err := h.adjustStockUC.Execute(c.Request.Context(), usecases.AdjustStockCommand{
		ItemID:  itemID,
		Delta:   req.Delta,
		Reason:  req.Reason,
		ActorID: &actorID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "stock adjusted", itemToResponse(result))
}

func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	itemID, err := utils.ParseUintParam(c, "id", "inventory item")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	p := utils.ParsePagination(c)

	result, err := h.listTransactionsUC.Execute(c.Request.Context(), usecases.ListTransactionsQuery{
		ItemID:     itemID,
		Pagination: p,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	transactions := make([]TransactionResponse, 0, len(result.Transactions))
	for _, t := range result.Transactions {
		transactions = append(transactions, TransactionResponse{
			ID:            t.ID,
			ItemID:        t.ItemID,
			Type:          t.Type,
			Quantity:      t.Quantity,
			UnitCost:      t.UnitCost,
			TotalCost:     t.TotalCost,
			ReferenceType: string(t.Reference.Type),
			ReferenceID:   t.Reference.ID,
			ActorID:       t.ActorID,
			Note:          t.Note,
			CreatedAt:     t.CreatedAt,
		})
	}

	utils.ListSuccessResponse(c, transactions, result.Total, p.Page, p.PageSize)
}
