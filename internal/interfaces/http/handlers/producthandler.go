package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"skywrench/internal/application/product/usecases"
	"skywrench/internal/domain/product"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type ProductHandler struct {
	createProductUC *usecases.CreateProductUseCase
	updateProductUC *usecases.UpdateProductUseCase
	deleteProductUC *usecases.DeleteProductUseCase
	recordServiceUC *usecases.RecordProductServiceUseCase
	getProductUC    *usecases.GetProductUseCase
	listProductsUC  *usecases.ListProductsUseCase
	companiesUC     *usecases.ManageCompaniesUseCase
	categoriesUC    *usecases.ManageCategoriesUseCase
	logger          logger.Interface
}

func NewProductHandler(
	createProductUC *usecases.CreateProductUseCase,
	updateProductUC *usecases.UpdateProductUseCase,
	deleteProductUC *usecases.DeleteProductUseCase,
	recordServiceUC *usecases.RecordProductServiceUseCase,
	getProductUC *usecases.GetProductUseCase,
	listProductsUC *usecases.ListProductsUseCase,
	companiesUC *usecases.ManageCompaniesUseCase,
	categoriesUC *usecases.ManageCategoriesUseCase,
) *ProductHandler {
	return &ProductHandler{
		createProductUC: createProductUC,
		updateProductUC: updateProductUC,
		deleteProductUC: deleteProductUC,
		recordServiceUC: recordServiceUC,
		getProductUC:    getProductUC,
		listProductsUC:  listProductsUC,
		companiesUC:     companiesUC,
		categoriesUC:    categoriesUC,
		logger:          logger.NewLogger(),
	}
}

type SpecificationRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
	Unit  string `json:"unit"`
}

type ProductParamsRequest struct {
	Code             string                 `json:"code" binding:"required"`
	Name             string                 `json:"name" binding:"required"`
	SerialNumber     string                 `json:"serial_number"`
	Description      string                 `json:"description"`
	Manufacturer     string                 `json:"manufacturer"`
	ModelYear        int                    `json:"model_year"`
	WeightGrams      int                    `json:"weight_grams"`
	MaxFlightTimeMin int                    `json:"max_flight_time_min"`
	BatteryCapacity  int                    `json:"battery_capacity_mah"`
	Price            decimal.Decimal        `json:"price"`
	CategoryID       *uint                  `json:"category_id"`
	CompanyID        uint                   `json:"company_id" binding:"required"`
	Specifications   []SpecificationRequest `json:"specifications"`
	Availability     string                 `json:"availability" binding:"omitempty,oneof=AVAILABLE DISCONTINUED PRE_ORDER"`
}

type UpdateProductRequest struct {
	ProductParamsRequest
	Active *bool `json:"active"`
}

type RecordServiceRequest struct {
	ServicedAt time.Time `json:"serviced_at" binding:"required"`
}

type ProductResponse struct {
	ID               uint                    `json:"id"`
	Code             string                  `json:"code"`
	Name             string                  `json:"name"`
	SerialNumber     string                  `json:"serial_number,omitempty"`
	Description      string                  `json:"description,omitempty"`
	Manufacturer     string                  `json:"manufacturer,omitempty"`
	ModelYear        int                     `json:"model_year,omitempty"`
	WeightGrams      int                     `json:"weight_grams,omitempty"`
	MaxFlightTimeMin int                     `json:"max_flight_time_min,omitempty"`
	BatteryCapacity  int                     `json:"battery_capacity_mah,omitempty"`
	Price            decimal.Decimal         `json:"price"`
	CategoryID       *uint                   `json:"category_id,omitempty"`
	CompanyID        uint                    `json:"company_id"`
	Specifications   []product.Specification `json:"specifications,omitempty"`
	Availability     string                  `json:"availability"`
	Active           bool                    `json:"active"`
	LastServicedAt   *time.Time              `json:"last_serviced_at,omitempty"`
	NextServiceDueAt *time.Time              `json:"next_service_due_at,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

func productToResponse(r *usecases.ProductResult) ProductResponse {
	return ProductResponse{
		ID:               r.ID,
		Code:             r.Code,
		Name:             r.Name,
		SerialNumber:     r.SerialNumber,
		Description:      r.Description,
		Manufacturer:     r.Manufacturer,
		ModelYear:        r.ModelYear,
		WeightGrams:      r.WeightGrams,
		MaxFlightTimeMin: r.MaxFlightTimeMin,
		BatteryCapacity:  r.BatteryCapacity,
		Price:            r.Price,
		CategoryID:       r.CategoryID,
		CompanyID:        r.CompanyID,
		Specifications:   r.Specifications,
		Availability:     r.Availability,
		Active:           r.Active,
		LastServicedAt:   r.LastServicedAt,
		NextServiceDueAt: r.NextServiceDueAt,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func productParamsToCommand(req ProductParamsRequest) usecases.ProductCommand {
	specs := make([]product.Specification, 0, len(req.Specifications))
	for _, s := range req.Specifications {
		specs = append(specs, product.Specification{Key: s.Key, Value: s.Value, Unit: s.Unit})
	}
	return usecases.ProductCommand{
		Code:             req.Code,
		Name:             req.Name,
		SerialNumber:     req.SerialNumber,
		Description:      req.Description,
		Manufacturer:     req.Manufacturer,
		ModelYear:        req.ModelYear,
		WeightGrams:      req.WeightGrams,
		MaxFlightTimeMin: req.MaxFlightTimeMin,
		BatteryCapacity:  req.BatteryCapacity,
		Price:            req.Price,
		CategoryID:       req.CategoryID,
		CompanyID:        req.CompanyID,
		Specifications:   specs,
		Availability:     req.Availability,
	}
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductParamsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create product", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.createProductUC.Execute(c.Request.Context(), productParamsToCommand(req))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, productToResponse(result), "product created")
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := utils.ParseUintParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update product", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.updateProductUC.Execute(c.Request.Context(), usecases.UpdateProductCommand{
		ProductID:      productID,
		ProductCommand: productParamsToCommand(req.ProductParamsRequest),
		Active:         req.Active,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "product updated", productToResponse(result))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := utils.ParseUintParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteProductUC.Execute(c.Request.Context(), productID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "product deleted", nil)
}

func (h *ProductHandler) RecordService(c *gin.Context) {
	productID, err := utils.ParseUintParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RecordServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for record service", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.recordServiceUC.Execute(c.Request.Context(), productID, req.ServicedAt)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "product service recorded", productToResponse(result))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := utils.ParseUintParam(c, "id", "product")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getProductUC.Execute(c.Request.Context(), productID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", productToResponse(result))
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	p := utils.ParsePagination(c)

	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil && id > 0 {
			parsed := uint(id)
			categoryID = &parsed
		}
	}

	results, total, err := h.listProductsUC.Execute(c.Request.Context(), usecases.ListProductsQuery{
		Search:     c.Query("search"),
		CategoryID: categoryID,
		ActiveOnly: c.Query("active") == "true",
		Offset:     p.Offset(),
		Limit:      p.PageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	products := make([]ProductResponse, 0, len(results))
	for _, r := range results {
		products = append(products, productToResponse(r))
	}

	utils.ListSuccessResponse(c, products, total, p.Page, p.PageSize)
}

type CompanyRequest struct {
	Name               string `json:"name" binding:"required"`
	RegistrationNumber string `json:"registration_number"`
	Website            string `json:"website"`
	Email              string `json:"email" binding:"omitempty,email"`
	Phone              string `json:"phone"`
	Address            string `json:"address"`
	City               string `json:"city"`
	Country            string `json:"country"`
}

type CompanyResponse struct {
	ID                 uint      `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	Website            string    `json:"website,omitempty"`
	Email              string    `json:"email,omitempty"`
	Phone              string    `json:"phone,omitempty"`
	Address            string    `json:"address,omitempty"`
	City               string    `json:"city,omitempty"`
	Country            string    `json:"country,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func companyToResponse(r *usecases.CompanyResult) CompanyResponse {
	return CompanyResponse{
		ID:                 r.ID,
		Name:               r.Name,
		RegistrationNumber: r.RegistrationNumber,
		Website:            r.Website,
		Email:              r.Email,
		Phone:              r.Phone,
		Address:            r.Address,
		City:               r.City,
		Country:            r.Country,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func companyRequestToCommand(req CompanyRequest) usecases.CompanyCommand {
	return usecases.CompanyCommand{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Website:            req.Website,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		City:               req.City,
		Country:            req.Country,
	}
}

func (h *ProductHandler) CreateCompany(c *gin.Context) {
	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create company", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.companiesUC.Create(c.Request.Context(), companyRequestToCommand(req))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, companyToResponse(result), "company created")
}

func (h *ProductHandler) UpdateCompany(c *gin.Context) {
	companyID, err := utils.ParseUintParam(c, "id", "company")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update company", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.companiesUC.Update(c.Request.Context(), companyID, companyRequestToCommand(req))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "company updated", companyToResponse(result))
}

func (h *ProductHandler) ListCompanies(c *gin.Context) {
	p := utils.ParsePagination(c)

	results, total, err := h.companiesUC.List(c.Request.Context(), p.Offset(), p.PageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	companies := make([]CompanyResponse, 0, len(results))
	for _, r := range results {
		companies = append(companies, companyToResponse(r))
	}

	utils.ListSuccessResponse(c, companies, total, p.Page, p.PageSize)
}

type CategoryRequest struct {
	Code        string `json:"code"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Code        string `json:"code,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create category", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, utils.BindingErrorMessage(err))
		return
	}

	result, err := h.categoriesUC.Create(c.Request.Context(), usecases.CategoryCommand{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, CategoryResponse{ID: result.ID, Code: result.Code, Name: result.Name, Description: result.Description}, "category created")
}

func (h *ProductHandler) ListCategories(c *gin.Context) {
	results, err := h.categoriesUC.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	categories := make([]CategoryResponse, 0, len(results))
	for _, r := range results {
		categories = append(categories, CategoryResponse{ID: r.ID, Code: r.Code, Name: r.Name, Description: r.Description})
	}

	utils.SuccessResponse(c, http.StatusOK, "", categories)
}
