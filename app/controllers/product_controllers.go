package controllers

import (
	"net/http"

	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/pkg/middleware"
	"github.com/beshgebeya/pos/pkg/response"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	service       *services.ProductService
	defaultBranch uint
}

func NewProductController(service *services.ProductService, defaultBranch uint) *ProductController {
	return &ProductController{service: service, defaultBranch: defaultBranch}
}

type createProductRequest struct {
	Name        string          `json:"name"        validate:"required,max=100"`
	LocalName   string          `json:"local_name"  validate:"nullable,max=100"`
	Description string          `json:"description"`
	SKU         string          `json:"sku"         validate:"required,max=50"`
	Barcode     string          `json:"barcode"     validate:"nullable,max=50"`
	LocalCode   string          `json:"local_code"  validate:"nullable,max=50"`
	Category    string          `json:"category"    validate:"required,max=50"`
	Brand       string          `json:"brand"       validate:"nullable,max=100"`
	Supplier    string          `json:"supplier"    validate:"nullable,max=100"`
	UnitPrice   decimal.Decimal `json:"unit_price"  validate:"required,gt=0"`
	CostPrice   decimal.Decimal `json:"cost_price"  validate:"gte=0"`
}

func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.ListProducts(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, products)
}

func (c *ProductController) Store(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if !decode(w, r, &req) {
		return
	}

	product, err := c.service.CreateProduct(r.Context(), services.ProductInput{
		Name:        req.Name,
		LocalName:   req.LocalName,
		Description: req.Description,
		SKU:         req.SKU,
		Barcode:     req.Barcode,
		LocalCode:   req.LocalCode,
		Category:    req.Category,
		Brand:       req.Brand,
		Supplier:    req.Supplier,
		UnitPrice:   req.UnitPrice,
		CostPrice:   req.CostPrice,
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, product)
}

type searchRequest struct {
	Code string `json:"code" validate:"required,max=50"`
}

// Search resolves a scanned barcode or local code at the caller's branch.
func (c *ProductController) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decode(w, r, &req) {
		return
	}

	res, err := c.service.FindByCode(r.Context(), req.Code, branchOf(r, c.defaultBranch))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, res)
}

func branchOf(r *http.Request, fallback uint) uint {
	if id, ok := middleware.BranchFromCtx(r); ok {
		return id
	}
	return fallback
}
