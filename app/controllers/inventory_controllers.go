package controllers

import (
	"net/http"
	"time"

	"github.com/beshgebeya/pos/app/models"
	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/pkg/response"
	"github.com/beshgebeya/pos/pkg/validate"
)

type InventoryController struct {
	service       *services.InventoryService
	defaultBranch uint
}

func NewInventoryController(service *services.InventoryService, defaultBranch uint) *InventoryController {
	return &InventoryController{service: service, defaultBranch: defaultBranch}
}

type upsertStockRequest struct {
	ProductID    uint   `json:"product_id"    validate:"required"`
	BranchID     uint   `json:"branch_id"`
	Quantity     int    `json:"quantity"      validate:"gte=0"`
	ThresholdMin *int   `json:"threshold_min" validate:"nullable,gte=0"`
	ExpiryDate   string `json:"expiry_date"   validate:"nullable,date"`
	BatchNumber  string `json:"batch_number"  validate:"nullable,max=50"`
	Status       string `json:"status"        validate:"nullable,max=20,alpha_dash"`
}

func (c *InventoryController) Index(w http.ResponseWriter, r *http.Request) {
	records, err := c.service.ListStock(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, records)
}

func (c *InventoryController) Store(w http.ResponseWriter, r *http.Request) {
	var req upsertStockRequest
	if !decode(w, r, &req) {
		return
	}

	branchID := req.BranchID
	if branchID == 0 {
		branchID = branchOf(r, c.defaultBranch)
	}

	var expiry *time.Time
	if req.ExpiryDate != "" {
		t, _ := validate.ParseDate(req.ExpiryDate)
		expiry = &t
	}

	rec, err := c.service.UpsertStock(r.Context(), services.StockInput{
		ProductID:    req.ProductID,
		BranchID:     branchID,
		Quantity:     req.Quantity,
		ThresholdMin: req.ThresholdMin,
		ExpiryDate:   expiry,
		BatchNumber:  req.BatchNumber,
		Status:       models.StockStatus(req.Status),
	})
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, rec)
}
