package controllers

import (
	"net/http"
	"strconv"

	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/pkg/bind"
	"github.com/beshgebeya/pos/pkg/middleware"
	"github.com/beshgebeya/pos/pkg/response"
	"github.com/go-chi/chi/v5"
)

type SaleController struct {
	service       *services.SaleService
	defaultBranch uint
}

func NewSaleController(service *services.SaleService, defaultBranch uint) *SaleController {
	return &SaleController{service: service, defaultBranch: defaultBranch}
}

type saleLine struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"required,gt=0"`
}

type recordSaleRequest struct {
	Items       []saleLine `json:"items"        validate:"required,dive"`
	PaymentType string     `json:"payment_type" validate:"nullable,max=20"`
}

// Store records one basket at the caller's branch.
func (c *SaleController) Store(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var req recordSaleRequest
	if !decode(w, r, &req) {
		return
	}

	lines := make([]services.LineRequest, len(req.Items))
	for i, item := range req.Items {
		lines[i] = services.LineRequest{ProductID: item.ProductID, Quantity: item.Quantity}
	}

	sale, err := c.service.RecordSale(r.Context(), userID, branchOf(r, c.defaultBranch), req.PaymentType, lines)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Created(w, map[string]interface{}{
		"sale_id":   sale.ID,
		"reference": sale.Reference,
		"total":     sale.TotalAmount.StringFixed(2),
		"sale":      sale,
	})
}

func (c *SaleController) Index(w http.ResponseWriter, r *http.Request) {
	sales, page, err := c.service.ListSales(r.Context(), bind.QueryInt(r, "page", 1), bind.QueryInt(r, "limit", 50))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, sales, page)
}

func (c *SaleController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(w, "invalid sale id")
		return
	}

	sale, err := c.service.FindSale(r.Context(), uint(id))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, sale)
}
