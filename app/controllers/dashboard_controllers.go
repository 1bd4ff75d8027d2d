package controllers

import (
	"net/http"
	"time"

	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/pkg/response"
)

type DashboardController struct {
	service *services.DashboardService
	Clock   func() time.Time
}

func NewDashboardController(service *services.DashboardService) *DashboardController {
	return &DashboardController{service: service, Clock: time.Now}
}

func (c *DashboardController) Summary(w http.ResponseWriter, r *http.Request) {
	sum, err := c.service.Summary(r.Context(), c.Clock())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, sum)
}

// Admin is mounted behind rbac.Admin.
func (c *DashboardController) Admin(w http.ResponseWriter, r *http.Request) {
	overview, err := c.service.AdminOverview(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, overview)
}
