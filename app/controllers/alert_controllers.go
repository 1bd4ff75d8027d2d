package controllers

import (
	"net/http"
	"strconv"

	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/pkg/bind"
	"github.com/beshgebeya/pos/pkg/response"
	"github.com/go-chi/chi/v5"
)

type AlertController struct {
	service *services.AlertService
}

func NewAlertController(service *services.AlertService) *AlertController {
	return &AlertController{service: service}
}

// Generate runs an evaluation now and returns the fresh set.
func (c *AlertController) Generate(w http.ResponseWriter, r *http.Request) {
	alerts, err := c.service.Evaluate(r.Context())
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

func (c *AlertController) Index(w http.ResponseWriter, r *http.Request) {
	alerts, err := c.service.ListAlerts(r.Context(), bind.QueryBool(r, "unread"), bind.QueryInt(r, "limit", 0))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, alerts)
}

func (c *AlertController) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(w, "invalid alert id")
		return
	}

	if err := c.service.MarkRead(r.Context(), uint(id)); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "Alert marked as read")
}
