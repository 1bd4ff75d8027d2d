package controllers

import (
	"errors"
	"net/http"

	"github.com/beshgebeya/pos/app/services"
	"github.com/beshgebeya/pos/pkg/bind"
	"github.com/beshgebeya/pos/pkg/logger"
	"github.com/beshgebeya/pos/pkg/response"
)

// fail maps a service error onto the API envelope. Errors the caller can
// act on keep their message; anything else is logged and hidden.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var missing *services.ProductNotFoundError
	var short *services.InsufficientStockError

	switch {
	case errors.As(err, &missing):
		response.ErrorWithData(w, http.StatusNotFound, err.Error(), map[string]uint{"product_id": missing.ProductID})
	case errors.As(err, &short):
		response.ErrorWithData(w, http.StatusConflict, err.Error(), map[string]interface{}{
			"product_id": short.ProductID,
			"requested":  short.Requested,
			"available":  short.Available,
		})
	case errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrAlertNotFound),
		errors.Is(err, services.ErrSaleNotFound),
		errors.Is(err, services.ErrUserNotFound):
		response.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrDuplicateCode):
		response.Conflict(w, err.Error())
	case errors.Is(err, services.ErrEmptySale),
		errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidStock):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("request failed", "path", r.URL.Path, "error", err)
		response.InternalError(w)
	}
}

// decode binds and validates the body, writing the error response itself.
// It reports whether the handler should continue.
func decode(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	errs, err := bind.JSON(r, dest)
	if err != nil {
		response.BadRequest(w, err.Error())
		return false
	}
	if errs != nil {
		response.ValidationError(w, errs)
		return false
	}
	return true
}
