package rest

import (
	"context"
	"net/http"

	"fourthandshort/domain"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type (
	AdminHandler struct {
		ledger ModelLedgerLister
		store  VersionResolver
	}

	ModelLedgerLister interface {
		List(ctx context.Context) ([]domain.ModelRecord, error)
	}

	VersionResolver interface {
		CurrentVersion() (string, error)
	}
)

func NewAdminHandler(ledger ModelLedgerLister, store VersionResolver) *AdminHandler {
	return &AdminHandler{ledger: ledger, store: store}
}

// GET /api/v1/admin/models
func (h *AdminHandler) ListModels(c echo.Context) error {
	records, err := h.ledger.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(records))
}

// GET /api/v1/admin/models/current
func (h *AdminHandler) CurrentVersion(c echo.Context) error {
	version, err := h.store.CurrentVersion()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]string{"version": version}))
}
