package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/repository"
)

// QueryHandler implements the read-only search, filter and report endpoints.
type QueryHandler struct {
	Devices *repository.DeviceRepo
	Reports *repository.ReportRepo
}

func NewQueryHandler(d *repository.DeviceRepo, r *repository.ReportRepo) *QueryHandler {
	return &QueryHandler{Devices: d, Reports: r}
}

// filterError maps the search builder's sentinels onto a 400; anything else
// is a server fault.
func filterError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrUnknownFilter) || errors.Is(err, repository.ErrBadDate) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
}

// GetItems handles GET /get-items/?filter_field=&filter_value=.  Without a
// filter field it returns every device joined with status, division and
// client names.
func (h *QueryHandler) GetItems(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Devices.Search(ctx, c.QueryParam("filter_field"), c.QueryParam("filter_value"))
	if err != nil {
		return filterError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetAssignedItems handles GET /get-assigned-items/ with the same filtering,
// restricted to devices that currently have a client.
func (h *QueryHandler) GetAssignedItems(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Devices.SearchAssigned(ctx, c.QueryParam("filter_field"), c.QueryParam("filter_value"))
	if err != nil {
		return filterError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// FilterDevices handles POST /filter-devices/ with inclusion sets per
// dimension ANDed together.
func (h *QueryHandler) FilterDevices(c echo.Context) error {
	var f repository.MultiFilter
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Devices.FilterMulti(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}

// FilterDeliveryDate handles GET /filter-delivery-date/?date=YYYY-MM-DD and
// returns devices delivered on or after that date.
func (h *QueryHandler) FilterDeliveryDate(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Devices.DeliveredSince(ctx, c.QueryParam("date"))
	if err != nil {
		return filterError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// FilterDeploymentDate handles GET /filter-deployment-date/?date=YYYY-MM-DD.
func (h *QueryHandler) FilterDeploymentDate(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Devices.DeployedSince(ctx, c.QueryParam("date"))
	if err != nil {
		return filterError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GetAllLocations handles GET /get-all-locations/ and returns per-location
// device counts grouped by category.
func (h *QueryHandler) GetAllLocations(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Reports.LocationCategoryCounts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, out)
}
