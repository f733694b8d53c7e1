package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/queue"
	"github.com/Ryan-Badaloo/Inventory-Back-End/internal/repository"
	queue_publisher "github.com/Ryan-Badaloo/Inventory-Back-End/internal/service"
)

// DeviceHandler implements the device catalog write endpoints: the plain add,
// the five category-specific adds, delete, assignment and status moves.
type DeviceHandler struct {
	Devices *repository.DeviceRepo
}

func NewDeviceHandler(d *repository.DeviceRepo) *DeviceHandler {
	return &DeviceHandler{Devices: d}
}

// deviceReq carries the root fields shared by every category's add request.
type deviceReq struct {
	Category        string  `json:"category"`
	Brand           string  `json:"brand"`
	Model           string  `json:"model"`
	SerialNumber    string  `json:"serial_number"`
	InventoryNumber *int64  `json:"inventory_number"`
	DeliveryDate    *string `json:"delivery_date"`
	DeploymentDate  *string `json:"deployment_date"`
	StatusID        *uint64 `json:"status_id"`
	DivisionID      *uint64 `json:"division_id"`
}

func (r deviceReq) toDevice() repository.Device {
	return repository.Device{
		Category:        r.Category,
		Brand:           r.Brand,
		Model:           r.Model,
		SerialNumber:    r.SerialNumber,
		InventoryNumber: r.InventoryNumber,
		DeliveryDate:    r.DeliveryDate,
		DeploymentDate:  r.DeploymentDate,
		StatusID:        r.StatusID,
		DivisionID:      r.DivisionID,
	}
}

func (r deviceReq) validate() error {
	if r.Brand == "" || r.Model == "" || r.SerialNumber == "" {
		return errors.New("brand/model/serial_number required")
	}
	return nil
}

// publishEvent fires an inventory event without blocking or failing the
// request that produced it.
func publishEvent(ev queue.InventoryEvent) {
	ev.OccurredAt = time.Now().UTC().Format(time.RFC3339)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishInventoryEvent(ctx, ev)
	}()
}

// AddDevice handles POST /add-device/ for categories with no extension table.
func (h *DeviceHandler) AddDevice(c echo.Context) error {
	var req deviceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "category required"})
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d := req.toDevice()
	if err := h.Devices.Create(ctx, &d, actorName(c)); err != nil {
		if errors.Is(err, repository.ErrSerialExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "serial number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add device failed"})
	}
	publishEvent(queue.InventoryEvent{
		Action: queue.ActionDeviceAdded, Category: d.Category,
		SerialNumber: d.SerialNumber, Actor: actorName(c),
	})
	return c.JSON(http.StatusCreated, echo.Map{"message": "Device added successfully"})
}

// addWithDetail is the shared tail of the five category endpoints: fill the
// default category when the request left it blank, then insert the device row
// and its extension atomically.
func (h *DeviceHandler) addWithDetail(c echo.Context, req deviceReq, defaultCategory string, detail repository.DeviceDetail) error {
	if req.Category == "" {
		req.Category = defaultCategory
	}
	if err := req.validate(); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d := req.toDevice()
	if err := h.Devices.CreateWithDetail(ctx, &d, detail, actorName(c)); err != nil {
		if errors.Is(err, repository.ErrSerialExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "serial number already exists"})
		}
		// Rollback already happened; nothing partial survives.
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add device failed"})
	}
	publishEvent(queue.InventoryEvent{
		Action: queue.ActionDeviceAdded, Category: d.Category,
		SerialNumber: d.SerialNumber, Actor: actorName(c),
	})
	return c.JSON(http.StatusCreated, echo.Map{"message": "Device added successfully"})
}

type laptopReq struct {
	deviceReq
	repository.LaptopDetail
}

// AddLaptop handles POST /add-laptop/.
func (h *DeviceHandler) AddLaptop(c echo.Context) error {
	var req laptopReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	detail := req.LaptopDetail
	return h.addWithDetail(c, req.deviceReq, repository.CategoryLaptop,
		repository.DeviceDetail{Laptop: &detail})
}

type tabletReq struct {
	deviceReq
	repository.TabletDetail
}

// AddTablet handles POST /add-tablet/.
func (h *DeviceHandler) AddTablet(c echo.Context) error {
	var req tabletReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	detail := req.TabletDetail
	return h.addWithDetail(c, req.deviceReq, repository.CategoryTablet,
		repository.DeviceDetail{Tablet: &detail})
}

type mouseKeyboardReq struct {
	deviceReq
	repository.PeripheralDetail
}

// AddMouseKeyboard handles POST /add-mouse-keyboard/.  The category defaults
// to Mouse when the request does not say which peripheral it is.
func (h *DeviceHandler) AddMouseKeyboard(c echo.Context) error {
	var req mouseKeyboardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	detail := req.PeripheralDetail
	return h.addWithDetail(c, req.deviceReq, repository.CategoryMouse,
		repository.DeviceDetail{Peripheral: &detail})
}

type printerReq struct {
	deviceReq
	repository.PrinterDetail
}

// AddPrinter handles POST /add-printer/.
func (h *DeviceHandler) AddPrinter(c echo.Context) error {
	var req printerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	detail := req.PrinterDetail
	return h.addWithDetail(c, req.deviceReq, repository.CategoryPrinter,
		repository.DeviceDetail{Printer: &detail})
}

type cravReq struct {
	deviceReq
	repository.CRAVDetail
}

// AddCRAVEquipment handles POST /add-crav-equipment/.
func (h *DeviceHandler) AddCRAVEquipment(c echo.Context) error {
	var req cravReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	detail := req.CRAVDetail
	return h.addWithDetail(c, req.deviceReq, repository.CategoryCRAV,
		repository.DeviceDetail{CRAV: &detail})
}

// GetItemBySerial handles GET /get-item-sn/?serial_number=&category=.  The
// category picks which extension table to merge into the response; unknown
// categories return the device with its lookup names only.
func (h *DeviceHandler) GetItemBySerial(c echo.Context) error {
	serial := c.QueryParam("serial_number")
	if serial == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "serial_number required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rec, err := h.Devices.GetBySerial(ctx, serial, c.QueryParam("category"))
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "device not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, rec)
}

type serialReq struct {
	SerialNumber string `json:"serial_number"`
}

// DeleteItem handles DELETE /delete-item/.  The device, its category
// extension and its comments go together or not at all.
func (h *DeviceHandler) DeleteItem(c echo.Context) error {
	var req serialReq
	if err := c.Bind(&req); err != nil || req.SerialNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "serial_number required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Devices.Delete(ctx, req.SerialNumber); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "device not found"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	publishEvent(queue.InventoryEvent{
		Action: queue.ActionDeviceDeleted, SerialNumber: req.SerialNumber, Actor: actorName(c),
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Device deleted successfully"})
}

type assignReq struct {
	SerialNumber string `json:"serial_number"`
	ClientID     uint64 `json:"client_id"`
}

// AssignDevice handles PUT /assign-device/.  The client must exist; a device
// is never left pointing at a client id nobody has.
func (h *DeviceHandler) AssignDevice(c echo.Context) error {
	var req assignReq
	if err := c.Bind(&req); err != nil || req.SerialNumber == "" || req.ClientID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "serial_number/client_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Devices.Assign(ctx, req.SerialNumber, req.ClientID, actorName(c)); err != nil {
		switch {
		case errors.Is(err, repository.ErrDeviceNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "device not found"})
		case errors.Is(err, repository.ErrClientNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "client not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assign failed"})
	}
	clientID := req.ClientID
	publishEvent(queue.InventoryEvent{
		Action: queue.ActionAssigned, SerialNumber: req.SerialNumber,
		Actor: actorName(c), ClientID: &clientID,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Device assigned successfully"})
}

// UnassignItem handles POST /unassign-item/.
func (h *DeviceHandler) UnassignItem(c echo.Context) error {
	var req serialReq
	if err := c.Bind(&req); err != nil || req.SerialNumber == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "serial_number required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Devices.Unassign(ctx, req.SerialNumber, actorName(c)); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "device not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "unassign failed"})
	}
	publishEvent(queue.InventoryEvent{
		Action: queue.ActionUnassigned, SerialNumber: req.SerialNumber, Actor: actorName(c),
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Device unassigned successfully"})
}

type statusReq struct {
	SerialNumber string `json:"serial_number"`
	StatusID     uint64 `json:"status_id"`
}

// UpdateStatus handles PUT /update-status/.  Unknown status ids are rejected
// before the write.
func (h *DeviceHandler) UpdateStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil || req.SerialNumber == "" || req.StatusID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "serial_number/status_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Devices.UpdateStatus(ctx, req.SerialNumber, req.StatusID, actorName(c)); err != nil {
		switch {
		case errors.Is(err, repository.ErrDeviceNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "device not found"})
		case errors.Is(err, repository.ErrStatusNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "status not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	statusID := req.StatusID
	publishEvent(queue.InventoryEvent{
		Action: queue.ActionStatusChanged, SerialNumber: req.SerialNumber,
		Actor: actorName(c), StatusID: &statusID,
	})
	return c.JSON(http.StatusOK, echo.Map{"message": "Status updated successfully"})
}
