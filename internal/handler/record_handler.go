package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "recordshop/internal/errors"
	"recordshop/internal/model"
	"recordshop/internal/service"
)

// RecordHandler handles inventory endpoints.
type RecordHandler struct {
	recordService service.RecordService
}

// NewRecordHandler creates a new record handler.
func NewRecordHandler(recordService service.RecordService) *RecordHandler {
	return &RecordHandler{recordService: recordService}
}

// DeleteResponse echoes the removed record.
type DeleteResponse struct {
	Message string       `json:"message"`
	Record  model.Record `json:"record"`
}

// ListRecords godoc
// @Summary List records
// @Tags records
// @Produce json
// @Success 200 {array} model.Record
// @Failure 500 {object} errors.ErrorResponse
// @Router /records [get]
func (h *RecordHandler) ListRecords(c echo.Context) error {
	records, err := h.recordService.ListRecords(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, records)
}

// GetRecord godoc
// @Summary Get a record
// @Tags records
// @Produce json
// @Param id path int true "Record ID"
// @Success 200 {object} model.Record
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/{id} [get]
func (h *RecordHandler) GetRecord(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}

	record, err := h.recordService.GetRecord(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// CreateRecord godoc
// @Summary Add a record
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.RecordInput true "Record fields"
// @Success 201 {object} model.Record
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /records [post]
func (h *RecordHandler) CreateRecord(c echo.Context) error {
	var in model.RecordInput
	if err := c.Bind(&in); err != nil {
		return invalidBody()
	}

	record, err := h.recordService.CreateRecord(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, record)
}

// UpdateRecord godoc
// @Summary Update a record
// @Description Fields absent from the body keep their stored value. An id in the body is ignored.
// @Tags records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param request body model.RecordPatch true "Fields to change"
// @Success 200 {object} model.Record
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/{id} [put]
func (h *RecordHandler) UpdateRecord(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}

	var patch model.RecordPatch
	if err := c.Bind(&patch); err != nil {
		return invalidBody()
	}

	record, err := h.recordService.UpdateRecord(c.Request().Context(), id, patch)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, record)
}

// DeleteRecord godoc
// @Summary Delete a record
// @Tags records
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {object} DeleteResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/{id} [delete]
func (h *RecordHandler) DeleteRecord(c echo.Context) error {
	id, err := recordID(c)
	if err != nil {
		return err
	}

	record, err := h.recordService.DeleteRecord(c.Request().Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, DeleteResponse{Message: apperrors.MsgRecordDeleted, Record: *record})
}

func recordID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Message: "invalid record id",
			Code:    "INVALID_ID",
		})
	}
	return uint(id), nil
}

func invalidBody() error {
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Message: "invalid request body",
		Code:    "INVALID_BODY",
	})
}
