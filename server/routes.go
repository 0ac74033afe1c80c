package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gopkg.in/mgo.v2/bson"

	"github.com/intervention-engine/strokerisk/assessment"
	"github.com/intervention-engine/strokerisk/export"
	"github.com/intervention-engine/strokerisk/service"
	"github.com/intervention-engine/strokerisk/store"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// RiskLevelInfo describes one risk level for display
type RiskLevelInfo struct {
	Level assessment.RiskLevel `json:"level"`
	Label string               `json:"label"`
	Color string               `json:"color"`
}

// RegisterRoutes sets up the http request handlers with Echo
func RegisterRoutes(e *echo.Echo, checks store.CheckStore, rs service.RiskService, logger *zap.Logger) {
	h := &handlers{checks: checks, service: rs, logger: logger}

	e.POST("/evaluate", h.evaluate)
	e.POST("/checks", h.createCheck)
	e.GET("/checks", h.listChecks)
	e.GET("/checks/export", h.exportChecks)
	e.GET("/checks/:id", h.getCheck)
	e.GET("/pies/:id", h.getPie)
	e.GET("/risk-levels", h.riskLevels)
}

type handlers struct {
	checks  store.CheckStore
	service service.RiskService
	logger  *zap.Logger
}

func (h *handlers) evaluate(c echo.Context) error {
	var in assessment.RiskFactorInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed risk factor input")
	}
	eval, err := h.service.Evaluate(in)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, eval)
}

func (h *handlers) createCheck(c echo.Context) error {
	var req service.CheckRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed check request")
	}
	check, err := h.service.Calculate(c.Request().Context(), req)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(http.StatusCreated, check)
}

func (h *handlers) listChecks(c echo.Context) error {
	limit, err := listLimit(c)
	if err != nil {
		return err
	}
	checks, err := h.checks.ListChecks(c.Request().Context(), limit)
	if err != nil {
		return h.internalError("ListChecks failed", err)
	}
	return c.JSON(http.StatusOK, checks)
}

func (h *handlers) exportChecks(c echo.Context) error {
	limit, err := listLimit(c)
	if err != nil {
		return err
	}
	checks, err := h.checks.ListChecks(c.Request().Context(), limit)
	if err != nil {
		return h.internalError("ListChecks failed", err)
	}
	data, err := export.GenerateChecksExport(checks)
	if err != nil {
		return h.internalError("GenerateChecksExport failed", err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="stroke-checks.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, data)
}

func (h *handlers) getCheck(c echo.Context) error {
	check, err := h.checks.FindCheck(c.Request().Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Check not found")
	} else if err != nil {
		return h.internalError("FindCheck failed", err)
	}
	return c.JSON(http.StatusOK, check)
}

func (h *handlers) getPie(c echo.Context) error {
	id := c.Param("id")
	if !bson.IsObjectIdHex(id) {
		return c.String(http.StatusBadRequest, "Bad ID format for requested Pie. Should be a BSON Id")
	}
	pie, err := h.checks.FindPie(c.Request().Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Pie not found")
	} else if err != nil {
		return h.internalError("FindPie failed", err)
	}
	return c.JSON(http.StatusOK, pie)
}

func (h *handlers) riskLevels(c echo.Context) error {
	levels := make([]RiskLevelInfo, len(assessment.RiskLevels))
	for i, level := range assessment.RiskLevels {
		levels[i] = RiskLevelInfo{Level: level, Label: level.Label(), Color: level.Color()}
	}
	return c.JSON(http.StatusOK, levels)
}

func (h *handlers) serviceError(c echo.Context, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"message": "Invalid risk check",
			"fields":  verr.Fields,
		})
	}
	return h.internalError("risk calculation failed", err)
}

func (h *handlers) internalError(msg string, err error) error {
	h.logger.Error(msg, zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}

// listLimit reads ?limit=, defaulting to 50 and capped at 500
func listLimit(c echo.Context) (int, error) {
	raw := c.QueryParam("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return limit, nil
}
