package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/minseo-dev/customerdesk/internal/service"
)

type CustomerHandler struct {
	svc *service.CustomerService
	log zerolog.Logger
}

func NewCustomerHandler(svc *service.CustomerService, log zerolog.Logger) *CustomerHandler {
	return &CustomerHandler{svc: svc, log: log}
}

// List возвращает все записи либо результат поиска по ?search=.
func (h *CustomerHandler) List(c echo.Context) error {
	keyword := c.QueryParam("search")

	var (
		customers any
		err       error
	)
	if keyword != "" {
		customers, err = h.svc.Search(c.Request().Context(), keyword)
	} else {
		customers, err = h.svc.List(c.Request().Context())
	}
	if err != nil {
		h.log.Error().Err(err).Msg("list customers")
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error": "failed to load customers",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"customers": customers,
		"search":    keyword,
	})
}

// Create добавляет запись.
func (h *CustomerHandler) Create(c echo.Context) error {
	var in service.CustomerInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	id, res := h.svc.Add(c.Request().Context(), in)
	if !res.OK() {
		return h.renderResult(c, res)
	}

	customer, getRes := h.svc.Get(c.Request().Context(), id)
	if !getRes.OK() {
		return h.renderResult(c, getRes)
	}

	return c.JSON(http.StatusCreated, map[string]any{
		"customer": customer,
		"message":  res.Message,
	})
}

// Update применяет частичный патч к записи.
func (h *CustomerHandler) Update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid customer id",
		})
	}

	var patch service.CustomerPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid request body",
		})
	}

	res := h.svc.Update(c.Request().Context(), id, patch)
	if !res.OK() {
		return h.renderResult(c, res)
	}

	customer, getRes := h.svc.Get(c.Request().Context(), id)
	if !getRes.OK() {
		// Пустой патч по несуществующему ID: сам Update — no-op,
		// записи нет.
		return h.renderResult(c, getRes)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"customer": customer,
		"message":  res.Message,
	})
}

// Delete удаляет запись по ID.
func (h *CustomerHandler) Delete(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error": "invalid customer id",
		})
	}

	res := h.svc.Delete(c.Request().Context(), id)
	return h.renderResult(c, res)
}

func (h *CustomerHandler) renderResult(c echo.Context, res service.Result) error {
	if res.Outcome == service.OutcomeStorageErr {
		h.log.Error().Err(res.Err).Msg(res.Message)
	}
	return c.JSON(statusFor(res), map[string]string{
		"status":  string(res.Outcome),
		"message": res.Message,
	})
}

func statusFor(res service.Result) int {
	switch res.Outcome {
	case service.OutcomeOK:
		return http.StatusOK
	case service.OutcomeInvalid:
		return http.StatusBadRequest
	case service.OutcomeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func parseID(c echo.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
