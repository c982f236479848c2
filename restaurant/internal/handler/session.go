package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/controller"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}

func (h *Handler) sessionRoutes(g *echo.Group) {
	g.POST("", h.OpenSession)
	g.DELETE("/:sid", h.CloseSession)

	g.GET("/:sid/restaurants", h.Browse)
	g.POST("/:sid/restaurants/:id/reserve", h.Reserve)
	g.GET("/:sid/reservations", h.OpenList)

	g.GET("/:sid/detail", h.CurrentDetail)
	g.POST("/:sid/detail/:reservationId", h.Select)
	g.POST("/:sid/detail/cancel", h.detailAction((*controller.Page).RequestCancel))
	g.POST("/:sid/detail/cancel/confirm", h.ConfirmCancel)
	g.POST("/:sid/detail/cancel/decline", h.detailAction((*controller.Page).DeclineCancel))
	g.POST("/:sid/detail/modify", h.detailAction((*controller.Page).RequestModify))
	g.POST("/:sid/detail/modify/submit", h.SubmitModify)
	g.POST("/:sid/detail/modify/discard", h.detailAction((*controller.Page).DiscardModify))
	g.POST("/:sid/detail/close", h.CloseDetail)
}

// OpenSession godoc
// @Summary start a page session
// @Tags sessions
// @Produce json
// @Success 201 {object} sessionResponse
// @Router /sessions [post]
func (h *Handler) OpenSession(c echo.Context) error {
	return c.JSON(http.StatusCreated, sessionResponse{SessionID: h.sessions.Open()})
}

func (h *Handler) CloseSession(c echo.Context) error {
	if err := h.sessions.Close(c.Param("sid")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) page(c echo.Context) (*controller.Page, error) {
	p, err := h.sessions.Get(c.Param("sid"))
	if err != nil {
		return nil, toHTTPError(err)
	}
	return p, nil
}

func (h *Handler) Browse(c echo.Context) error {
	p, err := h.page(c)
	if err != nil {
		return err
	}
	var page int
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if page, err = strconv.Atoi(pageParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "page is invalid")
		}
	}
	list, err := p.Browse(c.Request().Context(), strings.TrimSpace(c.QueryParam("q")), page)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *Handler) OpenList(c echo.Context) error {
	p, err := h.page(c)
	if err != nil {
		return err
	}
	items, err := p.OpenList(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Reserve godoc
// @Summary submit the reserve form of a restaurant
// @Tags sessions
// @Accept json
// @Produce json
// @Param sid path string true "session id"
// @Param id path int true "restaurant id"
// @Param body body model.ReservationFields true "reservation"
// @Success 201 {object} controller.ReserveView
// @Failure 400 {object} controller.ReserveView
// @Failure 409 {object} controller.ReserveView
// @Router /sessions/{sid}/restaurants/{id}/reserve [post]
func (h *Handler) Reserve(c echo.Context) error {
	p, err := h.page(c)
	if err != nil {
		return err
	}
	restaurantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is invalid")
	}
	var fields model.ReservationFields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := p.Reserve(c.Request().Context(), restaurantID, fields)
	if err != nil {
		return h.view(c, err, view)
	}
	return c.JSON(http.StatusCreated, view)
}

func (h *Handler) CurrentDetail(c echo.Context) error {
	p, err := h.page(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p.Detail())
}

func (h *Handler) Select(c echo.Context) error {
	p, err := h.page(c)
	if err != nil {
		return err
	}
	id, err := reservationID(c, "reservationId")
	if err != nil {
		return err
	}
	view, err := p.Select(c.Request().Context(), id)
	return h.view(c, err, view)
}

func (h *Handler) detailAction(action func(*controller.Page) (controller.View, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := h.page(c)
		if err != nil {
			return err
		}
		view, err := action(p)
		return h.view(c, err, view)
	}
}

func (h *Handler) ConfirmCancel(c echo.Context) error {
	p, err := h.page(c)
	if err != nil {
		return err
	}
	view, err := p.ConfirmCancel(c.Request().Context())
	return h.view(c, err, view)
}

func (h *Handler) SubmitModify(c echo.Context) error {
	p, err := h.page(c)
	if err != nil {
		return err
	}
	var fields model.ReservationFields
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	view, err := p.SubmitModify(c.Request().Context(), fields)
	return h.view(c, err, view)
}

func (h *Handler) CloseDetail(c echo.Context) error {
	p, err := h.page(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p.Close())
}

// view answers with the rendered panel. Views only carry visitor-facing
// text, so server-side failures are logged here in full.
func (h *Handler) view(c echo.Context, err error, v interface{}) error {
	status := httpStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("session action",
			zap.String("path", c.Path()),
			zap.String("sid", c.Param("sid")),
			zap.Error(err))
	}
	return c.JSON(status, v)
}
