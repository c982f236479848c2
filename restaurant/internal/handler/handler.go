package handler

import (
	"net/http"
	"strconv"
	"strings"

	md "github.com/Astemirdum/restaurant-service/pkg/middleware"
	"github.com/Astemirdum/restaurant-service/pkg/validate"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/catalog"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/controller"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/errs"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/presenter"
	_ "github.com/Astemirdum/restaurant-service/swagger"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

type Handler struct {
	svc      RestaurantService
	sessions *controller.Sessions
	log      *zap.Logger
}

func New(svc RestaurantService, sessions *controller.Sessions, log *zap.Logger) *Handler {
	return &Handler{
		svc:      svc,
		sessions: sessions,
		log:      log.Named("handler"),
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(md.Metrics)

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
	)

	api.GET("/restaurants", h.GetRestaurants)
	api.GET("/restaurants/:id", h.GetRestaurant)
	api.POST("/restaurants/:id/reservations", h.CreateReservation)

	api.GET("/reservations", h.GetReservations)
	api.GET("/reservations/:id", h.GetReservation)
	api.PUT("/reservations/:id", h.UpdateReservation)
	api.DELETE("/reservations/:id", h.CancelReservation)

	h.sessionRoutes(api.Group("/sessions"))

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// GetRestaurants godoc
// @Summary search the restaurant catalog
// @Tags restaurants
// @Produce json
// @Param q query string false "search term"
// @Param page query int false "page, 1-based"
// @Param size query int false "page size"
// @Success 200 {object} model.ListRestaurants
// @Failure 503 {object} echo.HTTPError
// @Router /restaurants [get]
func (h *Handler) GetRestaurants(c echo.Context) error {
	var (
		err  error
		page int
		size int
	)
	if pageParam := c.QueryParam("page"); pageParam != "" {
		if page, err = strconv.Atoi(pageParam); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "page is invalid")
		}
	}
	if sizeParam := c.QueryParam("size"); sizeParam != "" {
		if size, err = strconv.Atoi(sizeParam); err != nil || size < 1 || size > catalog.MaxPageSize {
			return echo.NewHTTPError(http.StatusBadRequest, "size is invalid")
		}
	}
	list, err := h.svc.ListRestaurants(c.Request().Context(), strings.TrimSpace(c.QueryParam("q")), page, size)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, list)
}

// GetRestaurant godoc
// @Summary restaurant detail with map center
// @Tags restaurants
// @Produce json
// @Param id path int true "restaurant id"
// @Success 200 {object} model.RestaurantDetail
// @Failure 404 {object} echo.HTTPError
// @Router /restaurants/{id} [get]
func (h *Handler) GetRestaurant(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is invalid")
	}
	detail, err := h.svc.GetRestaurant(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// CreateReservation godoc
// @Summary reserve a table
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path int true "restaurant id"
// @Param body body model.ReservationFields true "reservation"
// @Success 201 {object} model.Reservation
// @Failure 400 {object} echo.HTTPError
// @Failure 409 {object} echo.HTTPError
// @Router /restaurants/{id}/reservations [post]
func (h *Handler) CreateReservation(c echo.Context) error {
	restaurantID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is invalid")
	}
	fields, err := bindFields(c)
	if err != nil {
		return err
	}
	res, err := h.svc.CreateReservation(c.Request().Context(), restaurantID, fields)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusCreated, res)
}

// GetReservations godoc
// @Summary list reservations joined with their restaurants
// @Tags reservations
// @Produce json
// @Success 200 {array} model.ListItem
// @Router /reservations [get]
func (h *Handler) GetReservations(c echo.Context) error {
	items, err := h.svc.ListReservations(c.Request().Context())
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetReservation godoc
// @Summary reservation detail
// @Tags reservations
// @Produce json
// @Param id path int true "reservation id"
// @Success 200 {object} model.ReservationDetail
// @Failure 404 {object} echo.HTTPError
// @Router /reservations/{id} [get]
func (h *Handler) GetReservation(c echo.Context) error {
	id, err := reservationID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.svc.GetReservation(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// UpdateReservation godoc
// @Summary modify a reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path int true "reservation id"
// @Param body body model.ReservationFields true "reservation"
// @Success 200 {object} model.Reservation
// @Failure 400 {object} echo.HTTPError
// @Failure 404 {object} echo.HTTPError
// @Router /reservations/{id} [put]
func (h *Handler) UpdateReservation(c echo.Context) error {
	id, err := reservationID(c, "id")
	if err != nil {
		return err
	}
	fields, err := bindFields(c)
	if err != nil {
		return err
	}
	res, err := h.svc.UpdateReservation(c.Request().Context(), id, fields)
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, res)
}

// CancelReservation godoc
// @Summary cancel a reservation
// @Tags reservations
// @Param id path int true "reservation id"
// @Success 204
// @Failure 404 {object} echo.HTTPError
// @Router /reservations/{id} [delete]
func (h *Handler) CancelReservation(c echo.Context) error {
	id, err := reservationID(c, "id")
	if err != nil {
		return err
	}
	if _, err := h.svc.CancelReservation(c.Request().Context(), id); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func bindFields(c echo.Context) (model.ReservationFields, error) {
	var fields model.ReservationFields
	if err := c.Bind(&fields); err != nil {
		return fields, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(fields); err != nil {
		return fields, echo.NewHTTPError(http.StatusBadRequest, strings.Join(validate.Messages(err), "; "))
	}
	return fields, nil
}

func reservationID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" is invalid")
	}
	return id, nil
}

func httpStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errs.ErrInvalidReservation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrDuplicateReservation),
		errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrReservationNotFound),
		errors.Is(err, errs.ErrRestaurantNotFound),
		errors.Is(err, errs.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrCatalogUnavailable),
		errors.Is(err, errs.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// toHTTPError keeps backend details out of the response body; the request
// logger still records them through the internal error.
func toHTTPError(err error) error {
	return echo.NewHTTPError(httpStatus(err), presenter.ErrorText(err)).SetInternal(err)
}
