package service

import (
	"context"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/catalog"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/errs"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/events"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/metrics"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/presenter"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type CatalogProvider interface {
	Get(ctx context.Context) (*catalog.Catalog, error)
}

type Service struct {
	log     *zap.Logger
	repo    repository.Repository
	catalog CatalogProvider
	events  events.Publisher
}

func NewService(repo repository.Repository, cat CatalogProvider, pub events.Publisher, log *zap.Logger) *Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &Service{
		log:     log.Named("service"),
		repo:    repo,
		catalog: cat,
		events:  pub,
	}
}

func (s *Service) ListRestaurants(ctx context.Context, term string, page, size int) (model.ListRestaurants, error) {
	cat, err := s.catalog.Get(ctx)
	if err != nil {
		return model.ListRestaurants{}, err
	}
	return catalog.Paginate(cat.Search(term), page, size), nil
}

func (s *Service) GetRestaurant(ctx context.Context, id int) (model.RestaurantDetail, error) {
	cat, err := s.catalog.Get(ctx)
	if err != nil {
		return model.RestaurantDetail{}, err
	}
	r, ok := cat.LookupByID(id)
	if !ok {
		return model.RestaurantDetail{}, errs.ErrRestaurantNotFound
	}
	return catalog.Detail(r), nil
}

// Catalog returns the loaded catalog, or nil when it is unavailable so
// reservation views render with placeholders instead of failing.
func (s *Service) Catalog(ctx context.Context) *catalog.Catalog {
	cat, err := s.catalog.Get(ctx)
	if err != nil {
		s.log.Warn("catalog unavailable, rendering placeholders", zap.Error(err))
		return nil
	}
	return cat
}

func (s *Service) ListReservations(ctx context.Context) ([]model.ListItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return presenter.RenderList(items, s.Catalog(ctx)), nil
}

func (s *Service) GetReservation(ctx context.Context, id int64) (model.ReservationDetail, error) {
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.ReservationDetail{}, err
	}
	return presenter.RenderDetail(r, s.Catalog(ctx)), nil
}

func (s *Service) Restaurant(ctx context.Context, id int) (model.Restaurant, error) {
	cat, err := s.catalog.Get(ctx)
	if err != nil {
		return model.Restaurant{}, err
	}
	r, ok := cat.LookupByID(id)
	if !ok {
		return model.Restaurant{}, errs.ErrRestaurantNotFound
	}
	return r, nil
}

func (s *Service) CreateReservation(ctx context.Context, restaurantID int, fields model.ReservationFields) (model.Reservation, error) {
	rest, err := s.Restaurant(ctx, restaurantID)
	if err != nil {
		return model.Reservation{}, err
	}
	res, err := s.repo.Create(ctx, model.ReservationInput{
		RestaurantID:      rest.ID,
		RestaurantName:    rest.Name,
		ReservationFields: fields,
	})
	observe(metrics.OpCreate, err)
	if err != nil {
		return model.Reservation{}, err
	}
	s.publish(ctx, events.KindCreated, res)
	return res, nil
}

func (s *Service) UpdateReservation(ctx context.Context, id int64, fields model.ReservationFields) (model.Reservation, error) {
	res, err := s.repo.Update(ctx, id, fields)
	observe(metrics.OpUpdate, err)
	if err != nil {
		return model.Reservation{}, err
	}
	s.publish(ctx, events.KindUpdated, res)
	return res, nil
}

func (s *Service) CancelReservation(ctx context.Context, id int64) (model.Reservation, error) {
	res, err := s.repo.Delete(ctx, id)
	observe(metrics.OpCancel, err)
	if err != nil {
		return model.Reservation{}, err
	}
	s.publish(ctx, events.KindCancelled, res)
	return res, nil
}

// publish is best effort: the store is the source of truth.
func (s *Service) publish(ctx context.Context, kind events.Kind, r model.Reservation) {
	if err := s.events.Publish(ctx, events.New(kind, r)); err != nil {
		s.log.Error("publish reservation event",
			zap.String("kind", string(kind)), zap.Int64("id", r.ID), zap.Error(err))
	}
}

func observe(op string, err error) {
	outcome := metrics.OutcomeOK
	switch {
	case err == nil:
	case errors.Is(err, errs.ErrDuplicateReservation):
		outcome = metrics.OutcomeDuplicate
	case errors.Is(err, errs.ErrReservationNotFound):
		outcome = metrics.OutcomeNotFound
	default:
		outcome = metrics.OutcomeError
	}
	metrics.ReservationOps.WithLabelValues(op, outcome).Inc()
}
