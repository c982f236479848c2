package handler

import (
	"context"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/controller"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type RestaurantService interface {
	ListRestaurants(ctx context.Context, term string, page, size int) (model.ListRestaurants, error)
	GetRestaurant(ctx context.Context, id int) (model.RestaurantDetail, error)
	Restaurant(ctx context.Context, id int) (model.Restaurant, error)
	ListReservations(ctx context.Context) ([]model.ListItem, error)
	GetReservation(ctx context.Context, id int64) (model.ReservationDetail, error)
	CreateReservation(ctx context.Context, restaurantID int, fields model.ReservationFields) (model.Reservation, error)
	UpdateReservation(ctx context.Context, id int64, fields model.ReservationFields) (model.Reservation, error)
	CancelReservation(ctx context.Context, id int64) (model.Reservation, error)
}

var (
	_ RestaurantService             = (*service.Service)(nil)
	_ controller.ReservationService = (RestaurantService)(nil)
)
