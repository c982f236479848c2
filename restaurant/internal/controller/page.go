package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/Astemirdum/restaurant-service/pkg/validate"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/errs"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/presenter"
	"github.com/pkg/errors"
)

// ReserveView is the outcome of submitting the reserve form. On failure the
// submitted form is echoed back so the visitor keeps their input.
type ReserveView struct {
	Reservation *model.Reservation     `json:"reservation,omitempty"`
	Form        *model.ReservationForm `json:"form,omitempty"`
	Message     model.Message          `json:"message"`
	Reload      bool                   `json:"reload,omitempty"`
}

// Page is the state of one visitor's page: the current search term and
// page number plus the reservation detail panel.
type Page struct {
	svc       ReservationService
	validator Validator

	mu     sync.Mutex
	term   string
	page   int
	detail *Detail
}

func NewPage(svc ReservationService, v Validator) *Page {
	return &Page{
		svc:       svc,
		validator: v,
		page:      1,
		detail:    NewDetail(svc, v),
	}
}

// Browse lists the catalog. A changed term starts again from page 1; a
// page of 0 keeps the current page. The stored page is clamped to range.
func (p *Page) Browse(ctx context.Context, term string, page int) (model.ListRestaurants, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	term = strings.TrimSpace(term)
	if term != p.term {
		p.term = term
		p.page = 1
	}
	if page > 0 {
		p.page = page
	}
	list, err := p.svc.ListRestaurants(ctx, p.term, p.page, 0)
	if err != nil {
		return model.ListRestaurants{}, err
	}
	p.page = list.Page
	return list, nil
}

func (p *Page) OpenList(ctx context.Context) ([]model.ListItem, error) {
	return p.svc.ListReservations(ctx)
}

func (p *Page) Reserve(ctx context.Context, restaurantID int, fields model.ReservationFields) (ReserveView, error) {
	rest, err := p.svc.Restaurant(ctx, restaurantID)
	if err != nil {
		return ReserveView{Message: presenter.Failure(err)}, err
	}
	form := presenter.RenderReserveForm(rest, fields)
	if p.validator != nil {
		if err := p.validator.Validate(fields); err != nil {
			err = errors.Wrap(errs.ErrInvalidReservation, strings.Join(validate.Messages(err), "; "))
			return ReserveView{Form: &form, Message: presenter.Failure(err)}, err
		}
	}
	res, err := p.svc.CreateReservation(ctx, restaurantID, fields)
	if err != nil {
		return ReserveView{Form: &form, Message: presenter.Failure(err)}, err
	}
	return ReserveView{Reservation: &res, Message: presenter.Reserved(res.RestaurantName), Reload: true}, nil
}

func (p *Page) Detail() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detail.View()
}

func (p *Page) Select(ctx context.Context, id int64) (View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detail.Select(ctx, id)
}

func (p *Page) RequestCancel() (View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detail.RequestCancel()
}

func (p *Page) ConfirmCancel(ctx context.Context) (View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detail.ConfirmCancel(ctx)
}

func (p *Page) DeclineCancel() (View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detail.DeclineCancel()
}

func (p *Page) RequestModify() (View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detail.RequestModify()
}

func (p *Page) SubmitModify(ctx context.Context, fields model.ReservationFields) (View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detail.SubmitModify(ctx, fields)
}

func (p *Page) DiscardModify() (View, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detail.DiscardModify()
}

func (p *Page) Close() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detail.Close()
}
