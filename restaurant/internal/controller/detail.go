package controller

import (
	"context"
	"strings"

	"github.com/Astemirdum/restaurant-service/pkg/validate"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/errs"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/presenter"
	"github.com/pkg/errors"
)

type State string

const (
	StateClosed           State = "closed"
	StateViewing          State = "viewing"
	StateModifying        State = "modifying"
	StateConfirmingCancel State = "confirmingCancel"
)

type Validator interface {
	Validate(i interface{}) error
}

type ReservationService interface {
	ListRestaurants(ctx context.Context, term string, page, size int) (model.ListRestaurants, error)
	Restaurant(ctx context.Context, id int) (model.Restaurant, error)
	ListReservations(ctx context.Context) ([]model.ListItem, error)
	GetReservation(ctx context.Context, id int64) (model.ReservationDetail, error)
	CreateReservation(ctx context.Context, restaurantID int, fields model.ReservationFields) (model.Reservation, error)
	UpdateReservation(ctx context.Context, id int64, fields model.ReservationFields) (model.Reservation, error)
	CancelReservation(ctx context.Context, id int64) (model.Reservation, error)
}

// View is a fresh snapshot of the detail panel after an event. Message is
// set for every acknowledgement, success or failure; Reload tells the
// caller the reservation list it shows is stale.
type View struct {
	State   State                    `json:"state"`
	Detail  *model.ReservationDetail `json:"detail,omitempty"`
	Form    *model.ReservationForm   `json:"form,omitempty"`
	Prompt  *model.Prompt            `json:"prompt,omitempty"`
	Message *model.Message           `json:"message,omitempty"`
	Reload  bool                     `json:"reload,omitempty"`
}

// Detail drives the reservation detail panel:
//
//	closed -> viewing -> modifying | confirmingCancel -> closed
//
// It is not safe for concurrent use; Page serialises access.
type Detail struct {
	svc       ReservationService
	validator Validator

	state  State
	detail *model.ReservationDetail
	form   *model.ReservationForm
}

func NewDetail(svc ReservationService, v Validator) *Detail {
	return &Detail{svc: svc, validator: v, state: StateClosed}
}

func (d *Detail) State() State {
	return d.state
}

func (d *Detail) View() View {
	v := View{State: d.state}
	switch d.state {
	case StateViewing:
		v.Detail = d.detail
	case StateModifying:
		v.Detail = d.detail
		v.Form = d.form
	case StateConfirmingCancel:
		v.Detail = d.detail
		p := presenter.CancelPrompt(d.detail.Reservation)
		v.Prompt = &p
	}
	return v
}

func (d *Detail) Select(ctx context.Context, id int64) (View, error) {
	if err := d.expect(StateClosed, StateViewing); err != nil {
		return d.View(), err
	}
	detail, err := d.svc.GetReservation(ctx, id)
	if err != nil {
		return d.fail(err), err
	}
	d.detail = &detail
	d.form = nil
	d.state = StateViewing
	return d.View(), nil
}

func (d *Detail) RequestCancel() (View, error) {
	if err := d.expect(StateViewing); err != nil {
		return d.View(), err
	}
	d.state = StateConfirmingCancel
	return d.View(), nil
}

func (d *Detail) DeclineCancel() (View, error) {
	if err := d.expect(StateConfirmingCancel); err != nil {
		return d.View(), err
	}
	d.state = StateViewing
	return d.View(), nil
}

// ConfirmCancel deletes the reservation. A reservation that vanished in the
// meantime closes the panel; a storage failure keeps the prompt open.
func (d *Detail) ConfirmCancel(ctx context.Context) (View, error) {
	if err := d.expect(StateConfirmingCancel); err != nil {
		return d.View(), err
	}
	removed, err := d.svc.CancelReservation(ctx, d.detail.Reservation.ID)
	switch {
	case err == nil:
		d.reset()
		msg := presenter.Cancelled(removed.RestaurantName)
		return View{State: d.state, Message: &msg, Reload: true}, nil
	case errors.Is(err, errs.ErrReservationNotFound):
		d.reset()
		v := d.fail(err)
		v.Reload = true
		return v, err
	default:
		return d.fail(err), err
	}
}

func (d *Detail) RequestModify() (View, error) {
	if err := d.expect(StateViewing); err != nil {
		return d.View(), err
	}
	form := presenter.RenderModifyForm(d.detail.Reservation)
	d.form = &form
	d.state = StateModifying
	return d.View(), nil
}

func (d *Detail) DiscardModify() (View, error) {
	if err := d.expect(StateModifying); err != nil {
		return d.View(), err
	}
	d.form = nil
	d.state = StateViewing
	return d.View(), nil
}

// SubmitModify validates and stores the edited fields. Invalid input and
// storage failures keep the form open with the submitted values.
func (d *Detail) SubmitModify(ctx context.Context, fields model.ReservationFields) (View, error) {
	if err := d.expect(StateModifying); err != nil {
		return d.View(), err
	}
	d.form.Fields = fields
	if err := d.validate(fields); err != nil {
		return d.fail(err), err
	}
	_, err := d.svc.UpdateReservation(ctx, d.detail.Reservation.ID, fields)
	switch {
	case err == nil:
		d.reset()
		msg := presenter.Updated()
		return View{State: d.state, Message: &msg, Reload: true}, nil
	case errors.Is(err, errs.ErrReservationNotFound):
		d.reset()
		v := d.fail(err)
		v.Reload = true
		return v, err
	default:
		return d.fail(err), err
	}
}

func (d *Detail) Close() View {
	d.reset()
	return d.View()
}

func (d *Detail) validate(fields model.ReservationFields) error {
	if d.validator == nil {
		return nil
	}
	if err := d.validator.Validate(fields); err != nil {
		return errors.Wrap(errs.ErrInvalidReservation, strings.Join(validate.Messages(err), "; "))
	}
	return nil
}

func (d *Detail) expect(states ...State) error {
	for _, s := range states {
		if d.state == s {
			return nil
		}
	}
	return errors.Wrapf(errs.ErrInvalidTransition, "state %s", d.state)
}

func (d *Detail) fail(err error) View {
	v := d.View()
	msg := presenter.Failure(err)
	v.Message = &msg
	return v
}

func (d *Detail) reset() {
	d.state = StateClosed
	d.detail = nil
	d.form = nil
}
