package presenter

import (
	"fmt"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/catalog"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/errs"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/pkg/errors"
)

const (
	PlaceholderImage = "default-image.jpg"
	NotAvailable     = "N/A"
	NoReservations   = "No reservations found."
	NoRequests       = "None"
	StatusConfirmed  = "Confirmed"
	FailureText      = "Something went wrong, please try again later."
)

var visibleErrors = []error{
	errs.ErrDuplicateReservation,
	errs.ErrReservationNotFound,
	errs.ErrRestaurantNotFound,
	errs.ErrInvalidTransition,
	errs.ErrSessionNotFound,
	errs.ErrCatalogUnavailable,
	errs.ErrStorageUnavailable,
}

// Join finds the restaurant a reservation refers to: by id when one was
// captured at creation, otherwise by name.
func Join(r model.Reservation, cat *catalog.Catalog) (model.Restaurant, bool) {
	if r.RestaurantID != 0 {
		if rest, ok := cat.LookupByID(r.RestaurantID); ok {
			return rest, true
		}
	}
	return cat.LookupByName(r.RestaurantName)
}

// RenderList always yields at least one row; an empty collection renders
// as a single placeholder message.
func RenderList(reservations []model.Reservation, cat *catalog.Catalog) []model.ListItem {
	if len(reservations) == 0 {
		return []model.ListItem{{Message: NoReservations}}
	}
	items := make([]model.ListItem, 0, len(reservations))
	for i := range reservations {
		r := reservations[i]
		item := model.ListItem{
			Reservation:     &r,
			RestaurantImage: PlaceholderImage,
			Location:        NotAvailable,
		}
		if rest, ok := Join(r, cat); ok {
			item.RestaurantImage = rest.Image
			item.Location = rest.Location
		}
		items = append(items, item)
	}
	return items
}

func RenderDetail(r model.Reservation, cat *catalog.Catalog) model.ReservationDetail {
	d := model.ReservationDetail{
		Reservation: r,
		Image:       PlaceholderImage,
		Location:    NotAvailable,
		Specialty:   NotAvailable,
		Features:    NotAvailable,
		Requests:    r.Requests,
		Status:      StatusConfirmed,
	}
	if d.Requests == "" {
		d.Requests = NoRequests
	}
	if rest, ok := Join(r, cat); ok {
		d.Image = rest.Image
		d.Location = rest.Location
		d.Specialty = rest.Specialty
		d.Features = rest.Features
	}
	return d
}

func RenderModifyForm(r model.Reservation) model.ReservationForm {
	return model.ReservationForm{
		Title:          fmt.Sprintf("Modify The Reservation - %s", r.RestaurantName),
		RestaurantID:   r.RestaurantID,
		RestaurantName: r.RestaurantName,
		ReservationID:  r.ID,
		Fields:         r.ReservationFields,
		SubmitLabel:    "Update the Reservation",
	}
}

func RenderReserveForm(rest model.Restaurant, fields model.ReservationFields) model.ReservationForm {
	return model.ReservationForm{
		Title:          fmt.Sprintf("Reserve %s", rest.Name),
		RestaurantID:   rest.ID,
		RestaurantName: rest.Name,
		Fields:         fields,
		SubmitLabel:    "Submit Reservation",
	}
}

func CancelPrompt(r model.Reservation) model.Prompt {
	return model.Prompt{
		Title:   "Are you sure to cancel the reservation?",
		Text:    fmt.Sprintf("Are you sure you want to cancel the order at %s?", r.RestaurantName),
		Decline: "Return",
		Confirm: "Confirm cancellation",
	}
}

func Reserved(restaurantName string) model.Message {
	return model.Message{
		Kind:  model.MessageSuccess,
		Title: "Reserving Successful!",
		Text: fmt.Sprintf("Thank you for reserving %s! We have received your reservation "+
			"and will contact you via phone or email to confirm.", restaurantName),
	}
}

func Updated() model.Message {
	return model.Message{
		Kind:  model.MessageSuccess,
		Title: "Reservation has been updated!",
		Text:  "Your reservation information has been successfully updated!",
	}
}

func Cancelled(restaurantName string) model.Message {
	return model.Message{
		Kind:  model.MessageSuccess,
		Title: "Reservation cancelled",
		Text:  fmt.Sprintf("Your reservation at %s has been successfully cancelled!", restaurantName),
	}
}

// ErrorText is what a visitor sees for err. Validation failures keep their
// field messages; any other known error shows only its sentinel text.
func ErrorText(err error) string {
	if errors.Is(err, errs.ErrInvalidReservation) {
		return err.Error()
	}
	for _, known := range visibleErrors {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return FailureText
}

func Failure(err error) model.Message {
	return model.Message{
		Kind:  model.MessageError,
		Title: "Something went wrong",
		Text:  ErrorText(err),
	}
}
