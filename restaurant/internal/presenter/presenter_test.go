package presenter

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/catalog"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/errs"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/stretchr/testify/require"
)

var testCatalog = catalog.New([]model.Restaurant{
	{ID: 1, Name: "Golden Dragon", Location: "Beijing, China", Specialty: "Peking Duck", Features: "Tea", Image: "gd.jpg"},
	{ID: 2, Name: "Sakura House", Location: "Tokyo, Japan", Specialty: "Sushi", Features: "Counter", Image: "sh.jpg"},
})

func TestRenderList(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		reservations []model.Reservation
		cat          *catalog.Catalog
		want         []model.ListItem
	}{
		{
			name:         "empty renders placeholder row",
			reservations: nil,
			cat:          testCatalog,
			want:         []model.ListItem{{Message: NoReservations}},
		},
		{
			name:         "join by id wins over stale name",
			reservations: []model.Reservation{{ID: 10, RestaurantID: 2, RestaurantName: "Old Name"}},
			cat:          testCatalog,
			want: []model.ListItem{{
				Reservation:     &model.Reservation{ID: 10, RestaurantID: 2, RestaurantName: "Old Name"},
				RestaurantImage: "sh.jpg",
				Location:        "Tokyo, Japan",
			}},
		},
		{
			name:         "legacy record joins by name",
			reservations: []model.Reservation{{ID: 11, RestaurantName: "Golden Dragon"}},
			cat:          testCatalog,
			want: []model.ListItem{{
				Reservation:     &model.Reservation{ID: 11, RestaurantName: "Golden Dragon"},
				RestaurantImage: "gd.jpg",
				Location:        "Beijing, China",
			}},
		},
		{
			name:         "catalog unavailable degrades to placeholders",
			reservations: []model.Reservation{{ID: 12, RestaurantID: 1, RestaurantName: "Golden Dragon"}},
			cat:          nil,
			want: []model.ListItem{{
				Reservation:     &model.Reservation{ID: 12, RestaurantID: 1, RestaurantName: "Golden Dragon"},
				RestaurantImage: PlaceholderImage,
				Location:        NotAvailable,
			}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, RenderList(tt.reservations, tt.cat))
		})
	}
}

func TestRenderDetail(t *testing.T) {
	t.Parallel()
	r := model.Reservation{ID: 5, RestaurantName: "Unknown Bistro"}
	d := RenderDetail(r, testCatalog)
	require.Equal(t, PlaceholderImage, d.Image)
	require.Equal(t, NotAvailable, d.Location)
	require.Equal(t, NotAvailable, d.Specialty)
	require.Equal(t, NotAvailable, d.Features)
	require.Equal(t, NoRequests, d.Requests)
	require.Equal(t, StatusConfirmed, d.Status)

	r = model.Reservation{ID: 6, RestaurantID: 1, RestaurantName: "Golden Dragon"}
	r.Requests = "high chair"
	d = RenderDetail(r, testCatalog)
	require.Equal(t, "Peking Duck", d.Specialty)
	require.Equal(t, "high chair", d.Requests)
}

func TestRenderModifyForm(t *testing.T) {
	t.Parallel()
	r := model.Reservation{ID: 7, RestaurantID: 1, RestaurantName: "Golden Dragon"}
	r.Name = "Alice"
	r.Guests = "3"
	f := RenderModifyForm(r)
	require.Equal(t, "Modify The Reservation - Golden Dragon", f.Title)
	require.Equal(t, int64(7), f.ReservationID)
	require.Equal(t, r.ReservationFields, f.Fields)
}

func TestErrorText(t *testing.T) {
	t.Parallel()
	backend := fmt.Errorf("redis set: dial tcp 10.0.0.5:6379: i/o timeout")
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "storage details hidden",
			err:  fmt.Errorf("write reservations: %w: %v", errs.ErrStorageUnavailable, backend),
			want: "reservation storage unavailable",
		},
		{
			name: "duplicate",
			err:  fmt.Errorf("create: %w", errs.ErrDuplicateReservation),
			want: errs.ErrDuplicateReservation.Error(),
		},
		{
			name: "transition state hidden",
			err:  fmt.Errorf("state viewing: %w", errs.ErrInvalidTransition),
			want: "action not allowed in current state",
		},
		{
			name: "validation messages kept",
			err:  fmt.Errorf("guests must be between 1 and 10: %w", errs.ErrInvalidReservation),
			want: "guests must be between 1 and 10: invalid reservation details",
		},
		{
			name: "unknown",
			err:  backend,
			want: FailureText,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ErrorText(tt.err))
		})
	}
}

func TestMessages(t *testing.T) {
	t.Parallel()
	require.Equal(t, model.MessageError, Failure(errors.New("boom")).Kind)
	require.Equal(t, FailureText, Failure(errors.New("dial tcp 10.0.0.5:6379: connection refused")).Text)
	require.Equal(t, "Reservation cancelled", Cancelled("Golden Dragon").Title)
	require.Equal(t, "Return", CancelPrompt(model.Reservation{}).Decline)
}
