package model

type Restaurant struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Specialty string `json:"specialty"`
	Features  string `json:"features"`
	Image     string `json:"image"`
}

// CatalogDocument is the on-disk shape of restaurants.json.
type CatalogDocument struct {
	Restaurants []Restaurant `json:"restaurants"`
}

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

type ListRestaurants struct {
	Paging `json:",inline"`
	Info   string       `json:"info"`
	Items  []Restaurant `json:"items"`
}

type MapCenter struct {
	Lng  float64 `json:"lng"`
	Lat  float64 `json:"lat"`
	Zoom int     `json:"zoom"`
}

type RestaurantDetail struct {
	Restaurant     `json:",inline"`
	Map            MapCenter `json:"map"`
	MenuHighlights []string  `json:"menuHighlights"`
	OpeningHours   []string  `json:"openingHours"`
}

// ReservationFields are the visitor-editable parts of a reservation.
type ReservationFields struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string `json:"time" validate:"required,datetime=15:04"`
	Guests   string `json:"guests" validate:"required,intrange=1:10"`
	Requests string `json:"requests"`
}

type ReservationInput struct {
	RestaurantID   int
	RestaurantName string
	ReservationFields
}

type Reservation struct {
	ID             int64  `json:"id"`
	RestaurantID   int    `json:"restaurantId,omitempty"`
	RestaurantName string `json:"restaurantName"`
	ReservationFields
}

// SameSlot reports whether two reservations collide on
// (restaurantName, date, time, name, phone).
func (r Reservation) SameSlot(o Reservation) bool {
	return r.RestaurantName == o.RestaurantName &&
		r.Date == o.Date &&
		r.Time == o.Time &&
		r.Name == o.Name &&
		r.Phone == o.Phone
}

type ListItem struct {
	Reservation     *Reservation `json:"reservation,omitempty"`
	RestaurantImage string       `json:"restaurantImage,omitempty"`
	Location        string       `json:"location,omitempty"`
	Message         string       `json:"message,omitempty"`
}

type ReservationDetail struct {
	Reservation Reservation `json:"reservation"`
	Image       string      `json:"image"`
	Location    string      `json:"location"`
	Specialty   string      `json:"specialty"`
	Features    string      `json:"features"`
	Requests    string      `json:"requests"`
	Status      string      `json:"status"`
}

type ReservationForm struct {
	Title          string            `json:"title"`
	RestaurantID   int               `json:"restaurantId,omitempty"`
	RestaurantName string            `json:"restaurantName"`
	ReservationID  int64             `json:"reservationId,omitempty"`
	Fields         ReservationFields `json:"fields"`
	SubmitLabel    string            `json:"submitLabel"`
}

type Prompt struct {
	Title   string `json:"title"`
	Text    string `json:"text"`
	Decline string `json:"decline"`
	Confirm string `json:"confirm"`
}

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Message is a modal acknowledgement that requires explicit dismissal.
type Message struct {
	Kind  MessageKind `json:"kind"`
	Title string      `json:"title"`
	Text  string      `json:"text"`
}
