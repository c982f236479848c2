package catalog

import (
	"strings"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
)

const mapZoom = 4

type countryCenter struct {
	needles []string
	lng     float64
	lat     float64
}

var countryCenters = []countryCenter{
	{needles: []string{"China"}, lng: 104.1954, lat: 35.8617},
	{needles: []string{"Japan"}, lng: 138.2529, lat: 36.2048},
	{needles: []string{"Korea"}, lng: 127.7669, lat: 35.9078},
	{needles: []string{"Singapore"}, lng: 103.8198, lat: 1.3521},
	{needles: []string{"USA", "United States"}, lng: -95.7129, lat: 37.0902},
	{needles: []string{"UK", "United Kingdom"}, lng: -3.4360, lat: 55.3781},
	{needles: []string{"Australia"}, lng: 133.7751, lat: -25.2744},
	{needles: []string{"Canada"}, lng: -106.3468, lat: 56.1304},
}

var fallbackCenter = model.MapCenter{Lng: -80, Lat: -80, Zoom: mapZoom}

// MapCenterFor picks the country center whose name appears in location.
func MapCenterFor(location string) model.MapCenter {
	for _, cc := range countryCenters {
		for _, n := range cc.needles {
			if strings.Contains(location, n) {
				return model.MapCenter{Lng: cc.lng, Lat: cc.lat, Zoom: mapZoom}
			}
		}
	}
	return fallbackCenter
}

func Detail(r model.Restaurant) model.RestaurantDetail {
	return model.RestaurantDetail{
		Restaurant: r,
		Map:        MapCenterFor(r.Location),
		MenuHighlights: []string{
			r.Specialty,
			"Dim Sum Selection",
			"Traditional Chinese Tea",
			"Seasonal Specialties",
		},
		OpeningHours: []string{
			"Monday - Friday: 11:00 AM - 10:00 PM",
			"Saturday - Sunday: 10:00 AM - 11:00 PM",
		},
	}
}
