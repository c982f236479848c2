package catalog

import (
	"fmt"
	"strings"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

// Catalog is immutable once built. A nil *Catalog behaves as an empty one,
// which is how callers degrade when the catalog could not be loaded.
type Catalog struct {
	restaurants []model.Restaurant
	byID        map[int]int
	byName      map[string]int
}

func New(restaurants []model.Restaurant) *Catalog {
	c := &Catalog{
		restaurants: make([]model.Restaurant, len(restaurants)),
		byID:        make(map[int]int, len(restaurants)),
		byName:      make(map[string]int, len(restaurants)),
	}
	copy(c.restaurants, restaurants)
	for i, r := range c.restaurants {
		if _, ok := c.byID[r.ID]; !ok {
			c.byID[r.ID] = i
		}
		// first entry wins on duplicate names
		if _, ok := c.byName[r.Name]; !ok {
			c.byName[r.Name] = i
		}
	}
	return c
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.restaurants)
}

func (c *Catalog) All() []model.Restaurant {
	if c == nil {
		return []model.Restaurant{}
	}
	out := make([]model.Restaurant, len(c.restaurants))
	copy(out, c.restaurants)
	return out
}

func (c *Catalog) LookupByID(id int) (model.Restaurant, bool) {
	if c == nil {
		return model.Restaurant{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return model.Restaurant{}, false
	}
	return c.restaurants[i], true
}

func (c *Catalog) LookupByName(name string) (model.Restaurant, bool) {
	if c == nil {
		return model.Restaurant{}, false
	}
	i, ok := c.byName[name]
	if !ok {
		return model.Restaurant{}, false
	}
	return c.restaurants[i], true
}

// Search matches term case-insensitively against id, name, location,
// specialty and features. An empty term returns the whole catalog.
func (c *Catalog) Search(term string) []model.Restaurant {
	term = strings.ToLower(term)
	if term == "" {
		return c.All()
	}
	out := make([]model.Restaurant, 0)
	if c == nil {
		return out
	}
	for _, r := range c.restaurants {
		text := strings.ToLower(fmt.Sprintf("%d %s %s %s %s", r.ID, r.Name, r.Location, r.Specialty, r.Features))
		if strings.Contains(text, term) {
			out = append(out, r)
		}
	}
	return out
}

// Paginate slices items for a 1-based page, clamping page into range.
func Paginate(items []model.Restaurant, page, size int) model.ListRestaurants {
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	total := len(items)
	totalPages := (total + size - 1) / size
	page = ClampPage(page, totalPages)

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	pageItems := make([]model.Restaurant, end-start)
	copy(pageItems, items[start:end])

	return model.ListRestaurants{
		Paging: model.Paging{
			Page:          page,
			PageSize:      size,
			TotalElements: total,
			TotalPages:    totalPages,
		},
		Info:  fmt.Sprintf("Page %d , total of %d pages", page, totalPages),
		Items: pageItems,
	}
}

func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}
