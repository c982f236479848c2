package repository

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/errs"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/storage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]model.Reservation, error)
	Get(ctx context.Context, id int64) (model.Reservation, error)
	Create(ctx context.Context, in model.ReservationInput) (model.Reservation, error)
	Update(ctx context.Context, id int64, fields model.ReservationFields) (model.Reservation, error)
	Delete(ctx context.Context, id int64) (model.Reservation, error)
}

// reservationsKey is the single storage slot holding the whole collection.
const reservationsKey = "reservations"

type repository struct {
	kv  storage.KV
	log *zap.Logger
	now func() time.Time

	// mu queues local writers so they do not contend on the backend;
	// cross-process atomicity comes from KV.Update.
	mu sync.Mutex
}

func NewRepository(kv storage.KV, log *zap.Logger) *repository {
	return &repository{
		kv:  kv,
		log: log.Named("repo"),
		now: time.Now,
	}
}

// List never fails: an absent, unreadable or malformed slot is an empty
// collection.
func (r *repository) List(ctx context.Context) ([]model.Reservation, error) {
	items, err := r.read(ctx)
	if err != nil {
		r.log.Warn("List: storage read failed, returning empty", zap.Error(err))
		return []model.Reservation{}, nil
	}
	return items, nil
}

func (r *repository) Get(ctx context.Context, id int64) (model.Reservation, error) {
	items, err := r.List(ctx)
	if err != nil {
		return model.Reservation{}, err
	}
	if i := indexOf(items, id); i >= 0 {
		return items[i], nil
	}
	return model.Reservation{}, errs.ErrReservationNotFound
}

func (r *repository) Create(ctx context.Context, in model.ReservationInput) (model.Reservation, error) {
	candidate := model.Reservation{
		RestaurantID:      in.RestaurantID,
		RestaurantName:    in.RestaurantName,
		ReservationFields: in.ReservationFields,
	}
	err := r.mutate(ctx, func(items []model.Reservation) ([]model.Reservation, error) {
		for i := range items {
			if items[i].SameSlot(candidate) {
				return nil, errs.ErrDuplicateReservation
			}
		}
		candidate.ID = r.nextID(items)
		return append(items, candidate), nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	r.log.Debug("Create", zap.Int64("id", candidate.ID), zap.String("restaurant", candidate.RestaurantName))
	return candidate, nil
}

// Update replaces the editable fields in place. The slot uniqueness rule is
// enforced at creation only.
func (r *repository) Update(ctx context.Context, id int64, fields model.ReservationFields) (model.Reservation, error) {
	var updated model.Reservation
	err := r.mutate(ctx, func(items []model.Reservation) ([]model.Reservation, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, errs.ErrReservationNotFound
		}
		items[i].ReservationFields = fields
		for j := range items {
			if j != i && items[j].SameSlot(items[i]) {
				r.log.Warn("Update produced a duplicate slot",
					zap.Int64("id", id), zap.Int64("duplicateOf", items[j].ID))
				break
			}
		}
		updated = items[i]
		return items, nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id int64) (model.Reservation, error) {
	var removed model.Reservation
	err := r.mutate(ctx, func(items []model.Reservation) ([]model.Reservation, error) {
		i := indexOf(items, id)
		if i < 0 {
			return nil, errs.ErrReservationNotFound
		}
		removed = items[i]
		kept := make([]model.Reservation, 0, len(items)-1)
		kept = append(kept, items[:i]...)
		return append(kept, items[i+1:]...), nil
	})
	if err != nil {
		return model.Reservation{}, err
	}
	return removed, nil
}

// mutate applies fn to the stored collection as one atomic step of the
// backend. Errors returned by fn are passed through untouched and nothing
// is written; any backend failure is ErrStorageUnavailable.
func (r *repository) mutate(ctx context.Context, fn func([]model.Reservation) ([]model.Reservation, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var fnErr error
	err := r.kv.Update(ctx, reservationsKey, func(raw string, ok bool) (string, error) {
		next, err := fn(r.decode(raw, ok))
		if err != nil {
			fnErr = err
			return "", err
		}
		fnErr = nil
		b, err := json.Marshal(next)
		if err != nil {
			fnErr = errors.Wrap(err, "marshal reservations")
			return "", fnErr
		}
		return string(b), nil
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		r.log.Error("mutate", zap.Error(err))
		return errors.Wrapf(errs.ErrStorageUnavailable, "update %s: %v", reservationsKey, err)
	}
	return nil
}

// read fails only when the backend itself fails.
func (r *repository) read(ctx context.Context) ([]model.Reservation, error) {
	raw, ok, err := r.kv.Get(ctx, reservationsKey)
	if err != nil {
		return nil, errors.Wrapf(errs.ErrStorageUnavailable, "read %s: %v", reservationsKey, err)
	}
	return r.decode(raw, ok), nil
}

// decode treats an absent or malformed slot as an empty collection.
func (r *repository) decode(raw string, ok bool) []model.Reservation {
	if !ok || raw == "" {
		return []model.Reservation{}
	}
	var items []model.Reservation
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		r.log.Warn("malformed reservations slot, treating as empty", zap.Error(err))
		return []model.Reservation{}
	}
	if items == nil {
		items = []model.Reservation{}
	}
	return items
}

// nextID is the wall clock in ms, bumped past the largest stored id so ids
// stay unique and increasing when the clock stalls or steps back.
func (r *repository) nextID(items []model.Reservation) int64 {
	id := r.now().UnixMilli()
	for i := range items {
		if items[i].ID >= id {
			id = items[i].ID + 1
		}
	}
	return id
}

func indexOf(items []model.Reservation, id int64) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
