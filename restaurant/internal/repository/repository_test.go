package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Astemirdum/restaurant-service/restaurant/internal/errs"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/storage"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRepo(kv storage.KV) *repository {
	r := NewRepository(kv, zap.NewNop())
	clock := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	return r
}

func goldenDragon() model.ReservationInput {
	return model.ReservationInput{
		RestaurantID:   1,
		RestaurantName: "Golden Dragon",
		ReservationFields: model.ReservationFields{
			Name:   "Alice",
			Phone:  "555-1111",
			Email:  "a@x.com",
			Date:   "2024-06-01",
			Time:   "19:00",
			Guests: "2",
		},
	}
}

func TestRepository_Scenario(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRepo(storage.NewMemory())

	first, err := r.Create(ctx, goldenDragon())
	require.NoError(t, err)
	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = r.Create(ctx, goldenDragon())
	require.ErrorIs(t, err, errs.ErrDuplicateReservation)
	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	later := goldenDragon()
	later.Time = "20:00"
	second, err := r.Create(ctx, later)
	require.NoError(t, err)
	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	fields := first.ReservationFields
	fields.Guests = "4"
	_, err = r.Update(ctx, first.ID, fields)
	require.NoError(t, err)
	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "4", list[0].Guests)
	require.Equal(t, second, list[1])

	_, err = r.Delete(ctx, first.ID)
	require.NoError(t, err)
	list, err = r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Reservation{second}, list)
}

func TestRepository_CreateDistinctPreservesOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRepo(storage.NewMemory())

	var want []model.Reservation
	for i := 0; i < 5; i++ {
		in := goldenDragon()
		in.Phone = fmt.Sprintf("555-000%d", i)
		res, err := r.Create(ctx, in)
		require.NoError(t, err)
		want = append(want, res)
	}
	got, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, want, got)
	for i := 1; i < len(got); i++ {
		require.Greater(t, got[i].ID, got[i-1].ID)
	}
}

func TestRepository_IDsUniqueWhenClockStalls(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := NewRepository(storage.NewMemory(), zap.NewNop())
	frozen := time.UnixMilli(1717266000000)
	r.now = func() time.Time { return frozen }

	a, err := r.Create(ctx, goldenDragon())
	require.NoError(t, err)
	in := goldenDragon()
	in.Name = "Bob"
	b, err := r.Create(ctx, in)
	require.NoError(t, err)

	require.Equal(t, frozen.UnixMilli(), a.ID)
	require.Equal(t, a.ID+1, b.ID)
}

func TestRepository_UpdateLeavesOthersUntouched(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	kv := storage.NewMemory()
	r := newTestRepo(kv)

	a, err := r.Create(ctx, goldenDragon())
	require.NoError(t, err)
	in := goldenDragon()
	in.Name = "Bob"
	b, err := r.Create(ctx, in)
	require.NoError(t, err)

	before, _, err := kv.Get(ctx, reservationsKey)
	require.NoError(t, err)
	var raw []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(before), &raw))

	fields := a.ReservationFields
	fields.Requests = "window seat"
	updated, err := r.Update(ctx, a.ID, fields)
	require.NoError(t, err)
	require.Equal(t, a.ID, updated.ID)
	require.Equal(t, a.RestaurantName, updated.RestaurantName)
	require.Equal(t, "window seat", updated.Requests)

	after, _, err := kv.Get(ctx, reservationsKey)
	require.NoError(t, err)
	var rawAfter []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(after), &rawAfter))
	require.Equal(t, string(raw[1]), string(rawAfter[1]), "other record byte-identical")

	got, err := r.Get(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, b, got)
}

func TestRepository_UpdateMayDuplicate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRepo(storage.NewMemory())

	a, err := r.Create(ctx, goldenDragon())
	require.NoError(t, err)
	in := goldenDragon()
	in.Time = "21:00"
	b, err := r.Create(ctx, in)
	require.NoError(t, err)

	_, err = r.Update(ctx, b.ID, a.ReservationFields)
	require.NoError(t, err)
	list, err := r.List(ctx)
	require.NoError(t, err)
	require.True(t, list[0].SameSlot(list[1]))
}

func TestRepository_NotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := newTestRepo(storage.NewMemory())
	a, err := r.Create(ctx, goldenDragon())
	require.NoError(t, err)

	_, err = r.Update(ctx, a.ID+100, a.ReservationFields)
	require.ErrorIs(t, err, errs.ErrReservationNotFound)

	_, err = r.Delete(ctx, a.ID+100)
	require.ErrorIs(t, err, errs.ErrReservationNotFound)

	_, err = r.Get(ctx, a.ID+100)
	require.ErrorIs(t, err, errs.ErrReservationNotFound)

	list, err := r.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Reservation{a}, list)
}

func TestRepository_MalformedSlotReadsEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	for _, raw := range []string{"{not json", "null", `{"id":1}`, ""} {
		kv := storage.NewMemory()
		require.NoError(t, kv.Set(ctx, reservationsKey, raw))
		r := newTestRepo(kv)

		list, err := r.List(ctx)
		require.NoError(t, err, raw)
		require.Empty(t, list, raw)
	}
}

func TestRepository_RoundTripAcrossReopen(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	kv, err := storage.NewFile(dir)
	require.NoError(t, err)
	r := newTestRepo(kv)

	a, err := r.Create(ctx, goldenDragon())
	require.NoError(t, err)
	in := goldenDragon()
	in.Date = "2024-06-02"
	in.Requests = "birthday cake"
	b, err := r.Create(ctx, in)
	require.NoError(t, err)

	reopened, err := storage.NewFile(dir)
	require.NoError(t, err)
	list, err := newTestRepo(reopened).List(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Reservation{a, b}, list)
}

type brokenKV struct {
	getErr error
	setErr error
	value  string
}

func (b *brokenKV) Get(context.Context, string) (string, bool, error) {
	if b.getErr != nil {
		return "", false, b.getErr
	}
	return b.value, b.value != "", nil
}

func (b *brokenKV) Set(_ context.Context, _ string, v string) error {
	if b.setErr != nil {
		return b.setErr
	}
	b.value = v
	return nil
}

func (b *brokenKV) Update(_ context.Context, _ string, fn storage.UpdateFunc) error {
	if b.getErr != nil {
		return b.getErr
	}
	next, err := fn(b.value, b.value != "")
	if err != nil {
		return err
	}
	if b.setErr != nil {
		return b.setErr
	}
	b.value = next
	return nil
}

func TestRepository_StorageFailures(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("write fails closed", func(t *testing.T) {
		t.Parallel()
		r := newTestRepo(&brokenKV{setErr: errors.New("quota exceeded")})
		_, err := r.Create(ctx, goldenDragon())
		require.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})

	t.Run("update and delete fail closed", func(t *testing.T) {
		t.Parallel()
		stored := `[{"id":1,"restaurantName":"Golden Dragon","name":"Alice","phone":"555-1111","email":"a@x.com","date":"2024-06-01","time":"19:00","guests":"2","requests":""}]`
		kv := &brokenKV{value: stored, setErr: errors.New("quota exceeded")}
		r := newTestRepo(kv)

		fields := goldenDragon().ReservationFields
		fields.Guests = "5"
		_, err := r.Update(ctx, 1, fields)
		require.ErrorIs(t, err, errs.ErrStorageUnavailable)
		_, err = r.Delete(ctx, 1)
		require.ErrorIs(t, err, errs.ErrStorageUnavailable)
		require.Equal(t, stored, kv.value)

		_, err = r.Delete(ctx, 2)
		require.ErrorIs(t, err, errs.ErrReservationNotFound)
	})

	t.Run("read fails open for list, closed for mutations", func(t *testing.T) {
		t.Parallel()
		r := newTestRepo(&brokenKV{getErr: errors.New("connection reset")})
		list, err := r.List(ctx)
		require.NoError(t, err)
		require.Empty(t, list)

		_, err = r.Create(ctx, goldenDragon())
		require.ErrorIs(t, err, errs.ErrStorageUnavailable)
		_, err = r.Delete(ctx, 1)
		require.ErrorIs(t, err, errs.ErrStorageUnavailable)
	})
}

func createConcurrently(t *testing.T, repos []*repository, perRepo int) {
	t.Helper()
	ctx := context.Background()
	errCh := make(chan error, len(repos)*perRepo)
	var wg sync.WaitGroup
	for ri, r := range repos {
		for i := 0; i < perRepo; i++ {
			wg.Add(1)
			go func(r *repository, ri, i int) {
				defer wg.Done()
				in := goldenDragon()
				in.Phone = fmt.Sprintf("555-%d-%03d", ri, i)
				_, err := r.Create(ctx, in)
				errCh <- err
			}(r, ri, i)
		}
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}
}

func requireDistinctIDs(t *testing.T, list []model.Reservation) {
	t.Helper()
	seen := make(map[int64]struct{}, len(list))
	for _, res := range list {
		_, dup := seen[res.ID]
		require.False(t, dup, "id %d stored twice", res.ID)
		seen[res.ID] = struct{}{}
	}
}

func TestRepository_SharedRedisKeepsEveryWrite(t *testing.T) {
	t.Parallel()
	mr := miniredis.RunT(t)
	newRepo := func() *repository {
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return NewRepository(storage.NewRedis(client, zap.NewNop()), zap.NewNop())
	}
	a, b := newRepo(), newRepo()

	createConcurrently(t, []*repository{a, b}, 25)

	list, err := a.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 50)
	requireDistinctIDs(t, list)
}

func TestRepository_SharedFileKeepsEveryWrite(t *testing.T) {
	t.Parallel()
	kv, err := storage.NewFile(t.TempDir())
	require.NoError(t, err)
	a := NewRepository(kv, zap.NewNop())
	b := NewRepository(kv, zap.NewNop())

	createConcurrently(t, []*repository{a, b}, 50)

	list, err := b.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 100)
	requireDistinctIDs(t, list)
}
