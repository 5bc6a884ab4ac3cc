package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"attorney_directory_go/models"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeGateway records calls and returns canned results.
type fakeGateway struct {
	mu      sync.Mutex
	list    []models.Attorney
	listErr error
	delErr  error
	nextID  int64
	deleted []int64

	// observed is called while a request is in flight
	observed func()
}

func (f *fakeGateway) List(ctx context.Context) ([]models.Attorney, error) {
	if f.observed != nil {
		f.observed()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Attorney, len(f.list))
	copy(out, f.list)
	return out, nil
}

func (f *fakeGateway) Create(ctx context.Context, in models.AttorneyInput) (models.Attorney, error) {
	if f.observed != nil {
		f.observed()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a := in.Record(f.nextID)
	f.list = append(f.list, a)
	return a, nil
}

func (f *fakeGateway) Update(ctx context.Context, a models.Attorney) (models.Attorney, error) {
	if f.observed != nil {
		f.observed()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.list {
		if f.list[i].ID == a.ID {
			f.list[i] = a
			return a, nil
		}
	}
	return models.Attorney{}, &APIError{Status: 404, Message: "Attorney not found"}
}

func (f *fakeGateway) Delete(ctx context.Context, id int64) error {
	if f.observed != nil {
		f.observed()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func sample() []models.Attorney {
	return []models.Attorney{
		{ID: 3, FirstName: "Claire", LastName: "Martin", Specialty: "Family Law"},
		{ID: 1, FirstName: "Thomas", LastName: "Bernard", Specialty: "Tax Law"},
		{ID: 2, FirstName: "Emily", LastName: "Clarke", Specialty: "Family Law"},
	}
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces collection in received order", func(t *testing.T) {
		gw := &fakeGateway{list: sample()}
		s := New(gw, zerolog.Nop())
		s.Add(models.Attorney{ID: 99})

		require.NoError(t, s.Load(ctx))

		snap := s.Snapshot()
		assert.False(t, snap.Loading)
		if diff := cmp.Diff(sample(), snap.Attorneys); diff != "" {
			t.Errorf("collection mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Failure keeps previous collection", func(t *testing.T) {
		gw := &fakeGateway{list: sample()}
		s := New(gw, zerolog.Nop())
		require.NoError(t, s.Load(ctx))

		gw.listErr = errors.New("connection refused")
		err := s.Load(ctx)
		assert.Error(t, err)

		snap := s.Snapshot()
		assert.False(t, snap.Loading)
		assert.Len(t, snap.Attorneys, 3)
	})

	t.Run("Loading is set while the request is in flight", func(t *testing.T) {
		gw := &fakeGateway{list: sample()}
		s := New(gw, zerolog.Nop())
		gw.observed = func() {
			assert.True(t, s.Snapshot().Loading)
		}
		require.NoError(t, s.Load(ctx))
		assert.False(t, s.Snapshot().Loading)
	})

	t.Run("Empty list", func(t *testing.T) {
		s := New(&fakeGateway{}, zerolog.Nop())
		require.NoError(t, s.Load(ctx))
		assert.NotNil(t, s.Snapshot().Attorneys)
		assert.Empty(t, s.Snapshot().Attorneys)
	})
}

func TestAdd(t *testing.T) {
	s := New(&fakeGateway{}, zerolog.Nop())

	s.Add(models.Attorney{ID: 1, FirstName: "Jane"})
	s.Add(models.Attorney{ID: 2, FirstName: "John"})
	s.Add(models.Attorney{ID: 1, FirstName: "Janet"})

	snap := s.Snapshot()
	require.Len(t, snap.Attorneys, 2)
	assert.Equal(t, "Janet", snap.Attorneys[0].FirstName)
	assert.Equal(t, "John", snap.Attorneys[1].FirstName)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("Success drops the record", func(t *testing.T) {
		gw := &fakeGateway{list: sample()}
		s := New(gw, zerolog.Nop())
		require.NoError(t, s.Load(ctx))

		require.NoError(t, s.Remove(ctx, 1))

		snap := s.Snapshot()
		assert.False(t, snap.Loading)
		assert.Len(t, snap.Attorneys, 2)
		_, found := s.Find(1)
		assert.False(t, found)
		assert.Equal(t, []int64{1}, gw.deleted)
	})

	t.Run("Failure leaves the collection untouched", func(t *testing.T) {
		gw := &fakeGateway{list: sample()}
		s := New(gw, zerolog.Nop())
		require.NoError(t, s.Load(ctx))

		gw.delErr = &APIError{Status: 404, Message: "Attorney not found"}
		err := s.Remove(ctx, 1)
		assert.True(t, IsNotFound(err))

		snap := s.Snapshot()
		assert.False(t, snap.Loading)
		assert.Len(t, snap.Attorneys, 3)
	})

	t.Run("Loading is set while the request is in flight", func(t *testing.T) {
		gw := &fakeGateway{list: sample()}
		s := New(gw, zerolog.Nop())
		gw.observed = func() {
			assert.True(t, s.Snapshot().Loading)
		}
		require.NoError(t, s.Remove(ctx, 3))
	})
}

func TestCreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	s := New(gw, zerolog.Nop())

	created, err := s.Create(ctx, models.AttorneyInput{
		FirstName:  "Jane",
		LastName:   "Doe",
		Specialty:  "Family Law",
		TotalCases: models.IntPtr(0),
		WonCases:   models.IntPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	snap := s.Snapshot()
	require.Len(t, snap.Attorneys, 1)
	assert.Equal(t, created, snap.Attorneys[0])

	created.Specialty = "Tax Law"
	updated, err := s.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "Tax Law", updated.Specialty)

	found, ok := s.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Tax Law", found.Specialty)
	assert.Len(t, s.Snapshot().Attorneys, 1)

	_, err = s.Update(ctx, models.Attorney{ID: 42})
	assert.True(t, IsNotFound(err))
	assert.Len(t, s.Snapshot().Attorneys, 1)
	assert.False(t, s.Snapshot().Loading)
}

func TestCreateAndUpdateSetLoading(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	s := New(gw, zerolog.Nop())

	calls := 0
	gw.observed = func() {
		calls++
		assert.True(t, s.Snapshot().Loading)
	}

	var got []Snapshot
	s.Subscribe(func(snap Snapshot) { got = append(got, snap) })

	created, err := s.Create(ctx, models.AttorneyInput{
		FirstName:  "Jane",
		LastName:   "Doe",
		Specialty:  "Family Law",
		TotalCases: models.IntPtr(1),
		WonCases:   models.IntPtr(1),
	})
	require.NoError(t, err)

	// loading on, record merged, loading off
	require.Len(t, got, 3)
	assert.True(t, got[0].Loading)
	assert.Len(t, got[1].Attorneys, 1)
	assert.False(t, got[2].Loading)

	_, err = s.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.False(t, s.Snapshot().Loading)
}

func TestFilter(t *testing.T) {
	s := New(&fakeGateway{list: sample()}, zerolog.Nop())
	require.NoError(t, s.Load(context.Background()))

	assert.Len(t, s.Filter(""), 3)

	family := s.Filter("Family Law")
	require.Len(t, family, 2)
	assert.Equal(t, int64(3), family[0].ID)
	assert.Equal(t, int64(2), family[1].ID)

	assert.Empty(t, s.Filter("Space Law"))
}

func TestSubscribe(t *testing.T) {
	s := New(&fakeGateway{list: sample()}, zerolog.Nop())

	var got []Snapshot
	unsubscribe := s.Subscribe(func(snap Snapshot) {
		got = append(got, snap)
	})

	require.NoError(t, s.Load(context.Background()))

	// loading on, collection replaced, loading off
	require.Len(t, got, 3)
	assert.True(t, got[0].Loading)
	assert.Empty(t, got[0].Attorneys)
	assert.True(t, got[1].Loading)
	assert.Len(t, got[1].Attorneys, 3)
	assert.False(t, got[2].Loading)

	unsubscribe()
	s.Add(models.Attorney{ID: 7})
	assert.Len(t, got, 3)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(&fakeGateway{}, zerolog.Nop())
	s.Add(models.Attorney{ID: 1, FirstName: "Jane"})

	snap := s.Snapshot()
	snap.Attorneys[0].FirstName = "Mutated"

	found, _ := s.Find(1)
	assert.Equal(t, "Jane", found.FirstName)
}
