package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"attorney_directory_go/db"
	"attorney_directory_go/models"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAttorneyFile(t *testing.T) *db.AttorneyFile {
	t.Helper()
	file := db.NewAttorneyFile(NewLocalStorage(t.TempDir()), "attorneys.json")
	require.NoError(t, file.WriteAll(context.Background(), []models.Attorney{}))
	return file
}

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	original := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = original })
}

func janeDoe() models.AttorneyInput {
	return models.AttorneyInput{
		FirstName:    "Jane",
		LastName:     "Doe",
		Specialty:    "Family Law",
		PhoneNumber:  "+33612345678",
		Email:        "j@d.com",
		Indicator:    "+33",
		CountryPhone: "FR",
		Description:  "x",
		TotalCases:   models.IntPtr(10),
		WonCases:     models.IntPtr(7),
	}
}

func TestCreateAttorney(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		file := setupAttorneyFile(t)
		at := time.UnixMilli(1700000000123)
		freezeClock(t, at)

		created, err := CreateAttorney(ctx, file, janeDoe())
		require.NoError(t, err)
		assert.Equal(t, int64(1700000000123), created.ID)

		list, err := ListAttorneys(ctx, file)
		require.NoError(t, err)
		require.Len(t, list, 1)
		if diff := cmp.Diff(created, list[0]); diff != "" {
			t.Errorf("listed record differs (-created +listed):\n%s", diff)
		}
		assert.Equal(t, 1.0, testutil.ToFloat64(AttorneyRecords))
	})

	t.Run("Zero counts are accepted", func(t *testing.T) {
		file := setupAttorneyFile(t)
		in := janeDoe()
		in.TotalCases = models.IntPtr(0)
		in.WonCases = models.IntPtr(0)

		created, err := CreateAttorney(ctx, file, in)
		require.NoError(t, err)
		assert.Equal(t, 0, created.TotalCases)
		assert.Equal(t, 0, created.WonCases)
	})

	t.Run("Missing fields", func(t *testing.T) {
		file := setupAttorneyFile(t)
		in := janeDoe()
		in.Email = ""
		in.TotalCases = nil

		_, err := CreateAttorney(ctx, file, in)
		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, MsgMissingFields, validationErr.MessageKey)
		assert.Equal(t, []string{"email", "totalCases"}, validationErr.Fields)

		list, err := ListAttorneys(ctx, file)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Negative counts", func(t *testing.T) {
		file := setupAttorneyFile(t)
		in := janeDoe()
		in.WonCases = models.IntPtr(-1)

		_, err := CreateAttorney(ctx, file, in)
		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, MsgNegativeCount, validationErr.MessageKey)
	})

	t.Run("Same millisecond gets distinct ids", func(t *testing.T) {
		file := setupAttorneyFile(t)
		freezeClock(t, time.UnixMilli(5000))

		first, err := CreateAttorney(ctx, file, janeDoe())
		require.NoError(t, err)
		second, err := CreateAttorney(ctx, file, janeDoe())
		require.NoError(t, err)

		assert.Equal(t, int64(5000), first.ID)
		assert.Equal(t, int64(5001), second.ID)
	})

	t.Run("Insertion order is kept", func(t *testing.T) {
		file := setupAttorneyFile(t)
		names := []string{"Ann", "Bob", "Cid"}
		for i, name := range names {
			freezeClock(t, time.UnixMilli(int64(9000-i)))
			in := janeDoe()
			in.FirstName = name
			_, err := CreateAttorney(ctx, file, in)
			require.NoError(t, err)
		}

		list, err := ListAttorneys(ctx, file)
		require.NoError(t, err)
		require.Len(t, list, 3)
		for i, name := range names {
			assert.Equal(t, name, list[i].FirstName)
		}
	})

	t.Run("Description markup is stripped", func(t *testing.T) {
		file := setupAttorneyFile(t)
		in := janeDoe()
		in.Description = `<script>alert(1)</script>Trusted & "reliable"`

		created, err := CreateAttorney(ctx, file, in)
		require.NoError(t, err)
		assert.Equal(t, `Trusted & "reliable"`, created.Description)
	})

	t.Run("Markup-only description is missing", func(t *testing.T) {
		file := setupAttorneyFile(t)
		in := janeDoe()
		in.Description = "<br>"

		_, err := CreateAttorney(ctx, file, in)
		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, MsgMissingFields, validationErr.MessageKey)
		assert.Equal(t, []string{"description"}, validationErr.Fields)

		list, err := ListAttorneys(ctx, file)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("Missing document", func(t *testing.T) {
		file := db.NewAttorneyFile(NewLocalStorage(t.TempDir()), "absent.json")
		_, err := CreateAttorney(ctx, file, janeDoe())
		var storageErr *StorageError
		require.True(t, errors.As(err, &storageErr))
		assert.Equal(t, "read", storageErr.Op)
	})
}

func TestListAttorneysIsIdempotent(t *testing.T) {
	ctx := context.Background()
	file := setupAttorneyFile(t)
	for i := 0; i < 3; i++ {
		freezeClock(t, time.UnixMilli(int64(100+i)))
		_, err := CreateAttorney(ctx, file, janeDoe())
		require.NoError(t, err)
	}

	first, err := ListAttorneys(ctx, file)
	require.NoError(t, err)
	second, err := ListAttorneys(ctx, file)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUpdateAttorney(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces full record", func(t *testing.T) {
		file := setupAttorneyFile(t)
		created, err := CreateAttorney(ctx, file, janeDoe())
		require.NoError(t, err)

		update := models.AttorneyUpdate{
			ID:         &created.ID,
			FirstName:  "Jane",
			LastName:   "Doe",
			Specialty:  "Tax Law",
			TotalCases: 12,
			WonCases:   8,
		}
		updated, err := UpdateAttorney(ctx, file, update)
		require.NoError(t, err)
		assert.Equal(t, "Tax Law", updated.Specialty)
		// Fields not sent are lost
		assert.Empty(t, updated.Email)

		got, err := GetAttorney(ctx, file, created.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("Unknown id leaves document untouched", func(t *testing.T) {
		file := setupAttorneyFile(t)
		_, err := CreateAttorney(ctx, file, janeDoe())
		require.NoError(t, err)
		before, err := ListAttorneys(ctx, file)
		require.NoError(t, err)

		missing := int64(1)
		_, err = UpdateAttorney(ctx, file, models.AttorneyUpdate{ID: &missing, FirstName: "Ghost"})
		assert.ErrorIs(t, err, ErrAttorneyNotFound)

		after, err := ListAttorneys(ctx, file)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("Missing id", func(t *testing.T) {
		file := setupAttorneyFile(t)
		_, err := UpdateAttorney(ctx, file, models.AttorneyUpdate{FirstName: "NoID"})
		assert.True(t, IsValidationError(err))
	})

	t.Run("Rejected updates leave document untouched", func(t *testing.T) {
		file := setupAttorneyFile(t)
		created, err := CreateAttorney(ctx, file, janeDoe())
		require.NoError(t, err)

		tests := []struct {
			name   string
			update models.AttorneyUpdate
			key    string
		}{
			{"markup-only description", models.AttorneyUpdate{ID: &created.ID, Description: "<br>", TotalCases: 1}, MsgMissingFields},
			{"negative won cases", models.AttorneyUpdate{ID: &created.ID, Description: "x", TotalCases: 1, WonCases: -2}, MsgNegativeCount},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := UpdateAttorney(ctx, file, tt.update)
				var validationErr *ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, tt.key, validationErr.MessageKey)

				got, err := GetAttorney(ctx, file, created.ID)
				require.NoError(t, err)
				assert.Equal(t, created, got)
			})
		}
	})
}

func TestDeleteAttorney(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		file := setupAttorneyFile(t)
		freezeClock(t, time.UnixMilli(1))
		first, err := CreateAttorney(ctx, file, janeDoe())
		require.NoError(t, err)
		freezeClock(t, time.UnixMilli(2))
		second, err := CreateAttorney(ctx, file, janeDoe())
		require.NoError(t, err)

		require.NoError(t, DeleteAttorney(ctx, file, first.ID))

		list, err := ListAttorneys(ctx, file)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, second.ID, list[0].ID)
	})

	t.Run("Unknown id keeps count", func(t *testing.T) {
		file := setupAttorneyFile(t)
		_, err := CreateAttorney(ctx, file, janeDoe())
		require.NoError(t, err)

		err = DeleteAttorney(ctx, file, 424242)
		assert.ErrorIs(t, err, ErrAttorneyNotFound)

		list, err := ListAttorneys(ctx, file)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestGetAttorneyNotFound(t *testing.T) {
	file := setupAttorneyFile(t)
	_, err := GetAttorney(context.Background(), file, 99)
	assert.ErrorIs(t, err, ErrAttorneyNotFound)
}

func TestNextAttorneyID(t *testing.T) {
	at := time.UnixMilli(1000)
	assert.Equal(t, int64(1000), NextAttorneyID(nil, at))
	assert.Equal(t, int64(1002), NextAttorneyID([]models.Attorney{{ID: 1000}, {ID: 1001}}, at))
	assert.Equal(t, int64(1000), NextAttorneyID([]models.Attorney{{ID: 999}}, at))
}

func TestSanitizeDescription(t *testing.T) {
	assert.Equal(t, "plain text", SanitizeDescription("plain text"))
	assert.Equal(t, "bold", SanitizeDescription("<b>bold</b>"))
	assert.Equal(t, "O'Brien & Sons", SanitizeDescription("O'Brien & Sons"))
}
