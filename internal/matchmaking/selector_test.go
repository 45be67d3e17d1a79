package matchmaking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkmatch/sparkmatch-backend/internal/users"
)

func ptrStr(s string) *string   { return &s }
func ptrInt(i int) *int         { return &i }
func ptrF64(f float64) *float64 { return &f }

type userOpt func(*users.User)

func withCoords(lat, lon float64) userOpt {
	return func(u *users.User) {
		u.Latitude = ptrF64(lat)
		u.Longitude = ptrF64(lon)
	}
}

func withInterestedIn(genders ...string) userOpt {
	return func(u *users.User) { u.InterestedIn = genders }
}

func withAgeRange(min, max int) userOpt {
	return func(u *users.User) {
		u.AgeRangeMin = ptrInt(min)
		u.AgeRangeMax = ptrInt(max)
	}
}

func testUser(id int64, name string, age int, gender string, opts ...userOpt) *users.User {
	u := &users.User{
		ID:                    id,
		Name:                  name,
		Age:                   ptrInt(age),
		Gender:                ptrStr(gender),
		Location:              ptrStr("Lisbon, Portugal"),
		LookingForDescription: ptrStr("someone kind who likes the outdoors"),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func defaultSelectorConfig() SelectorConfig {
	return SelectorConfig{Limit: 10, MinLookingForLength: 1, DefaultMinAge: 18, DefaultMaxAge: 100}
}

func TestEligibility(t *testing.T) {
	selector := NewCandidateSelector(newFakeUserStore(), defaultSelectorConfig())

	t.Run("complete profile is eligible", func(t *testing.T) {
		assert.True(t, selector.Eligible(testUser(1, "Ana", 30, users.GenderFemale)))
	})

	t.Run("missing looking-for text", func(t *testing.T) {
		u := testUser(1, "Ana", 30, users.GenderFemale)
		u.LookingForDescription = nil
		assert.False(t, selector.Eligible(u))
	})

	t.Run("looking-for text below threshold", func(t *testing.T) {
		cfg := defaultSelectorConfig()
		cfg.MinLookingForLength = 10
		s := NewCandidateSelector(newFakeUserStore(), cfg)

		u := testUser(1, "Ana", 30, users.GenderFemale)
		u.LookingForDescription = ptrStr("short")
		assert.False(t, s.Eligible(u))
	})

	t.Run("missing location", func(t *testing.T) {
		u := testUser(1, "Ana", 30, users.GenderFemale)
		u.Location = nil
		assert.False(t, selector.Eligible(u))

		u.Location = ptrStr("")
		assert.False(t, selector.Eligible(u))
	})
}

// Age filter, gender filter and ranking together: source is 30, wants women
// aged 25-40. A passes; B fails the age window; C fails the gender filter.
func TestSelectAppliesHardFilters(t *testing.T) {
	source := testUser(1, "Source", 30, users.GenderMale,
		withCoords(0, 0), withAgeRange(25, 40), withInterestedIn(users.GenderFemale))

	store := newFakeUserStore(
		source,
		testUser(2, "A", 28, users.GenderFemale, withCoords(0.045, 0)), // ~5 km
		testUser(3, "B", 45, users.GenderFemale, withCoords(0.018, 0)), // ~2 km
		testUser(4, "C", 30, users.GenderMale, withCoords(0.009, 0)),   // ~1 km
	)

	selector := NewCandidateSelector(store, defaultSelectorConfig())
	candidates, err := selector.Select(context.Background(), source)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(2), candidates[0].User.ID)
	assert.InDelta(t, 5.0, candidates[0].DistanceKm, 0.1)
}

func TestSelectRanksByDistanceWithUnknownLast(t *testing.T) {
	source := testUser(1, "Source", 30, users.GenderMale, withCoords(0, 0))

	noCoords := testUser(2, "Far", 30, users.GenderFemale)
	noCoords.Latitude = nil
	noCoords.Longitude = nil

	store := newFakeUserStore(
		source,
		noCoords,
		testUser(3, "Near", 30, users.GenderFemale, withCoords(0.018, 0)), // ~2 km
		testUser(4, "Mid", 30, users.GenderFemale, withCoords(0.09, 0)),   // ~10 km
	)

	selector := NewCandidateSelector(store, defaultSelectorConfig())
	candidates, err := selector.Select(context.Background(), source)

	require.NoError(t, err)
	require.Len(t, candidates, 3)
	assert.Equal(t, int64(3), candidates[0].User.ID)
	assert.Equal(t, int64(4), candidates[1].User.ID)
	assert.Equal(t, int64(2), candidates[2].User.ID)
	assert.Equal(t, float64(unknownDistanceKm), candidates[2].DistanceKm)
}

func TestSelectTruncatesToLimit(t *testing.T) {
	source := testUser(1, "Source", 30, users.GenderMale, withCoords(0, 0))

	store := newFakeUserStore(source)
	for i := int64(2); i <= 16; i++ {
		store.users[i] = testUser(i, "Candidate", 30, users.GenderFemale,
			withCoords(0.01*float64(i), 0))
	}

	cfg := defaultSelectorConfig()
	cfg.Limit = 10
	selector := NewCandidateSelector(store, cfg)

	candidates, err := selector.Select(context.Background(), source)
	require.NoError(t, err)
	assert.Len(t, candidates, 10)
}

func TestSelectExcludesAlreadyScored(t *testing.T) {
	source := testUser(1, "Source", 30, users.GenderMale, withCoords(0, 0))
	store := newFakeUserStore(
		source,
		testUser(2, "New", 30, users.GenderFemale, withCoords(0.01, 0)),
		testUser(3, "Scored", 30, users.GenderFemale, withCoords(0.02, 0)),
	)
	store.markScored(1, 3)

	selector := NewCandidateSelector(store, defaultSelectorConfig())
	candidates, err := selector.Select(context.Background(), source)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, int64(2), candidates[0].User.ID)

	// The exclusion rides on the candidate filter
	assert.Equal(t, int64(1), store.lastFilter.ExcludeAlreadyScoredBy)
}

func TestSelectZeroCandidatesIsValid(t *testing.T) {
	source := testUser(1, "Source", 30, users.GenderMale, withCoords(0, 0))
	selector := NewCandidateSelector(newFakeUserStore(source), defaultSelectorConfig())

	candidates, err := selector.Select(context.Background(), source)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
