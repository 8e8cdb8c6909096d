package repo_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/catering-api/internal/domain"
	"github.com/pkordes/catering-api/internal/repo"
	"github.com/pkordes/catering-api/testutil"
)

// newTestRepos opens a single transaction and returns a Store and Repos both
// backed by it, so every test works inside one rolled-back transaction.
func newTestRepos(t *testing.T) (repo.Store, repo.Repos) {
	t.Helper()
	tx := testutil.NewTx(t)
	return repo.NewStore(tx), repo.NewRepos(tx)
}

func mustCreateLocation(t *testing.T, r repo.Repos, city string) domain.Location {
	t.Helper()
	l, err := r.Locations.Create(context.Background(), domain.Location{
		City:        city,
		Address:     "Coolsingel 40",
		ZipCode:     "3011AD",
		CountryCode: "NL",
		PhoneNumber: "+31101234567",
	})
	require.NoError(t, err)
	return l
}

func mustCreateFacility(t *testing.T, r repo.Repos, name, city string) domain.Facility {
	t.Helper()
	l := mustCreateLocation(t, r, city)
	f, err := r.Facilities.Create(context.Background(), name, l.ID)
	require.NoError(t, err)
	return f
}

// uniqueName returns a name no other test run will produce, so tests do not
// collide on the case-insensitive tag index of a shared database.
func uniqueName(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func page(limit int, cursor int64) domain.PageParams {
	return domain.PageParams{Limit: limit, Cursor: cursor}
}
