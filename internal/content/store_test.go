package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func heroFields() Document {
	return Document{
		"HeroWelcomeText":   "Welcome",
		"HeroPrimaryText":   "X",
		"HeroSecondaryText": "Y",
		"HeroDescription":   "Z",
	}
}

func TestCreateVersion_SetsActiveAndRetiresOld(t *testing.T) {
	repo := NewMemoryRepository()
	store := NewStore(HeroSection, repo)
	ctx := context.Background()

	first, err := store.CreateVersion(ctx, heroFields(), "editor-1")
	require.NoError(t, err)
	require.Equal(t, true, first[FieldIsActive])
	require.Equal(t, "editor-1", first[FieldUpdatedBy])

	fields := heroFields()
	fields["HeroWelcomeText"] = "Second"
	second, err := store.CreateVersion(ctx, fields, "editor-2")
	require.NoError(t, err)

	active, err := store.GetActive(ctx)
	require.NoError(t, err)
	require.Equal(t, second[FieldID], active[FieldID])
	require.Equal(t, "Second", active["HeroWelcomeText"])
	require.Equal(t, "editor-2", active[FieldUpdatedBy])

	// history retained: the first version still exists, just inactive
	old, err := repo.GetByID(ctx, first[FieldID].(string))
	require.NoError(t, err)
	require.Equal(t, false, old[FieldIsActive])

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
}

func TestCreateVersion_ValidationLeavesStoreUnchanged(t *testing.T) {
	repo := NewMemoryRepository()
	store := NewStore(HeroSection, repo)
	ctx := context.Background()

	fields := heroFields()
	delete(fields, "HeroDescription")
	_, err := store.CreateVersion(ctx, fields, "editor-1")
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Fields, 1)
	require.Equal(t, "HeroDescription", ve.Fields[0].Field)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), count, "failed create must not insert")
	_, err = store.GetActive(ctx)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateVersion_StripsReservedFields(t *testing.T) {
	repo := NewMemoryRepository()
	store := NewStore(HeroSection, repo)
	ctx := context.Background()

	fields := heroFields()
	fields[FieldIsActive] = false
	fields[FieldUpdatedBy] = "spoofed"
	fields[FieldID] = "custom-id"

	doc, err := store.CreateVersion(ctx, fields, "editor-1")
	require.NoError(t, err)
	require.Equal(t, true, doc[FieldIsActive])
	require.Equal(t, "editor-1", doc[FieldUpdatedBy])
	require.NotEqual(t, "custom-id", doc[FieldID])
}

func TestPatchVersion_UpdatesInPlace(t *testing.T) {
	repo := NewMemoryRepository()
	store := NewStore(HeroSection, repo)
	ctx := context.Background()

	created, err := store.CreateVersion(ctx, heroFields(), "editor-1")
	require.NoError(t, err)
	id := created[FieldID].(string)

	fields := heroFields()
	fields["HeroWelcomeText"] = "Patched"
	patched, err := store.PatchVersion(ctx, id, fields, "editor-2")
	require.NoError(t, err)
	require.Equal(t, id, patched[FieldID])
	require.Equal(t, "Patched", patched["HeroWelcomeText"])
	require.Equal(t, "editor-2", patched[FieldUpdatedBy])
	require.Equal(t, true, patched[FieldIsActive], "patch must not touch isActive")

	count, err := store.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count, "patch must not create a new version")
}

func TestPatchVersion_UnknownID(t *testing.T) {
	store := NewStore(HeroSection, NewMemoryRepository())
	_, err := store.PatchVersion(context.Background(), "missing", heroFields(), "editor-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPatchVersion_DoesNotActivateInactiveVersion(t *testing.T) {
	repo := NewMemoryRepository()
	store := NewStore(HeroSection, repo)
	ctx := context.Background()

	first, err := store.CreateVersion(ctx, heroFields(), "editor-1")
	require.NoError(t, err)
	_, err = store.CreateVersion(ctx, heroFields(), "editor-1")
	require.NoError(t, err)

	// patch the retired version; it must stay retired
	oldID := first[FieldID].(string)
	patched, err := store.PatchVersion(ctx, oldID, heroFields(), "editor-2")
	require.NoError(t, err)
	require.Equal(t, false, patched[FieldIsActive])
}

func TestGetActive_Idempotent(t *testing.T) {
	repo := NewMemoryRepository()
	store := NewStore(HeroSection, repo)
	ctx := context.Background()

	_, err := store.CreateVersion(ctx, heroFields(), "editor-1")
	require.NoError(t, err)

	a, err := store.GetActive(ctx)
	require.NoError(t, err)
	b, err := store.GetActive(ctx)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestGetActive_PicksNewestWhenInvariantViolated(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	// simulate the create/create race: two documents end up active
	older, err := repo.Insert(ctx, Document{"HeroWelcomeText": "old", FieldIsActive: true})
	require.NoError(t, err)
	newer, err := repo.Insert(ctx, Document{"HeroWelcomeText": "new", FieldIsActive: true})
	require.NoError(t, err)

	store := NewStore(HeroSection, repo)
	active, err := store.GetActive(ctx)
	require.NoError(t, err)
	require.Equal(t, newer[FieldID], active[FieldID])
	require.NotEqual(t, older[FieldID], active[FieldID])
}
