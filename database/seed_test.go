package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"blogaulas/database"
	"blogaulas/models"
	"blogaulas/testutil/memstore"
)

func TestSeedCreatesDefaultAccounts(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	require.NoError(t, database.Seed(ctx, store.Users(), database.DefaultAccounts, zap.NewNop()))

	prof, err := store.Users().FindByUsername(ctx, "prof1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, prof.Role)
	assert.True(t, prof.CheckPassword("senha123"))

	aluno, err := store.Users().FindByUsername(ctx, "aluno1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, aluno.Role)
}

func TestSeedIsIdempotent(t *testing.T) {
	store := memstore.New()
	ctx := context.Background()

	// A pre-existing account keeps its password.
	existing := &models.User{Username: "prof1", Role: models.RoleTeacher}
	require.NoError(t, existing.SetPassword("outra"))
	require.NoError(t, store.Users().Create(ctx, existing))

	for i := 0; i < 2; i++ {
		require.NoError(t, database.Seed(ctx, store.Users(), database.DefaultAccounts, zap.NewNop()))
	}

	all, err := store.Users().List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	prof, err := store.Users().FindByUsername(ctx, "prof1")
	require.NoError(t, err)
	assert.True(t, prof.CheckPassword("outra"))
}

func TestSeedStoreFailure(t *testing.T) {
	store := memstore.New()
	store.FailWith = errors.New("db down")
	err := database.Seed(context.Background(), store.Users(), database.DefaultAccounts, zap.NewNop())
	assert.ErrorContains(t, err, "seed lookup prof1")
}
