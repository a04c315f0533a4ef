package access

import (
	"testing"

	"github.com/perditionlabs/recruitd/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCheckBareMembershipAuthorizes(t *testing.T) {
	require.NoError(t, Resolved(models.AdminLevelReadOnly, false).Authorize())
	require.ErrorIs(t, Denied().Authorize(), ErrDenied)
}

func TestCheckAtLeast(t *testing.T) {
	director := Resolved(models.AdminLevelDirector, false)

	require.NoError(t, director.AtLeast(models.AdminLevelReadOnly).Authorize())
	require.NoError(t, director.AtLeast(models.AdminLevelDirector).Authorize())
	require.ErrorIs(t, director.AtLeast(models.AdminLevelAdmin).Authorize(), ErrDenied)
}

func TestCheckRequirementsAreConjunctive(t *testing.T) {
	director := Resolved(models.AdminLevelDirector, false)

	// A failed requirement cannot be washed out by a later passing one.
	err := director.AtLeast(models.AdminLevelAdmin).AtLeast(models.AdminLevelReadOnly).Authorize()
	require.ErrorIs(t, err, ErrDenied)

	err = director.AtLeast(models.AdminLevelReadOnly).AtLeast(models.AdminLevelDirector).Authorize()
	require.NoError(t, err)
}

func TestCheckSuperuserBypassesLevels(t *testing.T) {
	su := Resolved(models.AdminLevelReadOnly, true)

	require.NoError(t, su.IsAdmin().Authorize())
	require.NoError(t, su.IsDirectorOrAbove().Authorize())
	require.True(t, su.Superuser())

	level, ok := su.Level()
	require.True(t, ok)
	require.Equal(t, models.AdminLevelAdmin, level)
}

func TestCheckOrOverride(t *testing.T) {
	// An unresolved check passes when the override condition holds, as with
	// a published campaign read by a non-member.
	require.NoError(t, Denied().AtLeast(models.AdminLevelReadOnly).Or(true).Authorize())
	require.ErrorIs(t, Denied().AtLeast(models.AdminLevelReadOnly).Or(false).Authorize(), ErrDenied)

	// The override also rescues an insufficient level.
	readOnly := Resolved(models.AdminLevelReadOnly, false)
	require.NoError(t, readOnly.AtLeast(models.AdminLevelAdmin).Or(true).Authorize())
}

func TestCheckIsImmutable(t *testing.T) {
	base := Resolved(models.AdminLevelReadOnly, false)

	require.ErrorIs(t, base.IsAdmin().Authorize(), ErrDenied)

	// The failed requirement must not stick to the original value.
	require.NoError(t, base.Authorize())
	require.NoError(t, base.AtLeast(models.AdminLevelReadOnly).Authorize())
}

func TestCheckDeniedLevelUnknown(t *testing.T) {
	_, ok := Denied().Level()
	require.False(t, ok)
	require.False(t, Denied().Superuser())
}
