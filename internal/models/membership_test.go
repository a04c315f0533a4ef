package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdminLevelOrdering(t *testing.T) {
	require.True(t, AdminLevelAdmin.AtLeast(AdminLevelDirector))
	require.True(t, AdminLevelAdmin.AtLeast(AdminLevelReadOnly))
	require.True(t, AdminLevelDirector.AtLeast(AdminLevelReadOnly))

	require.False(t, AdminLevelReadOnly.AtLeast(AdminLevelDirector))
	require.False(t, AdminLevelReadOnly.AtLeast(AdminLevelAdmin))
	require.False(t, AdminLevelDirector.AtLeast(AdminLevelAdmin))
}

func TestAdminLevelAtLeastIsReflexive(t *testing.T) {
	for _, level := range []AdminLevel{AdminLevelReadOnly, AdminLevelDirector, AdminLevelAdmin} {
		require.True(t, level.AtLeast(level))
	}
}

func TestAdminLevelUnknownRanksBelowEverything(t *testing.T) {
	var unknown AdminLevel = "OWNER"
	require.False(t, unknown.Valid())
	require.False(t, unknown.AtLeast(AdminLevelReadOnly))
	require.True(t, AdminLevelReadOnly.AtLeast(unknown))
}

func TestQuestionVariantHasOptions(t *testing.T) {
	require.False(t, VariantShortAnswer.HasOptions())
	require.True(t, VariantMultiChoice.HasOptions())
	require.True(t, VariantMultiSelect.HasOptions())
	require.True(t, VariantDropDown.HasOptions())
	require.True(t, VariantRanking.HasOptions())

	var unknown QuestionVariant = "ESSAY"
	require.False(t, unknown.HasOptions())
}
