package impl

import (
	"context"
	"testing"
	"time"

	"academy/internal/domain/entity"
	domainerrors "academy/internal/domain/errors"
	"academy/internal/errors"
	"academy/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityService_AddAndList(t *testing.T) {
	env := newTestEnv(t)
	teacher := registerTeacher(t, env.accountService(), "olena@example.com").Teacher.Identity()
	srv := env.activityService()
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, activity := range []string{"first", "second", "third"} {
		srv.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		_, err := srv.AddActivity(ctx, teacher, &usecase.AddActivityInput{Activity: activity, Details: "d"})
		require.NoError(t, err)
	}

	entries, err := srv.ListActivity(ctx, teacher)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Activity)
	assert.Equal(t, "first", entries[2].Activity)
}

func TestActivityService_StripsMarkup(t *testing.T) {
	env := newTestEnv(t)
	teacher := registerTeacher(t, env.accountService(), "olena@example.com").Teacher.Identity()

	entry, err := env.activityService().AddActivity(context.Background(), teacher, &usecase.AddActivityInput{
		Activity: "<i>call</i>",
		Details:  "intro <script>x()</script>session",
	})
	require.NoError(t, err)

	assert.Equal(t, "call", entry.Activity)
	assert.Equal(t, "intro session", entry.Details)
	assert.Equal(t, teacher.AccountID, entry.TeacherID)
	assert.NotEmpty(t, entry.ID)
}

func TestActivityService_BlankDetailsPersistNothing(t *testing.T) {
	env := newTestEnv(t)
	teacher := registerTeacher(t, env.accountService(), "olena@example.com").Teacher.Identity()
	srv := env.activityService()
	ctx := context.Background()

	_, err := srv.AddActivity(ctx, teacher, &usecase.AddActivityInput{Activity: "call", Details: "  <b></b> "})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = srv.AddActivity(ctx, teacher, &usecase.AddActivityInput{Activity: "", Details: "intro"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	assert.Empty(t, env.store.Activities())
	entries, err := srv.ListActivity(ctx, teacher)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestActivityService_StudentForbidden(t *testing.T) {
	srv := newTestEnv(t).activityService()
	student := entity.Identity{AccountID: "s-1", Kind: entity.AccountKindStudent}

	_, err := srv.ListActivity(context.Background(), student)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	_, err = srv.AddActivity(context.Background(), student, &usecase.AddActivityInput{Activity: "a", Details: "b"})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestActivityService_UnknownTeacher(t *testing.T) {
	env := newTestEnv(t)
	ghost := entity.Identity{AccountID: "gone", Kind: entity.AccountKindTeacher}

	_, err := env.activityService().AddActivity(context.Background(), ghost, &usecase.AddActivityInput{Activity: "a", Details: "b"})

	assert.True(t, errors.Is(err, domainerrors.ErrTeacherNotFound))
	assert.Empty(t, env.store.Activities())
}
