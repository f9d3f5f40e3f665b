package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"kiosk-data/internal/domain"
)

func registerDemoVisitor(t *testing.T, repo *MemoryVisitorsRepository) string {
	t.Helper()
	ctx := context.Background()

	var visitorID string
	err := repo.RegisterVisitor(ctx, func(w RegistrationWriter) error {
		id, err := w.InsertVisitor(ctx, "Jordan Smith", "+1 555 000 0000")
		if err != nil {
			return err
		}
		visitorID = id
		if err := w.InsertVisitorPrograms(ctx, id, []int{1, 4, 1}); err != nil {
			return err
		}
		return w.InsertVisitorMetadata(ctx, id, &domain.VisitorMetadata{
			Browser: "Chrome",
			Device:  "Desktop",
			Country: "Germany",
		})
	})
	require.NoError(t, err)
	return visitorID
}

func TestMemoryVisitors_Register(t *testing.T) {
	repo := NewMemoryVisitorsRepository(NewMemoryProgramsRepository())
	visitorID := registerDemoVisitor(t, repo)

	require.True(t, strings.HasPrefix(visitorID, DemoVisitorIDPrefix))

	details, err := repo.GetVisitorDetails(context.Background(), visitorID)
	require.NoError(t, err)
	require.Equal(t, "Jordan Smith", details.Name)
	require.Equal(t, "+1 555 000 0000", details.WorkPhone)
	// program 1 selected twice stays duplicated
	require.Equal(t, []string{"Computer Science", "Data Science", "Computer Science"}, details.Programs)
	require.NotNil(t, details.Metadata)
	require.Equal(t, "Chrome", details.Metadata.Browser)
	require.False(t, details.IsConverted)
	require.Nil(t, details.ConvertedAt)
}

func TestMemoryVisitors_FailedSubmissionLeavesNothing(t *testing.T) {
	repo := NewMemoryVisitorsRepository(NewMemoryProgramsRepository())
	ctx := context.Background()

	var visitorID string
	err := repo.RegisterVisitor(ctx, func(w RegistrationWriter) error {
		id, err := w.InsertVisitor(ctx, "Jordan Smith", "+1 555 000 0000")
		if err != nil {
			return err
		}
		visitorID = id
		return errors.New("second step failed")
	})
	require.Error(t, err)

	_, err = repo.GetVisitorDetails(ctx, visitorID)
	require.ErrorIs(t, err, ErrVisitorNotFound)

	rows, err := repo.ListRegistrations(ctx)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestMemoryVisitors_MarkConverted(t *testing.T) {
	repo := NewMemoryVisitorsRepository(NewMemoryProgramsRepository())
	visitorID := registerDemoVisitor(t, repo)

	require.NoError(t, repo.MarkConverted(context.Background(), visitorID))

	details, err := repo.GetVisitorDetails(context.Background(), visitorID)
	require.NoError(t, err)
	require.True(t, details.IsConverted)
	require.NotNil(t, details.ConvertedAt)

	require.ErrorIs(t, repo.MarkConverted(context.Background(), "missing"), ErrVisitorNotFound)
}

func TestMemoryVisitors_ListRegistrations(t *testing.T) {
	repo := NewMemoryVisitorsRepository(NewMemoryProgramsRepository())
	first := registerDemoVisitor(t, repo)
	second := registerDemoVisitor(t, repo)

	rows, err := repo.ListRegistrations(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// insertion order preserved
	require.Equal(t, first, rows[0].VisitorID)
	require.Equal(t, second, rows[1].VisitorID)
	require.Equal(t, "Germany", rows[0].Country)
	require.Contains(t, rows[0].Programs, "Computer Science")
}
