package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"kiosk-data/internal/domain"
	"kiosk-data/internal/repository"
)

// fakeVisitorsRepo records the submission's write sequence and can fail any
// step. Committed reflects whether the transactional unit was kept.
type fakeVisitorsRepo struct {
	visitorErr  error
	programsErr error
	metadataErr error

	visitorCalls  int
	programsCalls int
	metadataCalls int
	committed     bool

	gotPrograms []int
	gotMetadata *domain.VisitorMetadata
}

func (f *fakeVisitorsRepo) RegisterVisitor(_ context.Context, fn func(w repository.RegistrationWriter) error) error {
	if err := fn(f); err != nil {
		return err
	}
	f.committed = true
	return nil
}

func (f *fakeVisitorsRepo) InsertVisitor(_ context.Context, name, workPhone string) (string, error) {
	f.visitorCalls++
	if f.visitorErr != nil {
		return "", f.visitorErr
	}
	return "visitor-1", nil
}

func (f *fakeVisitorsRepo) InsertVisitorPrograms(_ context.Context, visitorID string, programIDs []int) error {
	f.programsCalls++
	f.gotPrograms = programIDs
	return f.programsErr
}

func (f *fakeVisitorsRepo) InsertVisitorMetadata(_ context.Context, visitorID string, md *domain.VisitorMetadata) error {
	f.metadataCalls++
	f.gotMetadata = md
	return f.metadataErr
}

func (f *fakeVisitorsRepo) GetVisitorDetails(context.Context, string) (*domain.VisitorDetails, error) {
	return nil, repository.ErrVisitorNotFound
}

func (f *fakeVisitorsRepo) MarkConverted(context.Context, string) error { return nil }

func (f *fakeVisitorsRepo) ListRegistrations(context.Context) ([]repository.RegistrationExportRow, error) {
	return nil, nil
}

func submitForm() domain.VisitorFormData {
	return domain.VisitorFormData{
		Name:             "Jordan Smith",
		WorkPhone:        "+1 (555) 000-0000",
		SelectedPrograms: []int{3, 1, 3}, // duplicates are kept as-is
	}
}

func TestSubmit_Success(t *testing.T) {
	repo := &fakeVisitorsRepo{}
	svc := NewRegistrationService(repo, zap.NewNop())

	md := &domain.VisitorMetadata{Browser: "Chrome", Device: "Desktop"}
	result := svc.Submit(context.Background(), submitForm(), md)

	require.True(t, result.Success)
	require.Equal(t, "visitor-1", result.VisitorID)
	require.Empty(t, result.Error)

	require.Equal(t, 1, repo.visitorCalls)
	require.Equal(t, 1, repo.programsCalls)
	require.Equal(t, 1, repo.metadataCalls)
	require.True(t, repo.committed)
	require.Equal(t, []int{3, 1, 3}, repo.gotPrograms)
	require.Equal(t, md, repo.gotMetadata)
}

func TestSubmit_VisitorInsertFails(t *testing.T) {
	repo := &fakeVisitorsRepo{visitorErr: errors.New("store rejected the write")}
	svc := NewRegistrationService(repo, zap.NewNop())

	result := svc.Submit(context.Background(), submitForm(), &domain.VisitorMetadata{})

	require.False(t, result.Success)
	require.Equal(t, "store rejected the write", result.Error)
	require.Empty(t, result.VisitorID)

	// first step failed, the remaining writes are never attempted
	require.Equal(t, 1, repo.visitorCalls)
	require.Equal(t, 0, repo.programsCalls)
	require.Equal(t, 0, repo.metadataCalls)
	require.False(t, repo.committed)
}

func TestSubmit_ProgramsInsertFails(t *testing.T) {
	repo := &fakeVisitorsRepo{programsErr: errors.New("link insert failed")}
	svc := NewRegistrationService(repo, zap.NewNop())

	result := svc.Submit(context.Background(), submitForm(), &domain.VisitorMetadata{})

	require.False(t, result.Success)
	require.Equal(t, "link insert failed", result.Error)

	// the metadata insert is never reached, and the transactional unit is
	// discarded so the visitor row does not outlive the failure
	require.Equal(t, 1, repo.visitorCalls)
	require.Equal(t, 1, repo.programsCalls)
	require.Equal(t, 0, repo.metadataCalls)
	require.False(t, repo.committed)
}

func TestSubmit_MetadataInsertFails(t *testing.T) {
	repo := &fakeVisitorsRepo{metadataErr: errors.New("metadata insert failed")}
	svc := NewRegistrationService(repo, zap.NewNop())

	result := svc.Submit(context.Background(), submitForm(), &domain.VisitorMetadata{})

	require.False(t, result.Success)
	require.Equal(t, "metadata insert failed", result.Error)
	require.Equal(t, 1, repo.metadataCalls)
	require.False(t, repo.committed)
}

func TestSubmit_DemoMode(t *testing.T) {
	programs := repository.NewMemoryProgramsRepository()
	repo := repository.NewMemoryVisitorsRepository(programs)
	svc := NewRegistrationService(repo, zap.NewNop())

	result := svc.Submit(context.Background(), submitForm(), &domain.VisitorMetadata{Browser: "Firefox"})

	require.True(t, result.Success)
	require.True(t, len(result.VisitorID) > len(repository.DemoVisitorIDPrefix))
	require.Equal(t, repository.DemoVisitorIDPrefix, result.VisitorID[:len(repository.DemoVisitorIDPrefix)])
}
