package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"kiosk-data/internal/domain"
)

// DemoVisitorIDPrefix marks ids issued by the in-memory demo store.
const DemoVisitorIDPrefix = "demo-"

// MemoryVisitorsRepository demo-mode registration store used when no DB is
// configured. Writes are staged per submission and applied only when the
// whole submission succeeds, mirroring the transactional Postgres path.
type MemoryVisitorsRepository struct {
	mu sync.RWMutex

	programs ProgramsRepository // for resolving program names in details/export

	visitors map[string]*domain.Visitor
	links    map[string][]int // visitorID -> program ids, order preserved
	metadata map[string]*domain.VisitorMetadata
	order    []string // insertion order for export
}

func NewMemoryVisitorsRepository(programs ProgramsRepository) *MemoryVisitorsRepository {
	return &MemoryVisitorsRepository{
		programs: programs,
		visitors: map[string]*domain.Visitor{},
		links:    map[string][]int{},
		metadata: map[string]*domain.VisitorMetadata{},
	}
}

var _ VisitorsRepository = (*MemoryVisitorsRepository)(nil)

func (r *MemoryVisitorsRepository) RegisterVisitor(_ context.Context, fn func(w RegistrationWriter) error) error {
	staged := &memoryRegistrationWriter{}
	if err := fn(staged); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range staged.visitors {
		r.visitors[v.VisitorID] = v
		r.order = append(r.order, v.VisitorID)
	}
	for id, programIDs := range staged.links {
		r.links[id] = append(r.links[id], programIDs...)
	}
	for id, md := range staged.metadata {
		r.metadata[id] = md
	}
	return nil
}

// memoryRegistrationWriter stages one submission's writes.
type memoryRegistrationWriter struct {
	visitors []*domain.Visitor
	links    map[string][]int
	metadata map[string]*domain.VisitorMetadata
}

var _ RegistrationWriter = (*memoryRegistrationWriter)(nil)

func (w *memoryRegistrationWriter) InsertVisitor(_ context.Context, name, workPhone string) (string, error) {
	visitorID := DemoVisitorIDPrefix + uuid.NewString()
	w.visitors = append(w.visitors, &domain.Visitor{
		VisitorID: visitorID,
		Name:      name,
		WorkPhone: workPhone,
		CreatedAt: time.Now(),
	})
	return visitorID, nil
}

func (w *memoryRegistrationWriter) InsertVisitorPrograms(_ context.Context, visitorID string, programIDs []int) error {
	if w.links == nil {
		w.links = map[string][]int{}
	}
	w.links[visitorID] = append(w.links[visitorID], programIDs...)
	return nil
}

func (w *memoryRegistrationWriter) InsertVisitorMetadata(_ context.Context, visitorID string, md *domain.VisitorMetadata) error {
	if w.metadata == nil {
		w.metadata = map[string]*domain.VisitorMetadata{}
	}
	copied := *md
	w.metadata[visitorID] = &copied
	return nil
}

func (r *MemoryVisitorsRepository) GetVisitorDetails(ctx context.Context, visitorID string) (*domain.VisitorDetails, error) {
	r.mu.RLock()
	visitor, ok := r.visitors[visitorID]
	programIDs := r.links[visitorID]
	md := r.metadata[visitorID]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrVisitorNotFound
	}

	details := &domain.VisitorDetails{
		Name:        visitor.Name,
		WorkPhone:   visitor.WorkPhone,
		Programs:    r.programNames(ctx, programIDs),
		IsConverted: visitor.IsConverted,
		ConvertedAt: visitor.ConvertedAt,
	}
	if md != nil {
		copied := *md
		details.Metadata = &copied
	}
	return details, nil
}

func (r *MemoryVisitorsRepository) MarkConverted(_ context.Context, visitorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	visitor, ok := r.visitors[visitorID]
	if !ok {
		return ErrVisitorNotFound
	}
	now := time.Now()
	visitor.IsConverted = true
	visitor.ConvertedAt = &now
	return nil
}

func (r *MemoryVisitorsRepository) ListRegistrations(ctx context.Context) ([]RegistrationExportRow, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RegistrationExportRow, 0, len(r.order))
	for _, visitorID := range r.order {
		visitor := r.visitors[visitorID]
		row := RegistrationExportRow{
			VisitorID:   visitorID,
			Name:        visitor.Name,
			WorkPhone:   visitor.WorkPhone,
			Programs:    strings.Join(r.programNames(ctx, r.links[visitorID]), ", "),
			IsConverted: visitor.IsConverted,
			CreatedAt:   visitor.CreatedAt,
		}
		if md := r.metadata[visitorID]; md != nil {
			row.Country = md.Country
			row.City = md.City
			row.Browser = md.Browser
			row.Device = md.Device
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *MemoryVisitorsRepository) programNames(ctx context.Context, programIDs []int) []string {
	if len(programIDs) == 0 || r.programs == nil {
		return nil
	}
	catalog, err := r.programs.ListActivePrograms(ctx)
	if err != nil {
		return nil
	}
	byID := make(map[int]string, len(catalog))
	for _, p := range catalog {
		byID[p.ProgramID] = p.ProgramName
	}
	var names []string
	for _, id := range programIDs {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
