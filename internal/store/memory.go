package store

import (
	"context"
	"sync"
	"time"

	"github.com/datatrail-io/datatrail/internal/models"
)

// MemoryStore keeps all records in per-entity maps keyed by a monotonic
// counter. Every mutation on a container happens under that container's
// mutex, including counter assignment, so ids are unique and never reused.
type MemoryStore struct {
	datasets      *memoryDatasets
	models        *memoryModels
	relationships *memoryRelationships
	users         *memoryUsers
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		datasets:      &memoryDatasets{items: make(map[uint64]models.Dataset)},
		models:        &memoryModels{items: make(map[uint64]models.Model)},
		relationships: &memoryRelationships{items: make(map[uint64]models.Relationship)},
		users:         &memoryUsers{items: make(map[uint64]models.User)},
	}
}

func (s *MemoryStore) Datasets() DatasetStore           { return s.datasets }
func (s *MemoryStore) Models() ModelStore               { return s.models }
func (s *MemoryStore) Relationships() RelationshipStore { return s.relationships }
func (s *MemoryStore) Users() UserStore                 { return s.users }

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }
func (s *MemoryStore) Close() error                   { return nil }

type memoryDatasets struct {
	mu    sync.Mutex
	seq   uint64
	items map[uint64]models.Dataset
}

func (m *memoryDatasets) List(ctx context.Context) ([]models.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Ids are assigned monotonically and never reused, so walking 1..seq
	// yields insertion order.
	out := make([]models.Dataset, 0, len(m.items))
	for id := uint64(1); id <= m.seq; id++ {
		if d, ok := m.items[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memoryDatasets) GetByID(ctx context.Context, id uint64) (*models.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (m *memoryDatasets) Create(ctx context.Context, d *models.Dataset) (*models.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	rec := *d
	rec.ID = m.seq
	rec.UploadedAt = time.Now().UTC()
	if rec.Status == "" {
		rec.Status = models.StatusPending
	}
	m.items[rec.ID] = rec
	return &rec, nil
}

func (m *memoryDatasets) UpdateStatus(ctx context.Context, id uint64, status string) (*models.Dataset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	d.Status = status
	m.items[id] = d
	return &d, nil
}

type memoryModels struct {
	mu    sync.Mutex
	seq   uint64
	items map[uint64]models.Model
}

func (m *memoryModels) List(ctx context.Context) ([]models.Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Model, 0, len(m.items))
	for id := uint64(1); id <= m.seq; id++ {
		if rec, ok := m.items[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memoryModels) GetByID(ctx context.Context, id uint64) (*models.Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (m *memoryModels) Create(ctx context.Context, mdl *models.Model) (*models.Model, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	rec := *mdl
	rec.ID = m.seq
	rec.CreatedAt = time.Now().UTC()
	m.items[rec.ID] = rec
	return &rec, nil
}

type memoryRelationships struct {
	mu    sync.Mutex
	seq   uint64
	items map[uint64]models.Relationship
}

func (m *memoryRelationships) List(ctx context.Context) ([]models.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Relationship, 0, len(m.items))
	for id := uint64(1); id <= m.seq; id++ {
		if rec, ok := m.items[id]; ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memoryRelationships) ListByDataset(ctx context.Context, datasetID uint64) ([]models.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Relationship
	for id := uint64(1); id <= m.seq; id++ {
		if rec, ok := m.items[id]; ok && rec.DatasetID == datasetID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memoryRelationships) ListByModel(ctx context.Context, modelID uint64) ([]models.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Relationship
	for id := uint64(1); id <= m.seq; id++ {
		if rec, ok := m.items[id]; ok && rec.ModelID == modelID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *memoryRelationships) GetByID(ctx context.Context, id uint64) (*models.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (m *memoryRelationships) Create(ctx context.Context, r *models.Relationship) (*models.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	rec := *r
	rec.ID = m.seq
	rec.UsageDate = time.Now().UTC()
	if rec.Status == "" {
		rec.Status = models.StatusPending
	}
	m.items[rec.ID] = rec
	return &rec, nil
}

func (m *memoryRelationships) UpdateStatus(ctx context.Context, id uint64, status string) (*models.Relationship, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	rec.Status = status
	m.items[id] = rec
	return &rec, nil
}

type memoryUsers struct {
	mu    sync.Mutex
	seq   uint64
	items map[uint64]models.User
}

func (m *memoryUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.items {
		if existing.Username == u.Username {
			return nil, ErrDuplicateUsername
		}
	}

	m.seq++
	rec := *u
	rec.ID = m.seq
	rec.CreatedAt = time.Now().UTC()
	m.items[rec.ID] = rec
	return &rec, nil
}

func (m *memoryUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id := uint64(1); id <= m.seq; id++ {
		if rec, ok := m.items[id]; ok && rec.Username == username {
			return &rec, nil
		}
	}
	return nil, ErrNotFound
}
