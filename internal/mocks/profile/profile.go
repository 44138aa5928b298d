package profile

// Package profile contains in-memory repository doubles for profile ports.

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domainprofile "github.com/collabhub/collabhub-api/internal/domain/profile"
	apperrors "github.com/collabhub/collabhub-api/internal/errors"
	"github.com/collabhub/collabhub-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.ProfileRepository    = (*MemoryProfileRepo)(nil)
	_ ports.InfluencerRepository = (*MemoryInfluencerRepo)(nil)
	_ ports.BrandRepository      = (*MemoryBrandRepo)(nil)
)

// MemoryProfileRepo is an in-memory ProfileRepository keyed by user id.
type MemoryProfileRepo struct {
	mu       sync.Mutex
	rows     map[string]domainprofile.Profile
	GetErr   error
	WriteErr error

	// GetCalls counts GetByUserID invocations, useful for retry assertions.
	GetCalls int
}

// NewMemoryProfileRepo creates a new MemoryProfileRepo.
func NewMemoryProfileRepo() *MemoryProfileRepo {
	return &MemoryProfileRepo{rows: make(map[string]domainprofile.Profile)}
}

func (m *MemoryProfileRepo) GetByUserID(_ context.Context, userID string) (*domainprofile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	row, ok := m.rows[userID]
	if !ok {
		return nil, apperrors.NotFound("profile")
	}
	return &row, nil
}

func (m *MemoryProfileRepo) Upsert(_ context.Context, p *domainprofile.Profile) (*domainprofile.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	row := *p
	if existing, ok := m.rows[p.UserID]; ok {
		row.ID = existing.ID
	} else if row.ID == "" {
		row.ID = uuid.New().String()
	}
	m.rows[p.UserID] = row
	return &row, nil
}

// Seed stores a row directly, bypassing error injection.
func (m *MemoryProfileRepo) Seed(p domainprofile.Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	m.rows[p.UserID] = p
}

// Len reports how many rows are stored.
func (m *MemoryProfileRepo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// MemoryInfluencerRepo is an in-memory InfluencerRepository keyed by user id.
type MemoryInfluencerRepo struct {
	mu       sync.Mutex
	rows     map[string]domainprofile.InfluencerProfile
	GetErr   error
	WriteErr error
}

// NewMemoryInfluencerRepo creates a new MemoryInfluencerRepo.
func NewMemoryInfluencerRepo() *MemoryInfluencerRepo {
	return &MemoryInfluencerRepo{rows: make(map[string]domainprofile.InfluencerProfile)}
}

func (m *MemoryInfluencerRepo) GetByUserID(_ context.Context, userID string) (*domainprofile.InfluencerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	row, ok := m.rows[userID]
	if !ok {
		return nil, apperrors.NotFound("influencer profile")
	}
	return &row, nil
}

func (m *MemoryInfluencerRepo) Upsert(_ context.Context, p *domainprofile.InfluencerProfile) (*domainprofile.InfluencerProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	row := *p
	if existing, ok := m.rows[p.UserID]; ok {
		row.ID = existing.ID
	} else if row.ID == "" {
		row.ID = uuid.New().String()
	}
	m.rows[p.UserID] = row
	return &row, nil
}

// Seed stores a row directly, bypassing error injection.
func (m *MemoryInfluencerRepo) Seed(p domainprofile.InfluencerProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	m.rows[p.UserID] = p
}

// Len reports how many rows are stored.
func (m *MemoryInfluencerRepo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// MemoryBrandRepo is an in-memory BrandRepository keyed by user id.
type MemoryBrandRepo struct {
	mu       sync.Mutex
	rows     map[string]domainprofile.BrandProfile
	GetErr   error
	WriteErr error
}

// NewMemoryBrandRepo creates a new MemoryBrandRepo.
func NewMemoryBrandRepo() *MemoryBrandRepo {
	return &MemoryBrandRepo{rows: make(map[string]domainprofile.BrandProfile)}
}

func (m *MemoryBrandRepo) GetByUserID(_ context.Context, userID string) (*domainprofile.BrandProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	row, ok := m.rows[userID]
	if !ok {
		return nil, apperrors.NotFound("brand profile")
	}
	return &row, nil
}

func (m *MemoryBrandRepo) Upsert(_ context.Context, p *domainprofile.BrandProfile) (*domainprofile.BrandProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return nil, m.WriteErr
	}
	row := *p
	if existing, ok := m.rows[p.UserID]; ok {
		row.ID = existing.ID
	} else if row.ID == "" {
		row.ID = uuid.New().String()
	}
	m.rows[p.UserID] = row
	return &row, nil
}

// Seed stores a row directly, bypassing error injection.
func (m *MemoryBrandRepo) Seed(p domainprofile.BrandProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	m.rows[p.UserID] = p
}

// Len reports how many rows are stored.
func (m *MemoryBrandRepo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}
