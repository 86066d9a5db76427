package recommendation

import (
	"context"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/habitta/internal/domain/recommendation"
	"github.com/BruksfildServices01/habitta/internal/models"
)

type link struct{ rec, est uint }

// memRepo imita as restrições do banco: vínculo único por par e no
// máximo uma recomendação "selecionar" por cliente.
type memRepo struct {
	mu      sync.Mutex
	nextID  uint
	clients map[uint]models.Client
	ests    map[uint]models.Establishment
	recs    map[uint]*models.Recommendation
	links   map[link]struct{}
	clock   time.Time
}

var _ domain.Repository = (*memRepo)(nil)

func newMemRepo() *memRepo {
	return &memRepo{
		nextID:  100,
		clients: map[uint]models.Client{},
		ests:    map[uint]models.Establishment{},
		recs:    map[uint]*models.Recommendation{},
		links:   map[link]struct{}{},
		clock:   time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (m *memRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *memRepo) GetClient(_ context.Context, id uint) (*models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (m *memRepo) GetEstablishment(_ context.Context, id uint) (*models.Establishment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.ests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (m *memRepo) sortedEsts(keep func(models.Establishment) bool) []models.Establishment {
	var out []models.Establishment
	for _, e := range m.ests {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *memRepo) ListEstablishments(context.Context) ([]models.Establishment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedEsts(func(models.Establishment) bool { return true }), nil
}

func (m *memRepo) ListMatchingEstablishments(_ context.Context, c *models.Client) ([]models.Establishment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedEsts(func(e models.Establishment) bool { return domain.Matches(c, &e) }), nil
}

func (m *memRepo) ListForClient(_ context.Context, clientID uint) ([]models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Recommendation
	for _, r := range m.recs {
		if r.ClientID == clientID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) GetForClient(_ context.Context, id, clientID uint) (*models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[id]
	if !ok || r.ClientID != clientID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) GetByID(_ context.Context, id uint) (*models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) insert(rec *models.Recommendation) {
	m.nextID++
	rec.ID = m.nextID
	rec.CreatedAt = m.tick()
	rec.UpdatedAt = rec.CreatedAt
	cp := *rec
	m.recs[rec.ID] = &cp
}

func (m *memRepo) Create(_ context.Context, rec *models.Recommendation, ids []uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.insert(rec)
	for _, id := range ids {
		m.links[link{rec.ID, id}] = struct{}{}
	}
	return nil
}

func (m *memRepo) findSelecting(clientID uint) *models.Recommendation {
	for _, r := range m.recs {
		if r.ClientID == clientID && r.Status == string(domain.StatusSelecting) {
			cp := *r
			return &cp
		}
	}
	return nil
}

func (m *memRepo) GetOrCreateSelecting(_ context.Context, clientID uint) (*models.Recommendation, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r := m.findSelecting(clientID); r != nil {
		return r, false, nil
	}
	rec := &models.Recommendation{ClientID: clientID, Status: string(domain.StatusSelecting)}
	m.insert(rec)
	return rec, true, nil
}

func (m *memRepo) FindSelecting(_ context.Context, clientID uint) (*models.Recommendation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r := m.findSelecting(clientID); r != nil {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memRepo) UpdateNotes(_ context.Context, rec *models.Recommendation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.recs[rec.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Notes, r.Message = rec.Notes, rec.Message
	return nil
}

func (m *memRepo) FinalizeSelecting(_ context.Context, clientID uint, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, r := range m.recs {
		if r.ClientID == clientID && r.Status == string(domain.StatusSelecting) {
			if err := domain.Finalize(r, now); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

func (m *memRepo) Delete(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.recs[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for l := range m.links {
		if l.rec == id {
			delete(m.links, l)
		}
	}
	delete(m.recs, id)
	return nil
}

func (m *memRepo) Attach(_ context.Context, recID, estID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.links[link{recID, estID}] = struct{}{}
	return nil
}

func (m *memRepo) Detach(_ context.Context, recID, estID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := link{recID, estID}
	_, ok := m.links[l]
	delete(m.links, l)
	return ok, nil
}

func (m *memRepo) ListAttachedIDs(_ context.Context, recID uint) ([]uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []uint
	for l := range m.links {
		if l.rec == recID {
			ids = append(ids, l.est)
		}
	}
	return ids, nil
}

func (m *memRepo) ListAttached(_ context.Context, recID uint) ([]models.Establishment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sortedEsts(func(e models.Establishment) bool {
		_, ok := m.links[link{recID, e.ID}]
		return ok
	}), nil
}

func (m *memRepo) linksFor(recID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for l := range m.links {
		if l.rec == recID {
			n++
		}
	}
	return n
}
