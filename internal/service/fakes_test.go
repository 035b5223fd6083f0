package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nitt-hospital/backend/internal/config"
	"github.com/nitt-hospital/backend/internal/domain"
	"github.com/nitt-hospital/backend/internal/queue/task"

	"github.com/google/uuid"
)

var testOTPConfig = config.OTPConfig{ExpiryMinutes: 5, MaxAttempts: 5}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// sequenceGenerator hands out codes in order and repeats the last one.
type sequenceGenerator struct {
	mu    sync.Mutex
	codes []string
}

func (g *sequenceGenerator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	code := g.codes[0]
	if len(g.codes) > 1 {
		g.codes = g.codes[1:]
	}
	return code, nil
}

type memoryOtps struct {
	mu      sync.Mutex
	records []*domain.Otp
	// issueErrs are returned by Issue, one per call, before it starts succeeding.
	issueErrs []error
}

func (r *memoryOtps) Issue(_ context.Context, otp *domain.Otp) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.issueErrs) > 0 {
		err := r.issueErrs[0]
		r.issueErrs = r.issueErrs[1:]
		return err
	}

	for _, rec := range r.records {
		if rec.Email == otp.Email {
			rec.Used = true
		}
	}
	cp := *otp
	r.records = append(r.records, &cp)
	return nil
}

func (r *memoryOtps) GetLatestActiveByEmail(_ context.Context, email string) (*domain.Otp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.records) - 1; i >= 0; i-- {
		rec := r.records[i]
		if rec.Email == email && !rec.Used {
			cp := *rec
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryOtps) GetAll(_ context.Context) ([]domain.Otp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Otp, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryOtps) GetOneByID(_ context.Context, id uuid.UUID) (*domain.Otp, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if rec := r.find(id); rec != nil {
		cp := *rec
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (r *memoryOtps) MarkUsed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.find(id)
	if rec == nil || rec.Used {
		return domain.ErrNoRowsAffected
	}
	rec.Used = true
	return nil
}

func (r *memoryOtps) IncrementAttempts(_ context.Context, id uuid.UUID, max int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := r.find(id)
	if rec == nil || rec.Attempts >= max {
		return domain.ErrNoRowsAffected
	}
	rec.Attempts++
	return nil
}

func (r *memoryOtps) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rec := range r.records {
		if rec.ID == id {
			r.records = append(r.records[:i], r.records[i+1:]...)
			return nil
		}
	}
	return domain.ErrNoRowsAffected
}

func (r *memoryOtps) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.records[:0]
	var removed int64
	for _, rec := range r.records {
		if rec.ExpiresAt.Before(now) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	r.records = kept
	return removed, nil
}

func (r *memoryOtps) find(id uuid.UUID) *domain.Otp {
	for _, rec := range r.records {
		if rec.ID == id {
			return rec
		}
	}
	return nil
}

func (r *memoryOtps) byEmail(email string) []domain.Otp {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Otp
	for _, rec := range r.records {
		if rec.Email == email {
			out = append(out, *rec)
		}
	}
	return out
}

type memoryPatients struct {
	mu       sync.Mutex
	patients map[uuid.UUID]*domain.Patient
}

func newMemoryPatients(patients ...*domain.Patient) *memoryPatients {
	r := &memoryPatients{patients: make(map[uuid.UUID]*domain.Patient)}
	for _, p := range patients {
		r.patients[p.ID] = p
	}
	return r
}

func (r *memoryPatients) Create(_ context.Context, patient *domain.Patient) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.patients {
		if p.Email == patient.Email || p.Identifier == patient.Identifier {
			return domain.ErrDuplicateEntry
		}
	}
	cp := *patient
	r.patients[patient.ID] = &cp
	return nil
}

func (r *memoryPatients) GetByEmail(_ context.Context, email string) (*domain.Patient, error) {
	return r.findBy(func(p *domain.Patient) bool { return p.Email == email })
}

func (r *memoryPatients) GetByIdentifier(_ context.Context, identifier string) (*domain.Patient, error) {
	return r.findBy(func(p *domain.Patient) bool { return p.Identifier == identifier })
}

func (r *memoryPatients) GetOneByID(_ context.Context, id uuid.UUID) (*domain.Patient, error) {
	return r.findBy(func(p *domain.Patient) bool { return p.ID == id })
}

func (r *memoryPatients) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.patients[id]
	if !ok {
		return domain.ErrNoRowsAffected
	}
	p.Password = passwordHash
	return nil
}

func (r *memoryPatients) findBy(match func(p *domain.Patient) bool) (*domain.Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.patients {
		if match(p) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memoryStaff struct {
	staff []*domain.Staff
}

func (r *memoryStaff) GetByEmail(_ context.Context, email string) (*domain.Staff, error) {
	for _, s := range r.staff {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryStaff) GetOneByID(_ context.Context, id uuid.UUID) (*domain.Staff, error) {
	for _, s := range r.staff {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

type recordingNotices struct {
	mu      sync.Mutex
	notices []task.SendNotice
	err     error
}

func (q *recordingNotices) EnqueueNotice(_ context.Context, notice task.SendNotice) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.notices = append(q.notices, notice)
	return q.err
}

type stubCooldown struct {
	allow    bool
	err      error
	keys     []string
	released []string
}

func (c *stubCooldown) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	c.keys = append(c.keys, key)
	return c.allow, c.err
}

func (c *stubCooldown) Release(_ context.Context, key string) error {
	c.released = append(c.released, key)
	return nil
}

// memoryCooldown holds keys until they are released. It ignores ttl.
type memoryCooldown struct {
	mu   sync.Mutex
	held map[string]bool
}

func newMemoryCooldown() *memoryCooldown {
	return &memoryCooldown{held: make(map[string]bool)}
}

func (c *memoryCooldown) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.held[key] {
		return false, nil
	}
	c.held[key] = true
	return true, nil
}

func (c *memoryCooldown) Release(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.held, key)
	return nil
}
