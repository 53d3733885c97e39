package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"food-delivery/internal/data/entity"
	"food-delivery/internal/data/repository"
	"food-delivery/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memoryCustomerRepo is an in-memory CustomerRepository. Records are copied
// on the way in and out so services cannot mutate stored state without
// calling Update.
type memoryCustomerRepo struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*entity.Customer
	failWith  error
}

func newMemoryCustomerRepo() *memoryCustomerRepo {
	return &memoryCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func cloneCustomer(c *entity.Customer) *entity.Customer {
	cp := *c
	cp.Addresses = append([]entity.Address(nil), c.Addresses...)
	if cp.Addresses == nil {
		cp.Addresses = []entity.Address{}
	}
	return &cp
}

func (r *memoryCustomerRepo) conflict(c *entity.Customer) error {
	for _, other := range r.customers {
		if other.ID == c.ID {
			continue
		}
		if other.Email == c.Email {
			return &repository.DuplicateIdentityError{Field: "email"}
		}
		if other.Phone == c.Phone {
			return &repository.DuplicateIdentityError{Field: "phone"}
		}
	}
	return nil
}

func (r *memoryCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if err := r.conflict(c); err != nil {
		return err
	}
	r.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *memoryCustomerRepo) find(match func(*entity.Customer) bool) (*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, c := range r.customers {
		if match(c) {
			return cloneCustomer(c), nil
		}
	}
	return nil, nil
}

func (r *memoryCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.find(func(c *entity.Customer) bool { return c.ID == id })
}

func (r *memoryCustomerRepo) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	return r.find(func(c *entity.Customer) bool { return c.Email == email })
}

func matchesIdentity(c *entity.Customer, email, phone string) bool {
	return (email != "" && c.Email == email) || (phone != "" && c.Phone == phone)
}

func (r *memoryCustomerRepo) FindByIdentity(ctx context.Context, email, phone string) (*entity.Customer, error) {
	if email != "" {
		c, err := r.FindByEmail(ctx, email)
		if c != nil || err != nil {
			return c, err
		}
	}
	return r.find(func(c *entity.Customer) bool { return matchesIdentity(c, "", phone) })
}

func (r *memoryCustomerRepo) FindByEmailVerificationToken(_ context.Context, token string, now time.Time) (*entity.Customer, error) {
	return r.find(func(c *entity.Customer) bool {
		return c.EmailVerificationToken != nil && *c.EmailVerificationToken == token &&
			c.EmailVerificationExpires != nil && c.EmailVerificationExpires.After(now)
	})
}

func (r *memoryCustomerRepo) FindByValidOTP(_ context.Context, email, phone, code string, now time.Time) (*entity.Customer, error) {
	return r.find(func(c *entity.Customer) bool {
		return matchesIdentity(c, email, phone) &&
			c.OTPCode != nil && *c.OTPCode == code &&
			c.OTPExpires != nil && c.OTPExpires.After(now)
	})
}

func (r *memoryCustomerRepo) FindByResetToken(_ context.Context, tokenHash string, now time.Time) (*entity.Customer, error) {
	return r.find(func(c *entity.Customer) bool {
		return c.ResetPasswordToken != nil && *c.ResetPasswordToken == tokenHash &&
			c.ResetPasswordExpires != nil && c.ResetPasswordExpires.After(now)
	})
}

func (r *memoryCustomerRepo) ExistsByIdentity(_ context.Context, email, phone string) (bool, error) {
	c, err := r.find(func(c *entity.Customer) bool { return matchesIdentity(c, email, phone) })
	return c != nil, err
}

func (r *memoryCustomerRepo) filtered(filter repository.CustomerFilter) []*entity.Customer {
	var out []*entity.Customer
	for _, c := range r.customers {
		if filter.IsVerified != nil && c.IsVerified != *filter.IsVerified {
			continue
		}
		if filter.IsActive != nil && c.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, cloneCustomer(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memoryCustomerRepo) FindAll(_ context.Context, filter repository.CustomerFilter, limit, offset int) ([]*entity.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.filtered(filter)
	if offset >= len(all) {
		return []*entity.Customer{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memoryCustomerRepo) Count(_ context.Context, filter repository.CustomerFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

func (r *memoryCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	current, ok := r.customers[c.ID]
	if !ok {
		return repository.ErrCustomerNotFound
	}
	if current.Version != c.Version {
		return repository.ErrStaleCustomer
	}
	if err := r.conflict(c); err != nil {
		return err
	}
	c.Version++
	r.customers[c.ID] = cloneCustomer(c)
	return nil
}

func (r *memoryCustomerRepo) RecordLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	current, ok := r.customers[id]
	if !ok {
		return repository.ErrCustomerNotFound
	}
	current.LastLogin = &at
	return nil
}

func (r *memoryCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.customers[id]; !ok {
		return repository.ErrCustomerNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *memoryCustomerRepo) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.customers)
}

// stored returns the persisted record, bypassing the services.
func (r *memoryCustomerRepo) stored(email string) *entity.Customer {
	c, _ := r.FindByEmail(context.Background(), email)
	return c
}

type sentMail struct {
	kind  string
	to    string
	value string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *recordingNotifier) record(kind, to, value string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{kind: kind, to: to, value: value})
	return n.err
}

func (n *recordingNotifier) SendVerificationEmail(_ context.Context, to, _, token string) error {
	return n.record("verification", to, token)
}

func (n *recordingNotifier) SendOTPEmail(_ context.Context, to, _, code string) error {
	return n.record("otp", to, code)
}

func (n *recordingNotifier) SendPasswordChangedEmail(_ context.Context, to, _ string) error {
	return n.record("password_changed", to, "")
}

func (n *recordingNotifier) count(kind string) int {
	n.mu.Lock()
	defer n.mu.Unlock()
	total := 0
	for _, m := range n.sent {
		if m.kind == kind {
			total++
		}
	}
	return total
}

type recordingImages struct {
	mu      sync.Mutex
	removed []string
}

func (i *recordingImages) Remove(ref string) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.removed = append(i.removed, ref)
	return nil
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			AccessSecret:  "access-secret-for-tests",
			RefreshSecret: "refresh-secret-for-tests",
			AccessExpiry:  7 * 24 * time.Hour,
			RefreshExpiry: 30 * 24 * time.Hour,
		},
		OTP: utils.OTPConfig{
			Expiry:             10 * time.Minute,
			ResetTokenExpiry:   15 * time.Minute,
			VerificationExpiry: 24 * time.Hour,
		},
	}
}

type fixture struct {
	repo     *memoryCustomerRepo
	notifier *recordingNotifier
	images   *recordingImages
	clock    *fakeClock
	svc      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:     newMemoryCustomerRepo(),
		notifier: &recordingNotifier{},
		images:   &recordingImages{},
		clock:    newFakeClock(),
	}
	repo := &repository.Repository{Customer: f.repo}
	f.svc = newService(repo, testConfig(), f.notifier, f.images, zap.NewNop(), f.clock.Now)
	return f
}
