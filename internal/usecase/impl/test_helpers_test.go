package impl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"bistro/internal/domain/entity"
	"bistro/internal/domain/repository"
	"bistro/internal/domain/service"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeTxManager funnels every Execute through one in-memory store. Commit
// and rollback are not simulated; the services under test are exercised for
// their decisions, not for transactional atomicity.
type fakeTxManager struct {
	store *memStore
}

func newFakeTxManager() *fakeTxManager {
	return &fakeTxManager{store: newMemStore()}
}

func (m *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.store)
}

// memStore is an in-memory RepositoryFactory. Slices keep insertion order;
// listings return newest first the way the SQL repositories do.
type memStore struct {
	mu sync.Mutex

	// orderUpdateErr, when set, is returned by every order update. It lets
	// tests simulate a lost optimistic-locking race.
	orderUpdateErr error

	users         []*entity.User
	orders        []*entity.Order
	reservations  []*entity.Reservation
	menuItems     []*entity.MenuItem
	promos        []*entity.Promo
	reviews       []*entity.SiteReview
	verifications []*entity.EmailVerification
}

func newMemStore() *memStore {
	return &memStore{}
}

func (s *memStore) UserRepo() repository.UserRepository                 { return &memUserRepo{s} }
func (s *memStore) OrderRepo() repository.OrderRepository               { return &memOrderRepo{s} }
func (s *memStore) ReservationRepo() repository.ReservationRepository   { return &memReservationRepo{s} }
func (s *memStore) MenuItemRepo() repository.MenuItemRepository         { return &memMenuItemRepo{s} }
func (s *memStore) PromoRepo() repository.PromoRepository               { return &memPromoRepo{s} }
func (s *memStore) ReviewRepo() repository.ReviewRepository             { return &memReviewRepo{s} }
func (s *memStore) VerificationRepo() repository.VerificationRepository { return &memVerificationRepo{s} }

func (s *memStore) addUser(u *entity.User) *entity.User {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	s.users = append(s.users, u)

	return u
}

func (s *memStore) addSeller() *entity.User {
	return s.addUser(&entity.User{
		Email:    fmt.Sprintf("seller-%s@example.com", uuid.NewString()[:8]),
		Role:     entity.RoleSeller,
		Verified: true,
		SellerProfile: &entity.SellerProfile{
			Cuisine: "italian",
		},
	})
}

func (s *memStore) addClient() *entity.User {
	return s.addUser(&entity.User{
		Email:    fmt.Sprintf("client-%s@example.com", uuid.NewString()[:8]),
		Role:     entity.RoleClient,
		Verified: true,
	})
}

func (s *memStore) addMenuItem(item *entity.MenuItem) *entity.MenuItem {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	s.menuItems = append(s.menuItems, item)

	return item
}

func (s *memStore) addOrder(o *entity.Order) *entity.Order {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	s.orders = append(s.orders, o)

	return o
}

func (s *memStore) addReservation(r *entity.Reservation) *entity.Reservation {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	s.reservations = append(s.reservations, r)

	return r
}

func (s *memStore) addPromo(p *entity.Promo) *entity.Promo {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.promos = append(s.promos, p)

	return p
}

func identityFor(u *entity.User) *entity.Identity {
	return &entity.Identity{UserID: u.ID, Role: u.Role}
}

func pageOf[T any](items []T, page repository.Page) *repository.PageResult[T] {
	total := int64(len(items))

	// Newest first.
	reversed := make([]T, len(items))
	for i, item := range items {
		reversed[len(items)-1-i] = item
	}

	start := page.Offset()
	if start > len(reversed) {
		start = len(reversed)
	}
	end := start + page.Size
	if end > len(reversed) {
		end = len(reversed)
	}

	return &repository.PageResult[T]{
		Items:      reversed[start:end],
		TotalCount: total,
		Page:       page.Number,
		Size:       page.Size,
	}
}

type memUserRepo struct{ s *memStore }

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			return u, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *memUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now()
	r.s.users = append(r.s.users, user)

	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, u := range r.s.users {
		if u.ID == user.ID {
			r.s.users[i] = user

			return nil
		}
	}

	return repository.ErrUserNotFound
}

func (r *memUserRepo) ListSellers(_ context.Context, filter repository.SellerFilter, page repository.Page) (*repository.PageResult[*entity.User], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sellers []*entity.User
	for _, u := range r.s.users {
		if u.Role != entity.RoleSeller {
			continue
		}
		if filter.Cuisine != "" && (u.SellerProfile == nil || u.SellerProfile.Cuisine != filter.Cuisine) {
			continue
		}
		sellers = append(sellers, u)
	}

	return pageOf(sellers, page), nil
}

func (r *memUserRepo) CountByRole(_ context.Context, role entity.Role) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, u := range r.s.users {
		if u.Role == role {
			n++
		}
	}

	return n, nil
}

func (r *memUserRepo) CountByRoleCreatedBetween(_ context.Context, role entity.Role, from, to time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, u := range r.s.users {
		if u.Role == role && !u.CreatedAt.Before(from) && u.CreatedAt.Before(to) {
			n++
		}
	}

	return n, nil
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	r.s.orders = append(r.s.orders, order)

	return nil
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		if o.ID == id {
			clone := *o

			return &clone, nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

func (r *memOrderRepo) Update(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.orderUpdateErr != nil {
		return r.s.orderUpdateErr
	}
	for i, o := range r.s.orders {
		if o.ID != order.ID {
			continue
		}
		if o.Version != order.Version {
			return repository.ErrStaleVersion
		}
		order.Version++
		clone := *order
		r.s.orders[i] = &clone

		return nil
	}

	return repository.ErrOrderNotFound
}

func (r *memOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, o := range r.s.orders {
		if o.ID == id {
			r.s.orders = append(r.s.orders[:i], r.s.orders[i+1:]...)

			return nil
		}
	}

	return repository.ErrOrderNotFound
}

func (r *memOrderRepo) ListBySeller(_ context.Context, sellerID uuid.UUID, page repository.Page) (*repository.PageResult[*entity.Order], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var orders []*entity.Order
	for _, o := range r.s.orders {
		if o.SellerID == sellerID {
			orders = append(orders, o)
		}
	}

	return pageOf(orders, page), nil
}

func (r *memOrderRepo) ListByClient(_ context.Context, clientID uuid.UUID, page repository.Page) (*repository.PageResult[*entity.Order], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var orders []*entity.Order
	for _, o := range r.s.orders {
		if o.ClientID == clientID {
			orders = append(orders, o)
		}
	}

	return pageOf(orders, page), nil
}

func (r *memOrderRepo) StatsBetween(_ context.Context, sellerID *uuid.UUID, from, to time.Time) (repository.OrderStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var stats repository.OrderStats
	for _, o := range r.s.orders {
		if o.Status == entity.OrderCancelled {
			continue
		}
		if sellerID != nil && o.SellerID != *sellerID {
			continue
		}
		if o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
			continue
		}
		stats.Count++
		stats.Revenue += o.TotalAmount
	}

	return stats, nil
}

type memReservationRepo struct{ s *memStore }

func (r *memReservationRepo) Create(_ context.Context, reservation *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if reservation.ID == uuid.Nil {
		reservation.ID = uuid.New()
	}
	reservation.CreatedAt = time.Now()
	r.s.reservations = append(r.s.reservations, reservation)

	return nil
}

func (r *memReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, res := range r.s.reservations {
		if res.ID == id {
			clone := *res

			return &clone, nil
		}
	}

	return nil, repository.ErrReservationNotFound
}

func (r *memReservationRepo) Update(_ context.Context, reservation *entity.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, res := range r.s.reservations {
		if res.ID != reservation.ID {
			continue
		}
		if res.Version != reservation.Version {
			return repository.ErrStaleVersion
		}
		reservation.Version++
		clone := *reservation
		r.s.reservations[i] = &clone

		return nil
	}

	return repository.ErrReservationNotFound
}

func (r *memReservationRepo) ListBySeller(_ context.Context, sellerID uuid.UUID, page repository.Page) (*repository.PageResult[*entity.Reservation], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Reservation
	for _, res := range r.s.reservations {
		if res.SellerID == sellerID {
			out = append(out, res)
		}
	}

	return pageOf(out, page), nil
}

func (r *memReservationRepo) ListByClient(_ context.Context, clientID uuid.UUID, page repository.Page) (*repository.PageResult[*entity.Reservation], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Reservation
	for _, res := range r.s.reservations {
		if res.ClientID == clientID {
			out = append(out, res)
		}
	}

	return pageOf(out, page), nil
}

func (r *memReservationRepo) ListAll(_ context.Context, page repository.Page) (*repository.PageResult[*entity.Reservation], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return pageOf(r.s.reservations, page), nil
}

type memMenuItemRepo struct{ s *memStore }

func (r *memMenuItemRepo) Create(_ context.Context, item *entity.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.s.menuItems = append(r.s.menuItems, item)

	return nil
}

func (r *memMenuItemRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.menuItems {
		if m.ID == id {
			return m, nil
		}
	}

	return nil, repository.ErrMenuItemNotFound
}

func (r *memMenuItemRepo) Update(_ context.Context, item *entity.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, m := range r.s.menuItems {
		if m.ID == item.ID {
			r.s.menuItems[i] = item

			return nil
		}
	}

	return repository.ErrMenuItemNotFound
}

func (r *memMenuItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, m := range r.s.menuItems {
		if m.ID == id {
			r.s.menuItems = append(r.s.menuItems[:i], r.s.menuItems[i+1:]...)

			return nil
		}
	}

	return repository.ErrMenuItemNotFound
}

func (r *memMenuItemRepo) List(_ context.Context, filter repository.MenuItemFilter, page repository.Page) (*repository.PageResult[*entity.MenuItem], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.MenuItem
	for _, m := range r.s.menuItems {
		if filter.SellerID != nil && m.SellerID != *filter.SellerID {
			continue
		}
		if filter.Category != "" && m.Category != filter.Category {
			continue
		}
		if filter.AvailableOnly && !m.Available {
			continue
		}
		out = append(out, m)
	}

	return pageOf(out, page), nil
}

func (r *memMenuItemRepo) Categories(_ context.Context) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[string]bool)
	var out []string
	for _, m := range r.s.menuItems {
		if !seen[m.Category] {
			seen[m.Category] = true
			out = append(out, m.Category)
		}
	}

	return out, nil
}

type memPromoRepo struct{ s *memStore }

func (r *memPromoRepo) Create(_ context.Context, promo *entity.Promo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if promo.ID == uuid.Nil {
		promo.ID = uuid.New()
	}
	r.s.promos = append(r.s.promos, promo)

	return nil
}

func (r *memPromoRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Promo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.promos {
		if p.ID == id {
			return p, nil
		}
	}

	return nil, repository.ErrPromoNotFound
}

func (r *memPromoRepo) FindByCode(_ context.Context, code string) (*entity.Promo, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.promos {
		if p.Code == code {
			return p, nil
		}
	}

	return nil, repository.ErrPromoNotFound
}

func (r *memPromoRepo) Update(_ context.Context, promo *entity.Promo) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.promos {
		if p.ID == promo.ID {
			r.s.promos[i] = promo

			return nil
		}
	}

	return repository.ErrPromoNotFound
}

func (r *memPromoRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.promos {
		if p.ID == id {
			r.s.promos = append(r.s.promos[:i], r.s.promos[i+1:]...)

			return nil
		}
	}

	return repository.ErrPromoNotFound
}

func (r *memPromoRepo) List(_ context.Context, page repository.Page) (*repository.PageResult[*entity.Promo], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return pageOf(r.s.promos, page), nil
}

type memReviewRepo struct{ s *memStore }

func (r *memReviewRepo) Create(_ context.Context, review *entity.SiteReview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if review.ID == uuid.Nil {
		review.ID = uuid.New()
	}
	r.s.reviews = append(r.s.reviews, review)

	return nil
}

func (r *memReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.SiteReview, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rv := range r.s.reviews {
		if rv.ID == id {
			return rv, nil
		}
	}

	return nil, repository.ErrReviewNotFound
}

func (r *memReviewRepo) Update(_ context.Context, review *entity.SiteReview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, rv := range r.s.reviews {
		if rv.ID == review.ID {
			r.s.reviews[i] = review

			return nil
		}
	}

	return repository.ErrReviewNotFound
}

func (r *memReviewRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, rv := range r.s.reviews {
		if rv.ID == id {
			r.s.reviews = append(r.s.reviews[:i], r.s.reviews[i+1:]...)

			return nil
		}
	}

	return repository.ErrReviewNotFound
}

func (r *memReviewRepo) List(_ context.Context, page repository.Page) (*repository.PageResult[*entity.SiteReview], error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return pageOf(r.s.reviews, page), nil
}

type memVerificationRepo struct{ s *memStore }

func (r *memVerificationRepo) Create(_ context.Context, verification *entity.EmailVerification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if verification.ID == uuid.Nil {
		verification.ID = uuid.New()
	}
	r.s.verifications = append(r.s.verifications, verification)

	return nil
}

func (r *memVerificationRepo) FindByToken(_ context.Context, token string) (*entity.EmailVerification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, v := range r.s.verifications {
		if v.Token == token {
			return v, nil
		}
	}

	return nil, repository.ErrVerificationNotFound
}

func (r *memVerificationRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, v := range r.s.verifications {
		if v.ID == id {
			r.s.verifications = append(r.s.verifications[:i], r.s.verifications[i+1:]...)

			return nil
		}
	}

	return repository.ErrVerificationNotFound
}

// fakeHasher reverses nothing; it marks hashes so Check only passes for the
// password it hashed.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Check(password, hash string) bool { return hash == "hashed:"+password }

// fakeTokenService mints predictable tokens keyed by user id.
type fakeTokenService struct {
	verifyErr error
}

func (f *fakeTokenService) GenerateTokens(userID uuid.UUID, _ entity.Role) (string, string, error) {
	return "access-" + userID.String(), "refresh-" + userID.String(), nil
}

func (f *fakeTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	id, err := uuid.Parse(strings.TrimPrefix(tokenString, "access-"))
	if err != nil {
		return nil, fmt.Errorf("malformed token")
	}

	return &service.Claims{UserID: id, Type: "access"}, nil
}

func (f *fakeTokenService) GenerateVerificationToken(userID uuid.UUID) (string, time.Time, error) {
	return "verify-" + userID.String(), time.Now().Add(time.Hour), nil
}

func (f *fakeTokenService) ValidateVerificationToken(tokenString string) (uuid.UUID, error) {
	if f.verifyErr != nil {
		return uuid.Nil, f.verifyErr
	}
	id, err := uuid.Parse(strings.TrimPrefix(tokenString, "verify-"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("malformed token")
	}

	return id, nil
}

func (f *fakeTokenService) RefreshTokenDuration() time.Duration { return 24 * time.Hour }

// fakeQRService returns a fixed payload instead of rendering a PNG.
type fakeQRService struct{}

func (fakeQRService) GenerateReservationQR(reservationID uuid.UUID) ([]byte, error) {
	return []byte("qr:" + reservationID.String()), nil
}

func (fakeQRService) ParseReservationQR(qrData string) (uuid.UUID, error) {
	return uuid.Parse(qrData[len("qr:"):])
}

// capturingPublisher records events instead of POSTing them.
type capturingPublisher struct {
	mu     sync.Mutex
	events []*service.OrderEvent
}

func (p *capturingPublisher) PublishOrderEvent(_ context.Context, event *service.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *capturingPublisher) Close() error { return nil }
