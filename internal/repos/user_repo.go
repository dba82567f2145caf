package repos

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"backoffice/internal/domain"
	"backoffice/internal/store"
	"backoffice/internal/validate"
)

type UserRepo struct {
	c          *collection[domain.User]
	now        func() time.Time
	bcryptCost int
}

func NewUserRepo(b store.Backend, now func() time.Time, bcryptCost int) *UserRepo {
	if now == nil {
		now = time.Now
	}
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserRepo{c: newCollection[domain.User](b, store.Users), now: now, bcryptCost: bcryptCost}
}

type UserDraft struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	Status   domain.UserStatus
	Orders   int
	Verified bool
}

type UserPatch struct {
	Name     *string
	Email    *string
	Password *string
	Role     *domain.Role
	Status   *domain.UserStatus
	Orders   *int
	Verified *bool
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	items, err := r.c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = items[i].Sanitized()
	}
	return items, nil
}

func (r *UserRepo) Get(ctx context.Context, id int) (domain.User, error) {
	items, err := r.c.all(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if i := indexUser(items, id); i >= 0 {
		return items[i].Sanitized(), nil
	}
	return domain.User{}, domain.ErrNotFound
}

// Credentials returns the user with its password hash. It is the only read
// path that does.
func (r *UserRepo) Credentials(ctx context.Context, email string) (domain.User, error) {
	items, err := r.c.all(ctx)
	if err != nil {
		return domain.User{}, err
	}
	email = strings.TrimSpace(email)
	for _, u := range items {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (r *UserRepo) Create(ctx context.Context, d UserDraft) (domain.User, error) {
	name, email := strings.TrimSpace(d.Name), strings.TrimSpace(d.Email)
	if name == "" || email == "" || d.Password == "" {
		return domain.User{}, domain.Invalid("email", "Name, email and password are required")
	}
	if _, valid := validate.Email(email); !valid {
		return domain.User{}, domain.Invalid("email", "Invalid email address")
	}
	hash, err := r.hash(d.Password)
	if err != nil {
		return domain.User{}, err
	}

	var created domain.User
	err = r.c.update(ctx, func(items []domain.User) ([]domain.User, error) {
		if emailTaken(items, email, 0) {
			return nil, domain.Invalid("email", "Email already exists")
		}
		u := domain.User{
			ID:           nextIntID(items, func(u domain.User) int { return u.ID }),
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			Role:         d.Role,
			Status:       d.Status,
			JoinDate:     r.now(),
			Orders:       d.Orders,
			Verified:     d.Verified,
		}
		if u.Role == "" {
			u.Role = domain.RoleCustomer
		}
		if u.Status == "" {
			u.Status = domain.UserActive
		}
		if err := checkUser(u); err != nil {
			return nil, err
		}
		created = u
		return append(items, u), nil
	})
	return created.Sanitized(), err
}

func (r *UserRepo) Update(ctx context.Context, id int, patch UserPatch) (domain.User, error) {
	var hash string
	if patch.Password != nil && *patch.Password != "" {
		h, err := r.hash(*patch.Password)
		if err != nil {
			return domain.User{}, err
		}
		hash = h
	}

	var updated domain.User
	err := r.c.update(ctx, func(items []domain.User) ([]domain.User, error) {
		i := indexUser(items, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		before := countActiveAdmins(items)
		u := items[i]
		if patch.Name != nil {
			u.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Email != nil {
			email := strings.TrimSpace(*patch.Email)
			if _, valid := validate.Email(email); !valid {
				return nil, domain.Invalid("email", "Invalid email address")
			}
			if emailTaken(items, email, u.ID) {
				return nil, domain.Invalid("email", "Email already exists")
			}
			u.Email = email
		}
		if hash != "" {
			u.PasswordHash = hash
		}
		if patch.Role != nil {
			u.Role = *patch.Role
		}
		if patch.Status != nil {
			u.Status = *patch.Status
		}
		if patch.Orders != nil {
			u.Orders = *patch.Orders
		}
		if patch.Verified != nil {
			u.Verified = *patch.Verified
		}
		if u.Name == "" || u.Email == "" {
			return nil, domain.Invalid("name", "Name and email are required")
		}
		if err := checkUser(u); err != nil {
			return nil, err
		}
		now := r.now()
		u.UpdatedAt = &now
		items[i] = u
		if before > 0 && countActiveAdmins(items) == 0 {
			return nil, domain.Invalid("role", "At least one active admin is required")
		}
		updated = u
		return items, nil
	})
	return updated.Sanitized(), err
}

// Delete removes user id on behalf of actorID. Admins cannot delete themselves.
func (r *UserRepo) Delete(ctx context.Context, id, actorID int) (domain.User, error) {
	if id == actorID {
		return domain.User{}, domain.ErrForbidden
	}
	var deleted domain.User
	err := r.c.update(ctx, func(items []domain.User) ([]domain.User, error) {
		i := indexUser(items, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		before := countActiveAdmins(items)
		deleted = items[i]
		items = append(items[:i], items[i+1:]...)
		if before > 0 && countActiveAdmins(items) == 0 {
			return nil, domain.Invalid("id", "At least one active admin is required")
		}
		return items, nil
	})
	return deleted.Sanitized(), err
}

// RecordLogin stamps lastLogin for a successful sign-in.
func (r *UserRepo) RecordLogin(ctx context.Context, id int) (domain.User, error) {
	var updated domain.User
	err := r.c.update(ctx, func(items []domain.User) ([]domain.User, error) {
		i := indexUser(items, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		now := r.now()
		items[i].LastLogin = &now
		updated = items[i]
		return items, nil
	})
	return updated.Sanitized(), err
}

func (r *UserRepo) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), r.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func checkUser(u domain.User) error {
	if !u.Role.Valid() {
		return domain.Invalid("role", "Invalid role")
	}
	if !u.Status.Valid() {
		return domain.Invalid("status", "Invalid status")
	}
	if u.Orders < 0 {
		return domain.Invalid("orders", "Order count cannot be negative")
	}
	return nil
}

func indexUser(items []domain.User, id int) int {
	for i, u := range items {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func emailTaken(items []domain.User, email string, exceptID int) bool {
	for _, u := range items {
		if u.ID != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func countActiveAdmins(items []domain.User) int {
	n := 0
	for _, u := range items {
		if u.ActiveAdmin() {
			n++
		}
	}
	return n
}
