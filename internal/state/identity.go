package state

import (
	"errors"
	"slices"
	"strings"

	"e-shopping/internal/domain"

	"go.uber.org/zap"
)

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// DefaultUserName replaces a blank name on registration
const DefaultUserName = "Utilisateur"

// IdentityState is the user directory and the current session
type IdentityState struct {
	Users       []domain.User `json:"users"`
	CurrentUser *domain.User  `json:"currentUser"`
}

// RegisterInput carries the fields of a new account. ShopID is only
// meaningful for RoleStore.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	ShopID   string
}

// SeedIdentity is the directory used on first run: one admin, no session
func SeedIdentity() IdentityState {
	return IdentityState{
		Users: []domain.User{
			{
				ID:       "admin-1",
				Name:     "Admin",
				Email:    "admin@baobab.mg",
				Password: "admin123",
				Role:     domain.RoleAdmin,
			},
		},
	}
}

// IdentityStore owns the user directory and the single active session
type IdentityStore struct {
	c        *container[IdentityState]
	logger   *zap.Logger
	notifier Notifier
	newID    IDGenerator
}

// NewIdentityStore restores the directory from SlotIdentity, or seeds it
// when the slot is missing or unparsable
func NewIdentityStore(opts ...Option) *IdentityStore {
	o := buildOptions(opts)
	sl := newSlot[IdentityState](SlotIdentity, o)

	initial, ok := sl.load()
	if !ok {
		initial = SeedIdentity()
	} else {
		var repaired bool
		if initial, repaired = repairIdentity(initial); repaired {
			sl.repaired()
		}
	}
	initial.Users = nonNil(initial.Users)

	var persist func(IdentityState)
	if sl != nil {
		persist = sl.save
	}

	return &IdentityStore{
		c:        newContainer("identity", initial, persist, o.metrics),
		logger:   o.logger,
		notifier: o.notifier,
		newID:    o.newID,
	}
}

// Users returns the directory in listing order
func (s *IdentityStore) Users() []domain.User {
	return slices.Clone(s.c.load().state.Users)
}

// CurrentUser returns the session user, if any
func (s *IdentityStore) CurrentUser() (domain.User, bool) {
	cur := s.c.load().state.CurrentUser
	if cur == nil {
		return domain.User{}, false
	}
	return *cur, true
}

// IsLoggedIn reports whether a session is active
func (s *IdentityStore) IsLoggedIn() bool {
	return s.c.load().state.CurrentUser != nil
}

// Role returns the role of the session user. ok is false when logged out.
func (s *IdentityStore) Role() (role domain.Role, ok bool) {
	cur := s.c.load().state.CurrentUser
	if cur == nil {
		return "", false
	}
	return cur.Role, true
}

// FindByEmail looks a user up by normalized email
func (s *IdentityStore) FindByEmail(email string) (domain.User, bool) {
	e := domain.NormalizeEmail(email)
	for _, u := range s.c.load().state.Users {
		if domain.NormalizeEmail(u.Email) == e {
			return u, true
		}
	}
	return domain.User{}, false
}

// Register creates an account, appends it to the directory and logs it in
func (s *IdentityStore) Register(in RegisterInput) (domain.User, error) {
	var user domain.User
	_, err := s.c.update("register", func(st IdentityState) (IdentityState, error) {
		u, err := s.newUser(st, in)
		if err != nil {
			return st, err
		}
		user = u
		st.Users = append(slices.Clone(st.Users), u)
		session := sessionOf(u)
		st.CurrentUser = &session
		return st, nil
	})
	if err != nil {
		s.logger.Debug("Registration rejected", zap.String("email", domain.NormalizeEmail(in.Email)), zap.Error(err))
		return domain.User{}, err
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	s.notifier.Success("Account created")
	return user, nil
}

// AdminCreateUser creates an account like Register but leaves the session
// untouched. The account is listed first.
func (s *IdentityStore) AdminCreateUser(in RegisterInput) (domain.User, error) {
	var user domain.User
	_, err := s.c.update("admin_create_user", func(st IdentityState) (IdentityState, error) {
		u, err := s.newUser(st, in)
		if err != nil {
			return st, err
		}
		user = u
		st.Users = slices.Insert(slices.Clone(st.Users), 0, u)
		return st, nil
	})
	if err != nil {
		s.logger.Debug("Account creation rejected", zap.String("email", domain.NormalizeEmail(in.Email)), zap.Error(err))
		return domain.User{}, err
	}

	s.logger.Info("User created by admin", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Login opens a session for the user matching email (normalized) and
// password exactly. Unknown email and wrong password fail the same way.
func (s *IdentityStore) Login(email, password string) (domain.User, error) {
	e := domain.NormalizeEmail(email)

	var user domain.User
	_, err := s.c.update("login", func(st IdentityState) (IdentityState, error) {
		i := slices.IndexFunc(st.Users, func(u domain.User) bool {
			return domain.NormalizeEmail(u.Email) == e && u.Password == password
		})
		if i < 0 {
			return st, ErrInvalidCredentials
		}
		user = st.Users[i]
		session := sessionOf(user)
		st.CurrentUser = &session
		return st, nil
	})
	if err != nil {
		s.logger.Debug("Login failed", zap.Error(err))
		return domain.User{}, err
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID))
	return user, nil
}

// Logout clears the session. Logging out twice is harmless.
func (s *IdentityStore) Logout() {
	s.c.update("logout", func(st IdentityState) (IdentityState, error) {
		if st.CurrentUser == nil {
			return st, errUnchanged
		}
		st.CurrentUser = nil
		return st, nil
	})
}

func (s *IdentityStore) newUser(st IdentityState, in RegisterInput) (domain.User, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" {
		return domain.User{}, ErrInvalidEmail
	}
	if slices.ContainsFunc(st.Users, func(u domain.User) bool {
		return domain.NormalizeEmail(u.Email) == email
	}) {
		return domain.User{}, ErrDuplicateEmail
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = DefaultUserName
	}
	role := in.Role
	if role == "" {
		role = domain.RoleBuyer
	}

	return domain.User{
		ID:       s.newID(""),
		Name:     name,
		Email:    email,
		Password: in.Password,
		Role:     role,
		ShopID:   strings.TrimSpace(in.ShopID),
	}, nil
}

// sessionOf is the session copy of u. The password stays in the directory
// only, so the auth slot holds it once.
func sessionOf(u domain.User) domain.User {
	u.Password = ""
	return u
}

// HomePath is where a freshly registered user lands
func HomePath(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "/admin/boutiques"
	case domain.RoleStore:
		return "/store/articles"
	default:
		return "/"
	}
}
