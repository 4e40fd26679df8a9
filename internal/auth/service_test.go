package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/clubhubdev/clubhub-backend/config"
)

type fakeUserRepo struct {
	users  map[uint]*User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(user *User) error {
	user.ID = f.nextID
	f.nextID++
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id uint) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeUserRepo) Update(user *User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdatePassword(id uint, hashed string) error {
	u, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Password = hashed
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTAccessSecret:  "access-secret",
		JWTRefreshSecret: "refresh-secret",
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())

	cases := []struct {
		name  string
		req   RegisterRequest
		field string
	}{
		{"blank name", RegisterRequest{Name: "  ", Email: "a@b.edu", Password: "secret1"}, "name"},
		{"bad email", RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "secret1"}, "email"},
		{"short password", RegisterRequest{Name: "Ada", Email: "a@b.edu", Password: "12345"}, "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(tc.req)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestRegisterCreatesParticipant(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testConfig())

	info, err := svc.Register(RegisterRequest{Name: "Ada", Email: "ADA@Example.EDU", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.edu", info.Email) // lowercased
	assert.Equal(t, RoleParticipant, info.Role)

	stored := repo.users[info.ID]
	assert.NotEqual(t, "secret1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewService(newFakeUserRepo(), testConfig())

	_, err := svc.Register(RegisterRequest{Name: "Ada", Email: "ada@example.edu", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterRequest{Name: "Other", Email: "ada@example.edu", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testConfig())

	_, err := svc.Register(RegisterRequest{Name: "Ada", Email: "ada@example.edu", Password: "secret1"})
	require.NoError(t, err)

	t.Run("success issues token pair", func(t *testing.T) {
		resp, err := svc.Login(LoginRequest{Email: "Ada@Example.edu", Password: "secret1"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "ada@example.edu", resp.User.Email)

		token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
			return []byte("access-secret"), nil
		})
		require.NoError(t, err)
		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, string(RoleParticipant), claims["role"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(LoginRequest{Email: "ada@example.edu", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email looks identical", func(t *testing.T) {
		_, err := svc.Login(LoginRequest{Email: "nobody@example.edu", Password: "secret1"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefresh(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewService(repo, testConfig())

	_, err := svc.Register(RegisterRequest{Name: "Ada", Email: "ada@example.edu", Password: "secret1"})
	require.NoError(t, err)
	resp, err := svc.Login(LoginRequest{Email: "ada@example.edu", Password: "secret1"})
	require.NoError(t, err)

	t.Run("valid refresh token", func(t *testing.T) {
		access, err := svc.Refresh(resp.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, access)
	})

	t.Run("access token rejected as refresh", func(t *testing.T) {
		_, err := svc.Refresh(resp.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Refresh("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"participant", "leader", "university"} {
		r, ok := ParseRole(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, Role(valid), r)
	}

	_, ok := ParseRole("superadmin")
	assert.False(t, ok)
}
