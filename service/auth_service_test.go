package service

import (
	"context"
	"database/sql"
	"go-jobs-api/model"
	"go-jobs-api/repository"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}
func (m *mockUserRepo) GetUserByUsernameOrEmail(usernameOrEmail string) (*model.User, error) {
	args := m.Called(usernameOrEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) GetUserByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
func (m *mockUserRepo) CountByUsername(username string) (int, error) {
	args := m.Called(username)
	return args.Int(0), args.Error(1)
}
func (m *mockUserRepo) CountByEmail(email string) (int, error) {
	args := m.Called(email)
	return args.Int(0), args.Error(1)
}

// authServiceFixture wires an AuthService against a mocked user repository
// and real token stores backed by an in-memory redis.
type authServiceFixture struct {
	svc          *AuthService
	userRepo     *mockUserRepo
	tokenService *TokenService
	mr           *miniredis.Miniredis
}

func newAuthServiceFixture(t *testing.T) *authServiceFixture {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := testConfig()
	userRepo := new(mockUserRepo)
	tokenService := NewTokenService(cfg)
	svc := NewAuthService(
		userRepo,
		repository.NewRefreshTokenRepository(client),
		repository.NewBlacklistRepository(client),
		tokenService,
		cfg,
	)
	return &authServiceFixture{svc: svc, userRepo: userRepo, tokenService: tokenService, mr: mr}
}

func activeUser(f *authServiceFixture, password string) *model.User {
	hashed, _ := f.svc.HashPassword(password)
	return &model.User{
		ID:       "user-1",
		Username: "alice",
		Email:    "alice@example.com",
		Password: hashed,
		Status:   model.StatusActive,
		Role:     model.RoleUser,
	}
}

// TestAuthService_HashAndCheckPassword ensures that password hashing and
// verification work correctly.
func TestAuthService_HashAndCheckPassword(t *testing.T) {
	authService := NewAuthService(nil, nil, nil, nil, testConfig())
	password := "mySecretPassword123"

	hashedPassword, err := authService.HashPassword(password)
	assert.NoError(t, err)
	assert.NotEqual(t, password, hashedPassword)

	assert.True(t, authService.CheckPasswordHash(password, hashedPassword))
	assert.False(t, authService.CheckPasswordHash("notMyPassword", hashedPassword))
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		user := activeUser(f, "password123")
		f.userRepo.On("GetUserByUsernameOrEmail", "alice").Return(user, nil).Once()

		accessToken, refreshToken, appErr := f.svc.Login(ctx, &model.LoginRequest{
			UsernameOrEmail: "alice",
			Password:        "password123",
		})
		assert.Nil(t, appErr)

		// The access token decodes back to the authenticated user.
		accessClaims, verifyErr := f.tokenService.VerifyAccessToken(accessToken)
		assert.Nil(t, verifyErr)
		assert.Equal(t, user.ID, accessClaims.Subject)
		assert.Equal(t, user.Username, accessClaims.Username)

		// The refresh record exists at refresh:{sub}:{jti} and equals the
		// issued token exactly.
		refreshClaims, verifyErr := f.tokenService.VerifyRefreshToken(refreshToken)
		assert.Nil(t, verifyErr)
		stored, err := f.mr.Get("refresh:" + user.ID + ":" + refreshClaims.ID)
		assert.NoError(t, err)
		assert.Equal(t, refreshToken, stored)

		f.userRepo.AssertExpectations(t)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		f.userRepo.On("GetUserByUsernameOrEmail", "nobody").Return(nil, sql.ErrNoRows).Once()

		_, _, appErr := f.svc.Login(ctx, &model.LoginRequest{UsernameOrEmail: "nobody", Password: "whatever"})
		assert.NotNil(t, appErr)
		assert.Equal(t, 401, appErr.Code)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		f.userRepo.On("GetUserByUsernameOrEmail", "alice").Return(activeUser(f, "password123"), nil).Once()

		_, _, appErr := f.svc.Login(ctx, &model.LoginRequest{UsernameOrEmail: "alice", Password: "wrongpassword"})
		assert.NotNil(t, appErr)
		assert.Equal(t, 401, appErr.Code)
		assert.Equal(t, "Invalid credentials", appErr.Message)
	})

	t.Run("blocked account fails even with correct credentials", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		user := activeUser(f, "password123")
		user.Status = model.StatusBlocked
		f.userRepo.On("GetUserByUsernameOrEmail", "alice").Return(user, nil).Once()

		_, _, appErr := f.svc.Login(ctx, &model.LoginRequest{UsernameOrEmail: "alice", Password: "password123"})
		assert.NotNil(t, appErr)
		assert.Equal(t, 403, appErr.Code)
		assert.Equal(t, "Account has been blocked", appErr.Message)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated refreshes with the same token all succeed", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		user := activeUser(f, "password123")
		f.userRepo.On("GetUserByUsernameOrEmail", "alice").Return(user, nil).Once()
		f.userRepo.On("GetUserByID", user.ID).Return(user, nil).Times(3)

		_, refreshToken, appErr := f.svc.Login(ctx, &model.LoginRequest{UsernameOrEmail: "alice", Password: "password123"})
		assert.Nil(t, appErr)

		// The refresh token is never rotated, so the same token keeps
		// minting access tokens until it is revoked or expires.
		for i := 0; i < 3; i++ {
			newAccessToken, appErr := f.svc.Refresh(ctx, refreshToken)
			assert.Nil(t, appErr)

			claims, verifyErr := f.tokenService.VerifyAccessToken(newAccessToken)
			assert.Nil(t, verifyErr)
			assert.Equal(t, user.ID, claims.Subject)
		}
		f.userRepo.AssertExpectations(t)
	})

	t.Run("missing token", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		_, appErr := f.svc.Refresh(ctx, "")
		assert.NotNil(t, appErr)
		assert.Equal(t, "Missing refresh token", appErr.Message)
	})

	t.Run("revoked when the record is absent", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		refreshToken, _, err := f.tokenService.GenerateRefreshToken("user-1")
		assert.NoError(t, err)

		_, appErr := f.svc.Refresh(ctx, refreshToken)
		assert.NotNil(t, appErr)
		assert.Equal(t, 401, appErr.Code)
		assert.Equal(t, "Refresh token revoked", appErr.Message)
	})

	t.Run("mismatch when the stored value was tampered with", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		refreshToken, jti, err := f.tokenService.GenerateRefreshToken("user-1")
		assert.NoError(t, err)
		assert.NoError(t, f.mr.Set("refresh:user-1:"+jti, "a-different-token"))

		_, appErr := f.svc.Refresh(ctx, refreshToken)
		assert.NotNil(t, appErr)
		assert.Equal(t, "Invalid refresh token", appErr.Message)
	})

	t.Run("user no longer exists", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		refreshToken, jti, err := f.tokenService.GenerateRefreshToken("user-1")
		assert.NoError(t, err)
		assert.NoError(t, f.mr.Set("refresh:user-1:"+jti, refreshToken))
		f.userRepo.On("GetUserByID", "user-1").Return(nil, sql.ErrNoRows).Once()

		_, appErr := f.svc.Refresh(ctx, refreshToken)
		assert.NotNil(t, appErr)
		assert.Equal(t, "User not found", appErr.Message)
	})

	t.Run("user blocked after issuance", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		user := activeUser(f, "password123")
		user.Status = model.StatusBlocked
		refreshToken, jti, err := f.tokenService.GenerateRefreshToken(user.ID)
		assert.NoError(t, err)
		assert.NoError(t, f.mr.Set("refresh:"+user.ID+":"+jti, refreshToken))
		f.userRepo.On("GetUserByID", user.ID).Return(user, nil).Once()

		_, appErr := f.svc.Refresh(ctx, refreshToken)
		assert.NotNil(t, appErr)
		assert.Equal(t, 403, appErr.Code)
		assert.Equal(t, "Account has been blocked", appErr.Message)
	})

	t.Run("expired refresh token", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		expiredCfg := testConfig()
		expiredCfg.JWT.RefreshExpire = -1 * time.Minute
		expiredToken, _, err := NewTokenService(expiredCfg).GenerateRefreshToken("user-1")
		assert.NoError(t, err)

		_, appErr := f.svc.Refresh(ctx, expiredToken)
		assert.NotNil(t, appErr)
		assert.Equal(t, "Refresh token has expired", appErr.Message)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes the record and blacklists the access token", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		user := activeUser(f, "password123")
		f.userRepo.On("GetUserByUsernameOrEmail", "alice").Return(user, nil).Once()

		accessToken, refreshToken, appErr := f.svc.Login(ctx, &model.LoginRequest{UsernameOrEmail: "alice", Password: "password123"})
		assert.Nil(t, appErr)

		appErr = f.svc.Logout(ctx, accessToken, refreshToken)
		assert.Nil(t, appErr)

		refreshClaims, verifyErr := f.tokenService.VerifyRefreshToken(refreshToken)
		assert.Nil(t, verifyErr)
		assert.False(t, f.mr.Exists("refresh:"+user.ID+":"+refreshClaims.ID))

		// The blacklist marker lives exactly as long as the access token
		// would have remained valid.
		assert.True(t, f.mr.Exists("blacklist:"+accessToken))
		assert.InDelta(t, (1 * time.Hour).Seconds(), f.mr.TTL("blacklist:"+accessToken).Seconds(), 5)
	})

	t.Run("missing refresh token", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		appErr := f.svc.Logout(ctx, "some-access-token", "")
		assert.NotNil(t, appErr)
		assert.Equal(t, "Missing refresh token", appErr.Message)
	})

	t.Run("absent refresh record is not an error", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		accessToken, err := f.tokenService.GenerateAccessToken("user-1", "alice", model.RoleUser)
		assert.NoError(t, err)
		refreshToken, _, err := f.tokenService.GenerateRefreshToken("user-1")
		assert.NoError(t, err)

		appErr := f.svc.Logout(ctx, accessToken, refreshToken)
		assert.Nil(t, appErr)
	})

	t.Run("already expired access token gets no marker", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		expiredCfg := testConfig()
		expiredCfg.JWT.AccessExpire = -1 * time.Minute
		expiredAccess, err := NewTokenService(expiredCfg).GenerateAccessToken("user-1", "alice", model.RoleUser)
		assert.NoError(t, err)
		refreshToken, _, err := f.tokenService.GenerateRefreshToken("user-1")
		assert.NoError(t, err)

		appErr := f.svc.Logout(ctx, expiredAccess, refreshToken)
		assert.Nil(t, appErr)
		assert.False(t, f.mr.Exists("blacklist:"+expiredAccess))
	})
}

// The canonical session chain: login issues T1/R1, logout revokes both
// halves, and a subsequent refresh with R1 must report revocation.
func TestAuthService_LoginLogoutRefreshChain(t *testing.T) {
	ctx := context.Background()
	f := newAuthServiceFixture(t)
	user := activeUser(f, "password123")
	f.userRepo.On("GetUserByUsernameOrEmail", "alice").Return(user, nil).Once()

	accessToken, refreshToken, appErr := f.svc.Login(ctx, &model.LoginRequest{UsernameOrEmail: "alice", Password: "password123"})
	assert.Nil(t, appErr)

	assert.Nil(t, f.svc.Logout(ctx, accessToken, refreshToken))

	_, appErr = f.svc.Refresh(ctx, refreshToken)
	assert.NotNil(t, appErr)
	assert.Equal(t, "Refresh token revoked", appErr.Message)
}

func TestAuthService_Register(t *testing.T) {
	req := &model.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "Password123!",
		FirstName: "Alice",
		BirthDate: "2000-01-01",
		Phone:     "+628123456789",
	}

	t.Run("success", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		f.userRepo.On("CountByUsername", "alice").Return(0, nil).Once()
		f.userRepo.On("CountByEmail", "alice@example.com").Return(0, nil).Once()
		f.userRepo.On("CreateUser", mock.MatchedBy(func(u *model.User) bool {
			// The stored password must be a hash, never the plaintext.
			return u.Username == "alice" && u.Password != "Password123!" &&
				f.svc.CheckPasswordHash("Password123!", u.Password)
		})).Run(func(args mock.Arguments) {
			u := args.Get(0).(*model.User)
			u.ID = "user-1"
			u.Status = model.StatusActive
			u.Role = model.RoleUser
		}).Return(nil).Once()

		result, appErr := f.svc.Register(req)
		assert.Nil(t, appErr)
		assert.Equal(t, "user-1", result.ID)
		assert.Equal(t, "alice", result.Username)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("username taken", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		f.userRepo.On("CountByUsername", "alice").Return(1, nil).Once()

		_, appErr := f.svc.Register(req)
		assert.NotNil(t, appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Equal(t, "username already exists", appErr.Message)
		f.userRepo.AssertNotCalled(t, "CreateUser")
	})

	t.Run("email taken", func(t *testing.T) {
		f := newAuthServiceFixture(t)
		f.userRepo.On("CountByUsername", "alice").Return(0, nil).Once()
		f.userRepo.On("CountByEmail", "alice@example.com").Return(1, nil).Once()

		_, appErr := f.svc.Register(req)
		assert.NotNil(t, appErr)
		assert.Equal(t, "email already exists", appErr.Message)
		f.userRepo.AssertNotCalled(t, "CreateUser")
	})
}
