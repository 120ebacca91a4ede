package auth_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
	userDatamodel "github.com/frahmantamala/finance-tracker/internal/core/datamodel/user"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

type mockUserRepository struct {
	users     map[string]*userDatamodel.User
	nextID    int64
	createErr error
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[string]*userDatamodel.User{}, nextID: 1}
}

func (m *mockUserRepository) Create(_ context.Context, u *userDatamodel.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.users[u.Username]; ok {
		return appErrors.NewConflictError("username already taken", appErrors.ErrCodeUsernameTaken)
	}
	u.ID = m.nextID
	m.nextID++
	m.users[u.Username] = u
	return nil
}

func (m *mockUserRepository) GetByUsername(_ context.Context, username string) (*userDatamodel.User, error) {
	u, ok := m.users[username]
	if !ok {
		return nil, appErrors.NewNotFoundError("user not found", appErrors.ErrCodeUserNotFound)
	}
	return u, nil
}

var _ = Describe("Service", func() {
	var (
		repo    *mockUserRepository
		tokens  *auth.JWTTokenGenerator
		service *auth.Service
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		repo = newMockUserRepository()
		tokens = auth.NewJWTTokenGenerator(testSecret, time.Hour)
		service = auth.NewService(repo, tokens, bcrypt.MinCost, nil)
	})

	register := func(username, password string) (auth.AuthTokens, error) {
		return service.Register(ctx, auth.RegisterDTO{
			Username:        username,
			Password:        password,
			ConfirmPassword: password,
		})
	}

	Describe("Register", func() {
		It("stores a hashed password and signs the new owner in", func() {
			result, err := register("asha", "s3cret-pass")

			Expect(err).NotTo(HaveOccurred())
			Expect(result.AccessToken).NotTo(BeEmpty())
			Expect(result.TokenType).To(Equal("Bearer"))

			stored := repo.users["asha"]
			Expect(stored).NotTo(BeNil())
			Expect(stored.PasswordHash).NotTo(Equal("s3cret-pass"))
			Expect(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass"))).To(Succeed())

			ownerID, err := service.OwnerIDFromToken(result.AccessToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(ownerID).To(Equal(stored.ID))
		})

		It("rejects mismatched passwords", func() {
			_, err := service.Register(ctx, auth.RegisterDTO{
				Username:        "asha",
				Password:        "s3cret-pass",
				ConfirmPassword: "different-pass",
			})

			appErr, ok := appErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.GetDetailedMessage()).To(Equal("passwords do not match"))
			Expect(repo.users).To(BeEmpty())
		})

		It("rejects a short password", func() {
			_, err := register("asha", "short")

			appErr, ok := appErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(appErrors.ErrorTypeValidation))
		})

		It("reports a taken username as a conflict", func() {
			_, err := register("asha", "s3cret-pass")
			Expect(err).NotTo(HaveOccurred())

			_, err = register("asha", "another-pass")

			appErr, ok := appErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(appErrors.ErrCodeUsernameTaken))
		})
	})

	Describe("Authenticate", func() {
		BeforeEach(func() {
			_, err := register("asha", "s3cret-pass")
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns tokens for valid credentials", func() {
			result, err := service.Authenticate(ctx, auth.LoginDTO{Username: "asha", Password: "s3cret-pass"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.AccessToken).NotTo(BeEmpty())
		})

		It("rejects a wrong password", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "asha", Password: "wrong-pass"})

			Expect(err).To(Equal(appErrors.ErrInvalidCredentials))
		})

		It("does not reveal unknown usernames", func() {
			_, err := service.Authenticate(ctx, auth.LoginDTO{Username: "ghost", Password: "s3cret-pass"})

			Expect(err).To(Equal(appErrors.ErrInvalidCredentials))
		})
	})

	Describe("ValidateAccessToken", func() {
		It("reports an expired token", func() {
			expired := &auth.JWTTokenGenerator{AccessTokenSecret: []byte(testSecret), AccessTokenTTL: -time.Minute}
			token, _, err := expired.GenerateAccessToken(1, "asha")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(token)

			Expect(err).To(Equal(appErrors.ErrTokenExpired))
		})

		It("rejects a token signed with another secret", func() {
			other := auth.NewJWTTokenGenerator("another-secret-that-is-long-enough-too", time.Hour)
			token, _, err := other.GenerateAccessToken(1, "asha")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.OwnerIDFromToken(token)

			Expect(err).To(Equal(appErrors.ErrInvalidToken))
		})

		It("rejects garbage", func() {
			_, err := service.OwnerIDFromToken("not-a-jwt")

			Expect(err).To(Equal(appErrors.ErrInvalidToken))
		})
	})
})
