package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"food-delivery/internal/dto/request"
	"food-delivery/internal/dto/response"
	"food-delivery/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func registerCustomer(t *testing.T, f *fixture, email, phone, password string) *response.AuthResponse {
	t.Helper()

	resp, err := f.svc.Auth.Register(context.Background(), &request.RegisterRequest{
		Name:     "Test Customer",
		Email:    email,
		Phone:    phone,
		Password: password,
	}, nil)
	require.NoError(t, err)
	return resp
}

func wrongCode(code string) string {
	if code == "000000" {
		return "111111"
	}
	return "000000"
}

func TestAuthService_Register(t *testing.T) {
	f := newFixture(t)

	resp := registerCustomer(t, f, "Alice@Example.com", "+15550001", "secret1")

	require.Equal(t, 1, f.repo.len())
	require.Equal(t, "alice@example.com", resp.Customer.Email)
	require.False(t, resp.Customer.IsVerified)
	require.True(t, resp.Customer.IsActive)
	require.Equal(t, "customer", string(resp.Customer.Role))
	require.Equal(t, "en", string(resp.Customer.Language))

	subject, err := f.svc.Token.Verify(resp.Token, AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.Customer.ID, subject.String())

	subject, err = f.svc.Token.Verify(resp.RefreshToken, RefreshToken)
	require.NoError(t, err)
	require.Equal(t, resp.Customer.ID, subject.String())

	stored := f.repo.stored("alice@example.com")
	require.NotEqual(t, "secret1", stored.PasswordHash)
	require.True(t, utils.CheckPasswordHash("secret1", stored.PasswordHash))
	require.NotNil(t, stored.EmailVerificationToken)
	require.Len(t, *stored.EmailVerificationToken, 64)
	require.Equal(t, f.clock.Now().Add(24*time.Hour), *stored.EmailVerificationExpires)

	require.Eventually(t, func() bool { return f.notifier.count("verification") == 1 }, time.Second, 10*time.Millisecond)
}

func TestAuthService_RegisterWithProfileImage(t *testing.T) {
	f := newFixture(t)
	img := "/uploads/images/a.png"

	resp, err := f.svc.Auth.Register(context.Background(), &request.RegisterRequest{
		Name: "Pic", Email: "pic@example.com", Phone: "+15550009", Password: "secret1", Language: "fr",
	}, &img)
	require.NoError(t, err)
	require.Equal(t, img, *resp.Customer.ProfileImage)
	require.Equal(t, "fr", string(resp.Customer.Language))
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	f := newFixture(t)
	registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")

	_, err := f.svc.Auth.Register(context.Background(), &request.RegisterRequest{
		Name: "Other", Email: "alice@example.com", Phone: "+15550002", Password: "secret1",
	}, nil)
	var dup *DuplicateIdentityError
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "email", dup.Field)
	require.Equal(t, "Email already registered", DuplicateMessage(dup))

	_, err = f.svc.Auth.Register(context.Background(), &request.RegisterRequest{
		Name: "Other", Email: "bob@example.com", Phone: "+15550001", Password: "secret1",
	}, nil)
	require.ErrorAs(t, err, &dup)
	require.Equal(t, "phone", dup.Field)
	require.Equal(t, "Phone number already registered", DuplicateMessage(dup))

	require.Equal(t, 1, f.repo.len())
}

func TestAuthService_RegisterValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Auth.Register(context.Background(), &request.RegisterRequest{
		Name: "A", Email: "not-an-email", Phone: "123", Password: "123",
	}, nil)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Contains(t, verr.Fields, "name")
	require.Contains(t, verr.Fields, "email")
	require.Contains(t, verr.Fields, "phone")
	require.Contains(t, verr.Fields, "password")
	require.Zero(t, f.repo.len())
}

func TestAuthService_RegisterSurvivesNotifierFailure(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("provider down")

	resp := registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	require.NotEmpty(t, resp.Token)
	require.Eventually(t, func() bool { return f.notifier.count("verification") == 1 }, time.Second, 10*time.Millisecond)
}

func TestAuthService_Login(t *testing.T) {
	f := newFixture(t)
	registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	ctx := context.Background()

	byEmail, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "ALICE@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, byEmail.Token)
	require.NotEmpty(t, byEmail.RefreshToken)
	require.NotNil(t, byEmail.Customer.LastLogin)
	require.Equal(t, f.clock.Now(), *byEmail.Customer.LastLogin)

	byPhone, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Phone: "+15550001", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, byEmail.Customer.ID, byPhone.Customer.ID)

	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Password: "secret1"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAuthService_LoginDoesNotRevealAccounts(t *testing.T) {
	f := newFixture(t)
	registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	ctx := context.Background()

	_, wrongPassword := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "nope"})
	_, unknown := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "ghost@example.com", Password: "nope"})

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknown, ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknown.Error())
}

func TestAuthService_LoginDeactivated(t *testing.T) {
	f := newFixture(t)
	resp := registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	id := uuid.MustParse(resp.Customer.ID)

	require.NoError(t, f.svc.Customer.Deactivate(context.Background(), id))

	_, err := f.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrAccountDeactivated)

	_, err = f.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestAuthService_LoginStoreFailureIsNotCredentialError(t *testing.T) {
	f := newFixture(t)
	f.repo.failWith = errors.New("connection refused")

	_, err := f.svc.Auth.Login(context.Background(), &request.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_VerifyEmailIsSingleUse(t *testing.T) {
	f := newFixture(t)
	registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	ctx := context.Background()
	token := *f.repo.stored("alice@example.com").EmailVerificationToken

	require.NoError(t, f.svc.Auth.VerifyEmail(ctx, token))

	stored := f.repo.stored("alice@example.com")
	require.True(t, stored.IsVerified)
	require.Nil(t, stored.EmailVerificationToken)
	require.Nil(t, stored.EmailVerificationExpires)

	require.ErrorIs(t, f.svc.Auth.VerifyEmail(ctx, token), ErrInvalidOrExpiredToken)
	require.ErrorIs(t, f.svc.Auth.VerifyEmail(ctx, ""), ErrInvalidOrExpiredToken)
}

func TestAuthService_VerifyEmailExpired(t *testing.T) {
	f := newFixture(t)
	registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	token := *f.repo.stored("alice@example.com").EmailVerificationToken

	f.clock.Advance(24*time.Hour + time.Second)

	require.ErrorIs(t, f.svc.Auth.VerifyEmail(context.Background(), token), ErrInvalidOrExpiredToken)
	require.False(t, f.repo.stored("alice@example.com").IsVerified)
}

func TestAuthService_ResendVerification(t *testing.T) {
	f := newFixture(t)
	registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	ctx := context.Background()
	first := *f.repo.stored("alice@example.com").EmailVerificationToken

	require.NoError(t, f.svc.Auth.ResendVerification(ctx, &request.EmailRequest{Email: "alice@example.com"}))
	second := *f.repo.stored("alice@example.com").EmailVerificationToken
	require.NotEqual(t, first, second)

	require.ErrorIs(t, f.svc.Auth.VerifyEmail(ctx, first), ErrInvalidOrExpiredToken)
	require.NoError(t, f.svc.Auth.VerifyEmail(ctx, second))

	err := f.svc.Auth.ResendVerification(ctx, &request.EmailRequest{Email: "alice@example.com"})
	require.ErrorIs(t, err, ErrAlreadyVerified)

	err = f.svc.Auth.ResendVerification(ctx, &request.EmailRequest{Email: "ghost@example.com"})
	require.ErrorIs(t, err, ErrAccountNotFound)

	require.Eventually(t, func() bool { return f.notifier.count("verification") == 2 }, time.Second, 10*time.Millisecond)
}

func TestAuthService_PasswordResetRoundTrip(t *testing.T) {
	f := newFixture(t)
	registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	ctx := context.Background()

	require.NoError(t, f.svc.Auth.ForgotPassword(ctx, &request.EmailRequest{Email: "alice@example.com"}))

	stored := f.repo.stored("alice@example.com")
	require.NotNil(t, stored.OTPCode)
	require.Regexp(t, `^\d{6}$`, *stored.OTPCode)
	require.Equal(t, f.clock.Now().Add(10*time.Minute), *stored.OTPExpires)
	code := *stored.OTPCode

	require.Eventually(t, func() bool { return f.notifier.count("otp") == 1 }, time.Second, 10*time.Millisecond)

	secret, err := f.svc.Auth.VerifyResetOTP(ctx, &request.VerifyResetOTPRequest{Email: "alice@example.com", OTPCode: code})
	require.NoError(t, err)
	require.NotEmpty(t, secret)

	stored = f.repo.stored("alice@example.com")
	require.Nil(t, stored.OTPCode)
	require.Nil(t, stored.OTPExpires)
	require.NotNil(t, stored.ResetPasswordToken)
	require.NotEqual(t, secret, *stored.ResetPasswordToken)
	require.Equal(t, utils.HashToken(secret), *stored.ResetPasswordToken)

	require.NoError(t, f.svc.Auth.ResetPassword(ctx, &request.ResetPasswordRequest{Token: secret, NewPassword: "newpass2"}))

	stored = f.repo.stored("alice@example.com")
	require.Nil(t, stored.ResetPasswordToken)
	require.Nil(t, stored.ResetPasswordExpires)

	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "newpass2"})
	require.NoError(t, err)

	// reused secret
	err = f.svc.Auth.ResetPassword(ctx, &request.ResetPasswordRequest{Token: secret, NewPassword: "another3"})
	require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "newpass2"})
	require.NoError(t, err)

	require.Eventually(t, func() bool { return f.notifier.count("password_changed") == 1 }, time.Second, 10*time.Millisecond)
}

func TestAuthService_PasswordResetFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Auth.ForgotPassword(ctx, &request.EmailRequest{Email: "ghost@example.com"})
		require.ErrorIs(t, err, ErrAccountNotFound)
	})

	t.Run("wrong otp", func(t *testing.T) {
		f := newFixture(t)
		registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
		require.NoError(t, f.svc.Auth.ForgotPassword(ctx, &request.EmailRequest{Email: "alice@example.com"}))
		code := *f.repo.stored("alice@example.com").OTPCode

		_, err := f.svc.Auth.VerifyResetOTP(ctx, &request.VerifyResetOTPRequest{Email: "alice@example.com", OTPCode: wrongCode(code)})
		require.ErrorIs(t, err, ErrInvalidOrExpiredOTP)

		_, err = f.svc.Auth.VerifyResetOTP(ctx, &request.VerifyResetOTPRequest{Email: "ghost@example.com", OTPCode: code})
		require.ErrorIs(t, err, ErrInvalidOrExpiredOTP)

		stored := f.repo.stored("alice@example.com")
		require.Equal(t, code, *stored.OTPCode)
		require.Nil(t, stored.ResetPasswordToken)
		require.True(t, utils.CheckPasswordHash("secret1", stored.PasswordHash))
	})

	t.Run("expired otp", func(t *testing.T) {
		f := newFixture(t)
		registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
		require.NoError(t, f.svc.Auth.ForgotPassword(ctx, &request.EmailRequest{Email: "alice@example.com"}))
		code := *f.repo.stored("alice@example.com").OTPCode

		f.clock.Advance(10*time.Minute + time.Second)

		_, err := f.svc.Auth.VerifyResetOTP(ctx, &request.VerifyResetOTPRequest{Email: "alice@example.com", OTPCode: code})
		require.ErrorIs(t, err, ErrInvalidOrExpiredOTP)
	})

	t.Run("expired secret", func(t *testing.T) {
		f := newFixture(t)
		registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
		require.NoError(t, f.svc.Auth.ForgotPassword(ctx, &request.EmailRequest{Email: "alice@example.com"}))
		code := *f.repo.stored("alice@example.com").OTPCode
		secret, err := f.svc.Auth.VerifyResetOTP(ctx, &request.VerifyResetOTPRequest{Email: "alice@example.com", OTPCode: code})
		require.NoError(t, err)

		f.clock.Advance(15*time.Minute + time.Second)

		err = f.svc.Auth.ResetPassword(ctx, &request.ResetPasswordRequest{Token: secret, NewPassword: "newpass2"})
		require.ErrorIs(t, err, ErrInvalidOrExpiredToken)
		require.True(t, utils.CheckPasswordHash("secret1", f.repo.stored("alice@example.com").PasswordHash))
	})

	t.Run("new otp supersedes old", func(t *testing.T) {
		f := newFixture(t)
		registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
		require.NoError(t, f.svc.Auth.ForgotPassword(ctx, &request.EmailRequest{Email: "alice@example.com"}))
		first := *f.repo.stored("alice@example.com").OTPCode
		require.NoError(t, f.svc.Auth.ForgotPassword(ctx, &request.EmailRequest{Email: "alice@example.com"}))
		second := *f.repo.stored("alice@example.com").OTPCode

		if first != second {
			_, err := f.svc.Auth.VerifyResetOTP(ctx, &request.VerifyResetOTPRequest{Email: "alice@example.com", OTPCode: first})
			require.ErrorIs(t, err, ErrInvalidOrExpiredOTP)
		}
		_, err := f.svc.Auth.VerifyResetOTP(ctx, &request.VerifyResetOTPRequest{Email: "alice@example.com", OTPCode: second})
		require.NoError(t, err)
	})
}

func TestAuthService_GenericOTP(t *testing.T) {
	f := newFixture(t)
	registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	ctx := context.Background()

	code, err := f.svc.Auth.SendOTP(ctx, &request.SendOTPRequest{Phone: "+15550001"})
	require.NoError(t, err)
	require.Equal(t, code, *f.repo.stored("alice@example.com").OTPCode)

	_, err = f.svc.Auth.VerifyOTP(ctx, &request.VerifyOTPRequest{Phone: "+15550001", OTPCode: wrongCode(code)})
	require.ErrorIs(t, err, ErrInvalidOrExpiredOTP)

	resp, err := f.svc.Auth.VerifyOTP(ctx, &request.VerifyOTPRequest{Phone: "+15550001", OTPCode: code})
	require.NoError(t, err)
	require.True(t, resp.Customer.IsVerified)
	require.NotEmpty(t, resp.Token)
	require.NotEmpty(t, resp.RefreshToken)

	stored := f.repo.stored("alice@example.com")
	require.True(t, stored.IsVerified)
	require.Nil(t, stored.OTPCode)

	_, err = f.svc.Auth.VerifyOTP(ctx, &request.VerifyOTPRequest{Phone: "+15550001", OTPCode: code})
	require.ErrorIs(t, err, ErrInvalidOrExpiredOTP)

	_, err = f.svc.Auth.SendOTP(ctx, &request.SendOTPRequest{Email: "ghost@example.com"})
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAuthService_RefreshToken(t *testing.T) {
	f := newFixture(t)
	resp := registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	ctx := context.Background()

	rotated, err := f.svc.Auth.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	require.NotEqual(t, resp.Token, rotated.Token)
	require.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	subject, err := f.svc.Token.Verify(rotated.Token, AccessToken)
	require.NoError(t, err)
	require.Equal(t, resp.Customer.ID, subject.String())

	_, err = f.svc.Auth.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: resp.Token})
	require.ErrorIs(t, err, ErrInvalidToken)

	f.clock.Advance(31 * 24 * time.Hour)
	_, err = f.svc.Auth.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: rotated.RefreshToken})
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestAuthService_RefreshTokenDeactivatedOrDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	require.NoError(t, f.svc.Customer.Deactivate(ctx, uuid.MustParse(alice.Customer.ID)))
	_, err := f.svc.Auth.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: alice.RefreshToken})
	require.ErrorIs(t, err, ErrInvalidToken)

	bob := registerCustomer(t, f, "bob@example.com", "+15550002", "secret1")
	require.NoError(t, f.svc.Customer.Delete(ctx, uuid.MustParse(bob.Customer.ID)))
	_, err = f.svc.Auth.RefreshToken(ctx, &request.RefreshTokenRequest{RefreshToken: bob.RefreshToken})
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_Logout(t *testing.T) {
	f := newFixture(t)
	resp := registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	ctx := context.Background()
	id := uuid.MustParse(resp.Customer.ID)

	fcm := "device-token"
	_, err := f.svc.Customer.UpdateProfile(ctx, id, &request.UpdateProfileRequest{FCMToken: &fcm}, nil)
	require.NoError(t, err)
	require.NotNil(t, f.repo.stored("alice@example.com").FCMToken)

	require.NoError(t, f.svc.Auth.Logout(ctx, id))
	require.Nil(t, f.repo.stored("alice@example.com").FCMToken)

	// access tokens are stateless and remain valid after logout
	_, err = f.svc.Token.Verify(resp.Token, AccessToken)
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.Auth.Logout(ctx, uuid.New()), ErrInvalidToken)
}

func TestAuthService_CheckExists(t *testing.T) {
	f := newFixture(t)
	registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	ctx := context.Background()

	exists, err := f.svc.Auth.CheckExists(ctx, "alice@example.com", "")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = f.svc.Auth.CheckExists(ctx, "", "+15550001")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = f.svc.Auth.CheckExists(ctx, "ghost@example.com", "+15559999")
	require.NoError(t, err)
	require.False(t, exists)

	_, err = f.svc.Auth.CheckExists(ctx, "", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	admin := utils.AdminConfig{Name: "Admin", Email: "admin@example.com", Phone: "+21600000000", Password: "admin123"}

	created, err := f.svc.Auth.EnsureAdmin(ctx, admin)
	require.NoError(t, err)
	require.True(t, created)

	stored := f.repo.stored("admin@example.com")
	require.True(t, stored.IsAdmin())
	require.True(t, stored.IsVerified)

	created, err = f.svc.Auth.EnsureAdmin(ctx, admin)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, 1, f.repo.len())
}

func TestAuthService_AliceScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	registered, err := f.svc.Auth.Register(ctx, &request.RegisterRequest{
		Name: "Alice", Email: "alice@example.com", Phone: "+15550001", Password: "secret1",
	}, nil)
	require.NoError(t, err)
	require.False(t, registered.Customer.IsVerified)

	token := *f.repo.stored("alice@example.com").EmailVerificationToken
	require.NoError(t, f.svc.Auth.VerifyEmail(ctx, token))
	require.True(t, f.repo.stored("alice@example.com").IsVerified)

	login, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)
	require.NotEmpty(t, login.RefreshToken)

	require.NoError(t, f.svc.Auth.ForgotPassword(ctx, &request.EmailRequest{Email: "alice@example.com"}))
	otp := *f.repo.stored("alice@example.com").OTPCode
	require.Len(t, otp, 6)

	secret, err := f.svc.Auth.VerifyResetOTP(ctx, &request.VerifyResetOTPRequest{Email: "alice@example.com", OTPCode: otp})
	require.NoError(t, err)

	require.NoError(t, f.svc.Auth.ResetPassword(ctx, &request.ResetPasswordRequest{Token: secret, NewPassword: "newpass2"}))

	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "secret1"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Auth.Login(ctx, &request.LoginRequest{Email: "alice@example.com", Password: "newpass2"})
	require.NoError(t, err)
}

func TestAuthService_IssuedOTPPassesVerifyValidation(t *testing.T) {
	f := newFixture(t)
	registerCustomer(t, f, "alice@example.com", "+15550001", "secret1")
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		code, err := f.svc.Auth.SendOTP(ctx, &request.SendOTPRequest{Email: "alice@example.com"})
		require.NoError(t, err)
		require.Len(t, code, otpLength)

		require.Empty(t, utils.ValidateStruct(&request.VerifyOTPRequest{Email: "alice@example.com", OTPCode: code}))
		require.Empty(t, utils.ValidateStruct(&request.VerifyResetOTPRequest{Email: "alice@example.com", OTPCode: code}))
	}
}
