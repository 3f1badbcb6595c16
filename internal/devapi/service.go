// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package devapi

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/shopfront/internal/platform/apperr"
	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/middleware"
	"github.com/taibuivan/shopfront/internal/platform/sec"
	"github.com/taibuivan/shopfront/internal/platform/validate"
	"github.com/taibuivan/shopfront/internal/storefront/api"
)

// RoleCustomer is the role of every storefront account.
const RoleCustomer = "customer"

// TokenProvider issues and verifies bearer tokens.
type TokenProvider interface {
	GenerateAccessToken(userID int64, phone, role string, timeToLive time.Duration) (string, *sec.AuthClaims, error)
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Session is a successful login or OTP verification.
type Session struct {
	User  api.User `json:"user"`
	Token string   `json:"token"`
}

// Service implements the store API use cases.
type Service struct {
	store    *Store
	tokens   TokenProvider
	otpLimit *middleware.Limiter
	options  Options
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a [Service]. The OTP limiter stops with ctx.
func NewService(ctx context.Context, store *Store, tokens TokenProvider, options Options, logger *slog.Logger) *Service {
	perMinute := max(options.OTPPerMinute, 1)

	return &Service{
		store:    store,
		tokens:   tokens,
		otpLimit: middleware.NewLimiter(ctx, rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		options:  options,
		logger:   logger,
		now:      time.Now,
	}
}

// # Registration

/*
Register creates an unverified account and sends its first OTP.

Returns:
  - api.User: The created user
  - error: 422 when the phone number or email is taken
*/
func (service *Service) Register(ctx context.Context, input api.RegisterInput) (api.User, error) {
	if service.store.emailTaken(input.Email, 0) {
		return api.User{}, taken(fieldEmail, "email")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return api.User{}, fmt.Errorf("devapi_register_hash_failed: %w", err)
	}

	user, ok := service.store.createAccount(api.User{
		Name:           input.Name,
		PhoneNumber:    input.PhoneNumber,
		Email:          input.Email,
		WhatsappNumber: input.WhatsappNumber,
		Role:           RoleCustomer,
		CreatedAt:      service.now().UTC().Format(time.RFC3339),
	}, hashedPassword)
	if !ok {
		return api.User{}, taken(fieldPhoneNumber, "phone number")
	}

	service.logger.InfoContext(ctx, "devapi_user_registered", slog.Int64("user_id", user.ID))

	if err := service.issueOTP(ctx, user.PhoneNumber); err != nil {
		return api.User{}, err
	}
	return user, nil
}

// SendOTP issues a fresh one-time password for a registered phone.
func (service *Service) SendOTP(ctx context.Context, phone string) error {
	if _, ok := service.store.accountByPhone(phone); !ok {
		return invalid(fieldPhoneNumber, "The selected phone number is invalid.")
	}
	if !service.otpLimit.Allow(phone) {
		return apperr.RateLimited(int(time.Minute.Seconds()) / max(service.options.OTPPerMinute, 1))
	}
	return service.issueOTP(ctx, phone)
}

// VerifyOTP checks the code, marks the phone verified and opens a session.
func (service *Service) VerifyOTP(ctx context.Context, phone, code string) (*Session, error) {
	now := service.now()
	accepted := service.store.consumeOTP(phone, func(pending pendingOTP) bool {
		return !now.After(pending.expiresAt) &&
			subtle.ConstantTimeCompare([]byte(pending.code), []byte(code)) == 1
	})
	if !accepted {
		return nil, invalid(fieldOTP, "The OTP is invalid or has expired.")
	}

	found, ok := service.store.accountByPhone(phone)
	if !ok {
		return nil, invalid(fieldPhoneNumber, "The selected phone number is invalid.")
	}

	verifiedAt := service.now().UTC().Format(time.RFC3339)
	user, _ := service.store.updateUser(found.user.ID, func(user *api.User) {
		user.PhoneVerifiedAt = &verifiedAt
	})

	return service.openSession(ctx, user)
}

// # Sessions

// Login checks phone and password of a verified account.
func (service *Service) Login(ctx context.Context, phone, password string) (*Session, error) {
	found, ok := service.store.accountByPhone(phone)

	// Same message for unknown phone and wrong password.
	if !ok || !sec.CheckPasswordHash(password, found.passwordHash) {
		return nil, apperr.Unauthorized("Invalid credentials.")
	}
	if !found.user.IsPhoneVerified() {
		return nil, apperr.Forbidden("Please verify your phone number first.")
	}

	return service.openSession(ctx, found.user)
}

// Logout revokes the token identified by claims.
func (service *Service) Logout(ctx context.Context, claims *sec.AuthClaims) {
	expiresAt := service.now().Add(service.options.TokenTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	service.store.revoke(claims.ID, expiresAt)
	service.logger.InfoContext(ctx, "devapi_token_revoked", slog.Int64("user_id", claims.UserID))
}

// VerifyToken verifies a bearer token and rejects revoked ones.
func (service *Service) VerifyToken(tokenString string) (*sec.AuthClaims, error) {
	claims, err := service.tokens.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}
	if service.store.isRevoked(claims.ID, service.now()) {
		return nil, fmt.Errorf("devapi: token %s revoked", claims.ID)
	}
	return claims, nil
}

// # Account

// User returns the account of userID. A deleted account reads as 401.
func (service *Service) User(userID int64) (api.User, error) {
	user, ok := service.store.user(userID)
	if !ok {
		return api.User{}, apperr.Unauthorized("Unauthenticated.")
	}
	return user, nil
}

// UpdateProfile applies the non-nil fields of input.
func (service *Service) UpdateProfile(userID int64, input api.ProfileInput) (api.User, error) {
	if input.Email != nil && service.store.emailTaken(*input.Email, userID) {
		return api.User{}, taken(fieldEmail, "email")
	}

	user, ok := service.store.updateUser(userID, func(user *api.User) {
		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.WhatsappNumber != nil {
			user.WhatsappNumber = *input.WhatsappNumber
		}
	})
	if !ok {
		return api.User{}, apperr.Unauthorized("Unauthenticated.")
	}
	return user, nil
}

// # Addresses

// Addresses lists the addresses of userID.
func (service *Service) Addresses(userID int64) []api.Address {
	addresses := service.store.addressList(userID)
	if addresses == nil {
		return []api.Address{}
	}
	return addresses
}

// Address returns one address of userID.
func (service *Service) Address(userID, id int64) (api.Address, error) {
	address, ok := service.store.address(userID, id)
	if !ok {
		return api.Address{}, apperr.NotFound("Address")
	}
	return address, nil
}

// SaveAddress creates (id 0) or replaces an address of userID.
func (service *Service) SaveAddress(userID, id int64, input api.AddressInput) (api.Address, error) {
	address, ok := service.store.saveAddress(userID, api.Address{
		ID:            id,
		Label:         input.Label,
		RecipientName: input.RecipientName,
		PhoneNumber:   input.PhoneNumber,
		AddressLine:   input.AddressLine,
		Area:          input.Area,
		City:          input.City,
		PostalCode:    input.PostalCode,
		IsDefault:     input.IsDefault,
	})
	if !ok {
		return api.Address{}, apperr.NotFound("Address")
	}
	return address, nil
}

// DeleteAddress removes an address of userID.
func (service *Service) DeleteAddress(userID, id int64) error {
	if !service.store.deleteAddress(userID, id) {
		return apperr.NotFound("Address")
	}
	return nil
}

// # Seeding

// Seed creates a verified demo account. It is a no-op when the phone exists.
func (service *Service) Seed(ctx context.Context, name, phone, password string) error {
	_, err := service.Register(ctx, api.RegisterInput{Name: name, PhoneNumber: phone, Password: password})
	if err != nil {
		if apperr.IsValidation(err) {
			return nil
		}
		return err
	}

	code, _ := service.store.pendingCode(phone)
	_, err = service.VerifyOTP(ctx, phone, code)
	return err
}

// # Helpers

func (service *Service) issueOTP(ctx context.Context, phone string) error {
	code := service.options.FixedOTP
	if code == "" {
		generated, err := sec.GenerateOTP(constants.OTPLength)
		if err != nil {
			return fmt.Errorf("devapi_otp_generate_failed: %w", err)
		}
		code = generated
	}

	service.store.putOTP(phone, code, service.now().Add(constants.OTPTTL))

	// There is no SMS gateway; the log is the delivery channel.
	service.logger.InfoContext(ctx, "devapi_otp_issued",
		slog.String("phone_number", phone),
		slog.String("otp", code),
	)
	return nil
}

func (service *Service) openSession(ctx context.Context, user api.User) (*Session, error) {
	token, _, err := service.tokens.GenerateAccessToken(user.ID, user.PhoneNumber, user.Role, service.options.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("devapi_token_issue_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "devapi_session_opened", slog.Int64("user_id", user.ID))
	return &Session{User: user, Token: token}, nil
}

func taken(field, label string) error {
	return invalid(field, fmt.Sprintf("The %s has already been taken.", label))
}

func invalid(field, message string) error {
	return (&validate.Validator{}).Custom(field, true, message).Err()
}
