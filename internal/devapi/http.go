// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package devapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/shopfront/internal/platform/constants"
	"github.com/taibuivan/shopfront/internal/platform/middleware"
	requestutil "github.com/taibuivan/shopfront/internal/platform/request"
	"github.com/taibuivan/shopfront/internal/platform/respond"
	"github.com/taibuivan/shopfront/internal/platform/validate"
	"github.com/taibuivan/shopfront/internal/storefront/api"
)

// # Definitions & Constructors

// Handler implements the store API endpoints.
type Handler struct {
	service *Service
	flat    bool
}

// NewHandler constructs a [Handler]. flat selects the flattened envelope.
func NewHandler(service *Service, flat bool) *Handler {
	return &Handler{service: service, flat: flat}
}

// Routes returns the /store routes.
//
// # Endpoints
//   - POST /auth/register, /auth/send-otp, /auth/verify-otp, /auth/login
//   - GET /account/me, POST /account/logout
//   - GET|PUT /account/profile
//   - GET|POST /account/addresses, GET|PUT|DELETE /account/addresses/{id}
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Route("/auth", func(auth chi.Router) {
		auth.Post("/register", handler.register)
		auth.Post("/send-otp", handler.sendOTP)
		auth.Post("/verify-otp", handler.verifyOTP)
		auth.Post("/login", handler.login)
	})

	// Protected endpoints
	router.Route("/account", func(account chi.Router) {
		account.Use(middleware.RequireAuth)

		account.Get("/me", handler.me)
		account.Post("/logout", handler.logout)
		account.Get("/profile", handler.me)
		account.Put("/profile", handler.updateProfile)

		account.Get("/addresses", handler.listAddresses)
		account.Post("/addresses", handler.createAddress)
		account.Get("/addresses/{id}", handler.showAddress)
		account.Put("/addresses/{id}", handler.updateAddress)
		account.Delete("/addresses/{id}", handler.deleteAddress)
	})

	return router
}

// reply writes a success body in the configured envelope shape.
func (handler *Handler) reply(writer http.ResponseWriter, status int, message string, data any) {
	if handler.flat {
		respond.Flat(writer, status, message, data)
		return
	}
	respond.Envelope(writer, status, message, data)
}

// # Request Payloads

type phoneRequest struct {
	PhoneNumber string `json:"phone_number"`
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	OTP         string `json:"otp"`
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// userData is the `{user}` payload of account answers.
type userData struct {
	User api.User `json:"user"`
}

// # Authentication

/*
register handles account creation.

POST /api/v1/store/auth/register

Response:
  - 201: {user}
  - 422: invalid fields, phone number or email taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input api.RegisterInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(fieldName, input.Name).
		MaxLen(fieldName, input.Name, maxNameLength).
		Required(fieldPhoneNumber, input.PhoneNumber).
		Phone(fieldPhoneNumber, input.PhoneNumber).
		Email(fieldEmail, input.Email).
		Phone(fieldWhatsappNumber, input.WhatsappNumber).
		Required(fieldPassword, input.Password).
		MinLen(fieldPassword, input.Password, minPasswordLength).
		Confirmed(fieldPassword, input.Password, input.PasswordConfirmation)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, http.StatusCreated, "Registration successful. Please verify your phone number.", userData{User: user})
}

/*
sendOTP issues a fresh code.

POST /api/v1/store/auth/send-otp

Response:
  - 200: message only
  - 422: unknown phone number
  - 429: too many codes requested
*/
func (handler *Handler) sendOTP(writer http.ResponseWriter, request *http.Request) {
	var input phoneRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(fieldPhoneNumber, input.PhoneNumber).Phone(fieldPhoneNumber, input.PhoneNumber)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SendOTP(request.Context(), input.PhoneNumber); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, http.StatusOK, "OTP sent successfully.", nil)
}

/*
verifyOTP confirms a code and opens a session.

POST /api/v1/store/auth/verify-otp

Response:
  - 200: {user, token}
  - 422: wrong or expired code
*/
func (handler *Handler) verifyOTP(writer http.ResponseWriter, request *http.Request) {
	var input verifyOTPRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(fieldPhoneNumber, input.PhoneNumber).
		Required(fieldOTP, input.OTP).
		Digits(fieldOTP, input.OTP, constants.OTPLength)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.VerifyOTP(request.Context(), input.PhoneNumber, input.OTP)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, http.StatusOK, "Phone number verified successfully.", session)
}

/*
login authenticates with phone number and password.

POST /api/v1/store/auth/login

Response:
  - 200: {user, token}
  - 401: invalid credentials
  - 403: phone number not verified
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(fieldPhoneNumber, input.PhoneNumber).Required(fieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input.PhoneNumber, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, http.StatusOK, "Login successful.", session)
}

// # Account

// me handles GET /account/me and GET /account/profile.
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.User(userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, http.StatusOK, "", userData{User: user})
}

// logout handles POST /account/logout by revoking the presented token.
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.service.Logout(request.Context(), claims)
	handler.reply(writer, http.StatusOK, "Logged out successfully.", nil)
}

/*
updateProfile applies a partial profile update.

PUT /api/v1/store/account/profile

Response:
  - 200: {user}
  - 422: invalid fields or email taken
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input api.ProfileInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(fieldName, *input.Name).MaxLen(fieldName, *input.Name, maxNameLength)
	}
	if input.Email != nil {
		validator.Email(fieldEmail, *input.Email)
	}
	if input.WhatsappNumber != nil {
		validator.Phone(fieldWhatsappNumber, *input.WhatsappNumber)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.service.UpdateProfile(userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, http.StatusOK, "Profile updated successfully.", userData{User: user})
}

// # Addresses

func (handler *Handler) listAddresses(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Lists are always nested: there are no fields to spread.
	respond.OK(writer, "", handler.service.Addresses(userID))
}

func (handler *Handler) showAddress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	address, err := handler.service.Address(userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, http.StatusOK, "", address)
}

func (handler *Handler) createAddress(writer http.ResponseWriter, request *http.Request) {
	handler.saveAddress(writer, request, 0, http.StatusCreated, "Address created successfully.")
}

func (handler *Handler) updateAddress(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")
	if id == 0 {
		id = -1
	}
	handler.saveAddress(writer, request, id, http.StatusOK, "Address updated successfully.")
}

// saveAddress validates the body and creates (id 0) or replaces an address.
// A negative id never matches an address.
func (handler *Handler) saveAddress(writer http.ResponseWriter, request *http.Request, id int64, status int, message string) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input api.AddressInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(fieldLabel, input.Label).
		Required(fieldRecipientName, input.RecipientName).
		Required(fieldPhoneNumber, input.PhoneNumber).
		Phone(fieldPhoneNumber, input.PhoneNumber).
		Required(fieldAddressLine, input.AddressLine).
		MaxLen(fieldAddressLine, input.AddressLine, maxAddressLineLength).
		Required(fieldCity, input.City)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	address, err := handler.service.SaveAddress(userID, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, status, message, address)
}

func (handler *Handler) deleteAddress(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteAddress(userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.reply(writer, http.StatusOK, "Address deleted successfully.", nil)
}
