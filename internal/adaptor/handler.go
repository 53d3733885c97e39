package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"food-delivery/internal/usecase"
	"food-delivery/pkg/storage"
	"food-delivery/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageUploader stores multipart uploads and drops them again when the
// request that carried them fails.
type ImageUploader interface {
	Save(r io.Reader) (string, error)
	Remove(ref string) error
}

type Handler struct {
	Auth     *AuthHandler
	Customer *CustomerHandler
}

func NewHandler(service *usecase.Service, images ImageUploader, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, images, config, log.With(zap.String("handler", "auth"))),
		Customer: NewCustomerHandler(service.Customer, images, config.Upload.MaxBytes, log.With(zap.String("handler", "customer"))),
	}
}

// clientError maps a service error to the status and message a client sees.
type clientError struct {
	err     error
	status  int
	message string
}

var clientErrors = []clientError{
	{usecase.ErrInvalidOrExpiredOTP, http.StatusBadRequest, "Invalid or expired OTP"},
	{usecase.ErrInvalidOrExpiredToken, http.StatusBadRequest, "Invalid or expired token"},
	{usecase.ErrAlreadyVerified, http.StatusBadRequest, "Email already verified"},
	{storage.ErrInvalidImage, http.StatusBadRequest, "Only jpeg, png, gif and webp images are allowed"},
	{storage.ErrImageTooLarge, http.StatusBadRequest, "Image exceeds the maximum upload size"},
	{usecase.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{usecase.ErrIncorrectPassword, http.StatusUnauthorized, "Current password is incorrect"},
	{usecase.ErrExpiredToken, http.StatusUnauthorized, "Token has expired"},
	{usecase.ErrInvalidToken, http.StatusUnauthorized, "Invalid or expired token"},
	{usecase.ErrAccountDeactivated, http.StatusForbidden, "Account has been deactivated. Please contact support."},
	{usecase.ErrForbidden, http.StatusForbidden, "Access denied. Admin privileges required."},
	{usecase.ErrConcurrentUpdate, http.StatusConflict, "Account was modified by another request, please retry"},
	{usecase.ErrAccountNotFound, http.StatusNotFound, "Customer not found"},
	{usecase.ErrAddressNotFound, http.StatusNotFound, "Address not found"},
}

// handleServiceError writes the error response for err. Overrides are
// matched before the shared table so an operation can word a known error
// its own way.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string, overrides ...clientError) {
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields)
		return
	}

	var duplicateErr *usecase.DuplicateIdentityError
	if errors.As(err, &duplicateErr) {
		log.Warn(operation+" failed - already registered", zap.String("field", duplicateErr.Field))
		utils.ResponseBadRequest(w, usecase.DuplicateMessage(duplicateErr), nil)
		return
	}

	for _, table := range [][]clientError{overrides, clientErrors} {
		for _, ce := range table {
			if errors.Is(err, ce.err) {
				log.Warn(operation+" failed", zap.Error(err), zap.Int("status", ce.status))
				utils.ResponseJSON(w, ce.status, false, ce.message, nil)
				return
			}
		}
	}

	log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
	utils.ResponseInternalError(w, "Internal server error")
}

// decodeJSON reports false after writing a 400 when the body is not valid JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}

// parseMultipart caps the body at the upload limit plus room for the text fields.
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+1<<20)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseBadRequest(w, "Image exceeds the maximum upload size", nil)
			return false
		}
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return false
	}
	return true
}

// saveUpload stores the file in the "upload" field. A request without one
// yields nil.
func saveUpload(r *http.Request, images ImageUploader) (*string, error) {
	file, _, err := r.FormFile("upload")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ref, err := images.Save(file)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func discardUpload(images ImageUploader, ref *string, log *zap.Logger) {
	if ref == nil {
		return
	}
	if err := images.Remove(*ref); err != nil {
		log.Warn("Failed to remove orphaned upload", zap.String("ref", *ref), zap.Error(err))
	}
}

func formString(r *http.Request, key string) *string {
	if _, ok := r.MultipartForm.Value[key]; !ok {
		return nil
	}
	v := r.FormValue(key)
	return &v
}

func parseIDParam(w http.ResponseWriter, raw, message string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.ResponseNotFound(w, message)
		return uuid.Nil, false
	}
	return id, true
}

func parseInt(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return val
}

// parseBool reads "true"/"false" filters; anything else means no filter.
func parseBool(s string) *bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &b
}

func currentCustomer(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}
