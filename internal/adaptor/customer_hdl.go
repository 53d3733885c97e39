package adaptor

import (
	"encoding/json"
	"net/http"

	"food-delivery/internal/dto/request"
	"food-delivery/internal/usecase"
	"food-delivery/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CustomerHandler struct {
	service   usecase.CustomerService
	images    ImageUploader
	maxUpload int64
	log       *zap.Logger
}

func NewCustomerHandler(service usecase.CustomerService, images ImageUploader, maxUpload int64, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		service:   service,
		images:    images,
		maxUpload: maxUpload,
		log:       log,
	}
}

// GetProfile handles GET /api/customers/profile
func (h *CustomerHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}

	customer, err := h.service.GetProfile(r.Context(), customerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get profile")
		return
	}

	utils.ResponseSuccess(w, "Profile retrieved successfully", utils.Payload{"customer": customer})
}

// profileFromForm reads the editable profile fields of a multipart form.
// notificationPreferences arrives as a JSON document in a text field.
func profileFromForm(r *http.Request) (request.UpdateProfileRequest, bool) {
	req := request.UpdateProfileRequest{
		Name:     formString(r, "name"),
		Phone:    formString(r, "phone"),
		Language: formString(r, "language"),
		FCMToken: formString(r, "fcmToken"),
	}

	if raw := formString(r, "notificationPreferences"); raw != nil && *raw != "" {
		var prefs request.NotificationPreferencesRequest
		if err := json.Unmarshal([]byte(*raw), &prefs); err != nil {
			return req, false
		}
		req.NotificationPreferences = &prefs
	}
	return req, true
}

// UpdateProfile handles PUT /api/customers/profile. Accepts JSON or a
// multipart form with an optional "upload" image.
func (h *CustomerHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}

	var req request.UpdateProfileRequest
	var profileImage *string

	if isMultipart(r) {
		if !parseMultipart(w, r, h.maxUpload) {
			return
		}
		if req, ok = profileFromForm(r); !ok {
			utils.ResponseBadRequest(w, "Invalid notification preferences", nil)
			return
		}

		ref, err := saveUpload(r, h.images)
		if err != nil {
			handleServiceError(w, h.log, err, "update profile upload")
			return
		}
		profileImage = ref
	} else if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.service.UpdateProfile(r.Context(), customerID, &req, profileImage)
	if err != nil {
		discardUpload(h.images, profileImage, h.log)
		handleServiceError(w, h.log, err, "update profile")
		return
	}

	utils.ResponseSuccess(w, "Profile updated successfully", utils.Payload{"customer": customer})
}

// UploadPhoto handles POST /api/customers/profile/upload-photo
func (h *CustomerHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}

	if !isMultipart(r) {
		utils.ResponseBadRequest(w, "No file uploaded", nil)
		return
	}
	if !parseMultipart(w, r, h.maxUpload) {
		return
	}

	profileImage, err := saveUpload(r, h.images)
	if err != nil {
		handleServiceError(w, h.log, err, "upload photo")
		return
	}
	if profileImage == nil {
		utils.ResponseBadRequest(w, "No file uploaded", nil)
		return
	}

	customer, err := h.service.UpdateProfile(r.Context(), customerID, &request.UpdateProfileRequest{}, profileImage)
	if err != nil {
		discardUpload(h.images, profileImage, h.log)
		handleServiceError(w, h.log, err, "upload photo")
		return
	}

	utils.ResponseSuccess(w, "Profile photo uploaded successfully", utils.Payload{
		"profileImage": *profileImage,
		"customer":     customer,
	})
}

// ChangePassword handles POST /api/customers/profile/change-password
func (h *CustomerHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}

	var req request.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ChangePassword(r.Context(), customerID, &req); err != nil {
		handleServiceError(w, h.log, err, "change password")
		return
	}

	utils.ResponseSuccess(w, "Password changed successfully", nil)
}

// Deactivate handles POST /api/customers/profile/deactivate
func (h *CustomerHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}

	if err := h.service.Deactivate(r.Context(), customerID); err != nil {
		handleServiceError(w, h.log, err, "deactivate account")
		return
	}

	utils.ResponseSuccess(w, "Account deactivated successfully", nil)
}

// GetAddresses handles GET /api/customers/addresses
func (h *CustomerHandler) GetAddresses(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}

	addresses, err := h.service.GetAddresses(r.Context(), customerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get addresses")
		return
	}

	utils.ResponseSuccess(w, "Addresses retrieved successfully", utils.Payload{
		"addresses":        addresses.Addresses,
		"defaultAddressId": addresses.DefaultAddressID,
	})
}

// AddAddress handles POST /api/customers/addresses
func (h *CustomerHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}

	var req request.AddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	address, err := h.service.AddAddress(r.Context(), customerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "add address")
		return
	}

	utils.ResponseCreated(w, "Address added successfully", utils.Payload{"address": address})
}

// UpdateAddress handles PUT /api/customers/addresses/{addressId}
func (h *CustomerHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}
	addressID, ok := parseIDParam(w, chi.URLParam(r, "addressId"), "Address not found")
	if !ok {
		return
	}

	var req request.AddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	address, err := h.service.UpdateAddress(r.Context(), customerID, addressID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update address")
		return
	}

	utils.ResponseSuccess(w, "Address updated successfully", utils.Payload{"address": address})
}

// DeleteAddress handles DELETE /api/customers/addresses/{addressId}
func (h *CustomerHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}
	addressID, ok := parseIDParam(w, chi.URLParam(r, "addressId"), "Address not found")
	if !ok {
		return
	}

	addresses, err := h.service.DeleteAddress(r.Context(), customerID, addressID)
	if err != nil {
		handleServiceError(w, h.log, err, "delete address")
		return
	}

	utils.ResponseSuccess(w, "Address deleted successfully", utils.Payload{
		"addresses":        addresses.Addresses,
		"defaultAddressId": addresses.DefaultAddressID,
	})
}

// SetDefaultAddress handles POST /api/customers/addresses/{addressId}/set-default
func (h *CustomerHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	customerID, ok := currentCustomer(w, r)
	if !ok {
		return
	}
	addressID, ok := parseIDParam(w, chi.URLParam(r, "addressId"), "Address not found")
	if !ok {
		return
	}

	addresses, err := h.service.SetDefaultAddress(r.Context(), customerID, addressID)
	if err != nil {
		handleServiceError(w, h.log, err, "set default address")
		return
	}

	utils.ResponseSuccess(w, "Default address set successfully", utils.Payload{
		"addresses":        addresses.Addresses,
		"defaultAddressId": addresses.DefaultAddressID,
	})
}

// GetAll handles GET /api/customers (admin)
func (h *CustomerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.CustomerListRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:  parseInt(query.Get("page"), 1),
			Limit: parseInt(query.Get("limit"), request.DefaultPageLimit),
		},
		IsVerified: parseBool(query.Get("isVerified")),
		IsActive:   parseBool(query.Get("isActive")),
	}

	page, err := h.service.GetAll(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list customers")
		return
	}

	utils.ResponseSuccess(w, "Customers retrieved successfully", utils.Payload{
		"customers":  page.Data,
		"pagination": page.Pagination,
	})
}

// GetByID handles GET /api/customers/{id} (admin)
func (h *CustomerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseIDParam(w, chi.URLParam(r, "id"), "Customer not found")
	if !ok {
		return
	}

	customer, err := h.service.GetByID(r.Context(), customerID)
	if err != nil {
		handleServiceError(w, h.log, err, "get customer")
		return
	}

	utils.ResponseSuccess(w, "Customer retrieved successfully", utils.Payload{"customer": customer})
}

// UpdateByID handles PUT /api/customers/{id} (admin)
func (h *CustomerHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseIDParam(w, chi.URLParam(r, "id"), "Customer not found")
	if !ok {
		return
	}

	var req request.AdminUpdateCustomerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.service.UpdateByID(r.Context(), customerID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update customer")
		return
	}

	utils.ResponseSuccess(w, "Customer updated successfully", utils.Payload{"customer": customer})
}

// Delete handles DELETE /api/customers/{id} (admin)
func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	customerID, ok := parseIDParam(w, chi.URLParam(r, "id"), "Customer not found")
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), customerID); err != nil {
		handleServiceError(w, h.log, err, "delete customer")
		return
	}

	actorID, _ := utils.GetUserIDFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())
	h.log.Info("Customer deleted",
		zap.String("customer_id", customerID.String()),
		zap.String("actor_id", actorID.String()),
		zap.String("actor_role", role))

	utils.ResponseSuccess(w, "Customer deleted successfully", nil)
}
