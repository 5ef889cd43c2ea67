package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// AdminHandler serves admin self-management and admin-only user operations.
// Every route runs the admin gate.
type AdminHandler struct {
	admins    ports.AdminService
	maxUpload int64
}

func NewAdminHandler(admins ports.AdminService, maxUpload int64) *AdminHandler {
	return &AdminHandler{admins: admins, maxUpload: maxUpload}
}

type newAdminFields struct {
	WalletAddress string `json:"walletAddress"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	UpiID         string `json:"upiId"`
}

type createAdminRequest struct {
	WalletFields
	Admin newAdminFields `json:"admin"`
}

type updateAdminRequest struct {
	WalletFields
	Name  string `json:"name" form:"name"`
	Email string `json:"email" form:"email"`
	UpiID string `json:"upiId" form:"upiId"`
}

type credentialsOnlyRequest struct {
	WalletFields
}

type kycRequest struct {
	WalletFields
	KYCStatus *bool `json:"kycStatus"`
}

type adminResponse struct {
	Message string        `json:"message,omitempty"`
	Admin   *domain.Admin `json:"admin"`
}

type adminsResponse struct {
	Admins []domain.Admin `json:"admins"`
}

type usersResponse struct {
	Users []domain.User `json:"users"`
}

// Authenticate verifies an admin's wallet signature.
//
// @Summary      Authenticate an admin by wallet signature
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsOnlyRequest  true  "Wallet address and signature"
// @Success      200   {object}  adminResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/admin/auth/wallet [post]
func (h *AdminHandler) Authenticate(c echo.Context) error {
	var req credentialsOnlyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	admin, err := h.admins.Authenticate(c.Request().Context(), credentials(c, req.WalletFields))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Message: "Admin authenticated successfully!", Admin: admin})
}

// Create registers another admin.
//
// @Summary      Create admin
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createAdminRequest  true  "Caller credentials plus the new admin"
// @Success      201   {object}  adminResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/admin [post]
func (h *AdminHandler) Create(c echo.Context) error {
	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	admin, err := h.admins.Create(c.Request().Context(), credentials(c, req.WalletFields), ports.RegisterAdminInput{
		WalletAddress: req.Admin.WalletAddress,
		Name:          req.Admin.Name,
		Email:         req.Admin.Email,
		UpiID:         req.Admin.UpiID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, adminResponse{Message: "Admin created successfully!", Admin: admin})
}

// List returns every admin.
//
// @Summary      List admins
// @Tags         admin
// @Produce      json
// @Param        walletAddress  query     string  false  "Wallet address (or X-Wallet-Address header)"
// @Param        signature      query     string  false  "Signature (or X-Wallet-Signature header)"
// @Success      200            {object}  adminsResponse
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/admin [get]
func (h *AdminHandler) List(c echo.Context) error {
	admins, err := h.admins.List(c.Request().Context(), credentials(c, WalletFields{}))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminsResponse{Admins: admins})
}

// Self returns the caller's own admin record.
//
// @Summary      Own admin record
// @Tags         admin
// @Produce      json
// @Param        walletAddress  query     string  false  "Wallet address (or X-Wallet-Address header)"
// @Param        signature      query     string  false  "Signature (or X-Wallet-Signature header)"
// @Success      200            {object}  adminResponse
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/admin/by-wallet [get]
func (h *AdminHandler) Self(c echo.Context) error {
	admin, err := h.admins.Self(c.Request().Context(), credentials(c, WalletFields{}))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Admin: admin})
}

// Update changes the caller's name, email or UPI id.
//
// @Summary      Update own admin record
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      updateAdminRequest  true  "Credentials plus fields to change"
// @Success      200   {object}  adminResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/admin [put]
func (h *AdminHandler) Update(c echo.Context) error {
	var req updateAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	admin, err := h.admins.Update(c.Request().Context(), credentials(c, req.WalletFields), ports.AdminUpdate{
		Name:  req.Name,
		Email: req.Email,
		UpiID: req.UpiID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Message: "Admin updated successfully!", Admin: admin})
}

// UploadProfilePic stores a new profile picture for the caller.
//
// @Summary      Upload admin profile picture
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        walletAddress  formData  string  true  "Wallet address"
// @Param        signature      formData  string  true  "Signature"
// @Param        profilePic     formData  file    true  "Image file"
// @Success      200            {object}  adminResponse
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      413            {object}  map[string]string
// @Router       /api/admin/profile-pic [post]
func (h *AdminHandler) UploadProfilePic(c echo.Context) error {
	file, closeFile, err := formFile(c, fieldProfilePic, h.maxUpload)
	if err != nil {
		return err
	}
	defer closeFile()

	admin, err := h.admins.UploadProfilePic(c.Request().Context(), formCredentials(c), file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Message: "Profile picture uploaded successfully!", Admin: admin})
}

// Delete removes the admin named by adminWalletAddress, or the caller when
// it is absent.
//
// @Summary      Delete admin
// @Tags         admin
// @Produce      json
// @Param        adminWalletAddress  query     string  false  "Admin to delete (defaults to the caller)"
// @Param        X-Wallet-Address    header    string  false  "Wallet address"
// @Param        X-Wallet-Signature  header    string  false  "Signature"
// @Success      200                 {object}  map[string]string
// @Failure      400                 {object}  map[string]string
// @Failure      403                 {object}  map[string]string
// @Failure      404                 {object}  map[string]string
// @Router       /api/admin [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	var req credentialsOnlyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.admins.Delete(c.Request().Context(), credentials(c, req.WalletFields), c.QueryParam("adminWalletAddress"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Admin deleted successfully!"})
}

// SetUserKYC sets a user's KYC flag. A missing user is never created.
//
// @Summary      Update user KYC status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        walletAddress  path      string      true  "User wallet address"
// @Param        body           body      kycRequest  true  "Admin credentials plus kycStatus"
// @Success      200            {object}  userResponse
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/admin/user/kyc/{walletAddress} [put]
func (h *AdminHandler) SetUserKYC(c echo.Context) error {
	var req kycRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.admins.SetUserKYC(c.Request().Context(), credentials(c, req.WalletFields), c.Param("walletAddress"), req.KYCStatus)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Message: "KYC status updated successfully!", User: user})
}

// ListUsers returns every user.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Param        walletAddress  query     string  false  "Wallet address (or X-Wallet-Address header)"
// @Param        signature      query     string  false  "Signature (or X-Wallet-Signature header)"
// @Success      200            {object}  usersResponse
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admins.ListUsers(c.Request().Context(), credentials(c, WalletFields{}))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, usersResponse{Users: users})
}

// DeleteUser removes the user named by userWalletAddress.
//
// @Summary      Delete user
// @Tags         admin
// @Produce      json
// @Param        userWalletAddress   query     string  true   "User to delete"
// @Param        X-Wallet-Address    header    string  false  "Wallet address"
// @Param        X-Wallet-Signature  header    string  false  "Signature"
// @Success      200                 {object}  map[string]string
// @Failure      400                 {object}  map[string]string
// @Failure      403                 {object}  map[string]string
// @Failure      404                 {object}  map[string]string
// @Router       /api/admin/user [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	var req credentialsOnlyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.admins.DeleteUser(c.Request().Context(), credentials(c, req.WalletFields), c.QueryParam("userWalletAddress"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully!"})
}

// CountAllTransactions tallies transactions across every user by status.
//
// @Summary      Transaction counts across all users
// @Tags         admin
// @Produce      json
// @Param        walletAddress  query     string  false  "Wallet address (or X-Wallet-Address header)"
// @Param        signature      query     string  false  "Signature (or X-Wallet-Signature header)"
// @Success      200            {object}  transactionCountsResponse
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/admin/transactions/count [get]
func (h *AdminHandler) CountAllTransactions(c echo.Context) error {
	counts, err := h.admins.CountAllTransactions(c.Request().Context(), credentials(c, WalletFields{}))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transactionCountsResponse{TransactionCounts: counts})
}
