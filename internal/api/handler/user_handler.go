package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// UserHandler serves user registration, profile and KYC document routes.
type UserHandler struct {
	users     ports.UserService
	maxUpload int64
}

func NewUserHandler(users ports.UserService, maxUpload int64) *UserHandler {
	return &UserHandler{users: users, maxUpload: maxUpload}
}

// --- Request / Response types ---

type walletAuthRequest struct {
	WalletFields
}

type registerUserRequest struct {
	WalletAddress string `json:"walletAddress" form:"walletAddress" validate:"required,eth_addr"`
	Name          string `json:"name" form:"name"`
	Email         string `json:"email" form:"email" validate:"omitempty,email"`
	UpiID         string `json:"upiId" form:"upiId"`
	Mobile        string `json:"mobile" form:"mobile"`
}

type updateUserRequest struct {
	WalletFields
	Name   string `json:"name" form:"name"`
	Email  string `json:"email" form:"email"`
	UpiID  string `json:"upiId" form:"upiId"`
	Mobile string `json:"mobile" form:"mobile"`
}

type userResponse struct {
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user"`
}

type balancesResponse struct {
	WalletAddress string           `json:"walletAddress"`
	Balances      *domain.Balances `json:"balances"`
}

// Authenticate verifies a user's wallet signature.
//
// @Summary      Authenticate a user by wallet signature
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      walletAuthRequest  true  "Wallet address and signature over the challenge message"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/auth/wallet [post]
func (h *UserHandler) Authenticate(c echo.Context) error {
	var req walletAuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Authenticate(c.Request().Context(), credentials(c, req.WalletFields))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Message: "User authenticated successfully!", User: user})
}

// Register creates a user profile. Open to any caller.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerUserRequest  true  "User profile"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/user [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), ports.RegisterUserInput{
		WalletAddress: req.WalletAddress,
		Name:          req.Name,
		Email:         req.Email,
		UpiID:         req.UpiID,
		Mobile:        req.Mobile,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userResponse{Message: "User profile created successfully!", User: user})
}

// UpdateProfile changes the caller's own profile fields.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateUserRequest  true  "Credentials plus fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/user [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), credentials(c, req.WalletFields), ports.UserProfileUpdate{
		Name:   req.Name,
		Email:  req.Email,
		UpiID:  req.UpiID,
		Mobile: req.Mobile,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Message: "User profile updated successfully!", User: user})
}

// UploadProfilePic stores a new profile picture for the caller.
//
// @Summary      Upload profile picture
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        walletAddress  formData  string  true  "Wallet address"
// @Param        signature      formData  string  true  "Signature"
// @Param        profilePic     formData  file    true  "Image file"
// @Success      200            {object}  userResponse
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      413            {object}  map[string]string
// @Router       /api/user/profile-pic [post]
func (h *UserHandler) UploadProfilePic(c echo.Context) error {
	file, closeFile, err := formFile(c, fieldProfilePic, h.maxUpload)
	if err != nil {
		return err
	}
	defer closeFile()

	user, err := h.users.UploadProfilePic(c.Request().Context(), formCredentials(c), file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Message: "Profile picture updated successfully!", User: user})
}

// UploadDocument encrypts and stores a KYC document for the caller.
//
// @Summary      Upload KYC document
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        walletAddress  formData  string  true  "Wallet address"
// @Param        signature      formData  string  true  "Signature"
// @Param        documentType   formData  string  true  "PAN, AADHAR or DL"
// @Param        document       formData  file    true  "Document file"
// @Success      200            {object}  userResponse
// @Failure      400            {object}  map[string]string
// @Failure      403            {object}  map[string]string
// @Failure      503            {object}  map[string]string
// @Router       /api/user/document [post]
func (h *UserHandler) UploadDocument(c echo.Context) error {
	file, closeFile, err := formFile(c, fieldDocument, h.maxUpload)
	if err != nil {
		return err
	}
	defer closeFile()

	docType := domain.DocumentType(c.FormValue(fieldDocumentType))
	user, err := h.users.UploadDocument(c.Request().Context(), formCredentials(c), docType, file)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Message: "Document uploaded successfully!", User: user})
}

// DownloadDocument streams one of the caller's documents, decrypted.
//
// @Summary      Download own KYC document
// @Tags         users
// @Produce      octet-stream
// @Param        index               path      int     true  "Document position"
// @Param        X-Wallet-Address    header    string  true  "Wallet address"
// @Param        X-Wallet-Signature  header    string  true  "Signature"
// @Success      200
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/user/document/{index} [get]
func (h *UserHandler) DownloadDocument(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "index must be an integer")
	}

	doc, content, err := h.users.ReadDocument(c.Request().Context(), credentials(c, WalletFields{}), index)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		"attachment; filename=\""+string(doc.Type)+doc.Extension+"\"")
	return c.Blob(http.StatusOK, echo.MIMEOctetStream, content)
}

// GetByWallet returns a user profile. Public.
//
// @Summary      Get user by wallet address
// @Tags         users
// @Produce      json
// @Param        walletAddress  path      string  true  "Wallet address"
// @Success      200            {object}  userResponse
// @Failure      400            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/user/wallet/{walletAddress} [get]
func (h *UserHandler) GetByWallet(c echo.Context) error {
	user, err := h.users.GetByWallet(c.Request().Context(), c.Param("walletAddress"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Balances returns the stored token balances of a user. Public.
//
// @Summary      Get user balances
// @Tags         users
// @Produce      json
// @Param        walletAddress  path      string  true  "Wallet address"
// @Success      200            {object}  balancesResponse
// @Failure      400            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Router       /api/user/balances/{walletAddress} [get]
func (h *UserHandler) Balances(c echo.Context) error {
	wallet := c.Param("walletAddress")
	balances, err := h.users.Balances(c.Request().Context(), wallet)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, balancesResponse{WalletAddress: domain.NormalizeAddress(wallet), Balances: balances})
}
