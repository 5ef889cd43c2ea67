package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// ContactHandler serves a user's address book.
type ContactHandler struct {
	contacts ports.ContactService
}

func NewContactHandler(contacts ports.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

type createContactRequest struct {
	WalletFields
	Name       string `json:"name" form:"name"`
	Phone      string `json:"phone" form:"phone"`
	Email      string `json:"email" form:"email"`
	Address    string `json:"address" form:"address"`
	IsFavorite bool   `json:"isFavorite" form:"isFavorite"`
}

type updateContactRequest struct {
	WalletFields
	Name       *string `json:"name"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
	Address    *string `json:"address"`
	IsFavorite *bool   `json:"isFavorite"`
}

type deleteContactRequest struct {
	WalletFields
}

type contactResponse struct {
	Message string          `json:"message"`
	Contact *domain.Contact `json:"contact"`
}

type contactsResponse struct {
	Contacts []domain.Contact `json:"contacts"`
}

type favoriteContactsResponse struct {
	FavoriteContacts []domain.Contact `json:"favoriteContacts"`
}

// Create adds an entry to the caller's address book.
//
// @Summary      Create contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        body  body      createContactRequest  true  "Credentials plus contact"
// @Success      201   {object}  contactResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var req createContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	contact, err := h.contacts.Create(c.Request().Context(), credentials(c, req.WalletFields), ports.CreateContactInput{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contactResponse{Message: "Contact created successfully", Contact: contact})
}

// List returns every contact owned by a wallet. Public.
//
// @Summary      List contacts
// @Tags         contacts
// @Produce      json
// @Param        walletAddress  path      string  true  "Owner wallet address"
// @Success      200            {object}  contactsResponse
// @Failure      400            {object}  map[string]string
// @Router       /api/contacts/{walletAddress} [get]
func (h *ContactHandler) List(c echo.Context) error {
	contacts, err := h.contacts.List(c.Request().Context(), c.Param("walletAddress"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contactsResponse{Contacts: contacts})
}

// Favorites returns the favorite contacts of a wallet. Public.
//
// @Summary      List favorite contacts
// @Tags         contacts
// @Produce      json
// @Param        walletAddress  path      string  true  "Owner wallet address"
// @Success      200            {object}  favoriteContactsResponse
// @Failure      400            {object}  map[string]string
// @Router       /api/contacts/favorites/{walletAddress} [get]
func (h *ContactHandler) Favorites(c echo.Context) error {
	contacts, err := h.contacts.Favorites(c.Request().Context(), c.Param("walletAddress"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, favoriteContactsResponse{FavoriteContacts: contacts})
}

// Update changes fields of a contact the caller owns. Absent fields are kept.
//
// @Summary      Update contact
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        contactId  path      string                true  "Contact id"
// @Param        body       body      updateContactRequest  true  "Credentials plus fields to change"
// @Success      200        {object}  contactResponse
// @Failure      400        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /api/contacts/{contactId} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	var req updateContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	contact, err := h.contacts.Update(c.Request().Context(), credentials(c, req.WalletFields), c.Param("contactId"), domain.ContactUpdate{
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		IsFavorite: req.IsFavorite,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contactResponse{Message: "Contact updated successfully", Contact: contact})
}

// Delete removes a contact the caller owns.
//
// @Summary      Delete contact
// @Tags         contacts
// @Produce      json
// @Param        contactId           path      string  true   "Contact id"
// @Param        X-Wallet-Address    header    string  false  "Wallet address"
// @Param        X-Wallet-Signature  header    string  false  "Signature"
// @Success      200                 {object}  map[string]string
// @Failure      400                 {object}  map[string]string
// @Failure      403                 {object}  map[string]string
// @Failure      404                 {object}  map[string]string
// @Router       /api/contacts/{contactId} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	var req deleteContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.contacts.Delete(c.Request().Context(), credentials(c, req.WalletFields), c.Param("contactId")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Contact deleted successfully"})
}
