package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/guda/guda-backend/internal/core/domain"
	"github.com/guda/guda-backend/internal/core/ports"
)

// ThemeHandler serves CSS theme records. Reads are public.
type ThemeHandler struct {
	themes ports.ThemeService
}

func NewThemeHandler(themes ports.ThemeService) *ThemeHandler {
	return &ThemeHandler{themes: themes}
}

// themeRequest is a theme payload plus admin credentials in the same body.
type themeRequest struct {
	WalletFields
	domain.Theme
}

type themeResponse struct {
	Message string        `json:"message,omitempty"`
	Theme   *domain.Theme `json:"theme"`
}

type themesResponse struct {
	Themes []domain.Theme `json:"themes"`
}

// Create stores a new theme. color and fontSize are required.
//
// @Summary      Create theme
// @Tags         css
// @Accept       json
// @Produce      json
// @Param        body  body      themeRequest  true  "Admin credentials plus theme"
// @Success      201   {object}  themeResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/css [post]
func (h *ThemeHandler) Create(c echo.Context) error {
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.Theme.ID = ""

	theme, err := h.themes.Create(c.Request().Context(), credentials(c, req.WalletFields), &req.Theme)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, themeResponse{Message: "CSS created successfully", Theme: theme})
}

// List returns every theme.
//
// @Summary      List themes
// @Tags         css
// @Produce      json
// @Success      200  {object}  themesResponse
// @Router       /api/css [get]
func (h *ThemeHandler) List(c echo.Context) error {
	themes, err := h.themes.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themesResponse{Themes: themes})
}

// Get returns one theme.
//
// @Summary      Get theme
// @Tags         css
// @Produce      json
// @Param        id   path      string  true  "Theme id"
// @Success      200  {object}  themeResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/css/{id} [get]
func (h *ThemeHandler) Get(c echo.Context) error {
	theme, err := h.themes.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Theme: theme})
}

// Update applies the supplied fields to a theme; absent fields are kept.
//
// @Summary      Update theme
// @Tags         css
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Theme id"
// @Param        body  body      themeRequest  true  "Admin credentials plus fields to change"
// @Success      200   {object}  themeResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/css/{id} [put]
func (h *ThemeHandler) Update(c echo.Context) error {
	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.Theme.ID = ""

	theme, err := h.themes.Update(c.Request().Context(), credentials(c, req.WalletFields), c.Param("id"), &req.Theme)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, themeResponse{Message: "CSS updated successfully", Theme: theme})
}

// Delete removes a theme.
//
// @Summary      Delete theme
// @Tags         css
// @Produce      json
// @Param        id                  path      string  true   "Theme id"
// @Param        X-Wallet-Address    header    string  false  "Wallet address"
// @Param        X-Wallet-Signature  header    string  false  "Signature"
// @Success      200                 {object}  map[string]string
// @Failure      400                 {object}  map[string]string
// @Failure      403                 {object}  map[string]string
// @Failure      404                 {object}  map[string]string
// @Router       /api/css/{id} [delete]
func (h *ThemeHandler) Delete(c echo.Context) error {
	var req credentialsOnlyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.themes.Delete(c.Request().Context(), credentials(c, req.WalletFields), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "CSS deleted successfully"})
}
