package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	identityapp "github.com/printdesk/backend/internal/application/identity"
	"github.com/printdesk/backend/internal/interfaces/http/dto"
)

// LogoFormField is the multipart field carrying the logo file
const LogoFormField = "logo"

// CompanyHandler handles the company profile and public branding endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *identityapp.CompanyService
	maxLogoSize    int64
}

// NewCompanyHandler creates a new CompanyHandler. maxLogoSize <= 0 disables the size check here.
func NewCompanyHandler(companyService *identityapp.CompanyService, maxLogoSize int64) *CompanyHandler {
	return &CompanyHandler{
		companyService: companyService,
		maxLogoSize:    maxLogoSize,
	}
}

// Get godoc
// @ID           getCompany
// @Summary      Get the company profile
// @Tags         company
// @Produce      json
// @Success      200 {object} APIResponse[identityapp.CompanyResponse]
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /company [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	company, err := h.companyService.Get(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, company)
}

// Update godoc
// @ID           updateCompany
// @Summary      Update the company profile
// @Description  Replaces every editable field. The logo is changed through PUT /company/logo.
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        request body identityapp.UpdateCompanyRequest true "Company profile"
// @Success      200 {object} APIResponse[identityapp.CompanyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /company [put]
func (h *CompanyHandler) Update(c *gin.Context) {
	var req identityapp.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, company)
}

// UploadLogo godoc
// @ID           uploadCompanyLogo
// @Summary      Upload the company logo
// @Description  PNG, JPEG, SVG, WebP or GIF. The previous logo is removed from storage.
// @Tags         company
// @Accept       multipart/form-data
// @Produce      json
// @Param        logo formData file true "Logo image"
// @Success      200 {object} APIResponse[identityapp.CompanyResponse]
// @Failure      400 {object} dto.ErrorResponse
// @Failure      413 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /company/logo [put]
func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	header, err := c.FormFile(LogoFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeBodyTooLarge, "Logo file is too large")
			return
		}
		h.Error(c, http.StatusBadRequest, "INVALID_LOGO", "A logo file is required in the '"+LogoFormField+"' field")
		return
	}
	if h.maxLogoSize > 0 && header.Size > h.maxLogoSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeBodyTooLarge, "Logo file is too large")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	company, err := h.companyService.UploadLogo(c.Request.Context(), identityapp.UploadLogoInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, company)
}

// Branding godoc
// @ID           getPublicBranding
// @Summary      Public branding
// @Description  Trade name, color, contact and a temporary logo URL. No authentication.
// @Tags         public
// @Produce      json
// @Success      200 {object} APIResponse[identityapp.BrandingResponse]
// @Router       /public/branding [get]
func (h *CompanyHandler) Branding(c *gin.Context) {
	branding, err := h.companyService.Branding(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, branding)
}
