package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/internal/i18n"
	"voyago/internal/schemas"
	"voyago/internal/utils"
)

// I18nHdl defines the interface for serving the static translations.
type I18nHdl interface {
	ListLocales(c *gin.Context)
	GetTranslations(c *gin.Context)
}

type I18nHandler struct{}

// NewI18nHandler returns a new I18nHandler.
func NewI18nHandler() I18nHdl {
	return &I18nHandler{}
}

// ListLocales returns the supported locales.
func (handler *I18nHandler) ListLocales(c *gin.Context) {
	utils.WriteAndLogResponse(c, i18n.Locales(), http.StatusOK)
}

// GetTranslations returns the raw dictionary for one locale.
func (handler *I18nHandler) GetTranslations(c *gin.Context) {
	locale := c.Param(utils.LocaleKey)

	translations, err := i18n.Translations(locale)
	if err != nil {
		utils.WriteAndLogError(c, schemas.LocaleNotFound, http.StatusNotFound, err)
		return
	}

	c.Data(http.StatusOK, "application/json", translations)
}
