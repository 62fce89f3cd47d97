package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/northernisles/sage/server/dialogue"
)

// GetCharacterProfile returns Adam's character sheet.
// GET /api/v1/character
func (s *APIV1Service) GetCharacterProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, dialogue.DefaultCharacterProfile())
}
