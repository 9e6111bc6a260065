package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agendahub/agenda-api/internal/httperr"
)

// providerIDFromParam lê :providerID; devolve 0 com resposta já
// escrita quando o parâmetro é inválido
func providerIDFromParam(c *gin.Context) uint {
	id, err := strconv.ParseUint(c.Param("providerID"), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_provider_id", "Prestador inválido.")
		return 0
	}
	return uint(id)
}

func idFromParam(c *gin.Context, name string) uint {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0
	}
	return uint(id)
}
