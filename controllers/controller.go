package controllers

import (
	"errors"
	"net/http"

	apperrors "corujoticket/errors"

	"github.com/gin-gonic/gin"
)

func RespondError(c *gin.Context, msg string, code int) {
	c.JSON(code, gin.H{"error": msg})
}

func RespondSuccess(c *gin.Context, payload any) {
	c.JSON(200, payload)
}

// RespondDomainError traduz os erros do núcleo para mensagem + status HTTP.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrQuantidadeInvalida):
		RespondError(c, "quantidade inválida", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrPoolInsuficiente):
		RespondError(c, "não há clientes suficientes na categoria", http.StatusConflict)
	case errors.Is(err, apperrors.ErrJaResolvido):
		RespondError(c, "este registro já foi resolvido", http.StatusConflict)
	case errors.Is(err, apperrors.ErrNaoEncontrado):
		RespondError(c, "registro não encontrado", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrIndisponivel):
		RespondError(c, "armazenamento indisponível, tente novamente", http.StatusServiceUnavailable)
	default:
		RespondError(c, err.Error(), http.StatusBadRequest)
	}
}
