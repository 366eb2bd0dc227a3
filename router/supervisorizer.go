package router

import (
	"net/http"

	"corujoticket/controllers"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
)

// Supervisorizer blocks access when user is not a supervisor.
func Supervisorizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		usuario, ok := controllers.GetUsuarioLogado(c)
		if !ok {
			controllers.RespondError(c, "unauthorized", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if usuario.Perfil != models.USUARIO_PERFIL_SUPERVISAO {
			controllers.RespondError(c, "acesso restrito à supervisão", http.StatusForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
