package controllers

import (
	"net/http"
	"net/url"
	"time"

	dbpkg "corujoticket/db"
	"corujoticket/models"
	"corujoticket/tools"

	"github.com/gin-gonic/gin"
)

// POST /api/reset-senha (public)
// Gera um código de recuperação e enfileira o webhook que entrega o código.
// A resposta é sempre genérica para não revelar se o email existe.
func RequestPasswordReset(c *gin.Context) {
	var req struct {
		Email string `json:"email" form:"email"`
	}
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		RespondError(c, "email é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	resposta := gin.H{"status": "se o email existir, o código foi enviado"}

	var usuario models.Usuario
	if err := db.Where("email = ? AND ativo = ?", req.Email, true).First(&usuario).Error; err != nil {
		RespondSuccess(c, resposta)
		return
	}

	codigo := tools.RandomString(conf.Security.ResetCodeLen)
	expira := time.Now().Add(1 * time.Hour)

	err := db.Model(&usuario).Updates(map[string]any{
		"codigo_reset":        codigo,
		"codigo_reset_expira": &expira,
	}).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if conf.Webhooks.ResetSenha != "" {
		params := url.Values{}
		params.Set("codigo", codigo)
		params.Set("email", usuario.Email)

		now := time.Now()
		notificacao := models.Notificacao{
			Tipo:        models.NOTIFICACAO_TIPO_RESET_SENHA,
			URL:         conf.Webhooks.ResetSenha + "?" + params.Encode(),
			Status:      models.NOTIFICACAO_STATUS_PENDING,
			ScheduledAt: &now,
		}
		if err := db.Create(&notificacao).Error; err != nil {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
	}

	RespondSuccess(c, resposta)
}

// POST /api/reset-senha/confirmar (public)
func ConfirmPasswordReset(c *gin.Context) {
	var req struct {
		Email     string `json:"email" form:"email"`
		Codigo    string `json:"codigo" form:"codigo"`
		NovaSenha string `json:"nova_senha" form:"nova_senha"`
	}
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Codigo == "" || req.NovaSenha == "" {
		RespondError(c, "email, codigo e nova_senha são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var usuario models.Usuario
	if err := db.Where("email = ?", req.Email).First(&usuario).Error; err != nil {
		RespondError(c, "código inválido", http.StatusUnauthorized)
		return
	}
	if usuario.CodigoReset == "" || usuario.CodigoReset != req.Codigo {
		RespondError(c, "código inválido", http.StatusUnauthorized)
		return
	}
	if usuario.CodigoResetExpira == nil || time.Now().After(*usuario.CodigoResetExpira) {
		RespondError(c, "código expirado", http.StatusUnauthorized)
		return
	}

	err := db.Model(&usuario).Updates(map[string]any{
		"senha":               tools.EncodeSenha(usuario.Email, req.NovaSenha),
		"codigo_reset":        "",
		"codigo_reset_expira": nil,
	}).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"status": "senha atualizada"})
}
