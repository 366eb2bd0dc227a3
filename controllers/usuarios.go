package controllers

import (
	"net/http"

	dbpkg "corujoticket/db"
	"corujoticket/models"
	"corujoticket/tools"

	"github.com/gin-gonic/gin"
)

// GET /api/usuarios (supervisor)
func GetUsuarios(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var usuarios []models.Usuario
	if err := db.Where("ativo = ?", true).Order("nome asc").Find(&usuarios).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	for i := range usuarios {
		usuarios[i].Senha = ""
	}
	RespondSuccess(c, gin.H{"usuarios": usuarios})
}

// POST /api/usuarios (supervisor)
func CreateUsuario(c *gin.Context) {
	var usuario models.Usuario
	if err := c.Bind(&usuario); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if campo := usuario.MissingFields(); campo != "" {
		RespondError(c, campo+" é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	usuario.ID = 0
	usuario.Ativo = true
	usuario.Senha = tools.EncodeSenha(usuario.Email, usuario.Senha)

	if err := db.Create(&usuario).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	usuario.Senha = ""
	RespondSuccess(c, gin.H{"usuario": usuario})
}

// PUT /api/usuarios/:id (supervisor)
// Atualiza perfil, id_planilha, ativo e senha; email não muda.
func UpdateUsuario(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.Usuario
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var usuario models.Usuario
	if err := db.First(&usuario, id).Error; err != nil {
		RespondError(c, "usuário não encontrado", http.StatusNotFound)
		return
	}

	if body.Nome != "" {
		usuario.Nome = body.Nome
	}
	if body.Perfil != "" {
		if !models.IsPerfilValido(body.Perfil) {
			RespondError(c, "perfil inválido", http.StatusBadRequest)
			return
		}
		usuario.Perfil = body.Perfil
	}
	if body.IDPlanilha != "" {
		usuario.IDPlanilha = body.IDPlanilha
	}
	if body.Senha != "" {
		usuario.Senha = tools.EncodeSenha(usuario.Email, body.Senha)
	}
	usuario.Ativo = body.Ativo

	if err := db.Save(&usuario).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	usuario.Senha = ""
	RespondSuccess(c, gin.H{"usuario": usuario})
}

// GET /api/me (validated)
func Me(c *gin.Context) {
	usuario, ok := GetUsuarioLogado(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}
	usuario.Senha = ""
	RespondSuccess(c, gin.H{"usuario": usuario})
}

// PUT /api/me (validated)
// Auto-serviço: nome, foto de perfil e modo escuro.
func UpdateMe(c *gin.Context) {
	usuario, ok := GetUsuarioLogado(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Nome       string `json:"nome" form:"nome"`
		FotoPerfil string `json:"foto_perfil" form:"foto_perfil"`
		ModoEscuro bool   `json:"modo_escuro" form:"modo_escuro"`
		Senha      string `json:"senha" form:"senha"`
	}
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if body.Nome != "" {
		usuario.Nome = body.Nome
	}
	if body.FotoPerfil != "" {
		usuario.FotoPerfil = body.FotoPerfil
	}
	usuario.ModoEscuro = body.ModoEscuro
	if body.Senha != "" {
		usuario.Senha = tools.EncodeSenha(usuario.Email, body.Senha)
	}

	if err := db.Save(&usuario).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	usuario.Senha = ""
	RespondSuccess(c, gin.H{"usuario": usuario})
}
