package controllers

import (
	"net/http"

	dbpkg "corujoticket/db"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
)

// GET /api/valores-mensalidades (validated)
func GetValoresMensalidades(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var valores []models.ValorMensalidade
	if err := db.Where("ativo = ?", true).Order("quantidade asc").Find(&valores).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"valores": valores})
}

// POST /api/valores-mensalidades (supervisor)
func CreateValorMensalidade(c *gin.Context) {
	var vm models.ValorMensalidade
	if err := c.Bind(&vm); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if vm.Quantidade <= 0 {
		RespondError(c, "quantidade deve ser maior que zero", http.StatusBadRequest)
		return
	}
	if vm.Valor <= 0 {
		RespondError(c, "valor deve ser maior que zero", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	vm.ID = 0
	vm.Ativo = true
	if err := db.Create(&vm).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"valor": vm})
}

// PUT /api/valores-mensalidades/:id (supervisor)
func UpdateValorMensalidade(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body models.ValorMensalidade
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if body.Valor <= 0 {
		RespondError(c, "valor deve ser maior que zero", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var vm models.ValorMensalidade
	if err := db.First(&vm, id).Error; err != nil {
		RespondError(c, "valor de mensalidade não encontrado", http.StatusNotFound)
		return
	}

	if err := db.Model(&vm).Update("valor", body.Valor).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"valor": vm})
}

// DELETE /api/valores-mensalidades/:id (supervisor)
// Desativa em vez de apagar, preservando o histórico de sugestões.
func DeleteValorMensalidade(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var vm models.ValorMensalidade
	if err := db.First(&vm, id).Error; err != nil {
		RespondError(c, "valor de mensalidade não encontrado", http.StatusNotFound)
		return
	}

	if err := db.Model(&vm).Update("ativo", false).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"status": "desativado"})
}
