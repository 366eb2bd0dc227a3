package controllers

import (
	"net/http"
	"strconv"

	dbpkg "corujoticket/db"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
)

// GET /api/clientes (supervisor)
// Carteira master de clientes ativos.
func GetClientes(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	query := db.Where("ativo = ?", true)
	if categoria := c.Query("categoria"); categoria != "" {
		query = query.Where("categoria = ?", categoria)
	}

	var clientes []models.Cliente
	if err := query.Order("nome asc").Find(&clientes).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"clientes": clientes})
}

// POST /api/clientes (supervisor)
func CreateCliente(c *gin.Context) {
	var cliente models.Cliente
	if err := c.Bind(&cliente); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if campo := cliente.MissingFields(); campo != "" {
		RespondError(c, campo+" é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	cliente.ID = 0
	cliente.Ativo = true
	if err := db.Create(&cliente).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"cliente": cliente})
}

// POST /api/clientes/importar (supervisor)
// Importa um lote de clientes de uma vez; linhas inválidas derrubam o lote
// inteiro antes de qualquer insert.
func ImportarClientes(c *gin.Context) {
	var body struct {
		Clientes []models.Cliente `json:"clientes"`
	}
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if len(body.Clientes) == 0 {
		RespondError(c, "clientes é obrigatório", http.StatusBadRequest)
		return
	}

	for i, cliente := range body.Clientes {
		if campo := cliente.MissingFields(); campo != "" {
			RespondError(c, campo+" é obrigatório (linha "+strconv.Itoa(i+1)+")", http.StatusBadRequest)
			return
		}
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	tx := db.Begin()
	importados := make([]models.Cliente, 0, len(body.Clientes))
	for _, cliente := range body.Clientes {
		cliente.ID = 0
		cliente.Ativo = true
		if err := tx.Create(&cliente).Error; err != nil {
			tx.Rollback()
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
		importados = append(importados, cliente)
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"importados": len(importados), "clientes": importados})
}

// PUT /api/clientes/:id/ativo (supervisor)
// Único campo mutável da carteira.
func AtivarDesativarCliente(c *gin.Context) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Ativo bool `json:"ativo" form:"ativo"`
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

	var cliente models.Cliente
	if err := db.First(&cliente, id).Error; err != nil {
		RespondError(c, "cliente não encontrado", http.StatusNotFound)
		return
	}

	if err := db.Model(&cliente).Update("ativo", body.Ativo).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"cliente": cliente})
}
