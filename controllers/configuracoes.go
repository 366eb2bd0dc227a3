package controllers

import (
	"net/http"

	dbpkg "corujoticket/db"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// GET /api/configuracoes (supervisor)
func GetConfiguracoesSupervisor(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var cfg models.ConfiguracaoSupervisor
	if err := db.First(&cfg).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondSuccess(c, gin.H{"configuracao": nil})
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"configuracao": cfg})
}

// PUT /api/configuracoes (supervisor)
// Cria a linha única na primeira gravação.
func UpdateConfiguracoesSupervisor(c *gin.Context) {
	var body models.ConfiguracaoSupervisor
	if err := c.Bind(&body); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if body.MesReferente == "" {
		RespondError(c, "mes_referente é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var cfg models.ConfiguracaoSupervisor
	err := db.First(&cfg).Error
	if err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
		cfg = models.ConfiguracaoSupervisor{MesReferente: body.MesReferente}
		if err := db.Create(&cfg).Error; err != nil {
			RespondError(c, err.Error(), http.StatusBadRequest)
			return
		}
		RespondSuccess(c, gin.H{"configuracao": cfg})
		return
	}

	if err := db.Model(&cfg).Update("mes_referente", body.MesReferente).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"configuracao": cfg})
}
