package controllers

import (
	"net/http"
	"time"

	dbpkg "corujoticket/db"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
)

type CaixaRequest struct {
	Matricula   string  `json:"matricula" form:"matricula"`
	Nome        string  `json:"nome" form:"nome"`
	Valor       float64 `json:"valor" form:"valor"`
	Comprovante string  `json:"comprovante" form:"comprovante"`
}

func dataOperacaoHoje() string {
	return time.Now().Format("2006-01-02")
}

// GET /api/caixa (validated)
// Lançamentos do dia do atendente logado, mais novo primeiro.
func GetCaixa(c *gin.Context) {
	usuario, ok := GetUsuarioLogado(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	dataOperacao := c.Query("data_operacao")
	if dataOperacao == "" {
		dataOperacao = dataOperacaoHoje()
	}

	var itens []models.Caixa
	err := db.Where("usuario_id = ? AND data_operacao = ?", usuario.ID, dataOperacao).
		Order("created_at desc, id desc").
		Find(&itens).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var total float64
	fechado := false
	for _, item := range itens {
		total += item.Valor
		if item.Fechado {
			fechado = true
		}
	}

	RespondSuccess(c, gin.H{
		"caixa":         itens,
		"total":         total,
		"fechado":       fechado,
		"data_operacao": dataOperacao,
	})
}

// POST /api/caixa (validated)
// Rejeitado depois do fechamento do dia.
func CreateCaixa(c *gin.Context) {
	usuario, ok := GetUsuarioLogado(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req CaixaRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Matricula == "" {
		RespondError(c, "matricula é obrigatória", http.StatusBadRequest)
		return
	}
	if req.Nome == "" {
		RespondError(c, "nome é obrigatório", http.StatusBadRequest)
		return
	}
	if req.Valor <= 0 {
		RespondError(c, "valor deve ser maior que zero", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	dataOperacao := dataOperacaoHoje()

	var fechados int
	err := db.Model(&models.Caixa{}).
		Where("usuario_id = ? AND data_operacao = ? AND fechado = ?", usuario.ID, dataOperacao, true).
		Count(&fechados).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if fechados > 0 {
		RespondError(c, "caixa do dia já está fechado", http.StatusConflict)
		return
	}

	item := models.Caixa{
		UsuarioID:    usuario.ID,
		Matricula:    req.Matricula,
		Nome:         req.Nome,
		Valor:        req.Valor,
		Comprovante:  req.Comprovante,
		DataOperacao: dataOperacao,
		Fechado:      false,
	}
	if err := db.Create(&item).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"caixa": item})
}

// POST /api/caixa/fechar (validated)
// Fecha o caixa do dia do atendente logado. Idempotente.
func FecharCaixa(c *gin.Context) {
	usuario, ok := GetUsuarioLogado(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	dataOperacao := dataOperacaoHoje()

	var itens []models.Caixa
	err := db.Where("usuario_id = ? AND data_operacao = ?", usuario.ID, dataOperacao).
		Find(&itens).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if len(itens) == 0 {
		RespondError(c, "não há itens no caixa para fechar", http.StatusBadRequest)
		return
	}

	err = db.Model(&models.Caixa{}).
		Where("usuario_id = ? AND data_operacao = ?", usuario.ID, dataOperacao).
		Update("fechado", true).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	var total float64
	for _, item := range itens {
		total += item.Valor
	}

	RespondSuccess(c, gin.H{"fechado": true, "total": total, "itens": len(itens)})
}
