package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	dbpkg "corujoticket/db"
	apperrors "corujoticket/errors"
	"corujoticket/metrics"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// categoriaTicket deriva a categoria do ticket da forma de pagamento da
// ligação: pix vira "Pix", o resto vira "Link".
func categoriaTicket(formaPagamento string) string {
	if formaPagamento == models.FORMA_PAGAMENTO_PIX {
		return models.TICKET_CATEGORIA_PIX
	}
	return models.TICKET_CATEGORIA_LINK
}

// EnviarTicket abre um ticket de cobrança a partir de uma ligação atendida e
// enfileira o webhook de despacho. Criação do ticket + flag na ligação são uma
// transação; a notificação é entregue depois pelo worker e pode falhar sem
// desfazer o ticket.
//
// Uma ligação gera no máximo um ticket: o update condicional em ticket_gerado
// garante isso mesmo com chamadas concorrentes.
func EnviarTicket(db *gorm.DB, usuario models.Usuario, ligacaoID int64, observacoes string, webhookURL string) (models.Ticket, error) {
	var ticket models.Ticket

	var ligacao models.Ligacao
	if err := db.First(&ligacao, ligacaoID).Error; err != nil {
		return ticket, apperrors.ErrNaoEncontrado
	}
	if ligacao.Status != models.LIGACAO_STATUS_ATENDEU {
		return ticket, fmt.Errorf("só ligações atendidas geram ticket")
	}
	if ligacao.TicketGerado {
		return ticket, apperrors.ErrJaResolvido
	}

	if observacoes == "" {
		observacoes = ligacao.Observacoes
	}

	tx := db.Begin()
	if tx.Error != nil {
		return ticket, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, tx.Error)
	}

	ticket = models.Ticket{
		UsuarioID:       ligacao.UsuarioID,
		Matricula:       ligacao.Matricula,
		Nome:            ligacao.Nome,
		Valor:           ligacao.Valor,
		QtdMensalidades: ligacao.QtdMensalidades,
		Telefone:        ligacao.Telefone,
		Categoria:       categoriaTicket(ligacao.FormaPagamento),
		Observacoes:     observacoes,
	}
	if err := tx.Create(&ticket).Error; err != nil {
		tx.Rollback()
		return ticket, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
	}

	res := tx.Model(&models.Ligacao{}).
		Where("id = ? AND ticket_gerado = ?", ligacao.ID, false).
		Updates(map[string]any{"ticket_gerado": true, "ticket_id": ticket.ID})
	if res.Error != nil {
		tx.Rollback()
		return ticket, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, res.Error)
	}
	if res.RowsAffected == 0 {
		tx.Rollback()
		return ticket, apperrors.ErrJaResolvido
	}

	if webhookURL != "" {
		params := url.Values{}
		params.Set("atendente", usuario.Nome)
		params.Set("matricula", ticket.Matricula)
		params.Set("nome", ticket.Nome)
		params.Set("valor", fmt.Sprintf("%.2f", ticket.Valor))
		params.Set("qtd", fmt.Sprintf("%d", ticket.QtdMensalidades))
		params.Set("telefone", ticket.Telefone)
		params.Set("categoria", ticket.Categoria)

		now := time.Now()
		notificacao := models.Notificacao{
			Tipo:        models.NOTIFICACAO_TIPO_TICKET,
			URL:         webhookURL + "?" + params.Encode(),
			Status:      models.NOTIFICACAO_STATUS_PENDING,
			ScheduledAt: &now,
		}
		if err := tx.Create(&notificacao).Error; err != nil {
			tx.Rollback()
			return ticket, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ticket, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
	}

	metrics.TicketsCriadosTotal.Inc()
	return ticket, nil
}

// POST /api/ligacoes/:id/ticket (validated)
func EnviarTicketDaLigacao(c *gin.Context) {
	usuario, ok := GetUsuarioLogado(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Observacoes string `json:"observacoes" form:"observacoes"`
	}
	_ = c.Bind(&body)

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var ligacao models.Ligacao
	if err := db.First(&ligacao, id).Error; err != nil {
		RespondError(c, "ligação não encontrada", http.StatusNotFound)
		return
	}
	if ligacao.UsuarioID != usuario.ID && usuario.Perfil != models.USUARIO_PERFIL_SUPERVISAO {
		RespondError(c, "ligação de outro atendente", http.StatusForbidden)
		return
	}

	ticket, err := EnviarTicket(db, usuario, id, body.Observacoes, conf.Webhooks.Ticket)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondSuccess(c, gin.H{"ticket": ticket})
}

// GET /api/tickets (validated)
// Atendente vê os próprios tickets, supervisão vê todos.
func GetTickets(c *gin.Context) {
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

	query := db.Order("created_at desc, id desc")
	if usuario.Perfil != models.USUARIO_PERFIL_SUPERVISAO {
		query = query.Where("usuario_id = ?", usuario.ID)
	}

	var tickets []models.Ticket
	if err := query.Find(&tickets).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"tickets": tickets})
}

// GET /api/tickets/matricula/:matricula (validated)
// Busca o ticket mais recente da matrícula para pré-preencher formulários.
func BuscarTicketPorMatricula(c *gin.Context) {
	matricula := c.Param("matricula")
	if matricula == "" {
		RespondError(c, "matricula é obrigatória", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var ticket models.Ticket
	err := db.Where("matricula = ?", matricula).
		Order("created_at desc, id desc").
		First(&ticket).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			RespondSuccess(c, gin.H{"ticket": nil})
			return
		}
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"ticket": ticket})
}

// PUT /api/tickets/:id/enviado (validated)
func MarcarTicketEnviado(c *gin.Context) {
	atualizarFlagTicket(c, "enviado", "data_envio")
}

// PUT /api/tickets/:id/pago (validated)
func MarcarTicketPago(c *gin.Context) {
	atualizarFlagTicket(c, "pago", "data_pagamento")
}

func atualizarFlagTicket(c *gin.Context, flag string, campoData string) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var ticket models.Ticket
	if err := db.First(&ticket, id).Error; err != nil {
		RespondError(c, "ticket não encontrado", http.StatusNotFound)
		return
	}

	now := time.Now()
	err := db.Model(&models.Ticket{}).
		Where("id = ?", id).
		Updates(map[string]any{flag: true, campoData: &now}).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if err := db.First(&ticket, id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"ticket": ticket})
}
