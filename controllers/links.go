package controllers

import (
	"net/http"
	"time"

	dbpkg "corujoticket/db"
	apperrors "corujoticket/errors"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
)

type LinkRequest struct {
	TicketID int64  `json:"ticket_id" form:"ticket_id"`
	Link     string `json:"link" form:"link"`
}

// GET /api/links (validated)
// Equipe de whatsapp vê os próprios links, supervisão vê todos.
func GetLinks(c *gin.Context) {
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

	var links []models.Link
	if err := query.Find(&links).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"links": links})
}

// POST /api/links (validated)
func CreateLink(c *gin.Context) {
	usuario, ok := GetUsuarioLogado(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req LinkRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.TicketID <= 0 {
		RespondError(c, "ticket_id é obrigatório", http.StatusBadRequest)
		return
	}
	if req.Link == "" {
		RespondError(c, "link é obrigatório", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if err := db.First(&models.Ticket{}, req.TicketID).Error; err != nil {
		RespondError(c, "ticket não encontrado", http.StatusNotFound)
		return
	}

	link := models.Link{
		UsuarioID: usuario.ID,
		TicketID:  req.TicketID,
		Link:      req.Link,
		Status:    models.LINK_STATUS_ATIVO,
	}
	if err := db.Create(&link).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"link": link})
}

// PUT /api/links/:id/usado (validated)
func MarcarLinkUsado(c *gin.Context) {
	transicionarLink(c, models.LINK_STATUS_USADO)
}

// PUT /api/links/:id/expirado (validated)
func MarcarLinkExpirado(c *gin.Context) {
	transicionarLink(c, models.LINK_STATUS_EXPIRADO)
}

// transicionarLink move um link ativo para estado terminal. O WHERE no status
// garante que estado terminal não volta atrás nem troca de terminal.
func transicionarLink(c *gin.Context, statusFinal string) {
	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var link models.Link
	if err := db.First(&link, id).Error; err != nil {
		RespondError(c, "link não encontrado", http.StatusNotFound)
		return
	}

	updates := map[string]any{"status": statusFinal}
	if statusFinal == models.LINK_STATUS_USADO {
		now := time.Now()
		updates["usado_at"] = &now
	}

	res := db.Model(&models.Link{}).
		Where("id = ? AND status = ?", id, models.LINK_STATUS_ATIVO).
		Updates(updates)
	if res.Error != nil {
		RespondError(c, res.Error.Error(), http.StatusBadRequest)
		return
	}
	if res.RowsAffected == 0 {
		RespondDomainError(c, apperrors.ErrJaResolvido)
		return
	}

	if err := db.First(&link, id).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"link": link})
}
