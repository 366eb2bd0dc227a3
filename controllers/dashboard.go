package controllers

import (
	"net/http"
	"time"

	dbpkg "corujoticket/db"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type EstatisticasGerais struct {
	TotalUsuarios int     `json:"total_usuarios"`
	TotalTickets  int     `json:"total_tickets"`
	TotalLigacoes int     `json:"total_ligacoes"`
	TotalLinks    int     `json:"total_links"`
	TotalCaixa    float64 `json:"total_caixa"`
	TicketsHoje   int     `json:"tickets_hoje"`
	LigacoesHoje  int     `json:"ligacoes_hoje"`
	CaixaHoje     float64 `json:"caixa_hoje"`
}

type EstatisticaLigacaoUsuario struct {
	UsuarioID int64  `json:"usuario_id"`
	Nome      string `json:"nome"`
	Total     int    `json:"total"`
	Atendidas int    `json:"atendidas"`
}

type EstatisticaLinkUsuario struct {
	UsuarioID int64  `json:"usuario_id"`
	Nome      string `json:"nome"`
	Total     int    `json:"total"`
	Usados    int    `json:"usados"`
}

func inicioDoDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EstatisticasSupervisao agrega os números do painel geral da supervisão.
func EstatisticasSupervisao(db *gorm.DB) (EstatisticasGerais, error) {
	var stats EstatisticasGerais
	hoje := inicioDoDia(time.Now())
	hojeStr := time.Now().Format("2006-01-02")

	if err := db.Model(&models.Usuario{}).Where("ativo = ?", true).Count(&stats.TotalUsuarios).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Ticket{}).Count(&stats.TotalTickets).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Ligacao{}).Count(&stats.TotalLigacoes).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Link{}).Count(&stats.TotalLinks).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Ticket{}).Where("created_at >= ?", hoje).Count(&stats.TicketsHoje).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&models.Ligacao{}).Where("created_at >= ?", hoje).Count(&stats.LigacoesHoje).Error; err != nil {
		return stats, err
	}

	var itens []models.Caixa
	if err := db.Find(&itens).Error; err != nil {
		return stats, err
	}
	for _, item := range itens {
		stats.TotalCaixa += item.Valor
		if item.DataOperacao == hojeStr {
			stats.CaixaHoje += item.Valor
		}
	}

	return stats, nil
}

// EstatisticasPorEquipe quebra os números por atendente de cada equipe.
func EstatisticasPorEquipe(db *gorm.DB) ([]EstatisticaLigacaoUsuario, []EstatisticaLinkUsuario, error) {
	var equipeLigacao []models.Usuario
	err := db.Where("ativo = ? AND perfil = ?", true, models.USUARIO_PERFIL_LIGACAO).
		Order("nome asc").Find(&equipeLigacao).Error
	if err != nil {
		return nil, nil, err
	}

	ligacoes := make([]EstatisticaLigacaoUsuario, 0, len(equipeLigacao))
	for _, usuario := range equipeLigacao {
		item := EstatisticaLigacaoUsuario{UsuarioID: usuario.ID, Nome: usuario.Nome}
		if err := db.Model(&models.Ligacao{}).Where("usuario_id = ?", usuario.ID).Count(&item.Total).Error; err != nil {
			return nil, nil, err
		}
		err := db.Model(&models.Ligacao{}).
			Where("usuario_id = ? AND status = ?", usuario.ID, models.LIGACAO_STATUS_ATENDEU).
			Count(&item.Atendidas).Error
		if err != nil {
			return nil, nil, err
		}
		ligacoes = append(ligacoes, item)
	}

	var equipeWhatsapp []models.Usuario
	err = db.Where("ativo = ? AND perfil = ?", true, models.USUARIO_PERFIL_WHATSAPP).
		Order("nome asc").Find(&equipeWhatsapp).Error
	if err != nil {
		return nil, nil, err
	}

	links := make([]EstatisticaLinkUsuario, 0, len(equipeWhatsapp))
	for _, usuario := range equipeWhatsapp {
		item := EstatisticaLinkUsuario{UsuarioID: usuario.ID, Nome: usuario.Nome}
		if err := db.Model(&models.Link{}).Where("usuario_id = ?", usuario.ID).Count(&item.Total).Error; err != nil {
			return nil, nil, err
		}
		err := db.Model(&models.Link{}).
			Where("usuario_id = ? AND status = ?", usuario.ID, models.LINK_STATUS_USADO).
			Count(&item.Usados).Error
		if err != nil {
			return nil, nil, err
		}
		links = append(links, item)
	}

	return ligacoes, links, nil
}

// GET /api/dashboard/supervisao (supervisor)
func GetDashboardSupervisao(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	stats, err := EstatisticasSupervisao(db)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	ligacoes, links, err := EstatisticasPorEquipe(db)
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{
		"geral": stats,
		"equipes": gin.H{
			"ligacao":  ligacoes,
			"whatsapp": links,
		},
	})
}

// GET /api/dashboard/ligacao (validated)
// Números do próprio atendente: fila pendente, desfechos e percentual de
// atendimento.
func GetDashboardLigacao(c *gin.Context) {
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

	var pendentes, total, atendidas int
	err := db.Model(&models.ClienteDistribuido{}).
		Where("usuario_id = ? AND status = ?", usuario.ID, models.DISTRIBUIDO_STATUS_PENDENTE).
		Count(&pendentes).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if err := db.Model(&models.Ligacao{}).Where("usuario_id = ?", usuario.ID).Count(&total).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	err = db.Model(&models.Ligacao{}).
		Where("usuario_id = ? AND status = ?", usuario.ID, models.LIGACAO_STATUS_ATENDEU).
		Count(&atendidas).Error
	if err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	percentual := 0.0
	if total > 0 {
		percentual = float64(atendidas) / float64(total) * 100
	}

	RespondSuccess(c, gin.H{
		"pendentes":            pendentes,
		"total_ligacoes":       total,
		"atendidas":            atendidas,
		"percentual_atendidas": percentual,
	})
}
