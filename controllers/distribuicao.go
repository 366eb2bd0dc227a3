package controllers

import (
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"corujoticket/config"
	dbpkg "corujoticket/db"
	apperrors "corujoticket/errors"
	"corujoticket/metrics"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

var conf config.Configuration

// SetConfigurations injeta a configuração carregada no main.
func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

type DistribuicaoRequest struct {
	UsuarioID  int64  `json:"usuario_id" form:"usuario_id"`
	Categoria  string `json:"categoria" form:"categoria"`
	Quantidade int    `json:"quantidade" form:"quantidade"`
}

// Serializa pedidos concorrentes por categoria: a seleção de disponíveis e o
// insert do lote precisam ser um passo só por categoria, senão dois pedidos
// simultâneos alocam os mesmos clientes.
var (
	categoriaMuMu sync.Mutex
	categoriaMus  = map[string]*sync.Mutex{}
)

func lockCategoria(categoria string) *sync.Mutex {
	categoriaMuMu.Lock()
	defer categoriaMuMu.Unlock()
	mu, ok := categoriaMus[categoria]
	if !ok {
		mu = &sync.Mutex{}
		categoriaMus[categoria] = mu
	}
	return mu
}

func validarDistribuicao(db *gorm.DB, usuarioID int64, categoria string, quantidade, max int) (models.Usuario, error) {
	var usuario models.Usuario
	if quantidade <= 0 || quantidade > max {
		return usuario, &apperrors.DistribuicaoError{
			UsuarioID: usuarioID, Categoria: categoria, Quantidade: quantidade,
			Err: apperrors.ErrQuantidadeInvalida,
		}
	}
	if !models.IsCategoriaValida(categoria) {
		return usuario, &apperrors.DistribuicaoError{
			UsuarioID: usuarioID, Categoria: categoria, Quantidade: quantidade,
			Err: apperrors.ErrNaoEncontrado,
		}
	}
	if err := db.First(&usuario, usuarioID).Error; err != nil {
		return usuario, &apperrors.DistribuicaoError{
			UsuarioID: usuarioID, Categoria: categoria, Quantidade: quantidade,
			Err: apperrors.ErrNaoEncontrado,
		}
	}
	return usuario, nil
}

// DistribuirConsumo aloca `quantidade` clientes ativos da categoria para o
// usuário (política de consumo). A disponibilidade é "cliente ativo da
// categoria sem nenhuma linha em clientes_distribuidos apontando pra ele";
// consumo é implícito pela referência, nunca um flag em clientes.
//
// Ou aloca a quantidade inteira ou falha sem inserir nada.
func DistribuirConsumo(db *gorm.DB, usuarioID int64, categoria string, quantidade, max int) ([]models.ClienteDistribuido, error) {
	if _, err := validarDistribuicao(db, usuarioID, categoria, quantidade, max); err != nil {
		return nil, err
	}

	mu := lockCategoria(categoria)
	mu.Lock()
	defer mu.Unlock()

	tx := db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, tx.Error)
	}

	var clientes []models.Cliente
	err := tx.
		Where("categoria = ? AND ativo = ?", categoria, true).
		Where("id NOT IN (SELECT cliente_id FROM clientes_distribuidos)").
		Order("id asc").
		Limit(quantidade).
		Find(&clientes).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
	}

	if len(clientes) < quantidade {
		tx.Rollback()
		metrics.DistribuicoesRecusadasTotal.WithLabelValues(categoria).Inc()
		return nil, &apperrors.DistribuicaoError{
			UsuarioID: usuarioID, Categoria: categoria, Quantidade: quantidade,
			Err: apperrors.ErrPoolInsuficiente,
		}
	}

	now := time.Now()
	distribuidos := make([]models.ClienteDistribuido, 0, len(clientes))
	for _, cliente := range clientes {
		cd := models.ClienteDistribuido{
			ClienteID:        cliente.ID,
			UsuarioID:        usuarioID,
			Matricula:        cliente.Matricula,
			Nome:             cliente.Nome,
			Telefone:         cliente.Telefone,
			Categoria:        cliente.Categoria,
			Status:           models.DISTRIBUIDO_STATUS_PENDENTE,
			DataDistribuicao: &now,
		}
		if err := tx.Create(&cd).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
		}
		distribuidos = append(distribuidos, cd)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
	}

	metrics.ClientesDistribuidosTotal.WithLabelValues(categoria).Add(float64(len(distribuidos)))
	return distribuidos, nil
}

// DistribuirDelegada repassa o pedido para o webhook da planilha (política
// delegada): valida os parâmetros, resolve a aba de destino pelo mês de
// referência e enfileira a notificação. Não insere clientes_distribuidos;
// o fan-out final acontece fora do sistema.
func DistribuirDelegada(db *gorm.DB, usuarioID int64, categoria string, quantidade, max int, webhookURL string) (models.Notificacao, error) {
	var notificacao models.Notificacao

	usuario, err := validarDistribuicao(db, usuarioID, categoria, quantidade, max)
	if err != nil {
		return notificacao, err
	}
	if usuario.IDPlanilha == "" {
		return notificacao, fmt.Errorf("o usuário selecionado não possui ID da planilha configurado")
	}

	var cfg models.ConfiguracaoSupervisor
	if err := db.First(&cfg).Error; err != nil || cfg.MesReferente == "" {
		return notificacao, fmt.Errorf("mês de referência não configurado")
	}

	params := url.Values{}
	params.Set("usuario_id", usuario.IDPlanilha)
	params.Set("categoria", categoria)
	params.Set("aba_destino", cfg.MesReferente)
	params.Set("quantidade", fmt.Sprintf("%d", quantidade))

	now := time.Now()
	notificacao = models.Notificacao{
		Tipo:        models.NOTIFICACAO_TIPO_DISTRIBUICAO,
		URL:         webhookURL + "?" + params.Encode(),
		Status:      models.NOTIFICACAO_STATUS_PENDING,
		ScheduledAt: &now,
	}
	if err := db.Create(&notificacao).Error; err != nil {
		return notificacao, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
	}

	return notificacao, nil
}

// ClientesDisponiveis conta, por categoria, quantos clientes ativos ainda não
// foram consumidos por nenhuma distribuição.
func ClientesDisponiveis(db *gorm.DB) (map[string]int, error) {
	disponiveis := make(map[string]int, len(models.CategoriasCliente))
	for _, categoria := range models.CategoriasCliente {
		var count int
		err := db.Model(&models.Cliente{}).
			Where("categoria = ? AND ativo = ?", categoria, true).
			Where("id NOT IN (SELECT cliente_id FROM clientes_distribuidos)").
			Count(&count).Error
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
		}
		disponiveis[categoria] = count
	}
	return disponiveis, nil
}

// POST /api/distribuicao (supervisor)
func DistribuirClientes(c *gin.Context) {
	var req DistribuicaoRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	if conf.DistribuicaoPolitica == config.DISTRIBUICAO_POLITICA_DELEGADA {
		notificacao, err := DistribuirDelegada(db, req.UsuarioID, req.Categoria, req.Quantidade,
			conf.DistribuicaoQtdMax, conf.Webhooks.Planilha)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		RespondSuccess(c, gin.H{"politica": conf.DistribuicaoPolitica, "notificacao": notificacao})
		return
	}

	distribuidos, err := DistribuirConsumo(db, req.UsuarioID, req.Categoria, req.Quantidade,
		conf.DistribuicaoQtdMax)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondSuccess(c, gin.H{"politica": conf.DistribuicaoPolitica, "clientes_distribuidos": distribuidos})
}

// GET /api/distribuicao/disponiveis (supervisor)
func GetClientesDisponiveis(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	disponiveis, err := ClientesDisponiveis(db)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondSuccess(c, gin.H{"disponiveis": disponiveis})
}

// DELETE /api/clientes-distribuidos/pendentes (supervisor)
// Faxina administrativa: remove alocações ainda pendentes para redistribuição.
// Linhas já resolvidas nunca são tocadas.
func LimparClientesPendentes(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	res := db.Delete(&models.ClienteDistribuido{}, "status = ?", models.DISTRIBUIDO_STATUS_PENDENTE)
	if res.Error != nil {
		RespondError(c, res.Error.Error(), http.StatusBadRequest)
		return
	}
	RespondSuccess(c, gin.H{"removidos": res.RowsAffected})
}
