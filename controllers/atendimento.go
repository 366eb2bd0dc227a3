package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	dbpkg "corujoticket/db"
	apperrors "corujoticket/errors"
	"corujoticket/metrics"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

type AtendimentoRequest struct {
	QtdMensalidades int     `json:"qtd_mensalidades" form:"qtd_mensalidades"`
	Valor           float64 `json:"valor" form:"valor"`
	Telefone        string  `json:"telefone" form:"telefone"`
	FormaPagamento  string  `json:"forma_pagamento" form:"forma_pagamento"`
	Retorno         string  `json:"retorno" form:"retorno"`
	DataRetorno     string  `json:"data_retorno" form:"data_retorno"`
	Observacoes     string  `json:"observacoes" form:"observacoes"`
}

// transicionarDistribuido move uma alocação pendente para o status terminal.
// O WHERE no status é o guard de concorrência: duas resoluções simultâneas no
// mesmo id fazem exatamente uma vencer; a perdedora vê RowsAffected == 0.
func transicionarDistribuido(tx *gorm.DB, id int64, statusFinal string, quando time.Time) error {
	res := tx.Model(&models.ClienteDistribuido{}).
		Where("id = ? AND status = ?", id, models.DISTRIBUIDO_STATUS_PENDENTE).
		Updates(map[string]any{
			"status":           statusFinal,
			"data_atendimento": &quando,
		})
	if res.Error != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrJaResolvido
	}
	return nil
}

// MarcarNaoAtendido resolve a alocação como não atendida e registra a ligação
// correspondente, tudo em uma transação. Nenhum ticket é criado.
func MarcarNaoAtendido(db *gorm.DB, usuarioID int64, clienteDistribuidoID int64) (models.Ligacao, error) {
	var ligacao models.Ligacao

	var cd models.ClienteDistribuido
	if err := db.First(&cd, clienteDistribuidoID).Error; err != nil {
		return ligacao, apperrors.ErrNaoEncontrado
	}

	now := time.Now()
	tx := db.Begin()
	if tx.Error != nil {
		return ligacao, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, tx.Error)
	}

	if err := transicionarDistribuido(tx, cd.ID, models.DISTRIBUIDO_STATUS_NAO_ATENDIDO, now); err != nil {
		tx.Rollback()
		return ligacao, err
	}

	ligacao = models.Ligacao{
		UsuarioID:    usuarioID,
		ClienteID:    cd.ID,
		Matricula:    cd.Matricula,
		Nome:         cd.Nome,
		Telefone:     cd.Telefone,
		Status:       models.LIGACAO_STATUS_NAO_ATENDEU,
		TicketGerado: false,
	}
	if err := tx.Create(&ligacao).Error; err != nil {
		tx.Rollback()
		return ligacao, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ligacao, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
	}

	metrics.LigacoesTotal.WithLabelValues(models.LIGACAO_STATUS_NAO_ATENDEU).Inc()
	return ligacao, nil
}

// MarcarAtendido resolve a alocação como atendida com os dados informados no
// formulário e registra a ligação, em uma transação. O ticket é um passo
// separado (EnviarTicket) que pode falhar sem desfazer nada daqui.
//
// Se o valor não vier preenchido, usa o valor sugerido configurado para a
// quantidade de mensalidades; valor informado pelo atendente sempre vence.
func MarcarAtendido(db *gorm.DB, usuarioID int64, clienteDistribuidoID int64, req AtendimentoRequest) (models.Ligacao, error) {
	var ligacao models.Ligacao

	var cd models.ClienteDistribuido
	if err := db.First(&cd, clienteDistribuidoID).Error; err != nil {
		return ligacao, apperrors.ErrNaoEncontrado
	}

	if req.QtdMensalidades <= 0 {
		return ligacao, fmt.Errorf("qtd_mensalidades é obrigatório")
	}
	if req.Telefone == "" {
		return ligacao, fmt.Errorf("telefone é obrigatório")
	}
	if !models.IsFormaPagamentoValida(req.FormaPagamento) {
		return ligacao, fmt.Errorf("forma_pagamento inválida")
	}
	if !models.IsRetornoValido(req.Retorno) {
		return ligacao, fmt.Errorf("retorno inválido")
	}

	valor := req.Valor
	if valor <= 0 {
		sugerido, ok, err := ValorSugerido(db, req.QtdMensalidades)
		if err != nil {
			return ligacao, err
		}
		if !ok {
			return ligacao, fmt.Errorf("valor é obrigatório")
		}
		valor = sugerido
	}

	now := time.Now()
	tx := db.Begin()
	if tx.Error != nil {
		return ligacao, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, tx.Error)
	}

	if err := transicionarDistribuido(tx, cd.ID, models.DISTRIBUIDO_STATUS_ATENDIDO, now); err != nil {
		tx.Rollback()
		return ligacao, err
	}

	ligacao = models.Ligacao{
		UsuarioID:       usuarioID,
		ClienteID:       cd.ID,
		Matricula:       cd.Matricula,
		Nome:            cd.Nome,
		Telefone:        req.Telefone,
		Status:          models.LIGACAO_STATUS_ATENDEU,
		QtdMensalidades: req.QtdMensalidades,
		Valor:           valor,
		FormaPagamento:  req.FormaPagamento,
		Retorno:         req.Retorno,
		DataRetorno:     req.DataRetorno,
		Observacoes:     req.Observacoes,
		TicketGerado:    false,
	}
	if err := tx.Create(&ligacao).Error; err != nil {
		tx.Rollback()
		return ligacao, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return ligacao, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
	}

	metrics.LigacoesTotal.WithLabelValues(models.LIGACAO_STATUS_ATENDEU).Inc()
	return ligacao, nil
}

// ValorSugerido busca o valor fixo configurado para a quantidade de
// mensalidades. Consulta consultiva: sem configuração devolve ok == false e
// nunca bloqueia a transição.
func ValorSugerido(db *gorm.DB, quantidade int) (float64, bool, error) {
	var vm models.ValorMensalidade
	err := db.Where("quantidade = ? AND ativo = ?", quantidade, true).First(&vm).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("%w: %v", apperrors.ErrIndisponivel, err)
	}
	return vm.Valor, true, nil
}

func podeResolverDistribuido(usuario models.Usuario, cd models.ClienteDistribuido) bool {
	return cd.UsuarioID == usuario.ID || usuario.Perfil == models.USUARIO_PERFIL_SUPERVISAO
}

// GET /api/clientes-distribuidos (validated)
// Fila de pendentes do atendente logado.
func GetClientesDistribuidos(c *gin.Context) {
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

	query := db.Where("status = ?", models.DISTRIBUIDO_STATUS_PENDENTE)
	if usuario.Perfil != models.USUARIO_PERFIL_SUPERVISAO {
		query = query.Where("usuario_id = ?", usuario.ID)
	}

	var clientes []models.ClienteDistribuido
	if err := query.Order("data_distribuicao desc, id desc").Find(&clientes).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"clientes_distribuidos": clientes})
}

// POST /api/clientes-distribuidos/:id/atendeu (validated)
func AtendeuCliente(c *gin.Context) {
	usuario, ok := GetUsuarioLogado(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	var req AtendimentoRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var cd models.ClienteDistribuido
	if err := db.First(&cd, id).Error; err != nil {
		RespondError(c, "cliente distribuído não encontrado", http.StatusNotFound)
		return
	}
	if !podeResolverDistribuido(usuario, cd) {
		RespondError(c, "cliente distribuído para outro atendente", http.StatusForbidden)
		return
	}

	ligacao, err := MarcarAtendido(db, usuario.ID, id, req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondSuccess(c, gin.H{"ligacao": ligacao})
}

// POST /api/clientes-distribuidos/:id/nao-atendeu (validated)
func NaoAtendeuCliente(c *gin.Context) {
	usuario, ok := GetUsuarioLogado(c)
	if !ok {
		RespondError(c, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := ParamID(c, "id")
	if !ok {
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var cd models.ClienteDistribuido
	if err := db.First(&cd, id).Error; err != nil {
		RespondError(c, "cliente distribuído não encontrado", http.StatusNotFound)
		return
	}
	if !podeResolverDistribuido(usuario, cd) {
		RespondError(c, "cliente distribuído para outro atendente", http.StatusForbidden)
		return
	}

	ligacao, err := MarcarNaoAtendido(db, usuario.ID, id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	RespondSuccess(c, gin.H{"ligacao": ligacao})
}

// GET /api/valores-mensalidades/sugerido?quantidade=K (validated)
func GetValorSugerido(c *gin.Context) {
	quantidade, err := strconv.Atoi(c.Query("quantidade"))
	if err != nil || quantidade <= 0 {
		RespondError(c, "quantidade inválida", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	valor, ok, err := ValorSugerido(db, quantidade)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !ok {
		RespondSuccess(c, gin.H{"sugerido": false})
		return
	}
	RespondSuccess(c, gin.H{"sugerido": true, "valor": valor})
}

// GET /api/ligacoes (validated)
// Histórico: atendente vê as próprias, supervisão vê todas.
func GetLigacoes(c *gin.Context) {
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

	var ligacoes []models.Ligacao
	if err := query.Find(&ligacoes).Error; err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	RespondSuccess(c, gin.H{"ligacoes": ligacoes})
}
