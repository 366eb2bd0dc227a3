package models

import "time"

/************************************************
/**** MARK: STATUS DE LIGACAO ****/
/************************************************/
const LIGACAO_STATUS_ATENDEU = "atendeu"
const LIGACAO_STATUS_NAO_ATENDEU = "nao_atendeu"

/************************************************
/**** MARK: FORMAS DE PAGAMENTO / RETORNO ****/
/************************************************/
const FORMA_PAGAMENTO_PIX = "pix"
const FORMA_PAGAMENTO_LINK = "link"
const FORMA_PAGAMENTO_UNIDADE = "unidade"

const RETORNO_1X = "1x"
const RETORNO_2X = "2x"
const RETORNO_3X = "3x"
const RETORNO_4MAIS = "4+"

// Ligacao é o registro imutável do desfecho de uma ligação.
// Criada uma vez por decisão de atendimento; só o par ticket_gerado/ticket_id
// é atualizado depois, quando um ticket é aberto a partir dela.
type Ligacao struct {
	ID        int64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UsuarioID int64 `gorm:"column:usuario_id;not null;index" json:"usuario_id"`
	ClienteID int64 `gorm:"column:cliente_id;index" json:"cliente_id"`

	Matricula string `gorm:"not null" json:"matricula"`
	Nome      string `gorm:"not null" json:"nome"`
	Telefone  string `gorm:"not null" json:"telefone"`
	Status    string `gorm:"not null;index" json:"status"`

	QtdMensalidades int     `gorm:"column:qtd_mensalidades;default:0" json:"qtd_mensalidades"`
	Valor           float64 `gorm:"default:0" json:"valor"`
	FormaPagamento  string  `gorm:"column:forma_pagamento;default:''" json:"forma_pagamento"`
	Retorno         string  `gorm:"default:''" json:"retorno"`
	DataRetorno     string  `gorm:"column:data_retorno;default:''" json:"data_retorno"`
	Observacoes     string  `gorm:"type:text" json:"observacoes"`

	TicketGerado bool  `gorm:"column:ticket_gerado;not null;default:false" json:"ticket_gerado"`
	TicketID     int64 `gorm:"column:ticket_id;default:0" json:"ticket_id"`

	CreatedAt *time.Time `json:"created_at"`
}

func (Ligacao) TableName() string {
	return "ligacoes"
}

func IsFormaPagamentoValida(forma string) bool {
	switch forma {
	case FORMA_PAGAMENTO_PIX, FORMA_PAGAMENTO_LINK, FORMA_PAGAMENTO_UNIDADE:
		return true
	}
	return false
}

func IsRetornoValido(retorno string) bool {
	switch retorno {
	case RETORNO_1X, RETORNO_2X, RETORNO_3X, RETORNO_4MAIS:
		return true
	}
	return false
}
