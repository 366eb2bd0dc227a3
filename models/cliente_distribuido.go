package models

import "time"

/************************************************
/**** MARK: STATUS DE ATENDIMENTO ****/
/************************************************/
const DISTRIBUIDO_STATUS_PENDENTE = "pendente"
const DISTRIBUIDO_STATUS_ATENDIDO = "atendido"
const DISTRIBUIDO_STATUS_NAO_ATENDIDO = "nao_atendido"

// ClienteDistribuido é uma alocação de um cliente da carteira para um
// atendente. Os campos matricula/nome/telefone/categoria são um snapshot do
// cliente no momento da distribuição: edições posteriores na carteira não
// alteram alocações em andamento.
//
// O status transiciona uma única vez: pendente -> atendido | nao_atendido.
type ClienteDistribuido struct {
	ID        int64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	ClienteID int64 `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	UsuarioID int64 `gorm:"column:usuario_id;not null;index" json:"usuario_id"`

	Matricula string `gorm:"not null" json:"matricula"`
	Nome      string `gorm:"not null" json:"nome"`
	Telefone  string `gorm:"not null" json:"telefone"`
	Categoria string `gorm:"not null;index" json:"categoria"`

	Status           string     `gorm:"not null;default:'pendente';index" json:"status"`
	DataDistribuicao *time.Time `gorm:"column:data_distribuicao" json:"data_distribuicao"`
	DataAtendimento  *time.Time `gorm:"column:data_atendimento" json:"data_atendimento"`
}

func (ClienteDistribuido) TableName() string {
	return "clientes_distribuidos"
}
