package models

import "time"

/************************************************
/**** MARK: CATEGORIAS DE TICKET ****/
/************************************************/
const TICKET_CATEGORIA_LINK = "Link"
const TICKET_CATEGORIA_PIX = "Pix"
const TICKET_CATEGORIA_OUTROS = "Outros assuntos"

// Ticket representa uma intenção de cobrança gerada a partir de um
// atendimento bem sucedido. Os flags enviado/pago são atualizados depois
// pelos fluxos de reenvio e confirmação de pagamento.
type Ticket struct {
	ID        int64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UsuarioID int64 `gorm:"column:usuario_id;not null;index" json:"usuario_id"`

	Matricula       string  `gorm:"not null" json:"matricula" form:"matricula"`
	Nome            string  `gorm:"not null" json:"nome" form:"nome"`
	Valor           float64 `gorm:"not null;default:0" json:"valor" form:"valor"`
	QtdMensalidades int     `gorm:"column:qtd_mensalidades;not null;default:0" json:"qtd_mensalidades" form:"qtd_mensalidades"`
	Telefone        string  `gorm:"not null" json:"telefone" form:"telefone"`
	Categoria       string  `gorm:"not null" json:"categoria" form:"categoria"`
	Subcategoria    string  `gorm:"default:''" json:"subcategoria" form:"subcategoria"`
	Observacoes     string  `gorm:"type:text" json:"observacoes" form:"observacoes"`

	Enviado       bool       `gorm:"not null;default:false" json:"enviado"`
	Pago          bool       `gorm:"not null;default:false" json:"pago"`
	DataEnvio     *time.Time `gorm:"column:data_envio" json:"data_envio"`
	DataPagamento *time.Time `gorm:"column:data_pagamento" json:"data_pagamento"`

	CreatedAt *time.Time `json:"created_at"`
}

func (Ticket) TableName() string {
	return "tickets"
}
