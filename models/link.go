package models

import "time"

/************************************************
/**** MARK: STATUS DE LINK ****/
/************************************************/
const LINK_STATUS_ATIVO = "ativo"
const LINK_STATUS_USADO = "usado"
const LINK_STATUS_EXPIRADO = "expirado"

// Link é um link de pagamento emitido pela equipe de whatsapp para um ticket.
// ativo -> usado | expirado; estados terminais não voltam atrás.
type Link struct {
	ID        int64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UsuarioID int64 `gorm:"column:usuario_id;not null;index" json:"usuario_id"`
	TicketID  int64 `gorm:"column:ticket_id;not null;index" json:"ticket_id"`

	Link   string `gorm:"not null" json:"link" form:"link"`
	Status string `gorm:"not null;default:'ativo';index" json:"status"`

	UsadoAt   *time.Time `gorm:"column:usado_at" json:"usado_at"`
	CreatedAt *time.Time `json:"created_at"`
}

func (Link) TableName() string {
	return "links"
}
