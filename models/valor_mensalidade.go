package models

import "time"

// ValorMensalidade configura o valor fixo sugerido para uma quantidade de
// mensalidades. Consulta sempre consultiva: sem configuração para a
// quantidade, o valor fica para preenchimento manual.
type ValorMensalidade struct {
	ID         int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Quantidade int        `gorm:"not null;unique" json:"quantidade" form:"quantidade"`
	Valor      float64    `gorm:"not null" json:"valor" form:"valor"`
	Ativo      bool       `gorm:"not null;default:true" json:"ativo" form:"ativo"`
	CreatedAt  *time.Time `json:"created_at"`
}

func (ValorMensalidade) TableName() string {
	return "valores_mensalidades"
}
