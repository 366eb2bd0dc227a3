package models

import "time"

// Caixa é um lançamento do caixa diário de um atendente.
// data_operacao guarda a data no formato YYYY-MM-DD; depois do fechamento do
// dia nenhum lançamento novo é aceito para aquela data.
type Caixa struct {
	ID        int64 `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UsuarioID int64 `gorm:"column:usuario_id;not null;index" json:"usuario_id"`

	Matricula   string  `gorm:"not null" json:"matricula" form:"matricula"`
	Nome        string  `gorm:"not null" json:"nome" form:"nome"`
	Valor       float64 `gorm:"not null;default:0" json:"valor" form:"valor"`
	Comprovante string  `gorm:"default:''" json:"comprovante" form:"comprovante"`

	DataOperacao string `gorm:"column:data_operacao;not null;index" json:"data_operacao"`
	Fechado      bool   `gorm:"not null;default:false" json:"fechado"`

	CreatedAt *time.Time `json:"created_at"`
}

func (Caixa) TableName() string {
	return "caixa"
}
