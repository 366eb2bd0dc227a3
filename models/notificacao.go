package models

import "time"

/************************************************
/**** MARK: STATUS DE NOTIFICACAO ****/
/************************************************/
const NOTIFICACAO_STATUS_PENDING = "pending"
const NOTIFICACAO_STATUS_PROCESSING = "processing"
const NOTIFICACAO_STATUS_DONE = "done"
const NOTIFICACAO_STATUS_FAILED = "failed"

/************************************************
/**** MARK: TIPOS DE NOTIFICACAO ****/
/************************************************/
const NOTIFICACAO_TIPO_TICKET = "ticket"
const NOTIFICACAO_TIPO_DISTRIBUICAO = "distribuicao"
const NOTIFICACAO_TIPO_RESET_SENHA = "reset_senha"

// Notificacao é uma chamada webhook de saída pendente de envio.
// É enfileirada na mesma transação da operação que a originou e despachada
// depois pelo worker; o resultado do envio nunca afeta a operação original.
type Notificacao struct {
	ID     int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Tipo   string `gorm:"not null;index" json:"tipo"`
	URL    string `gorm:"column:url;type:text;not null" json:"url"`
	Status string `gorm:"not null;default:'pending';index" json:"status"`

	Tentativas  int        `gorm:"not null;default:0" json:"tentativas"`
	ScheduledAt *time.Time `gorm:"index" json:"scheduled_at"`
	ProcessedAt *time.Time `json:"processed_at"`
	LastError   string     `gorm:"column:last_error;type:text" json:"last_error"`

	CreatedAt *time.Time `json:"created_at"`
}

func (Notificacao) TableName() string {
	return "notificacoes"
}
