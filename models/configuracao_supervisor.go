package models

import "time"

// ConfiguracaoSupervisor guarda as configurações globais do supervisor.
// Existe uma única linha; mes_referente define a aba de destino das
// distribuições delegadas para planilha.
type ConfiguracaoSupervisor struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	MesReferente string     `gorm:"column:mes_referente;not null;default:''" json:"mes_referente" form:"mes_referente"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func (ConfiguracaoSupervisor) TableName() string {
	return "configuracoes_supervisor"
}
