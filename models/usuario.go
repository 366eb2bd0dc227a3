package models

import "time"

/************************************************
/**** MARK: PERFIS DE USUARIO ****/
/************************************************/
const USUARIO_PERFIL_LIGACAO = "ligacao"
const USUARIO_PERFIL_WHATSAPP = "whatsapp"
const USUARIO_PERFIL_SUPERVISAO = "supervisao"

// Usuario representa um usuário do sistema (atendente ou supervisor).
// O perfil define o que ele enxerga: ligacao, whatsapp ou supervisao.
type Usuario struct {
	ID         int64  `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Email      string `gorm:"not null;unique" json:"email" form:"email"`
	Nome       string `gorm:"not null" json:"nome" form:"nome"`
	Senha      string `gorm:"not null" json:"senha,omitempty" form:"senha"`
	Perfil     string `gorm:"not null;default:'ligacao'" json:"perfil" form:"perfil"`
	IDPlanilha string `gorm:"column:id_planilha;default:''" json:"id_planilha" form:"id_planilha"`
	FotoPerfil string `gorm:"column:foto_perfil;default:''" json:"foto_perfil" form:"foto_perfil"`
	ModoEscuro bool   `gorm:"not null;default:false" json:"modo_escuro" form:"modo_escuro"`
	Ativo      bool   `gorm:"not null;default:true" json:"ativo" form:"ativo"`

	CodigoReset       string     `gorm:"column:codigo_reset;default:''" json:"-"`
	CodigoResetExpira *time.Time `gorm:"column:codigo_reset_expira" json:"-"`

	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (Usuario) TableName() string {
	return "usuarios"
}

func IsPerfilValido(perfil string) bool {
	switch perfil {
	case USUARIO_PERFIL_LIGACAO, USUARIO_PERFIL_WHATSAPP, USUARIO_PERFIL_SUPERVISAO:
		return true
	}
	return false
}

func (u Usuario) MissingFields() string {
	if u.Email == "" {
		return "email"
	} else if u.Nome == "" {
		return "nome"
	} else if u.Senha == "" {
		return "senha"
	} else if !IsPerfilValido(u.Perfil) {
		return "perfil"
	}
	return ""
}
