package models

import "time"

/************************************************
/**** MARK: CATEGORIAS DE CLIENTE ****/
/************************************************/
const CLIENTE_CATEGORIA_NR = "NR"

// CategoriasCliente lista as categorias aceitas na carteira de clientes.
var CategoriasCliente = []string{CLIENTE_CATEGORIA_NR, "1", "2", "3", "4", "5", "6"}

// Cliente é um registro da carteira master de prospecção.
// Imutável depois de criado, exceto pelo flag ativo.
type Cliente struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Matricula string     `gorm:"not null;index" json:"matricula" form:"matricula"`
	Nome      string     `gorm:"not null" json:"nome" form:"nome"`
	Telefone  string     `gorm:"not null" json:"telefone" form:"telefone"`
	Categoria string     `gorm:"not null;index" json:"categoria" form:"categoria"`
	Ativo     bool       `gorm:"not null;default:true" json:"ativo" form:"ativo"`
	CreatedAt *time.Time `json:"created_at"`
}

func (Cliente) TableName() string {
	return "clientes"
}

func IsCategoriaValida(categoria string) bool {
	for _, c := range CategoriasCliente {
		if c == categoria {
			return true
		}
	}
	return false
}

func (c Cliente) MissingFields() string {
	if c.Matricula == "" {
		return "matricula"
	} else if c.Nome == "" {
		return "nome"
	} else if c.Telefone == "" {
		return "telefone"
	} else if !IsCategoriaValida(c.Categoria) {
		return "categoria"
	}
	return ""
}
