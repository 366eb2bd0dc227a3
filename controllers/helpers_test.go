package controllers_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"corujoticket/db"
	"corujoticket/models"
	"corujoticket/tools"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("abrir sqlite de teste: %v", err)
	}
	database.LogMode(false)
	db.AutoMigrate(database)

	t.Cleanup(func() { database.Close() })
	return database
}

func criarUsuario(t *testing.T, database *gorm.DB, nome string, perfil string) models.Usuario {
	t.Helper()

	email := fmt.Sprintf("%s@corujoticket.test", nome)
	usuario := models.Usuario{
		Email:  email,
		Nome:   nome,
		Senha:  tools.EncodeSenha(email, "123456"),
		Perfil: perfil,
		Ativo:  true,
	}
	if err := database.Create(&usuario).Error; err != nil {
		t.Fatalf("criar usuario %s: %v", nome, err)
	}
	return usuario
}

func criarClientes(t *testing.T, database *gorm.DB, categoria string, n int) []models.Cliente {
	t.Helper()

	clientes := make([]models.Cliente, 0, n)
	for i := 0; i < n; i++ {
		cliente := models.Cliente{
			Matricula: fmt.Sprintf("%s-%04d", categoria, i+1),
			Nome:      fmt.Sprintf("Cliente %s %d", categoria, i+1),
			Telefone:  fmt.Sprintf("1199999%04d", i+1),
			Categoria: categoria,
			Ativo:     true,
		}
		if err := database.Create(&cliente).Error; err != nil {
			t.Fatalf("criar cliente %d: %v", i+1, err)
		}
		clientes = append(clientes, cliente)
	}
	return clientes
}
