package workers_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"corujoticket/db"
	"corujoticket/models"
	"corujoticket/workers"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
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

func enfileirar(t *testing.T, database *gorm.DB, url string, quando time.Time) models.Notificacao {
	t.Helper()

	n := models.Notificacao{
		Tipo:        models.NOTIFICACAO_TIPO_TICKET,
		URL:         url,
		Status:      models.NOTIFICACAO_STATUS_PENDING,
		ScheduledAt: &quando,
	}
	if err := database.Create(&n).Error; err != nil {
		t.Fatalf("enfileirar notificação: %v", err)
	}
	return n
}

func TestProcessDueNotificacoes(t *testing.T) {
	database := setupTestDB(t)

	var chamadas int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&chamadas, 1)
		assert.Equal(t, "M-1", r.URL.Query().Get("matricula"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := enfileirar(t, database, srv.URL+"?matricula=M-1", time.Now())

	workers.ProcessDueNotificacoes(database)

	assert.Equal(t, int32(1), atomic.LoadInt32(&chamadas))

	var atual models.Notificacao
	assert.NoError(t, database.First(&atual, n.ID).Error)
	assert.Equal(t, models.NOTIFICACAO_STATUS_DONE, atual.Status)
	assert.Equal(t, 1, atual.Tentativas)
	assert.NotNil(t, atual.ProcessedAt)
	assert.Empty(t, atual.LastError)

	// já processada: um novo ciclo não dispara de novo
	workers.ProcessDueNotificacoes(database)
	assert.Equal(t, int32(1), atomic.LoadInt32(&chamadas))
}

func TestProcessDueNotificacoesRespeitaAgendamento(t *testing.T) {
	database := setupTestDB(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("notificação futura não deveria ser disparada")
	}))
	defer srv.Close()

	enfileirar(t, database, srv.URL, time.Now().Add(1*time.Hour))

	workers.ProcessDueNotificacoes(database)

	var pendentes int
	database.Model(&models.Notificacao{}).
		Where("status = ?", models.NOTIFICACAO_STATUS_PENDING).
		Count(&pendentes)
	assert.Equal(t, 1, pendentes)
}

func TestHandleNotificacaoFalhaEReagenda(t *testing.T) {
	database := setupTestDB(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := enfileirar(t, database, srv.URL, time.Now())

	// primeira falha volta para a fila com tentativa registrada
	workers.ProcessDueNotificacoes(database)

	var atual models.Notificacao
	assert.NoError(t, database.First(&atual, n.ID).Error)
	assert.Equal(t, models.NOTIFICACAO_STATUS_PENDING, atual.Status)
	assert.Equal(t, 1, atual.Tentativas)
	assert.Contains(t, atual.LastError, "502")
	assert.True(t, atual.ScheduledAt.After(time.Now()))

	// esgotadas as tentativas, marca como failed de vez
	agora := time.Now()
	assert.NoError(t, database.Model(&models.Notificacao{}).Where("id = ?", n.ID).
		Updates(map[string]any{"tentativas": 2, "scheduled_at": &agora}).Error)

	workers.ProcessDueNotificacoes(database)

	assert.NoError(t, database.First(&atual, n.ID).Error)
	assert.Equal(t, models.NOTIFICACAO_STATUS_FAILED, atual.Status)
	assert.Equal(t, 3, atual.Tentativas)
}
