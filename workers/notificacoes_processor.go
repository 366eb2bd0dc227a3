package workers

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"corujoticket/metrics"
	"corujoticket/models"

	"github.com/jinzhu/gorm"
)

const maxTentativas = 3

var httpClient = &http.Client{Timeout: 10 * time.Second}

// StartNotificacoesProcessor starts a loop that dispatches pending
// notifications whose ScheduledAt <= now. Delivery failures never propagate
// back to the operation that enqueued the notification.
func StartNotificacoesProcessor(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ProcessDueNotificacoes(db)
		}
	}()
}

// ProcessDueNotificacoes despacha um lote de notificações vencidas.
func ProcessDueNotificacoes(db *gorm.DB) {
	now := time.Now()

	var notificacoes []models.Notificacao
	if err := db.
		Where("status = ?", models.NOTIFICACAO_STATUS_PENDING).
		Where("scheduled_at IS NOT NULL AND scheduled_at <= ?", now).
		Order("scheduled_at asc, id asc").
		Limit(50).
		Find(&notificacoes).Error; err != nil {
		log.Printf("notificacoes worker: query error: %v", err)
		return
	}

	for _, n := range notificacoes {
		// lock otimista: só processa se conseguir mudar status
		res := db.Model(&models.Notificacao{}).
			Where("id = ? AND status = ?", n.ID, models.NOTIFICACAO_STATUS_PENDING).
			Update("status", models.NOTIFICACAO_STATUS_PROCESSING)
		if res.Error != nil || res.RowsAffected == 0 {
			continue
		}

		HandleNotificacao(db, n.ID)
	}
}

// HandleNotificacao dispara o webhook de uma notificação já em processing.
func HandleNotificacao(db *gorm.DB, notificacaoID int64) {
	var n models.Notificacao
	if err := db.First(&n, notificacaoID).Error; err != nil {
		return
	}
	if n.Status != models.NOTIFICACAO_STATUS_PROCESSING {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := dispararWebhook(ctx, n.URL)
	t := time.Now()
	tentativas := n.Tentativas + 1

	if err == nil {
		metrics.NotificacoesEnviadasTotal.WithLabelValues(n.Tipo).Inc()
		_ = db.Model(&models.Notificacao{}).Where("id = ?", n.ID).Updates(map[string]any{
			"status":       models.NOTIFICACAO_STATUS_DONE,
			"tentativas":   tentativas,
			"processed_at": &t,
			"last_error":   "",
		}).Error
		return
	}

	log.Printf("notificacoes worker: webhook error (id=%d tipo=%s): %v", n.ID, n.Tipo, err)
	metrics.NotificacoesFalhasTotal.WithLabelValues(n.Tipo).Inc()

	if tentativas >= maxTentativas {
		_ = db.Model(&models.Notificacao{}).Where("id = ?", n.ID).Updates(map[string]any{
			"status":       models.NOTIFICACAO_STATUS_FAILED,
			"tentativas":   tentativas,
			"processed_at": &t,
			"last_error":   err.Error(),
		}).Error
		return
	}

	// volta para a fila com backoff simples
	retry := time.Now().Add(time.Duration(tentativas) * 30 * time.Second)
	_ = db.Model(&models.Notificacao{}).Where("id = ?", n.ID).Updates(map[string]any{
		"status":       models.NOTIFICACAO_STATUS_PENDING,
		"tentativas":   tentativas,
		"scheduled_at": &retry,
		"last_error":   err.Error(),
	}).Error
}

func dispararWebhook(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook error: status=%d body=%s", resp.StatusCode, string(body))
	}

	return nil
}
