// Package metrics define as métricas Prometheus do backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry é o registry próprio da aplicação, exposto em GET /metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

// ClientesDistribuidosTotal conta clientes alocados por categoria
// (política de consumo).
var ClientesDistribuidosTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "corujoticket",
	Name:      "clientes_distribuidos_total",
	Help:      "Total de clientes distribuídos para atendimento, por categoria",
}, []string{"categoria"})

// DistribuicoesRecusadasTotal conta pedidos de distribuição rejeitados
// por pool insuficiente.
var DistribuicoesRecusadasTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "corujoticket",
	Name:      "distribuicoes_recusadas_total",
	Help:      "Pedidos de distribuição rejeitados por falta de clientes na categoria",
}, []string{"categoria"})

// LigacoesTotal conta desfechos de ligação por status (atendeu/nao_atendeu).
var LigacoesTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "corujoticket",
	Name:      "ligacoes_total",
	Help:      "Total de ligações registradas, por status",
}, []string{"status"})

// TicketsCriadosTotal conta tickets de cobrança abertos.
var TicketsCriadosTotal = factory.NewCounter(prometheus.CounterOpts{
	Namespace: "corujoticket",
	Name:      "tickets_criados_total",
	Help:      "Total de tickets de cobrança criados",
})

// NotificacoesEnviadasTotal conta webhooks de saída despachados com sucesso.
var NotificacoesEnviadasTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "corujoticket",
	Name:      "notificacoes_enviadas_total",
	Help:      "Notificações webhook enviadas com sucesso, por tipo",
}, []string{"tipo"})

// NotificacoesFalhasTotal conta webhooks de saída que falharam.
// Falhas aqui nunca revertem a operação que originou a notificação.
var NotificacoesFalhasTotal = factory.NewCounterVec(prometheus.CounterOpts{
	Namespace: "corujoticket",
	Name:      "notificacoes_falhas_total",
	Help:      "Notificações webhook com falha de envio, por tipo",
}, []string{"tipo"})
