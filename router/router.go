package router

import (
	"log"

	"corujoticket/controllers"
	"corujoticket/metrics"
	"corujoticket/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Initialize wires all routes and middlewares.
// Public routes + authenticated routes + "validated" routes (Authorizer) +
// supervisor routes (Supervisorizer).
func Initialize(r *gin.Engine) {
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")

	// Public (no auth)
	api.POST("/login", Logger(), controllers.Login)
	api.POST("/reset-senha", Logger(), controllers.RequestPasswordReset)
	api.POST("/reset-senha/confirmar", Logger(), controllers.ConfirmPasswordReset)

	// Authenticated routes (token required)
	auth := api.Group("")
	auth.Use(controllers.AuthRequired())

	// Validated routes (token + active user)
	validated := auth.Group("")
	validated.Use(Authorizer())

	validated.GET("/me", Logger(), controllers.Me)
	validated.PUT("/me", Logger(), controllers.UpdateMe)

	// Fila de atendimento
	validated.GET("/clientes-distribuidos", Logger(), controllers.GetClientesDistribuidos)
	validated.POST("/clientes-distribuidos/:id/atendeu", Logger(), controllers.AtendeuCliente)
	validated.POST("/clientes-distribuidos/:id/nao-atendeu", Logger(), controllers.NaoAtendeuCliente)

	// Ligações e tickets
	validated.GET("/ligacoes", Logger(), controllers.GetLigacoes)
	validated.POST("/ligacoes/:id/ticket", Logger(), controllers.EnviarTicketDaLigacao)
	validated.GET("/tickets", Logger(), controllers.GetTickets)
	validated.GET("/tickets/matricula/:matricula", Logger(), controllers.BuscarTicketPorMatricula)
	validated.PUT("/tickets/:id/enviado", Logger(), controllers.MarcarTicketEnviado)
	validated.PUT("/tickets/:id/pago", Logger(), controllers.MarcarTicketPago)

	// Links de pagamento
	validated.GET("/links", Logger(), controllers.GetLinks)
	validated.POST("/links", Logger(), controllers.CreateLink)
	validated.PUT("/links/:id/usado", Logger(), controllers.MarcarLinkUsado)
	validated.PUT("/links/:id/expirado", Logger(), controllers.MarcarLinkExpirado)

	// Caixa
	validated.GET("/caixa", Logger(), controllers.GetCaixa)
	validated.POST("/caixa", Logger(), controllers.CreateCaixa)
	validated.POST("/caixa/fechar", Logger(), controllers.FecharCaixa)

	// Valores de mensalidade (consulta)
	validated.GET("/valores-mensalidades", Logger(), controllers.GetValoresMensalidades)
	validated.GET("/valores-mensalidades/sugerido", Logger(), controllers.GetValorSugerido)

	// Dashboard do atendente
	validated.GET("/dashboard/ligacao", Logger(), controllers.GetDashboardLigacao)

	// Supervisor routes
	supervisor := validated.Group("")
	supervisor.Use(Supervisorizer())

	// Usuários (supervisor)
	supervisor.GET("/usuarios", Logger(), controllers.GetUsuarios)
	supervisor.POST("/usuarios", Logger(), controllers.CreateUsuario)
	supervisor.PUT("/usuarios/:id", Logger(), controllers.UpdateUsuario)

	// Clientes (supervisor)
	supervisor.GET("/clientes", Logger(), controllers.GetClientes)
	supervisor.POST("/clientes", Logger(), controllers.CreateCliente)
	supervisor.POST("/clientes/importar", Logger(), controllers.ImportarClientes)
	supervisor.PUT("/clientes/:id/ativo", Logger(), controllers.AtivarDesativarCliente)

	// Distribuição de clientes (supervisor)
	supervisor.POST("/distribuicao", Logger(), controllers.DistribuirClientes)
	supervisor.GET("/distribuicao/disponiveis", Logger(), controllers.GetClientesDisponiveis)

	// Limpeza da fila pendente (supervisor)
	supervisor.DELETE("/clientes-distribuidos/pendentes", Logger(), controllers.LimparClientesPendentes)

	// Valores de mensalidade CRUD (supervisor)
	supervisor.POST("/valores-mensalidades", Logger(), controllers.CreateValorMensalidade)
	supervisor.PUT("/valores-mensalidades/:id", Logger(), controllers.UpdateValorMensalidade)
	supervisor.DELETE("/valores-mensalidades/:id", Logger(), controllers.DeleteValorMensalidade)

	// Configurações (supervisor)
	supervisor.GET("/configuracoes", Logger(), controllers.GetConfiguracoesSupervisor)
	supervisor.PUT("/configuracoes", Logger(), controllers.UpdateConfiguracoesSupervisor)

	// Dashboard da supervisão (supervisor)
	supervisor.GET("/dashboard/supervisao", Logger(), controllers.GetDashboardSupervisao)

	log.Printf("Routes initialized")
}
