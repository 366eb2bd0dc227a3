package controllers_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"corujoticket/controllers"
	apperrors "corujoticket/errors"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
)

func ligacaoAtendida(t *testing.T, database *gorm.DB, usuario models.Usuario, forma string) models.Ligacao {
	t.Helper()

	cd := distribuirUm(t, database, usuario, "1")
	req := atendimentoValido()
	req.FormaPagamento = forma

	ligacao, err := controllers.MarcarAtendido(database, usuario.ID, cd.ID, req)
	if err != nil {
		t.Fatalf("atender cliente de teste: %v", err)
	}
	return ligacao
}

func TestEnviarTicket(t *testing.T) {
	database := setupTestDB(t)
	usuario := criarUsuario(t, database, "elisa", models.USUARIO_PERFIL_LIGACAO)
	ligacao := ligacaoAtendida(t, database, usuario, models.FORMA_PAGAMENTO_PIX)

	ticket, err := controllers.EnviarTicket(database, usuario, ligacao.ID, "cliente pediu pix", "http://ticket.test/hook")
	assert.NoError(t, err)
	assert.Equal(t, ligacao.Matricula, ticket.Matricula)
	assert.Equal(t, ligacao.Valor, ticket.Valor)
	assert.Equal(t, models.TICKET_CATEGORIA_PIX, ticket.Categoria)
	assert.Equal(t, "cliente pediu pix", ticket.Observacoes)
	assert.False(t, ticket.Enviado)
	assert.False(t, ticket.Pago)

	var atual models.Ligacao
	assert.NoError(t, database.First(&atual, ligacao.ID).Error)
	assert.True(t, atual.TicketGerado)
	assert.Equal(t, ticket.ID, atual.TicketID)

	// o webhook vai para a fila, não é disparado aqui
	var notificacao models.Notificacao
	err = database.Where("tipo = ?", models.NOTIFICACAO_TIPO_TICKET).First(&notificacao).Error
	assert.NoError(t, err)
	assert.Equal(t, models.NOTIFICACAO_STATUS_PENDING, notificacao.Status)

	parsed, err := url.Parse(notificacao.URL)
	assert.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, usuario.Nome, q.Get("atendente"))
	assert.Equal(t, ticket.Matricula, q.Get("matricula"))
	assert.Equal(t, "300.00", q.Get("valor"))
	assert.Equal(t, models.TICKET_CATEGORIA_PIX, q.Get("categoria"))

	// uma ligação gera no máximo um ticket
	_, err = controllers.EnviarTicket(database, usuario, ligacao.ID, "", "http://ticket.test/hook")
	assert.True(t, errors.Is(err, apperrors.ErrJaResolvido))

	var tickets int
	database.Model(&models.Ticket{}).Count(&tickets)
	assert.Equal(t, 1, tickets)
}

func TestEnviarTicketCategoriaLink(t *testing.T) {
	database := setupTestDB(t)
	usuario := criarUsuario(t, database, "fabio", models.USUARIO_PERFIL_LIGACAO)
	ligacao := ligacaoAtendida(t, database, usuario, models.FORMA_PAGAMENTO_LINK)

	ticket, err := controllers.EnviarTicket(database, usuario, ligacao.ID, "", "")
	assert.NoError(t, err)
	assert.Equal(t, models.TICKET_CATEGORIA_LINK, ticket.Categoria)

	// observações vazias herdam as da ligação
	assert.Equal(t, ligacao.Observacoes, ticket.Observacoes)

	// sem webhook configurado, nada entra na fila
	var notificacoes int
	database.Model(&models.Notificacao{}).Count(&notificacoes)
	assert.Equal(t, 0, notificacoes)
}

func TestEnviarTicketDeOutroAtendente(t *testing.T) {
	database := setupTestDB(t)
	dono := criarUsuario(t, database, "hugo", models.USUARIO_PERFIL_LIGACAO)
	outro := criarUsuario(t, database, "ivan", models.USUARIO_PERFIL_LIGACAO)
	supervisor := criarUsuario(t, database, "iara", models.USUARIO_PERFIL_SUPERVISAO)
	ligacao := ligacaoAtendida(t, database, dono, models.FORMA_PAGAMENTO_PIX)

	// outro atendente não abre ticket de ligação que não é sua
	c, w := novoContexto(t, database, outro, http.MethodPost, "/api/ligacoes/ticket", nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", ligacao.ID)}}
	controllers.EnviarTicketDaLigacao(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	var tickets int
	database.Model(&models.Ticket{}).Count(&tickets)
	assert.Equal(t, 0, tickets)

	// supervisão pode
	c, w = novoContexto(t, database, supervisor, http.MethodPost, "/api/ligacoes/ticket", nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", ligacao.ID)}}
	controllers.EnviarTicketDaLigacao(c)
	assert.Equal(t, http.StatusOK, w.Code)

	database.Model(&models.Ticket{}).Count(&tickets)
	assert.Equal(t, 1, tickets)

	// o ticket continua atribuído ao dono da ligação
	var ticket models.Ticket
	assert.NoError(t, database.First(&ticket).Error)
	assert.Equal(t, dono.ID, ticket.UsuarioID)
}

func TestEnviarTicketRecusas(t *testing.T) {
	database := setupTestDB(t)
	usuario := criarUsuario(t, database, "gael", models.USUARIO_PERFIL_LIGACAO)

	// ligação inexistente
	_, err := controllers.EnviarTicket(database, usuario, 9999, "", "")
	assert.True(t, errors.Is(err, apperrors.ErrNaoEncontrado))

	// ligação não atendida não gera ticket
	cd := distribuirUm(t, database, usuario, "2")
	ligacao, err := controllers.MarcarNaoAtendido(database, usuario.ID, cd.ID)
	assert.NoError(t, err)

	_, err = controllers.EnviarTicket(database, usuario, ligacao.ID, "", "")
	assert.Error(t, err)

	var tickets int
	database.Model(&models.Ticket{}).Count(&tickets)
	assert.Equal(t, 0, tickets)
}
