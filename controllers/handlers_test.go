package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"corujoticket/controllers"
	"corujoticket/db"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
)

func novoContexto(t *testing.T, database *gorm.DB, usuario models.Usuario, method string, path string, body any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("serializar body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, &buf)
	c.Request.Header.Set("Content-Type", "application/json")

	db.SetDBtoContext(database)(c)
	controllers.SetUsuarioLogado(c, usuario)
	return c, w
}

func TestLinkTransicoes(t *testing.T) {
	database := setupTestDB(t)
	usuario := criarUsuario(t, database, "helena", models.USUARIO_PERFIL_WHATSAPP)
	dono := criarUsuario(t, database, "igor", models.USUARIO_PERFIL_LIGACAO)
	ligacao := ligacaoAtendida(t, database, dono, models.FORMA_PAGAMENTO_LINK)

	ticket, err := controllers.EnviarTicket(database, dono, ligacao.ID, "", "")
	assert.NoError(t, err)

	// cria o link pelo handler
	c, w := novoContexto(t, database, usuario, http.MethodPost, "/api/links",
		controllers.LinkRequest{TicketID: ticket.ID, Link: "https://pag.example/abc"})
	controllers.CreateLink(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var link models.Link
	assert.NoError(t, database.Where("ticket_id = ?", ticket.ID).First(&link).Error)
	assert.Equal(t, models.LINK_STATUS_ATIVO, link.Status)

	// ativo -> usado
	c, w = novoContexto(t, database, usuario, http.MethodPut, "/api/links/usado", nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", link.ID)}}
	controllers.MarcarLinkUsado(c)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, database.First(&link, link.ID).Error)
	assert.Equal(t, models.LINK_STATUS_USADO, link.Status)
	assert.NotNil(t, link.UsadoAt)

	// terminal não troca de terminal
	c, w = novoContexto(t, database, usuario, http.MethodPut, "/api/links/expirado", nil)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", link.ID)}}
	controllers.MarcarLinkExpirado(c)
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.NoError(t, database.First(&link, link.ID).Error)
	assert.Equal(t, models.LINK_STATUS_USADO, link.Status)
}

func TestCaixaFluxo(t *testing.T) {
	database := setupTestDB(t)
	usuario := criarUsuario(t, database, "julia", models.USUARIO_PERFIL_WHATSAPP)

	lancamento := controllers.CaixaRequest{Matricula: "M-1", Nome: "Fulano", Valor: 150}

	c, w := novoContexto(t, database, usuario, http.MethodPost, "/api/caixa", lancamento)
	controllers.CreateCaixa(c)
	assert.Equal(t, http.StatusOK, w.Code)

	lancamento.Valor = 50
	c, w = novoContexto(t, database, usuario, http.MethodPost, "/api/caixa", lancamento)
	controllers.CreateCaixa(c)
	assert.Equal(t, http.StatusOK, w.Code)

	// fechar o dia
	c, w = novoContexto(t, database, usuario, http.MethodPost, "/api/caixa/fechar", nil)
	controllers.FecharCaixa(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total float64 `json:"total"`
		Itens int     `json:"itens"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 200.0, resp.Total)
	assert.Equal(t, 2, resp.Itens)

	// dia fechado não aceita lançamento novo
	c, w = novoContexto(t, database, usuario, http.MethodPost, "/api/caixa", lancamento)
	controllers.CreateCaixa(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLimparClientesPendentes(t *testing.T) {
	database := setupTestDB(t)
	supervisor := criarUsuario(t, database, "karen", models.USUARIO_PERFIL_SUPERVISAO)
	atendente := criarUsuario(t, database, "lucas", models.USUARIO_PERFIL_LIGACAO)

	criarClientes(t, database, "5", 3)
	distribuidos, err := controllers.DistribuirConsumo(database, atendente.ID, "5", 3, 1000)
	assert.NoError(t, err)

	// um já resolvido não pode ser varrido
	_, err = controllers.MarcarNaoAtendido(database, atendente.ID, distribuidos[0].ID)
	assert.NoError(t, err)

	c, w := novoContexto(t, database, supervisor, http.MethodDelete, "/api/clientes-distribuidos/pendentes", nil)
	controllers.LimparClientesPendentes(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var restantes []models.ClienteDistribuido
	assert.NoError(t, database.Find(&restantes).Error)
	assert.Len(t, restantes, 1)
	assert.Equal(t, models.DISTRIBUIDO_STATUS_NAO_ATENDIDO, restantes[0].Status)

	// os clientes varridos voltam a ficar disponíveis
	disponiveis, err := controllers.ClientesDisponiveis(database)
	assert.NoError(t, err)
	assert.Equal(t, 2, disponiveis["5"])
}
