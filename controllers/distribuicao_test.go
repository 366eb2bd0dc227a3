package controllers_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"corujoticket/controllers"
	apperrors "corujoticket/errors"
	"corujoticket/models"

	"github.com/stretchr/testify/assert"
)

func TestDistribuirConsumo(t *testing.T) {
	database := setupTestDB(t)
	usuario := criarUsuario(t, database, "joana", models.USUARIO_PERFIL_LIGACAO)
	criarClientes(t, database, "2", 5)

	// primeiro pedido: 3 de 5
	distribuidos, err := controllers.DistribuirConsumo(database, usuario.ID, "2", 3, 1000)
	assert.NoError(t, err)
	assert.Len(t, distribuidos, 3)
	for _, cd := range distribuidos {
		assert.Equal(t, models.DISTRIBUIDO_STATUS_PENDENTE, cd.Status)
		assert.Equal(t, usuario.ID, cd.UsuarioID)
		assert.Equal(t, "2", cd.Categoria)
		assert.NotEmpty(t, cd.Matricula)
		assert.NotNil(t, cd.DataDistribuicao)
	}

	// pedido maior que o restante: falha inteira, nada é inserido
	_, err = controllers.DistribuirConsumo(database, usuario.ID, "2", 3, 1000)
	assert.True(t, errors.Is(err, apperrors.ErrPoolInsuficiente))

	var total int
	database.Model(&models.ClienteDistribuido{}).Count(&total)
	assert.Equal(t, 3, total)

	// o restante exato ainda pode ser alocado
	distribuidos, err = controllers.DistribuirConsumo(database, usuario.ID, "2", 2, 1000)
	assert.NoError(t, err)
	assert.Len(t, distribuidos, 2)

	// carteira esgotada
	_, err = controllers.DistribuirConsumo(database, usuario.ID, "2", 1, 1000)
	assert.True(t, errors.Is(err, apperrors.ErrPoolInsuficiente))
}

func TestDistribuirConsumoValidacao(t *testing.T) {
	database := setupTestDB(t)
	usuario := criarUsuario(t, database, "rafa", models.USUARIO_PERFIL_LIGACAO)
	criarClientes(t, database, "1", 2)

	tests := map[string]struct {
		usuarioID  int64
		categoria  string
		quantidade int
		expected   error
	}{
		"QuantidadeZero": {
			usuarioID: usuario.ID, categoria: "1", quantidade: 0,
			expected: apperrors.ErrQuantidadeInvalida,
		},
		"QuantidadeNegativa": {
			usuarioID: usuario.ID, categoria: "1", quantidade: -3,
			expected: apperrors.ErrQuantidadeInvalida,
		},
		"QuantidadeAcimaDoLimite": {
			usuarioID: usuario.ID, categoria: "1", quantidade: 1001,
			expected: apperrors.ErrQuantidadeInvalida,
		},
		"CategoriaDesconhecida": {
			usuarioID: usuario.ID, categoria: "99", quantidade: 1,
			expected: apperrors.ErrNaoEncontrado,
		},
		"UsuarioDesconhecido": {
			usuarioID: 9999, categoria: "1", quantidade: 1,
			expected: apperrors.ErrNaoEncontrado,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := controllers.DistribuirConsumo(database, tc.usuarioID, tc.categoria, tc.quantidade, 1000)
			assert.True(t, errors.Is(err, tc.expected), "esperava %v, veio %v", tc.expected, err)

			var total int
			database.Model(&models.ClienteDistribuido{}).Count(&total)
			assert.Equal(t, 0, total)
		})
	}
}

func TestDistribuirConsumoOrdemDeterministica(t *testing.T) {
	database := setupTestDB(t)
	usuario := criarUsuario(t, database, "bia", models.USUARIO_PERFIL_LIGACAO)
	clientes := criarClientes(t, database, "3", 4)

	distribuidos, err := controllers.DistribuirConsumo(database, usuario.ID, "3", 2, 1000)
	assert.NoError(t, err)
	assert.Len(t, distribuidos, 2)

	// sempre os mais antigos da carteira primeiro
	assert.Equal(t, clientes[0].ID, distribuidos[0].ClienteID)
	assert.Equal(t, clientes[1].ID, distribuidos[1].ClienteID)
}

func TestDistribuirConsumoIgnoraInativosEOutrasCategorias(t *testing.T) {
	database := setupTestDB(t)
	usuario := criarUsuario(t, database, "nina", models.USUARIO_PERFIL_LIGACAO)
	criarClientes(t, database, "4", 2)
	criarClientes(t, database, "5", 3)

	inativo := models.Cliente{Matricula: "4-OFF", Nome: "Fulano", Telefone: "11990000000", Categoria: "4", Ativo: false}
	assert.NoError(t, database.Create(&inativo).Error)

	_, err := controllers.DistribuirConsumo(database, usuario.ID, "4", 3, 1000)
	assert.True(t, errors.Is(err, apperrors.ErrPoolInsuficiente))

	distribuidos, err := controllers.DistribuirConsumo(database, usuario.ID, "4", 2, 1000)
	assert.NoError(t, err)
	for _, cd := range distribuidos {
		assert.Equal(t, "4", cd.Categoria)
		assert.NotEqual(t, inativo.ID, cd.ClienteID)
	}
}

func TestClientesDisponiveis(t *testing.T) {
	database := setupTestDB(t)
	usuario := criarUsuario(t, database, "leo", models.USUARIO_PERFIL_SUPERVISAO)
	criarClientes(t, database, "NR", 4)
	criarClientes(t, database, "1", 2)

	disponiveis, err := controllers.ClientesDisponiveis(database)
	assert.NoError(t, err)
	assert.Equal(t, 4, disponiveis["NR"])
	assert.Equal(t, 2, disponiveis["1"])
	assert.Equal(t, 0, disponiveis["6"])

	_, err = controllers.DistribuirConsumo(database, usuario.ID, "NR", 3, 1000)
	assert.NoError(t, err)

	disponiveis, err = controllers.ClientesDisponiveis(database)
	assert.NoError(t, err)
	assert.Equal(t, 1, disponiveis["NR"])
	assert.Equal(t, 2, disponiveis["1"])
}

func TestDistribuirDelegada(t *testing.T) {
	database := setupTestDB(t)

	usuario := criarUsuario(t, database, "caua", models.USUARIO_PERFIL_LIGACAO)
	assert.NoError(t, database.Model(&usuario).Update("id_planilha", "PL-77").Error)
	usuario.IDPlanilha = "PL-77"

	semPlanilha := criarUsuario(t, database, "davi", models.USUARIO_PERFIL_LIGACAO)

	// sem mês de referência configurado, o pedido é recusado
	_, err := controllers.DistribuirDelegada(database, usuario.ID, "2", 10, 1000, "http://planilha.test/hook")
	assert.Error(t, err)

	cfg := models.ConfiguracaoSupervisor{MesReferente: "Agosto"}
	assert.NoError(t, database.Create(&cfg).Error)

	_, err = controllers.DistribuirDelegada(database, semPlanilha.ID, "2", 10, 1000, "http://planilha.test/hook")
	assert.Error(t, err)

	notificacao, err := controllers.DistribuirDelegada(database, usuario.ID, "2", 10, 1000, "http://planilha.test/hook")
	assert.NoError(t, err)
	assert.Equal(t, models.NOTIFICACAO_TIPO_DISTRIBUICAO, notificacao.Tipo)
	assert.Equal(t, models.NOTIFICACAO_STATUS_PENDING, notificacao.Status)

	assert.True(t, strings.HasPrefix(notificacao.URL, "http://planilha.test/hook?"))
	parsed, err := url.Parse(notificacao.URL)
	assert.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "PL-77", q.Get("usuario_id"))
	assert.Equal(t, "2", q.Get("categoria"))
	assert.Equal(t, "Agosto", q.Get("aba_destino"))
	assert.Equal(t, "10", q.Get("quantidade"))

	// política delegada não consome carteira local
	var total int
	database.Model(&models.ClienteDistribuido{}).Count(&total)
	assert.Equal(t, 0, total)
}
