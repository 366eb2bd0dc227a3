package config

import (
	"encoding/json"
	"log"
	"os"
)

/************************************************
/**** MARK: POLITICAS DE DISTRIBUICAO ****/
/************************************************/
const DISTRIBUICAO_POLITICA_CONSUMO = "consumo"
const DISTRIBUICAO_POLITICA_DELEGADA = "delegada"

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" ou "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	// DistribuicaoPolitica escolhe como a distribuição de clientes funciona:
	// "consumo" aloca da carteira local marcando consumo; "delegada" só
	// repassa os parâmetros para o webhook da planilha.
	DistribuicaoPolitica string `json:"distribuicao_politica"`

	// DistribuicaoQtdMax limita a quantidade de um único pedido.
	DistribuicaoQtdMax int `json:"distribuicao_qtd_max"`

	Webhooks struct {
		Planilha   string `json:"planilha"`
		Ticket     string `json:"ticket"`
		ResetSenha string `json:"reset_senha"`
	} `json:"webhooks"`

	Security struct {
		JwtSecret     string `json:"jwt_secret"`
		ResetCodeLen  int    `json:"reset_code_len"`
		TokenValidHrs int    `json:"token_valid_hours"`
	} `json:"security"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	return ApplyDefaults(c)
}

// ApplyDefaults preenche os campos vazios (pra evitar nil/zero chato).
func ApplyDefaults(c Configuration) Configuration {
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.DistribuicaoPolitica == "" {
		c.DistribuicaoPolitica = DISTRIBUICAO_POLITICA_CONSUMO
	}
	if c.DistribuicaoQtdMax <= 0 {
		c.DistribuicaoQtdMax = 1000
	}
	if c.Security.ResetCodeLen <= 0 {
		c.Security.ResetCodeLen = 12
	}
	if c.Security.TokenValidHrs <= 0 {
		c.Security.TokenValidHrs = 24
	}
	if c.Security.JwtSecret == "" {
		c.Security.JwtSecret = "CHANGE_ME"
	}
	return c
}
