package controllers

import (
	"net/http"
	"os"
	"time"

	dbpkg "corujoticket/db"
	"corujoticket/models"
	"corujoticket/tools"

	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

type LoginRequest struct {
	Email string `json:"email" form:"email"`
	Senha string `json:"senha" form:"senha"`
}

type LoginResponse struct {
	Token   string         `json:"token"`
	Usuario models.Usuario `json:"usuario"`
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Senha == "" {
		RespondError(c, "email e senha são obrigatórios", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
		return
	}

	var usuario models.Usuario
	if err := db.Where("email = ?", req.Email).First(&usuario).Error; err != nil {
		RespondError(c, "email ou senha incorretos", http.StatusUnauthorized)
		return
	}

	if usuario.Senha != tools.EncodeSenha(usuario.Email, req.Senha) {
		RespondError(c, "email ou senha incorretos", http.StatusUnauthorized)
		return
	}

	if !usuario.Ativo {
		RespondError(c, "usuário desativado", http.StatusForbidden)
		return
	}

	validade := time.Duration(conf.Security.TokenValidHrs) * time.Hour
	if validade <= 0 {
		validade = 24 * time.Hour
	}

	signed, err := signHS256JWT(getJWTSecret(), map[string]any{
		"sub":   usuario.ID,
		"email": usuario.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(validade).Unix(),
	})
	if err != nil {
		RespondError(c, "erro ao assinar token", http.StatusInternalServerError)
		return
	}

	usuario.Senha = ""
	RespondSuccess(c, LoginResponse{Token: signed, Usuario: usuario})
}

func signHS256JWT(secret string, claims map[string]any) (string, error) {
	// Header
	header := map[string]any{"alg": "HS256", "typ": "JWT"}
	headB, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	// Payload
	payloadB, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	enc := base64.RawURLEncoding
	unsigned := enc.EncodeToString(headB) + "." + enc.EncodeToString(payloadB)

	h := hmac.New(sha256.New, []byte(secret))
	_, _ = h.Write([]byte(unsigned))
	sig := enc.EncodeToString(h.Sum(nil))
	return unsigned + "." + sig, nil
}

// getJWTSecret resolve o segredo de assinatura: env JWT_SECRET vence o
// config.json, que vence o default de dev.
func getJWTSecret() string {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		return v
	}
	if conf.Security.JwtSecret != "" {
		return conf.Security.JwtSecret
	}
	return "CHANGE_ME"
}
