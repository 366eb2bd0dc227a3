package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	dbpkg "corujoticket/db"
	"corujoticket/models"

	"github.com/gin-gonic/gin"
)

// jwtClaims representa o mínimo necessário para autenticação.
// O token emitido pelo Login usa o padrão:
//   { "sub": <usuarioId>, "email": "...", "iat": ..., "exp": ... }
type jwtClaims struct {
	Sub int64 `json:"sub"`
	Exp int64 `json:"exp"`
	Iat int64 `json:"iat"`
}

const ctxUsuarioKey = "auth_usuario"

// AuthRequired valida o Bearer token e carrega o usuário do DB no contexto.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			RespondError(c, "token ausente", http.StatusUnauthorized)
			c.Abort()
			return
		}
		token := strings.TrimSpace(h[len("Bearer "):])
		claims, ok := parseAndVerifyJWT(token, getJWTSecret())
		if !ok {
			RespondError(c, "token inválido", http.StatusUnauthorized)
			c.Abort()
			return
		}
		if claims.Exp > 0 && time.Now().Unix() > claims.Exp {
			RespondError(c, "token expirado", http.StatusUnauthorized)
			c.Abort()
			return
		}

		db := dbpkg.DBInstance(c)
		if db == nil {
			RespondError(c, "db não configurado no contexto", http.StatusInternalServerError)
			c.Abort()
			return
		}
		var usuario models.Usuario
		if err := db.First(&usuario, claims.Sub).Error; err != nil {
			RespondError(c, "usuário não encontrado", http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Set(ctxUsuarioKey, usuario)
		c.Next()
	}
}

// GetUsuarioLogado devolve o usuário carregado pelo AuthRequired.
func GetUsuarioLogado(c *gin.Context) (models.Usuario, bool) {
	v, ok := c.Get(ctxUsuarioKey)
	if !ok {
		return models.Usuario{}, false
	}
	usuario, ok := v.(models.Usuario)
	return usuario, ok
}

// SetUsuarioLogado injeta o usuário no contexto; usado nos testes de handler.
func SetUsuarioLogado(c *gin.Context, usuario models.Usuario) {
	c.Set(ctxUsuarioKey, usuario)
}

// parseAndVerifyJWT verifica JWT HS256 assinado pelo nosso Login.
func parseAndVerifyJWT(token string, secret string) (jwtClaims, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return jwtClaims{}, false
	}

	signingInput := parts[0] + "." + parts[1]
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signingInput))
	sig := mac.Sum(nil)
	expected := base64.RawURLEncoding.EncodeToString(sig)

	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return jwtClaims{}, false
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return jwtClaims{}, false
	}

	var claims jwtClaims
	if err := json.Unmarshal(payloadBytes, &claims); err != nil {
		return jwtClaims{}, false
	}

	if claims.Sub == 0 {
		return jwtClaims{}, false
	}
	return claims, true
}
