package managers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"

	"voyago/internal/config"
	"voyago/internal/schemas"
	"voyago/internal/utils"
)

// JWTMgr handles bearer-token generation and validation plus the gin
// middleware guarding protected routes.
type JWTMgr interface {
	GenerateJWT(userId string) (string, error)
	ValidateJWT(tokenString string) (jwt.Claims, error)
	JWTMiddleware() gin.HandlerFunc
}

// JWTManager signs and verifies HS256 tokens with a shared secret. Tokens
// carry the user id as subject and remain valid until natural expiry; there
// is no refresh or revocation mechanism.
type JWTManager struct {
	secret      []byte
	tokenTTL    time.Duration
	databaseMgr DatabaseMgr
}

var errInvalidSigningMethod = errors.New("invalid signing method")

// NewJWTManager creates a JWTManager from the given config. The database
// manager is used by the middleware to resolve the token subject to a user.
func NewJWTManager(cfg config.JWTConfig, databaseMgr DatabaseMgr) JWTMgr {
	log.Info("Initializing JWT manager")
	return &JWTManager{
		secret:      []byte(cfg.Secret),
		tokenTTL:    cfg.TTL(),
		databaseMgr: databaseMgr,
	}
}

// GenerateJWT generates a signed token for the given user id.
func (jm *JWTManager) GenerateJWT(userId string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "voyago",
		Subject:   userId,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(jm.tokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jm.secret)
}

// ValidateJWT verifies signature and expiry and returns the claims if valid.
func (jm *JWTManager) ValidateJWT(tokenString string) (jwt.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errInvalidSigningMethod
		}
		return jm.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}

	return token.Claims, nil
}

// JWTMiddleware extracts and verifies the bearer token, resolves the subject
// to a user row and stores claims, user id and admin flag in the request
// context. A missing user yields the same unauthorized error as a bad token;
// a deactivated user yields a distinct inactive error.
func (jm *JWTManager) JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, &schemas.ErrorDTO{Error: *schemas.Unauthorized})
			return
		}

		claims, err := jm.ValidateJWT(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, &schemas.ErrorDTO{Error: *schemas.Unauthorized})
			return
		}

		subject, err := claims.GetSubject()
		if err != nil || subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, &schemas.ErrorDTO{Error: *schemas.Unauthorized})
			return
		}

		var isActive, isSuperuser bool
		queryString := "SELECT is_active, is_superuser FROM travel_schema.users WHERE user_id = $1"
		row := jm.databaseMgr.GetPool().QueryRow(c, queryString, subject)
		if err := row.Scan(&isActive, &isSuperuser); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, &schemas.ErrorDTO{Error: *schemas.Unauthorized})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, &schemas.ErrorDTO{Error: *schemas.DatabaseError})
			return
		}

		if !isActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, &schemas.ErrorDTO{Error: *schemas.UserInactive})
			return
		}

		c.Set(utils.ClaimsKey.String(), claims)
		c.Set(utils.UserIdKey.String(), subject)
		c.Set(utils.IsSuperuserKey.String(), isSuperuser)
		c.Next()
	}
}
