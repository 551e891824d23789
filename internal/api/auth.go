package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const adminTokenTTL = 24 * time.Hour

// AdminAuth issues and checks HS256 tokens for the single configured admin.
type AdminAuth struct {
	secret       []byte
	email        string
	passwordHash []byte
	now          func() time.Time
}

type adminClaims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

func NewAdminAuth(secret, email, passwordHash string) *AdminAuth {
	return &AdminAuth{
		secret:       []byte(secret),
		email:        email,
		passwordHash: []byte(passwordHash),
		now:          time.Now,
	}
}

func (a *AdminAuth) Middleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	tokenStr := strings.TrimPrefix(header, "Bearer ")
	if tokenStr == "" || tokenStr == header {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "missing token"})
		return
	}

	token, err := jwt.ParseWithClaims(tokenStr, &adminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid token"})
		return
	}
	c.Set("adminEmail", token.Claims.(*adminClaims).Email)
	c.Next()
}

func (a *AdminAuth) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Email != a.email || bcrypt.CompareHashAndPassword(a.passwordHash, []byte(req.Password)) != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid credentials"})
		return
	}

	token, err := a.issue(req.Email)
	if err != nil {
		respondError(c, fmt.Errorf("sign token: %w", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (a *AdminAuth) issue(email string) (string, error) {
	now := a.now()
	claims := adminClaims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			Subject:   email,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(adminTokenTTL).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}
