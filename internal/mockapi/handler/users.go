package handler

import (
	"log"
	"net/http"

	"github.com/RsrchBoy/github-authorization/internal/mockapi/db"
	"github.com/gin-gonic/gin"
)

type createUserRequest struct {
	Login      string `json:"login" binding:"required"`
	Password   string `json:"password" binding:"required"`
	TOTPSecret string `json:"totp_secret"`
}

// HandleCreateUser handles POST /mock/users.
func HandleCreateUser(store *db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := store.CreateUser(req.Login, req.Password, req.TOTPSecret); err != nil {
			if err == db.ErrUserDuplicate {
				c.JSON(http.StatusConflict, gin.H{"error": "user already exists"})
				return
			}
			log.Printf("CreateUser error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"login": req.Login, "status": "created"})
	}
}

// HandleListAuthorizations handles GET /mock/users/:login/authorizations.
func HandleListAuthorizations(store *db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		login := c.Param("login")
		auths, err := store.ListAuthorizations(login)
		if err != nil {
			log.Printf("ListAuthorizations(%q) error: %v", login, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list authorizations"})
			return
		}
		if auths == nil {
			auths = []db.Authorization{}
		}
		c.JSON(http.StatusOK, auths)
	}
}
