// server/internal/api/handlers/auth_handler.go
package handlers

import (
	"context"
	"net/http"

	"cmms-api-server/internal/auth"
	"cmms-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthHandler struct {
	DB *mongo.Database
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates by exact email and password match against the
// usuarios collection. The comparison is byte-for-byte against the stored
// plaintext value, reproducing the system this server replaces. Any
// mismatch, including case, answers the same 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collection := h.DB.Collection("usuarios")

	var user models.User
	err := collection.FindOne(context.Background(), bson.M{"email": req.Email, "password": req.Password}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario o contraseña incorrectos"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error during login"})
		}
		return
	}

	token, err := auth.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"nombre": user.Nombre,
		"rol":    user.Rol,
	})
}

// Logout exists for client symmetry. Sessions are stateless tokens; the
// client discards its copy and the session is gone.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
