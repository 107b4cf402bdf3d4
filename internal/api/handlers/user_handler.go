// server/internal/api/handlers/user_handler.go
package handlers

import (
	"context"
	"net/http"

	"cmms-api-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserHandler struct {
	DB *mongo.Database
}

type CreateUserRequest struct {
	Nombre       string `json:"nombre" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	Rol          string `json:"rol" binding:"required"`
	Especialidad string `json:"especialidad"`
}

func validRole(rol string) bool {
	return rol == models.RoleAdmin || rol == models.RoleScheduler || rol == models.RoleTechnician
}

// GetAllUsers lists the personnel roster. Passwords never serialize.
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	cursor, err := h.DB.Collection("usuarios").Find(context.Background(), bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}
	defer cursor.Close(context.Background())

	var users []models.User
	if err = cursor.All(context.Background(), &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}

	if users == nil {
		users = []models.User{}
	}

	c.JSON(http.StatusOK, users)
}

// CreateUser registers a new account. Technicians must declare a specialty.
// The password is stored as received; login compares it byte-for-byte.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validRole(req.Rol) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}
	if req.Rol == models.RoleTechnician && req.Especialidad == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Technicians require a specialty"})
		return
	}

	collection := h.DB.Collection("usuarios")

	count, err := collection.CountDocuments(context.Background(), bson.M{"email": req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error checking for user"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists"})
		return
	}

	newUser := models.User{
		Nombre:       req.Nombre,
		Email:        req.Email,
		Password:     req.Password,
		Rol:          req.Rol,
		Especialidad: req.Especialidad,
	}

	result, err := collection.InsertOne(context.Background(), newUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		newUser.ID = oid
	}

	c.JSON(http.StatusCreated, newUser)
}

// UpdateUser overwrites an account's fields. Orders keep matching the
// account by id, so a rename does not orphan assignment history.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validRole(req.Rol) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}
	if req.Rol == models.RoleTechnician && req.Especialidad == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Technicians require a specialty"})
		return
	}

	result, err := h.DB.Collection("usuarios").UpdateOne(context.Background(), bson.M{"_id": userID}, bson.M{"$set": bson.M{
		"nombre":       req.Nombre,
		"email":        req.Email,
		"password":     req.Password,
		"rol":          req.Rol,
		"especialidad": req.Especialidad,
	}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// DeleteUser removes an account. The authenticated user cannot delete their
// own account. Deletion is hard and unaudited, unlike asset retirement; the
// source system treats the two differently and so does this one.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	if userID.Hex() == c.GetString("user_id") {
		c.JSON(http.StatusConflict, gin.H{"error": "You cannot delete your own account"})
		return
	}

	result, err := h.DB.Collection("usuarios").DeleteOne(context.Background(), bson.M{"_id": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
