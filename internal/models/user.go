package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Role values stored in the usuarios collection. The store keeps the
// Spanish labels the deployed database already uses.
const (
	RoleAdmin      = "Admin"
	RoleScheduler  = "Programador"
	RoleTechnician = "Tecnico"
)

// User matches a document in the "usuarios" collection.
//
// Password is stored and compared as plaintext. That reproduces the behavior
// of the system this server fronts; it is a known defect, not a choice.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nombre       string             `bson:"nombre" json:"nombre"`
	Email        string             `bson:"email" json:"email"`
	Password     string             `bson:"password" json:"-"`
	Rol          string             `bson:"rol" json:"rol"`
	Especialidad string             `bson:"especialidad,omitempty" json:"especialidad,omitempty"`
}
