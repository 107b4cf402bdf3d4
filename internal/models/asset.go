package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Asset categories offered by the registry form. The store does not reject
// other values; the list is a UI convention carried over from the source
// system.
var AssetCategories = []string{"Mecánico", "Eléctrico", "Infraestructura", "HVAC", "Otro"}

// Asset matches a document in the "activos" collection.
type Asset struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nombre    string             `bson:"nombre" json:"nombre"`
	Ubicacion string             `bson:"ubicacion" json:"ubicacion"`
	Categoria string             `bson:"categoria,omitempty" json:"categoria,omitempty"`
}
