package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuditRecord matches a document in the "auditoria_eliminados" collection.
// Records are append-only: the application inserts exactly one per asset
// retirement and never updates or removes them.
type AuditRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Tipo             string             `bson:"tipo" json:"tipo"`
	Referencia       string             `bson:"referencia" json:"referencia"`
	DatosRespaldo    Asset              `bson:"datos_respaldo" json:"datos_respaldo"`
	MotivoBaja       string             `bson:"motivo_baja" json:"motivo_baja"`
	Responsable      string             `bson:"responsable" json:"responsable"`
	FechaEliminacion time.Time          `bson:"fecha_eliminacion" json:"fecha_eliminacion"`
}

// AuditTypeAsset is the record type tag for retired assets. Users are hard
// deleted without an audit trail; the two paths are intentionally separate.
const AuditTypeAsset = "Activo"
