package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the lifecycle state of a work order. Values are the Spanish
// labels persisted in the "ordenes" collection.
type OrderStatus string

const (
	StatusOpen          OrderStatus = "Abierta"
	StatusInProgress    OrderStatus = "En Proceso"
	StatusAwaitingParts OrderStatus = "En Espera de Repuestos"
	StatusClosed        OrderStatus = "Concluida"
)

// Criticality is the ordered severity of a work order.
type Criticality string

const (
	CriticalityLow      Criticality = "Baja"
	CriticalityMedium   Criticality = "Media"
	CriticalityHigh     Criticality = "Alta"
	CriticalityCritical Criticality = "Crítica"
)

// EvidenceNone is recorded as the evidence reference when a closure carries
// no attachment or the upload failed. Closure never fails on upload errors.
const EvidenceNone = "SIN_EVIDENCIA"

// WorkOrder matches a document in the "ordenes" collection.
//
// TecnicoID is the assignee's user id and is what visibility matching uses;
// TecnicoAsignado keeps the display name the original schema stored, so a
// user rename cannot orphan assignment history.
type WorkOrder struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ActivoID          primitive.ObjectID `bson:"activo_id" json:"activo_id"`
	Descripcion       string             `bson:"descripcion" json:"descripcion"`
	Criticidad        Criticality        `bson:"criticidad" json:"criticidad"`
	Estado            OrderStatus        `bson:"estado" json:"estado"`
	FechaCreacion     time.Time          `bson:"fecha_creacion" json:"fecha_creacion"`
	TecnicoID         string             `bson:"tecnico_id,omitempty" json:"tecnico_id,omitempty"`
	TecnicoAsignado   string             `bson:"tecnico_asignado,omitempty" json:"tecnico_asignado,omitempty"`
	ComentariosCierre string             `bson:"comentarios_cierre,omitempty" json:"comentarios_cierre,omitempty"`
	EvidenciaURL      string             `bson:"evidencia_url,omitempty" json:"evidencia_url,omitempty"`
}
