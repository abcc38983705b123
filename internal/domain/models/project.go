// internal/domain/models/project.go
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project status values. Stored as-is in the "estado" field.
const (
	ProjectOpen   = "Open"
	ProjectClosed = "Closed"
)

// Project is a collaborative work item stored in the "proyectos"
// collection. CreatorID never changes after creation.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"nombre" json:"name"`
	Description string             `bson:"descripcion,omitempty" json:"description,omitempty"`
	Languages   []string           `bson:"lenguajes,omitempty" json:"languages"`
	WeeklyHours int                `bson:"horasSemanales,omitempty" json:"weekly_hours"`
	CollabType  string             `bson:"tipoColaboracion,omitempty" json:"collab_type,omitempty"`
	Status      string             `bson:"estado" json:"status"`
	CreatorID   primitive.ObjectID `bson:"creadorID" json:"creator_id"`
}

// Normalize fills in defaults for fields that may be missing in a stored
// record.
func (p *Project) Normalize() {
	if p.Languages == nil {
		p.Languages = []string{}
	}
	if p.Status == "" {
		p.Status = ProjectOpen
	}
}

// IsOpen reports whether the project accepts new join requests.
func (p *Project) IsOpen() bool { return p.Status == ProjectOpen }
