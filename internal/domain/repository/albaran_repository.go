package repository

import (
	"context"

	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
)

// AlbaranRepository define el puerto de persistencia para albaranes.
//
// Las implementaciones (PostgreSQL, Airtable o el sustituto en memoria) deben
// satisfacer contratos idénticos:
//   - List devuelve todos los documentos ordenados por fecha_emision descendente
//     como orden base (el motor de listado reordena según la consulta).
//   - Create persiste un documento nuevo; si ID va vacío, el almacén lo asigna.
//   - Update aplica una actualización parcial: los campos nil del patch quedan intactos.
//   - Las líneas se serializan como JSON embebido en un único campo de almacenamiento;
//     codificar y decodificar es responsabilidad de la implementación, nunca del núcleo.
//
// Un fallo de red o del backend se devuelve envolviendo domain.ErrStoreUnavailable;
// el estado en memoria del llamador queda en su último valor conocido.
type AlbaranRepository interface {
	List(ctx context.Context) ([]*entity.Albaran, error)
	Create(ctx context.Context, albaran *entity.Albaran) error
	Update(ctx context.Context, id string, patch entity.AlbaranPatch) error
	Delete(ctx context.Context, id string) error
}
