package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/tu-usuario/albaran-pro/internal/domain"
	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
	"github.com/tu-usuario/albaran-pro/internal/domain/repository"
)

var _ repository.AlbaranRepository = (*AlbaranRepo)(nil)

// AlbaranRepo implementación PostgreSQL de AlbaranRepository.
//
// Tabla esperada:
//
//	CREATE TABLE albaranes (
//	    id                  TEXT PRIMARY KEY,
//	    numero_albaran      TEXT NOT NULL,
//	    fecha_emision       TEXT NOT NULL,      -- fecha ISO YYYY-MM-DD
//	    proveedor_nombre    TEXT NOT NULL,
//	    proveedor_cif_nif   TEXT NOT NULL,
//	    proveedor_direccion TEXT NOT NULL,
//	    cliente_nombre      TEXT NOT NULL,
//	    cliente_cif_nif     TEXT NOT NULL,
//	    cliente_direccion   TEXT NOT NULL,
//	    productos           JSONB NOT NULL DEFAULT '[]',
//	    importe_total       NUMERIC(14,4) NOT NULL DEFAULT 0,
//	    firma               TEXT NOT NULL DEFAULT '',
//	    observaciones       TEXT NOT NULL DEFAULT ''
//	);
//
// Las líneas se guardan como JSON embebido en la columna productos; este
// adaptador es el único responsable de codificarlas y decodificarlas.
type AlbaranRepo struct {
	q Querier
}

// NewAlbaranRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlbaranRepository(q Querier) *AlbaranRepo {
	return &AlbaranRepo{q: q}
}

const columnas = `id, numero_albaran, fecha_emision,
	proveedor_nombre, proveedor_cif_nif, proveedor_direccion,
	cliente_nombre, cliente_cif_nif, cliente_direccion,
	productos, importe_total, firma, observaciones`

// List devuelve todos los albaranes, con el orden base por fecha_emision
// descendente (desempate por id para un orden reproducible).
func (r *AlbaranRepo) List(ctx context.Context) ([]*entity.Albaran, error) {
	query := `SELECT ` + columnas + ` FROM albaranes ORDER BY fecha_emision DESC, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listar albaranes: %v: %w", err, domain.ErrStoreUnavailable)
	}
	defer rows.Close()

	var list []*entity.Albaran
	for rows.Next() {
		var a entity.Albaran
		var productos []byte
		if err := rows.Scan(
			&a.ID, &a.NumeroAlbaran, &a.FechaEmision,
			&a.ProveedorNombre, &a.ProveedorCIF, &a.ProveedorDireccion,
			&a.ClienteNombre, &a.ClienteCIF, &a.ClienteDireccion,
			&productos, &a.ImporteTotal, &a.Firma, &a.Observaciones,
		); err != nil {
			return nil, fmt.Errorf("scan albarán: %w", err)
		}
		if len(productos) > 0 {
			if err := json.Unmarshal(productos, &a.Lineas); err != nil {
				return nil, fmt.Errorf("decodificar líneas del albarán %s: %w", a.ID, err)
			}
		}
		list = append(list, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listar albaranes: %v: %w", err, domain.ErrStoreUnavailable)
	}
	return list, nil
}

// Create persiste un albarán nuevo. Si el ID va vacío, lo asigna.
func (r *AlbaranRepo) Create(ctx context.Context, a *entity.Albaran) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	productos, err := json.Marshal(a.Lineas)
	if err != nil {
		return fmt.Errorf("codificar líneas: %w", err)
	}
	if a.Lineas == nil {
		productos = []byte("[]")
	}
	query := `
		INSERT INTO albaranes (` + columnas + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(ctx, query,
		a.ID, a.NumeroAlbaran, a.FechaEmision,
		a.ProveedorNombre, a.ProveedorCIF, a.ProveedorDireccion,
		a.ClienteNombre, a.ClienteCIF, a.ClienteDireccion,
		productos, a.ImporteTotal, a.Firma, a.Observaciones,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("albarán %s: %w", a.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert albarán: %v: %w", err, domain.ErrStoreUnavailable)
	}
	return nil
}

// Update aplica una actualización parcial: solo los campos no nil del patch
// entran en el SET.
func (r *AlbaranRepo) Update(ctx context.Context, id string, patch entity.AlbaranPatch) error {
	set, args := buildSet(patch)
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE albaranes SET %s WHERE id = $%d", joinSet(set), len(args))

	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update albarán: %v: %w", err, domain.ErrStoreUnavailable)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("albarán %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina el albarán por ID.
func (r *AlbaranRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM albaranes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete albarán: %v: %w", err, domain.ErrStoreUnavailable)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("albarán %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// buildSet construye las asignaciones SET y sus argumentos posicionales a
// partir de los campos presentes en el patch.
func buildSet(p entity.AlbaranPatch) ([]string, []any) {
	var set []string
	var args []any
	add := func(columna string, valor any) {
		args = append(args, valor)
		set = append(set, fmt.Sprintf("%s = $%d", columna, len(args)))
	}
	if p.NumeroAlbaran != nil {
		add("numero_albaran", *p.NumeroAlbaran)
	}
	if p.FechaEmision != nil {
		add("fecha_emision", *p.FechaEmision)
	}
	if p.ProveedorNombre != nil {
		add("proveedor_nombre", *p.ProveedorNombre)
	}
	if p.ProveedorCIF != nil {
		add("proveedor_cif_nif", *p.ProveedorCIF)
	}
	if p.ProveedorDireccion != nil {
		add("proveedor_direccion", *p.ProveedorDireccion)
	}
	if p.ClienteNombre != nil {
		add("cliente_nombre", *p.ClienteNombre)
	}
	if p.ClienteCIF != nil {
		add("cliente_cif_nif", *p.ClienteCIF)
	}
	if p.ClienteDireccion != nil {
		add("cliente_direccion", *p.ClienteDireccion)
	}
	if p.Lineas != nil {
		productos, err := json.Marshal(*p.Lineas)
		if err == nil {
			add("productos", productos)
		}
	}
	if p.ImporteTotal != nil {
		add("importe_total", *p.ImporteTotal)
	}
	if p.Firma != nil {
		add("firma", *p.Firma)
	}
	if p.Observaciones != nil {
		add("observaciones", *p.Observaciones)
	}
	return set, args
}

func joinSet(set []string) string {
	out := ""
	for i, s := range set {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}
