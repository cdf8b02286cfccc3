// Package form implementa el motor de edición de un albarán: una sesión mantiene
// una única copia de trabajo, recalcula los importes derivados en cada edición y
// la entrega al puerto de persistencia al confirmar.
package form

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/albaran-pro/internal/domain"
	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
	"github.com/tu-usuario/albaran-pro/internal/domain/repository"
)

// Estado de la sesión de formulario.
//
// Vacío → Editando → (Válido | Inválido) → Enviado | Cancelado.
// Editando se reentra en cada cambio de campo; Enviado y Cancelado son
// terminales para esta copia de trabajo.
type Estado int

const (
	EstadoVacio Estado = iota
	EstadoEditando
	EstadoValido
	EstadoInvalido
	EstadoEnviado
	EstadoCancelado
)

// Campo identifica un campo escalar de cabecera del albarán. El despacho por
// enumeración (y no por nombre en texto) hace exhaustiva la comprobación en
// compilación de qué campos disparan recálculo.
type Campo int

const (
	CampoNumero Campo = iota
	CampoFecha
	CampoProveedorNombre
	CampoProveedorCIF
	CampoProveedorDireccion
	CampoClienteNombre
	CampoClienteCIF
	CampoClienteDireccion
	CampoFirma
	CampoObservaciones
)

// CampoLinea identifica un campo de una línea. Cantidad y PrecioUnitario
// disparan el recálculo inmediato de ImporteLinea.
type CampoLinea int

const (
	LineaCodigo CampoLinea = iota
	LineaDescripcion
	LineaCantidad
	LineaUnidad
	LineaPrecioUnitario
)

// Session es la copia de trabajo de un albarán en edición. No es segura para
// uso concurrente: cada sesión pertenece a un único flujo de edición.
type Session struct {
	repo    repository.AlbaranRepository
	albaran entity.Albaran
	estado  Estado
	nuevo   bool
}

// New crea una sesión para un albarán nuevo: ID preasignado, fecha de emisión
// de hoy, sin líneas.
func New(repo repository.AlbaranRepository) *Session {
	return &Session{
		repo: repo,
		albaran: entity.Albaran{
			ID:           uuid.New().String(),
			FechaEmision: time.Now().Format("2006-01-02"),
			ImporteTotal: decimal.Zero,
		},
		estado: EstadoVacio,
		nuevo:  true,
	}
}

// Resume crea una sesión de edición sobre un albarán ya persistido. Trabaja
// sobre una copia: la colección del llamador no se toca hasta confirmar.
func Resume(repo repository.AlbaranRepository, albaran *entity.Albaran) *Session {
	return &Session{
		repo:    repo,
		albaran: *albaran.Clone(),
		estado:  EstadoEditando,
		nuevo:   false,
	}
}

// Estado devuelve el estado actual de la sesión.
func (s *Session) Estado() Estado { return s.estado }

// Albaran devuelve una copia de la copia de trabajo actual.
func (s *Session) Albaran() *entity.Albaran { return s.albaran.Clone() }

// SetCampo actualiza un campo escalar de cabecera.
func (s *Session) SetCampo(campo Campo, valor string) error {
	if err := s.editable(); err != nil {
		return err
	}
	switch campo {
	case CampoNumero:
		s.albaran.NumeroAlbaran = valor
	case CampoFecha:
		s.albaran.FechaEmision = valor
	case CampoProveedorNombre:
		s.albaran.ProveedorNombre = valor
	case CampoProveedorCIF:
		s.albaran.ProveedorCIF = valor
	case CampoProveedorDireccion:
		s.albaran.ProveedorDireccion = valor
	case CampoClienteNombre:
		s.albaran.ClienteNombre = valor
	case CampoClienteCIF:
		s.albaran.ClienteCIF = valor
	case CampoClienteDireccion:
		s.albaran.ClienteDireccion = valor
	case CampoFirma:
		s.albaran.Firma = valor
	case CampoObservaciones:
		s.albaran.Observaciones = valor
	default:
		return fmt.Errorf("campo de cabecera desconocido %d: %w", campo, domain.ErrInvalidInput)
	}
	s.estado = EstadoEditando
	return nil
}

// SetCampoLinea actualiza un campo de la línea en la posición indicada. Si el
// campo es cantidad o precio_unitario se recalcula de inmediato
// importe_linea = cantidad × precio_unitario y, con él, el importe total.
// Un índice fuera de rango es un error de programación y provoca panic: la
// interfaz solo entrega índices válidos.
func (s *Session) SetCampoLinea(i int, campo CampoLinea, valor string) error {
	if err := s.editable(); err != nil {
		return err
	}
	linea := &s.albaran.Lineas[i]
	switch campo {
	case LineaCodigo:
		linea.Codigo = valor
	case LineaDescripcion:
		linea.Descripcion = valor
	case LineaUnidad:
		linea.Unidad = valor
	case LineaCantidad:
		linea.Cantidad = coerceDecimal(valor)
		linea.ImporteLinea = linea.Cantidad.Mul(linea.PrecioUnitario)
		s.recalcularTotal()
	case LineaPrecioUnitario:
		linea.PrecioUnitario = coerceDecimal(valor)
		linea.ImporteLinea = linea.Cantidad.Mul(linea.PrecioUnitario)
		s.recalcularTotal()
	default:
		return fmt.Errorf("campo de línea desconocido %d: %w", campo, domain.ErrInvalidInput)
	}
	s.estado = EstadoEditando
	return nil
}

// AddLinea añade una línea nueva con los valores iniciales del formulario:
// cantidad 1, unidad "unidades", importes a cero.
func (s *Session) AddLinea() error {
	if err := s.editable(); err != nil {
		return err
	}
	s.albaran.Lineas = append(s.albaran.Lineas, entity.LineaAlbaran{
		Cantidad:       decimal.NewFromInt(1),
		Unidad:         "unidades",
		PrecioUnitario: decimal.Zero,
		ImporteLinea:   decimal.Zero,
	})
	s.recalcularTotal()
	s.estado = EstadoEditando
	return nil
}

// RemoveLinea elimina la línea en la posición indicada; las siguientes se
// desplazan. Índice fuera de rango provoca panic (error de programación).
func (s *Session) RemoveLinea(i int) error {
	if err := s.editable(); err != nil {
		return err
	}
	_ = s.albaran.Lineas[i]
	s.albaran.Lineas = append(s.albaran.Lineas[:i], s.albaran.Lineas[i+1:]...)
	s.recalcularTotal()
	s.estado = EstadoEditando
	return nil
}

// Submit valida los campos obligatorios y, si el documento es válido, lo entrega
// al puerto de persistencia (Create si es nuevo, Update parcial si ya existía).
// Si falta algún campo devuelve *domain.ValidationError con la lista y no
// escribe nada. Si el almacén falla, la sesión sigue editable para reintentar.
func (s *Session) Submit(ctx context.Context) error {
	if err := s.editable(); err != nil {
		return err
	}
	if faltantes := s.camposFaltantes(); len(faltantes) > 0 {
		s.estado = EstadoInvalido
		return &domain.ValidationError{Campos: faltantes}
	}
	s.estado = EstadoValido

	if s.nuevo {
		if err := s.repo.Create(ctx, &s.albaran); err != nil {
			return fmt.Errorf("guardar albarán nuevo: %w", err)
		}
	} else {
		patch := s.patchCompleto()
		if err := s.repo.Update(ctx, s.albaran.ID, patch); err != nil {
			return fmt.Errorf("actualizar albarán %s: %w", s.albaran.ID, err)
		}
	}
	s.estado = EstadoEnviado
	return nil
}

// Cancel descarta la copia de trabajo. Estado terminal.
func (s *Session) Cancel() {
	if s.estado != EstadoEnviado {
		s.estado = EstadoCancelado
	}
}

func (s *Session) editable() error {
	if s.estado == EstadoEnviado || s.estado == EstadoCancelado {
		return fmt.Errorf("la sesión de formulario ya terminó: %w", domain.ErrConflict)
	}
	return nil
}

func (s *Session) recalcularTotal() {
	total := decimal.Zero
	for _, l := range s.albaran.Lineas {
		total = total.Add(l.ImporteLinea)
	}
	s.albaran.ImporteTotal = total
}

func (s *Session) camposFaltantes() []string {
	requeridos := []struct {
		nombre string
		valor  string
	}{
		{"numero_albaran", s.albaran.NumeroAlbaran},
		{"fecha_emision", s.albaran.FechaEmision},
		{"proveedor_nombre", s.albaran.ProveedorNombre},
		{"proveedor_cif_nif", s.albaran.ProveedorCIF},
		{"proveedor_direccion", s.albaran.ProveedorDireccion},
		{"cliente_nombre", s.albaran.ClienteNombre},
		{"cliente_cif_nif", s.albaran.ClienteCIF},
		{"cliente_direccion", s.albaran.ClienteDireccion},
	}
	var faltantes []string
	for _, r := range requeridos {
		if r.valor == "" {
			faltantes = append(faltantes, r.nombre)
		}
	}
	return faltantes
}

// patchCompleto construye un patch con todos los campos editables del
// formulario: la sesión posee el documento completo, así que la actualización
// parcial del puerto los incluye todos.
func (s *Session) patchCompleto() entity.AlbaranPatch {
	a := s.albaran
	lineas := append([]entity.LineaAlbaran(nil), a.Lineas...)
	return entity.AlbaranPatch{
		NumeroAlbaran:      &a.NumeroAlbaran,
		FechaEmision:       &a.FechaEmision,
		ProveedorNombre:    &a.ProveedorNombre,
		ProveedorCIF:       &a.ProveedorCIF,
		ProveedorDireccion: &a.ProveedorDireccion,
		ClienteNombre:      &a.ClienteNombre,
		ClienteCIF:         &a.ClienteCIF,
		ClienteDireccion:   &a.ClienteDireccion,
		Lineas:             &lineas,
		ImporteTotal:       &a.ImporteTotal,
		Firma:              &a.Firma,
		Observaciones:      &a.Observaciones,
	}
}

// coerceDecimal convierte la entrada del usuario a decimal. La entrada no
// numérica se convierte en 0 en lugar de fallar: los importes derivados se
// mantienen siempre calculables y la validación ocurre al confirmar.
func coerceDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
