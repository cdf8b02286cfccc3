package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/albaran-pro/internal/application/dto"
	"github.com/tu-usuario/albaran-pro/internal/application/export"
	"github.com/tu-usuario/albaran-pro/internal/application/form"
	"github.com/tu-usuario/albaran-pro/internal/domain"
	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
	"github.com/tu-usuario/albaran-pro/internal/domain/listquery"
	"github.com/tu-usuario/albaran-pro/internal/domain/repository"
)

// AlbaranUseCase orquesta el flujo de albaranes: lee la colección del puerto de
// persistencia, aplica el motor de listado sobre la copia en memoria y canaliza
// todas las escrituras a través de sesiones de formulario, de modo que los
// importes derivados se recalculan siempre en servidor.
//
// El puerto es la fuente de verdad: si una escritura falla, la colección
// conocida queda intacta.
type AlbaranUseCase struct {
	repo repository.AlbaranRepository
}

// NewAlbaranUseCase construye el caso de uso.
func NewAlbaranUseCase(repo repository.AlbaranRepository) *AlbaranUseCase {
	return &AlbaranUseCase{repo: repo}
}

// List devuelve el listado filtrado y ordenado según la consulta.
func (uc *AlbaranUseCase) List(ctx context.Context, q listquery.Query) (*dto.AlbaranListResponse, error) {
	albaranes, err := uc.listar(ctx, q)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.AlbaranResponse, 0, len(albaranes))
	for _, a := range albaranes {
		items = append(items, dto.ToAlbaranResponse(a))
	}
	return &dto.AlbaranListResponse{Items: items, Total: len(items)}, nil
}

// GetByID obtiene un albarán. El puerto no expone lectura individual, así que
// se resuelve sobre la colección listada.
func (uc *AlbaranUseCase) GetByID(ctx context.Context, id string) (*dto.AlbaranResponse, error) {
	a, err := uc.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.ToAlbaranResponse(a), nil
}

// Create crea un albarán nuevo pasando la petición por una sesión de formulario:
// validación de obligatorios, coacción numérica y recálculo de importes.
func (uc *AlbaranUseCase) Create(ctx context.Context, in dto.CreateAlbaranRequest) (*dto.AlbaranResponse, error) {
	s := form.New(uc.repo)
	aplicarCabecera(s, in)
	for i, l := range in.Lineas {
		if err := s.AddLinea(); err != nil {
			return nil, err
		}
		aplicarLinea(s, i, l)
	}
	if err := s.Submit(ctx); err != nil {
		return nil, err
	}
	return dto.ToAlbaranResponse(s.Albaran()), nil
}

// Update edita parcialmente un albarán existente: reanuda una sesión sobre el
// documento persistido, aplica solo los campos presentes y vuelve a confirmar.
func (uc *AlbaranUseCase) Update(ctx context.Context, id string, in dto.UpdateAlbaranRequest) (*dto.AlbaranResponse, error) {
	existente, err := uc.buscar(ctx, id)
	if err != nil {
		return nil, err
	}
	s := form.Resume(uc.repo, existente)
	aplicarParcial(s, in)
	if in.Lineas != nil {
		for range existente.Lineas {
			if err := s.RemoveLinea(0); err != nil {
				return nil, err
			}
		}
		for i, l := range *in.Lineas {
			if err := s.AddLinea(); err != nil {
				return nil, err
			}
			aplicarLinea(s, i, l)
		}
	}
	if err := s.Submit(ctx); err != nil {
		return nil, err
	}
	return dto.ToAlbaranResponse(s.Albaran()), nil
}

// Delete elimina el albarán de la colección. Sin borrado lógico ni versionado.
func (uc *AlbaranUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar albarán %s: %w", id, err)
	}
	return nil
}

// ExportCSV genera el CSV del listado filtrado y ordenado actual.
func (uc *AlbaranUseCase) ExportCSV(ctx context.Context, q listquery.Query) (string, error) {
	albaranes, err := uc.listar(ctx, q)
	if err != nil {
		return "", err
	}
	return export.CSV(albaranes), nil
}

func (uc *AlbaranUseCase) listar(ctx context.Context, q listquery.Query) ([]*entity.Albaran, error) {
	albaranes, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar albaranes: %w", err)
	}
	return listquery.Apply(albaranes, q), nil
}

func (uc *AlbaranUseCase) buscar(ctx context.Context, id string) (*entity.Albaran, error) {
	albaranes, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar albaranes: %w", err)
	}
	for _, a := range albaranes {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func aplicarCabecera(s *form.Session, in dto.CreateAlbaranRequest) {
	_ = s.SetCampo(form.CampoNumero, in.NumeroAlbaran)
	if in.FechaEmision != "" {
		_ = s.SetCampo(form.CampoFecha, in.FechaEmision)
	}
	_ = s.SetCampo(form.CampoProveedorNombre, in.ProveedorNombre)
	_ = s.SetCampo(form.CampoProveedorCIF, in.ProveedorCIF)
	_ = s.SetCampo(form.CampoProveedorDireccion, in.ProveedorDireccion)
	_ = s.SetCampo(form.CampoClienteNombre, in.ClienteNombre)
	_ = s.SetCampo(form.CampoClienteCIF, in.ClienteCIF)
	_ = s.SetCampo(form.CampoClienteDireccion, in.ClienteDireccion)
	_ = s.SetCampo(form.CampoFirma, in.Firma)
	_ = s.SetCampo(form.CampoObservaciones, in.Observaciones)
}

func aplicarParcial(s *form.Session, in dto.UpdateAlbaranRequest) {
	set := func(campo form.Campo, valor *string) {
		if valor != nil {
			_ = s.SetCampo(campo, *valor)
		}
	}
	set(form.CampoNumero, in.NumeroAlbaran)
	set(form.CampoFecha, in.FechaEmision)
	set(form.CampoProveedorNombre, in.ProveedorNombre)
	set(form.CampoProveedorCIF, in.ProveedorCIF)
	set(form.CampoProveedorDireccion, in.ProveedorDireccion)
	set(form.CampoClienteNombre, in.ClienteNombre)
	set(form.CampoClienteCIF, in.ClienteCIF)
	set(form.CampoClienteDireccion, in.ClienteDireccion)
	set(form.CampoFirma, in.Firma)
	set(form.CampoObservaciones, in.Observaciones)
}

func aplicarLinea(s *form.Session, i int, l dto.LineaEditRequest) {
	_ = s.SetCampoLinea(i, form.LineaCodigo, l.Codigo)
	_ = s.SetCampoLinea(i, form.LineaDescripcion, l.Descripcion)
	_ = s.SetCampoLinea(i, form.LineaUnidad, l.Unidad)
	_ = s.SetCampoLinea(i, form.LineaCantidad, l.Cantidad)
	_ = s.SetCampoLinea(i, form.LineaPrecioUnitario, l.PrecioUnitario)
}
