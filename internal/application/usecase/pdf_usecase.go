package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/albaran-pro/internal/domain"
	"github.com/tu-usuario/albaran-pro/internal/domain/entity"
	"github.com/tu-usuario/albaran-pro/internal/domain/repository"
)

// AlbaranPDFGenerator puerto de generación del albarán imprimible.
type AlbaranPDFGenerator interface {
	GenerateAlbaranPDF(ctx context.Context, albaran *entity.Albaran) ([]byte, error)
}

// PDFUseCase produce la hoja imprimible de un albarán.
type PDFUseCase struct {
	repo      repository.AlbaranRepository
	generator AlbaranPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(repo repository.AlbaranRepository, generator AlbaranPDFGenerator) *PDFUseCase {
	return &PDFUseCase{repo: repo, generator: generator}
}

// Generate localiza el albarán y devuelve los bytes del PDF.
func (uc *PDFUseCase) Generate(ctx context.Context, id string) ([]byte, error) {
	albaranes, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar albaranes: %w", err)
	}
	for _, a := range albaranes {
		if a.ID == id {
			pdf, err := uc.generator.GenerateAlbaranPDF(ctx, a)
			if err != nil {
				return nil, fmt.Errorf("generar PDF del albarán %s: %w", id, err)
			}
			return pdf, nil
		}
	}
	return nil, fmt.Errorf("albarán %s: %w", id, domain.ErrNotFound)
}
