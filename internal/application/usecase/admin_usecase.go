package usecase

import (
	"context"

	"github.com/jhoicas/reservas-api/internal/domain"
	"github.com/jhoicas/reservas-api/internal/domain/policy"
)

// DataResetter es el puerto del reset administrativo: vuelve el store al
// estado mínimo sembrado. Lo implementa el Seeder de postgres.
type DataResetter interface {
	Reset(ctx context.Context) error
}

// AdminUseCase operaciones administrativas destructivas.
type AdminUseCase struct {
	resetter DataResetter
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(resetter DataResetter) *AdminUseCase {
	return &AdminUseCase{resetter: resetter}
}

// ResetData vacía las reservas y re-siembra el estado mínimo. Requiere la
// capacidad canResetData.
func (uc *AdminUseCase) ResetData(ctx context.Context, actor policy.Actor) error {
	if !actor.Can(policy.CanResetData) {
		return domain.ErrForbidden
	}
	return uc.resetter.Reset(ctx)
}
