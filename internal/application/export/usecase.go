// Package export genera las salidas de la vista efectiva de un tenant: hoja PDF y feed XML.
package export

import (
	"context"
	"time"

	"github.com/jhoicas/Catalogos-api/internal/application/dto"
	"github.com/jhoicas/Catalogos-api/internal/application/ports"
)

// TenantViews lo que export necesita del caso de uso de tenants.
type TenantViews interface {
	Get(ctx context.Context, tenantID string) (*dto.TenantResponse, error)
	View(ctx context.Context, tenantID, catalogID string) (*dto.TenantViewResponse, error)
}

// UseCase exportaciones de catálogo por tenant.
type UseCase struct {
	views TenantViews
	pdf   ports.SheetRenderer
	feed  ports.FeedBuilder
	now   func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(views TenantViews, pdf ports.SheetRenderer, feed ports.FeedBuilder) *UseCase {
	return &UseCase{views: views, pdf: pdf, feed: feed, now: time.Now}
}

// Sheet arma la vista exportable. catalogID vacío usa el catálogo asignado.
func (uc *UseCase) Sheet(ctx context.Context, tenantID, catalogID string) (ports.CatalogSheet, error) {
	t, err := uc.views.Get(ctx, tenantID)
	if err != nil {
		return ports.CatalogSheet{}, err
	}
	v, err := uc.views.View(ctx, tenantID, catalogID)
	if err != nil {
		return ports.CatalogSheet{}, err
	}
	sheet := ports.CatalogSheet{
		Tenant:      t.Tenant,
		Catalog:     v.Catalog,
		EventName:   v.EventName,
		Version:     v.Version,
		GeneratedAt: uc.now().UTC(),
	}
	for _, c := range v.Combos {
		sheet.Combos = append(sheet.Combos, ports.SheetCombo{
			ID:            c.ID,
			Name:          c.Name,
			StoreNames:    c.StoreNames,
			Denominations: c.Denominations,
		})
	}
	return sheet, nil
}

// PDF genera la hoja PDF del catálogo efectivo.
func (uc *UseCase) PDF(ctx context.Context, tenantID, catalogID string) ([]byte, error) {
	sheet, err := uc.Sheet(ctx, tenantID, catalogID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Render(ctx, sheet)
}

// Feed genera el feed XML y su ETag.
func (uc *UseCase) Feed(ctx context.Context, tenantID, catalogID string) ([]byte, string, error) {
	sheet, err := uc.Sheet(ctx, tenantID, catalogID)
	if err != nil {
		return nil, "", err
	}
	return uc.feed.Build(ctx, sheet)
}
