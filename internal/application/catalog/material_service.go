package catalog

import (
	"context"

	"github.com/atolye/backend/internal/domain/catalog"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaterialService handles material catalog operations
type MaterialService struct {
	materialRepo catalog.MaterialRepository
	logger       *zap.Logger
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(materialRepo catalog.MaterialRepository, logger *zap.Logger) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		logger:       logger,
	}
}

// Create creates a new material
func (s *MaterialService) Create(ctx context.Context, tenantID uuid.UUID, req CreateMaterialRequest) (*MaterialResponse, error) {
	material, err := catalog.NewMaterial(tenantID, req.Name, req.Unit, req.Price, currencyOrDefault(req.Currency))
	if err != nil {
		return nil, err
	}

	if err := s.materialRepo.Save(ctx, material); err != nil {
		return nil, err
	}

	s.logger.Info("material created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("material_id", material.ID.String()),
		zap.String("name", material.Name))

	response := ToMaterialResponse(material)
	return &response, nil
}

// Update changes a material's descriptive fields
func (s *MaterialService) Update(ctx context.Context, tenantID, materialID uuid.UUID, req UpdateMaterialRequest) (*MaterialResponse, error) {
	material, err := s.materialRepo.FindByIDForTenant(ctx, tenantID, materialID)
	if err != nil {
		return nil, err
	}

	if err := material.Update(req.Name, req.Unit, req.Price, currencyOrDefault(req.Currency)); err != nil {
		return nil, err
	}

	if err := s.materialRepo.SaveWithLock(ctx, material); err != nil {
		return nil, err
	}

	response := ToMaterialResponse(material)
	return &response, nil
}

// GetByID retrieves a material by ID
func (s *MaterialService) GetByID(ctx context.Context, tenantID, materialID uuid.UUID) (*MaterialResponse, error) {
	material, err := s.materialRepo.FindByIDForTenant(ctx, tenantID, materialID)
	if err != nil {
		return nil, err
	}
	response := ToMaterialResponse(material)
	return &response, nil
}

// List retrieves materials with filtering and pagination
func (s *MaterialService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) (shared.Paginated[MaterialResponse], error) {
	result, err := s.materialRepo.ListForTenant(ctx, tenantID, toDomainFilter(filter))
	if err != nil {
		return shared.Paginated[MaterialResponse]{}, err
	}

	items := make([]MaterialResponse, 0, len(result.Items))
	for _, material := range result.Items {
		items = append(items, ToMaterialResponse(material))
	}
	return shared.NewPaginated(items, result.Total, result.Page, result.PageSize), nil
}

// Delete removes a material from the catalog
func (s *MaterialService) Delete(ctx context.Context, tenantID, materialID uuid.UUID) error {
	if err := s.materialRepo.DeleteForTenant(ctx, tenantID, materialID); err != nil {
		return err
	}

	s.logger.Info("material deleted",
		zap.String("tenant_id", tenantID.String()),
		zap.String("material_id", materialID.String()))

	return nil
}

func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
