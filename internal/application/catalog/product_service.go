package catalog

import (
	"context"

	"github.com/atolye/backend/internal/domain/catalog"
	"github.com/atolye/backend/internal/domain/shared"
	"github.com/atolye/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product catalog operations and unit price queries
type ProductService struct {
	productRepo  catalog.ProductRepository
	materialRepo catalog.MaterialRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, materialRepo catalog.MaterialRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		materialRepo: materialRepo,
		logger:       logger,
	}
}

// Create creates a new product with its recipe
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(tenantID, req.Name, req.Code,
		req.LaborCost, req.OverheadCost, req.ProfitMargin, currencyOrDefault(req.Currency))
	if err != nil {
		return nil, err
	}

	if err := s.applyRecipe(product, req.Lines, req.ManualItems); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("tenant_id", tenantID.String()),
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	response := ToProductResponse(product)
	return &response, nil
}

// Update replaces a product's descriptive fields and its whole recipe
func (s *ProductService) Update(ctx context.Context, tenantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	product.Name = req.Name
	product.Code = req.Code
	if err := product.UpdateCosts(req.LaborCost, req.OverheadCost, req.ProfitMargin); err != nil {
		return nil, err
	}

	product.Lines = product.Lines[:0]
	product.ManualItems = product.ManualItems[:0]
	if err := s.applyRecipe(product, req.Lines, req.ManualItems); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

func (s *ProductService) applyRecipe(product *catalog.Product, lines []RecipeLineRequest, items []ManualItemRequest) error {
	for _, line := range lines {
		if err := product.AddLine(line.MaterialID, line.Quantity, line.WastePercent); err != nil {
			return err
		}
	}
	for _, item := range items {
		if err := product.AddManualItem(item.Name, item.Unit, item.Quantity, item.WastePercent, item.UnitPrice, currencyOrDefault(item.Currency)); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, tenantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with filtering and pagination
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) (shared.Paginated[ProductResponse], error) {
	result, err := s.productRepo.ListForTenant(ctx, tenantID, toDomainFilter(filter))
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	items := make([]ProductResponse, 0, len(result.Items))
	for _, product := range result.Items {
		items = append(items, ToProductResponse(product))
	}
	return shared.NewPaginated(items, result.Total, result.Page, result.PageSize), nil
}

// Delete removes a product from the catalog
func (s *ProductService) Delete(ctx context.Context, tenantID, productID uuid.UUID) error {
	return s.productRepo.DeleteForTenant(ctx, tenantID, productID)
}

// ComputeUnitPrice resolves the product's recipe against the current material
// catalog and runs the cost cascade. A catalog recipe referencing a missing
// material yields a reference-not-found error and no partial price.
func (s *ProductService) ComputeUnitPrice(ctx context.Context, tenantID, productID uuid.UUID) (*UnitPriceResponse, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}

	price, source, err := s.unitPrice(ctx, tenantID, product)
	if err != nil {
		return nil, err
	}

	return &UnitPriceResponse{
		ProductID: product.ID,
		UnitPrice: price.Amount(),
		Currency:  string(price.Currency()),
		Source:    source,
	}, nil
}

// UnitPriceFor computes the unit price of an already loaded product.
// Shared with the trade services that need a price snapshot.
func (s *ProductService) UnitPriceFor(ctx context.Context, tenantID uuid.UUID, product *catalog.Product) (valueobject.Money, error) {
	price, _, err := s.unitPrice(ctx, tenantID, product)
	return price, err
}

// UnitPriceByID loads the product and computes its unit price. This is the
// pricing port the trade services snapshot from when creating or updating
// orders and offers.
func (s *ProductService) UnitPriceByID(ctx context.Context, tenantID, productID uuid.UUID) (valueobject.Money, error) {
	product, err := s.productRepo.FindByIDForTenant(ctx, tenantID, productID)
	if err != nil {
		return valueobject.Money{}, err
	}
	return s.UnitPriceFor(ctx, tenantID, product)
}

func (s *ProductService) unitPrice(ctx context.Context, tenantID uuid.UUID, product *catalog.Product) (valueobject.Money, string, error) {
	materialsByID := make(map[uuid.UUID]*catalog.Material)
	if product.HasCatalogRecipe() {
		ids := make([]uuid.UUID, 0, len(product.Lines))
		for _, line := range product.Lines {
			ids = append(ids, line.MaterialID)
		}
		materials, err := s.materialRepo.FindByIDsForTenant(ctx, tenantID, ids)
		if err != nil {
			return valueobject.Money{}, "", err
		}
		for _, material := range materials {
			materialsByID[material.ID] = material
		}
	}

	recipe, err := product.ResolveRecipe(materialsByID)
	if err != nil {
		return valueobject.Money{}, "", err
	}

	price, err := product.PriceRecipe(recipe)
	if err != nil {
		return valueobject.Money{}, "", err
	}
	return price, string(recipe.Source), nil
}
