package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/ecocart/backend/internal/barcode"
	"github.com/ecocart/backend/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var productColumns = []string{
	"id", "upc", "product_name", "brand", "quantity", "weight_kg",
	"manufacturing_places", "primary_category", "category_tags", "nova_group",
	"image_url", "energy_kcal_100g", "protein_100g", "carbohydrates_100g",
	"fat_100g", "sugars_100g", "salt_100g",
}

// Repository persists products, ingredients and packaging in Postgres.
type Repository struct {
	db *sql.DB
}

var _ domain.ProductRepository = (*Repository)(nil)

// NewRepository wires a sql.DB implementation.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var tags pq.StringArray
	err := row.Scan(
		&p.ID, &p.Barcode, &p.Name, &p.Brand, &p.Quantity, &p.WeightKg,
		&p.ManufacturingPlaces, &p.PrimaryCategory, &tags, &p.ProcessingTier,
		&p.ImageURL, &p.Nutriments.EnergyKcal100g, &p.Nutriments.Protein100g,
		&p.Nutriments.Carbohydrates100g, &p.Nutriments.Fat100g,
		&p.Nutriments.Sugars100g, &p.Nutriments.Salt100g,
	)
	if err != nil {
		return nil, err
	}
	p.CategoryTags = tags
	return &p, nil
}

// GetProductFacts returns one product by internal id.
func (r *Repository) GetProductFacts(ctx context.Context, id int64) (*domain.Product, error) {
	query, args, err := psql.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

// FindByBarcode looks a product up by any plausible representation of the
// scanned code, preferring earlier normalization candidates on multiple hits.
func (r *Repository) FindByBarcode(ctx context.Context, code string) (*domain.Product, error) {
	candidates := barcode.Normalize(code)

	query, args, err := psql.Select(productColumns...).
		From("products").
		Where(sq.Eq{"upc": candidates}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find by barcode %s: %w", code, err)
	}
	defer rows.Close()

	found := make(map[string]*domain.Product)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		found[product.Barcode] = product
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	for _, candidate := range candidates {
		if product, ok := found[candidate]; ok {
			return product, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// GetIngredients returns a product's ingredients in declaration order.
func (r *Repository) GetIngredients(ctx context.Context, productID int64) ([]domain.Ingredient, error) {
	query, args, err := psql.Select(
		"tag", "name", "percent_estimate", "percent_min", "percent_max",
		"rank", "health_class", "health_concerns", "is_additive",
		"additive_code", "vegan_status", "vegetarian_status", "from_palm_oil",
		"emission_factor",
	).
		From("product_ingredients").
		Where(sq.Eq{"product_id": productID}).
		OrderBy("rank").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get ingredients for %d: %w", productID, err)
	}
	defer rows.Close()

	var ingredients []domain.Ingredient
	for rows.Next() {
		var ing domain.Ingredient
		var health string
		if err := rows.Scan(
			&ing.Tag, &ing.Name, &ing.PercentEstimate, &ing.PercentMin,
			&ing.PercentMax, &ing.Rank, &health, &ing.HealthConcerns,
			&ing.IsAdditive, &ing.AdditiveCode, &ing.VeganStatus,
			&ing.VegetarianStatus, &ing.FromPalmOil, &ing.EmissionFactor,
		); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ing.Health = domain.HealthClass(health)
		ingredients = append(ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return ingredients, nil
}

// GetPackaging returns a product's packaging components.
func (r *Repository) GetPackaging(ctx context.Context, productID int64) ([]domain.PackagingComponent, error) {
	query, args, err := psql.Select(
		"material_tag", "material_name", "environmental_score",
		"score_adjustment", "production_co2_per_kg", "shape", "recycling",
		"number_of_units", "weight_percent",
	).
		From("product_packaging").
		Where(sq.Eq{"product_id": productID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get packaging for %d: %w", productID, err)
	}
	defer rows.Close()

	var components []domain.PackagingComponent
	for rows.Next() {
		var c domain.PackagingComponent
		if err := rows.Scan(
			&c.Material.Tag, &c.Material.Name, &c.Material.EnvironmentalScore,
			&c.Material.ScoreAdjustment, &c.Material.ProductionCO2PerKg,
			&c.Shape, &c.Recycling, &c.NumberOfUnits, &c.WeightPercent,
		); err != nil {
			return nil, fmt.Errorf("scan packaging: %w", err)
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return components, nil
}

// FindByCategory returns lightweight summaries of other products in a
// category, for recommendation candidate retrieval.
func (r *Repository) FindByCategory(ctx context.Context, category string, excludeID int64, limit int) ([]domain.ProductSummary, error) {
	if category == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	query, args, err := psql.Select("id", "upc", "product_name", "brand", "primary_category", "image_url").
		From("products").
		Where(sq.Eq{"primary_category": category}).
		Where(sq.NotEq{"id": excludeID}).
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find by category %q: %w", category, err)
	}
	defer rows.Close()

	var summaries []domain.ProductSummary
	for rows.Next() {
		var s domain.ProductSummary
		if err := rows.Scan(&s.ID, &s.Barcode, &s.Name, &s.Brand, &s.Category, &s.ImageURL); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return summaries, nil
}

// UpsertProduct atomically inserts or refreshes a catalog record and returns
// the stored product. Ingredient and packaging rows are replaced wholesale;
// ON CONFLICT on the barcode makes concurrent duplicate ingests safe.
func (r *Repository) UpsertProduct(ctx context.Context, record *domain.ProductRecord) (*domain.Product, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	p := record.Product
	query := `INSERT INTO products
              (upc, product_name, brand, quantity, weight_kg, manufacturing_places,
               primary_category, category_tags, nova_group, image_url,
               energy_kcal_100g, protein_100g, carbohydrates_100g, fat_100g,
               sugars_100g, salt_100g)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
              ON CONFLICT (upc) DO UPDATE
              SET product_name = EXCLUDED.product_name,
                  brand = EXCLUDED.brand,
                  quantity = EXCLUDED.quantity,
                  weight_kg = EXCLUDED.weight_kg,
                  manufacturing_places = EXCLUDED.manufacturing_places,
                  primary_category = EXCLUDED.primary_category,
                  category_tags = EXCLUDED.category_tags,
                  nova_group = EXCLUDED.nova_group,
                  image_url = EXCLUDED.image_url,
                  energy_kcal_100g = EXCLUDED.energy_kcal_100g,
                  protein_100g = EXCLUDED.protein_100g,
                  carbohydrates_100g = EXCLUDED.carbohydrates_100g,
                  fat_100g = EXCLUDED.fat_100g,
                  sugars_100g = EXCLUDED.sugars_100g,
                  salt_100g = EXCLUDED.salt_100g,
                  updated_at = NOW()
              RETURNING id`

	var id int64
	err = tx.QueryRowContext(ctx, query,
		p.Barcode, p.Name, p.Brand, p.Quantity, p.WeightKg,
		p.ManufacturingPlaces, p.PrimaryCategory, pq.StringArray(p.CategoryTags),
		p.ProcessingTier, p.ImageURL,
		p.Nutriments.EnergyKcal100g, p.Nutriments.Protein100g,
		p.Nutriments.Carbohydrates100g, p.Nutriments.Fat100g,
		p.Nutriments.Sugars100g, p.Nutriments.Salt100g,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("upsert product %s: %w", p.Barcode, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_ingredients WHERE product_id = $1`, id); err != nil {
		return nil, fmt.Errorf("clear ingredients: %w", err)
	}
	for _, ing := range record.Ingredients {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO product_ingredients
             (product_id, tag, name, percent_estimate, percent_min, percent_max,
              rank, health_class, health_concerns, is_additive, additive_code,
              vegan_status, vegetarian_status, from_palm_oil, emission_factor)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
             ON CONFLICT (product_id, tag) DO NOTHING`,
			id, ing.Tag, ing.Name, ing.PercentEstimate, ing.PercentMin,
			ing.PercentMax, ing.Rank, string(ing.Health), ing.HealthConcerns,
			ing.IsAdditive, ing.AdditiveCode, ing.VeganStatus,
			ing.VegetarianStatus, ing.FromPalmOil, ing.EmissionFactor,
		)
		if err != nil {
			return nil, fmt.Errorf("insert ingredient %s: %w", ing.Tag, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM product_packaging WHERE product_id = $1`, id); err != nil {
		return nil, fmt.Errorf("clear packaging: %w", err)
	}
	for _, c := range record.Packaging {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO product_packaging
             (product_id, material_tag, material_name, environmental_score,
              score_adjustment, production_co2_per_kg, shape, recycling,
              number_of_units, weight_percent)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			id, c.Material.Tag, c.Material.Name, c.Material.EnvironmentalScore,
			c.Material.ScoreAdjustment, c.Material.ProductionCO2PerKg,
			c.Shape, c.Recycling, c.NumberOfUnits, c.WeightPercent,
		)
		if err != nil {
			return nil, fmt.Errorf("insert packaging %s: %w", c.Material.Tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	stored := p
	stored.ID = id
	return &stored, nil
}
