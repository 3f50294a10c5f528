// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"tarifario/internal/core/entity"
	"tarifario/internal/core/id"
	"tarifario/internal/domain/pricing"
	"tarifario/internal/infrastructure/storage/postgres"
	"tarifario/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to database
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	poolCfg := postgres.DefaultPoolConfig(dbURL)
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	// Seed admin user
	if _, err := seedAdminUser(ctx, pool, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	// Seed demo data if requested
	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, error) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@tarifario.io"
	}

	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	// Check if admin already exists
	var existingID id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE email = $1 AND NOT deletion_mark`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, nil
	}
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check admin exists: %w", err)
	}

	// Hash password
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	now := time.Now()

	// Create admin user
	_, err = pool.Pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, first_name, last_name,
			is_active, is_admin, email_verified, email_verified_at, version
		)
		VALUES ($1, $2, $3, 'System', 'Admin', true, true, true, $4, 1)
	`, userID, adminEmail, string(passwordHash), now)
	if err != nil {
		return id.Nil(), fmt.Errorf("insert admin user: %w", err)
	}

	// Assign admin role
	var adminRoleID id.ID
	err = pool.Pool.QueryRow(ctx,
		`SELECT id FROM roles WHERE code = 'admin'`,
	).Scan(&adminRoleID)
	if err != nil {
		log.Warnw("admin role not found, skipping role assignment", "error", err)
	} else {
		_, err = pool.Pool.Exec(ctx, `
			INSERT INTO user_roles (user_id, role_id, granted_by)
			VALUES ($1, $2, NULL)
			ON CONFLICT (user_id, role_id) DO NOTHING
		`, userID, adminRoleID)
		if err != nil {
			log.Warnw("failed to assign admin role", "error", err)
		}
	}

	log.Infow("admin user created",
		"email", adminEmail,
		"user_id", userID,
	)

	return userID, nil
}

// upsertCatalog inserts a catalog row and returns its ID, reusing the
// existing row on a code conflict. Re-running the seeder is safe.
func upsertCatalog(ctx context.Context, pool *postgres.Pool, table, code string, insert func(rowID id.ID) error) (id.ID, error) {
	var existing id.ID
	err := pool.Pool.QueryRow(ctx,
		`SELECT id FROM `+table+` WHERE code = $1 AND deletion_mark = FALSE`,
		code,
	).Scan(&existing)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), fmt.Errorf("check %s %s: %w", table, code, err)
	}

	rowID := id.New()
	if err := insert(rowID); err != nil {
		return id.Nil(), fmt.Errorf("insert %s %s: %w", table, code, err)
	}
	return rowID, nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger) error {
	log.Info("seeding demo data...")

	// 1. Company and branches
	companyID, err := upsertCatalog(ctx, pool, "cat_companies", "EMP-001", func(rowID id.ID) error {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_companies (id, code, name, state, ruc, address, version, deletion_mark, is_folder, attributes)
			VALUES ($1, $2, $3, $4, $5, $6, 1, false, false, '{}')
		`, rowID, "EMP-001", "Ferretería El Tornillo S.A.C.", entity.StateActive, "20601234567", "Av. Industrial 742, Lima")
		return err
	})
	if err != nil {
		return err
	}

	branches := []struct {
		code    string
		name    string
		address string
	}{
		{"SUC-001", "Sucursal Centro", "Jr. Comercio 120, Lima"},
		{"SUC-002", "Sucursal Norte", "Av. Panamericana Norte 3550, Lima"},
	}
	branchIDs := make(map[string]id.ID)
	for _, b := range branches {
		branchID, err := upsertCatalog(ctx, pool, "cat_branches", b.code, func(rowID id.ID) error {
			_, err := pool.Pool.Exec(ctx, `
				INSERT INTO cat_branches (id, code, name, state, company_id, address, version, deletion_mark, is_folder, attributes)
				VALUES ($1, $2, $3, $4, $5, $6, 1, false, false, '{}')
			`, rowID, b.code, b.name, entity.StateActive, companyID, b.address)
			return err
		})
		if err != nil {
			return err
		}
		branchIDs[b.code] = branchID
	}

	// 2. Article classifiers
	groupID, err := upsertCatalog(ctx, pool, "cat_article_groups", "GRP-001", func(rowID id.ID) error {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_article_groups (id, code, name, state, description, version, deletion_mark, is_folder, attributes)
			VALUES ($1, $2, $3, $4, $5, 1, false, false, '{}')
		`, rowID, "GRP-001", "Herramientas", "Herramientas manuales y eléctricas")
		return err
	})
	if err != nil {
		return err
	}

	lineID, err := upsertCatalog(ctx, pool, "cat_article_lines", "LIN-001", func(rowID id.ID) error {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_article_lines (id, code, name, state, description, version, deletion_mark, is_folder, attributes)
			VALUES ($1, $2, $3, $4, $5, 1, false, false, '{}')
		`, rowID, "LIN-001", "Línea Profesional", "Productos de uso profesional")
		return err
	})
	if err != nil {
		return err
	}

	// 3. Articles
	articles := []struct {
		code    string
		name    string
		barcode string
	}{
		{"ART-00001", "Martillo de carpintero 16oz", "7750000000011"},
		{"ART-00002", "Destornillador plano 6mm", "7750000000028"},
		{"ART-00003", "Taladro percutor 650W", "7750000000035"},
		{"ART-00004", "Caja de clavos 2\" (1kg)", "7750000000042"},
	}
	articleIDs := make(map[string]id.ID)
	for _, a := range articles {
		articleID, err := upsertCatalog(ctx, pool, "cat_articles", a.code, func(rowID id.ID) error {
			_, err := pool.Pool.Exec(ctx, `
				INSERT INTO cat_articles (id, code, name, state, barcode, group_id, line_id, stock, version, deletion_mark, is_folder, attributes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, 100, 1, false, false, '{}')
			`, rowID, a.code, a.name, entity.StateActive, a.barcode, groupID, lineID)
			return err
		})
		if err != nil {
			return err
		}
		articleIDs[a.code] = articleID
	}

	// 4. Customers and vendors
	customers := []struct {
		code     string
		name     string
		document string
	}{
		{"CLI-001", "Constructora Andina S.A.", "20512345678"},
		{"CLI-002", "Juan Pérez Gutiérrez", "45678912"},
	}
	for _, c := range customers {
		if _, err := upsertCatalog(ctx, pool, "cat_customers", c.code, func(rowID id.ID) error {
			_, err := pool.Pool.Exec(ctx, `
				INSERT INTO cat_customers (id, code, name, state, document_number, version, deletion_mark, is_folder, attributes)
				VALUES ($1, $2, $3, $4, $5, 1, false, false, '{}')
			`, rowID, c.code, c.name, entity.StateActive, c.document)
			return err
		}); err != nil {
			return err
		}
	}

	if _, err := upsertCatalog(ctx, pool, "cat_vendors", "PRV-001", func(rowID id.ID) error {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO cat_vendors (id, code, name, state, document_number, contact_name, version, deletion_mark, is_folder, attributes)
			VALUES ($1, $2, $3, $4, $5, $6, 1, false, false, '{}')
		`, rowID, "PRV-001", "Distribuidora Ferretera del Sur S.R.L.", entity.StateActive, "20487654321", "María Quispe")
		return err
	}); err != nil {
		return err
	}

	// 5. Price list (company-wide, currently in vigency)
	validFrom := time.Now().AddDate(0, -1, 0)
	listID, err := upsertCatalog(ctx, pool, "prc_price_lists", "LST-001", func(rowID id.ID) error {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO prc_price_lists (id, code, name, state, company_id, branch_id, kind, channel, valid_from, valid_to, description, version, deletion_mark, is_folder, attributes)
			VALUES ($1, $2, $3, $4, $5, NULL, $6, NULL, $7, NULL, $8, 1, false, false, '{}')
		`, rowID, "LST-001", "Lista General 2026", entity.StateActive, companyID,
			pricing.ListNormal, validFrom, "Lista de precios vigente para todas las sucursales")
		return err
	})
	if err != nil {
		return err
	}

	// 6. Item prices
	prices := []struct {
		article  string
		base     string
		lastCost string
	}{
		{"ART-00001", "45.90", "32.50"},
		{"ART-00002", "12.50", "8.20"},
		{"ART-00003", "389.00", "295.00"},
		{"ART-00004", "18.90", "13.40"},
	}
	for _, p := range prices {
		articleID := articleIDs[p.article]
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO prc_item_prices (id, price_list_id, article_id, base_price, last_cost, purchase_price, below_cost_authorized, version, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $5, false, 1, NOW(), NOW())
			ON CONFLICT (price_list_id, article_id) DO NOTHING
		`, id.New(), listID, articleID, p.base, p.lastCost)
		if err != nil {
			return fmt.Errorf("insert item price for %s: %w", p.article, err)
		}
	}

	// 7. Price rules: wholesale channel discount, then a unit scale
	if _, err := upsertCatalog(ctx, pool, "prc_price_rules", "RGL-001", func(rowID id.ID) error {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO prc_price_rules (id, code, name, state, price_list_id, kind, priority, channel, discount_kind, discount_value, version, deletion_mark, is_folder, attributes)
			VALUES ($1, $2, $3, $4, $5, $6, 10, $7, $8, 5, 1, false, false, '{}')
		`, rowID, "RGL-001", "Descuento Canal Mayorista", entity.StateActive, listID,
			pricing.RuleChannelBased, pricing.ChannelWholesale, pricing.DiscountPercentage)
		return err
	}); err != nil {
		return err
	}

	if _, err := upsertCatalog(ctx, pool, "prc_price_rules", "RGL-002", func(rowID id.ID) error {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO prc_price_rules (id, code, name, state, price_list_id, kind, priority, qty_min, qty_max, discount_kind, discount_value, version, deletion_mark, is_folder, attributes)
			VALUES ($1, $2, $3, $4, $5, $6, 20, 10, NULL, $7, 8, 1, false, false, '{}')
		`, rowID, "RGL-002", "Escala 10+ unidades", entity.StateActive, listID,
			pricing.RuleUnitScale, pricing.DiscountPercentage)
		return err
	}); err != nil {
		return err
	}

	// 8. Product combination on the tools group
	if _, err := upsertCatalog(ctx, pool, "prc_combinations", "CMB-001", func(rowID id.ID) error {
		_, err := pool.Pool.Exec(ctx, `
			INSERT INTO prc_combinations (id, code, name, state, price_list_id, group_id, combo_qty_min, combo_qty_max, discount_kind, discount_value, version, deletion_mark, is_folder, attributes)
			VALUES ($1, $2, $3, $4, $5, $6, 3, NULL, $7, 10, 1, false, false, '{}')
		`, rowID, "CMB-001", "Combo Herramientas x3", entity.StateActive, listID, groupID,
			pricing.DiscountPercentage)
		return err
	}); err != nil {
		return err
	}

	log.Infow("demo data seeded successfully",
		"company_id", companyID,
		"price_list_id", listID,
		"branches", len(branchIDs),
		"articles", len(articleIDs),
	)
	return nil
}
