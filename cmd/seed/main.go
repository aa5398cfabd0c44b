// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"quotify/internal/core/id"
	"quotify/internal/domain/auth"
	"quotify/internal/domain/quotation"
	"quotify/internal/infrastructure/storage/postgres"
	"quotify/pkg/logger"
	"quotify/pkg/sequence"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

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

	adminID, adminEmail, err := seedAdminUser(ctx, pool, log)
	if err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, log, adminID, adminEmail); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, pool *postgres.Pool, log *logger.Logger) (id.ID, string, error) {
	adminEmail := os.Getenv("SEED_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@quotify.local"
	}

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	var existingID id.ID
	err := pool.QueryRow(ctx,
		`SELECT id FROM users WHERE lower(email) = lower($1)`,
		adminEmail,
	).Scan(&existingID)
	if err == nil {
		log.Infow("admin user already exists", "email", adminEmail, "user_id", existingID)
		return existingID, adminEmail, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return id.Nil(), "", fmt.Errorf("check admin exists: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return id.Nil(), "", fmt.Errorf("hash password: %w", err)
	}

	userID := id.New()
	_, err = pool.Exec(ctx, `
		INSERT INTO users (
			id, email, password_hash, name, role,
			is_active, accepted_terms
		)
		VALUES ($1, $2, $3, 'System Admin', $4, true, true)
	`, userID, adminEmail, string(passwordHash), auth.RoleAdmin)
	if err != nil {
		return id.Nil(), "", fmt.Errorf("insert admin user: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", userID)
	return userID, adminEmail, nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, log *logger.Logger, adminID id.ID, adminEmail string) error {
	log.Info("seeding demo data...")

	// 1. Clients
	clients := []struct {
		name    string
		email   string
		country string
	}{
		{"Acme Trading Ltd", "contact@acme-trading.test", "United Kingdom"},
		{"Nordwind Logistics", "office@nordwind.test", "Germany"},
		{"Solstice Studio", "hello@solstice.test", "Canada"},
	}

	clientIDs := make([]id.ID, 0, len(clients))
	for i, c := range clients {
		cid := id.New()
		code := sequence.Format("CLT", int64(i+1))
		tag, err := pool.Exec(ctx, `
			INSERT INTO clients (id, code, name, email, country, created_by_id, created_by_email)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (code) DO NOTHING
		`, cid, code, c.name, c.email, c.country, adminID, adminEmail)
		if err != nil {
			log.Warnw("failed to seed client", "name", c.name, "error", err)
			continue
		}
		if tag.RowsAffected() == 0 {
			if err := pool.QueryRow(ctx, `SELECT id FROM clients WHERE code = $1`, code).Scan(&cid); err != nil {
				log.Warnw("failed to fetch existing client", "code", code, "error", err)
				continue
			}
		}
		clientIDs = append(clientIDs, cid)
	}

	// Keep the sequence ahead of the seeded codes.
	_, err := pool.Exec(ctx, `
		INSERT INTO sys_sequences (name, last_value)
		VALUES ($1, $2)
		ON CONFLICT (name)
		DO UPDATE SET last_value = GREATEST(sys_sequences.last_value, EXCLUDED.last_value)
	`, sequence.Clients, len(clients))
	if err != nil {
		log.Warnw("failed to bump client sequence", "error", err)
	}

	// 2. Items
	items := []struct {
		title string
		price string
	}{
		{"Consulting hour", "95.00"},
		{"Logo design", "450.00"},
		{"Landing page", "1200.00"},
		{"Hosting (monthly)", "25.00"},
	}

	for _, it := range items {
		price, _ := decimal.NewFromString(it.price)
		_, err := pool.Exec(ctx, `
			INSERT INTO items (id, title, price)
			VALUES ($1, $2, $3)
		`, id.New(), it.title, price)
		if err != nil {
			log.Warnw("failed to seed item", "title", it.title, "error", err)
		}
	}

	// 3. Quotations
	if len(clientIDs) > 0 {
		statuses := []string{quotation.StatusDraft, quotation.StatusSent, quotation.StatusAccepted}
		for i, status := range statuses {
			q := quotation.New()
			q.Number = sequence.Format(quotation.NumberPrefix, int64(i+1))
			q.ClientID = &clientIDs[i%len(clientIDs)]
			q.ClientName = clients[i%len(clients)].name
			q.QuoteDate = time.Now().UTC().AddDate(0, 0, -i*7)
			q.Status = status
			q.CreatedByID = &adminID
			q.CreatedByEmail = adminEmail
			q.SetLines([]quotation.Line{
				{ItemName: items[i%len(items)].title, UnitCost: mustDecimal(items[i%len(items)].price), Quantity: decimal.NewFromInt(2)},
				{ItemName: items[(i+1)%len(items)].title, UnitCost: mustDecimal(items[(i+1)%len(items)].price), Quantity: decimal.NewFromInt(1)},
			})

			_, err := pool.Exec(ctx, `
				INSERT INTO quotations (
					id, number, client_id, client_name, quote_date, status,
					discount_type, discount, subtotal, discount_amount, total, net_amount,
					created_by_id, created_by_email
				)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
				ON CONFLICT (number) DO NOTHING
			`, q.ID, q.Number, q.ClientID, q.ClientName, q.QuoteDate, q.Status,
				q.DiscountType, q.Discount, q.Subtotal, q.DiscountAmount, q.Total, q.NetAmount,
				q.CreatedByID, q.CreatedByEmail)
			if err != nil {
				log.Warnw("failed to seed quotation", "number", q.Number, "error", err)
				continue
			}

			for _, line := range q.Lines {
				_, err := pool.Exec(ctx, `
					INSERT INTO quotation_items (id, quotation_id, item_name, description, unit_cost, quantity, line_total, position)
					VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
					ON CONFLICT (id) DO NOTHING
				`, line.ID, q.ID, line.ItemName, line.Description, line.UnitCost, line.Quantity, line.LineTotal, line.Position)
				if err != nil {
					log.Warnw("failed to seed quotation line", "item", line.ItemName, "error", err)
				}
			}
		}

		_, err := pool.Exec(ctx, `
			INSERT INTO sys_sequences (name, last_value)
			VALUES ($1, $2)
			ON CONFLICT (name)
			DO UPDATE SET last_value = GREATEST(sys_sequences.last_value, EXCLUDED.last_value)
		`, sequence.Quotations, len(statuses))
		if err != nil {
			log.Warnw("failed to bump quotation sequence", "error", err)
		}
	}

	log.Info("demo data seeded successfully")
	return nil
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
