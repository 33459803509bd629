package repository

import (
	"database/sql"
	"fmt"

	"github.com/promptmandu/prompt-marketplace/internal/config"
	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB *sql.DB
}

type Repositories struct {
	Postgres     *Repository
	User         UserRepository
	Prompt       PromptRepository
	Cart         CartRepository
	Purchase     PurchaseRepository
	Settlement   SettlementRepository
	Address      AddressRepository
	Notification NotificationRepository
}

func New(cfg *config.Config) (*Repositories, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Repositories{
		Postgres:     &Repository{DB: db},
		User:         NewUserRepo(db),
		Prompt:       NewPromptRepo(db),
		Cart:         NewCartRepo(db),
		Purchase:     NewPurchaseRepo(db),
		Settlement:   NewSettlementRepo(db),
		Address:      NewAddressRepo(db),
		Notification: NewNotificationRepo(db),
	}, nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
