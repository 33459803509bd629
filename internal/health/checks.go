package health

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/promptmandu/prompt-marketplace/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/redis/go-redis/v9"
)

type Endpoints struct {
	DB          *sql.DB
	RedisClient *redis.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{

			Name:    "prompt-marketplace",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "database",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: postgres.New(postgres.Config{
					DSN: cfg.Database.GetDSN(),
				}),
			},
			health.Config{
				Name:      "redis",
				Timeout:   2 * time.Second,
				SkipOnErr: false,
				Check: healthRedis.New(
					healthRedis.Config{
						DSN: cfg.RedisConnect.GetDSN(),
					},
				),
			},
			health.Config{
				Name:      "khalti",
				Timeout:   5 * time.Second,
				SkipOnErr: true,
				Check: func(ctx context.Context) error {

					// reachability only; an auth error still proves the
					// gateway is up
					req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.Khalti.BaseURL, nil)
					if err != nil {
						return fmt.Errorf("failed to build gateway request: %w", err)
					}

					resp, err := http.DefaultClient.Do(req)
					if err != nil {
						return fmt.Errorf("failed to connect to khalti: %w", err)
					}
					resp.Body.Close()

					return nil
				},
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
