// Package weathertask parses task backend flags and launches the server.
package weathertask

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/weathertask/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/weathertask/internal/platform/grpc"
	server "github.com/louisbranch/weathertask/internal/services/tasks/app"
)

// Config holds weathertask command configuration.
type Config struct {
	HTTPAddr             string        `env:"WEATHERTASK_HTTP_ADDR" envDefault:":8081"`
	HealthPort           int           `env:"WEATHERTASK_HEALTH_PORT" envDefault:"8082"`
	DBDriver             string        `env:"WEATHERTASK_DB_DRIVER" envDefault:"sqlite"`
	DBDSN                string        `env:"WEATHERTASK_DB_DSN" envDefault:"data/weathertask.db"`
	JWTSecret            string        `env:"WEATHERTASK_JWT_SECRET"`
	CORSOrigins          string        `env:"WEATHERTASK_CORS_ORIGINS" envDefault:"http://localhost:5173,http://localhost:4173"`
	HeartbeatInterval    time.Duration `env:"WEATHERTASK_HEARTBEAT_INTERVAL" envDefault:"60s"`
	SeedDemo             bool          `env:"WEATHERTASK_SEED_DEMO" envDefault:"true"`
	EnforceTaskOwnership bool          `env:"WEATHERTASK_ENFORCE_TASK_OWNERSHIP" envDefault:"true"`
	BcryptCost           int           `env:"WEATHERTASK_BCRYPT_COST" envDefault:"10"`

	// HealthCheck probes a running instance instead of serving.
	HealthCheck bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "The HTTP API listen address")
	fs.IntVar(&cfg.HealthPort, "health-port", cfg.HealthPort, "The gRPC health server port (0 disables)")
	fs.StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Database driver: sqlite or postgres")
	fs.StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "SQLite path or Postgres connection string")
	fs.StringVar(&cfg.CORSOrigins, "cors-origins", cfg.CORSOrigins, "Comma-separated browser origins allowed by CORS")
	fs.DurationVar(&cfg.HeartbeatInterval, "heartbeat-interval", cfg.HeartbeatInterval, "Maintenance heartbeat interval")
	fs.BoolVar(&cfg.SeedDemo, "seed-demo", cfg.SeedDemo, "Ensure the demo/demo account exists on startup")
	fs.BoolVar(&cfg.EnforceTaskOwnership, "enforce-task-ownership", cfg.EnforceTaskOwnership, "Restrict task updates and deletes to the owner")
	fs.BoolVar(&cfg.HealthCheck, "healthcheck", false, "Probe the local health server and exit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.HealthPort < 0 || cfg.HealthPort > 65535 {
		return Config{}, fmt.Errorf("health port %d out of range", cfg.HealthPort)
	}
	return cfg, nil
}

// Origins splits the CORS origin list.
func (c Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// HealthAddr returns the gRPC health listen address, or "" when disabled.
func (c Config) HealthAddr() string {
	if c.HealthPort == 0 {
		return ""
	}
	return fmt.Sprintf(":%d", c.HealthPort)
}

// Run starts the task backend, or probes it when HealthCheck is set.
func Run(ctx context.Context, cfg Config) error {
	if cfg.HealthCheck {
		return checkHealth(ctx, cfg)
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeatherTask, func(ctx context.Context) error {
		return server.Run(ctx, server.Config{
			HTTPAddr:             cfg.HTTPAddr,
			HealthAddr:           cfg.HealthAddr(),
			DBDriver:             cfg.DBDriver,
			DBDSN:                cfg.DBDSN,
			JWTSecret:            cfg.JWTSecret,
			CORSOrigins:          cfg.Origins(),
			HeartbeatInterval:    cfg.HeartbeatInterval,
			SeedDemo:             cfg.SeedDemo,
			EnforceTaskOwnership: cfg.EnforceTaskOwnership,
			BcryptCost:           cfg.BcryptCost,
		})
	})
}

func checkHealth(ctx context.Context, cfg Config) error {
	if cfg.HealthPort == 0 {
		return fmt.Errorf("health server is disabled")
	}
	addr := fmt.Sprintf("127.0.0.1:%d", cfg.HealthPort)
	if err := platformgrpc.ProbeHealth(ctx, addr, server.HealthService, 3*time.Second, nil); err != nil {
		return err
	}
	log.Printf("health check passed at %s", addr)
	return nil
}
