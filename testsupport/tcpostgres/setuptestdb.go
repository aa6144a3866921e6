//nolint:errcheck // testsetup
package tcpostgres

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go/wait"

	database "github.com/skidmark-racing/chorley/pkg/db/postgres"
)

//go:embed schema.sql
var schemaSQL string

// create a pg connection pool for the league testdatabase
func SetupTestDb() *pgxpool.Pool {
	ctx := context.Background()
	port, err := nat.NewPort("tcp", "5432")
	if err != nil {
		log.Fatal(err)
	}
	container, err := SetupPostgres(ctx,
		WithPort(port.Port()),
		WithInitialDatabase("postgres", "password", "postgres"),
		WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
		WithName("chorley-test"),
	)
	if err != nil {
		log.Fatal(err)
	}
	containerPort, _ := container.MappedPort(ctx, port)
	host, _ := container.Host(ctx)
	dbUrl := fmt.Sprintf("postgresql://postgres:password@%s:%s/postgres",
		host, containerPort.Port())

	pool := database.InitWithURL(dbUrl)
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		log.Fatal(err)
	}
	return pool
}

// SetupExternalTestDb connects to a database provided via TESTDB_URL
// instead of starting a container.
func SetupExternalTestDb() *pgxpool.Pool {
	pool := database.InitWithURL(os.Getenv("TESTDB_URL"))
	if _, err := pool.Exec(context.Background(), schemaSQL); err != nil {
		log.Fatal(err)
	}
	return pool
}

func ClearRaceTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from batchupload_historystageevent")
	pool.Exec(context.Background(), "delete from batchupload_historystageresult")
	pool.Exec(context.Background(), "delete from batchupload_history")
	pool.Exec(context.Background(), "delete from batchupload_historystages")
	pool.Exec(context.Background(), "delete from batchupload_historystage")
	pool.Exec(context.Background(), "delete from batchupload_historysetup")
}

func ClearLeagueTables(pool *pgxpool.Pool) {
	pool.Exec(context.Background(), "delete from leagues_leaguepointsposition")
	pool.Exec(context.Background(), "delete from leagues_leagueracedate")
	pool.Exec(context.Background(), "delete from leagues_leaguescoreboardentry")
	pool.Exec(context.Background(), "delete from leagues_league")
}

func ClearAllTables(pool *pgxpool.Pool) {
	ClearRaceTables(pool)
	ClearLeagueTables(pool)
}
