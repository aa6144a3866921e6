package check

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skidmark-racing/chorley/pkg/config"
	"github.com/skidmark-racing/chorley/pkg/db/postgres"
)

const countsSQL = `
select
  (select count(*) from batchupload_history where finished = true
     and "isHistoricalOrIncomplete" = false) as races,
  (select count(*) from leagues_league) as leagues,
  (select count(distinct name) from batchupload_historystageresult) as drivers
`

// NewCheckDatabaseCmd verifies the database connection and prints a
// few row counts as a smoke test.
func NewCheckDatabaseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "verifies the database connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkDatabase(cmd.Context())
		},
	}
	return cmd
}

func checkDatabase(ctx context.Context) error {
	pool := postgres.InitWithURL(config.DB,
		postgres.WithMaxConns(int32(config.DBMaxConns)))
	defer pool.Close()

	var races, leagues, drivers int64
	row := pool.QueryRow(ctx, countsSQL)
	if err := row.Scan(&races, &leagues, &drivers); err != nil {
		return err
	}
	fmt.Printf("database ok: %d finished races, %d leagues, %d drivers\n",
		races, leagues, drivers)
	return nil
}
