// Helpers for running integration tests against a real MariaDB in a
// container. Used by tests/integration; requires a reachable Docker daemon.

package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/datatrail-io/datatrail/data"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	dbRootPassword = "rootpass"
	dbDatabase     = "datatrail"
	dbAppUser      = "datatrail_app"
	dbAppPassword  = "apppass"
)

// MariaDBContainer wraps a running MariaDB container with its mapped endpoint.
type MariaDBContainer struct {
	Container testcontainers.Container
	Host      string
	Port      string
	User      string
	Password  string
	Database  string
}

func (c *MariaDBContainer) Terminate(t *testing.T) {
	t.Helper()
	if c.Container == nil {
		return
	}
	if err := c.Container.Terminate(context.Background()); err != nil {
		t.Logf("Failed to terminate MariaDB container: %v", err)
	}
}

// StartMariaDB launches a MariaDB container, waits for it, and seeds the
// datatrail schema from the embedded DDL. Skips the calling test when the
// container cannot be started (no Docker daemon available).
func StartMariaDB(t *testing.T) *MariaDBContainer {
	t.Helper()
	ctx := context.Background()

	image := os.Getenv("DB_IMAGE")
	if image == "" {
		image = "mariadb:11"
	}

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": dbRootPassword,
				"MYSQL_DATABASE":      dbDatabase,
				"MYSQL_USER":          dbAppUser,
				"MYSQL_PASSWORD":      dbAppPassword,
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Skipf("Skipping: could not start MariaDB container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	mc := &MariaDBContainer{
		Container: container,
		Host:      host,
		Port:      port.Port(),
		User:      dbAppUser,
		Password:  dbAppPassword,
		Database:  dbDatabase,
	}

	if err := seedSchema(mc); err != nil {
		mc.Terminate(t)
		t.Fatalf("Failed to seed schema: %v", err)
	}
	return mc
}

func seedSchema(mc *MariaDBContainer) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", dbRootPassword, mc.Host, mc.Port))
	if err != nil {
		return fmt.Errorf("connect as root: %w", err)
	}
	defer db.Close()

	// The listening port opens before the server accepts authentication
	for i := 0; i < 30; i++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	if err := executeSQL(db, data.InitdbMariaDBTables); err != nil {
		return fmt.Errorf("tables init sql: %w", err)
	}
	if err := executeSQL(db, data.InitdbMariaDBPrivileges); err != nil {
		return fmt.Errorf("privileges init sql: %w", err)
	}
	return nil
}

// executeSQL runs a multi-statement script, stripping "--" comments first.
func executeSQL(db *sql.DB, script string) error {
	var stripped []string
	for _, line := range strings.Split(script, "\n") {
		if i := strings.Index(line, "--"); i >= 0 {
			line = line[:i]
		}
		stripped = append(stripped, line)
	}

	joined := strings.Join(stripped, "\n")
	for _, q := range strings.Split(joined, ";") {
		q = strings.TrimSpace(q)
		if q == "" {
			continue
		}
		if _, err := db.Exec(q); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), q)
		}
	}
	return nil
}
