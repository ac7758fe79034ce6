package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/cutelabs/drop-ledger/service/app"
	"github.com/cutelabs/drop-ledger/service/common"
	"github.com/cutelabs/drop-ledger/service/config"
	"github.com/cutelabs/drop-ledger/service/events"
	httpserver "github.com/cutelabs/drop-ledger/service/http"
	"gorm.io/gorm"
)

func getTestCfg(t testing.TB) *config.Config {
	t.Helper()

	cfg, err := config.ParseConfig(&config.ConfigOptions{EnvFilePath: ".env.test"})
	if err != nil {
		t.Fatal(err)
	}

	cfg.DatabaseDSN = "test.db"
	cfg.DatabaseType = "sqlite"
	cfg.StateLogInterval = 0

	return cfg
}

func getTestDatabase(t testing.TB, cfg *config.Config) *gorm.DB {
	t.Helper()

	db, err := common.NewGormDB(cfg)
	if err != nil {
		t.Fatal(err)
	}

	if err := app.Migrate(db); err != nil {
		t.Fatal(err)
	}
	if err := events.Migrate(db); err != nil {
		t.Fatal(err)
	}

	cleanTestDatabase(db)

	t.Cleanup(func() {
		common.CloseGormDB(db)
	})

	return db
}

func cleanTestDatabase(db *gorm.DB) {
	tables := []string{
		"collections",
		"tokens",
		"allowlist_entries",
		"minter_stats",
		"operator_approvals",
		"ledger_events",
	}
	for _, table := range tables {
		db.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

func getTestApp(t testing.TB, cfg *config.Config) *app.App {
	t.Helper()

	db := getTestDatabase(t, cfg)

	a, err := app.New(cfg, nil, db, false)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(a.Close)

	return a
}

func getTestServer(t testing.TB, cfg *config.Config) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(httpserver.NewRouter(getTestApp(t, cfg)))
	t.Cleanup(srv.Close)

	return srv
}

func postJSON(t testing.TB, url string, reqBody interface{}) *http.Response {
	t.Helper()

	b, err := json.Marshal(reqBody)
	if err != nil {
		t.Fatal(err)
	}

	res, err := http.Post(url, "application/json", bytes.NewBuffer(b))
	if err != nil {
		t.Fatal(err)
	}

	return res
}

func fromJSON(t testing.TB, res *http.Response, v interface{}) {
	t.Helper()

	defer res.Body.Close()
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

func AssertEqual(t testing.TB, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

func AssertStatus(t testing.TB, res *http.Response, status int) {
	t.Helper()
	if res.StatusCode != status {
		t.Fatalf("expected status %d, got %d", status, res.StatusCode)
	}
}
