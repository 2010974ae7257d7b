package mysql

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestBuildDSN(t *testing.T) {
	dsn := BuildDSN(ConnParam{User: "root", Password: "123456", Schema: "timesplit"})
	t.Log(dsn)
	if dsn != "root:123456@tcp(localhost:3306)/timesplit?charset=utf8mb4&parseTime=True&loc=UTC" {
		t.Fatalf("unexpected dsn %v", dsn)
	}

	dsn = BuildDSN(ConnParam{User: "app", Host: "db", Port: 3307, Schema: "s", ConnParam: "?parseTime=True"})
	if dsn != "app:@tcp(db:3307)/s?parseTime=True" {
		t.Fatalf("unexpected dsn %v", dsn)
	}
}

func TestEnsureParseTime(t *testing.T) {
	dsn, err := EnsureParseTime("root:123456@tcp(localhost:3306)/timesplit")
	if err != nil {
		t.Fatal(err)
	}
	t.Log(dsn)
	if !strings.Contains(dsn, "parseTime=true") || !strings.HasPrefix(dsn, "root:123456@tcp(localhost:3306)/timesplit?") {
		t.Fatalf("unexpected dsn %v", dsn)
	}

	in := "root:123456@tcp(localhost:3306)/timesplit?parseTime=True&loc=UTC"
	dsn, err = EnsureParseTime(in)
	if err != nil {
		t.Fatal(err)
	}
	if dsn != in {
		t.Fatalf("dsn should be unchanged, got %v", dsn)
	}

	if _, err := EnsureParseTime("root@localhost:3306"); err == nil {
		t.Fatal("dsn without '/' should be invalid")
	}
}

func TestLoadConnParam(t *testing.T) {
	vp := viper.New()
	vp.SetConfigType("yaml")
	err := vp.ReadConfig(strings.NewReader(`
mysql:
  enabled: true
  user: app
  password: secret
  database: timesplit
  host: db
  port: 3307
  connection:
    parameters:
      - "charset=utf8mb4"
      - "parseTime=True"
    open:
      max: 5
`))
	if err != nil {
		t.Fatal(err)
	}
	if !IsEnabled(vp) {
		t.Fatal("mysql should be enabled")
	}
	p := LoadConnParam(vp)
	t.Logf("%+v", p)
	if p.User != "app" || p.Port != 3307 || p.MaxOpenConns != 5 || p.MaxConnLifetime != 30*time.Minute {
		t.Fatalf("unexpected %+v", p)
	}
	if dsn := BuildDSN(p); dsn != "app:secret@tcp(db:3307)/timesplit?charset=utf8mb4&parseTime=True" {
		t.Fatalf("unexpected dsn %v", dsn)
	}
	if IsEnabled(viper.New()) {
		t.Fatal("mysql should be disabled by default")
	}
}
