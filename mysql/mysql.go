package mysql

import (
	"fmt"
	"strings"
	"time"

	"github.com/curtisnewbie/timesplit/util"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/spf13/viper"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// parseTime is required, otherwise datetime columns can't be scanned into time.Time.
const minimumConnParam = "charset=utf8mb4&parseTime=True&loc=UTC"

type ConnParam struct {
	User            string
	Password        string
	Schema          string
	Host            string
	Port            int
	ConnParam       string
	MaxConnLifetime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
}

// Build DSN, e.g., "root:@tcp(localhost:3306)/timesplit?parseTime=True&loc=UTC".
func BuildDSN(p ConnParam) string {
	cp := strings.TrimSpace(p.ConnParam)
	if cp == "" {
		cp = minimumConnParam
	}
	if !strings.HasPrefix(cp, "?") {
		cp = "?" + cp
	}
	host := p.Host
	if host == "" {
		host = "localhost"
	}
	port := p.Port
	if port < 1 {
		port = 3306
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s%s", p.User, p.Password, host, port, p.Schema, cp)
}

// Check whether MySQL is enabled in vp, i.e., "mysql.enabled: true".
func IsEnabled(vp *viper.Viper) bool {
	return vp != nil && vp.GetBool(PropMySQLEnabled)
}

// Load ConnParam from vp, the connection lifetime is in minutes.
func LoadConnParam(vp *viper.Viper) ConnParam {
	vp.SetDefault(PropMySQLConnLifetime, 30)
	return ConnParam{
		User:            vp.GetString(PropMySQLUser),
		Password:        vp.GetString(PropMySQLPassword),
		Schema:          vp.GetString(PropMySQLSchema),
		Host:            vp.GetString(PropMySQLHost),
		Port:            vp.GetInt(PropMySQLPort),
		ConnParam:       strings.Join(vp.GetStringSlice(PropMySQLConnParam), "&"),
		MaxOpenConns:    vp.GetInt(PropMySQLMaxOpenConns),
		MaxIdleConns:    vp.GetInt(PropMySQLMaxIdleConns),
		MaxConnLifetime: time.Duration(vp.GetInt(PropMySQLConnLifetime)) * time.Minute,
	}
}

// Make sure parseTime is enabled in dsn, datetime columns can't be scanned into time.Time without it.
//
// Location defaults to UTC if dsn doesn't specify one.
func EnsureParseTime(dsn string) (string, error) {
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid MySQL DSN, %w", err)
	}
	if cfg.ParseTime {
		return dsn, nil
	}
	cfg.ParseTime = true
	return cfg.FormatDSN(), nil
}

// Create new MySQL connection
func NewConn(p ConnParam) (*gorm.DB, error) {
	util.Infof("Connecting to database '%s:%d/%s' with params: '%s'", p.Host, p.Port, p.Schema, p.ConnParam)
	return NewConnDSN(BuildDSN(p), p)
}

// Create new MySQL connection using dsn, only the pool settings in p are used.
func NewConnDSN(dsn string, p ConnParam) (*gorm.DB, error) {
	conn, err := gorm.Open(mysql.Open(dsn), &gorm.Config{PrepareStmt: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL, %w", err)
	}

	sqlDb, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to obtain MySQL conn from gorm, %w", err)
	}

	if p.MaxConnLifetime > 0 {
		sqlDb.SetConnMaxLifetime(p.MaxConnLifetime)
	}
	if p.MaxOpenConns > 0 {
		sqlDb.SetMaxOpenConns(p.MaxOpenConns)
	}
	if p.MaxIdleConns > 0 {
		sqlDb.SetMaxIdleConns(p.MaxIdleConns)
	}

	// make sure the handle is actually connected
	if err = sqlDb.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL, %w", err)
	}

	util.Infof("MySQL connection established")
	if util.IsDebugLevel() {
		return conn.Debug(), nil
	}
	return conn, nil
}
