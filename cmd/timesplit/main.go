package main

import (
	"context"
	"flag"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/curtisnewbie/timesplit/appointment"
	"github.com/curtisnewbie/timesplit/mysql"
	"github.com/curtisnewbie/timesplit/sqlite"
	"github.com/curtisnewbie/timesplit/util"
	"github.com/curtisnewbie/timesplit/util/errs"
	"github.com/curtisnewbie/timesplit/version"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var (
	Debug      = flag.Bool("debug", false, "Enable debug log")
	ConfigFile = flag.String("config", "", "Path to config file (yaml, json or toml)")
	LogFile    = flag.String("log-file", "", "Path to rolling log file")
	SqliteFile = flag.String("db", "", "Path to SQLite database file, the appointment is saved if set")
	MySQLDSN   = flag.String("dsn", "", "MySQL DSN, the appointment is saved if set, parseTime=true is added if missing")
	Id         = flag.Int64("id", 0, "Id of existing appointment to update")
	ServeAddr  = flag.String("serve", "", "Serve the appointment form endpoints on the address, e.g., ':8080'")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	flag.Usage = func() {
		util.Printlnf("\ntimesplit - assemble appointment timestamps from split date/time form parameters\n")
		util.Printlnf("  Version: %v\n", version.Version)
		util.Printlnf("Usage of %s: [flags] [key=value ...]", os.Args[0])
		flag.PrintDefaults()
		util.Printlnf("\nFor example:")
		util.Printlnf(`
  timesplit -db app.db title=dentist starts_at_date=2020-03-15 starts_at_time=14:30 'ends_at_time(4i)=15'
  timesplit -db app.db -serve :8080

In config file:

  timesplit:
    starts_at:
      date-format: "%%d/%%m/%%Y"
      time-format: "%%H:%%M"
      input-time-utc-offset: "+08:00"
  mysql:
    enabled: true
    user: root
    password: 123456
    database: timesplit
`)
	}
	flag.Parse()

	lvl := "info"
	if *Debug {
		lvl = "debug"
	}
	util.SetupLogger(lvl, util.RollingLogFileParam{Filename: *LogFile, MaxSize: 50, MaxAge: 7, MaxBackups: 3})

	if err := run(flag.Args()); err != nil {
		util.Errorf("Failed, %v", errs.ErrorStackTrace(err))
		os.Exit(1)
	}
}

func run(args []string) error {
	vp := viper.New()
	if !util.IsBlankStr(*ConfigFile) {
		vp.SetConfigFile(*ConfigFile)
		if err := vp.ReadInConfig(); err != nil {
			return errs.WrapErrf(err, "failed to read config file '%s'", *ConfigFile)
		}
		util.Debugf("Loaded config file '%s'", *ConfigFile)
	}
	if err := appointment.Configure(vp); err != nil {
		return err
	}

	db, err := openDB(vp)
	if err != nil {
		return err
	}

	if db != nil {
		if err := appointment.Migrate(db); err != nil {
			return errs.WrapErrf(err, "failed to migrate appointment table")
		}
	}

	if !util.IsBlankStr(*ServeAddr) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx, *ServeAddr, db)
	}

	a := &appointment.Appointment{}
	if db != nil && *Id > 0 {
		if a, err = appointment.FindById(db, *Id); err != nil {
			return errs.WrapErrf(err, "failed to find appointment %d", *Id)
		}
	}

	if err := a.Assign(ParseFormArgs(args)); err != nil {
		return err
	}

	if db != nil {
		if err := appointment.Save(db, a); err != nil {
			return errs.WrapErrf(err, "failed to save appointment")
		}
		util.Infof("Saved appointment %d", a.Id)
	}

	out, err := json.MarshalIndent(appointmentView(a), "", "  ")
	if err != nil {
		return errs.WrapErr(err)
	}
	util.Printlnf("%s", out)
	return nil
}

func openDB(vp *viper.Viper) (*gorm.DB, error) {
	if !util.IsBlankStr(*MySQLDSN) {
		dsn, err := mysql.EnsureParseTime(*MySQLDSN)
		if err != nil {
			return nil, err
		}
		return mysql.NewConnDSN(dsn, mysql.ConnParam{MaxOpenConns: 1})
	}
	if mysql.IsEnabled(vp) {
		return mysql.NewConn(mysql.LoadConnParam(vp))
	}
	if !util.IsBlankStr(*SqliteFile) {
		return sqlite.NewConn(*SqliteFile, true)
	}
	return nil, nil
}

// Parse "key=value" args into form values, args without '=' are ignored.
func ParseFormArgs(args []string) url.Values {
	v := url.Values{}
	for _, a := range args {
		k, val, ok := strings.Cut(a, "=")
		if !ok {
			util.Warnf("Ignored arg '%s', expected 'key=value'", a)
			continue
		}
		v.Add(strings.TrimSpace(k), val)
	}
	return v
}
