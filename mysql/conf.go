package mysql

// Props for MySQL.
const (
	PropMySQLEnabled      = "mysql.enabled"
	PropMySQLUser         = "mysql.user"
	PropMySQLPassword     = "mysql.password"
	PropMySQLSchema       = "mysql.database"
	PropMySQLHost         = "mysql.host"
	PropMySQLPort         = "mysql.port"
	PropMySQLConnParam    = "mysql.connection.parameters"
	PropMySQLConnLifetime = "mysql.connection.lifetime"
	PropMySQLMaxOpenConns = "mysql.connection.open.max"
	PropMySQLMaxIdleConns = "mysql.connection.idle.max"
)
