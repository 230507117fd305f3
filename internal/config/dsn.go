package config

import (
	"fmt"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
)

// DSNValue resolves the MySQL DSN: an explicit dsn wins, otherwise one is
// built from the structured fields via the driver's own formatter.
func (c StorageConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	host := strings.TrimSpace(c.Host)
	if host == "" {
		host = defaultDBHost
	}
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := strings.TrimSpace(c.User)
	if user == "" {
		user = defaultDBUser
	}
	password := c.Password
	if password == "" {
		password = defaultDBPassword
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = defaultDBName
	}

	dc := mysqldrv.NewConfig()
	dc.User = user
	dc.Passwd = password
	dc.Net = "tcp"
	dc.Addr = fmt.Sprintf("%s:%d", host, port)
	dc.DBName = name
	dc.ParseTime = true
	dc.Params = map[string]string{"charset": "utf8mb4"}
	return dc.FormatDSN()
}
