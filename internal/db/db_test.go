package db

import (
	"testing"

	"github.com/agrolink/agrolink-backend/internal/config"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want string
	}{
		{
			name: "plain host gets tcp wrapper",
			cfg:  config.Config{DBUser: "app", DBPassword: "pw", DBHost: "127.0.0.1", DBPort: "3306", DBName: "agrolink"},
			want: "app:pw@tcp(127.0.0.1:3306)/agrolink?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "host already wrapped in tcp",
			cfg:  config.Config{DBUser: "app", DBPassword: "pw", DBHost: "tcp(db:3307)", DBPort: "3306", DBName: "agrolink"},
			want: "app:pw@tcp(db:3307)/agrolink?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "host already wrapped in unix",
			cfg:  config.Config{DBUser: "app", DBPassword: "pw", DBHost: "unix(/var/run/mysqld/mysqld.sock)", DBName: "agrolink"},
			want: "app:pw@unix(/var/run/mysqld/mysqld.sock)/agrolink?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "absolute path becomes unix socket",
			cfg:  config.Config{DBUser: "app", DBPassword: "pw", DBHost: "/var/run/mysqld/mysqld.sock", DBName: "agrolink"},
			want: "app:pw@unix(/var/run/mysqld/mysqld.sock)/agrolink?charset=utf8mb4&parseTime=True&loc=Local",
		},
		{
			name: "instance connection name wins",
			cfg: config.Config{
				DBUser: "app", DBPassword: "pw", DBHost: "127.0.0.1", DBPort: "3306", DBName: "agrolink",
				InstanceConnectionName: "proj:asia-south1:agrolink",
			},
			want: "app:pw@unix(/cloudsql/proj:asia-south1:agrolink)/agrolink?charset=utf8mb4&parseTime=True&loc=Local",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildDSN(&tt.cfg); got != tt.want {
				t.Errorf("BuildDSN() = %q, want %q", got, tt.want)
			}
		})
	}
}
