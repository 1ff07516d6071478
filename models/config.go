package models

// Config holds the settings read from config.json. Redis connection
// settings come from the environment instead (REDIS_ADDR and friends).
type Config struct {
	DBHost     string `json:"db_host"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBName     string `json:"db_name"`
	DBSSLMode  string `json:"db_sslmode"`

	JWTSecret string `json:"jwt_secret"`
	AdminID   uint   `json:"admin_id"`

	ListenAddr         string `json:"listen_addr"`
	MoveTimeoutSeconds int    `json:"move_timeout_seconds"`
	DefaultStake       int64  `json:"default_stake"`
}
