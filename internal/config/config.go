package config

import (
	"fmt"
	"os"
	"strings"
)

// Config 应用配置
type Config struct {
	Env       string
	Port      string
	AppSecret string

	// TMDB 目录接口
	TMDBBaseURL  string
	TMDBToken    string
	ImageBaseURL string

	// 热度存储（Postgres）
	StoreProject    string // schema
	StoreDatabase   string // 数据库名
	StoreCollection string // 搜索词表名
	DatabaseURL     string
}

// Load 加载配置
func Load() *Config {
	dbUser := getEnv("DB_USER", "postgres")
	dbPass := getEnv("DB_PASSWORD", "postgres")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbSSL := getEnv("DB_SSLMODE", "disable")

	storeDatabase := getEnv("STORE_DATABASE", "reelfind")

	dbURL := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		dbUser, dbPass, dbHost, dbPort, storeDatabase, dbSSL)

	appSecret := getEnv("APP_SECRET", "your-secret-key-change-in-production")
	if getEnv("APP_ENV", "development") == "production" && appSecret == "your-secret-key-change-in-production" {
		fmt.Println("【严重警告】生产环境正在使用默认密钥！请立即设置 APP_SECRET 环境变量。")
	}

	return &Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "5008"),
		AppSecret:       appSecret,
		TMDBBaseURL:     getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3/"),
		TMDBToken:       getEnv("TMDB_API_KEY", ""),
		ImageBaseURL:    getEnv("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/w500"),
		StoreProject:    getEnv("STORE_PROJECT", "public"),
		StoreDatabase:   storeDatabase,
		StoreCollection: getEnv("STORE_COLLECTION", "search_terms"),
		DatabaseURL:     dbURL,
	}
}

// Validate 启动时校验必填项
// 缺失的密钥在这里直接报错，而不是等到第一次请求返回 401
func (c *Config) Validate() error {
	var missing []string
	if c.TMDBToken == "" {
		missing = append(missing, "TMDB_API_KEY")
	}
	if c.StoreProject == "" {
		missing = append(missing, "STORE_PROJECT")
	}
	if c.StoreDatabase == "" {
		missing = append(missing, "STORE_DATABASE")
	}
	if c.StoreCollection == "" {
		missing = append(missing, "STORE_COLLECTION")
	}
	if len(missing) > 0 {
		return fmt.Errorf("缺少必需的环境变量: %s", strings.Join(missing, ", "))
	}
	return nil
}

// TermTable 搜索词表的完整限定名
func (c *Config) TermTable() string {
	return c.StoreProject + "." + c.StoreCollection
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
