package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"talent-match/internal/domain/matching"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Matching MatchingConfig `mapstructure:"matching"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	HTTPPort string `mapstructure:"http_port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"ssl_mode"`

	ConnectTimeout        time.Duration `mapstructure:"connect_timeout"`
	PoolMaxConns          int32         `mapstructure:"pool_max_conns"`
	PoolMinConns          int32         `mapstructure:"pool_min_conns"`
	PoolMaxConnLifetime   time.Duration `mapstructure:"pool_max_conn_lifetime"`
	PoolMaxConnIdleTime   time.Duration `mapstructure:"pool_max_conn_idle_time"`
	PoolHealthCheckPeriod time.Duration `mapstructure:"pool_health_check_period"`
}

// DSN renders the keyword/value connection string understood by pgx.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		strings.TrimSpace(c.Host),
		strings.TrimSpace(c.Port),
		strings.TrimSpace(c.User),
		c.Password,
		strings.TrimSpace(c.Name),
		strings.TrimSpace(c.SSLMode),
	)
}

type RedisConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

func (c RedisConfig) Addr() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	if host == "" {
		return ""
	}
	if port == "" {
		return host
	}
	return host + ":" + port
}

type JWTConfig struct {
	Secret    string        `mapstructure:"secret"`
	Issuer    string        `mapstructure:"issuer"`
	ExpiresIn time.Duration `mapstructure:"expires_in"`
}

type MatchingConfig struct {
	Weights            WeightsConfig         `mapstructure:"weights"`
	ExperienceStrategy string                `mapstructure:"experience_strategy"`
	SkillCredit        string                `mapstructure:"skill_credit"`
	ExperienceBands    map[string]BandConfig `mapstructure:"experience_bands"`
	ProficiencyPoints  map[string]int        `mapstructure:"proficiency_points"`
	Salary             SalaryConfig          `mapstructure:"salary"`
	Tiers              TiersConfig           `mapstructure:"tiers"`
	MinScore           float64               `mapstructure:"min_score"`
	MaxResults         int                   `mapstructure:"max_results"`
	Workers            int                   `mapstructure:"workers"`
}

type WeightsConfig struct {
	Skill      float64 `mapstructure:"skill"`
	Experience float64 `mapstructure:"experience"`
	Salary     float64 `mapstructure:"salary"`
}

type BandConfig struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

type SalaryConfig struct {
	BelowMinCredit   float64 `mapstructure:"below_min_credit"`
	OverMaxCredit    float64 `mapstructure:"over_max_credit"`
	OverMaxTolerance float64 `mapstructure:"over_max_tolerance"`
}

type TiersConfig struct {
	HighlyRecommended float64 `mapstructure:"highly_recommended"`
	Recommended       float64 `mapstructure:"recommended"`
	Consider          float64 `mapstructure:"consider"`
}

// Policy converts the matching section into a validated engine policy.
func (c MatchingConfig) Policy() (matching.Policy, error) {
	p := matching.Policy{
		Weights: matching.Weights{
			Skill:      c.Weights.Skill,
			Experience: c.Weights.Experience,
			Salary:     c.Weights.Salary,
		},
		ExperienceStrategy: matching.ExperienceStrategy(strings.ToLower(strings.TrimSpace(c.ExperienceStrategy))),
		SkillCredit:        matching.SkillCreditMode(strings.ToLower(strings.TrimSpace(c.SkillCredit))),
		ExperienceBands:    make(map[matching.ExperienceLevel]matching.Band, len(c.ExperienceBands)),
		ProficiencyPoints:  make(map[matching.Proficiency]int, len(c.ProficiencyPoints)),
		Salary: matching.SalaryCredit{
			BelowMin:         c.Salary.BelowMinCredit,
			OverMax:          c.Salary.OverMaxCredit,
			OverMaxTolerance: c.Salary.OverMaxTolerance,
		},
		Tiers: matching.TierCutoffs{
			HighlyRecommended: c.Tiers.HighlyRecommended,
			Recommended:       c.Tiers.Recommended,
			Consider:          c.Tiers.Consider,
		},
	}
	for level, b := range c.ExperienceBands {
		p.ExperienceBands[matching.ExperienceLevel(strings.ToLower(level))] = matching.Band{Min: b.Min, Max: b.Max}
	}
	for prof, pts := range c.ProficiencyPoints {
		p.ProficiencyPoints[matching.Proficiency(strings.ToLower(prof))] = pts
	}
	if err := p.Validate(); err != nil {
		return matching.Policy{}, err
	}
	return p, nil
}

func (c MatchingConfig) RankOptions() matching.RankOptions {
	return matching.RankOptions{
		MinScore:   c.MinScore,
		MaxResults: c.MaxResults,
		Workers:    c.Workers,
	}
}

var errMissingRequired = errors.New("missing required configuration")

// Load reads .env, configs/config.yaml and config.<APP_ENV>.yaml, then lets
// environment variables override any key (app.http_port -> APP_HTTP_PORT).
func Load() (Config, error) {
	v, err := ReadFiles("")
	if err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

// FromViper applies defaults and env binding to v and decodes it.
func FromViper(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	var missing []string
	req := func(key, val string) {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, key)
		}
	}
	req("app.name", cfg.App.Name)
	req("app.http_port", cfg.App.HTTPPort)
	req("jwt.secret", cfg.JWT.Secret)
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequired, strings.Join(missing, ", "))
	}

	if _, err := cfg.Matching.Policy(); err != nil {
		return Config{}, fmt.Errorf("matching policy: %w", err)
	}
	if _, err := cfg.Matching.RankOptions().Normalize(); err != nil {
		return Config{}, fmt.Errorf("matching rank options: %w", err)
	}

	return cfg, nil
}

// MatchingFromViper decodes only the matching section. Offline tools use it
// to score without the server's required keys.
func MatchingFromViper(v *viper.Viper) (MatchingConfig, error) {
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	var mc MatchingConfig
	if err := v.UnmarshalKey("matching", &mc); err != nil {
		return MatchingConfig{}, fmt.Errorf("decode matching config: %w", err)
	}
	if _, err := mc.Policy(); err != nil {
		return MatchingConfig{}, fmt.Errorf("matching policy: %w", err)
	}
	if _, err := mc.RankOptions().Normalize(); err != nil {
		return MatchingConfig{}, fmt.Errorf("matching rank options: %w", err)
	}
	return mc, nil
}

// ReadFiles loads .env and the YAML config files into a fresh viper. An
// explicit path replaces the configs/config.yaml lookup.
func ReadFiles(path string) (*viper.Viper, error) {
	loadEnvFile()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		return v, nil
	}

	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")
	v.SetConfigName("config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env != "" {
		v.SetConfigName("config." + env)
		_ = v.MergeInConfig()
	}
	return v, nil
}

// envKeys are bound explicitly so Unmarshal sees env-only values that
// have no default and no file entry.
var envKeys = []string{
	"app.name", "app.env", "app.http_port",
	"log.level", "log.format",
	"database.host", "database.port", "database.name", "database.user",
	"database.password", "database.ssl_mode",
	"redis.host", "redis.port", "redis.password", "redis.db", "redis.ttl",
	"jwt.secret", "jwt.issuer", "jwt.expires_in",
}

func setDefaults(v *viper.Viper) {
	p := matching.DefaultPolicy()
	opts := matching.DefaultRankOptions()

	v.SetDefault("app.env", "development")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("database.port", "5432")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.connect_timeout", 5*time.Second)

	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.ttl", 5*time.Minute)

	v.SetDefault("jwt.issuer", "talent-match")
	v.SetDefault("jwt.expires_in", time.Hour)

	v.SetDefault("matching.weights.skill", p.Weights.Skill)
	v.SetDefault("matching.weights.experience", p.Weights.Experience)
	v.SetDefault("matching.weights.salary", p.Weights.Salary)
	v.SetDefault("matching.experience_strategy", string(p.ExperienceStrategy))
	v.SetDefault("matching.skill_credit", string(p.SkillCredit))
	for level, b := range p.ExperienceBands {
		v.SetDefault("matching.experience_bands."+string(level)+".min", b.Min)
		v.SetDefault("matching.experience_bands."+string(level)+".max", b.Max)
	}
	for prof, pts := range p.ProficiencyPoints {
		v.SetDefault("matching.proficiency_points."+string(prof), pts)
	}
	v.SetDefault("matching.salary.below_min_credit", p.Salary.BelowMin)
	v.SetDefault("matching.salary.over_max_credit", p.Salary.OverMax)
	v.SetDefault("matching.salary.over_max_tolerance", p.Salary.OverMaxTolerance)
	v.SetDefault("matching.tiers.highly_recommended", p.Tiers.HighlyRecommended)
	v.SetDefault("matching.tiers.recommended", p.Tiers.Recommended)
	v.SetDefault("matching.tiers.consider", p.Tiers.Consider)
	v.SetDefault("matching.min_score", opts.MinScore)
	v.SetDefault("matching.max_results", opts.MaxResults)
	v.SetDefault("matching.workers", 0)
}

func loadEnvFile() {
	candidates := []string{".env", "../.env", "../../.env"}
	for _, path := range candidates {
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		if _, err := os.Stat(abs); err == nil {
			_ = godotenv.Load(abs)
			return
		}
	}
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
