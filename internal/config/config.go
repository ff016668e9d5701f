package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingVariable    = errors.New("missing required environment variable")
	ErrInvalidVariable    = errors.New("invalid environment variable")
	ErrInvalidBankAccount = errors.New("invalid platform bank account configuration")
)

const (
	EnvironmentSandbox    = "sandbox"
	EnvironmentProduction = "production"
)

// Config is built once at startup and handed to every constructor.
//
// Provider sections are validated lazily: a missing Wise credential must not
// take down the Parcelow checkout, so each section keeps its own Validate and
// the routes surface the error as a 500 on the affected endpoints only.
type Config struct {
	Port                    string
	SiteURL                 string
	ConsultationProductSlug string
	ProviderHTTPTimeout     time.Duration
	// AdminAPIKey guards the admin routes; they are not mounted when empty.
	AdminAPIKey             string

	Parcelow   ParcelowConfig
	Wise       WiseConfig
	Functions  FunctionsConfig
	Automation AutomationConfig
	Redis      RedisConfig
	Tasks      TasksConfig
}

type ParcelowConfig struct {
	ClientID      string
	ClientSecret  string
	Environment   string
	BaseURL       string
	WebhookSecret string
}

type WiseConfig struct {
	ClientID         string
	ClientSecret     string
	Environment      string
	BaseURL          string
	WebURL           string
	ProfileID        string
	WebhookPublicKey string
	Account          BankAccount
}

// BankAccount describes the platform's own receiving account at Wise.
type BankAccount struct {
	Type          string
	Currency      string
	HolderName    string
	LegalType     string
	RoutingNumber string
	AccountNumber string
	SwiftCode     string
	IBAN          string
	SortCode      string
	Country       string
	City          string
	PostCode      string
	AddressLine   string
}

type FunctionsConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type AutomationConfig struct {
	WebhookURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type TasksConfig struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration
}

// Load reads the process environment. Only malformed values fail here;
// missing provider credentials are reported by the section validators.
func Load() (*Config, error) {
	timeout, err := durationEnv("PROVIDER_HTTP_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	functionsTimeout, err := durationEnv("FUNCTIONS_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	// Must outlast the automation relay's four 30s attempts plus backoff.
	taskTimeout, err := durationEnv("TASK_TIMEOUT", 3*time.Minute)
	if err != nil {
		return nil, err
	}
	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	workers, err := intEnv("TASK_WORKERS", 8)
	if err != nil {
		return nil, err
	}
	queueSize, err := intEnv("TASK_QUEUE_SIZE", 256)
	if err != nil {
		return nil, err
	}

	parcelowEnv := strings.ToLower(env("PARCELOW_ENVIRONMENT"))
	wiseEnv := strings.ToLower(env("WISE_ENVIRONMENT"))

	cfg := &Config{
		Port:                    getenvDefault("SERVER_PORT", "8080"),
		SiteURL:                 strings.TrimRight(env("SITE_URL"), "/"),
		ConsultationProductSlug: getenvDefault("CONSULTATION_PRODUCT_SLUG", "consultation"),
		ProviderHTTPTimeout:     timeout,
		AdminAPIKey:             os.Getenv("ADMIN_API_KEY"),
		Parcelow: ParcelowConfig{
			ClientID:      env("PARCELOW_CLIENT_ID"),
			ClientSecret:  env("PARCELOW_CLIENT_SECRET"),
			Environment:   parcelowEnv,
			BaseURL:       strings.TrimRight(getenvDefault("PARCELOW_BASE_URL", parcelowBaseURL(parcelowEnv)), "/"),
			WebhookSecret: env("PARCELOW_WEBHOOK_SECRET"),
		},
		Wise: WiseConfig{
			ClientID:         env("WISE_CLIENT_ID"),
			ClientSecret:     env("WISE_CLIENT_SECRET"),
			Environment:      wiseEnv,
			BaseURL:          strings.TrimRight(getenvDefault("WISE_BASE_URL", wiseBaseURL(wiseEnv)), "/"),
			WebURL:           strings.TrimRight(getenvDefault("WISE_WEB_URL", wiseWebURL(wiseEnv)), "/"),
			ProfileID:        env("WISE_PROFILE_ID"),
			WebhookPublicKey: os.Getenv("WISE_WEBHOOK_PUBLIC_KEY"),
			Account: BankAccount{
				Type:          NormalizeAccountType(env("WISE_ACCOUNT_TYPE")),
				Currency:      strings.ToUpper(env("WISE_ACCOUNT_CURRENCY")),
				HolderName:    env("WISE_ACCOUNT_HOLDER_NAME"),
				LegalType:     getenvDefault("WISE_ACCOUNT_LEGAL_TYPE", "BUSINESS"),
				RoutingNumber: env("WISE_ROUTING_NUMBER"),
				AccountNumber: env("WISE_ACCOUNT_NUMBER"),
				SwiftCode:     env("WISE_SWIFT_CODE"),
				IBAN:          env("WISE_IBAN"),
				SortCode:      env("WISE_SORT_CODE"),
				Country:       env("WISE_ACCOUNT_COUNTRY"),
				City:          env("WISE_ACCOUNT_CITY"),
				PostCode:      env("WISE_ACCOUNT_POST_CODE"),
				AddressLine:   env("WISE_ACCOUNT_ADDRESS"),
			},
		},
		Functions: FunctionsConfig{
			BaseURL: strings.TrimRight(env("FUNCTIONS_BASE_URL"), "/"),
			APIKey:  env("FUNCTIONS_API_KEY"),
			Timeout: functionsTimeout,
		},
		Automation: AutomationConfig{
			WebhookURL: env("N8N_WEBHOOK_URL"),
		},
		Redis: RedisConfig{
			Addr:     env("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Tasks: TasksConfig{
			Workers:   workers,
			QueueSize: queueSize,
			Timeout:   taskTimeout,
		},
	}
	return cfg, nil
}

func (c ParcelowConfig) Validate() error {
	if err := requireAll(map[string]string{
		"PARCELOW_CLIENT_ID":     c.ClientID,
		"PARCELOW_CLIENT_SECRET": c.ClientSecret,
		"PARCELOW_ENVIRONMENT":   c.Environment,
	}); err != nil {
		return err
	}
	if c.BaseURL == "" {
		return fmt.Errorf("%w: PARCELOW_ENVIRONMENT=%q", ErrInvalidVariable, c.Environment)
	}
	return nil
}

func (c WiseConfig) Validate() error {
	if err := requireAll(map[string]string{
		"WISE_CLIENT_ID":           c.ClientID,
		"WISE_CLIENT_SECRET":       c.ClientSecret,
		"WISE_ENVIRONMENT":         c.Environment,
		"WISE_PROFILE_ID":          c.ProfileID,
		"WISE_ACCOUNT_TYPE":        c.Account.Type,
		"WISE_ACCOUNT_CURRENCY":    c.Account.Currency,
		"WISE_ACCOUNT_HOLDER_NAME": c.Account.HolderName,
	}); err != nil {
		return err
	}
	if c.BaseURL == "" || c.WebURL == "" {
		return fmt.Errorf("%w: WISE_ENVIRONMENT=%q", ErrInvalidVariable, c.Environment)
	}
	return c.Account.Validate()
}

// RequiredFields lists, per account type, the details Wise needs to create
// the recipient.
func (a BankAccount) RequiredFields() (map[string]string, error) {
	switch a.Type {
	case "aba":
		return map[string]string{"WISE_ROUTING_NUMBER": a.RoutingNumber, "WISE_ACCOUNT_NUMBER": a.AccountNumber}, nil
	case "swift":
		return map[string]string{"WISE_SWIFT_CODE": a.SwiftCode, "WISE_ACCOUNT_NUMBER": a.AccountNumber}, nil
	case "iban":
		return map[string]string{"WISE_IBAN": a.IBAN}, nil
	case "sort_code":
		return map[string]string{"WISE_SORT_CODE": a.SortCode, "WISE_ACCOUNT_NUMBER": a.AccountNumber}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported account type %q", ErrInvalidBankAccount, a.Type)
	}
}

func (a BankAccount) Validate() error {
	fields, err := a.RequiredFields()
	if err != nil {
		return err
	}
	var missing []string
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("%w: account type %s requires %s", ErrInvalidBankAccount, a.Type, strings.Join(missing, ", "))
	}
	return nil
}

// NormalizeAccountType folds the spellings used in env files onto the four
// supported account types.
func NormalizeAccountType(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	switch t {
	case "swift_code":
		return "swift"
	case "sortcode", "sort-code":
		return "sort_code"
	}
	return t
}

func parcelowBaseURL(environment string) string {
	switch environment {
	case EnvironmentSandbox:
		return "https://sandbox-2.parcelow.com.br"
	case EnvironmentProduction:
		return "https://app.parcelow.com"
	}
	return ""
}

func wiseBaseURL(environment string) string {
	switch environment {
	case EnvironmentSandbox:
		return "https://api.sandbox.transferwise.tech"
	case EnvironmentProduction:
		return "https://api.wise.com"
	}
	return ""
}

func wiseWebURL(environment string) string {
	switch environment {
	case EnvironmentSandbox:
		return "https://sandbox.transferwise.tech"
	case EnvironmentProduction:
		return "https://wise.com"
	}
	return ""
}

func requireAll(vars map[string]string) error {
	var missing []string
	for name, v := range vars {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	slices.Sort(missing)
	return fmt.Errorf("%w: %s", ErrMissingVariable, strings.Join(missing, ", "))
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getenvDefault(key, def string) string {
	if v := env(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := env(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidVariable, key, v)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	v := env(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidVariable, key, v)
	}
	return n, nil
}

