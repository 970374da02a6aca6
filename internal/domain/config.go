package domain

// Config holds the complete Kestrel configuration.
type Config struct {
	// Server settings
	Server ServerConfig `json:"server"`

	// Catalog generation settings
	Catalog CatalogConfig `json:"catalog"`

	// Lookup key scheme and item matching strategy
	Lookup LookupConfig `json:"lookup"`

	// Decision engine policy
	Engine EngineConfig `json:"engine"`

	// Abuse classifier settings
	Classifier ClassifierConfig `json:"classifier"`

	// Observability
	Logging LoggingConfig `json:"logging"`
	Tracing TracingConfig `json:"tracing"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	ReadTimeout  int    `json:"readTimeout"`  // seconds
	WriteTimeout int    `json:"writeTimeout"` // seconds
}

// CatalogConfig controls synthetic data generation.
type CatalogConfig struct {
	// Profiles is the number of customer profiles generated at startup.
	Profiles int `json:"profiles"`

	// Seed makes generation deterministic when non-zero.
	Seed uint64 `json:"seed"`
}

// KeyScheme selects which purchase identifier the catalog matches on.
type KeyScheme string

const (
	// KeyByTransaction matches on Purchase.TransactionID.
	KeyByTransaction KeyScheme = "transaction"

	// KeyByOrder matches on Purchase.OrderID.
	KeyByOrder KeyScheme = "order"
)

// ItemMatch selects how item identifiers are compared during lookup.
type ItemMatch string

const (
	// MatchExact requires the full item ID.
	MatchExact ItemMatch = "exact"

	// MatchPrefix accepts any item whose ID starts with the given key.
	// Ambiguous multi-match resolves to the first item in stored order.
	MatchPrefix ItemMatch = "prefix"
)

// LookupConfig holds catalog lookup settings. Exactly one key scheme
// is active per deployment.
type LookupConfig struct {
	KeyScheme KeyScheme `json:"keyScheme"`
	ItemMatch ItemMatch `json:"itemMatch"`
}

// ReturnPolicy selects the decision table variant the engine applies.
type ReturnPolicy string

const (
	// PolicyStandard is the baseline decision table with no external
	// fraud-review input.
	PolicyStandard ReturnPolicy = "standard"

	// PolicyCounterAct consults the counter-act verdict whenever a
	// monetary threshold would otherwise silently block auto-approval.
	PolicyCounterAct ReturnPolicy = "counteract"
)

// EngineConfig holds decision engine settings.
type EngineConfig struct {
	Policy ReturnPolicy `json:"policy"`
}

// ClassifierConfig holds abuse classifier settings.
type ClassifierConfig struct {
	// ExtraRules are optional CEL expressions over `name` and
	// `category` (both lowercased) that extend the built-in
	// abuse-prone item rules. Each must evaluate to a bool.
	ExtraRules []string `json:"extraRules,omitempty"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Format string `json:"format"` // json, text
}

// TracingConfig holds OpenTelemetry settings.
type TracingConfig struct {
	Enabled     bool   `json:"enabled"`
	ServiceName string `json:"serviceName"`
}

// DefaultConfig returns the default configuration: a small in-memory
// catalog, transaction-keyed exact-match lookup, standard policy.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30,
			WriteTimeout: 30,
		},
		Catalog: CatalogConfig{
			Profiles: 20,
		},
		Lookup: LookupConfig{
			KeyScheme: KeyByTransaction,
			ItemMatch: MatchExact,
		},
		Engine: EngineConfig{
			Policy: PolicyStandard,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Tracing: TracingConfig{
			Enabled:     false,
			ServiceName: "kestrel",
		},
	}
}
