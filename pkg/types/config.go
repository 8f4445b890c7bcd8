package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperscreen/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for the PubMed fetch stage.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Email identifies the caller to NCBI. E-utilities requests must carry
	// a contact address.
	Email string `json:"email" yaml:"email"`

	// APIKey is an optional NCBI API key for higher request limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults is the maximum number of search results to fetch (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// BatchSize is the number of records fetched per efetch request (default 50).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// CacheDir is the directory for cached fetch payloads. Empty selects
	// a per-user cache directory.
	CacheDir string `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`

	// CacheTTL is how long cached payloads stay valid (default 24h).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`

	// DisableCache bypasses the fetch cache entirely.
	DisableCache bool `json:"disable_cache" yaml:"disable_cache"`
}

// ScreenConfig holds the screening vocabularies. Empty slices select the
// built-in defaults, so the zero value is a working configuration.
type ScreenConfig struct {
	// AcademicTerms are case-insensitive substrings that mark an
	// affiliation as academic.
	AcademicTerms []string `json:"academic_terms,omitempty" yaml:"academic_terms,omitempty"`

	// CompanyTerms are case-insensitive substrings that mark an
	// affiliation as commercial.
	CompanyTerms []string `json:"company_terms,omitempty" yaml:"company_terms,omitempty"`

	// AcademicEmailDomains are substrings that mark an email domain as academic.
	AcademicEmailDomains []string `json:"academic_email_domains,omitempty" yaml:"academic_email_domains,omitempty"`
}

// StoreConfig holds settings for the results store.
type StoreConfig struct {
	// Path is the SQLite database file. Empty selects a per-user data
	// directory default.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
	Screen ScreenConfig `json:"screen" yaml:"screen"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
