package config

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the document Q&A engine.
type Config struct {
	RAG        RAGConfig        `json:"rag" yaml:"rag"`
	LLM        LLMConfig        `json:"llm" yaml:"llm"`
	Embedding  EmbeddingConfig  `json:"embedding" yaml:"embedding"`
	VectorDB   VectorDBConfig   `json:"vectordb" yaml:"vectordb"`
	Guardrails GuardrailsConfig `json:"guardrails,omitempty" yaml:"guardrails,omitempty"`
	Server     ServerConfig     `json:"server,omitempty" yaml:"server,omitempty"`
}

// RAGConfig contains retrieval and chunking settings.
type RAGConfig struct {
	Splitter  SplitterConfig `json:"splitter" yaml:"splitter"`
	TopK      int            `json:"top_k,omitempty" yaml:"top_k,omitempty"`
	Threshold float64        `json:"threshold,omitempty" yaml:"threshold,omitempty"`
}

// SplitterConfig defines document splitter configuration.
type SplitterConfig struct {
	Provider     string `json:"provider" yaml:"provider"` // Available options: recursive, token
	ChunkSize    int    `json:"chunk_size,omitempty" yaml:"chunk_size,omitempty"`
	ChunkOverlap int    `json:"chunk_overlap,omitempty" yaml:"chunk_overlap,omitempty"`
}

// LLMConfig defines configuration for the language model backend.
type LLMConfig struct {
	Provider    string  `json:"provider" yaml:"provider"` // Available options: openai (any OpenAI-compatible endpoint)
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APIKeyEnv   string  `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model       string  `json:"model" yaml:"model"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// EmbeddingConfig defines configuration for the embedding model.
type EmbeddingConfig struct {
	Provider   string `json:"provider" yaml:"provider"` // Available options: openai
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	APIKeyEnv  string `json:"api_key_env,omitempty" yaml:"api_key_env,omitempty"`
	BaseURL    string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model      string `json:"model,omitempty" yaml:"model,omitempty"`
	Dimensions int    `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
}

// VectorDBConfig defines configuration for the vector store backend.
type VectorDBConfig struct {
	Provider   string `json:"provider" yaml:"provider"` // Available options: memory, milvus
	Host       string `json:"host,omitempty" yaml:"host,omitempty"`
	Port       int    `json:"port,omitempty" yaml:"port,omitempty"`
	Database   string `json:"database,omitempty" yaml:"database,omitempty"`
	Collection string `json:"collection,omitempty" yaml:"collection,omitempty"`
	Username   string `json:"username,omitempty" yaml:"username,omitempty"`
	Password   string `json:"password,omitempty" yaml:"password,omitempty"`
}

// GuardrailsConfig extends the built-in safety pattern sets. Matching
// semantics (substring, case-insensitive, injection before off-topic) are
// fixed; only the pattern data is configurable.
type GuardrailsConfig struct {
	ExtraInjectionPatterns []string `json:"extra_injection_patterns,omitempty" yaml:"extra_injection_patterns,omitempty"`
	ExtraOffTopicPatterns  []string `json:"extra_off_topic_patterns,omitempty" yaml:"extra_off_topic_patterns,omitempty"`
}

// ServerConfig holds the HTTP API listener settings.
type ServerConfig struct {
	Host      string `json:"host,omitempty" yaml:"host,omitempty"`
	Port      int    `json:"port,omitempty" yaml:"port,omitempty"`
	UploadDir string `json:"upload_dir,omitempty" yaml:"upload_dir,omitempty"`
}

// Default returns a configuration with the stock settings: recursive
// splitting at 500/50, top-4 retrieval, in-memory vector store.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML config from path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.RAG.Splitter.Provider == "" {
		cfg.RAG.Splitter.Provider = "recursive"
	}
	if cfg.RAG.Splitter.ChunkSize <= 0 {
		cfg.RAG.Splitter.ChunkSize = 500
	}
	if cfg.RAG.Splitter.ChunkOverlap < 0 || cfg.RAG.Splitter.ChunkOverlap >= cfg.RAG.Splitter.ChunkSize {
		cfg.RAG.Splitter.ChunkOverlap = 50
	}
	if cfg.RAG.TopK <= 0 {
		cfg.RAG.TopK = 4
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = "openai"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "llama-3.3-70b-versatile"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "GROQ_API_KEY"
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(cfg.LLM.APIKeyEnv)
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "openai"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.Dimensions <= 0 {
		cfg.Embedding.Dimensions = 1536
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedding.APIKey == "" {
		cfg.Embedding.APIKey = os.Getenv(cfg.Embedding.APIKeyEnv)
	}
	if cfg.VectorDB.Provider == "" {
		cfg.VectorDB.Provider = "memory"
	}
	if cfg.VectorDB.Collection == "" {
		cfg.VectorDB.Collection = "docqa_chunks"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.UploadDir == "" {
		cfg.Server.UploadDir = "uploads"
	}
}
