package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Ollama      OllamaConfig
	RAG         RAGConfig
	Documents   DocumentsConfig
	Institution InstitutionConfig
	Chat        ChatConfig
	JWT         JWTConfig
	Admin       AdminConfig
	Logger      LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// OllamaConfig points the service at a locally hosted Ollama server.
// Timeout is generous on purpose: local inference is slow to warm up,
// and a cold model can take minutes to answer its first prompt.
type OllamaConfig struct {
	BaseURL        string
	Model          string
	EmbeddingModel string
	Temperature    float64
	NumPredict     int
	RepeatPenalty  float64
	Timeout        time.Duration
}

type RAGConfig struct {
	TopK int
}

type DocumentsConfig struct {
	Dir string
}

// InstitutionConfig parameterizes the assistant's identity preamble.
// These values are configuration, never model-generated.
type InstitutionConfig struct {
	Name            string
	Location        string
	Type            string
	EstablishedYear string
	Purpose         string
}

type ChatConfig struct {
	HistoryTurns int
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
	RefreshExp time.Duration
}

type AdminConfig struct {
	Username string
	Password string
}

func Load() (*Config, error) {
	// Try to load .env file from current directory or project root
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}
	// No .env file is fine, plain environment variables work too (Docker/K8s)

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "24"))
	refreshExp, _ := strconv.Atoi(getEnv("JWT_REFRESH_EXPIRATION_HOURS", "168"))
	ragTopK, _ := strconv.Atoi(getEnv("RAG_TOP_K", "3"))
	historyTurns, _ := strconv.Atoi(getEnv("CHAT_HISTORY_TURNS", "5"))
	ollamaTimeout, _ := strconv.Atoi(getEnv("OLLAMA_TIMEOUT_SECONDS", "180"))
	temperature, _ := strconv.ParseFloat(getEnv("OLLAMA_TEMPERATURE", "0.2"), 64)
	numPredict, _ := strconv.Atoi(getEnv("OLLAMA_NUM_PREDICT", "512"))
	repeatPenalty, _ := strconv.ParseFloat(getEnv("OLLAMA_REPEAT_PENALTY", "1.1"), 64)

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "eduagent"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Ollama: OllamaConfig{
			BaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Model:          getEnv("OLLAMA_MODEL", "phi3:mini"),
			EmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			Temperature:    temperature,
			NumPredict:     numPredict,
			RepeatPenalty:  repeatPenalty,
			Timeout:        time.Duration(ollamaTimeout) * time.Second,
		},
		RAG: RAGConfig{
			TopK: ragTopK,
		},
		Documents: DocumentsConfig{
			Dir: getEnv("DOCUMENTS_DIR", "uploaded_docs"),
		},
		Institution: InstitutionConfig{
			Name:            getEnv("INSTITUTION_NAME", "MBIT, CVM University"),
			Location:        getEnv("INSTITUTION_LOCATION", "Vallabh Vidyanagar, Gujarat"),
			Type:            getEnv("INSTITUTION_TYPE", "engineering college"),
			EstablishedYear: getEnv("INSTITUTION_ESTABLISHED", "2004"),
			Purpose:         getEnv("INSTITUTION_PURPOSE", "helping students with questions about exams, fees, attendance, scholarships, admissions and the library"),
		},
		Chat: ChatConfig{
			HistoryTurns: historyTurns,
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", "your-secret-key-change-in-production"),
			Expiration: time.Duration(jwtExp) * time.Hour,
			RefreshExp: time.Duration(refreshExp) * time.Hour,
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", "admin"),
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
