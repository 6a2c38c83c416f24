package config

import "os"

type Config struct {
	ServerPort        string
	TesseractDataPath string
	OCRLanguage       string
	MaxFileSize       int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	ocrLanguage := os.Getenv("OCR_LANGUAGE")
	if ocrLanguage == "" {
		ocrLanguage = "por"
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: os.Getenv("TESSDATA_PREFIX"),
		OCRLanguage:       ocrLanguage,
		MaxFileSize:       10 * 1024 * 1024, // 10 MB
	}
}
