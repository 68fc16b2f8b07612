package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	DefaultLogLevel            = "info"
	DefaultMaxSteps            = 1_000_000
	DefaultMazeDir             = "./examples"
	DefaultReplayTick          = 60 * time.Millisecond
	DefaultSSHHost             = "0.0.0.0"
	DefaultSSHPort             = 6996
	DefaultHostKeyPath         = ".ssh/id_ed25519"
	DefaultMaxConnectionsPerIP = 2
)

// Config holds the runtime settings shared by the CLI and the SSH server.
type Config struct {
	LogLevel            log.Level     // Minimum level written by the logger
	MaxSteps            int           // Move budget per exploration, 0 for none
	HistoryDBPath       string        // sqlite file for run history, empty disables it
	MazeDir             string        // Directory offered by the SSH maze picker
	ReplayTick          time.Duration // Delay between animated replay frames
	SSHHost             string
	SSHPort             int
	HostKeyPath         string
	MaxConnectionsPerIP int
}

// Load reads an optional .env file and then the MAZERUNNER_* environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Debug(".env file not found or could not be loaded", "error", err)
	}

	levelName := getEnvWithDefault("MAZERUNNER_LOG_LEVEL", DefaultLogLevel)
	level, err := log.ParseLevel(levelName)
	if err != nil {
		return Config{}, fmt.Errorf("MAZERUNNER_LOG_LEVEL: %w", err)
	}

	maxSteps, err := getEnvAsInt("MAZERUNNER_MAX_STEPS", DefaultMaxSteps)
	if err != nil {
		return Config{}, err
	}
	if maxSteps < 0 {
		return Config{}, fmt.Errorf("MAZERUNNER_MAX_STEPS must not be negative, got %d", maxSteps)
	}

	tickMs, err := getEnvAsInt("MAZERUNNER_REPLAY_TICK_MS", int(DefaultReplayTick/time.Millisecond))
	if err != nil {
		return Config{}, err
	}

	sshPort, err := getEnvAsInt("MAZERUNNER_SSH_PORT", DefaultSSHPort)
	if err != nil {
		return Config{}, err
	}

	maxConns, err := getEnvAsInt("MAZERUNNER_MAX_CONN_PER_IP", DefaultMaxConnectionsPerIP)
	if err != nil {
		return Config{}, err
	}

	return Config{
		LogLevel:            level,
		MaxSteps:            maxSteps,
		HistoryDBPath:       os.Getenv("MAZERUNNER_HISTORY_DB"),
		MazeDir:             getEnvWithDefault("MAZERUNNER_MAZE_DIR", DefaultMazeDir),
		ReplayTick:          time.Duration(max(tickMs, 1)) * time.Millisecond,
		SSHHost:             getEnvWithDefault("MAZERUNNER_SSH_HOST", DefaultSSHHost),
		SSHPort:             sshPort,
		HostKeyPath:         getEnvWithDefault("MAZERUNNER_SSH_HOST_KEY", DefaultHostKeyPath),
		MaxConnectionsPerIP: maxConns,
	}, nil
}

// SSHAddress joins host and port for the SSH listener.
func (c Config) SSHAddress() string {
	return fmt.Sprintf("%s:%d", c.SSHHost, c.SSHPort)
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	return value, nil
}
