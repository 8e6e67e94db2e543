package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gmbtravels/gmb-backend/internal/apicheck"
	"github.com/gmbtravels/gmb-backend/logging"
)

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func main() {
	baseURL := flag.String("base-url", envDefault("GMB_BASE_URL", "http://localhost:8080/api"), "base API URL")
	username := flag.String("username", os.Getenv("GMB_ADMIN_USERNAME"), "admin username")
	password := flag.String("password", os.Getenv("GMB_ADMIN_PASSWORD"), "admin password")
	timeout := flag.Float64("timeout", envFloat("GMB_HTTP_TIMEOUT", 15), "HTTP timeout in seconds")
	retries := flag.Int("retries", envInt("GMB_HTTP_RETRIES", 3), "HTTP retry attempts")
	destructive := flag.Bool("destructive", false, "run create/update/delete tests")
	jsonOut := flag.String("json-out", "gmb_test_results.json", "write JSON summary to file")
	flag.Parse()

	logging.Setup(envDefault("LOG_LEVEL", "info"), "console")

	suite := apicheck.NewSuite(apicheck.Options{
		BaseURL:     *baseURL,
		Username:    *username,
		Password:    *password,
		Timeout:     time.Duration(*timeout * float64(time.Second)),
		Retries:     *retries,
		Destructive: *destructive,
	})

	log.Info().Str("base_url", *baseURL).Bool("destructive", *destructive).Msg("running backend check suite")
	ok := suite.Run()

	report := suite.Report()
	fmt.Printf("\nSUMMARY: %d/%d passed\n", report.Passed(), len(report.Results))

	if err := report.WriteFile(*jsonOut); err != nil {
		log.Error().Err(err).Str("path", *jsonOut).Msg("could not write JSON report")
		os.Exit(1)
	}
	log.Info().Str("path", *jsonOut).Msg("wrote JSON results")

	if !ok {
		os.Exit(1)
	}
}
