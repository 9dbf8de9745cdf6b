package main

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/stemsi/quizgo/internal/api"
	"github.com/stemsi/quizgo/internal/auth"
	"github.com/stemsi/quizgo/internal/config"
	"github.com/stemsi/quizgo/internal/logger"
	"github.com/stemsi/quizgo/internal/model"
)

// Headless login: obtains and stores a token without starting the UI.
// Useful for scripted setups and shared lab machines.
func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat, cfg.LogFile)

	authStore := auth.NewStore(cfg.TokenFile, log)
	apiClient := api.New(cfg.APIBaseURL, &http.Client{Timeout: cfg.RequestTimeout}, authStore.Token, log)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== QuizGo Login ===")

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)
	if email == "" {
		fmt.Println("Error: email is required")
		os.Exit(1)
	}

	fmt.Print("Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		os.Exit(1)
	}
	fmt.Println() // Newline after password input

	resp, err := apiClient.Login(context.Background(), model.LoginRequest{
		Email:    email,
		Password: string(bytePassword),
	})
	if err != nil {
		log.Error().Err(err).Msg("Login failed")
		fmt.Printf("Login failed: %v\n", err)
		os.Exit(1)
	}

	if err := authStore.Save(resp.Token); err != nil {
		fmt.Printf("Could not store token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Logged in as %s (%s)\n", resp.User.Name, resp.User.Email)
}
