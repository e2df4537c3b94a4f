package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/faisalgulab4589-hash/GIMS/internal/config"
	"github.com/faisalgulab4589-hash/GIMS/internal/database"
	"github.com/faisalgulab4589-hash/GIMS/internal/logger"
	"github.com/faisalgulab4589-hash/GIMS/internal/model"
	"github.com/faisalgulab4589-hash/GIMS/internal/repository"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	staffRepo := repository.NewStaffRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create New Staff Account ===")

	fmt.Print("Enter Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Name is required")
		return
	}

	fmt.Print("Enter Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("Error: Username is required")
		return
	}

	fmt.Print("Enter Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 6 {
		fmt.Println("Error: Password must be at least 6 characters")
		return
	}

	fmt.Print("Enter Role (admin/teacher, default teacher): ")
	roleStr, _ := reader.ReadString('\n')
	role := model.StaffRole(strings.TrimSpace(roleStr))
	if role == "" {
		role = model.StaffRoleTeacher
	}
	if role != model.StaffRoleAdmin && role != model.StaffRoleTeacher {
		fmt.Println("Error: Role must be admin or teacher")
		return
	}

	fmt.Print("Enter Modules (comma-separated, default exams,results,roster): ")
	modulesStr, _ := reader.ReadString('\n')
	modulesStr = strings.TrimSpace(modulesStr)
	modules := []string{model.ModuleExams, model.ModuleResults, model.ModuleRoster}
	if modulesStr != "" {
		modules = modules[:0]
		for _, m := range strings.Split(modulesStr, ",") {
			if trimmed := strings.TrimSpace(m); trimmed != "" {
				modules = append(modules, trimmed)
			}
		}
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	staff := &model.Staff{
		Username:     username,
		Name:         name,
		Role:         role,
		Modules:      modules,
		PasswordHash: string(hashedPassword),
	}

	if err := staffRepo.Create(ctx, staff); err != nil {
		log.Fatal().Err(err).Msg("Failed to create staff account")
	}

	fmt.Printf("\nSuccess! Staff '%s' (%s, %s) created with ID: %d\n",
		staff.Name, staff.Username, staff.Role, staff.ID)
}
