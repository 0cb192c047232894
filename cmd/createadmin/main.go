// Command createadmin bootstraps the first admin account. Run it once,
// out of band of the API server.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"taskflow/internal/config"
	"taskflow/internal/domain"
	"taskflow/internal/repository"
	"taskflow/internal/repository/sqlite"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	users := sqlite.NewUserRepository(db)
	if err := users.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	tasks := sqlite.NewTaskRepository(db)
	if err := tasks.Init(ctx); err != nil {
		logger.Fatalf("init task repository: %v", err)
	}

	if _, err := users.GetByUsername(ctx, "admin"); err == nil {
		logger.Fatal("admin user already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		logger.Fatalf("check existing admin: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)
	username := prompt(reader, "Enter admin username (default: admin): ", "admin")
	password := prompt(reader, "Enter admin password (default: admin123): ", "admin123")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatalf("hash password: %v", err)
	}

	admin := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if _, err := users.Create(ctx, admin); err != nil {
		logger.Fatalf("create admin: %v", err)
	}

	logger.Infof("admin user %q created (id %d)", admin.Username, admin.ID)
}

func prompt(reader *bufio.Reader, label, fallback string) string {
	fmt.Print(label)
	line, err := reader.ReadString('\n')
	if err != nil {
		return fallback
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return fallback
	}
	return line
}
