package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"mapup/internal/backend"
	"mapup/internal/form"
	"mapup/internal/logging"
	"mapup/internal/model"
)

// options controls a seed run.
type options struct {
	// Username and Password log in first so later calls carry a token.
	Username string
	Password string

	Admin form.CreateUserForm
	Files []string
}

// result summarises a seed run.
type result struct {
	AdminCreated bool
	Uploaded     int
	Records      int
}

// optionsFromEnv reads credentials from SEED_* variables; files are the
// command line arguments.
func optionsFromEnv(files []string) options {
	return options{
		Username: os.Getenv("SEED_USERNAME"),
		Password: os.Getenv("SEED_PASSWORD"),
		Admin: form.CreateUserForm{
			FullName: os.Getenv("SEED_ADMIN_FULL_NAME"),
			Username: os.Getenv("SEED_ADMIN_USERNAME"),
			Email:    os.Getenv("SEED_ADMIN_EMAIL"),
			Password: os.Getenv("SEED_ADMIN_PASSWORD"),
			Role:     model.RoleAdmin,
		},
		Files: files,
	}
}

func seed(ctx context.Context, client backend.Client, opts options, log logging.Logger) (result, error) {
	var res result

	if opts.Username != "" {
		login, err := client.Login(ctx, opts.Username, opts.Password)
		if err != nil {
			return res, fmt.Errorf("login as %s: %w", opts.Username, err)
		}
		ctx = backend.WithToken(ctx, login.Token)
	}

	if opts.Admin.Username != "" {
		if errs := form.NewValidator().CreateUser(opts.Admin); len(errs) > 0 {
			return res, fmt.Errorf("admin user is invalid: %v", errs)
		}
		err := client.CreateUser(ctx, backend.CreateUserRequest{
			FullName: opts.Admin.FullName,
			Username: opts.Admin.Username,
			Email:    opts.Admin.Email,
			Password: opts.Admin.Password,
			Role:     opts.Admin.Role,
		})
		if err != nil {
			return res, fmt.Errorf("create admin %s: %w", opts.Admin.Username, err)
		}
		res.AdminCreated = true
		log.Info(ctx, "admin user created", "username", opts.Admin.Username)
	}

	for _, path := range opts.Files {
		if err := uploadFile(ctx, client, path); err != nil {
			return res, err
		}
		res.Uploaded++
		log.Info(ctx, "file uploaded", "path", path)
	}

	if res.Uploaded > 0 {
		records, err := client.FileData(ctx)
		if err != nil {
			return res, fmt.Errorf("verify upload: %w", err)
		}
		res.Records = len(records)
	}
	return res, nil
}

func uploadFile(ctx context.Context, client backend.Client, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if err := client.UploadFile(ctx, filepath.Base(path), f); err != nil {
		return fmt.Errorf("upload %s: %w", path, err)
	}
	return nil
}
