// Command createadmin adds an admin account.
//
//	go run ./scripts/createadmin [email] [password] [full name]
//
// Missing arguments fall back to ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_NAME.
package main

import (
	"context"
	"flag"
	"hostel-server/config"
	"hostel-server/services"
	"hostel-server/storage"

	"github.com/kataras/golog"
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		golog.Fatalf("loading config: %v", err)
	}
	email, password, name := cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.FullName
	if flag.NArg() > 0 {
		email = flag.Arg(0)
	}
	if flag.NArg() > 1 {
		password = flag.Arg(1)
	}
	if flag.NArg() > 2 {
		name = flag.Arg(2)
	}

	db, err := storage.InitializeDB(cfg.DatabaseURL)
	if err != nil {
		golog.Fatal(err)
	}
	defer storage.CloseDB(db)

	admin, err := services.CreateAdmin(context.Background(), storage.NewUserStore(db), email, password, name)
	if err != nil {
		golog.Fatalf("creating admin %s: %v", email, err)
	}
	golog.Infof("admin created: id=%d email=%s name=%q", admin.ID, admin.Email, admin.FullName)
	golog.Warn("change the password after the first login")
}
