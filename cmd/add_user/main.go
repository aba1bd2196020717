package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"nfm-facility/app/config"
	"nfm-facility/app/database"
	"nfm-facility/app/models"
	"nfm-facility/app/routes/auth"
)

func main() {
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "initial password")
	first := flag.String("first", "", "first name")
	last := flag.String("last", "", "last name")
	role := flag.String("role", models.RoleAdmin, "role: admin, supervisor or accountant")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("usage: add_user -email someone@site -password secret [-first A -last B -role admin]")
		os.Exit(2)
	}

	// Initialize database connection
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		os.Exit(1)
	}

	user := &models.User{
		FirstName: *first,
		LastName:  *last,
		Email:     strings.ToLower(strings.TrimSpace(*email)),
		Password:  hashed,
	}
	if err := database.CreateUser(context.Background(), db, user, *role); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s %s (%s) as %s\n", user.FirstName, user.LastName, user.Email, *role)
}
