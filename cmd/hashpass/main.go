// Command hashpass prints a users-file entry with a bcrypt password hash.
//
//	hashpass -login chef@hotel.test -name "Head Chef" -role Staff -password secret
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"banquet-admin/auth"
	"banquet-admin/logger"
	"banquet-admin/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errMissingInput = errors.New("login and password are required")

func main() {
	log := logger.New(logger.Config{Format: logger.CONSOLE, Output: os.Stderr})

	login := flag.String("login", "", "user login")
	name := flag.String("name", "", "display name")
	role := flag.String("role", model.RoleStaff, "Admin or Staff")
	password := flag.String("password", "", "plain password, hashed before printing; surrounding spaces are dropped as at sign-in")
	inactive := flag.Bool("inactive", false, "mark the account inactive")
	flag.Parse()

	user, err := newUser(*login, *name, *role, *password, !*inactive)
	if errors.Is(err, errMissingInput) {
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create user entry")
	}

	out, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot encode user")
	}
	fmt.Println(string(out))
}

// newUser normalizes input the same way sign-in does, so the printed hash
// matches what auth.StoreVerifier compares.
func newUser(login, name, role, password string, active bool) (model.UserData, error) {
	login = strings.TrimSpace(login)
	password = strings.TrimSpace(password)
	if login == "" || password == "" {
		return model.UserData{}, errMissingInput
	}
	if role != model.RoleAdmin && role != model.RoleStaff {
		return model.UserData{}, fmt.Errorf("role must be %s or %s, got %q", model.RoleAdmin, model.RoleStaff, role)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.UserData{}, fmt.Errorf("cannot hash password: %v", err)
	}

	return model.UserData{
		Id:             primitive.NewObjectID(),
		Login:          login,
		Name:           strings.TrimSpace(name),
		HashedPassword: hash,
		Role:           role,
		IsActive:       active,
	}, nil
}
