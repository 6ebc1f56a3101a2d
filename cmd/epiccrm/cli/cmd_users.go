package cli

import (
	"context"
	"strings"

	"github.com/epic-events/epic-crm/internal/users"
)

func viewProfile(ctx context.Context, sh *Shell, _ []string) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	profile, err := sh.services.Users.GetProfile(ctx, caller.UserID)
	if err != nil {
		return err
	}
	return renderProfile(sh.out, profile)
}

func updateProfile(ctx context.Context, sh *Shell, args []string) error {
	caller, err := callerOf(ctx)
	if err != nil {
		return err
	}
	req := users.UpdateProfileRequest{Email: &args[0]}
	if len(args) > 1 {
		bio := strings.Join(args[1:], " ")
		req.Bio = &bio
	}
	profile, err := sh.services.Users.UpdateProfile(ctx, caller.UserID, req)
	if err != nil {
		return err
	}
	sh.printf("Profile updated.\n")
	return renderProfile(sh.out, profile)
}

func listUsers(ctx context.Context, sh *Shell, _ []string) error {
	list, err := sh.services.Users.List(ctx)
	if err != nil {
		return err
	}
	return renderUsers(sh.out, list)
}

func viewUser(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	user, err := sh.services.Users.Get(ctx, id)
	if err != nil {
		return err
	}
	return renderUser(sh.out, user)
}

func createUser(ctx context.Context, sh *Shell, args []string) error {
	password, err := sh.console.NewPassword("Password for " + args[0] + ": ")
	if err != nil {
		return err
	}
	user, err := sh.services.Users.Create(ctx, users.CreateUserRequest{
		Username: args[0],
		Role:     args[1],
		Email:    args[2],
		Password: password,
	})
	if err != nil {
		return err
	}
	sh.printf("Created user %s (#%d) with role %s.\n", user.Username, user.ID, user.Role)
	return nil
}

func updateUser(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	kv, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}
	if err := kv.only("username", "email", "role", "password"); err != nil {
		return err
	}
	user, err := sh.services.Users.Update(ctx, id, users.UpdateUserRequest{
		Username: kv.str("username"),
		Email:    kv.str("email"),
		Role:     kv.str("role"),
		Password: kv.str("password"),
	})
	if err != nil {
		return err
	}
	sh.printf("Updated user %s (#%d).\n", user.Username, user.ID)
	return nil
}

func deleteUser(ctx context.Context, sh *Shell, args []string) error {
	id, err := parseID(args[0], "id")
	if err != nil {
		return err
	}
	if err := sh.services.Users.Delete(ctx, id); err != nil {
		return err
	}
	sh.printf("Deleted user #%d.\n", id)
	return nil
}
