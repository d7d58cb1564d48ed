package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/visitorgate/visitor-admin/internal/core/domain"
	"github.com/visitorgate/visitor-admin/internal/core/ports"
	"github.com/visitorgate/visitor-admin/internal/core/service"
	"github.com/visitorgate/visitor-admin/pkg/logger"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage operator accounts",
}

var newUser ports.CreateUserInput

// userCreateCmd provisions accounts outside the API, which is how the first
// admin is created.
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an operator account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		cfg, log, err := bootstrap(ctx)
		if err != nil {
			return err
		}

		st, err := openStores(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer st.close(ctx)

		svc := service.NewUserService(st.users, st.presence, logger.Component("user_service"))
		user, err := svc.Create(ctx, newUser)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) uid=%s\n", user.Email, user.Role, user.UID)
		return nil
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&newUser.Email, "email", "", "login email")
	f.StringVar(&newUser.Password, "password", "", "initial password")
	f.StringVar(&newUser.DisplayName, "name", "", "display name")
	f.StringVar(&newUser.Role, "role", domain.RoleUser, "admin | user")
	f.StringVar(&newUser.Platform, "platform", "", "web | mobile (admins only)")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
}
