package client

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-cv-tailor/internal/adapter"
	"github.com/MKhiriev/go-cv-tailor/internal/config"
	"github.com/MKhiriev/go-cv-tailor/internal/logger"
	"github.com/MKhiriev/go-cv-tailor/internal/service"
	"github.com/MKhiriev/go-cv-tailor/internal/store"
	"github.com/MKhiriev/go-cv-tailor/models"
)

type App struct {
	services *service.ClientServices
	workers  config.ClientWorkers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, workers config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if services == nil {
		return nil, errors.New("client services are not initialized")
	}

	return &App{services: services, workers: workers, logger: logger}, nil
}

func (a *App) Run() error {
	// конфигурационные флаги уже разобраны при загрузке конфига
	return a.run(context.Background(), flag.Args())
}

func (a *App) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	// восстанавливаем сессию заранее: команды, которым она не нужна,
	// просто не заметят её отсутствия
	session, err := a.services.AuthService.RestoreSession(ctx)
	if err != nil && !errors.Is(err, store.ErrSessionNotFound) {
		return fmt.Errorf("restore session: %w", err)
	}
	loggedIn := err == nil

	if loggedIn {
		a.services.SyncJob.Start(ctx, a.workers.SyncInterval)
		defer a.services.SyncJob.Stop()
	}

	err = a.dispatch(ctx, session, loggedIn, args)
	if errors.Is(err, adapter.ErrUnauthorized) {
		// сервер перестал принимать кэшированный токен: чистим сессию,
		// чтобы следующая команда начиналась с логина
		if logoutErr := a.services.AuthService.Logout(ctx); logoutErr != nil {
			a.logger.Err(logoutErr).Msg("clearing rejected session ended with error")
		}
		fmt.Println("session expired, please log in again")
	}
	return err
}

func (a *App) dispatch(ctx context.Context, session models.Session, loggedIn bool, args []string) error {
	switch args[0] {
	case "register":
		return a.register(ctx, args[1:])
	case "login":
		return a.login(ctx, args[1:])
	case "logout":
		return a.services.AuthService.Logout(ctx)
	case "verify":
		return a.verifyEmail(ctx, args[1:])
	case "reset-request":
		return a.requestPasswordReset(ctx, args[1:])
	case "reset-confirm":
		return a.confirmPasswordReset(ctx, args[1:])
	case "whoami":
		return a.whoami(session, loggedIn)
	case "balance":
		return a.balance(ctx)
	case "sync":
		return a.sync(ctx)
	case "buy":
		return a.buy(ctx, args[1:])
	case "generate":
		return a.generate(ctx, args[1:])
	case "generate-file":
		return a.generateFromFile(ctx, args[1:])
	case "probe":
		return a.probe(ctx)
	case "admin":
		return a.admin(ctx, args[1:])
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: register <email> <password>")
	}

	user, err := a.services.AuthService.Register(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("registered %s, %d credits granted\n", user.Email, user.AvailableCredits)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}

	session, err := a.services.AuthService.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	fmt.Printf("logged in as %s\n", session.Email)
	if session.IsAdmin() {
		fmt.Println("admin commands are available")
	}
	return nil
}

func (a *App) verifyEmail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: verify <token>")
	}

	if err := a.services.AuthService.VerifyEmail(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("email verified")
	return nil
}

func (a *App) requestPasswordReset(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: reset-request <email>")
	}

	if err := a.services.AuthService.RequestPasswordReset(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("if the address is registered, a reset token has been issued")
	return nil
}

func (a *App) confirmPasswordReset(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: reset-confirm <token> <new-password>")
	}

	if err := a.services.AuthService.ConfirmPasswordReset(ctx, args[0], args[1]); err != nil {
		return err
	}

	fmt.Println("password updated, log in with the new password")
	return nil
}

func (a *App) whoami(session models.Session, loggedIn bool) error {
	if !loggedIn {
		fmt.Println("not logged in")
		return nil
	}

	fmt.Printf("%s (%s)\n", session.Email, session.Role)
	return nil
}

func (a *App) balance(ctx context.Context) error {
	balance, err := a.services.LedgerService.Balance(ctx)
	if err != nil {
		return err
	}

	printBalance(balance)
	return nil
}

func (a *App) sync(ctx context.Context) error {
	balance, err := a.services.LedgerService.Sync(ctx)
	if err != nil {
		return err
	}

	fmt.Println("synced with server")
	printBalance(balance)
	return nil
}

func (a *App) buy(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: buy <pack_3|pack_8>")
	}

	checkout, err := a.services.LedgerService.Buy(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("open this link to complete the purchase:\n%s\n", checkout.URL)
	return nil
}

func (a *App) generate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: generate <resume-text> <job-description>")
	}

	resp, err := a.services.TailorService.Generate(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	printGeneration(resp)
	return nil
}

func (a *App) generateFromFile(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.New("usage: generate-file <resume-file> <job-description>")
	}

	resp, err := a.services.TailorService.GenerateFromFile(ctx, args[0], args[1])
	if err != nil {
		return err
	}

	printGeneration(resp)
	return nil
}

func (a *App) probe(ctx context.Context) error {
	if err := a.services.TailorService.Probe(ctx); err != nil {
		return err
	}

	fmt.Println("tailoring backend is reachable")
	return nil
}

func (a *App) admin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: admin <list|search|grant|reset|block|unblock|stats> ...")
	}

	switch args[0] {
	case "list":
		limit, offset := 0, 0
		if len(args) > 1 {
			limit, _ = strconv.Atoi(args[1])
		}
		if len(args) > 2 {
			offset, _ = strconv.Atoi(args[2])
		}

		users, err := a.services.AdminService.ListUsers(ctx, limit, offset)
		if err != nil {
			return err
		}
		printUsers(users)
		return nil

	case "search":
		if len(args) != 2 {
			return errors.New("usage: admin search <email>")
		}

		users, err := a.services.AdminService.SearchUsers(ctx, args[1])
		if err != nil {
			return err
		}
		printUsers(users)
		return nil

	case "grant":
		if len(args) < 3 {
			return errors.New("usage: admin grant <user-id> <amount> [reason]")
		}
		userID, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[1])
		}
		amount, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[2])
		}
		reason := ""
		if len(args) > 3 {
			reason = args[3]
		}

		balance, err := a.services.AdminService.GrantCredits(ctx, userID, amount, reason)
		if err != nil {
			return err
		}
		printBalance(balance)
		return nil

	case "reset":
		userID, err := adminUserID(args)
		if err != nil {
			return err
		}
		if err := a.services.AdminService.ResetCredits(ctx, userID); err != nil {
			return err
		}
		fmt.Printf("available credits of user %d reset to zero\n", userID)
		return nil

	case "block", "unblock":
		userID, err := adminUserID(args)
		if err != nil {
			return err
		}
		blocked := args[0] == "block"
		if err := a.services.AdminService.SetBlocked(ctx, userID, blocked); err != nil {
			return err
		}
		fmt.Printf("user %d blocked=%v\n", userID, blocked)
		return nil

	case "stats":
		stats, err := a.services.AdminService.Stats(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("users: %d total, %d active, %d blocked, %d verified\n",
			stats.TotalUsers, stats.ActiveUsers, stats.BlockedUsers, stats.VerifiedUsers)
		fmt.Printf("credits: %d available, %d used, %d earned\n",
			stats.TotalAvailableCredits, stats.TotalUsedCredits, stats.TotalCreditsEarned)
		return nil

	default:
		return fmt.Errorf("unknown admin command %q", args[0])
	}
}

func adminUserID(args []string) (int64, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("usage: admin %s <user-id>", args[0])
	}

	userID, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", args[1])
	}

	return userID, nil
}

func printBalance(b models.CreditBalance) {
	fmt.Printf("credits: %d available, %d used, %d earned in total\n",
		b.Available, b.Used, b.TotalEarned)
}

func printGeneration(resp models.GenerateResponse) {
	fmt.Println(resp.TailoredResume)
	if resp.Summary != "" {
		fmt.Printf("\n--- summary ---\n%s\n", resp.Summary)
	}
	if resp.CreditsRemaining > 0 {
		fmt.Printf("\ncredits remaining: %d\n", resp.CreditsRemaining)
	}
}

func printUsers(users []models.User) {
	for _, u := range users {
		flags := ""
		if u.IsBlocked {
			flags += " [blocked]"
		}
		if u.EmailVerified {
			flags += " [verified]"
		}
		fmt.Printf("%6d  %-32s credits=%d%s\n", u.UserID, u.Email, u.AvailableCredits, flags)
	}
}

func (a *App) usage() {
	fmt.Print(`usage: cv-tailor <command> [arguments]

account:
  register <email> <password>
  login <email> <password>
  logout
  whoami
  verify <token>
  reset-request <email>
  reset-confirm <token> <new-password>

credits:
  balance
  sync
  buy <pack_3|pack_8>

tailoring:
  generate <resume-text> <job-description>
  generate-file <resume-file> <job-description>
  probe

admin:
  admin list [limit] [offset]
  admin search <email>
  admin grant <user-id> <amount> [reason]
  admin reset <user-id>
  admin block <user-id>
  admin unblock <user-id>
  admin stats
`)
}
