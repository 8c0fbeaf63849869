// Package cli implements the interactive NoteSnap shell: a read-eval-print
// loop over the auth and note services, with prompt helpers for text and
// password input.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shindearyan179/notesnap/internal/auth"
	"github.com/shindearyan179/notesnap/internal/config"
	"github.com/shindearyan179/notesnap/internal/logging"
	"github.com/shindearyan179/notesnap/internal/notes"
	"github.com/shindearyan179/notesnap/internal/repositories/repomanager"
	"github.com/shindearyan179/notesnap/internal/security"
	"github.com/shindearyan179/notesnap/internal/sessions"
)

type App struct {
	config  *config.Config
	manager repomanager.RepositoryManager
	auth    *auth.Service
	notes   *notes.Service
	logger  logging.Logger
	reader  *bufio.Reader

	user  *auth.UserInfo
	token string
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()
	logger := logging.NewDefault()

	var manager repomanager.RepositoryManager
	var err error
	switch c.Backend {
	case config.BackendFile:
		manager, err = repomanager.NewFileManager(c.DataDir)
	default:
		manager, err = repomanager.NewPostgresManager(ctx, c.DatabaseDSN)
	}
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	sessionMgr := sessions.NewManager(manager.Sessions(), logger, c.SessionValidity, c.SessionRenewalWindow, c.StorageTimeout)
	limiter := security.NewLimiter(manager.RateLimits(), logger, c.RateLimitMax, c.RateLimitWindow)
	audit := security.NewActivityLog(manager.Activity(), logger)

	authService := auth.NewService(manager.Users(), sessionMgr, limiter, audit, logger, c.EncryptionSecret, c.StorageTimeout)
	noteService := notes.NewService(manager.Notes(), logger, c.EncryptionSecret, c.StorageTimeout)

	return &App{
		config:  c,
		manager: manager,
		auth:    authService,
		notes:   noteService,
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

// origin identifies the local shell in rate limiting and the activity log.
func (a *App) origin() auth.Origin {
	return auth.Origin{IP: "127.0.0.1", UserAgent: "notesnap-cli"}
}

func (a *App) getStatus() string {
	if a.user != nil {
		return fmt.Sprintf("(%s) ", a.user.Username)
	}
	return ""
}

func (a *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	a.initSignalHandler(cancelFunc)
	defer a.manager.Close()

	fmt.Println("NoteSnap CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
