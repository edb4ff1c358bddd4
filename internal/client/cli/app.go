package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/umsclient/internal/client/api"
	"github.com/dmitrijs2005/umsclient/internal/client/assets"
	"github.com/dmitrijs2005/umsclient/internal/client/config"
	"github.com/dmitrijs2005/umsclient/internal/client/localdb"
	"github.com/dmitrijs2005/umsclient/internal/client/services"
	"github.com/dmitrijs2005/umsclient/internal/client/session"
	"github.com/dmitrijs2005/umsclient/internal/logging"

	_ "modernc.org/sqlite"
)

// App holds the wired client components plus the shell's own view state:
// the simulated current route. The route exists only to drive the session
// gate the way the original screens do.
type App struct {
	config         *config.Config
	log            logging.Logger
	authService    services.AuthService
	profileService services.ProfileService
	adminService   services.AdminService
	sess           *session.Store
	route          string
	reader         *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()

	db, err := localdb.Open(ctx, c.LocalDBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	apiClient, err := api.NewHTTPClient(c.ServerBaseURL, c.RequestTimeout, log)
	if err != nil {
		return nil, err
	}

	store := assets.NewS3Store(assets.Config{
		Region:       c.S3Region,
		Bucket:       c.S3Bucket,
		BaseEndpoint: c.S3BaseEndpoint,
		AccessKey:    c.S3AccessKey,
		SecretKey:    c.S3SecretKey,
	}, log)

	sess := session.NewStore()
	as := services.NewAuthService(apiClient, apiClient, sess, db, log)
	ps := services.NewProfileService(apiClient, store, sess, log)
	ads := services.NewAdminService(apiClient, log)

	return &App{
		config:         c,
		log:            log,
		authService:    as,
		profileService: ps,
		adminService:   ads,
		sess:           sess,
		route:          "/",
		reader:         bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isSignedIn() bool {
	return a.sess.SignedIn()
}

func (a *App) getStatus() string {
	s := a.route
	if rec, ok := a.sess.Current(); ok {
		s = fmt.Sprintf("%s %s", rec.Username, a.route)
	}
	return fmt.Sprintf("(%s)", s)
}

// Run restores a persisted session if one exists, then hands control to the
// REPL. It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.authService.Close(ctx)

	if rec, err := a.authService.Restore(ctx); err == nil {
		printlnFn(fmt.Sprintf("Welcome back, %s!", rec.Username))
	}

	printlnFn("UMS client (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
