package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/MKhiriev/passgate/internal/audit"
	"github.com/MKhiriev/passgate/internal/clock"
	"github.com/MKhiriev/passgate/internal/config"
	"github.com/MKhiriev/passgate/internal/crypto"
	"github.com/MKhiriev/passgate/internal/device"
	"github.com/MKhiriev/passgate/internal/fingerprint"
	"github.com/MKhiriev/passgate/internal/logger"
	"github.com/MKhiriev/passgate/internal/logout"
	"github.com/MKhiriev/passgate/internal/ratelimit"
	"github.com/MKhiriev/passgate/internal/securestore"
	"github.com/MKhiriev/passgate/internal/service"
	"github.com/MKhiriev/passgate/internal/session"
	"github.com/MKhiriev/passgate/internal/store"
	"github.com/MKhiriev/passgate/internal/workers"
	"github.com/MKhiriev/passgate/models"
)

// ReasonShutdown is the session-end reason used by [App.Close].
const ReasonShutdown = "shutdown"

// App is a fully wired passgate instance.
type App struct {
	authCfg models.AuthConfig
	kdf     models.KDFParams

	logger    *logger.Logger
	clock     clock.Clock
	probe     fingerprint.Probe
	keychain  crypto.KeyChainService
	confirmer logout.Confirmer

	storages    *store.Storages
	storage     *securestore.Engine
	limiter     *ratelimit.Limiter
	sessions    *session.Manager
	devices     *device.Store
	auth        service.AuthService
	audit       *audit.Recorder
	logout      *logout.Coordinator
	maintenance *workers.MaintenanceJob
	workers     *workers.Workers
}

// NewApp opens the configured stores, initializes secure storage and wires
// every component. The caller must Close the App.
func NewApp(ctx context.Context, cfg *config.StructuredConfig, opts ...Option) (*App, error) {
	a := &App{
		authCfg: cfg.AuthConfig(),
		kdf:     cfg.KDFParams(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = logger.NewClientLogger("passgate", cfg.Log.File).WithLevel(cfg.Log.Level)
	}
	if a.clock == nil {
		a.clock = clock.NewReal()
	}
	if a.probe == nil {
		a.probe = fingerprint.NewHostProbe()
	}
	if a.keychain == nil {
		a.keychain = crypto.NewKeyChainService()
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, a.logger)
	if err != nil {
		a.logger.Err(err).Str("func", "NewApp").Msg("error creating storages")
		return nil, fmt.Errorf("open storage: %w", err)
	}
	a.storages = storages

	a.storage = securestore.NewEngine(storages.Durable, a.keychain, a.probe, a.clock, cfg.Storage.QuotaBytes, a.logger)
	if err = a.storage.Initialize(ctx); err != nil {
		_ = storages.Close()
		a.logger.Err(err).Str("func", "NewApp").Msg("error initializing secure storage")
		return nil, fmt.Errorf("initialize secure storage: %w", err)
	}
	a.storage.Retain(service.TestDataKeyPrefix)

	a.limiter = ratelimit.NewLimiter(a.storage, a.clock, a.logger)
	a.sessions = session.NewManager(a.keychain, a.clock, a.logger)
	a.devices = device.NewStore(a.storage, a.probe, a.clock, a.logger)
	a.auth = service.NewAuthService(a.storage, a.limiter, a.sessions, a.devices, a.keychain, a.clock, a.logger)

	a.audit = audit.NewRecorder(a.logger, a.clock)
	a.sessions.AddSessionEventListener(a.audit.OnSessionEvent)

	a.logout = logout.NewCoordinator(
		a.sessions,
		a.devices,
		a.storage,
		storages.Volatile,
		a.audit,
		a.confirmer,
		a.clock,
		a.logger,
		service.SessionHintKey,
	)

	a.maintenance = workers.NewMaintenanceJob(a.storage, a.clock, a.logger, cfg.Workers.CleanupInterval, cfg.Workers.MaxEntryAge)
	a.workers = workers.NewWorkers(a.maintenance)

	a.logger.Info().Str("func", "NewApp").Str("backend", cfg.Storage.Backend).Msg("passgate ready")
	return a, nil
}

// Start launches the background workers.
func (a *App) Start(ctx context.Context) {
	a.workers.Start(ctx)
}

// Close stops the workers, ends any session and closes the stores. The
// session hint is kept for the next start.
func (a *App) Close() error {
	a.workers.Stop()
	a.sessions.ClearSession(ReasonShutdown)
	if err := a.storages.Volatile.Clear(context.Background()); err != nil {
		a.logger.Err(err).Str("func", "App.Close").Msg("error clearing volatile store")
	}
	return a.storages.Close()
}

// AuthConfig returns the effective authentication policy.
func (a *App) AuthConfig() models.AuthConfig {
	return a.authCfg
}

// Setup creates and stores passphrase test data for companyID. Existing
// test data is only replaced when overwrite is set.
func (a *App) Setup(ctx context.Context, companyID, passphrase string, overwrite bool) error {
	if !overwrite && a.auth.HasPassphraseTestData(ctx, companyID) {
		return ErrAlreadyInitialized
	}

	data, err := a.auth.CreatePassphraseTestData(companyID, passphrase, a.kdf)
	if err != nil {
		return err
	}
	if err = a.auth.StorePassphraseTestData(ctx, data); err != nil {
		return err
	}

	a.audit.Record(ctx, models.AuditRecord{
		Action:    "passphrase.setup",
		CompanyID: data.CompanyID,
		Outcome:   audit.OutcomeSuccess,
	})
	return nil
}

// IsInitialized reports whether companyID has test data.
func (a *App) IsInitialized(ctx context.Context, companyID string) bool {
	return a.auth.HasPassphraseTestData(ctx, companyID)
}

// Login verifies req and starts a session.
func (a *App) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResult, error) {
	res, err := a.auth.Login(ctx, req, a.authCfg)

	rec := models.AuditRecord{
		Action:    "login",
		UserID:    req.UserID,
		CompanyID: req.CompanyID,
		Outcome:   audit.OutcomeSuccess,
	}
	if rec.UserID == "" {
		rec.UserID = req.UserIdentifier
	}
	if err != nil {
		rec.Outcome = audit.OutcomeFailure
		var loginErr *service.LoginError
		if errors.As(err, &loginErr) {
			rec.Details = map[string]string{"code": string(loginErr.Code)}
		}
	} else {
		rec.SessionID = res.SessionID
		rec.Details = map[string]string{"remember_device": strconv.FormatBool(req.RememberDevice)}
	}
	a.audit.Record(ctx, rec)

	return res, err
}

// ChangePassphrase replaces the company's passphrase and forgets every
// remembered device.
func (a *App) ChangePassphrase(ctx context.Context, companyID, oldPassphrase, newPassphrase string) error {
	err := a.auth.ChangePassphrase(ctx, companyID, oldPassphrase, newPassphrase, models.KDFParams{}, a.authCfg)

	outcome := audit.OutcomeSuccess
	if err != nil {
		outcome = audit.OutcomeFailure
	}
	a.audit.Record(ctx, models.AuditRecord{Action: "passphrase.change", CompanyID: companyID, Outcome: outcome})
	return err
}

// CheckPassphraseStrength rates a candidate passphrase.
func (a *App) CheckPassphraseStrength(passphrase string) models.PassphraseStrength {
	return service.CheckPassphraseStrength(passphrase)
}

// Session returns a snapshot of the active session or nil.
func (a *App) Session() *models.SessionInfo {
	return a.sessions.GetActiveSession()
}

// ValidateToken checks a session token against the active session.
func (a *App) ValidateToken(token string) (*models.SessionTokenPayload, error) {
	return a.sessions.ValidateSessionToken(token)
}

// Touch records user activity, postponing the idle timeout.
func (a *App) Touch() error {
	if !a.sessions.HasActiveSession() {
		return ErrNotSignedIn
	}
	a.sessions.UpdateSessionActivity(a.authCfg)
	return nil
}

// Renew issues a fresh session token ahead of schedule.
func (a *App) Renew(ctx context.Context) (*models.SessionInfo, error) {
	return a.sessions.RenewSession(ctx, a.authCfg)
}

// OnSessionEvent subscribes fn to session events.
func (a *App) OnSessionEvent(fn session.Listener) session.ListenerID {
	return a.sessions.AddSessionEventListener(fn)
}

// OffSessionEvent removes a subscription made with OnSessionEvent.
func (a *App) OffSessionEvent(id session.ListenerID) bool {
	return a.sessions.RemoveSessionEventListener(id)
}

// Logout runs a full logout.
func (a *App) Logout(ctx context.Context, opts logout.Options) (logout.Result, error) {
	return a.logout.Logout(ctx, opts)
}

// LogoutWithConfirmation asks before logging out.
func (a *App) LogoutWithConfirmation(ctx context.Context, opts logout.Options) (bool, error) {
	return a.logout.LogoutWithConfirmation(ctx, opts)
}

// EmergencyLogout drops the session immediately.
func (a *App) EmergencyLogout(ctx context.Context) logout.Result {
	return a.logout.EmergencyLogout(ctx)
}

// Coordinator exposes logout scheduling and callbacks.
func (a *App) Coordinator() *logout.Coordinator {
	return a.logout
}

// IsDeviceRemembered reports whether this device is trusted for companyID.
func (a *App) IsDeviceRemembered(ctx context.Context, companyID string) bool {
	return a.devices.IsDeviceRemembered(ctx, companyID, a.authCfg)
}

// ForgetDevice revokes this device's trust for companyID, or for every
// company when companyID is empty. It returns the number of tokens revoked.
func (a *App) ForgetDevice(ctx context.Context, companyID string) (int, error) {
	if companyID == "" {
		return a.devices.RevokeAllDeviceTokens(ctx)
	}
	remembered := a.devices.IsDeviceRemembered(ctx, companyID, a.authCfg)
	if err := a.devices.RevokeDeviceToken(ctx, companyID); err != nil {
		return 0, err
	}
	if !remembered {
		return 0, nil
	}
	return 1, nil
}

// LastSessionHint returns who signed in last on this device.
func (a *App) LastSessionHint(ctx context.Context) (*models.SessionHint, bool) {
	return a.auth.LastSessionHint(ctx)
}

// StorageStats reports durable storage usage.
func (a *App) StorageStats(ctx context.Context) (models.StorageStats, error) {
	return a.storage.StorageStats(ctx)
}

// Cleanup runs one maintenance pass now.
func (a *App) Cleanup(ctx context.Context) (workers.Report, error) {
	return a.maintenance.RunOnce(ctx)
}

// Volatile returns the per-process store. It is wiped on every logout.
func (a *App) Volatile() store.KeyValueStore {
	return a.storages.Volatile
}

// UserMessage turns any passgate error into text suitable for the user.
func (a *App) UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotSignedIn):
		return service.UserMessage(session.ErrNoActiveSession)
	case errors.Is(err, ErrAlreadyInitialized), errors.Is(err, ErrNotInitialized):
		return err.Error()
	}
	return service.UserMessage(err)
}
