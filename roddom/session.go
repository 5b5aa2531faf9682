package roddom

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Config configures a Session's connection to Chrome.
type Config struct {
	// DebuggerURL connects to an already-running Chrome instead of launching
	// one. Takes priority over Launch.
	DebuggerURL string
	// Launch is a launcher binary path followed by optional "-flag" or
	// "-flag=value" arguments, e.g. []string{"/usr/bin/google-chrome",
	// "-disable-gpu"}. Ignored when DebuggerURL is set.
	Launch []string
	// Headless controls whether a launched Chrome runs headless.
	Headless bool
	// ViewportWidth/ViewportHeight size the emulated viewport. Zero uses the
	// documented default of 1920x1080.
	ViewportWidth  int
	ViewportHeight int
	// NavigationTimeoutMs bounds Open's navigation wait. Zero uses 30s.
	NavigationTimeoutMs int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Headless:            true,
		ViewportWidth:       1920,
		ViewportHeight:      1080,
		NavigationTimeoutMs: 30000,
	}
}

func (c Config) viewportWidth() int {
	if c.ViewportWidth == 0 {
		return 1920
	}
	return c.ViewportWidth
}

func (c Config) viewportHeight() int {
	if c.ViewportHeight == 0 {
		return 1080
	}
	return c.ViewportHeight
}

func (c Config) navigationTimeout() time.Duration {
	if c.NavigationTimeoutMs == 0 {
		return 30 * time.Second
	}
	return time.Duration(c.NavigationTimeoutMs) * time.Millisecond
}

// Session owns a single Chrome connection and the pages opened through it.
// Unlike a multi-tab session tracker, a Session exists only to get a live
// *rod.Page wrapped as a dom.Document for generation/resolution against —
// there is no session registry, no persisted metadata, and no fact-emission
// pipeline to drive.
type Session struct {
	cfg        Config
	logger     *zap.Logger
	mu         sync.Mutex
	browser    *rod.Browser
	controlURL string
}

// NewSession builds a Session. A nil logger is replaced with a no-op logger.
func NewSession(cfg Config, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{cfg: cfg, logger: logger}
}

// Start connects to an existing Chrome or launches a new one. Idempotent:
// a healthy existing connection is reused; a stale one is torn down and
// reconnected.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.browser != nil {
		if _, err := s.browser.Version(); err == nil {
			return nil
		}
		s.logger.Debug("roddom: stale browser connection, reconnecting")
		_ = s.browser.Close()
		s.browser = nil
		s.controlURL = ""
	}

	controlURL := s.cfg.DebuggerURL
	if controlURL == "" && len(s.cfg.Launch) > 0 {
		bin := s.cfg.Launch[0]
		launch := launcher.New().Bin(bin).Headless(s.cfg.Headless)
		for _, rawFlag := range s.cfg.Launch[1:] {
			flagStr := strings.TrimLeft(rawFlag, "-")
			name, val, hasVal := strings.Cut(flagStr, "=")
			if hasVal {
				launch = launch.Set(flags.Flag(name), val)
			} else {
				launch = launch.Set(flags.Flag(name))
			}
		}
		url, err := launch.Launch()
		if err != nil {
			return fmt.Errorf("roddom: launch chrome: %w", err)
		}
		controlURL = url
	}

	if controlURL == "" {
		url, err := launcher.New().Headless(s.cfg.Headless).Launch()
		if err != nil {
			return fmt.Errorf("roddom: no debugger_url and failed to launch: %w", err)
		}
		controlURL = url
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("roddom: connect to chrome: %w", err)
	}

	s.browser = browser
	s.controlURL = controlURL
	return nil
}

func (s *Session) ensureStarted(ctx context.Context) error {
	s.mu.Lock()
	started := s.browser != nil
	s.mu.Unlock()
	if started {
		return nil
	}
	return s.Start(ctx)
}

// ControlURL returns the WebSocket debugger URL of the active connection.
func (s *Session) ControlURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controlURL
}

// Open navigates to url in a fresh incognito page and returns it wrapped as
// a dom.Document.
func (s *Session) Open(ctx context.Context, url string) (*Document, error) {
	if err := s.ensureStarted(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	browser := s.browser
	s.mu.Unlock()

	incognito, err := browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("roddom: incognito context: %w", err)
	}
	page, err := incognito.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("roddom: create page: %w", err)
	}

	if err := (proto.EmulationSetDeviceMetricsOverride{
		Width:             s.cfg.viewportWidth(),
		Height:            s.cfg.viewportHeight(),
		DeviceScaleFactor: 1.0,
		Mobile:            false,
	}).Call(page); err != nil {
		s.logger.Debug("roddom: failed to set viewport", zap.Error(err))
	}

	if err := page.Context(ctx).Timeout(s.cfg.navigationTimeout()).Navigate(url); err != nil {
		return nil, fmt.Errorf("roddom: navigate %q: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("roddom: wait load %q: %w", url, err)
	}

	return wrapDocument(page), nil
}

// Attach wraps an already-open page (e.g. one the caller navigated directly
// with go-rod) as a dom.Document, without going through Open.
func (s *Session) Attach(page *rod.Page) *Document {
	return wrapDocument(page)
}

// Close tears down the underlying browser connection.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.browser == nil {
		return nil
	}
	err := s.browser.Close()
	s.browser = nil
	s.controlURL = ""
	return err
}
