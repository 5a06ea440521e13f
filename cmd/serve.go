package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/hostplay/hostplay/auth"
	"github.com/hostplay/hostplay/backend"
	"github.com/hostplay/hostplay/browser"
	"github.com/hostplay/hostplay/channel"
	"github.com/hostplay/hostplay/color"
	"github.com/hostplay/hostplay/driver"
	"github.com/hostplay/hostplay/history"
	"github.com/hostplay/hostplay/icon"
	"github.com/hostplay/hostplay/key"
	"github.com/hostplay/hostplay/log"
	"github.com/hostplay/hostplay/protocol"
	"github.com/hostplay/hostplay/style"
	"github.com/hostplay/hostplay/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 5 * time.Second

func completionBackends(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(backend.All(), func(b *backend.Backend, _ int) string {
		return b.Name
	}), cobra.ShellCompDirectiveNoFileComp
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("backend", "b", "", "Hosted player to drive")
	lo.Must0(serveCmd.RegisterFlagCompletionFunc("backend", completionBackends))
	lo.Must0(viper.BindPFlag(key.BackendDefault, serveCmd.Flags().Lookup("backend")))

	serveCmd.Flags().Bool("headless", false, "Run the browser without a window")
	lo.Must0(viper.BindPFlag(key.BrowserHeadless, serveCmd.Flags().Lookup("headless")))

	serveCmd.Flags().String("remote-url", "", "DevTools websocket URL of a running browser")
	lo.Must0(viper.BindPFlag(key.BrowserRemoteURL, serveCmd.Flags().Lookup("remote-url")))

	serveCmd.Flags().Bool("auth", false, "Require the keyring token from controllers")
	lo.Must0(viper.BindPFlag(key.ServerAuth, serveCmd.Flags().Lookup("auth")))
}

// serveCmd opens the player page and exposes a driver for it over the controller channel.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Open a hosted player and serve the controller channel for it",
	Long: `Open the backend's player page in a controlled browser and listen for a controller.

Each attached controller gets a fresh driver. Detaching the controller, navigating
the page away or closing the browser leaves the session and pauses playback.`,
	Example: "  hostplay serve --backend spotify",
	Run: func(cmd *cobra.Command, args []string) {
		b, err := selectBackend(viper.GetString(key.BackendDefault))
		handleErr(err)

		var token string
		if viper.GetBool(key.ServerAuth) {
			token, err = auth.GetToken()
			handleErr(err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		handleErr(serve(ctx, b, token))
	},
}

// selectBackend resolves name, asking interactively when it is empty.
func selectBackend(name string) (*backend.Backend, error) {
	if name != "" {
		return backend.Find(name)
	}

	if !util.IsTerminal() {
		return nil, errors.New("no backend given, use --backend")
	}

	prompt := &survey.Select{
		Message: "Which player should be driven?",
		Options: lo.Map(backend.All(), func(b *backend.Backend, _ int) string {
			return b.Name
		}),
	}

	var response string
	if err := survey.AskOne(prompt, &response); err != nil {
		return nil, err
	}

	return backend.Find(response)
}

func serve(ctx context.Context, b *backend.Backend, token string) error {
	opts := browser.OptionsFromViper()
	if opts.RemoteURL == "" {
		path, ok := browser.FindExecPath(opts.ExecPath)
		if !ok {
			return errors.New("chrome not found, run \"hostplay check\"")
		}
		opts.ExecPath = path
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Starting browser...", icon.Get(icon.Progress)))
	chrome, err := browser.Launch(opts)
	erase()
	if err != nil {
		return err
	}
	defer util.Ignore(chrome.Close)

	page, err := chrome.Open(ctx, b.URL)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-chrome.Done():
			log.Warn("browser closed")
		case <-page.Detached():
		case <-ctx.Done():
			return
		}
		cancel()
	}()

	p := b.Probe(page)
	attach := func(ctx context.Context, t channel.Transport) error {
		if viper.GetBool(key.HistorySave) {
			t = recordingTransport{Transport: t, recorder: history.NewRecorder(b.Name)}
		}

		d := driver.New(p, b.Family, driver.ConfigFromViper())
		return channel.Serve(ctx, d, t)
	}

	address := viper.GetString(key.ServerAddress)
	controllers := channel.NewServer(ctx, token, attach)
	mux := http.NewServeMux()
	mux.Handle(channel.Path, controllers)
	server := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		errs <- server.ListenAndServe()
	}()

	fmt.Printf(
		"%s driving %s (%s) on %s\n",
		style.Fg(color.Green)(icon.Get(icon.Success)),
		style.Fg(color.Purple)(b.Name),
		b.Family,
		style.Fg(color.Yellow)("ws://"+address+channel.Path),
	)

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()

	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	// websocket sessions are hijacked, so Shutdown does not wait for them to pause
	return controllers.Wait(shutdownCtx)
}

// recordingTransport saves played tracks to the history as their events go out.
type recordingTransport struct {
	channel.Transport
	recorder *history.Recorder
}

func (r recordingTransport) WriteEvent(ctx context.Context, event protocol.Event) error {
	r.recorder.Observe(event)
	return r.Transport.WriteEvent(ctx, event)
}
