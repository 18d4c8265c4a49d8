package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/ayusman/drishti/internal/app"
	"github.com/ayusman/drishti/internal/config"
	"github.com/ayusman/drishti/internal/gaze"
	"github.com/ayusman/drishti/internal/server"
	"github.com/ayusman/drishti/internal/store"
	"github.com/ayusman/drishti/internal/tray"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.drishti/config.yaml)")
	flag.Parse()

	fmt.Println("Drishti - Blink and Gaze Communication")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".drishti")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if *configPath == "" {
		*configPath = filepath.Join(dataDir, "config.yaml")
	}
	settings, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	st, err := store.New(filepath.Join(dataDir, "drishti.db"))
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	a := app.New(app.Config{
		Store:    st,
		Settings: settings,
	})
	if err := a.LoadCalibration(); err != nil {
		log.Printf("Failed to load calibration: %v", err)
	}

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir:  webDir,
		Store:      st,
		Camera:     a.Camera(),
		Controller: a,
		OnCalibrationChange: func(cal gaze.Calibration) {
			a.SetCalibration(cal)
		},
		OnCalibrationClear: func() {
			a.SetCalibration(gaze.DefaultCalibration())
		},
	})

	// Push dispatched gestures to the settings UI
	a.RegisterPhraseCallback(func(gesture, phrase string) {
		srv.Events().Broadcast(gesture, phrase)
	})

	go func() {
		fmt.Printf("Starting server on %s\n", settings.ListenAddr)
		if err := srv.ListenAndServe(settings.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Detection state survives restarts
	enabledSetting, err := st.Settings().Get("detection_enabled", "true")
	if err != nil {
		log.Printf("Failed to read detection state: %v", err)
		enabledSetting = "true"
	}

	if err := a.Start(); err != nil {
		log.Printf("Failed to start detection pipeline: %v", err)
	} else {
		a.SetEnabled(enabledSetting == "true")
	}

	tr := tray.New()
	tr.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
		if err := st.Settings().Set("detection_enabled", strconv.FormatBool(enabled)); err != nil {
			log.Printf("Failed to save detection state: %v", err)
		}
		if enabled {
			a.Notifier().DetectionStarted()
		} else {
			a.Notifier().DetectionStopped()
		}
	})
	tr.OnSettings(func() {
		openBrowser("http://localhost" + settings.ListenAddr)
	})
	tr.OnQuit(func() {
		a.Stop()
	})
	a.RegisterPhraseCallback(func(gesture, phrase string) {
		tr.SetLastPhrase(phrase)
	})

	// Blocks until Quit is selected from the menu
	tr.Run()
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.drishti/web.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".drishti", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
