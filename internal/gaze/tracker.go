package gaze

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// Tracker defines the interface for gaze prediction implementations.
type Tracker interface {
	// Predict estimates where on screen the subject is looking for the
	// given frame. Returns nil when the tracker has no usable estimate.
	Predict(frame *gocv.Mat) (*Point, error)

	// Close releases any resources held by the tracker.
	Close() error
}

// ScriptTracker implements Tracker using a Python gaze model subprocess.
// It speaks the same length-prefixed JPEG in, JSON line out protocol as the
// face mesh service.
type ScriptTracker struct {
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	idleTimer *time.Timer

	// MinConfidence drops estimates below this confidence. Zero accepts
	// everything, which is the default behavior.
	MinConfidence float64
}

// NewScriptTracker creates a gaze tracker backed by scripts/gaze_service.py.
// The Python process is started lazily on first prediction.
func NewScriptTracker() (*ScriptTracker, error) {
	if findGazeScript() == "" {
		return nil, fmt.Errorf("gaze_service.py not found")
	}
	return &ScriptTracker{}, nil
}

// Predict sends the frame to the gaze service and returns its estimate.
func (t *ScriptTracker) Predict(frame *gocv.Mat) (*Point, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureStarted(); err != nil {
		return nil, err
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := t.stdin.Write(length); err != nil {
		return nil, fmt.Errorf("write length: %w", err)
	}
	if _, err := t.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	line, err := t.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var response struct {
		Gaze *Point `json:"gaze"`
	}
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	t.resetIdleTimer()

	if response.Gaze == nil {
		return nil, nil
	}
	if t.MinConfidence > 0 && response.Gaze.Confidence < t.MinConfidence {
		return nil, nil
	}
	return response.Gaze, nil
}

// Close shuts down the Python process.
func (t *ScriptTracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shutdown()
}

func (t *ScriptTracker) ensureStarted() error {
	if t.started {
		return nil
	}

	scriptPath := findGazeScript()
	if scriptPath == "" {
		return fmt.Errorf("gaze_service.py not found")
	}

	pythonPath := "python3"
	t.cmd = exec.Command(pythonPath, scriptPath)

	stdin, err := t.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := t.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	t.cmd.Stderr = os.Stderr

	if err := t.cmd.Start(); err != nil {
		return fmt.Errorf("start gaze service: %w", err)
	}

	t.stdin = stdin
	t.stdout = bufio.NewReader(stdout)
	t.started = true

	return nil
}

func (t *ScriptTracker) shutdown() error {
	if !t.started {
		return nil
	}

	if t.idleTimer != nil {
		t.idleTimer.Stop()
		t.idleTimer = nil
	}
	if t.stdin != nil {
		t.stdin.Close()
	}

	err := t.cmd.Wait()
	t.started = false
	t.cmd = nil
	t.stdin = nil
	t.stdout = nil

	return err
}

func (t *ScriptTracker) resetIdleTimer() {
	if t.idleTimer != nil {
		t.idleTimer.Stop()
	}
	t.idleTimer = time.AfterFunc(30*time.Second, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.shutdown()
	})
}

func findGazeScript() string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/gaze_service.py",
		"../scripts/gaze_service.py",
		filepath.Join(execDir, "scripts/gaze_service.py"),
		filepath.Join(os.Getenv("HOME"), ".drishti/scripts/gaze_service.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}
