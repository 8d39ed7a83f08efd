// Package classifier wraps the pre-trained leaf-species ONNX model behind a
// single Classify call. The model is loaded once at startup and the session
// is shared across requests.
package classifier

import (
	"fmt"
	"image"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"
)

// Labels is the fixed label table of the model. Order matters: output index i
// maps to Labels[i].
var Labels = []string{
	"Pohon Beringin",
	"Pohon Bungur",
	"Pohon Cassia",
	"Pohon Jati",
	"Pohon Kenanga",
	"Pohon Kerai Payung",
	"Pohon Saga",
	"Pohon Trembesi",
	"pohon Mahoni",
	"pohon Matoa",
}

// Config locates the model and names its tensors.
type Config struct {
	ModelPath   string
	LibraryPath string
	InputName   string
	OutputName  string
}

// Model holds the shared inference session. Run is not reentrant, so every
// inference takes the mutex.
type Model struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	logger  *zap.Logger
	mu      sync.Mutex
}

// Load initializes the onnxruntime environment and creates the session with
// fixed 1x224x224x3 input and 1x10 output tensors.
func Load(cfg Config, logger *zap.Logger) (*Model, error) {
	if cfg.LibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.LibraryPath)
	}
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("failed to initialize onnxruntime: %w", err)
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, inputSize, inputSize, channels))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(Labels))))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(cfg.ModelPath,
		[]string{cfg.InputName}, []string{cfg.OutputName},
		[]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{output}, nil)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("failed to load model %s: %w", cfg.ModelPath, err)
	}

	logger.Info("classifier model loaded",
		zap.String("path", cfg.ModelPath),
		zap.Int("labels", len(Labels)))

	return &Model{session: session, input: input, output: output, logger: logger}, nil
}

// Classify runs one forward pass over the image and returns the
// highest-confidence label.
func (m *Model) Classify(img image.Image) (string, error) {
	data := Preprocess(img)

	m.mu.Lock()
	defer m.mu.Unlock()

	copy(m.input.GetData(), data)
	if err := m.session.Run(); err != nil {
		return "", fmt.Errorf("inference failed: %w", err)
	}

	return Labels[Argmax(m.output.GetData())], nil
}

// Close releases the session and tensors.
func (m *Model) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.Destroy()
	m.input.Destroy()
	m.output.Destroy()
}

// Argmax returns the index of the largest probability. Ties keep the first.
func Argmax(probs []float32) int {
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best
}
