package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/target/text2ture/internal/core"
	"github.com/target/text2ture/internal/domain/model"
)

const (
	// PBRArtifactKey is the artifact entry referencing the material parameters file.
	PBRArtifactKey = "pbr_parameters"
	pbrFileName    = "pbr.json"
	objectFileExt  = ".jpg"
	placeholderDim = 64
)

// ObjectGeneratorOptions groups dependencies for ObjectGenerator.
type ObjectGeneratorOptions struct {
	Files       core.ResultFileWriter // Required: destination for generated files
	Transcriber core.Transcriber      // Optional: needed for audio-only jobs
	Config      ObjectGeneratorConfig
	Logger      *slog.Logger // Optional: structured logger
}

// ObjectGeneratorConfig tunes the generator.
type ObjectGeneratorConfig struct {
	// SampleImagePath is copied once per requested object. A placeholder is
	// rendered when it cannot be read.
	SampleImagePath string
	// WorkDelay simulates model inference time.
	WorkDelay time.Duration
}

// ObjectGenerator is the job body: it resolves the transcript, then writes one
// image per requested object plus the material parameters.
type ObjectGenerator struct {
	files       core.ResultFileWriter
	transcriber core.Transcriber
	image       []byte
	delay       time.Duration
	logger      *slog.Logger
}

// NewObjectGenerator constructs an ObjectGenerator and loads the sample image.
func NewObjectGenerator(opts ObjectGeneratorOptions) (*ObjectGenerator, error) {
	if opts.Files == nil {
		return nil, errors.New("ResultFileWriter is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "object_generator")

	img, err := loadSampleImage(opts.Config.SampleImagePath)
	if err != nil {
		logger.Warn("sample image unavailable, using placeholder",
			"path", opts.Config.SampleImagePath,
			"error", err,
		)
		img, err = placeholderImage()
		if err != nil {
			return nil, fmt.Errorf("render placeholder image: %w", err)
		}
	}

	return &ObjectGenerator{
		files:       opts.Files,
		transcriber: opts.Transcriber,
		image:       img,
		delay:       max(opts.Config.WorkDelay, 0),
		logger:      logger,
	}, nil
}

// Work implements core.WorkFunc.
func (g *ObjectGenerator) Work(ctx context.Context, job model.JobDescriptor) model.Outcome {
	logger := g.logger.With("uid", job.UID)

	text, err := g.resolveText(ctx, job.Payload)
	if err != nil {
		return model.FailureFromError(err)
	}
	logger.InfoContext(ctx, "processing job",
		"text_preview", preview(text, 100),
		"inference_params", len(job.Payload.InferenceParams),
	)

	if g.delay > 0 {
		timer := time.NewTimer(g.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return model.FailureFromError(ctx.Err())
		case <-timer.C:
		}
	}

	artifact := model.Artifact{}

	pbr, err := json.MarshalIndent(model.DefaultPBRParameters(), "", "  ")
	if err != nil {
		return model.FailureFromError(fmt.Errorf("encode pbr parameters: %w", err))
	}
	ref, err := g.files.PutFile(ctx, job.UID, pbrFileName, bytes.NewReader(pbr))
	if err != nil {
		return model.FailureFromError(fmt.Errorf("write pbr parameters: %w", err))
	}
	artifact[PBRArtifactKey] = ref

	for _, name := range objectNames(job.Payload.CustomArg) {
		ref, err := g.files.PutFile(ctx, job.UID, name+objectFileExt, bytes.NewReader(g.image))
		if err != nil {
			return model.FailureFromError(fmt.Errorf("write object %q: %w", name, err))
		}
		artifact[name] = ref
	}

	logger.InfoContext(ctx, "objects generated", "count", len(artifact)-1)
	return model.Success(artifact)
}

func (g *ObjectGenerator) resolveText(ctx context.Context, p model.JobPayload) (string, error) {
	if text := strings.TrimSpace(p.Text); text != "" {
		return text, nil
	}
	if strings.TrimSpace(p.AudioURL) == "" {
		return "", errors.New("text or audio_url is required")
	}
	if g.transcriber == nil {
		return "", errors.New("transcription is not configured")
	}
	text, err := g.transcriber.Transcribe(ctx, p.AudioURL)
	if err != nil {
		return "", fmt.Errorf("transcribe audio: %w", err)
	}
	return text, nil
}

// objectNames returns the requested object names in a stable order.
func objectNames(customArg map[string]any) []string {
	names := make([]string, 0, len(customArg))
	for name := range customArg {
		if strings.TrimSpace(name) == "" {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func loadSampleImage(p string) ([]byte, error) {
	if p == "" {
		return nil, errors.New("no sample image configured")
	}
	raw, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("sample image is empty")
	}
	return raw, nil
}

// placeholderImage renders a flat swatch in the default albedo colour.
func placeholderImage() ([]byte, error) {
	albedo := model.DefaultPBRParameters().Albedo
	fill := color.RGBA{
		R: uint8(albedo[0] * 255),
		G: uint8(albedo[1] * 255),
		B: uint8(albedo[2] * 255),
		A: 255,
	}
	img := image.NewRGBA(image.Rect(0, 0, placeholderDim, placeholderDim))
	for y := range placeholderDim {
		for x := range placeholderDim {
			img.SetRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
