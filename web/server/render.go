package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/jiamingluuu/RayTracer2D/pkg/config"
	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/renderer"
	"github.com/jiamingluuu/RayTracer2D/pkg/scene"
)

// Limits tighter than the CLI ones keep a single request bounded
const (
	maxWebImageSize = 2048
	maxWebNumRays   = 1000000
	maxWebWorkers   = 16
)

// RenderRequest is a validated render request
type RenderRequest struct {
	Options *config.Options
	Factory scene.Factory
}

// Stats represents render statistics
type Stats struct {
	Samples          int     `json:"samples"`
	Segments         int     `json:"segments"`
	Escaped          int     `json:"escaped"`
	AverageSegments  float64 `json:"averageSegments"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// CompleteUpdate is the final event of a streamed render
type CompleteUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a scene and responds with a PNG image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	logger := NewWebLogger(newRenderID(), nil)
	img, stats, err := s.renderImage(r.Context(), req, logger)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.Samples))
	w.Header().Set("X-Render-Escaped", strconv.Itoa(stats.Escaped))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders a scene while streaming the render log via SSE,
// then sends the finished image as a base64 PNG in a "complete" event
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		fmt.Fprintf(w, "event: error\ndata: Invalid request: %v\n\n", err)
		return
	}

	// Create unified SSE event channel for thread-safe writing
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(w, ctx, sseEventChan)
		close(writerDone)
	}()

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
		close(consoleDone)
	}()

	startTime := time.Now()
	img, stats, err := s.renderImage(ctx, req, webLogger)
	// All render goroutines have returned, nothing logs after this point
	close(consoleChan)
	<-consoleDone

	if err != nil {
		sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: fmt.Sprintf("Render error: %v", err)})
	} else if event, err := s.completeEvent(img, stats, startTime); err != nil {
		sendEvent(ctx, sseEventChan, SSEEvent{Type: "error", Data: err.Error()})
	} else {
		sendEvent(ctx, sseEventChan, event)
	}
	close(sseEventChan)
	<-writerDone
}

// parseRenderRequest parses and validates request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()

	opts := config.DefaultOptions()
	opts.Width, opts.Height = 512, 512
	opts.NumRays = 20000
	opts.Output = "render.png"
	if name := query.Get("scene"); name != "" {
		opts.Scene = name
	}

	var err error
	if opts.Width, err = parseIntParam(query, "width", opts.Width, config.MinImageSize, maxWebImageSize); err != nil {
		return nil, err
	}
	if opts.Height, err = parseIntParam(query, "height", opts.Height, config.MinImageSize, maxWebImageSize); err != nil {
		return nil, err
	}
	if opts.NumRays, err = parseIntParam(query, "samples", opts.NumRays, config.MinNumRays, maxWebNumRays); err != nil {
		return nil, err
	}
	if opts.MaxDepth, err = parseIntParam(query, "depth", opts.MaxDepth, config.MinTraceDepth, config.MaxTraceDepth); err != nil {
		return nil, err
	}
	if opts.Workers, err = parseIntParam(query, "workers", opts.Workers, 1, maxWebWorkers); err != nil {
		return nil, err
	}
	if opts.Seed, err = parseInt64Param(query, "seed", opts.Seed); err != nil {
		return nil, err
	}
	if opts.Gamma, err = parseFloatParam(query, "gamma", opts.Gamma, 0.001, 1000); err != nil {
		return nil, err
	}
	if value := query.Get("outline"); value != "" {
		if opts.Outline, err = strconv.ParseBool(value); err != nil {
			return nil, fmt.Errorf("invalid outline: %s", value)
		}
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	factory, err := s.lookupScene(opts.Scene)
	if err != nil {
		return nil, err
	}
	return &RenderRequest{Options: opts, Factory: factory}, nil
}

// renderImage traces the request and returns the tone-mapped image
func (s *Server) renderImage(ctx context.Context, req *RenderRequest, logger core.Logger) (*image.RGBA, renderer.RenderStats, error) {
	opts := req.Options
	factory := req.Factory

	img, stats, err := renderer.RenderScene(ctx, func(seed int64) renderer.Scene { return factory(seed) },
		opts.Seed, opts.Width, opts.Height, opts.SamplingConfig(), opts.Workers, logger)
	if err != nil {
		return nil, stats, err
	}

	img.AdjustGamma(opts.Gamma)
	if opts.Outline {
		if err := renderer.DrawOutlines(img, factory(opts.Seed)); err != nil {
			return nil, stats, err
		}
	}
	return img.ToRGBA(), stats, nil
}

// completeEvent packages the finished render
func (s *Server) completeEvent(img *image.RGBA, stats renderer.RenderStats, startTime time.Time) (SSEEvent, error) {
	imageData, err := s.imageToBase64PNG(img)
	if err != nil {
		return SSEEvent{}, fmt.Errorf("failed to encode image: %v", err)
	}

	update := CompleteUpdate{
		ImageData: imageData,
		Stats: Stats{
			Samples:          stats.Samples,
			Segments:         stats.Segments,
			Escaped:          stats.Escaped,
			AverageSegments:  stats.AverageSegments(),
			AverageLuminance: renderer.CalculateAverageLuminance(img),
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}
	data, err := json.Marshal(update)
	if err != nil {
		return SSEEvent{}, err
	}
	return SSEEvent{Type: "complete", Data: string(data)}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	webLogger := NewWebLogger(newRenderID(), consoleChan)
	return consoleChan, webLogger
}

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}

// sendEvent queues an event unless the client has gone away
func sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, event SSEEvent) {
	select {
	case sseEventChan <- event:
	case <-ctx.Done():
	}
}

// writeSSEEvents handles writing all SSE events in a single goroutine (thread-safe)
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			_, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data)
			if err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
