// Package api provides the REST API server for midi2ly
package api

import (
	"fmt"
	"io"
	"net/http"

	"github.com/corymarsh/midi2ly/pkg/midiread"
	"github.com/corymarsh/midi2ly/pkg/transcribe"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title midi2ly API
// @version 1.0
// @description API for transcribing Standard MIDI Files into LilyPond scores
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port.
func StartServer(port int) error {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/transcribe", handleTranscribe)
		v1.GET("/formats", listFormats)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "midi2ly",
	})
}

// listFormats godoc
// @Summary List supported formats
// @Description Returns the supported input and output formats
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]string
// @Router /api/v1/formats [get]
func listFormats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"input":  []string{"midi"},
		"output": []string{"lilypond"},
	})
}

// transcribeResponse is the JSON body returned by a successful transcription.
type transcribeResponse struct {
	LilyPond    string   `json:"lilypond"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

// handleTranscribe godoc
// @Summary Transcribe a MIDI file
// @Description Upload a Standard MIDI File and receive its LilyPond transcription
// @Tags transcribe
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "MIDI file to transcribe"
// @Param relative query bool false "Use relative-octave pitch rendering (default true)"
// @Success 200 {object} transcribeResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/transcribe [post]
func handleTranscribe(c *gin.Context) {
	uploaded, _, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	defer func() { _ = uploaded.Close() }()

	data, err := io.ReadAll(uploaded)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read file"})
		return
	}

	file, err := midiread.Parse(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to parse MIDI: %v", err)})
		return
	}

	opts := transcribe.DefaultOptions()
	opts.Relative = c.DefaultQuery("relative", "true") != "false"

	result := transcribe.Orchestrate(file, opts)

	resp := transcribeResponse{LilyPond: result.LilyPond}
	for _, d := range result.Diagnostics.Items() {
		resp.Diagnostics = append(resp.Diagnostics, d.Error())
	}
	c.JSON(http.StatusOK, resp)
}
