// Package main is the entry point for the midi2ly CLI
package main

import (
	"fmt"
	"os"

	"github.com/corymarsh/midi2ly/pkg/api"
	"github.com/corymarsh/midi2ly/pkg/midiread"
	"github.com/corymarsh/midi2ly/pkg/transcribe"
	"github.com/corymarsh/midi2ly/pkg/tui"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	outputFile string
	relative   bool
	absolute   bool
	quantize   uint64
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "midi2ly",
	Short: "Transcribe Standard MIDI Files into LilyPond scores",
	Long: `midi2ly converts a Standard MIDI File into a LilyPond notation score:
pairing note-on/note-off events into positioned notes, placing them into
staves, chords, and polyphonic voices, and serializing the result as
LilyPond source text.

Examples:
  midi2ly transcribe song.mid
  midi2ly transcribe song.mid -o song.ly --absolute
  midi2ly tui
  midi2ly serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <input.mid> [input2.mid ...]",
	Short: "Transcribe one or more MIDI files into LilyPond text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTranscribe,
}

var tuiCmd = &cobra.Command{
	Use:   "tui [input.mid ...]",
	Short: "Launch interactive terminal browser",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	transcribeCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (single input only)")
	transcribeCmd.Flags().BoolVar(&relative, "relative", true, "Render pitches in relative-octave mode")
	transcribeCmd.Flags().BoolVar(&absolute, "absolute", false, "Render pitches in absolute-octave mode")
	transcribeCmd.Flags().Uint64Var(&quantize, "quantize", 0, "Quantize note timing to this many ticks (0 disables)")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(transcribeCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	if outputFile != "" && len(args) > 1 {
		return fmt.Errorf("--output can only be used with a single input file")
	}

	opts := transcribe.DefaultOptions()
	opts.Relative = relative && !absolute
	opts.Quantize = quantize

	for _, input := range args {
		file, err := midiread.Read(input)
		if err != nil {
			return fmt.Errorf("transcribe %s: %w", input, err)
		}

		result := transcribe.Orchestrate(file, opts)
		for _, d := range result.Diagnostics.Items() {
			fmt.Fprintln(os.Stderr, d.Error())
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(result.LilyPond), 0644); err != nil {
				return fmt.Errorf("write %s: %w", outputFile, err)
			}
			continue
		}
		fmt.Println(result.LilyPond)
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run(args)
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
