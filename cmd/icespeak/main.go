// Copyright (C) 2023-2025 Miðeind ehf.
// Icespeak - Icelandic TTS library
//
// Licensed under the GNU GPL v3 or later.
// See http://www.gnu.org/licenses/ for details.

// Command icespeak is a small CLI front end for the library: it lists
// voices, previews text normalization and synthesizes speech to a file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	icespeak "github.com/mideind/Icespeak"
	"github.com/mideind/Icespeak/pkg/commons"
	"github.com/mideind/Icespeak/settings"
	"github.com/mideind/Icespeak/transcribe"
)

var (
	flagVoice       string
	flagSpeed       float64
	flagTextFormat  string
	flagAudioFormat string
	flagRaw         bool
)

var rootCmd = &cobra.Command{
	Use:           "icespeak",
	Short:         "Icelandic text to speech",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List available voices",
	RunE: func(cmd *cobra.Command, _ []string) error {
		tts, err := newTTS()
		if err != nil {
			return err
		}
		defer tts.Close()
		for _, v := range tts.Voices() {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
		return nil
	},
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [text]",
	Short: "Print the speakable form of the given text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tr := transcribe.New()
		res, err := tr.TokenTranscribe(strings.Join(args, " "), transcribe.DefaultOptions())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
		return nil
	},
}

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Synthesize speech and print the audio file path",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tts, err := newTTS()
		if err != nil {
			return err
		}
		defer tts.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := tts.DefaultOptions()
		if flagVoice != "" {
			opts.Voice = flagVoice
		}
		if flagSpeed != 0 {
			opts.Speed = flagSpeed
		}
		if flagTextFormat != "" {
			opts.TextFormat = flagTextFormat
		}
		if flagAudioFormat != "" {
			opts.AudioFormat = flagAudioFormat
		}
		opts.Transcribe = !flagRaw

		out, err := tts.SynthesizeToFile(ctx, strings.Join(args, " "), opts)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.File)
		return nil
	},
}

func newTTS() (*icespeak.TTS, error) {
	s, err := settings.Load()
	if err != nil {
		return nil, err
	}
	level, err := zapcore.ParseLevel(s.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	log, err := commons.NewApplicationLogger(commons.WithLevel(level))
	if err != nil {
		return nil, err
	}
	return icespeak.New(s, log)
}

func init() {
	speakCmd.Flags().StringVarP(&flagVoice, "voice", "v", "", "voice name (default from settings)")
	speakCmd.Flags().Float64VarP(&flagSpeed, "speed", "s", 0, "speech rate multiplier, 0.5-2.0")
	speakCmd.Flags().StringVar(&flagTextFormat, "text-format", "", "input text format: text or ssml")
	speakCmd.Flags().StringVarP(&flagAudioFormat, "audio-format", "f", "", "output audio format, e.g. mp3")
	speakCmd.Flags().BoolVar(&flagRaw, "raw", false, "skip text normalization")

	rootCmd.AddCommand(voicesCmd, transcribeCmd, speakCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
