package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumenlabs/lumen-cli/internal/app"
	"github.com/lumenlabs/lumen-cli/internal/controller"
	"github.com/lumenlabs/lumen-cli/internal/format"
	mediapkg "github.com/lumenlabs/lumen-cli/internal/media"
)

// MediaCmd represents the media command
var MediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Video, speech and audio capabilities",
	Long: `Audio and video capabilities of the gateway: video generation,
text-to-speech, transcription, voice chat and frame-sampled video
analysis.

analyze-video reads a directory of extracted frame images (use ffmpeg
or similar to extract them), samples them evenly and submits the sample
with your prompt as one multimodal request.`,
}

// videoCmd represents the media video command
var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Generate a video from a prompt",
	RunE:  runVideo,
}

// ttsCmd represents the media tts command
var ttsCmd = &cobra.Command{
	Use:   "tts",
	Short: "Convert text to speech",
	RunE:  runTTS,
}

// transcribeCmd represents the media transcribe command
var transcribeCmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe an audio file",
	RunE:  runTranscribe,
}

// analyzeVideoCmd represents the media analyze-video command
var analyzeVideoCmd = &cobra.Command{
	Use:   "analyze-video",
	Short: "Ask a question about a video's frames",
	RunE:  runAnalyzeVideo,
}

// voiceCmd represents the media voice command
var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Send a spoken turn and get a spoken reply",
	RunE:  runVoice,
}

// frameDirSource adapts a directory of pre-extracted frame images to the
// sampler. Frames are ordered by filename and placed one second apart on a
// synthetic timeline.
type frameDirSource struct {
	files []string
	pos   int
}

func openFrameDir(dir string) (*frameDirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("could not read frames directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".jpg", ".jpeg", ".png":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return nil, errors.New("no frame images found (expected .jpg or .png files)")
	}
	sort.Strings(files)

	return &frameDirSource{files: files}, nil
}

func (s *frameDirSource) Duration() time.Duration {
	return time.Duration(len(s.files)) * time.Second
}

func (s *frameDirSource) Seek(ts time.Duration) error {
	idx := int(ts / time.Second)
	if idx < 0 || idx >= len(s.files) {
		return fmt.Errorf("timestamp %s is out of range", ts)
	}
	s.pos = idx
	return nil
}

func (s *frameDirSource) Capture() (image.Image, error) {
	f, err := os.Open(s.files[s.pos])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", s.files[s.pos], err)
	}
	return img, nil
}

func writeBlob(blob *controller.Blob, outPath string) error {
	if err := os.WriteFile(outPath, blob.Data, 0644); err != nil {
		return err
	}
	format.PrintSuccess("✓ Wrote %s (%s, %d bytes)", outPath, blob.ContentType, len(blob.Data))
	return nil
}

func runVideo(cmd *cobra.Command, args []string) error {
	prompt, _ := cmd.Flags().GetString("prompt")
	imagePath, _ := cmd.Flags().GetString("image")
	aspect, _ := cmd.Flags().GetString("aspect")
	outPath, _ := cmd.Flags().GetString("out")

	var imageData, mimeType string
	if imagePath != "" {
		raw, err := os.ReadFile(imagePath)
		if err != nil {
			return fmt.Errorf("could not read conditioning image: %w", err)
		}
		imageData = base64.StdEncoding.EncodeToString(raw)
		mimeType = http.DetectContentType(raw)
	}

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewMedia(a.Client, a.Store, principal.UID)
	blob, err := ctrl.GenerateVideo(cmd.Context(), prompt, imageData, mimeType, aspect)
	if err != nil {
		return fmt.Errorf("video generation failed: %w", err)
	}

	return writeBlob(blob, outPath)
}

func runTTS(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	voice, _ := cmd.Flags().GetString("voice")
	outPath, _ := cmd.Flags().GetString("out")

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewMedia(a.Client, a.Store, principal.UID)
	blob, err := ctrl.Synthesize(cmd.Context(), text, voice)
	if err != nil {
		return fmt.Errorf("speech synthesis failed: %w", err)
	}

	return writeBlob(blob, outPath)
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not read audio file: %w", err)
	}

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewMedia(a.Client, a.Store, principal.UID)
	result, err := ctrl.Transcribe(cmd.Context(),
		base64.StdEncoding.EncodeToString(raw), http.DetectContentType(raw))
	if err != nil {
		return fmt.Errorf("transcription failed: %w", err)
	}

	fmt.Println(result)
	return nil
}

func runAnalyzeVideo(cmd *cobra.Command, args []string) error {
	framesDir, _ := cmd.Flags().GetString("frames")
	prompt, _ := cmd.Flags().GetString("prompt")
	count, _ := cmd.Flags().GetInt("count")

	src, err := openFrameDir(framesDir)
	if err != nil {
		return err
	}
	if count > len(src.files) {
		count = len(src.files)
	}

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewMedia(a.Client, a.Store, principal.UID)
	result, err := ctrl.AnalyzeVideo(cmd.Context(), src, prompt, count)
	if err != nil {
		return fmt.Errorf("video analysis failed: %w", err)
	}

	fmt.Println(result)
	return nil
}

func runVoice(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	outPath, _ := cmd.Flags().GetString("out")

	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not read audio file: %w", err)
	}

	a, err := app.Load()
	if err != nil {
		return err
	}
	defer a.Close()

	principal, err := a.RequireUser()
	if err != nil {
		return err
	}

	ctrl := controller.NewMedia(a.Client, a.Store, principal.UID)
	resp, err := ctrl.VoiceTurn(cmd.Context(),
		base64.StdEncoding.EncodeToString(raw), http.DetectContentType(raw), nil)
	if err != nil {
		return fmt.Errorf("voice chat failed: %w", err)
	}

	fmt.Printf("You said: %s\n\n%s\n", resp.Transcript, resp.Text)

	if outPath != "" && resp.AudioData != "" {
		audio, err := base64.StdEncoding.DecodeString(resp.AudioData)
		if err != nil {
			return fmt.Errorf("could not decode spoken reply: %w", err)
		}
		if err := os.WriteFile(outPath, audio, 0644); err != nil {
			return err
		}
		format.PrintSuccess("✓ Spoken reply written to %s", outPath)
	}
	return nil
}

func init() {
	videoCmd.Flags().StringP("prompt", "p", "", "The prompt to generate from")
	videoCmd.Flags().StringP("image", "i", "", "Optional conditioning image file")
	videoCmd.Flags().StringP("aspect", "a", "16:9", "Aspect ratio")
	videoCmd.Flags().StringP("out", "f", "", "Write the video to this file")
	videoCmd.MarkFlagRequired("prompt")
	videoCmd.MarkFlagRequired("out")

	ttsCmd.Flags().StringP("text", "t", "", "Text to speak")
	ttsCmd.Flags().StringP("voice", "v", "", "Voice name")
	ttsCmd.Flags().StringP("out", "f", "", "Write the audio to this file")
	ttsCmd.MarkFlagRequired("text")
	ttsCmd.MarkFlagRequired("out")

	transcribeCmd.Flags().StringP("file", "f", "", "Audio file to transcribe")
	transcribeCmd.MarkFlagRequired("file")

	analyzeVideoCmd.Flags().StringP("frames", "f", "", "Directory of extracted frame images")
	analyzeVideoCmd.Flags().StringP("prompt", "p", "", "The question about the video")
	analyzeVideoCmd.Flags().IntP("count", "n", mediapkg.DefaultFrameCount, "Number of frames to sample")
	analyzeVideoCmd.MarkFlagRequired("frames")
	analyzeVideoCmd.MarkFlagRequired("prompt")

	voiceCmd.Flags().StringP("file", "f", "", "Audio file with your spoken turn")
	voiceCmd.Flags().String("out", "", "Write the spoken reply to this file")
	voiceCmd.MarkFlagRequired("file")

	MediaCmd.AddCommand(videoCmd)
	MediaCmd.AddCommand(ttsCmd)
	MediaCmd.AddCommand(transcribeCmd)
	MediaCmd.AddCommand(analyzeVideoCmd)
	MediaCmd.AddCommand(voiceCmd)
}
