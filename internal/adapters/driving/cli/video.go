package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/librarian-cli/internal/core/domain"
	"github.com/custodia-labs/librarian-cli/internal/core/ports/driving"
)

var (
	videoID           string
	videoTitle        string
	videoDescription  string
	videoChannelID    string
	videoChannelTitle string
	videoPublished    string
	videoTranscript   string
	videoCategories   []string
	videoTags         []string

	videoListChannel string
)

var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Manage video transcripts in the archive",
}

var videoAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a video transcript to the archive",
	Long: `Ingests a transcript file plus caller-supplied metadata as a video
item. Transcript retrieval is out of scope; the transcript must
already be a local text file.`,
	RunE: runVideoAdd,
}

var videoListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived videos",
	RunE:  runVideoList,
}

var videoGetCmd = &cobra.Command{
	Use:   "get <video-id>",
	Short: "Show one video's manifest details",
	Args:  cobra.ExactArgs(1),
	RunE:  runVideoGet,
}

func init() {
	videoListCmd.Flags().StringVar(&videoListChannel, "channel", "", "only list videos from this channel")
	videoCmd.AddCommand(videoListCmd)
	videoCmd.AddCommand(videoGetCmd)

	videoAddCmd.Flags().StringVar(&videoID, "id", "", "video identifier (required)")
	videoAddCmd.Flags().StringVar(&videoTitle, "title", "", "video title (required)")
	videoAddCmd.Flags().StringVar(&videoDescription, "description", "", "video description")
	videoAddCmd.Flags().StringVar(&videoChannelID, "channel-id", "", "channel identifier (required)")
	videoAddCmd.Flags().StringVar(&videoChannelTitle, "channel-title", "", "channel title (required)")
	videoAddCmd.Flags().StringVar(&videoPublished, "published", "", "publication timestamp (RFC 3339)")
	videoAddCmd.Flags().StringVar(&videoTranscript, "transcript", "", "path to the transcript file (required)")
	videoAddCmd.Flags().StringSliceVar(&videoCategories, "category", nil, "category (repeatable)")
	videoAddCmd.Flags().StringSliceVar(&videoTags, "tag", nil, "tag (repeatable)")

	videoCmd.AddCommand(videoAddCmd)
	rootCmd.AddCommand(videoCmd)
}

func runVideoAdd(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	video, err := ingestService.AddVideo(cmd.Context(), driving.VideoRequest{
		VideoID:        videoID,
		Title:          videoTitle,
		Description:    videoDescription,
		ChannelID:      videoChannelID,
		ChannelTitle:   videoChannelTitle,
		PublishedAt:    videoPublished,
		TranscriptFile: videoTranscript,
		Categories:     videoCategories,
		Tags:           videoTags,
	})
	if err != nil {
		return err
	}

	cmd.Printf("Added %q (%s)\n", video.Manifest.Title, video.Manifest.VideoID)
	cmd.Printf("  Location: %s\n", video.Path)
	return nil
}

func runVideoList(cmd *cobra.Command, _ []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	catalog, err := catalogService.Load(cmd.Context())
	if err != nil {
		return err
	}

	var videos []domain.VideoSummary
	for _, v := range catalog.Videos {
		if videoListChannel != "" && !strings.EqualFold(v.ChannelTitle, videoListChannel) {
			continue
		}
		videos = append(videos, v)
	}

	if len(videos) == 0 {
		cmd.Println("No videos in the library.")
		return nil
	}

	cmd.Printf("%d video(s):\n", len(videos))
	for _, v := range videos {
		cmd.Printf("  %q (%s)\n", v.Title, v.ChannelTitle)
		cmd.Printf("    %s  id=%s\n", v.Path, v.VideoID)
	}
	return nil
}

func runVideoGet(cmd *cobra.Command, args []string) error {
	if err := requireLibrary(); err != nil {
		return err
	}

	catalog, err := catalogService.Load(cmd.Context())
	if err != nil {
		return err
	}

	summary := catalog.FindVideo(args[0])
	if summary == nil {
		return fmt.Errorf("%w: no video with id %q", domain.ErrNotFound, args[0])
	}

	manifest, err := manifestStore.LoadVideo(library.Abs(summary.Path))
	if err != nil {
		return err
	}

	cmd.Printf("%q (%s)\n", manifest.Title, manifest.ChannelTitle)
	cmd.Printf("  Video ID: %s\n", manifest.VideoID)
	cmd.Printf("  Location: %s\n", summary.Path)
	if manifest.URL != "" {
		cmd.Printf("  URL:      %s\n", manifest.URL)
	}
	if manifest.PublishedAt != nil {
		cmd.Printf("  Published: %s\n", manifest.PublishedAt.Format("2006-01-02"))
	}
	if len(manifest.Categories) > 0 {
		cmd.Printf("  Categories: %s\n", strings.Join(manifest.Categories, ", "))
	}
	if len(manifest.Tags) > 0 {
		cmd.Printf("  Tags:     %s\n", strings.Join(manifest.Tags, ", "))
	}
	if transcript, ok := manifest.Source["transcript_path"]; ok {
		cmd.Printf("  Transcript: %s\n", transcript)
	}
	if manifest.Description != "" {
		cmd.Printf("  Description:\n    %s\n", manifest.Description)
	}
	return nil
}
