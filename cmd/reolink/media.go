package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/reolink-cli/reolink/internal/camera"
)

func newSnapCommand(a *app) *cobra.Command {
	var (
		outPath string
		stream  string
	)
	cmd := &cobra.Command{
		Use:   "snap",
		Short: "Capture a JPEG snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if stream != camera.StreamMain && stream != camera.StreamSub {
				return usagef("invalid stream %q (use main or sub)", stream)
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				data, err := cam.Snap(ctx, stream)
				if err != nil {
					return err
				}
				path := outPath
				if path == "" {
					path = fmt.Sprintf("snapshot_%s.jpg", time.Now().Format("20060102_150405"))
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write snapshot: %w", err)
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(map[string]any{"file": path, "size": len(data), "stream": stream})
				}
				f.Line("Saved snapshot to %s (%d bytes)", path, len(data))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file path")
	cmd.Flags().StringVar(&stream, "stream", camera.StreamMain, "Stream to capture from (main or sub)")
	return cmd
}

func newStreamCommand(a *app) *cobra.Command {
	var (
		format     string
		stream     string
		openPlayer bool
	)
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Get stream URL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "rtsp" && format != "rtmp" {
				return usagef("invalid format %q (use rtsp or rtmp)", format)
			}
			if stream != camera.StreamMain && stream != camera.StreamSub {
				return usagef("invalid stream %q (use main or sub)", stream)
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				url, err := cam.StreamURL(ctx, format, stream)
				if err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					if err := f.JSON(map[string]any{"url": url, "format": format, "stream": stream}); err != nil {
						return err
					}
				} else {
					fmt.Println(url)
				}
				if openPlayer {
					return openInPlayer(f, url)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "rtsp", "Stream format (rtsp or rtmp)")
	cmd.Flags().StringVar(&stream, "stream", camera.StreamMain, "Stream quality (main or sub)")
	cmd.Flags().BoolVar(&openPlayer, "open", false, "Open stream in a media player (ffplay/vlc/mpv)")
	return cmd
}

func openInPlayer(f *formatter, url string) error {
	for _, player := range []string{"ffplay", "vlc", "mpv"} {
		path, err := exec.LookPath(player)
		if err != nil {
			continue
		}
		proc := exec.Command(path, url)
		proc.Stdout = nil
		proc.Stderr = nil
		if err := proc.Start(); err != nil {
			continue
		}
		f.Line("Opened in %s", player)
		return nil
	}
	return fmt.Errorf("no media player found (tried ffplay, vlc, mpv)")
}

func newRecordingsCommand(a *app) *cobra.Command {
	rec := &cobra.Command{
		Use:   "recordings",
		Short: "Recording management",
	}
	rec.AddCommand(
		newRecordingsListCommand(a),
		newRecordingsDownloadCommand(a),
		newRecordingsStatusCommand(a),
	)
	return rec
}

func newRecordingsListCommand(a *app) *cobra.Command {
	var fromStr, toStr string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings in a date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseDate(fromStr)
			if err != nil {
				return err
			}
			var end time.Time
			if toStr != "" {
				end, err = parseDate(toStr)
				if err != nil {
					return err
				}
			} else {
				end = start.Add(24*time.Hour - time.Second)
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				files, err := cam.SearchRecordings(ctx, camera.NewTimeSpec(start), camera.NewTimeSpec(end), 0)
				if err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(map[string]any{"recordings": files, "count": len(files)})
				}
				if len(files) == 0 {
					f.Line("No recordings found.")
					return nil
				}
				f.Line("Found %d recording(s):\n", len(files))
				for _, file := range files {
					f.Line("  %s", formatRecording(file))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&fromStr, "from", "today", "Start date (today, yesterday, or ISO date)")
	cmd.Flags().StringVar(&toStr, "to", "", "End date (default: end of start day)")
	return cmd
}

func formatRecording(file camera.Object) string {
	start, _ := file["StartTime"].(map[string]any)
	end, _ := file["EndTime"].(map[string]any)
	startStr := fmt.Sprintf("%d-%02d-%02d %02d:%02d:%02d",
		intValue(start["year"]), intValue(start["mon"]), intValue(start["day"]),
		intValue(start["hour"]), intValue(start["min"]), intValue(start["sec"]))
	endStr := fmt.Sprintf("%02d:%02d:%02d",
		intValue(end["hour"]), intValue(end["min"]), intValue(end["sec"]))
	name := "unknown"
	if n, ok := file["name"].(string); ok {
		name = n
	}
	sizeMB := float64(intValue(file["size"])) / (1024 * 1024)
	recType, _ := file["type"].(string)
	return fmt.Sprintf("%s - %s  %6.1f MB  %-8s  %s", startStr, endStr, sizeMB, recType, name)
}

func newRecordingsDownloadCommand(a *app) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "download <filename>",
		Short: "Download a recording file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			path := outPath
			if path == "" {
				path = filepath.Base(filename)
			}
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				body, err := cam.DownloadFile(ctx, filename)
				if err != nil {
					return err
				}
				defer body.Close()

				out, err := os.Create(path)
				if err != nil {
					return fmt.Errorf("create output file: %w", err)
				}
				defer out.Close()

				total, err := io.Copy(out, body)
				if err != nil {
					return fmt.Errorf("download %s: %w", filename, err)
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(map[string]any{"file": path, "size": total})
				}
				f.Line("Saved to %s (%.1f MB)", path, float64(total)/(1024*1024))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file path")
	return cmd
}

func newRecordingsStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show recording configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, cam *camera.Client) error {
				raw, err := cam.Rec(ctx)
				if err != nil {
					return err
				}
				f := a.formatter()
				if f.jsonMode {
					return f.JSON(raw)
				}
				var fields []field
				if v, ok := raw["enable"]; ok {
					fields = append(fields, field{"Recording", enabledDisabled(v)})
				}
				if v, ok := raw["overwrite"]; ok {
					fields = append(fields, field{"Overwrite", enabledDisabled(v)})
				}
				if v, ok := raw["packDuration"]; ok {
					fields = append(fields, field{"Pack Duration", formatValue(v) + "s"})
				}
				if v, ok := raw["preRec"]; ok {
					fields = append(fields, field{"Pre-Record", onOff(v)})
				}
				if v, ok := raw["postRec"]; ok {
					fields = append(fields, field{"Post-Record", formatValue(v) + "s"})
				}
				if _, ok := raw["schedule"]; ok {
					fields = append(fields, field{"Schedule", "Configured"})
				}
				f.Block("Recording Config", fields)
				return nil
			})
		},
	}
}
